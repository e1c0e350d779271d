package marionette

import "fmt"

// Puppet holds the handles of the demo scene: a background sprite centred
// in the window with the player sprite as its child.
type Puppet struct {
	Background NodeID
	Player     NodeID
}

// BuildPuppet adds the demo nodes to s for a w x h window. When recentre is
// set the background follows window resizes.
func BuildPuppet(s *Scene, bg, player Texture, w, h int, recentre bool) (Puppet, error) {
	cx, cy := float64(w)/2, float64(h)/2

	back := NewSprite("background", bg)
	back.SetPosition(cx, cy)
	if recentre {
		back.OnEvent = func(ev Event) {
			if ev.Kind == EventWindowResize {
				back.SetPosition(float64(ev.Width)/2, float64(ev.Height)/2)
			}
		}
	}
	bgID, err := s.AddChild(RootID, back)
	if err != nil {
		return Puppet{}, fmt.Errorf("marionette: build puppet: %w", err)
	}

	// Child positions are relative to the parent's origin, not its anchor.
	p := NewSprite("player", player)
	p.SetPosition(cx, cy)
	pID, err := s.AddChild(bgID, p)
	if err != nil {
		return Puppet{}, fmt.Errorf("marionette: build puppet: %w", err)
	}
	return Puppet{Background: bgID, Player: pID}, nil
}

// Reloader swaps the player's behavior templates when the config file
// changes. Only the animation section is taken from the file; window and
// asset settings need a restart.
type Reloader struct {
	Path   string
	Config Config
	Set    BehaviorSet
	Player NodeID
}

// Reload is an AppConfig.OnReload handler.
func (r *Reloader) Reload(a *App) error {
	next := r.Config
	if err := LoadConfigFile(r.Path, &next); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	cfg := r.Config
	cfg.Animation = next.Animation
	set := cfg.Behaviors()

	restarted := r.Set.Replace(a.Scheduler, set)
	for k, cmd := range DemoBindings(r.Player, set) {
		a.Bind(k, cmd)
	}
	r.Config, r.Set = cfg, set
	a.Logger().Info("config reloaded", "path", r.Path, "restarted", restarted)
	return nil
}
