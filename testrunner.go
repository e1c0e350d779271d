package marionette

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string `json:"action"`
	Key    string `json:"key,omitempty"`
	Label  string `json:"label,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Frames int    `json:"frames,omitempty"`
}

type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// Screenshotter captures the next presented frame under label.
type Screenshotter interface {
	Screenshot(label string)
}

// InputScript sequences injected events and screenshots across frames for
// automated runs. Step is called once per frame before the frame's event is
// polled.
type InputScript struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadInputScript parses a JSON input script. Every step is validated up
// front so a typo fails at load time instead of mid-run.
func LoadInputScript(data []byte) (*InputScript, error) {
	var script inputScript
	if err := json.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("marionette: parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("marionette: parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "press":
			if _, ok := ParseKey(st.Key); !ok {
				return nil, fmt.Errorf("marionette: parse input script: step %d: unknown key %q", i, st.Key)
			}
		case "resize":
			if st.Width <= 0 || st.Height <= 0 {
				return nil, fmt.Errorf("marionette: parse input script: step %d: bad size %dx%d", i, st.Width, st.Height)
			}
		case "wait", "screenshot", "quit":
		default:
			return nil, fmt.Errorf("marionette: parse input script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &InputScript{steps: script.Steps}, nil
}

// Done reports whether every step ran and the injected events were consumed.
func (r *InputScript) Done() bool {
	return r.done
}

// Step advances the script by one frame. shots may be nil, in which case
// screenshot steps are skipped.
func (r *InputScript) Step(q *EventQueue, shots Screenshotter) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if q.Len() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "press":
		k, _ := ParseKey(st.Key)
		q.InjectKey(k)
	case "resize":
		q.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "screenshot":
		if shots != nil {
			shots.Screenshot(st.Label)
		}
	case "quit":
		q.InjectKey(KeyEscape)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && q.Len() == 0 {
		r.done = true
	}
}
