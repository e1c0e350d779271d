package ecs

import (
	"github.com/phanxgames/marionette"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for dispatched scene events.
var SceneEventType = events.NewEventType[marionette.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on SceneEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) marionette.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(ev marionette.Event) {
	SceneEventType.Publish(s.world, ev)
}
