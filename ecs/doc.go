// Package ecs forwards marionette scene events into an ECS world.
//
// [NewDonburiSink] publishes every event the scene dispatches (key presses,
// resizes, reloads) to a [Donburi] world as a typed event. Subscribe to
// [SceneEventType] in your systems to receive them.
//
// Usage:
//
//	scene.SetEventSink(ecs.NewDonburiSink(world))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
