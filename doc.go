// Package marionette is a small scene graph with a behavior-tree animation
// scheduler, hosted on [Ebitengine] or in a terminal.
//
// # Quick start
//
//	scene := marionette.NewScene()
//	id, _ := scene.AddChild(marionette.RootID, marionette.NewSprite("hero", tex))
//
//	queue := marionette.NewEventQueue(time.Second / 60)
//	app := marionette.NewApp(marionette.AppConfig{Scene: scene, Events: queue})
//	app.Bind(marionette.KeyD, marionette.RunCommand(id,
//		marionette.Action(marionette.Ease(marionette.EaseBounceOut, marionette.MoveBy(1, 32, 0)))))
//
//	marionette.Run(app, queue, marionette.RunConfig{Title: "hero", Width: 640, Height: 480})
//
// # Scene graph
//
// The [Scene] owns every [Node] and hands out [NodeID] handles. Parents and
// children refer to each other by handle, so a removed node simply becomes
// unknown: [Scene.Lookup] reports [ErrUnknownNode] and running animations on
// it are dropped. A node's world transform is the product of its ancestors'
// local transforms (scale, then rotate, then translate); its texture is
// drawn around its anchor, centred by default.
//
// # Behaviors
//
// A [Behavior] is an immutable description built from [Action], [Sequence],
// [While], [Wait] and [WaitForever]. Actions wrap a timed [Primitive] such
// as [MoveBy] or [FadeOut], optionally remapped by an [EaseFunction] through
// [Ease]. Behaviors are templates: the [Scheduler] keeps one running
// [Instance] per (node, behavior) pair, and running the same pair again
// restarts it.
//
// Time left over when a step finishes an action flows into the next one, so
// the end state depends only on the total elapsed time, not on how it was
// split across frames.
//
// # Frame loop
//
// [App.Update] pulls at most one event, dispatches it to the scene, applies
// the bound [Command] and advances the scheduler; [App.Draw] draws the
// scene and the optional FPS overlay. [Run] hosts an App in an Ebitengine
// window; package term hosts it in a terminal.
//
// [Ebitengine]: https://ebitengine.org
package marionette
