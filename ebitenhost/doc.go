// Package ebitenhost runs kinetic on Ebitengine.
//
// A [Host] is the frame source, the pointer input and the renderer for a
// set of [Box] sinks. Boxes are rectangles drawn from the styles the
// engine writes: opacity, background-color and the transform's
// translation, rotation and scale.
//
//	host := ebitenhost.NewHost()
//	engine := kinetic.NewEngine(kinetic.NewScheduler(host))
//	box := host.Add(ebitenhost.NewBox("card", kinetic.Rect{X: 40, Y: 40, Width: 80, Height: 80}, fill))
//	el := kinetic.NewElement(box)
//	engine.Start(el, kinetic.NewTarget().Set("x", kinetic.Pixels(200)), kinetic.Transition{})
//	log.Fatal(ebitenhost.Run(host, ebitenhost.RunConfig{Title: "demo", Width: 640, Height: 480}))
//
// Each Game.Update advances the host clock by one tick (1/TPS seconds),
// dispatches pointer input to the boxes and fires the pending frame
// callbacks, so animations run in lockstep with the game loop.
package ebitenhost
