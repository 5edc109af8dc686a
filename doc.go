// Package kinetic is a declarative, reactive animation runtime for
// element trees.
//
// Callers describe the state an element should be in, as a [Target] of
// property values, together with a [Transition] saying how to get there.
// The [Engine] interpolates from the displayed values on every frame of a
// shared [Scheduler] and writes each element once per frame through its
// [ElementSink]. Hosts provide the sink and the frame source; the
// ebitenhost sub-package is one such host.
//
// # Quick start
//
//	frames := kinetic.NewManualFrames()
//	engine := kinetic.NewEngine(kinetic.NewScheduler(frames))
//	el := kinetic.NewElement(sink)
//	engine.Start(el, kinetic.NewTarget().Set("opacity", kinetic.Number(1)),
//		kinetic.Transition{Duration: 500 * time.Millisecond, Easing: kinetic.EaseOut})
//
// # Values and transitions
//
// Property values are typed: [Number], [Pixels], [Percent], [Degrees],
// [Radians], [Color], [String], [Transform] and host-defined [Complex]
// values. Transform properties ("x", "rotate", "scale", ...) are merged
// into one transform write. Transitions select an [Easing] (named curves
// backed by [gween], [CubicBezier], or a physical [Spring]), a delay, a
// [Repeat] policy, a [StaggerConfig] and per-property overrides.
//
// # Reactivity and gestures
//
// [Bind] re-evaluates a target producer whenever the signals it reads
// change, retargeting from the current displayed values. A [Recognizer]
// turns raw pointer events into tap, hover, drag and pinch gestures, and a
// [Bridge] maps them to priority overrides, drag offsets and momentum.
// [Mount] wires all of it from one [MotionProps] value.
//
// # Sequencing and presence
//
// [Timeline] plays [Keyframes] on several elements in lockstep with
// scrubbing. [Presence] keeps keyed children rendered until their exit
// animations complete.
//
// # Configuration
//
// [LoadPresets] reads named transitions and variant sets from YAML;
// [LoadGestureScript] replays scripted pointer input from JSON for
// deterministic tests and demos.
//
// # Diagnostics
//
// The runtime never returns errors from animation calls. Misuse and
// panicking callbacks are isolated and reported through an optional
// [log/slog] logger installed with SetLogger.
//
// [gween]: https://github.com/tanema/gween
package kinetic
