package kinetic

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep represents a single action in a gesture script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	// Ms is the hold time for "tap" and the pause for "wait".
	Ms float64 `json:"ms,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true, "tap": true, "drag": true,
	"wait": true, "cancel": true, "enter": true, "leave": true, "mark": true,
}

// GestureScript replays scripted pointer input into a recognizer on a
// synthetic clock, for deterministic gesture tests and host demos.
type GestureScript struct {
	steps  []scriptStep
	cursor int
	marks  map[string]float64
	done   bool
}

// LoadGestureScript parses a JSON gesture script.
//
//	{"steps": [{"action": "tap", "x": 10, "y": 10, "ms": 50},
//	           {"action": "wait", "ms": 350},
//	           {"action": "drag", "fromX": 0, "toX": 100, "frames": 8}]}
func LoadGestureScript(jsonData []byte) (*GestureScript, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &GestureScript{steps: script.Steps, marks: map[string]float64{}}, nil
}

// Done reports whether every step has been queued and processed.
func (g *GestureScript) Done() bool { return g.done }

// Mark returns the synthetic time recorded by a "mark" step.
func (g *GestureScript) Mark(label string) (ms float64, ok bool) {
	ms, ok = g.marks[label]
	return ms, ok
}

// Step queues the next script step into r once r's injected queue has
// drained, then processes one injected event. Hosts call it once per
// frame. It reports whether any work remains.
func (g *GestureScript) Step(r *Recognizer) bool {
	if g.done {
		return false
	}
	if r.PendingInjected() == 0 {
		if g.cursor >= len(g.steps) {
			g.done = true
			return false
		}
		g.queue(r, g.steps[g.cursor])
		g.cursor++
	}
	r.ProcessInjected()
	if g.cursor >= len(g.steps) && r.PendingInjected() == 0 {
		g.done = true
	}
	return !g.done
}

// Run plays the whole script into r.
func (g *GestureScript) Run(r *Recognizer) {
	for g.Step(r) {
	}
}

func (g *GestureScript) queue(r *Recognizer, st scriptStep) {
	switch st.Action {
	case "press":
		r.InjectPress(st.X, st.Y)
	case "move":
		r.InjectMove(st.X, st.Y)
	case "release":
		r.InjectRelease(st.X, st.Y)
	case "tap":
		hold := 50.0
		if st.Ms > 0 {
			hold = st.Ms
		}
		r.InjectTap(st.X, st.Y, time.Duration(hold*float64(time.Millisecond)))
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		r.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wait":
		r.InjectWait(time.Duration(st.Ms * float64(time.Millisecond)))
		r.Advance(r.InjectClock())
	case "cancel":
		r.InjectCancel()
	case "enter":
		r.InjectEnter(st.X, st.Y)
	case "leave":
		r.InjectLeave(st.X, st.Y)
	case "mark":
		g.marks[st.Label] = r.InjectClock()
	}
}
