package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/kinetic"
)

// maxPointers bounds tracked pointers: 0 is the mouse, 1-9 are touches.
const maxPointers = 10

// PointerSample is one pointer's position and button state for a tick.
type PointerSample struct {
	X, Y    float64
	Pressed bool
}

// TouchSample is one active touch for a tick.
type TouchSample struct {
	ID   ebiten.TouchID
	X, Y float64
}

// Input is the pointer state for one tick.
type Input struct {
	Mouse   PointerSample
	Touches []TouchSample
}

type pointerState struct {
	down     bool
	x, y     float64
	typ      kinetic.PointerType
	captured *Box
	hover    *Box
}

func (h *Host) readInput() Input {
	mx, my := ebiten.CursorPosition()
	in := Input{Mouse: PointerSample{
		X:       float64(mx),
		Y:       float64(my),
		Pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}}
	h.prevTouchIDs = ebiten.AppendTouchIDs(h.prevTouchIDs[:0])
	for _, id := range h.prevTouchIDs {
		tx, ty := ebiten.TouchPosition(id)
		in.Touches = append(in.Touches, TouchSample{ID: id, X: float64(tx), Y: float64(ty)})
	}
	return in
}

// HandleInput runs the pointer state machines for in and dispatches
// pointer events to the boxes. A press captures the box under the pointer
// until release.
func (h *Host) HandleInput(in Input) {
	h.processPointer(0, in.Mouse.X, in.Mouse.Y, in.Mouse.Pressed, kinetic.PointerMouse)

	var active [maxPointers]bool
	for _, t := range in.Touches {
		slot := h.touchSlot(t.ID)
		if slot < 0 {
			continue
		}
		active[slot] = true
		h.processPointer(slot, t.X, t.Y, true, kinetic.PointerTouch)
	}
	for i := 1; i < maxPointers; i++ {
		if h.touchUsed[i] && !active[i] {
			ps := &h.pointers[i]
			if ps.down {
				h.processPointer(i, ps.x, ps.y, false, kinetic.PointerTouch)
			}
			h.touchUsed[i] = false
			h.touchMap[i] = 0
		}
	}
}

// CancelPointers aborts every pressed pointer with a cancel event.
func (h *Host) CancelPointers() {
	for i := range h.pointers {
		ps := &h.pointers[i]
		if !ps.down {
			continue
		}
		if ps.captured != nil {
			ps.captured.dispatch(h.pointerEvent(kinetic.PointerCancel, i, ps.x, ps.y, ps.typ))
		}
		ps.down = false
		ps.captured = nil
	}
}

// touchSlot maps a touch id to a pointer slot, allocating one if needed.
// It returns -1 when every slot is taken.
func (h *Host) touchSlot(id ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if h.touchUsed[i] && h.touchMap[i] == id {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !h.touchUsed[i] {
			h.touchUsed[i] = true
			h.touchMap[i] = id
			return i
		}
	}
	return -1
}

// hitTest returns the topmost listening box containing (x, y).
func (h *Host) hitTest(x, y float64) *Box {
	for i := len(h.boxes) - 1; i >= 0; i-- {
		b := h.boxes[i]
		if b.listening() && b.Contains(x, y) {
			return b
		}
	}
	return nil
}

func (h *Host) pointerEvent(kind kinetic.PointerKind, id int, x, y float64, typ kinetic.PointerType) kinetic.PointerEvent {
	pressure := 0.0
	if kind == kinetic.PointerDown || kind == kinetic.PointerMove && h.pointers[id].down {
		pressure = 0.5
	}
	return kinetic.PointerEvent{
		Kind:      kind,
		PointerID: id,
		Type:      typ,
		X:         x,
		Y:         y,
		Pressure:  pressure,
		Timestamp: h.now,
	}
}

func (h *Host) processPointer(id int, x, y float64, pressed bool, typ kinetic.PointerType) {
	ps := &h.pointers[id]
	ps.typ = typ
	moved := x != ps.x || y != ps.y
	target := h.hitTest(x, y)

	// Touches have no hover.
	if typ == kinetic.PointerMouse && target != ps.hover {
		if ps.hover != nil {
			ps.hover.dispatch(h.pointerEvent(kinetic.PointerLeave, id, x, y, typ))
		}
		if target != nil {
			target.dispatch(h.pointerEvent(kinetic.PointerEnter, id, x, y, typ))
		}
		ps.hover = target
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.captured = target
		if target != nil {
			target.dispatch(h.pointerEvent(kinetic.PointerDown, id, x, y, typ))
		}
	case !pressed && ps.down:
		ps.down = false
		if ps.captured != nil {
			ps.captured.dispatch(h.pointerEvent(kinetic.PointerUp, id, x, y, typ))
		}
		ps.captured = nil
	case pressed && ps.down:
		if moved && ps.captured != nil {
			ps.captured.dispatch(h.pointerEvent(kinetic.PointerMove, id, x, y, typ))
		}
	default:
		if moved && target != nil {
			target.dispatch(h.pointerEvent(kinetic.PointerMove, id, x, y, typ))
		}
	}
	ps.x, ps.y = x, y
}
