package ebitenhost

import (
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/kinetic"
)

// whitePixel is a 1x1 white image scaled to draw solid boxes.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

type frameRequest struct {
	tok kinetic.FrameToken
	cb  func(float64)
}

// Host is a kinetic frame source and pointer input driven by the
// Ebitengine game loop. It also draws its boxes. A Host is confined to the
// game goroutine.
type Host struct {
	// TickDuration is the clock advance per Update. Zero uses 1/TPS.
	TickDuration time.Duration
	// ClearColor fills the screen before boxes are drawn.
	ClearColor kinetic.Color
	// OnUpdate runs at the end of every Update.
	OnUpdate func() error

	now     float64
	next    kinetic.FrameToken
	pending []frameRequest
	boxes   []*Box

	pointers     [maxPointers]pointerState
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
}

// NewHost returns a host at time zero with no boxes.
func NewHost() *Host {
	return &Host{}
}

// Add registers b for drawing and hit testing. Later boxes draw on top and
// win hit tests.
func (h *Host) Add(b *Box) *Box {
	h.boxes = append(h.boxes, b)
	return b
}

// Remove unregisters b and marks it removed. Pointers captured by b are
// cancelled.
func (h *Host) Remove(b *Box) {
	for i := range h.pointers {
		ps := &h.pointers[i]
		if ps.captured == b {
			b.dispatch(h.pointerEvent(kinetic.PointerCancel, i, ps.x, ps.y, ps.typ))
			ps.captured = nil
		}
		if ps.hover == b {
			ps.hover = nil
		}
	}
	for i, o := range h.boxes {
		if o == b {
			h.boxes = append(h.boxes[:i], h.boxes[i+1:]...)
			break
		}
	}
	b.Remove()
}

// Boxes returns the registered boxes in draw order.
func (h *Host) Boxes() []*Box { return h.boxes }

// RequestFrame implements kinetic.FrameSource. cb runs on the next Update.
func (h *Host) RequestFrame(cb func(float64)) kinetic.FrameToken {
	h.next++
	h.pending = append(h.pending, frameRequest{tok: h.next, cb: cb})
	return h.next
}

// CancelFrame implements kinetic.FrameSource.
func (h *Host) CancelFrame(tok kinetic.FrameToken) {
	for i, r := range h.pending {
		if r.tok == tok {
			h.pending = append(h.pending[:i], h.pending[i+1:]...)
			return
		}
	}
}

// Now implements kinetic.Clock.
func (h *Host) Now() float64 { return h.now }

func (h *Host) tickMs() float64 {
	if h.TickDuration > 0 {
		return float64(h.TickDuration) / float64(time.Millisecond)
	}
	return 1000 / float64(ebiten.TPS())
}

// Tick advances the clock one tick, dispatches in to the boxes and fires
// the frame callbacks queued before the call.
func (h *Host) Tick(in Input) {
	h.now += h.tickMs()
	h.HandleInput(in)
	batch := h.pending
	h.pending = nil
	for _, r := range batch {
		r.cb(h.now)
	}
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if !ebiten.IsFocused() {
		h.CancelPointers()
	}
	h.Tick(h.readInput())
	if h.OnUpdate != nil {
		return h.OnUpdate()
	}
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(toNRGBA(h.ClearColor))
	for _, b := range h.boxes {
		h.drawBox(screen, b)
	}
}

func (h *Host) drawBox(screen *ebiten.Image, b *Box) {
	if b.Hidden || b.removed || b.opacity <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(b.Layout.Width*b.tr.scaleX, b.Layout.Height*b.tr.scaleY)
	op.GeoM.Rotate(b.tr.rotate * math.Pi / 180)
	c := b.Layout.Center()
	op.GeoM.Translate(c.X+b.tr.x, c.Y+b.tr.y)
	op.ColorScale.ScaleWithColor(toNRGBA(b.fill))
	op.ColorScale.ScaleAlpha(float32(b.opacity))
	screen.DrawImage(whitePixel, &op)
}

func toNRGBA(c kinetic.Color) color.NRGBA {
	ch := func(v float64) uint8 { return uint8(math.Round(clamp01(v) * 255)) }
	return color.NRGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: ch(c.A)}
}

var (
	_ kinetic.FrameSource = (*Host)(nil)
	_ kinetic.Clock       = (*Host)(nil)
)
