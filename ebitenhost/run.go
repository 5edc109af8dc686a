package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// ShowFPS draws the current FPS and TPS in the top-left corner.
	ShowFPS bool
}

// game adapts a Host to ebiten.Game with a fixed logical size.
type game struct {
	host   *Host
	cfg    RunConfig
	fps    *ebiten.Image
	sinceS float64
}

func (g *game) Update() error {
	if err := g.host.Update(); err != nil {
		return err
	}
	if g.cfg.ShowFPS {
		g.updateFPS()
	}
	return nil
}

// updateFPS redraws the FPS overlay about every half second.
func (g *game) updateFPS() {
	g.sinceS += g.host.tickMs() / 1000
	if g.fps != nil && g.sinceS < 0.5 {
		return
	}
	g.sinceS = 0
	if g.fps == nil {
		g.fps = ebiten.NewImage(100, 32)
	}
	g.fps.Clear()
	g.fps.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(g.fps, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

func (g *game) Draw(screen *ebiten.Image) {
	g.host.Draw(screen)
	if g.fps != nil {
		screen.DrawImage(g.fps, nil)
	}
}

func (g *game) Layout(_, _ int) (int, int) { return g.cfg.Width, g.cfg.Height }

// Run opens a window and runs host until the window closes or OnUpdate
// returns an error.
func Run(host *Host, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = 640
	}
	if cfg.Height <= 0 {
		cfg.Height = 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	return ebiten.RunGame(&game{host: host, cfg: cfg})
}
