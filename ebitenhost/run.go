package ebitenhost

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
	Background    color.Color
	Debug         bool
}

func (c RunConfig) withDefaults() RunConfig {
	if c.Title == "" {
		c.Title = "photoview"
	}
	if c.Width <= 0 {
		c.Width = 800
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.Background == nil {
		c.Background = color.Black
	}
	return c
}

// game adapts a Pager to ebiten.Game. The pager is resized to the layout
// size on every layout pass.
type game struct {
	pager *Pager
	bg    color.Color
}

func (g *game) Update() error {
	return g.pager.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	g.pager.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.pager.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Run opens a resizable window and runs p until the window is closed.
func Run(p *Pager, cfg RunConfig) error {
	cfg = cfg.withDefaults()
	if cfg.Debug {
		p.SetDebug(true)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer p.Close()
	if err := ebiten.RunGame(&game{pager: p, bg: cfg.Background}); err != nil {
		return fmt.Errorf("ebitenhost: run: %w", err)
	}
	return nil
}
