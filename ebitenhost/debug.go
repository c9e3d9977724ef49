package ebitenhost

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugStats holds per-frame counters. Only reported when the pager is in
// debug mode.
type debugStats struct {
	events    int
	callbacks int
	update    time.Duration
}

// debugLog records a frame's stats when anything happened in it.
func (p *Pager) debugLog(stats debugStats) {
	if !p.debug || (stats.events == 0 && stats.callbacks == 0) {
		return
	}
	p.log.Debug("frame",
		"events", stats.events,
		"callbacks", stats.callbacks,
		"update", stats.update,
		"page", p.current,
		"offset", p.offset)
}

// debugText describes the pager and its current view.
func (p *Pager) debugText() string {
	v := p.active()
	if v == nil {
		return fmt.Sprintf("page -/0 offset %.0f", p.offset)
	}
	a := v.Attacher()
	return fmt.Sprintf("page %d/%d offset %.0f\nscale %.2f rot %.0f\nstate %s edge %s/%s",
		p.current+1, len(p.views), p.offset,
		a.Scale(), a.Rotation(),
		a.State(), a.ScrollEdge(), a.VerticalEdge())
}

func (p *Pager) drawDebug(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f TPS: %.1f\n%s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), p.debugText()))
}
