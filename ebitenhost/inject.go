package ebitenhost

import "github.com/phanxgames/photoview"

// Pointer IDs used for injected input.
const (
	injectPrimaryID   = mousePointerID
	injectSecondaryID = mousePointerID + 1
)

// Injected input is a queue of pointer snapshots in screen coordinates.
// One snapshot is consumed per frame in place of real input.

// InjectPress queues a single pointer going down at (x, y).
func (p *Pager) InjectPress(x, y float64) {
	p.inject(photoview.Pointer{ID: injectPrimaryID, X: x, Y: y})
}

// InjectMove queues the pointer moving to (x, y) while held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (p *Pager) InjectMove(x, y float64) {
	p.inject(photoview.Pointer{ID: injectPrimaryID, X: x, Y: y})
}

// InjectRelease queues all pointers lifting at their last position.
func (p *Pager) InjectRelease() {
	p.inject()
}

// InjectTap queues a press followed by a release at (x, y). Consumes two
// frames.
func (p *Pager) InjectTap(x, y float64) {
	p.InjectPress(x, y)
	p.InjectRelease()
}

// InjectDrag queues a press at (fromX, fromY), moves linearly interpolated
// to (toX, toY), and a release. The sequence consumes frames frames, at
// least 3.
func (p *Pager) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 3)
	p.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	p.InjectRelease()
}

// InjectPinch queues a two-pointer pinch centred on (cx, cy), with the
// pointers placed horizontally fromSpan apart and moved to toSpan apart.
// The sequence consumes frames frames, at least 3.
func (p *Pager) InjectPinch(cx, cy, fromSpan, toSpan float64, frames int) {
	frames = max(frames, 3)
	p.injectSpan(cx, cy, fromSpan)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p.injectSpan(cx, cy, fromSpan+(toSpan-fromSpan)*t)
	}
	p.InjectRelease()
}

func (p *Pager) injectSpan(cx, cy, span float64) {
	p.inject(
		photoview.Pointer{ID: injectPrimaryID, X: cx - span/2, Y: cy},
		photoview.Pointer{ID: injectSecondaryID, X: cx + span/2, Y: cy},
	)
}

func (p *Pager) inject(ps ...photoview.Pointer) {
	p.injectQueue = append(p.injectQueue, ps)
}

// Injecting reports whether injected input is still queued.
func (p *Pager) Injecting() bool {
	return len(p.injectQueue) > 0
}
