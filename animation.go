package photoview

import (
	"time"

	"github.com/tanema/gween"
)

// zoomTask animates the user scale from start to target around a focal
// point. It re-posts itself each frame until the tween completes or it is
// cancelled. There is no global animation manager; the attacher owns at most
// one zoomTask.
type zoomTask struct {
	a             *Attacher
	tween         *gween.Tween
	started       time.Time
	start, target float64
	focusX        float64
	focusY        float64
	cancelled     bool
}

func newZoomTask(a *Attacher, start, target, focusX, focusY float64) *zoomTask {
	return &zoomTask{
		a:       a,
		tween:   gween.New(0, 1, float32(a.zoomDuration.Seconds()), a.zoomEasing),
		started: a.clock.Now(),
		start:   start,
		target:  target,
		focusX:  focusX,
		focusY:  focusY,
	}
}

// run advances the zoom by one frame.
func (z *zoomTask) run() {
	if z.cancelled {
		return
	}
	a := z.a
	if a.hostView() == nil {
		return
	}

	elapsed := a.clock.Now().Sub(z.started)
	p, finished := z.tween.Set(float32(elapsed.Seconds()))
	progress := float64(p)
	if finished || progress >= 1 {
		progress = 1
		finished = true
	}

	scale := z.start + progress*(z.target-z.start)
	if finished {
		scale = z.target
	}
	if cur := a.transform.currentScale(); cur > 0 {
		a.transform.applyScale(scale/cur, z.focusX, z.focusY)
		a.checkAndDisplayMatrix()
	}

	if finished {
		if a.zoom == z {
			a.zoom = nil
		}
		return
	}
	a.post(z.run)
}

func (z *zoomTask) cancel() { z.cancelled = true }

// flingTask drives a scroller and applies its offset deltas as translations.
type flingTask struct {
	a          *Attacher
	scroller   *scroller
	curX, curY float64
	cancelled  bool
}

// newFlingTask prepares a fling for the current content rect in a viewport
// of size (vw, vh). It returns nil when neither axis has room to move.
func newFlingTask(a *Attacher, rect Rect, vw, vh, velocityX, velocityY float64) *flingTask {
	startX := -rect.X
	minX, maxX := startX, startX
	if vw < rect.Width {
		minX, maxX = 0, rect.Width-vw
	}
	startY := -rect.Y
	minY, maxY := startY, startY
	if vh < rect.Height {
		minY, maxY = 0, rect.Height-vh
	}

	s := newScroller(a.flingTimeConstant)
	s.fling(a.clock.Now(), startX, startY, velocityX, velocityY, minX, maxX, minY, maxY)
	if s.isFinished() {
		return nil
	}
	return &flingTask{a: a, scroller: s, curX: startX, curY: startY}
}

// run advances the fling by one frame.
func (f *flingTask) run() {
	if f.cancelled || f.scroller.isFinished() {
		return
	}
	a := f.a
	if a.hostView() == nil {
		return
	}

	if f.scroller.computeScrollOffset(a.clock.Now()) {
		newX, newY := f.scroller.currX(), f.scroller.currY()
		a.transform.applyTranslate(f.curX-newX, f.curY-newY)
		a.checkAndDisplayMatrix()
		f.curX, f.curY = newX, newY
	}

	if f.scroller.isFinished() {
		if a.fling == f {
			a.fling = nil
		}
		return
	}
	a.post(f.run)
}

func (f *flingTask) cancel() {
	f.cancelled = true
	f.scroller.forceFinished()
}
