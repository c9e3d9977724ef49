package photoview

import "math"

// scaleDetector tracks the spread of two or more contacts and reports the
// frame-to-frame ratio of that spread as a scale factor around the contacts'
// centroid.
type scaleDetector struct {
	minSpan float64
	onScale func(factor, focusX, focusY float64)

	inProgress bool
	prevSpan   float64
	focusX     float64
	focusY     float64
}

// span returns the centroid of the pointers, skipping the pointer at skip
// (-1 for none), and twice their average distance from it.
func span(ev MotionEvent, skip int) (fx, fy, s float64, count int) {
	for i, p := range ev.Pointers {
		if i == skip {
			continue
		}
		fx += p.X
		fy += p.Y
		count++
	}
	if count == 0 {
		return 0, 0, 0, 0
	}
	fx /= float64(count)
	fy /= float64(count)

	var dev float64
	for i, p := range ev.Pointers {
		if i == skip {
			continue
		}
		dev += math.Hypot(p.X-fx, p.Y-fy)
	}
	return fx, fy, 2 * dev / float64(count), count
}

func (d *scaleDetector) onTouchEvent(ev MotionEvent) {
	switch ev.Action {
	case ActionDown, ActionUp, ActionCancel:
		d.inProgress = false
		d.prevSpan = 0
		return
	}

	skip := -1
	if ev.Action == ActionPointerUp {
		skip = ev.ActionIndex
	}
	fx, fy, s, count := span(ev, skip)
	d.focusX, d.focusY = fx, fy

	configChanged := ev.Action == ActionPointerDown || ev.Action == ActionPointerUp
	if d.inProgress && (count < 2 || s < d.minSpan) {
		d.inProgress = false
	}
	if configChanged {
		// The centroid jumps when a contact is added or removed; restart
		// the ratio from the new spread.
		d.prevSpan = s
	}
	if !d.inProgress && count >= 2 && s >= d.minSpan {
		d.inProgress = true
		d.prevSpan = s
		return
	}

	if ev.Action != ActionMove || !d.inProgress || d.prevSpan <= 0 {
		return
	}
	factor := s / d.prevSpan
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor < 0 {
		return
	}
	d.prevSpan = s
	if d.onScale != nil {
		d.onScale(factor, fx, fy)
	}
}
