package photoview

import (
	"math"
	"time"
)

// tapDetector classifies completed touch streams into single taps (confirmed
// once no second tap can follow), double taps, long presses and
// single-pointer flings. Timeouts are evaluated by tick, which the attacher
// calls from posted frame callbacks while a timer is pending.
type tapDetector struct {
	touchSlop        float64
	doubleTapSlop    float64
	doubleTapTimeout time.Duration
	longPressTimeout time.Duration
	minVelocity      float64
	maxVelocity      float64

	onSingleTapConfirmed func(x, y float64)
	onDoubleTap          func(x, y float64)
	onLongPress          func(x, y float64)
	onFling              func(down, up MotionEvent, vx, vy float64)

	down        MotionEvent
	stillDown   bool
	inTapRegion bool
	multiTouch  bool
	inLongPress bool
	doubleTap   bool

	longPressArmed    bool
	longPressDeadline time.Time

	tapPending  bool
	tapX, tapY  float64
	tapDeadline time.Time
	lastUp      time.Time

	velocity velocityTracker
}

// pending reports whether a timer still needs ticking.
func (t *tapDetector) pending() bool {
	return t.tapPending || (t.longPressArmed && t.stillDown)
}

func (t *tapDetector) onTouchEvent(ev MotionEvent) {
	switch ev.Action {
	case ActionDown:
		t.handleDown(ev)

	case ActionMove:
		t.velocity.add(ev.Time, ev.X(), ev.Y())
		if t.inTapRegion && math.Hypot(ev.X()-t.down.X(), ev.Y()-t.down.Y()) > t.touchSlop {
			t.inTapRegion = false
			t.longPressArmed = false
		}

	case ActionPointerDown:
		t.multiTouch = true
		t.inTapRegion = false
		t.longPressArmed = false
		t.doubleTap = false

	case ActionUp:
		t.handleUp(ev)

	case ActionCancel:
		t.cancel()
	}
}

func (t *tapDetector) handleDown(ev MotionEvent) {
	secondTap := t.tapPending &&
		ev.Time.Sub(t.lastUp) <= t.doubleTapTimeout &&
		math.Hypot(ev.X()-t.tapX, ev.Y()-t.tapY) <= t.doubleTapSlop

	switch {
	case secondTap:
		t.tapPending = false
		t.doubleTap = true
		if t.onDoubleTap != nil {
			t.onDoubleTap(t.tapX, t.tapY)
		}
	case t.tapPending:
		// Too far or too late to pair with the previous tap; it stands alone.
		t.tapPending = false
		if t.onSingleTapConfirmed != nil {
			t.onSingleTapConfirmed(t.tapX, t.tapY)
		}
	}

	t.down = ev
	t.down.Pointers = append([]Pointer(nil), ev.Pointers...)
	t.stillDown = true
	t.inTapRegion = true
	t.multiTouch = false
	t.inLongPress = false
	t.longPressArmed = !t.doubleTap
	t.longPressDeadline = ev.Time.Add(t.longPressTimeout)

	t.velocity.clear()
	t.velocity.add(ev.Time, ev.X(), ev.Y())
}

func (t *tapDetector) handleUp(ev MotionEvent) {
	t.stillDown = false
	t.longPressArmed = false
	t.velocity.add(ev.Time, ev.X(), ev.Y())

	switch {
	case t.doubleTap:
		t.doubleTap = false
	case t.inLongPress:
		t.inLongPress = false
	case t.inTapRegion && !t.multiTouch:
		t.tapX, t.tapY = t.down.X(), t.down.Y()
		t.lastUp = ev.Time
		t.tapDeadline = t.down.Time.Add(t.doubleTapTimeout)
		t.tapPending = true
		if !ev.Time.Before(t.tapDeadline) {
			t.tick(ev.Time)
		}
	case !t.multiTouch:
		vx, vy := t.velocity.velocity(t.maxVelocity)
		if math.Max(math.Abs(vx), math.Abs(vy)) >= t.minVelocity && t.onFling != nil {
			t.onFling(t.down, ev, vx, vy)
		}
	}
	t.velocity.clear()
}

// tick fires the timers whose deadline has passed.
func (t *tapDetector) tick(now time.Time) {
	if t.longPressArmed && t.stillDown && t.inTapRegion && !now.Before(t.longPressDeadline) {
		t.longPressArmed = false
		t.inLongPress = true
		if t.onLongPress != nil {
			t.onLongPress(t.down.X(), t.down.Y())
		}
	}
	if t.tapPending && !t.stillDown && !now.Before(t.tapDeadline) {
		t.tapPending = false
		if t.onSingleTapConfirmed != nil {
			t.onSingleTapConfirmed(t.tapX, t.tapY)
		}
	}
}

// cancel drops every pending classification.
func (t *tapDetector) cancel() {
	t.stillDown = false
	t.inTapRegion = false
	t.inLongPress = false
	t.doubleTap = false
	t.longPressArmed = false
	t.tapPending = false
	t.velocity.clear()
}
