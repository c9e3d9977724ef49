package photoview

import (
	"fmt"
	"math"
)

// GestureListener receives the abstract signals produced by a
// GestureDetector.
type GestureListener interface {
	// OnDrag reports movement of the active pointer since the previous
	// sample, once the touch slop has been exceeded.
	OnDrag(dx, dy float64)
	// OnFling reports a release with enough velocity. The velocity is the
	// tracked velocity multiplied by the configured fling factor (negated by
	// default), in pixels per second.
	OnFling(startX, startY, velocityX, velocityY float64)
	// OnScale reports a multi-contact scale step around (focusX, focusY).
	OnScale(factor, focusX, focusY float64)
}

// GestureDetector turns raw MotionEvents into drag, fling and scale signals.
type GestureDetector interface {
	// OnTouchEvent consumes one event and reports whether it was handled.
	OnTouchEvent(ev MotionEvent) bool
	// IsScaling reports whether a multi-contact scale is in progress.
	IsScaling() bool
	// IsDragging reports whether the current stream has passed the slop.
	IsDragging() bool
}

// Capability names the input capability a GestureDetector is built for.
type Capability uint8

const (
	CapabilityAuto         Capability = iota // probe the host, default to CapabilityScale
	CapabilityBasic                          // primary pointer only: drag and fling
	CapabilityMultiPointer                   // active pointer tracking across pointer up/down
	CapabilityScale                          // multi-pointer plus pinch scaling
)

func (c Capability) String() string {
	switch c {
	case CapabilityAuto:
		return "auto"
	case CapabilityBasic:
		return "basic"
	case CapabilityMultiPointer:
		return "multi_pointer"
	case CapabilityScale:
		return "scale"
	}
	return fmt.Sprintf("Capability(%d)", uint8(c))
}

// CapabilityReporter is implemented by hosts that know which input
// capability their platform offers.
type CapabilityReporter interface {
	InputCapability() Capability
}

// NewGestureDetector returns the detector variant for the capability.
// CapabilityAuto selects CapabilityScale.
func NewGestureDetector(c Capability, cfg Config, l GestureListener) GestureDetector {
	cfg = cfg.withDefaults()
	d := dragTracker{
		listener:    l,
		touchSlop:   cfg.TouchSlop,
		minVelocity: cfg.MinFlingVelocity,
		maxVelocity: cfg.MaxFlingVelocity,
		flingFactor: cfg.FlingVelocityFactor,
	}
	switch c {
	case CapabilityBasic:
		return &basicDetector{dragTracker: d}
	case CapabilityMultiPointer:
		return &multiPointerDetector{dragTracker: d, activeID: invalidPointerID}
	default:
		s := &scaleAwareDetector{
			multiPointerDetector: multiPointerDetector{dragTracker: d, activeID: invalidPointerID},
		}
		s.scale = scaleDetector{minSpan: cfg.MinScaleSpan, onScale: l.OnScale}
		return s
	}
}

// probeCapability resolves CapabilityAuto against the host.
func probeCapability(c Capability, host Host) Capability {
	if c != CapabilityAuto {
		return c
	}
	if r, ok := host.(CapabilityReporter); ok {
		if hc := r.InputCapability(); hc != CapabilityAuto {
			return hc
		}
	}
	return CapabilityScale
}

const invalidPointerID = -1

// dragTracker is the single-pointer drag and fling state machine shared by
// every detector variant. Variants only decide which pointer is tracked.
type dragTracker struct {
	listener    GestureListener
	touchSlop   float64
	minVelocity float64
	maxVelocity float64
	flingFactor float64

	velocity velocityTracker
	tracking bool
	dragging bool
	hold     bool // follow the pointer without emitting drags
	lastX    float64
	lastY    float64
}

func (d *dragTracker) IsDragging() bool { return d.dragging }

// process advances the state machine with the tracked pointer at (x, y).
func (d *dragTracker) process(ev MotionEvent, x, y float64) {
	switch ev.Action {
	case ActionDown:
		d.velocity.clear()
		d.velocity.add(ev.Time, x, y)
		d.lastX, d.lastY = x, y
		d.dragging = false
		d.tracking = true

	case ActionMove:
		if !d.tracking {
			// Stream started without a down; anchor here.
			d.velocity.clear()
			d.velocity.add(ev.Time, x, y)
			d.lastX, d.lastY = x, y
			d.tracking = true
			return
		}
		if d.hold {
			d.lastX, d.lastY = x, y
			return
		}
		dx, dy := x-d.lastX, y-d.lastY
		if !d.dragging {
			d.dragging = math.Hypot(dx, dy) >= d.touchSlop
		}
		if d.dragging {
			d.listener.OnDrag(dx, dy)
			d.lastX, d.lastY = x, y
			d.velocity.add(ev.Time, x, y)
		}

	case ActionUp:
		if d.dragging && d.tracking {
			d.lastX, d.lastY = x, y
			d.velocity.add(ev.Time, x, y)
			vx, vy := d.velocity.velocity(d.maxVelocity)
			if math.Max(math.Abs(vx), math.Abs(vy)) >= d.minVelocity {
				d.listener.OnFling(d.lastX, d.lastY, d.flingFactor*vx, d.flingFactor*vy)
			}
		}
		d.reset()

	case ActionCancel:
		d.reset()
	}
}

func (d *dragTracker) reset() {
	d.velocity.clear()
	d.tracking = false
	d.dragging = false
}

// basicDetector follows the primary pointer only and ignores secondary
// pointer transitions.
type basicDetector struct {
	dragTracker
}

func (b *basicDetector) OnTouchEvent(ev MotionEvent) bool {
	b.process(ev, ev.X(), ev.Y())
	return true
}

func (b *basicDetector) IsScaling() bool { return false }

// multiPointerDetector follows one active pointer by ID and hands off to a
// remaining pointer when the active one lifts.
type multiPointerDetector struct {
	dragTracker
	activeID int
}

func (m *multiPointerDetector) OnTouchEvent(ev MotionEvent) bool {
	switch ev.Action {
	case ActionDown:
		m.activeID = invalidPointerID
		if len(ev.Pointers) > 0 {
			m.activeID = ev.Pointers[0].ID
		}
	case ActionPointerUp:
		idx := ev.ActionIndex
		if idx >= 0 && idx < len(ev.Pointers) && ev.Pointers[idx].ID == m.activeID {
			next := 0
			if idx == 0 {
				next = 1
			}
			if next < len(ev.Pointers) {
				m.activeID = ev.Pointers[next].ID
				m.lastX, m.lastY = ev.Pointers[next].X, ev.Pointers[next].Y
			}
		}
	}

	x, y := ev.position(ev.FindPointerIndex(m.activeID))
	m.process(ev, x, y)

	if ev.Action == ActionUp || ev.Action == ActionCancel {
		m.activeID = invalidPointerID
	}
	return true
}

func (m *multiPointerDetector) IsScaling() bool { return false }

// scaleAwareDetector adds pinch scaling on top of multi-pointer dragging.
type scaleAwareDetector struct {
	multiPointerDetector
	scale scaleDetector
}

func (s *scaleAwareDetector) OnTouchEvent(ev MotionEvent) bool {
	s.scale.onTouchEvent(ev)
	// A pinch step replaces the drag for that frame.
	s.hold = s.scale.inProgress
	return s.multiPointerDetector.OnTouchEvent(ev)
}

func (s *scaleAwareDetector) IsScaling() bool { return s.scale.inProgress }
