package ebitenhost

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/photoview"
)

const (
	mousePointerID = 0 // touches are numbered from 1
	wheelZoomStep  = 1.1
)

// pointerTracker turns per-frame pointer snapshots into MotionEvents.
// Within one frame, moves are reported first, then lifts, then new
// pointers, so that each event carries a consistent pointer list.
type pointerTracker struct {
	active []photoview.Pointer
}

// diff compares snapshot against the pointers seen last frame and returns
// the events that describe the change. The returned events own their
// pointer slices.
func (t *pointerTracker) diff(now time.Time, snapshot []photoview.Pointer) []photoview.MotionEvent {
	var out []photoview.MotionEvent

	// Moves.
	moved := false
	for i := range t.active {
		p, ok := findPointer(snapshot, t.active[i].ID)
		if !ok {
			continue
		}
		if p.X != t.active[i].X || p.Y != t.active[i].Y {
			t.active[i].X, t.active[i].Y = p.X, p.Y
			moved = true
		}
	}
	if moved {
		out = append(out, t.event(photoview.ActionMove, 0, now))
	}

	// Lifts. The lifting pointer is still present in the event.
	for i := 0; i < len(t.active); {
		if _, ok := findPointer(snapshot, t.active[i].ID); ok {
			i++
			continue
		}
		action := photoview.ActionPointerUp
		if len(t.active) == 1 {
			action = photoview.ActionUp
		}
		out = append(out, t.event(action, i, now))
		t.active = append(t.active[:i], t.active[i+1:]...)
	}

	// New pointers.
	for _, p := range snapshot {
		if _, ok := findPointer(t.active, p.ID); ok {
			continue
		}
		action := photoview.ActionPointerDown
		if len(t.active) == 0 {
			action = photoview.ActionDown
		}
		t.active = append(t.active, p)
		out = append(out, t.event(action, len(t.active)-1, now))
	}
	return out
}

// cancel drops all tracked pointers, returning an ActionCancel event if any
// were down.
func (t *pointerTracker) cancel(now time.Time) (photoview.MotionEvent, bool) {
	if len(t.active) == 0 {
		return photoview.MotionEvent{}, false
	}
	ev := t.event(photoview.ActionCancel, 0, now)
	t.active = t.active[:0]
	return ev, true
}

func (t *pointerTracker) down() bool {
	return len(t.active) > 0
}

func (t *pointerTracker) event(action photoview.Action, index int, now time.Time) photoview.MotionEvent {
	return photoview.MotionEvent{
		Action:      action,
		ActionIndex: index,
		Pointers:    append([]photoview.Pointer(nil), t.active...),
		Time:        now,
	}
}

func findPointer(ps []photoview.Pointer, id int) (photoview.Pointer, bool) {
	for _, p := range ps {
		if p.ID == id {
			return p, true
		}
	}
	return photoview.Pointer{}, false
}

// inputSource supplies raw pointer and wheel state once per frame.
type inputSource interface {
	// pointers appends the pointers currently down to buf.
	pointers(buf []photoview.Pointer) []photoview.Pointer
	// wheel returns the vertical wheel offset and the cursor position.
	wheel() (dy, x, y float64)
}

// ebitenInput polls ebiten. The mouse acts as a single pointer while its
// left button is held and no touch is active.
type ebitenInput struct {
	touchIDs []ebiten.TouchID
}

func (in *ebitenInput) pointers(buf []photoview.Pointer) []photoview.Pointer {
	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	for _, tid := range in.touchIDs {
		x, y := ebiten.TouchPosition(tid)
		buf = append(buf, photoview.Pointer{ID: int(tid) + 1, X: float64(x), Y: float64(y)})
	}
	if len(in.touchIDs) == 0 && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		buf = append(buf, photoview.Pointer{ID: mousePointerID, X: float64(x), Y: float64(y)})
	}
	return buf
}

func (in *ebitenInput) wheel() (dy, x, y float64) {
	_, dy = ebiten.Wheel()
	cx, cy := ebiten.CursorPosition()
	return dy, float64(cx), float64(cy)
}

// wheelScale returns the scale that a wheel offset of dy notches produces
// from current, clamped to [lo, hi].
func wheelScale(current, dy, lo, hi float64) float64 {
	s := current * math.Pow(wheelZoomStep, dy)
	return math.Max(lo, math.Min(hi, s))
}
