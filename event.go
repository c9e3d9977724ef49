package photoview

import (
	"fmt"
	"time"
)

// Action identifies the kind of a MotionEvent.
type Action uint8

const (
	ActionDown        Action = iota // first pointer touched down
	ActionUp                        // last pointer lifted
	ActionMove                      // one or more pointers moved
	ActionCancel                    // the gesture was aborted by the host
	ActionPointerDown               // an additional pointer touched down (ActionIndex)
	ActionPointerUp                 // a non-last pointer lifted (ActionIndex)
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionUp:
		return "up"
	case ActionMove:
		return "move"
	case ActionCancel:
		return "cancel"
	case ActionPointerDown:
		return "pointer_down"
	case ActionPointerUp:
		return "pointer_up"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Pointer is one contact point of a MotionEvent, in viewport coordinates.
type Pointer struct {
	ID   int
	X, Y float64
}

// MotionEvent is a snapshot of all active pointers at the time of an input
// change. For ActionPointerDown and ActionPointerUp, ActionIndex is the
// index in Pointers of the pointer that changed; the lifting pointer is
// still present in Pointers on ActionPointerUp and ActionUp.
type MotionEvent struct {
	Action      Action
	ActionIndex int
	Pointers    []Pointer
	Time        time.Time
}

// PointerCount returns the number of pointers in the event.
func (e MotionEvent) PointerCount() int {
	return len(e.Pointers)
}

// X returns the X coordinate of the primary pointer, or 0 if there is none.
func (e MotionEvent) X() float64 {
	if len(e.Pointers) == 0 {
		return 0
	}
	return e.Pointers[0].X
}

// Y returns the Y coordinate of the primary pointer, or 0 if there is none.
func (e MotionEvent) Y() float64 {
	if len(e.Pointers) == 0 {
		return 0
	}
	return e.Pointers[0].Y
}

// FindPointerIndex returns the index of the pointer with the given ID, or -1.
func (e MotionEvent) FindPointerIndex(id int) int {
	for i := range e.Pointers {
		if e.Pointers[i].ID == id {
			return i
		}
	}
	return -1
}

// position returns the coordinates of the pointer at index, falling back
// to the primary pointer when the index is out of range.
func (e MotionEvent) position(index int) (x, y float64) {
	if index >= 0 && index < len(e.Pointers) {
		return e.Pointers[index].X, e.Pointers[index].Y
	}
	return e.X(), e.Y()
}
