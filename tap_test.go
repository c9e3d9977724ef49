package photoview

import (
	"testing"
	"time"
)

type tapRecorder struct {
	single [][2]float64
	double [][2]float64
	long   [][2]float64
	flings int
}

func newRecordingTapDetector() (*tapDetector, *tapRecorder) {
	rec := &tapRecorder{}
	d := &tapDetector{
		touchSlop:            8,
		doubleTapSlop:        100,
		doubleTapTimeout:     300 * time.Millisecond,
		longPressTimeout:     500 * time.Millisecond,
		minVelocity:          50,
		maxVelocity:          8000,
		onSingleTapConfirmed: func(x, y float64) { rec.single = append(rec.single, [2]float64{x, y}) },
		onDoubleTap:          func(x, y float64) { rec.double = append(rec.double, [2]float64{x, y}) },
		onLongPress:          func(x, y float64) { rec.long = append(rec.long, [2]float64{x, y}) },
		onFling:              func(_, _ MotionEvent, _, _ float64) { rec.flings++ },
	}
	return d, rec
}

func TestTapConfirmedAfterTimeout(t *testing.T) {
	d, rec := newRecordingTapDetector()
	t0 := time.Unix(0, 0)

	d.onTouchEvent(touch(ActionDown, t0, pt(0, 40, 60)))
	d.onTouchEvent(touch(ActionUp, t0.Add(80*time.Millisecond), pt(0, 41, 60)))
	if len(rec.single) != 0 {
		t.Fatal("single tap confirmed before the double-tap window closed")
	}
	if !d.pending() {
		t.Fatal("expected a pending timer")
	}

	d.tick(t0.Add(200 * time.Millisecond))
	if len(rec.single) != 0 {
		t.Fatal("confirmed too early")
	}
	d.tick(t0.Add(300 * time.Millisecond))
	if len(rec.single) != 1 || rec.single[0] != [2]float64{40, 60} {
		t.Fatalf("single = %v, want [[40 60]]", rec.single)
	}
	if d.pending() {
		t.Error("timer still pending after confirmation")
	}
}

func TestDoubleTap(t *testing.T) {
	d, rec := newRecordingTapDetector()
	t0 := time.Unix(0, 0)

	d.onTouchEvent(touch(ActionDown, t0, pt(0, 100, 100)))
	d.onTouchEvent(touch(ActionUp, t0.Add(50*time.Millisecond), pt(0, 100, 100)))
	d.onTouchEvent(touch(ActionDown, t0.Add(150*time.Millisecond), pt(0, 110, 105)))
	d.onTouchEvent(touch(ActionUp, t0.Add(200*time.Millisecond), pt(0, 110, 105)))
	d.tick(t0.Add(time.Second))

	if len(rec.double) != 1 || rec.double[0] != [2]float64{100, 100} {
		t.Errorf("double = %v, want [[100 100]]", rec.double)
	}
	if len(rec.single) != 0 {
		t.Errorf("single = %v, want none", rec.single)
	}
}

func TestSecondTapTooFarIsTwoSingles(t *testing.T) {
	d, rec := newRecordingTapDetector()
	t0 := time.Unix(0, 0)

	d.onTouchEvent(touch(ActionDown, t0, pt(0, 0, 0)))
	d.onTouchEvent(touch(ActionUp, t0.Add(50*time.Millisecond), pt(0, 0, 0)))
	d.onTouchEvent(touch(ActionDown, t0.Add(150*time.Millisecond), pt(0, 400, 0)))
	d.onTouchEvent(touch(ActionUp, t0.Add(200*time.Millisecond), pt(0, 400, 0)))
	d.tick(t0.Add(time.Second))

	if len(rec.double) != 0 {
		t.Errorf("double = %v, want none", rec.double)
	}
	if len(rec.single) != 2 {
		t.Errorf("single = %v, want two taps", rec.single)
	}
}

func TestLongPress(t *testing.T) {
	d, rec := newRecordingTapDetector()
	t0 := time.Unix(0, 0)

	d.onTouchEvent(touch(ActionDown, t0, pt(0, 10, 20)))
	d.tick(t0.Add(400 * time.Millisecond))
	if len(rec.long) != 0 {
		t.Fatal("long press fired early")
	}
	d.tick(t0.Add(500 * time.Millisecond))
	if len(rec.long) != 1 {
		t.Fatalf("long = %v, want one", rec.long)
	}
	d.onTouchEvent(touch(ActionUp, t0.Add(600*time.Millisecond), pt(0, 10, 20)))
	d.tick(t0.Add(2 * time.Second))
	if len(rec.single) != 0 {
		t.Errorf("long press also produced a tap: %v", rec.single)
	}
}

func TestMoveCancelsTapAndLongPress(t *testing.T) {
	d, rec := newRecordingTapDetector()
	t0 := time.Unix(0, 0)

	d.onTouchEvent(touch(ActionDown, t0, pt(0, 10, 20)))
	d.onTouchEvent(touch(ActionMove, t0.Add(10*time.Millisecond), pt(0, 40, 20)))
	d.tick(t0.Add(time.Second))
	d.onTouchEvent(touch(ActionUp, t0.Add(2*time.Second), pt(0, 40, 20)))
	d.tick(t0.Add(3 * time.Second))

	if len(rec.long) != 0 || len(rec.single) != 0 {
		t.Errorf("long = %v, single = %v, want none", rec.long, rec.single)
	}
}

func TestSecondPointerCancelsTap(t *testing.T) {
	d, rec := newRecordingTapDetector()
	t0 := time.Unix(0, 0)

	d.onTouchEvent(touch(ActionDown, t0, pt(0, 10, 20)))
	d.onTouchEvent(touchIndex(ActionPointerDown, 1, t0.Add(10*time.Millisecond), pt(0, 10, 20), pt(1, 90, 90)))
	d.onTouchEvent(touchIndex(ActionPointerUp, 1, t0.Add(20*time.Millisecond), pt(0, 10, 20), pt(1, 90, 90)))
	d.onTouchEvent(touch(ActionUp, t0.Add(30*time.Millisecond), pt(0, 10, 20)))
	d.tick(t0.Add(time.Second))

	if len(rec.single) != 0 {
		t.Errorf("single = %v, want none", rec.single)
	}
}

func TestSinglePointerFling(t *testing.T) {
	d, rec := newRecordingTapDetector()
	t0 := time.Unix(0, 0)

	d.onTouchEvent(touch(ActionDown, t0, pt(0, 0, 100)))
	d.onTouchEvent(touch(ActionMove, t0.Add(10*time.Millisecond), pt(0, 30, 100)))
	d.onTouchEvent(touch(ActionMove, t0.Add(20*time.Millisecond), pt(0, 60, 100)))
	d.onTouchEvent(touch(ActionUp, t0.Add(30*time.Millisecond), pt(0, 90, 100)))

	if rec.flings != 1 {
		t.Errorf("flings = %d, want 1", rec.flings)
	}
}

func TestCancelDropsPendingTap(t *testing.T) {
	d, rec := newRecordingTapDetector()
	t0 := time.Unix(0, 0)

	d.onTouchEvent(touch(ActionDown, t0, pt(0, 0, 0)))
	d.onTouchEvent(touch(ActionUp, t0.Add(10*time.Millisecond), pt(0, 0, 0)))
	d.cancel()
	d.tick(t0.Add(time.Second))
	if len(rec.single) != 0 || d.pending() {
		t.Errorf("single = %v, pending = %v after cancel", rec.single, d.pending())
	}
}
