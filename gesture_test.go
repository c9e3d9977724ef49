package photoview

import (
	"math"
	"testing"
	"time"
)

type gestureRecorder struct {
	drags  [][2]float64
	flings [][4]float64
	scales [][3]float64
}

func (r *gestureRecorder) OnDrag(dx, dy float64) { r.drags = append(r.drags, [2]float64{dx, dy}) }

func (r *gestureRecorder) OnFling(sx, sy, vx, vy float64) {
	r.flings = append(r.flings, [4]float64{sx, sy, vx, vy})
}

func (r *gestureRecorder) OnScale(f, fx, fy float64) {
	r.scales = append(r.scales, [3]float64{f, fx, fy})
}

func (r *gestureRecorder) totalDrag() (dx, dy float64) {
	for _, d := range r.drags {
		dx += d[0]
		dy += d[1]
	}
	return dx, dy
}

func testGestureConfig() Config {
	return Config{TouchSlop: 8, MinFlingVelocity: 50, MaxFlingVelocity: 8000, MinScaleSpan: 16}
}

func TestCapabilityString(t *testing.T) {
	tests := []struct {
		c    Capability
		want string
	}{
		{CapabilityAuto, "auto"},
		{CapabilityBasic, "basic"},
		{CapabilityMultiPointer, "multi_pointer"},
		{CapabilityScale, "scale"},
		{Capability(9), "Capability(9)"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestNewGestureDetectorVariants(t *testing.T) {
	rec := &gestureRecorder{}
	if _, ok := NewGestureDetector(CapabilityBasic, Config{}, rec).(*basicDetector); !ok {
		t.Error("basic capability did not select basicDetector")
	}
	if _, ok := NewGestureDetector(CapabilityMultiPointer, Config{}, rec).(*multiPointerDetector); !ok {
		t.Error("multi-pointer capability did not select multiPointerDetector")
	}
	if _, ok := NewGestureDetector(CapabilityAuto, Config{}, rec).(*scaleAwareDetector); !ok {
		t.Error("auto capability did not select scaleAwareDetector")
	}
}

func TestProbeCapability(t *testing.T) {
	plain := newFakeHost(1, 1, 1, 1)
	if got := probeCapability(CapabilityAuto, plain); got != CapabilityScale {
		t.Errorf("plain host = %v, want scale", got)
	}
	reporting := capabilityHost{newFakeHost(1, 1, 1, 1)}
	reporting.capability = CapabilityBasic
	if got := probeCapability(CapabilityAuto, reporting); got != CapabilityBasic {
		t.Errorf("reporting host = %v, want basic", got)
	}
	if got := probeCapability(CapabilityMultiPointer, reporting); got != CapabilityMultiPointer {
		t.Errorf("explicit capability = %v, want multi_pointer", got)
	}
}

func TestDragRespectsTouchSlop(t *testing.T) {
	for _, c := range []Capability{CapabilityBasic, CapabilityMultiPointer, CapabilityScale} {
		t.Run(c.String(), func(t *testing.T) {
			rec := &gestureRecorder{}
			d := NewGestureDetector(c, testGestureConfig(), rec)
			t0 := time.Unix(0, 0)

			d.OnTouchEvent(touch(ActionDown, t0, pt(0, 100, 100)))
			d.OnTouchEvent(touch(ActionMove, t0.Add(10*time.Millisecond), pt(0, 103, 102)))
			if len(rec.drags) != 0 || d.IsDragging() {
				t.Fatalf("drag below slop: %v", rec.drags)
			}
			d.OnTouchEvent(touch(ActionMove, t0.Add(20*time.Millisecond), pt(0, 120, 100)))
			d.OnTouchEvent(touch(ActionMove, t0.Add(30*time.Millisecond), pt(0, 130, 105)))
			if !d.IsDragging() {
				t.Fatal("expected dragging past slop")
			}
			dx, dy := rec.totalDrag()
			assertNear(t, "dx", dx, 30)
			assertNear(t, "dy", dy, 5)
		})
	}
}

func TestFlingReportsNegatedVelocity(t *testing.T) {
	rec := &gestureRecorder{}
	d := NewGestureDetector(CapabilityBasic, testGestureConfig(), rec)
	t0 := time.Unix(0, 0)

	x := 100.0
	d.OnTouchEvent(touch(ActionDown, t0, pt(0, x, 100)))
	for i := 1; i <= 5; i++ {
		x += 20 // 2000 px/s
		d.OnTouchEvent(touch(ActionMove, t0.Add(time.Duration(i)*10*time.Millisecond), pt(0, x, 100)))
	}
	d.OnTouchEvent(touch(ActionUp, t0.Add(60*time.Millisecond), pt(0, x+20, 100)))

	if len(rec.flings) != 1 {
		t.Fatalf("flings = %d, want 1", len(rec.flings))
	}
	f := rec.flings[0]
	if math.Abs(f[2]+2000) > 1 {
		t.Errorf("vx = %v, want about -2000", f[2])
	}
	if math.Abs(f[3]) > 1 {
		t.Errorf("vy = %v, want about 0", f[3])
	}
	if d.IsDragging() {
		t.Error("still dragging after up")
	}
}

func TestSlowReleaseDoesNotFling(t *testing.T) {
	rec := &gestureRecorder{}
	d := NewGestureDetector(CapabilityBasic, testGestureConfig(), rec)
	t0 := time.Unix(0, 0)

	d.OnTouchEvent(touch(ActionDown, t0, pt(0, 100, 100)))
	d.OnTouchEvent(touch(ActionMove, t0.Add(50*time.Millisecond), pt(0, 120, 100)))
	d.OnTouchEvent(touch(ActionUp, t0.Add(2*time.Second), pt(0, 120, 100)))
	if len(rec.flings) != 0 {
		t.Errorf("unexpected fling %v", rec.flings)
	}
}

func TestFlingVelocityFactor(t *testing.T) {
	rec := &gestureRecorder{}
	cfg := testGestureConfig()
	cfg.FlingVelocityFactor = 1
	d := NewGestureDetector(CapabilityBasic, cfg, rec)
	t0 := time.Unix(0, 0)

	d.OnTouchEvent(touch(ActionDown, t0, pt(0, 100, 100)))
	d.OnTouchEvent(touch(ActionMove, t0.Add(10*time.Millisecond), pt(0, 100, 120)))
	d.OnTouchEvent(touch(ActionMove, t0.Add(20*time.Millisecond), pt(0, 100, 140)))
	d.OnTouchEvent(touch(ActionUp, t0.Add(30*time.Millisecond), pt(0, 100, 160)))
	if len(rec.flings) != 1 || rec.flings[0][3] <= 0 {
		t.Errorf("flings = %v, want one with positive vy", rec.flings)
	}
}

func TestMultiPointerHandsOffActivePointer(t *testing.T) {
	rec := &gestureRecorder{}
	d := NewGestureDetector(CapabilityMultiPointer, testGestureConfig(), rec)
	t0 := time.Unix(0, 0)

	d.OnTouchEvent(touch(ActionDown, t0, pt(7, 100, 100)))
	d.OnTouchEvent(touch(ActionMove, t0.Add(10*time.Millisecond), pt(7, 150, 100)))
	d.OnTouchEvent(touchIndex(ActionPointerDown, 1, t0.Add(20*time.Millisecond), pt(7, 150, 100), pt(9, 300, 300)))
	// Active pointer 7 lifts; tracking moves to 9 without a jump.
	d.OnTouchEvent(touchIndex(ActionPointerUp, 0, t0.Add(30*time.Millisecond), pt(7, 150, 100), pt(9, 300, 300)))
	d.OnTouchEvent(touch(ActionMove, t0.Add(40*time.Millisecond), pt(9, 310, 300)))

	dx, dy := rec.totalDrag()
	assertNear(t, "dx", dx, 60)
	assertNear(t, "dy", dy, 0)
}

func TestMultiPointerFallsBackToPrimary(t *testing.T) {
	rec := &gestureRecorder{}
	d := NewGestureDetector(CapabilityMultiPointer, testGestureConfig(), rec)
	t0 := time.Unix(0, 0)

	// Move without a down, and with an unknown pointer id.
	d.OnTouchEvent(touch(ActionMove, t0, pt(3, 10, 10)))
	d.OnTouchEvent(touch(ActionMove, t0.Add(10*time.Millisecond), pt(4, 40, 10)))
	dx, _ := rec.totalDrag()
	assertNear(t, "dx", dx, 30)
}

func TestScaleDetectorReportsSpanRatio(t *testing.T) {
	rec := &gestureRecorder{}
	d := NewGestureDetector(CapabilityScale, testGestureConfig(), rec)
	t0 := time.Unix(0, 0)

	d.OnTouchEvent(touch(ActionDown, t0, pt(0, 200, 250)))
	d.OnTouchEvent(touchIndex(ActionPointerDown, 1, t0.Add(10*time.Millisecond), pt(0, 200, 250), pt(1, 300, 250)))
	if !d.IsScaling() {
		t.Fatal("expected scaling with two spread pointers")
	}
	d.OnTouchEvent(touch(ActionMove, t0.Add(20*time.Millisecond), pt(0, 150, 250), pt(1, 350, 250)))

	if len(rec.scales) != 1 {
		t.Fatalf("scales = %v, want 1", rec.scales)
	}
	s := rec.scales[0]
	assertNear(t, "factor", s[0], 2)
	assertNear(t, "focus x", s[1], 250)
	assertNear(t, "focus y", s[2], 250)
	if len(rec.drags) != 0 {
		t.Errorf("drag emitted during pinch: %v", rec.drags)
	}

	d.OnTouchEvent(touchIndex(ActionPointerUp, 1, t0.Add(30*time.Millisecond), pt(0, 150, 250), pt(1, 350, 250)))
	if d.IsScaling() {
		t.Error("still scaling with one pointer")
	}
}

func TestScaleDetectorIgnoresNarrowSpan(t *testing.T) {
	rec := &gestureRecorder{}
	d := NewGestureDetector(CapabilityScale, testGestureConfig(), rec)
	t0 := time.Unix(0, 0)

	d.OnTouchEvent(touch(ActionDown, t0, pt(0, 100, 100)))
	d.OnTouchEvent(touchIndex(ActionPointerDown, 1, t0, pt(0, 100, 100), pt(1, 104, 100)))
	if d.IsScaling() {
		t.Error("scaling below minimum span")
	}
}

func TestSpanCentroid(t *testing.T) {
	ev := touch(ActionMove, time.Time{}, pt(0, 0, 0), pt(1, 10, 0), pt(2, 100, 100))
	fx, fy, s, n := span(ev, 2)
	assertNear(t, "fx", fx, 5)
	assertNear(t, "fy", fy, 0)
	assertNear(t, "span", s, 10)
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
}

func TestVelocityTracker(t *testing.T) {
	var v velocityTracker
	t0 := time.Unix(0, 0)
	for i := 0; i <= 10; i++ {
		v.add(t0.Add(time.Duration(i)*10*time.Millisecond), float64(i)*5, float64(i)*-3)
	}
	vx, vy := v.velocity(0)
	assertNear(t, "vx", math.Round(vx), 500)
	assertNear(t, "vy", math.Round(vy), -300)

	vx, _ = v.velocity(100)
	assertNear(t, "clamped vx", vx, 100)

	v.clear()
	vx, vy = v.velocity(0)
	if vx != 0 || vy != 0 {
		t.Errorf("cleared velocity = (%v,%v)", vx, vy)
	}
}

func TestVelocityTrackerDropsOldSamples(t *testing.T) {
	var v velocityTracker
	t0 := time.Unix(0, 0)
	v.add(t0, 0, 0)
	v.add(t0.Add(time.Second), 1000, 0)
	v.add(t0.Add(time.Second+50*time.Millisecond), 1000, 0)
	vx, _ := v.velocity(0)
	assertNear(t, "vx", vx, 0)
}
