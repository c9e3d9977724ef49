package ebitenhost

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/photoview"
)

func TestViewFitsContent(t *testing.T) {
	v, err := NewView(ebiten.NewImage(200, 100), 400, 400, photoview.Config{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	want := photoview.Matrix{2, 0, 0, 2, 0, 100}
	if diff := cmp.Diff(want, v.Matrix(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Matrix mismatch (-want +got):\n%s", diff)
	}
	if w, h, ok := v.ContentSize(); !ok || w != 200 || h != 100 {
		t.Errorf("ContentSize = %v, %v, %v", w, h, ok)
	}
	if !v.InterceptAllowed() {
		t.Error("intercept disallowed before any touch")
	}
}

func TestViewGeoMIncludesFrame(t *testing.T) {
	v, err := NewView(ebiten.NewImage(200, 100), 400, 400, photoview.Config{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	v.setFrame(400, 0, 400, 400)
	g := v.geoM()
	tests := []struct{ x, y, wantX, wantY float64 }{
		{0, 0, 400, 100},
		{200, 100, 800, 300},
	}
	for _, tt := range tests {
		x, y := g.Apply(tt.x, tt.y)
		if math.Abs(x-tt.wantX) > 1e-9 || math.Abs(y-tt.wantY) > 1e-9 {
			t.Errorf("Apply(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestViewWithoutImage(t *testing.T) {
	v, err := NewView(nil, 400, 400, photoview.Config{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, ok := v.ContentSize(); ok {
		t.Error("ContentSize ok without an image")
	}
	if _, ok := v.Attacher().DisplayRect(); ok {
		t.Error("DisplayRect ok without an image")
	}
	v.Draw(nil)

	v.SetImage(ebiten.NewImage(400, 200))
	rect, ok := v.Attacher().DisplayRect()
	if !ok || rect != (photoview.Rect{X: 0, Y: 100, Width: 400, Height: 200}) {
		t.Errorf("DisplayRect after SetImage = %v, %v", rect, ok)
	}
}

func TestViewFramesRunNextFrame(t *testing.T) {
	v, err := NewView(nil, 100, 100, photoview.Config{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	ran := 0
	v.PostOnAnimation(func() {
		ran++
		v.PostOnAnimation(func() { ran++ })
	})
	if n := v.runFrame(); n != 1 || ran != 1 {
		t.Fatalf("first frame ran %d callbacks, ran = %d", n, ran)
	}
	if n := v.runFrame(); n != 1 || ran != 2 {
		t.Fatalf("second frame ran %d callbacks, ran = %d", n, ran)
	}
	if n := v.runFrame(); n != 0 {
		t.Errorf("third frame ran %d callbacks", n)
	}
}

func TestViewDispatchCopiesEvent(t *testing.T) {
	v, err := NewView(ebiten.NewImage(200, 100), 400, 400, photoview.Config{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	v.setFrame(400, 0, 400, 400)

	ev := photoview.MotionEvent{
		Action:   photoview.ActionDown,
		Pointers: []photoview.Pointer{{X: 450, Y: 200}},
		Time:     newFakeClock().Now(),
	}
	v.dispatch(ev)
	if ev.Pointers[0].X != 450 {
		t.Error("dispatch mutated the caller's event")
	}
	if v.InterceptAllowed() {
		t.Error("touch down did not disallow intercept")
	}
}

func TestViewSetFrameRelayouts(t *testing.T) {
	v, err := NewView(ebiten.NewImage(200, 100), 400, 400, photoview.Config{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	v.setFrame(0, 0, 200, 400)
	rect, _ := v.Attacher().DisplayRect()
	if rect != (photoview.Rect{X: 0, Y: 150, Width: 200, Height: 100}) {
		t.Errorf("DisplayRect after resize = %v", rect)
	}
}

func TestViewClose(t *testing.T) {
	v, err := NewView(ebiten.NewImage(10, 10), 100, 100, photoview.Config{Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	v.PostOnAnimation(func() { t.Error("callback ran after Close") })
	v.Close()
	v.Close()
	if v.runFrame() != 0 {
		t.Error("frames left after Close")
	}
}
