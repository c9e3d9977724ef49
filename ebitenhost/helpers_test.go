package ebitenhost

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/photoview"
)

const frame = 16 * time.Millisecond

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeInput stands in for ebiten polling.
type fakeInput struct {
	down   []photoview.Pointer
	dy     float64
	cx, cy float64
}

func (f *fakeInput) pointers(buf []photoview.Pointer) []photoview.Pointer {
	return append(buf, f.down...)
}

func (f *fakeInput) wheel() (dy, x, y float64) {
	dy, f.dy = f.dy, 0
	return dy, f.cx, f.cy
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestPager builds a 400x400 pager with n pages of 200x100 content,
// which fits each page exactly in width at scale 2.
func newTestPager(t *testing.T, n int) (*Pager, *fakeClock, *fakeInput) {
	t.Helper()
	clk := newFakeClock()
	in := &fakeInput{}
	p := NewPager(PagerConfig{Width: 400, Height: 400, Clock: clk, Logger: quietLogger()})
	p.input = in
	for i := 0; i < n; i++ {
		if _, err := p.Add(ebiten.NewImage(200, 100), photoview.Config{}); err != nil {
			t.Fatal(err)
		}
	}
	return p, clk, in
}

// runFrames advances the clock and updates the pager n times.
func runFrames(t *testing.T, p *Pager, clk *fakeClock, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		clk.Advance(frame)
		if err := p.Update(); err != nil {
			t.Fatal(err)
		}
	}
}

// drain runs frames until injected input is consumed, then settle more.
func drain(t *testing.T, p *Pager, clk *fakeClock, settle int) {
	t.Helper()
	for i := 0; p.Injecting(); i++ {
		if i > 1000 {
			t.Fatal("injected input never drained")
		}
		runFrames(t, p, clk, 1)
	}
	runFrames(t, p, clk, settle)
}
