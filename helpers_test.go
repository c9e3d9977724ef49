package photoview

import (
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const epsilon = 1e-9

var approx = cmpopts.EquateApprox(0, 1e-6)

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Matrix) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
	}
}

func assertRect(t *testing.T, name string, got, want Rect) {
	t.Helper()
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
	}
}

// --- fakes ---

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeHost struct {
	vw, vh     float64
	cw, ch     float64
	noContent  bool
	matrix     Matrix
	published  int
	disallow   []bool
	frames     []func()
	capability Capability
}

func newFakeHost(vw, vh, cw, ch float64) *fakeHost {
	return &fakeHost{vw: vw, vh: vh, cw: cw, ch: ch}
}

func (h *fakeHost) ViewportSize() (float64, float64) { return h.vw, h.vh }

func (h *fakeHost) ContentSize() (float64, float64, bool) {
	return h.cw, h.ch, !h.noContent
}

func (h *fakeHost) SetImageMatrix(m Matrix) {
	h.matrix = m
	h.published++
}

func (h *fakeHost) RequestDisallowIntercept(d bool) { h.disallow = append(h.disallow, d) }

func (h *fakeHost) PostOnAnimation(fn func()) { h.frames = append(h.frames, fn) }

func (h *fakeHost) lastDisallow(t *testing.T) bool {
	t.Helper()
	if len(h.disallow) == 0 {
		t.Fatal("no intercept request recorded")
	}
	return h.disallow[len(h.disallow)-1]
}

// runFrames advances the clock by step and runs the queued callbacks, frame
// by frame, until the queue drains or limit frames have run.
func (h *fakeHost) runFrames(clk *fakeClock, step time.Duration, limit int) int {
	n := 0
	for len(h.frames) > 0 && n < limit {
		clk.Advance(step)
		batch := h.frames
		h.frames = nil
		for _, fn := range batch {
			fn()
		}
		n++
	}
	return n
}

type capabilityHost struct {
	*fakeHost
}

func (h capabilityHost) InputCapability() Capability { return h.capability }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestAttacher attaches to 1000x1000 content in a 500x500 viewport.
func newTestAttacher(t *testing.T, cfg Config) (*Attacher, *fakeHost, *fakeClock) {
	t.Helper()
	host := newFakeHost(500, 500, 1000, 1000)
	clk := newFakeClock()
	cfg.Clock = clk
	cfg.Logger = quietLogger()
	a, err := New(host, cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, host, clk
}

// --- events ---

func touch(action Action, at time.Time, pts ...Pointer) MotionEvent {
	return MotionEvent{Action: action, Pointers: pts, Time: at}
}

func touchIndex(action Action, index int, at time.Time, pts ...Pointer) MotionEvent {
	return MotionEvent{Action: action, ActionIndex: index, Pointers: pts, Time: at}
}

func pt(id int, x, y float64) Pointer { return Pointer{ID: id, X: x, Y: y} }
