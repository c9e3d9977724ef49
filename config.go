package photoview

import (
	"log/slog"
	"time"

	"github.com/tanema/gween/ease"
)

// Clock supplies the current time. MotionEvent timestamps must come from the
// same clock so tap timeouts and animations agree.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Config holds attacher settings. Zero-valued fields take their defaults.
type Config struct {
	// MinScale, MidScale and MaxScale are the zoom levels. They must satisfy
	// MinScale < MidScale < MaxScale.
	MinScale float64
	MidScale float64
	MaxScale float64

	// ZoomDuration is the length of animated zooms. Default 200ms.
	ZoomDuration time.Duration
	// ZoomEasing shapes animated zooms. Default ease.InOutSine.
	ZoomEasing ease.TweenFunc

	// ScaleType is the initial fitting policy.
	ScaleType ScaleType
	// Capability selects the gesture detector variant. CapabilityAuto probes
	// the host.
	Capability Capability

	// TouchSlop is the distance in pixels a pointer must travel before a
	// drag starts. Default 8.
	TouchSlop float64
	// MinFlingVelocity and MaxFlingVelocity bound release velocity in pixels
	// per second. Defaults 50 and 8000.
	MinFlingVelocity float64
	MaxFlingVelocity float64
	// FlingVelocityFactor multiplies the tracked release velocity before it
	// is handed to the fling. Default -1.
	FlingVelocityFactor float64
	// FlingTimeConstant is the decay time constant of a fling. Default 325ms.
	FlingTimeConstant time.Duration
	// MinScaleSpan is the smallest contact spread, in pixels, that counts as
	// a pinch. Default 16.
	MinScaleSpan float64

	// DoubleTapTimeout is the window for a second tap. Default 300ms.
	DoubleTapTimeout time.Duration
	// DoubleTapSlop is the maximum distance between the two taps. Default 100.
	DoubleTapSlop float64
	// LongPressTimeout is how long a still pointer must be held. Default 500ms.
	LongPressTimeout time.Duration

	// EdgeReleaseThreshold is the per-event drag distance, in pixels, above
	// which a drag into a pinned edge releases the touch to the parent.
	// Default 1.
	EdgeReleaseThreshold float64
	// ReleaseOnVerticalEdge also releases touches that push vertically into
	// a pinned top or bottom edge.
	ReleaseOnVerticalEdge bool

	// Logger receives diagnostics. Default slog.Default() tagged with
	// component=photoview.
	Logger *slog.Logger
	// Clock is the time source. Default wall clock.
	Clock Clock
}

func (c Config) withDefaults() Config {
	if c.MinScale == 0 && c.MidScale == 0 && c.MaxScale == 0 {
		c.MinScale, c.MidScale, c.MaxScale = DefaultMinScale, DefaultMidScale, DefaultMaxScale
	}
	if c.ZoomDuration <= 0 {
		c.ZoomDuration = DefaultZoomDuration * time.Millisecond
	}
	if c.ZoomEasing == nil {
		c.ZoomEasing = ease.InOutSine
	}
	if c.TouchSlop <= 0 {
		c.TouchSlop = 8
	}
	if c.MinFlingVelocity <= 0 {
		c.MinFlingVelocity = 50
	}
	if c.MaxFlingVelocity <= 0 {
		c.MaxFlingVelocity = 8000
	}
	if c.FlingVelocityFactor == 0 {
		c.FlingVelocityFactor = -1
	}
	if c.FlingTimeConstant <= 0 {
		c.FlingTimeConstant = 325 * time.Millisecond
	}
	if c.MinScaleSpan <= 0 {
		c.MinScaleSpan = 16
	}
	if c.DoubleTapTimeout <= 0 {
		c.DoubleTapTimeout = 300 * time.Millisecond
	}
	if c.DoubleTapSlop <= 0 {
		c.DoubleTapSlop = 100
	}
	if c.LongPressTimeout <= 0 {
		c.LongPressTimeout = 500 * time.Millisecond
	}
	if c.EdgeReleaseThreshold <= 0 {
		c.EdgeReleaseThreshold = 1
	}
	if c.Logger == nil {
		c.Logger = slog.Default().With("component", "photoview")
	}
	if c.Clock == nil {
		c.Clock = realClock{}
	}
	return c
}
