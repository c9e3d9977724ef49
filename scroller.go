package photoview

import (
	"math"
	"time"
)

// flingStopDistance is the remaining travel, in pixels, below which a fling
// axis is considered at rest.
const flingStopDistance = 0.5

// decayAxis is one axis of an exponential-decay fling:
// pos(t) = start + v·τ·(1 − e^(−t/τ)), clamped to [min, max].
type decayAxis struct {
	start, velocity float64
	min, max        float64
	duration        time.Duration
	pos             float64

	// stopsAtBound is set when the fling ends on a bound rather than by
	// decaying; the final position is then exactly bound.
	stopsAtBound bool
	bound        float64
}

func newDecayAxis(start, velocity, lo, hi float64, tau time.Duration) decayAxis {
	ax := decayAxis{start: start, velocity: velocity, min: lo, max: hi, pos: start}
	amplitude := velocity * tau.Seconds()
	if lo == hi || math.Abs(amplitude) <= flingStopDistance {
		return ax
	}
	// Time until the remaining travel drops below the stop distance.
	t := tau.Seconds() * math.Log(math.Abs(amplitude)/flingStopDistance)
	// Or until the bound is reached, whichever comes first.
	bound := hi
	if amplitude < 0 {
		bound = lo
	}
	switch r := 1 - (bound-start)/amplitude; {
	case r >= 1:
		// Already pinned in the direction of travel.
		t = 0
	case r > 0:
		if tb := -tau.Seconds() * math.Log(r); tb <= t {
			t = tb
			ax.stopsAtBound = true
			ax.bound = bound
		}
	}
	ax.duration = time.Duration(t * float64(time.Second))
	return ax
}

func (ax *decayAxis) at(elapsed time.Duration, tau time.Duration) (finished bool) {
	if elapsed >= ax.duration {
		elapsed = ax.duration
		finished = true
	}
	p := ax.start + ax.velocity*tau.Seconds()*(1-math.Exp(-elapsed.Seconds()/tau.Seconds()))
	if finished && ax.stopsAtBound {
		p = ax.bound
	}
	ax.pos = math.Max(ax.min, math.Min(ax.max, p))
	return finished || (ax.pos == ax.min && ax.velocity < 0) || (ax.pos == ax.max && ax.velocity > 0)
}

// scroller models an inertial fling in scroll-offset space. A new scroller
// starts finished.
type scroller struct {
	tau      time.Duration
	started  time.Time
	x, y     decayAxis
	finished bool
}

func newScroller(tau time.Duration) *scroller {
	return &scroller{tau: tau, finished: true}
}

// fling starts a new fling from (startX, startY) with the given velocity in
// pixels per second, bounded per axis.
func (s *scroller) fling(now time.Time, startX, startY, vx, vy, minX, maxX, minY, maxY float64) {
	s.started = now
	s.x = newDecayAxis(startX, vx, minX, maxX, s.tau)
	s.y = newDecayAxis(startY, vy, minY, maxY, s.tau)
	s.finished = s.x.duration == 0 && s.y.duration == 0
}

// computeScrollOffset advances the model to now. It reports false once the
// fling has finished and no further offsets will be produced.
func (s *scroller) computeScrollOffset(now time.Time) bool {
	if s.finished {
		return false
	}
	elapsed := now.Sub(s.started)
	doneX := s.x.at(elapsed, s.tau)
	doneY := s.y.at(elapsed, s.tau)
	if doneX && doneY {
		s.finished = true
	}
	return true
}

func (s *scroller) forceFinished() { s.finished = true }

func (s *scroller) isFinished() bool { return s.finished }

func (s *scroller) currX() float64 { return s.x.pos }

func (s *scroller) currY() float64 { return s.y.pos }
