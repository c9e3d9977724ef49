package photoview

import "time"

// velocityHorizon is the trailing window of samples used for velocity.
const velocityHorizon = 100 * time.Millisecond

type velocitySample struct {
	t    time.Time
	x, y float64
}

// velocityTracker estimates pointer velocity from recent position samples
// using a least-squares line fit per axis.
type velocityTracker struct {
	samples []velocitySample
}

func (v *velocityTracker) clear() {
	v.samples = v.samples[:0]
}

// add records a sample and discards samples older than the horizon.
func (v *velocityTracker) add(t time.Time, x, y float64) {
	v.samples = append(v.samples, velocitySample{t: t, x: x, y: y})

	cut := 0
	for cut < len(v.samples)-1 && t.Sub(v.samples[cut].t) > velocityHorizon {
		cut++
	}
	if cut > 0 {
		n := copy(v.samples, v.samples[cut:])
		v.samples = v.samples[:n]
	}
}

// velocity returns the estimated velocity in pixels per second, clamped to
// ±maxVelocity when maxVelocity is positive.
func (v *velocityTracker) velocity(maxVelocity float64) (vx, vy float64) {
	n := len(v.samples)
	if n < 2 {
		return 0, 0
	}

	origin := v.samples[n-1].t
	var meanT, meanX, meanY float64
	for _, s := range v.samples {
		meanT += s.t.Sub(origin).Seconds()
		meanX += s.x
		meanY += s.y
	}
	fn := float64(n)
	meanT /= fn
	meanX /= fn
	meanY /= fn

	var varT, covX, covY float64
	for _, s := range v.samples {
		dt := s.t.Sub(origin).Seconds() - meanT
		varT += dt * dt
		covX += dt * (s.x - meanX)
		covY += dt * (s.y - meanY)
	}
	if varT == 0 {
		return 0, 0
	}
	vx = clampAbs(covX/varT, maxVelocity)
	vy = clampAbs(covY/varT, maxVelocity)
	return vx, vy
}

func clampAbs(v, limit float64) float64 {
	if limit <= 0 {
		return v
	}
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
