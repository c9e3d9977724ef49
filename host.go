package photoview

import "weak"

// Host is the view the engine is attached to. All methods are called on the
// host's UI thread.
type Host interface {
	// ViewportSize returns the size of the visible area in pixels.
	ViewportSize() (w, h float64)
	// ContentSize returns the intrinsic size of the content, or ok=false
	// when there is none.
	ContentSize() (w, h float64, ok bool)
	// SetImageMatrix publishes the transform that maps content to viewport.
	SetImageMatrix(m Matrix)
	// RequestDisallowIntercept asks the enclosing container not to (true)
	// or to be allowed to (false) take over the current touch stream.
	RequestDisallowIntercept(disallow bool)
	// PostOnAnimation runs fn once at the next frame.
	PostOnAnimation(fn func())
}

// hostRef resolves the host, returning nil once it is gone.
type hostRef func() Host

func strongRef(h Host) hostRef {
	return func() Host { return h }
}

// weakRef holds h without keeping it reachable.
func weakRef[T any, PT interface {
	*T
	Host
}](h PT) hostRef {
	wp := weak.Make((*T)(h))
	return func() Host {
		p := wp.Value()
		if p == nil {
			return nil
		}
		return PT(p)
	}
}
