package photoview

// Callback types. Each listener slot on an Attacher holds at most one
// function; setting nil clears it.
type (
	// MatrixChangedFunc is called with the displayed content rect after
	// every published matrix change.
	MatrixChangedFunc func(rect Rect)
	// PhotoTapFunc is called on a confirmed single tap inside the content.
	// x and y are fractions of the content rect in [0, 1].
	PhotoTapFunc func(x, y float64)
	// OutsidePhotoTapFunc is called on a confirmed single tap that misses the
	// content.
	OutsidePhotoTapFunc func()
	// ViewTapFunc is called on every confirmed single tap with viewport
	// coordinates.
	ViewTapFunc func(x, y float64)
	// LongPressFunc is called when a pointer is held still past the
	// long-press timeout.
	LongPressFunc func(x, y float64)
	// ScaleChangedFunc is called for each applied pinch step.
	ScaleChangedFunc func(factor, focusX, focusY float64)
	// SingleFlingFunc is called for a single-pointer fling while the content
	// is not zoomed in. Returning true marks the fling consumed.
	SingleFlingFunc func(down, up MotionEvent, velocityX, velocityY float64) bool
	// ViewDragFunc is called for each applied drag step.
	ViewDragFunc func(dx, dy float64)
)

// DoubleTapListener handles tap classification. The default implementation
// dispatches photo, outside and view taps and cycles zoom levels on double
// tap; SetOnDoubleTapListener replaces it.
type DoubleTapListener interface {
	OnSingleTapConfirmed(x, y float64) bool
	OnDoubleTap(x, y float64) bool
}

// defaultDoubleTap is the built-in DoubleTapListener.
type defaultDoubleTap struct {
	a *Attacher
}

func (d defaultDoubleTap) OnSingleTapConfirmed(x, y float64) bool {
	a := d.a
	if a.onViewTap != nil {
		a.onViewTap(x, y)
	}
	if a.onPhotoTap == nil {
		return false
	}
	rect, ok := a.DisplayRect()
	if !ok {
		return false
	}
	if rect.Contains(x, y) {
		a.onPhotoTap((x-rect.X)/rect.Width, (y-rect.Y)/rect.Height)
		return true
	}
	if a.onOutsidePhotoTap != nil {
		a.onOutsidePhotoTap()
	}
	return false
}

// zoomLevelTolerance lets an animated zoom that landed a hair below a level
// still count as reaching it.
const zoomLevelTolerance = 1e-4

func (d defaultDoubleTap) OnDoubleTap(x, y float64) bool {
	a := d.a
	scale := a.Scale()
	var target float64
	switch {
	case scale < a.midScale-zoomLevelTolerance:
		target = a.midScale
	case scale < a.maxScale-zoomLevelTolerance:
		target = a.maxScale
	default:
		target = a.minScale
	}
	if err := a.SetScaleAt(target, x, y, true); err != nil {
		a.log.Debug("double tap zoom declined", "scale", scale, "target", target, "error", err)
		return false
	}
	return true
}

