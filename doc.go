// Package photoview is a pan, zoom, rotate and fling engine for a single
// image surface.
//
// The engine owns a 2D affine transform and drives it from raw touch input.
// It supports drag, pinch, double-tap zoom cycling, inertial flings and
// programmatic zoom and rotation. When the image sits inside a scrollable
// container, the engine hands the touch stream back to the container once
// the content is pinned at an edge. It draws nothing itself: a [Host]
// supplies sizes and frame callbacks, and receives the resulting [Matrix].
//
// # Quick start
//
// Implement [Host] for your view, attach an engine and forward input:
//
//	a, err := photoview.New(view, photoview.Config{})
//	if err != nil {
//		return err
//	}
//	a.SetOnPhotoTap(func(x, y float64) { log.Printf("tap at %.2f, %.2f", x, y) })
//
//	// per input event
//	a.OnTouch(ev)
//
// The subpackage photoview/ebitenhost provides a ready-made [Host] for
// [Ebitengine], including input polling, a frame queue and a paging
// container.
//
// # Transforms
//
// The displayed transform is the base matrix, which fits the content to the
// viewport according to the [ScaleType], followed by the user matrix, which
// accumulates gestures. [Attacher.Scale] reads the user scale, so 1.0 always
// means "fitted".
//
// After every change the content is pulled back within the viewport: content
// smaller than the viewport on an axis is aligned on that axis, and larger
// content may not open a gap at either edge. [Attacher.ScrollEdge] reports
// which horizontal edges are pinned.
//
// # Animation
//
// Animated zooms are tweened with [gween] using ease.InOutSine by default.
// Flings decay exponentially. Both run on host frame callbacks
// ([Host.PostOnAnimation]); there are no goroutines and no locks, so every
// call must come from the host's UI thread.
//
// # Host lifetime
//
// [New] holds the host strongly. [NewWeak] holds it through a weak pointer:
// once the host is collected the attacher cleans itself up and all calls
// become no-ops.
//
// # Large images
//
// [LoadImage] decodes an image and downsamples it by the smallest power of
// two that fits within the given bounds, see [SampleSize].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package photoview
