package photoview

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/tanema/gween/ease"
)

// Attacher binds the pan, zoom, rotate and fling engine to a Host. It turns
// raw touch input into changes of the user matrix, keeps the content within
// bounds, runs zoom and fling animations on host frames and publishes the
// resulting transform.
//
// An Attacher is not safe for concurrent use; every method must be called
// from the host's UI thread.
type Attacher struct {
	ref   hostRef
	log   *slog.Logger
	clock Clock

	transform    transformModel
	scaleType    ScaleType
	minScale     float64
	midScale     float64
	maxScale     float64
	baseRotation float64
	rotation     float64

	zoomDuration         time.Duration
	zoomEasing           ease.TweenFunc
	flingTimeConstant    time.Duration
	edgeReleaseThreshold float64
	releaseVertical      bool

	zoomable                   bool
	allowParentInterceptOnEdge bool
	blockParentIntercept       bool

	horizontalEdge ScrollEdge
	verticalEdge   VerticalEdge
	viewW, viewH   float64

	detector       GestureDetector
	taps           tapDetector
	tapTimerPosted bool

	zoom  *zoomTask
	fling *flingTask

	onMatrixChange    MatrixChangedFunc
	onPhotoTap        PhotoTapFunc
	onOutsidePhotoTap OutsidePhotoTapFunc
	onViewTap         ViewTapFunc
	onLongPress       LongPressFunc
	onScaleChange     ScaleChangedFunc
	onSingleFling     SingleFlingFunc
	onViewDrag        ViewDragFunc
	doubleTap         DoubleTapListener

	cleaned bool
}

// New attaches an engine to host, holding it strongly. It returns
// ErrScaleOrder or ErrUnsupportedScaleType for an invalid cfg.
func New(host Host, cfg Config) (*Attacher, error) {
	if host == nil {
		panic("photoview: New called with nil host")
	}
	return newAttacher(strongRef(host), host, cfg)
}

// NewWeak attaches an engine to host without keeping host reachable. Once
// the host is garbage collected the attacher cleans itself up and every
// call becomes a no-op.
func NewWeak[T any, PT interface {
	*T
	Host
}](host PT, cfg Config) (*Attacher, error) {
	if host == nil {
		panic("photoview: NewWeak called with nil host")
	}
	return newAttacher(weakRef[T, PT](host), host, cfg)
}

func newAttacher(ref hostRef, probe Host, cfg Config) (*Attacher, error) {
	cfg = cfg.withDefaults()
	if err := checkZoomLevels(cfg.MinScale, cfg.MidScale, cfg.MaxScale); err != nil {
		return nil, err
	}
	if !cfg.ScaleType.supported() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScaleType, cfg.ScaleType)
	}

	a := &Attacher{
		ref:                        ref,
		log:                        cfg.Logger,
		clock:                      cfg.Clock,
		transform:                  newTransformModel(),
		scaleType:                  cfg.ScaleType,
		minScale:                   cfg.MinScale,
		midScale:                   cfg.MidScale,
		maxScale:                   cfg.MaxScale,
		zoomDuration:               cfg.ZoomDuration,
		zoomEasing:                 cfg.ZoomEasing,
		flingTimeConstant:          cfg.FlingTimeConstant,
		edgeReleaseThreshold:       cfg.EdgeReleaseThreshold,
		releaseVertical:            cfg.ReleaseOnVerticalEdge,
		zoomable:                   true,
		allowParentInterceptOnEdge: true,
		horizontalEdge:             EdgeBoth,
		verticalEdge:               EdgeTopBottom,
	}

	capability := probeCapability(cfg.Capability, probe)
	a.detector = NewGestureDetector(capability, cfg, gestureSink{a})
	a.taps = tapDetector{
		touchSlop:            cfg.TouchSlop,
		doubleTapSlop:        cfg.DoubleTapSlop,
		doubleTapTimeout:     cfg.DoubleTapTimeout,
		longPressTimeout:     cfg.LongPressTimeout,
		minVelocity:          cfg.MinFlingVelocity,
		maxVelocity:          cfg.MaxFlingVelocity,
		onSingleTapConfirmed: func(x, y float64) { a.doubleTapListener().OnSingleTapConfirmed(x, y) },
		onDoubleTap:          func(x, y float64) { a.doubleTapListener().OnDoubleTap(x, y) },
		onLongPress:          a.handleLongPress,
		onFling:              a.handleSingleFling,
	}
	a.log.Debug("attached", "capability", capability, "scale_type", a.scaleType)

	a.viewW, a.viewH = probe.ViewportSize()
	a.Update()
	return a, nil
}

// hostView resolves the host. A host that has gone away cleans up the
// attacher and yields nil.
func (a *Attacher) hostView() Host {
	if a.ref == nil {
		return nil
	}
	h := a.ref()
	if h == nil {
		a.log.Debug("host released, cleaning up")
		a.Cleanup()
	}
	return h
}

// post schedules fn on the host's next frame.
func (a *Attacher) post(fn func()) {
	if h := a.hostView(); h != nil {
		h.PostOnAnimation(fn)
	}
}

func hasContent(h Host) bool {
	w, ht, ok := h.ContentSize()
	return ok && w > 0 && ht > 0
}

// Update recomputes the base matrix from the current content, viewport and
// scale type, and resets the user matrix. Call it when any of them change.
func (a *Attacher) Update() {
	h := a.hostView()
	if h == nil {
		return
	}
	a.updateBaseMatrix(h)
	a.resetMatrix()
}

// OnGlobalLayout notifies the attacher that the viewport may have changed
// size. The base matrix is recomputed only when it did.
func (a *Attacher) OnGlobalLayout() {
	h := a.hostView()
	if h == nil {
		return
	}
	vw, vh := h.ViewportSize()
	if vw == a.viewW && vh == a.viewH {
		return
	}
	a.viewW, a.viewH = vw, vh
	a.updateBaseMatrix(h)
	a.resetMatrix()
}

func (a *Attacher) updateBaseMatrix(h Host) {
	cw, ch, ok := h.ContentSize()
	if !ok {
		return
	}
	vw, vh := h.ViewportSize()
	a.transform.setBase(cw, ch, vw, vh, a.scaleType, a.baseRotation)
}

// resetMatrix clears the user matrix back to the base rotation and
// publishes the result.
func (a *Attacher) resetMatrix() {
	a.transform.resetUser()
	a.rotation = 0
	a.rotateBy(a.baseRotation)
	a.checkMatrixBounds()
	if h := a.hostView(); h != nil {
		a.publish(h, a.transform.composed())
	}
}

// checkMatrixBounds pulls the user matrix back within bounds and records
// the scroll edges. It reports false when there is nothing to check.
func (a *Attacher) checkMatrixBounds() bool {
	h := a.hostView()
	if h == nil {
		return false
	}
	rect, ok := a.displayRect(h, a.transform.composed())
	if !ok {
		return false
	}
	vw, vh := h.ViewportSize()
	res := resolveBounds(rect, vw, vh, a.scaleType)
	a.horizontalEdge, a.verticalEdge = res.horizontal, res.vertical
	a.transform.applyTranslate(res.dx, res.dy)
	return true
}

func (a *Attacher) checkAndDisplayMatrix() {
	if !a.checkMatrixBounds() {
		return
	}
	if h := a.hostView(); h != nil {
		a.publish(h, a.transform.composed())
	}
}

func (a *Attacher) publish(h Host, m Matrix) {
	h.SetImageMatrix(m)
	if a.onMatrixChange == nil {
		return
	}
	if rect, ok := a.displayRect(h, m); ok {
		a.onMatrixChange(rect)
	}
}

func (a *Attacher) displayRect(h Host, m Matrix) (Rect, bool) {
	cw, ch, ok := h.ContentSize()
	if !ok || cw <= 0 || ch <= 0 {
		return Rect{}, false
	}
	return contentRect(m, cw, ch), true
}

// DisplayRect returns the content bounds as currently displayed, after
// bounds correction. ok is false when there is no host or no content.
func (a *Attacher) DisplayRect() (rect Rect, ok bool) {
	a.checkMatrixBounds()
	h := a.hostView()
	if h == nil {
		return Rect{}, false
	}
	return a.displayRect(h, a.transform.composed())
}

// DisplayMatrix returns the transform mapping content to the viewport.
func (a *Attacher) DisplayMatrix() Matrix {
	return a.transform.composed()
}

// SetDisplayMatrix restores a transform previously captured with
// DisplayMatrix. It is a no-op without host or content.
func (a *Attacher) SetDisplayMatrix(m Matrix) error {
	if !m.valid() {
		return fmt.Errorf("set display matrix: %w", ErrInvalidMatrix)
	}
	h := a.hostView()
	if h == nil || !hasContent(h) {
		return nil
	}
	if err := a.transform.setComposed(m); err != nil {
		return fmt.Errorf("set display matrix: %w", err)
	}
	a.checkAndDisplayMatrix()
	return nil
}

// UserMatrix returns the gesture transform applied after the base matrix.
func (a *Attacher) UserMatrix() Matrix {
	return a.transform.user
}

// SetUserMatrix replaces the gesture transform. It is a no-op without host
// or content.
func (a *Attacher) SetUserMatrix(m Matrix) error {
	if !m.valid() {
		return fmt.Errorf("set user matrix: %w", ErrInvalidMatrix)
	}
	h := a.hostView()
	if h == nil || !hasContent(h) {
		return nil
	}
	if err := a.transform.setUser(m); err != nil {
		return err
	}
	a.checkAndDisplayMatrix()
	return nil
}

// Scale returns the current user scale.
func (a *Attacher) Scale() float64 {
	return a.transform.currentScale()
}

// MinimumScale returns the smallest zoom level.
func (a *Attacher) MinimumScale() float64 { return a.minScale }

// MediumScale returns the middle zoom level.
func (a *Attacher) MediumScale() float64 { return a.midScale }

// MaximumScale returns the largest zoom level.
func (a *Attacher) MaximumScale() float64 { return a.maxScale }

// SetMinimumScale sets the smallest zoom level.
func (a *Attacher) SetMinimumScale(v float64) error {
	return a.SetScaleLevels(v, a.midScale, a.maxScale)
}

// SetMediumScale sets the middle zoom level.
func (a *Attacher) SetMediumScale(v float64) error {
	return a.SetScaleLevels(a.minScale, v, a.maxScale)
}

// SetMaximumScale sets the largest zoom level.
func (a *Attacher) SetMaximumScale(v float64) error {
	return a.SetScaleLevels(a.minScale, a.midScale, v)
}

// SetScaleLevels sets all three zoom levels at once. The levels are left
// unchanged and ErrScaleOrder is returned unless minZoom < midZoom < maxZoom.
func (a *Attacher) SetScaleLevels(minZoom, midZoom, maxZoom float64) error {
	if err := checkZoomLevels(minZoom, midZoom, maxZoom); err != nil {
		return err
	}
	a.minScale, a.midScale, a.maxScale = minZoom, midZoom, maxZoom
	return nil
}

// SetScale zooms to scale around the viewport center.
func (a *Attacher) SetScale(scale float64, animate bool) error {
	h := a.hostView()
	if h == nil {
		return nil
	}
	vw, vh := h.ViewportSize()
	return a.SetScaleAt(scale, vw/2, vh/2, animate)
}

// SetScaleAt zooms to scale around (focusX, focusY) in viewport
// coordinates. A scale outside [MinimumScale, MaximumScale] is declined with
// ErrScaleOutOfRange.
func (a *Attacher) SetScaleAt(scale, focusX, focusY float64, animate bool) error {
	if a.hostView() == nil {
		return nil
	}
	if scale < a.minScale || scale > a.maxScale {
		a.log.Info("scale request declined", "scale", scale, "min", a.minScale, "max", a.maxScale)
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrScaleOutOfRange, scale, a.minScale, a.maxScale)
	}
	if animate {
		a.zoomTo(scale, focusX, focusY)
		return nil
	}
	a.cancelZoom()
	if cur := a.Scale(); cur > 0 {
		a.transform.applyScale(scale/cur, focusX, focusY)
		a.checkAndDisplayMatrix()
	}
	return nil
}

// zoomTo starts an animated zoom, replacing any zoom or fling in flight.
func (a *Attacher) zoomTo(target, focusX, focusY float64) {
	a.cancelZoom()
	a.cancelFling()
	z := newZoomTask(a, a.Scale(), target, focusX, focusY)
	a.zoom = z
	a.post(z.run)
}

func (a *Attacher) cancelZoom() {
	if a.zoom != nil {
		a.zoom.cancel()
		a.zoom = nil
	}
}

func (a *Attacher) cancelFling() {
	if a.fling != nil {
		a.fling.cancel()
		a.fling = nil
	}
}

// ScaleType returns the fitting policy.
func (a *Attacher) ScaleType() ScaleType { return a.scaleType }

// SetScaleType changes the fitting policy and resets the transform.
func (a *Attacher) SetScaleType(st ScaleType) error {
	if !st.supported() {
		return fmt.Errorf("%w: %s", ErrUnsupportedScaleType, st)
	}
	if st == a.scaleType {
		return nil
	}
	a.scaleType = st
	a.Update()
	return nil
}

// Rotation returns the absolute user rotation in degrees, in [0, 360).
func (a *Attacher) Rotation() float64 { return a.rotation }

// SetRotationTo rotates the content to an absolute angle around the
// viewport center.
func (a *Attacher) SetRotationTo(degrees float64) {
	if a.hostView() == nil {
		return
	}
	target := normalizeDegrees(degrees)
	delta := target - a.rotation
	a.rotateBy(delta)
	a.checkAndDisplayMatrix()
}

// SetRotationBy rotates the content by a relative angle around the viewport
// center.
func (a *Attacher) SetRotationBy(degrees float64) {
	if a.hostView() == nil {
		return
	}
	a.rotateBy(degrees)
	a.checkAndDisplayMatrix()
}

func (a *Attacher) rotateBy(degrees float64) {
	degrees = math.Mod(degrees, 360)
	if degrees == 0 {
		return
	}
	var px, py float64
	if h := a.hostView(); h != nil {
		vw, vh := h.ViewportSize()
		px, py = vw/2, vh/2
	}
	a.transform.applyRotate(degrees, px, py)
	a.rotation = normalizeDegrees(a.rotation + degrees)
}

// BaseRotation returns the rotation applied on every reset.
func (a *Attacher) BaseRotation() float64 { return a.baseRotation }

// SetBaseRotation sets a rotation that is re-applied whenever the transform
// is reset, and resets it.
func (a *Attacher) SetBaseRotation(degrees float64) {
	a.baseRotation = math.Mod(degrees, 360)
	a.Update()
}

// Zoomable reports whether gestures are handled.
func (a *Attacher) Zoomable() bool { return a.zoomable }

// SetZoomable enables or disables gesture handling. Either way the
// transform is reset.
func (a *Attacher) SetZoomable(zoomable bool) {
	a.zoomable = zoomable
	a.Update()
}

// SetAllowParentInterceptOnEdge controls whether a drag against a pinned
// edge hands the touch stream back to the enclosing container.
func (a *Attacher) SetAllowParentInterceptOnEdge(allow bool) {
	a.allowParentInterceptOnEdge = allow
}

// SetZoomTransitionDuration sets the length of animated zooms. A negative
// duration restores the 200ms default.
func (a *Attacher) SetZoomTransitionDuration(d time.Duration) {
	if d < 0 {
		d = DefaultZoomDuration * time.Millisecond
	}
	a.zoomDuration = d
}

// SetZoomEasing sets the easing of animated zooms. nil restores
// ease.InOutSine.
func (a *Attacher) SetZoomEasing(fn ease.TweenFunc) {
	if fn == nil {
		fn = ease.InOutSine
	}
	a.zoomEasing = fn
}

// SetOnMatrixChange registers the matrix-changed listener.
func (a *Attacher) SetOnMatrixChange(fn MatrixChangedFunc) { a.onMatrixChange = fn }

// SetOnPhotoTap registers the photo-tap listener. Without it, taps are not
// hit-tested against the content.
func (a *Attacher) SetOnPhotoTap(fn PhotoTapFunc) { a.onPhotoTap = fn }

// SetOnOutsidePhotoTap registers the listener for taps that miss the content.
func (a *Attacher) SetOnOutsidePhotoTap(fn OutsidePhotoTapFunc) { a.onOutsidePhotoTap = fn }

// SetOnViewTap registers the view-tap listener.
func (a *Attacher) SetOnViewTap(fn ViewTapFunc) { a.onViewTap = fn }

// SetOnLongPress registers the long-press listener.
func (a *Attacher) SetOnLongPress(fn LongPressFunc) { a.onLongPress = fn }

// SetOnScaleChange registers the pinch scale listener.
func (a *Attacher) SetOnScaleChange(fn ScaleChangedFunc) { a.onScaleChange = fn }

// SetOnSingleFling registers the single-pointer fling listener.
func (a *Attacher) SetOnSingleFling(fn SingleFlingFunc) { a.onSingleFling = fn }

// SetOnViewDrag registers the drag listener.
func (a *Attacher) SetOnViewDrag(fn ViewDragFunc) { a.onViewDrag = fn }

// SetOnDoubleTapListener replaces tap handling. nil restores the default,
// which dispatches tap listeners and cycles zoom levels on double tap.
func (a *Attacher) SetOnDoubleTapListener(l DoubleTapListener) { a.doubleTap = l }

func (a *Attacher) doubleTapListener() DoubleTapListener {
	if a.doubleTap != nil {
		return a.doubleTap
	}
	return defaultDoubleTap{a}
}

// State returns the current gesture phase.
func (a *Attacher) State() State {
	switch {
	case a.detector != nil && a.detector.IsDragging():
		return StateDragging
	case a.zoom != nil:
		return StateSettlingZoom
	case a.fling != nil:
		return StateFlinging
	}
	return StateIdle
}

// IsScaling reports whether a pinch is in progress.
func (a *Attacher) IsScaling() bool {
	return a.detector != nil && a.detector.IsScaling()
}

// ScrollEdge returns the horizontal edge state from the last bounds check.
func (a *Attacher) ScrollEdge() ScrollEdge { return a.horizontalEdge }

// VerticalEdge returns the vertical edge state from the last bounds check.
func (a *Attacher) VerticalEdge() VerticalEdge { return a.verticalEdge }

// OnTouch feeds one input event to the engine and reports whether it was
// consumed. Events are ignored while zoom is disabled or there is no
// content.
func (a *Attacher) OnTouch(ev MotionEvent) bool {
	h := a.hostView()
	if h == nil || !a.zoomable || !hasContent(h) {
		return false
	}

	handled := false
	switch ev.Action {
	case ActionDown:
		h.RequestDisallowIntercept(true)
		a.cancelFling()
	case ActionUp, ActionCancel:
		handled = a.settleZoom()
	}

	wasScaling, wasDragging := a.detector.IsScaling(), a.detector.IsDragging()
	if a.detector.OnTouchEvent(ev) {
		handled = true
	}
	didntScale := !wasScaling && !a.detector.IsScaling()
	didntDrag := !wasDragging && !a.detector.IsDragging()
	a.blockParentIntercept = didntScale && didntDrag

	a.taps.onTouchEvent(ev)
	a.scheduleTapTimer()
	return handled
}

// settleZoom animates back into [min, max] at the end of a gesture.
func (a *Attacher) settleZoom() bool {
	scale := a.Scale()
	var target float64
	switch {
	case scale < a.minScale:
		target = a.minScale
	case scale > a.maxScale:
		target = a.maxScale
	default:
		return false
	}
	rect, ok := a.DisplayRect()
	if !ok {
		return false
	}
	cx, cy := rect.Center()
	a.log.Debug("settling zoom", "scale", scale, "target", target)
	a.zoomTo(target, cx, cy)
	return true
}

func (a *Attacher) scheduleTapTimer() {
	if a.tapTimerPosted || a.cleaned || !a.taps.pending() {
		return
	}
	a.tapTimerPosted = true
	a.post(a.tickTaps)
}

func (a *Attacher) tickTaps() {
	a.tapTimerPosted = false
	if a.cleaned {
		return
	}
	a.taps.tick(a.clock.Now())
	a.scheduleTapTimer()
}

// gestureSink routes detector signals to the attacher.
type gestureSink struct {
	a *Attacher
}

func (g gestureSink) OnDrag(dx, dy float64) {
	a := g.a
	if a.detector.IsScaling() {
		return
	}
	a.log.Debug("drag", "dx", dx, "dy", dy)
	if a.onViewDrag != nil {
		a.onViewDrag(dx, dy)
	}
	a.transform.applyTranslate(dx, dy)
	a.checkAndDisplayMatrix()

	h := a.hostView()
	if h == nil {
		return
	}
	if a.allowParentInterceptOnEdge && !a.blockParentIntercept {
		if a.releasesAtEdge(dx, dy) {
			h.RequestDisallowIntercept(false)
		}
		return
	}
	h.RequestDisallowIntercept(true)
}

// releasesAtEdge reports whether a drag of (dx, dy) pushes past an edge the
// content is already pinned at, so the parent could take over.
func (a *Attacher) releasesAtEdge(dx, dy float64) bool {
	t := a.edgeReleaseThreshold
	switch {
	case a.horizontalEdge == EdgeBoth,
		a.horizontalEdge == EdgeLeft && dx >= t,
		a.horizontalEdge == EdgeRight && dx <= -t:
		return true
	}
	if !a.releaseVertical {
		return false
	}
	return a.verticalEdge == EdgeTop && dy >= t ||
		a.verticalEdge == EdgeBottom && dy <= -t
}

func (g gestureSink) OnFling(startX, startY, velocityX, velocityY float64) {
	a := g.a
	h := a.hostView()
	if h == nil {
		return
	}
	rect, ok := a.displayRect(h, a.transform.composed())
	if !ok {
		return
	}
	a.log.Debug("fling", "start_x", startX, "start_y", startY, "vx", velocityX, "vy", velocityY)
	a.cancelFling()
	vw, vh := h.ViewportSize()
	if f := newFlingTask(a, rect, vw, vh, velocityX, velocityY); f != nil {
		a.fling = f
		a.post(f.run)
	}
}

// OnScale applies a pinch step around the focus. A growing step that would
// pass the maximum scale is clamped to land on it rather than skipped.
func (g gestureSink) OnScale(factor, focusX, focusY float64) {
	a := g.a
	if factor >= 1 {
		scale := a.Scale()
		if scale >= a.maxScale {
			return
		}
		if scale*factor > a.maxScale {
			factor = a.maxScale / scale
		}
	}
	a.log.Debug("scale", "factor", factor, "focus_x", focusX, "focus_y", focusY)
	if a.onScaleChange != nil {
		a.onScaleChange(factor, focusX, focusY)
	}
	a.transform.applyScale(factor, focusX, focusY)
	a.checkAndDisplayMatrix()
}

func (a *Attacher) handleLongPress(x, y float64) {
	if a.onLongPress != nil {
		a.onLongPress(x, y)
	}
}

// handleSingleFling forwards a single-pointer fling while the content is
// not zoomed in.
func (a *Attacher) handleSingleFling(down, up MotionEvent, vx, vy float64) {
	if a.onSingleFling == nil || a.Scale() > DefaultMinScale {
		return
	}
	if down.PointerCount() > 1 || up.PointerCount() > 1 {
		return
	}
	a.onSingleFling(down, up, vx, vy)
}

// Cleanup detaches listeners, cancels animations and releases the host.
// Further calls on the attacher are no-ops. Cleanup is idempotent.
func (a *Attacher) Cleanup() {
	if a.cleaned {
		return
	}
	a.cleaned = true
	a.cancelZoom()
	a.cancelFling()
	a.taps.cancel()

	a.onMatrixChange = nil
	a.onPhotoTap = nil
	a.onOutsidePhotoTap = nil
	a.onViewTap = nil
	a.onLongPress = nil
	a.onScaleChange = nil
	a.onSingleFling = nil
	a.onViewDrag = nil
	a.doubleTap = nil
	a.ref = nil
}
