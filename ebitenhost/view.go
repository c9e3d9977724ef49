package ebitenhost

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/photoview"
)

// View shows one image through a photoview engine. It implements
// photoview.Host: the engine publishes its matrix here, callbacks posted by
// the engine run on the next Update, and intercept requests are recorded
// for the enclosing Pager.
type View struct {
	img      *ebiten.Image
	contentW float64
	contentH float64

	// Frame within the pager, in screen pixels.
	x, y, w, h float64

	matrix   photoview.Matrix
	disallow bool
	frames   []func()

	attacher *photoview.Attacher
}

// NewView creates a view of img (which may be nil) sized w x h and attaches
// an engine configured by cfg. The engine holds the view weakly.
func NewView(img *ebiten.Image, w, h float64, cfg photoview.Config) (*View, error) {
	v := &View{w: w, h: h, matrix: photoview.Identity()}
	v.setImage(img)
	a, err := photoview.NewWeak(v, cfg)
	if err != nil {
		return nil, err
	}
	v.attacher = a
	return v, nil
}

// Attacher returns the engine driving this view.
func (v *View) Attacher() *photoview.Attacher { return v.attacher }

// Image returns the displayed image, or nil.
func (v *View) Image() *ebiten.Image { return v.img }

// SetImage replaces the content and resets the transform.
func (v *View) SetImage(img *ebiten.Image) {
	v.setImage(img)
	v.attacher.Update()
}

func (v *View) setImage(img *ebiten.Image) {
	v.img = img
	v.contentW, v.contentH = 0, 0
	if img != nil {
		b := img.Bounds()
		v.contentW, v.contentH = float64(b.Dx()), float64(b.Dy())
	}
}

// ViewportSize implements photoview.Host.
func (v *View) ViewportSize() (w, h float64) { return v.w, v.h }

// ContentSize implements photoview.Host.
func (v *View) ContentSize() (w, h float64, ok bool) {
	if v.img == nil {
		return 0, 0, false
	}
	return v.contentW, v.contentH, true
}

// SetImageMatrix implements photoview.Host.
func (v *View) SetImageMatrix(m photoview.Matrix) { v.matrix = m }

// RequestDisallowIntercept implements photoview.Host.
func (v *View) RequestDisallowIntercept(disallow bool) { v.disallow = disallow }

// PostOnAnimation implements photoview.Host.
func (v *View) PostOnAnimation(fn func()) { v.frames = append(v.frames, fn) }

// Matrix returns the last published content transform.
func (v *View) Matrix() photoview.Matrix { return v.matrix }

// InterceptAllowed reports whether the view currently lets its container
// take over the touch stream.
func (v *View) InterceptAllowed() bool { return !v.disallow }

// setFrame positions the view within its container. A size change is
// forwarded to the engine as a layout pass.
func (v *View) setFrame(x, y, w, h float64) {
	v.x, v.y = x, y
	if w == v.w && h == v.h {
		return
	}
	v.w, v.h = w, h
	v.attacher.OnGlobalLayout()
}

// runFrame runs the callbacks posted since the previous frame. Callbacks
// posted while running are deferred to the next frame. It returns the
// number of callbacks run.
func (v *View) runFrame() int {
	if len(v.frames) == 0 {
		return 0
	}
	batch := v.frames
	v.frames = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// dispatch translates ev from screen coordinates into the view and hands it
// to the engine.
func (v *View) dispatch(ev photoview.MotionEvent) bool {
	ev.Pointers = append([]photoview.Pointer(nil), ev.Pointers...)
	for i := range ev.Pointers {
		ev.Pointers[i].X -= v.x
		ev.Pointers[i].Y -= v.y
	}
	return v.attacher.OnTouch(ev)
}

// contains reports whether the screen point lies within the view's frame.
func (v *View) contains(sx, sy float64) bool {
	return sx >= v.x && sx < v.x+v.w && sy >= v.y && sy < v.y+v.h
}

// geoM converts the published matrix to an ebiten.GeoM positioned at the
// view's frame.
func (v *View) geoM() ebiten.GeoM {
	var g ebiten.GeoM
	m := v.matrix
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	g.Translate(v.x, v.y)
	return g
}

// Draw renders the content clipped to the view's frame.
func (v *View) Draw(screen *ebiten.Image) {
	if v.img == nil {
		return
	}
	clip := image.Rect(int(v.x), int(v.y), int(v.x+v.w), int(v.y+v.h)).Intersect(screen.Bounds())
	if clip.Empty() {
		return
	}
	dst := screen.SubImage(clip).(*ebiten.Image)
	op := &ebiten.DrawImageOptions{GeoM: v.geoM()}
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(v.img, op)
}

// Close detaches the engine.
func (v *View) Close() {
	v.attacher.Cleanup()
	v.frames = nil
}
