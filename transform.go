package photoview

import (
	"math"
)

// transformModel owns the base (fit-to-viewport) and user (gesture) matrices.
// The displayed transform is composed on demand: base first, then user.
type transformModel struct {
	base Matrix
	user Matrix
}

func newTransformModel() transformModel {
	return transformModel{base: Identity(), user: Identity()}
}

// composed returns the displayed transform, base followed by user.
func (t *transformModel) composed() Matrix {
	return t.user.Multiply(t.base)
}

// currentScale returns the scale carried by the user matrix.
func (t *transformModel) currentScale() float64 {
	return t.user.Scale()
}

// setBase recomputes the base matrix for content of size (cw, ch) shown in
// a viewport of size (vw, vh) and resets the user matrix. A base rotation
// that is an odd multiple of 90° fits the content with its sides swapped.
// Returns false, leaving both matrices untouched, if any dimension is zero.
func (t *transformModel) setBase(cw, ch, vw, vh float64, st ScaleType, baseRotation float64) bool {
	if cw <= 0 || ch <= 0 || vw <= 0 || vh <= 0 {
		return false
	}

	widthScale := vw / cw
	heightScale := vh / ch

	var base Matrix
	switch st {
	case ScaleTypeCenter:
		base = TranslateMatrix((vw-cw)/2, (vh-ch)/2)

	case ScaleTypeTopCenter:
		base = TranslateMatrix((vw-cw)/2, 0)

	case ScaleTypeCenterCrop, ScaleTypeTopCenterCrop:
		scale := math.Max(widthScale, heightScale)
		ty := (vh - ch*scale) / 2
		if st == ScaleTypeTopCenterCrop {
			ty = 0
		}
		base = ScaleMatrix(scale, scale, 0, 0).PostTranslate((vw-cw*scale)/2, ty)

	case ScaleTypeCenterInside, ScaleTypeTopCenterInside:
		scale := math.Min(1, math.Min(widthScale, heightScale))
		ty := (vh - ch*scale) / 2
		if st == ScaleTypeTopCenterInside {
			ty = 0
		}
		base = ScaleMatrix(scale, scale, 0, 0).PostTranslate((vw-cw*scale)/2, ty)

	default:
		src := Rect{Width: cw, Height: ch}
		if int(baseRotation)%180 != 0 {
			src = Rect{Width: ch, Height: cw}
		}
		base = rectToRect(src, Rect{Width: vw, Height: vh}, st)
	}

	t.base = base
	t.user = Identity()
	return true
}

// rectToRect maps src onto dst according to one of the Fit* scale types.
func rectToRect(src, dst Rect, st ScaleType) Matrix {
	sx := dst.Width / src.Width
	sy := dst.Height / src.Height
	if st == ScaleTypeFitXY {
		return Matrix{sx, 0, 0, sy, dst.X - src.X*sx, dst.Y - src.Y*sy}
	}

	scale := math.Min(sx, sy)
	tx := dst.X - src.X*scale
	ty := dst.Y - src.Y*scale
	freeW := dst.Width - src.Width*scale
	freeH := dst.Height - src.Height*scale
	switch st {
	case ScaleTypeFitStart:
	case ScaleTypeFitEnd:
		tx += freeW
		ty += freeH
	default:
		tx += freeW / 2
		ty += freeH / 2
	}
	return Matrix{scale, 0, 0, scale, tx, ty}
}

// applyTranslate post-translates the user matrix.
func (t *transformModel) applyTranslate(dx, dy float64) {
	t.user = t.user.PostTranslate(dx, dy)
}

// applyScale post-scales the user matrix uniformly around (fx, fy).
func (t *transformModel) applyScale(factor, fx, fy float64) {
	t.user = t.user.PostScale(factor, factor, fx, fy)
}

// applyRotate post-rotates the user matrix around (px, py).
func (t *transformModel) applyRotate(degrees, px, py float64) {
	t.user = t.user.PostRotate(degrees, px, py)
}

// setUser replaces the user matrix.
func (t *transformModel) setUser(m Matrix) error {
	if !m.valid() {
		return ErrInvalidMatrix
	}
	t.user = m
	return nil
}

// setComposed replaces the user matrix so that composed() equals m.
func (t *transformModel) setComposed(m Matrix) error {
	if !m.valid() {
		return ErrInvalidMatrix
	}
	inv, ok := t.base.Invert()
	if !ok {
		return ErrInvalidMatrix
	}
	t.user = m.Multiply(inv)
	return nil
}

// resetUser returns the user matrix to identity.
func (t *transformModel) resetUser() {
	t.user = Identity()
}

// contentRect maps the content bounds (0, 0, w, h) through m.
func contentRect(m Matrix, w, h float64) Rect {
	return m.MapRect(Rect{Width: w, Height: h})
}

// normalizeDegrees reduces deg into [0, 360).
func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
