package photoview

// boundsResult is the correction computed by resolveBounds.
type boundsResult struct {
	dx, dy     float64
	horizontal ScrollEdge
	vertical   VerticalEdge
}

// resolveBounds computes the translation that keeps the displayed content
// rect within policy for a viewport of size (vw, vh), and classifies which
// edges are pinned.
//
// Per axis: content that fits is aligned (start, end or centered, from the
// scale type); content that overflows is pulled back so no gap opens at the
// leading or trailing edge. An edge flush with the viewport counts as
// pinned.
func resolveBounds(rect Rect, vw, vh float64, st ScaleType) boundsResult {
	hAlign, vAlign := st.alignment()
	var res boundsResult

	switch {
	case rect.Height <= vh:
		res.dy = alignOffset(vAlign, rect.Y, rect.Height, vh)
		res.vertical = EdgeTopBottom
	case rect.Y >= 0:
		res.dy = -rect.Y
		res.vertical = EdgeTop
	case rect.Bottom() <= vh:
		res.dy = vh - rect.Bottom()
		res.vertical = EdgeBottom
	default:
		res.vertical = EdgeTopBottomNone
	}

	switch {
	case rect.Width <= vw:
		res.dx = alignOffset(hAlign, rect.X, rect.Width, vw)
		res.horizontal = EdgeBoth
	case rect.X >= 0:
		res.dx = -rect.X
		res.horizontal = EdgeLeft
	case rect.Right() <= vw:
		res.dx = vw - rect.Right()
		res.horizontal = EdgeRight
	default:
		res.horizontal = EdgeNone
	}

	return res
}

// alignOffset returns the delta that moves a span starting at pos with the
// given length to its aligned position inside a viewport of size view.
func alignOffset(a align, pos, length, view float64) float64 {
	switch a {
	case alignStart:
		return -pos
	case alignEnd:
		return view - length - pos
	default:
		return (view-length)/2 - pos
	}
}
