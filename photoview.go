package photoview

import (
	"errors"
	"fmt"
)

// Default scale levels and timing.
const (
	DefaultMinScale     = 1.0
	DefaultMidScale     = 1.75
	DefaultMaxScale     = 3.0
	DefaultZoomDuration = 200 // milliseconds
)

var (
	// ErrScaleOrder is returned when scale levels would violate min < mid < max.
	ErrScaleOrder = errors.New("photoview: scale levels must satisfy min < mid < max")
	// ErrScaleOutOfRange is returned when a requested scale lies outside
	// [min, max]. The request is declined and state is unchanged.
	ErrScaleOutOfRange = errors.New("photoview: scale must be within the range of minimum and maximum scale")
	// ErrInvalidMatrix is returned when a matrix to restore is singular or
	// contains non-finite values.
	ErrInvalidMatrix = errors.New("photoview: matrix must be finite and invertible")
	// ErrUnsupportedScaleType is returned for scale types the engine cannot
	// manage, such as ScaleTypeMatrix.
	ErrUnsupportedScaleType = errors.New("photoview: unsupported scale type")
)

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ScaleType selects how content is fitted into the viewport and how it is
// aligned when it is smaller than the viewport.
type ScaleType uint8

const (
	ScaleTypeFitCenter        ScaleType = iota // fit inside, centered (default)
	ScaleTypeFitStart                          // fit inside, aligned top-left
	ScaleTypeFitEnd                            // fit inside, aligned bottom-right
	ScaleTypeFitXY                             // stretch to fill, aspect not kept
	ScaleTypeCenter                            // no scaling, centered
	ScaleTypeCenterCrop                        // fill, cropping the overflow, centered
	ScaleTypeCenterInside                      // shrink to fit but never enlarge, centered
	ScaleTypeTopCenter                         // no scaling, top edge, centered horizontally
	ScaleTypeTopCenterCrop                     // fill, cropping, top edge
	ScaleTypeTopCenterInside                   // shrink to fit, top edge
	ScaleTypeMatrix                            // caller-managed matrix; not supported
)

var scaleTypeNames = [...]string{
	ScaleTypeFitCenter:       "fit_center",
	ScaleTypeFitStart:        "fit_start",
	ScaleTypeFitEnd:          "fit_end",
	ScaleTypeFitXY:           "fit_xy",
	ScaleTypeCenter:          "center",
	ScaleTypeCenterCrop:      "center_crop",
	ScaleTypeCenterInside:    "center_inside",
	ScaleTypeTopCenter:       "top_center",
	ScaleTypeTopCenterCrop:   "top_center_crop",
	ScaleTypeTopCenterInside: "top_center_inside",
	ScaleTypeMatrix:          "matrix",
}

func (s ScaleType) String() string {
	if int(s) < len(scaleTypeNames) {
		return scaleTypeNames[s]
	}
	return fmt.Sprintf("ScaleType(%d)", uint8(s))
}

// ParseScaleType returns the scale type named by s (e.g. "fit_center").
func ParseScaleType(s string) (ScaleType, error) {
	for i, name := range scaleTypeNames {
		if name == s {
			return ScaleType(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedScaleType, s)
}

// supported reports whether the engine can manage this scale type.
func (s ScaleType) supported() bool {
	return s < ScaleTypeMatrix
}

// align is the placement of content along one axis when it fits.
type align uint8

const (
	alignCenter align = iota
	alignStart
	alignEnd
)

// alignment returns the horizontal and vertical alignment used when content
// is smaller than the viewport.
func (s ScaleType) alignment() (h, v align) {
	switch s {
	case ScaleTypeFitStart:
		return alignStart, alignStart
	case ScaleTypeFitEnd:
		return alignEnd, alignEnd
	case ScaleTypeTopCenter, ScaleTypeTopCenterCrop, ScaleTypeTopCenterInside:
		return alignCenter, alignStart
	default:
		return alignCenter, alignCenter
	}
}

// ScrollEdge classifies which horizontal edge of the content is flush with
// (or pinned at) the viewport.
type ScrollEdge int8

const (
	EdgeNone  ScrollEdge = iota - 1 // room to scroll both ways
	EdgeLeft                        // left edge pinned; dragging right releases
	EdgeRight                       // right edge pinned; dragging left releases
	EdgeBoth                        // content fits horizontally
)

func (e ScrollEdge) String() string {
	switch e {
	case EdgeNone:
		return "none"
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeBoth:
		return "both"
	}
	return fmt.Sprintf("ScrollEdge(%d)", int8(e))
}

// VerticalEdge is the vertical counterpart of ScrollEdge.
type VerticalEdge int8

const (
	EdgeTopBottomNone VerticalEdge = iota - 1 // room to scroll both ways
	EdgeTop                                   // top edge pinned
	EdgeBottom                                // bottom edge pinned
	EdgeTopBottom                             // content fits vertically
)

func (e VerticalEdge) String() string {
	switch e {
	case EdgeTopBottomNone:
		return "none"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	case EdgeTopBottom:
		return "both"
	}
	return fmt.Sprintf("VerticalEdge(%d)", int8(e))
}

// State is the attacher's gesture phase.
type State uint8

const (
	StateIdle         State = iota // no gesture or animation in progress
	StateDragging                  // a drag is moving the content
	StateFlinging                  // an inertial fling is running
	StateSettlingZoom              // an animated zoom is running
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateFlinging:
		return "flinging"
	case StateSettlingZoom:
		return "settling_zoom"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// checkZoomLevels returns ErrScaleOrder unless min < mid < max.
func checkZoomLevels(minZoom, midZoom, maxZoom float64) error {
	if minZoom >= midZoom {
		return fmt.Errorf("%w: minimum %v is not less than medium %v", ErrScaleOrder, minZoom, midZoom)
	}
	if midZoom >= maxZoom {
		return fmt.Errorf("%w: medium %v is not less than maximum %v", ErrScaleOrder, midZoom, maxZoom)
	}
	return nil
}
