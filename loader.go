package photoview

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"

	_ "golang.org/x/image/bmp" // register BMP decoder
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// MaxTextureSize is the largest texture edge assumed to be drawable when the
// renderer cannot report its own limit.
const MaxTextureSize = 4096

// SampleSize returns the smallest power of two s such that w/s <= maxW and
// h/s <= maxH, using integer division. A non-positive bound leaves that
// axis unconstrained.
func SampleSize(w, h, maxW, maxH int) int {
	s := 1
	for (maxW > 0 && w > maxW) || (maxH > 0 && h > maxH) {
		s *= 2
		w /= 2
		h /= 2
	}
	return s
}

// LoadImage decodes an image from r, downsampled by SampleSize so that it
// fits within maxW x maxH. It returns the image and the sample size used.
// LoadImage does not log; callers report what they loaded.
func LoadImage(r io.ReadSeeker, maxW, maxH int) (image.Image, int, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return nil, 0, fmt.Errorf("photoview: read image header: %w", err)
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, 0, fmt.Errorf("photoview: rewind image: %w", err)
	}

	sample := SampleSize(cfg.Width, cfg.Height, maxW, maxH)

	src, _, err := image.Decode(r)
	if err != nil {
		return nil, 0, fmt.Errorf("photoview: decode %s image: %w", format, err)
	}
	if sample == 1 {
		return src, 1, nil
	}

	b := src.Bounds()
	dw, dh := max(1, b.Dx()/sample), max(1, b.Dy()/sample)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst, sample, nil
}
