package report

import (
	"errors"
	"image"
	"image/draw"
	"math"
)

// Layout is the page geometry in PDF points
type Layout struct {
	PageWidth  float64
	PageHeight float64
	Margin     float64
	ImageWidth float64
}

// A4 is the portrait A4 layout with a 20pt margin.
var A4 = Layout{PageWidth: 595, PageHeight: 842, Margin: 20, ImageWidth: 555}

// BandHeight is the number of bitmap rows that fill one page once the bitmap
// is scaled to ImageWidth.
func (l Layout) BandHeight(bitmapWidth int) int {
	h := int(math.Round(float64(bitmapWidth) * l.PageHeight / l.ImageWidth))
	if h < 1 {
		return 1
	}
	return h
}

// Band is one page worth of the rendered bitmap
type Band struct {
	Index int
	// Rect is the band's rows in the source bitmap
	Rect  image.Rectangle
	Image *image.RGBA
}

// ErrEmptyBitmap is returned for a zero-sized render.
var ErrEmptyBitmap = errors.New("rendered bitmap is empty")

// Paginate slices img into consecutive bands of bandHeight rows. The last
// band holds the remainder. Stacking the bands in order reproduces img.
func Paginate(img image.Image, bandHeight int) ([]Band, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, ErrEmptyBitmap
	}
	if bandHeight < 1 {
		bandHeight = 1
	}

	count := (b.Dy() + bandHeight - 1) / bandHeight
	bands := make([]Band, 0, count)
	for i := 0; i < count; i++ {
		top := b.Min.Y + i*bandHeight
		bottom := min(top+bandHeight, b.Max.Y)
		rect := image.Rect(b.Min.X, top, b.Max.X, bottom)

		dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
		draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
		bands = append(bands, Band{Index: i, Rect: rect, Image: dst})
	}
	return bands, nil
}
