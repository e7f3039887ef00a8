package collage

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"k8s.io/klog/v2"
)

// FontEnv names a TrueType/OpenType font used when TitleOptions.FontPath is empty.
const FontEnv = "COLLAGE_FONT"

// TitleOptions controls the title overlay.
//
// Origin is an absolute canvas coordinate for the top-left of the text and is
// not adjusted for canvas size, so long titles may be clipped on small grids.
type TitleOptions struct {
	// FontPath is searched first, then $COLLAGE_FONT, then the bundled Go Bold font.
	FontPath string
	Size     float64
	Color    color.Color
	Origin   image.Point
}

// DefaultTitleOptions returns blue 40pt text at (1200, 10).
func DefaultTitleOptions() TitleOptions {
	return TitleOptions{
		Size:   40,
		Color:  colornames.Blue,
		Origin: image.Pt(1200, 10),
	}
}

// WithTitle returns a copy of the canvas with text drawn on it.
func (c *Canvas) WithTitle(text string, o TitleOptions) (*Canvas, error) {
	if o.Size <= 0 {
		o.Size = DefaultTitleOptions().Size
	}
	if o.Color == nil {
		o.Color = DefaultTitleOptions().Color
	}

	face, err := loadFace(o.FontPath, o.Size)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	dst := image.NewRGBA(c.img.Bounds())
	draw.Draw(dst, dst.Bounds(), c.img, c.img.Bounds().Min, draw.Src)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(o.Color),
		Face: face,
		Dot:  fixed.P(o.Origin.X, o.Origin.Y+face.Metrics().Ascent.Ceil()),
	}

	adv := d.MeasureString(text).Ceil()
	if o.Origin.X+adv > dst.Bounds().Dx() || o.Origin.Y >= dst.Bounds().Dy() {
		klog.Warningf("title %q at %v does not fit a %dx%d canvas", text, o.Origin, dst.Bounds().Dx(), dst.Bounds().Dy())
	}

	d.DrawString(text)
	return &Canvas{img: dst, layout: c.layout}, nil
}

// fontData resolves the font bytes per the documented search order.
func fontData(path string) ([]byte, string, error) {
	if path == "" {
		path = os.Getenv(FontEnv)
	}
	if path == "" {
		return gobold.TTF, "bundled Go Bold", nil
	}

	bs, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("%w: %w", ErrFontLoad, err)
	}
	return bs, path, nil
}

func loadFace(path string, size float64) (font.Face, error) {
	bs, name, err := fontData(path)
	if err != nil {
		return nil, err
	}

	f, err := opentype.Parse(bs)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrFontLoad, name, err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: face %s: %w", ErrFontLoad, name, err)
	}

	klog.V(1).Infof("using %s at %.0fpt for title", name, size)
	return face, nil
}
