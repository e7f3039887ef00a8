package collage

import (
	"context"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/transform"
	"k8s.io/klog/v2"
)

// CropBox returns the centered square to keep from a w×h image, relative to
// the image origin. Odd differences are floored, favouring the top-left.
func CropBox(w, h int) image.Rectangle {
	switch {
	case w > h:
		left := (w - h) / 2
		return image.Rect(left, 0, left+h, h)
	case w < h:
		top := (h - w) / 2
		return image.Rect(0, top, w, top+w)
	default:
		return image.Rect(0, 0, w, h)
	}
}

// SquareCrop crops img to its centered square. Square images are returned as-is.
func SquareCrop(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() == b.Dy() {
		return img
	}
	box := CropBox(b.Dx(), b.Dy()).Add(b.Min)
	klog.V(2).Infof("cropping %v to %v", b, box)
	return transform.Crop(img, box)
}

// Tile square-crops img and scales it to size×size using a Lanczos filter.
func Tile(img image.Image, size int) *image.RGBA {
	return transform.Resize(SquareCrop(img), size, size, transform.Lanczos)
}

// loadTile decodes src and turns it into a tile.
func loadTile(ctx context.Context, l Loader, src string, size int) (*image.RGBA, error) {
	img, err := l.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, src, err)
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: %s: empty %dx%d image", ErrDecode, src, b.Dx(), b.Dy())
	}

	klog.V(1).Infof("tiling %s (%dx%d) to %dpx", src, b.Dx(), b.Dy(), size)
	return Tile(img, size), nil
}
