package collage

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

var background = color.RGBA{R: 0xfa, G: 0xfa, B: 0xfa, A: 0xff}

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// gradient has a distinct value at every pixel, so misplaced crops show up.
func gradient(w, h int, seed uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x) + seed, G: uint8(y), B: seed, A: 0xff})
		}
	}
	return img
}

// stubLoader serves in-memory images and counts Load calls.
type stubLoader struct {
	images map[string]image.Image
	calls  atomic.Int32
}

func newStubLoader(images map[string]image.Image) *stubLoader {
	return &stubLoader{images: images}
}

func (s *stubLoader) Load(_ context.Context, src string) (image.Image, error) {
	s.calls.Add(1)
	img, ok := s.images[src]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file", src)
	}
	return img, nil
}

func assertColorNear(t *testing.T, want color.Color, got color.Color, msgAndArgs ...any) {
	t.Helper()
	wr, wg, wb, wa := want.RGBA()
	gr, gg, gb, ga := got.RGBA()
	near := func(a, b uint32) bool {
		d := int(a>>8) - int(b>>8)
		return d >= -1 && d <= 1
	}
	if !near(wr, gr) || !near(wg, gg) || !near(wb, gb) || !near(wa, ga) {
		assert.Fail(t, fmt.Sprintf("color mismatch: want %v, got %v", want, got), msgAndArgs...)
	}
}
