package collage

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropBox(t *testing.T) {
	tests := []struct {
		w, h int
		want image.Rectangle
	}{
		{800, 600, image.Rect(100, 0, 700, 600)},
		{600, 800, image.Rect(0, 100, 600, 700)},
		{600, 600, image.Rect(0, 0, 600, 600)},
		// Odd differences floor toward the top-left.
		{801, 600, image.Rect(100, 0, 700, 600)},
		{600, 803, image.Rect(0, 101, 600, 701)},
		{2, 1, image.Rect(0, 0, 1, 1)},
		{1, 4, image.Rect(0, 1, 1, 2)},
	}
	for _, tc := range tests {
		got := CropBox(tc.w, tc.h)
		assert.Equal(t, tc.want, got, "CropBox(%d, %d)", tc.w, tc.h)
		side := min(tc.w, tc.h)
		assert.Equal(t, side, got.Dx())
		assert.Equal(t, side, got.Dy())
	}
}

func TestSquareCropKeepsSquareImages(t *testing.T) {
	img := gradient(40, 40, 3)
	got := SquareCrop(img)
	require.True(t, got == image.Image(img), "square image should be returned unchanged")
}

func TestSquareCropCentersLandscape(t *testing.T) {
	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}

	// 80x60 with a red 60px band in the middle, blue 10px strips at each side.
	img := solid(80, 60, blue)
	for y := 0; y < 60; y++ {
		for x := 10; x < 70; x++ {
			img.Set(x, y, red)
		}
	}

	got := SquareCrop(img)
	b := got.Bounds()
	require.Equal(t, 60, b.Dx())
	require.Equal(t, 60, b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			require.Equal(t, red, color.RGBAModel.Convert(got.At(x, y)), "pixel %d,%d", x, y)
		}
	}
}

func TestSquareCropCentersPortrait(t *testing.T) {
	img := gradient(30, 50, 0)
	got := SquareCrop(img)
	b := got.Bounds()
	require.Equal(t, 30, b.Dx())
	require.Equal(t, 30, b.Dy())

	// The first kept row is source row 10.
	c := color.RGBAModel.Convert(got.At(b.Min.X, b.Min.Y)).(color.RGBA)
	assert.Equal(t, uint8(10), c.G)
	c = color.RGBAModel.Convert(got.At(b.Max.X-1, b.Max.Y-1)).(color.RGBA)
	assert.Equal(t, uint8(39), c.G)
	assert.Equal(t, uint8(29), c.R)
}

func TestTile(t *testing.T) {
	green := color.RGBA{G: 0xc0, A: 0xff}
	for _, size := range [][2]int{{80, 60}, {60, 80}, {64, 64}, {7, 300}} {
		got := Tile(solid(size[0], size[1], green), 32)
		assert.Equal(t, image.Rect(0, 0, 32, 32), got.Bounds(), "source %v", size)
		assertColorNear(t, green, got.At(16, 16))
		assertColorNear(t, green, got.At(0, 0))
		assertColorNear(t, green, got.At(31, 31))
	}
}
