package collage

import (
	"fmt"
	"image"
	"math"
)

// Layout is the grid geometry for a collage of Count images.
type Layout struct {
	Count    int
	Cols     int
	Rows     int
	TileSize int
	Padding  int
}

// Placement is the top-left canvas coordinate of a tile.
type Placement struct {
	Left int
	Top  int
}

// GridSize returns the edge of the smallest square grid holding n cells.
func GridSize(n int) int {
	if n <= 0 {
		return 0
	}
	c := int(math.Sqrt(float64(n)))
	for c*c < n {
		c++
	}
	for c > 1 && (c-1)*(c-1) >= n {
		c--
	}
	return c
}

// NewLayout computes the square grid for n images.
func NewLayout(n, tileSize, padding int) (Layout, error) {
	if n < 1 {
		return Layout{}, fmt.Errorf("%w: need at least one image", ErrInvalidInput)
	}
	if tileSize < 1 {
		return Layout{}, fmt.Errorf("%w: tile size %d", ErrInvalidInput, tileSize)
	}
	if padding < 0 {
		return Layout{}, fmt.Errorf("%w: padding %d", ErrInvalidInput, padding)
	}

	c := GridSize(n)
	return Layout{Count: n, Cols: c, Rows: c, TileSize: tileSize, Padding: padding}, nil
}

// Width of the canvas in pixels.
func (l Layout) Width() int {
	return l.Cols*l.TileSize + (l.Cols+1)*l.Padding
}

// Height of the canvas in pixels.
func (l Layout) Height() int {
	return l.Rows*l.TileSize + (l.Rows+1)*l.Padding
}

// Bounds returns the canvas rectangle.
func (l Layout) Bounds() image.Rectangle {
	return image.Rect(0, 0, l.Width(), l.Height())
}

// Place returns where the tile for the i'th input goes.
func (l Layout) Place(i int) Placement {
	step := l.TileSize + l.Padding
	return Placement{
		Left: (i%l.Cols)*step + l.Padding,
		Top:  (i/l.Cols)*step + l.Padding,
	}
}

// Rect returns the canvas rectangle covered by the i'th tile.
func (l Layout) Rect(i int) image.Rectangle {
	p := l.Place(i)
	return image.Rect(p.Left, p.Top, p.Left+l.TileSize, p.Top+l.TileSize)
}

// Unused is the number of grid cells left as background.
func (l Layout) Unused() int {
	return l.Cols*l.Rows - l.Count
}

func (l Layout) String() string {
	return fmt.Sprintf("%dx%d grid, %dpx tiles, %dpx padding, %dx%d canvas",
		l.Cols, l.Rows, l.TileSize, l.Padding, l.Width(), l.Height())
}
