package collage

import (
	"context"
	"fmt"
	"image"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Canvas is a built collage. It is never modified once returned.
type Canvas struct {
	img    *image.RGBA
	layout Layout
}

// Image returns the collage pixels. Callers must not modify them.
func (c *Canvas) Image() image.Image {
	return c.img
}

// Layout returns the grid geometry the canvas was built with.
func (c *Canvas) Layout() Layout {
	return c.layout
}

// Bounds returns the canvas rectangle.
func (c *Canvas) Bounds() image.Rectangle {
	return c.img.Bounds()
}

// Build crops, scales and pastes every source onto a fresh canvas, in input
// order. Any failure aborts the build and no canvas is returned.
func Build(ctx context.Context, sources []string, l Loader, cfg Config) (*Canvas, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no images given", ErrInvalidInput)
	}

	lay, err := NewLayout(len(sources), cfg.TileSize, cfg.Padding)
	if err != nil {
		return nil, err
	}

	bg := cfg.Background
	if bg == nil {
		bg = DefaultConfig().Background
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	klog.Infof("building collage of %d images: %s", len(sources), lay)
	start := time.Now()

	dst := image.NewRGBA(lay.Bounds())
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	// Tiles never overlap, so each worker pastes into its own rectangle.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := loadTile(gctx, l, src, lay.TileSize)
			if err != nil {
				return err
			}
			r := lay.Rect(i)
			draw.Draw(dst, r, t, t.Bounds().Min, draw.Src)
			klog.V(1).Infof("placed %s at %v", src, r.Min)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	klog.Infof("built %dx%d collage in %s", lay.Width(), lay.Height(), time.Since(start))
	return &Canvas{img: dst, layout: lay}, nil
}
