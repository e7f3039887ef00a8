// Package collage arranges photos into a square contact-sheet grid.
package collage

import (
	"image/color"
	"runtime"
)

// Default tunables.
const (
	DefaultTileSize   = 600
	DefaultPadding    = 60
	DefaultBackground = "#fafafa"
)

// Config holds the construction-time settings for a collage.
type Config struct {
	// TileSize is the edge length of every tile, in pixels.
	TileSize int
	// Padding is the background margin around and between tiles, in pixels.
	Padding int
	// Background fills the padding and any unused grid cells. Nil means DefaultBackground.
	Background color.Color
	// Workers bounds how many images are decoded and resized at once.
	// Values below 1 mean sequential processing.
	Workers int
}

// DefaultConfig returns the stock 600px tile, 60px padding, #fafafa configuration.
func DefaultConfig() Config {
	return Config{
		TileSize:   DefaultTileSize,
		Padding:    DefaultPadding,
		Background: mustParseColor(DefaultBackground),
		Workers:    1,
	}
}

// MaxWorkers is a sensible upper bound for Config.Workers on this machine.
func MaxWorkers() int {
	return runtime.NumCPU()
}
