package collage

import (
	"context"
	"fmt"
	"image"
	"image/gif"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/tiff"
	"k8s.io/klog/v2"
)

// DefaultQuality is the JPEG quality used when none is given.
const DefaultQuality = 90

// Encoder picks an encoder for path based on its extension.
func Encoder(path string, quality int) (imgio.Encoder, error) {
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(quality), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	case ".gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, nil)
		}, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported output format %q", ErrEncode, filepath.Ext(path))
	}
}

// Save writes the canvas to path. The file appears only once fully written.
func Save(c *Canvas, path string, quality int) error {
	enc, err := Encoder(path, quality)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: %w", ErrEncode, err)
	}

	if err := imgio.Save(tmpPath, c.img, enc); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %w", ErrEncode, path, err)
	}

	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: chmod: %w", ErrEncode, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename: %w", ErrEncode, err)
	}

	klog.Infof("saved %dx%d collage to %s", c.img.Bounds().Dx(), c.img.Bounds().Dy(), path)
	return nil
}

// viewerCommand returns the platform command that opens path in the default viewer.
func viewerCommand(goos string, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

// Display shows the canvas in the platform image viewer. It is best-effort:
// the viewer is started but not waited for, and the temporary PNG is left
// for the viewer to read.
func Display(ctx context.Context, c *Canvas) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.CreateTemp("", "collage-*.png")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	if err := imgio.PNGEncoder()(f, c.img); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close: %w", err)
	}

	name, args := viewerCommand(runtime.GOOS, f.Name())
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}

	klog.Infof("opened %s with %s", f.Name(), name)
	return cmd.Process.Release()
}
