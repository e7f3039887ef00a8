// Package source turns command-line arguments into an ordered list of image files.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/karrick/godirwalk"
	"k8s.io/klog/v2"

	"github.com/tstromberg/collage/pkg/collage"
)

var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

// Supported reports whether path has an image extension we can decode.
func Supported(path string) bool {
	return slices.Contains(imageExts, strings.ToLower(filepath.Ext(path)))
}

// IsGlob reports whether s contains glob metacharacters.
func IsGlob(s string) bool {
	return strings.ContainsAny(s, "*?[")
}

// Expand resolves each argument in order: globs are matched, directories are
// walked for images, and anything else is passed through for the decoder to
// judge. Hidden entries are skipped by both globs and walks unless the glob
// itself names them (".*.jpg"). Matches within one argument are sorted.
func Expand(args []string) ([]string, error) {
	found := []string{}

	for _, arg := range args {
		if IsGlob(arg) {
			ms, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("%w: glob %q: %w", collage.ErrInvalidInput, arg, err)
			}
			if !hidden(arg) {
				ms = slices.DeleteFunc(ms, hidden)
			}
			if len(ms) == 0 {
				return nil, fmt.Errorf("%w: %q matched no files", collage.ErrInvalidInput, arg)
			}
			klog.V(1).Infof("%s matched %d files", arg, len(ms))
			for _, m := range ms {
				st, err := os.Stat(m)
				if err == nil && st.IsDir() {
					continue
				}
				found = append(found, m)
			}
			continue
		}

		st, err := os.Stat(arg)
		if err != nil || !st.IsDir() {
			found = append(found, arg)
			continue
		}

		is, err := Find(arg)
		if err != nil {
			return nil, fmt.Errorf("find: %w", err)
		}
		found = append(found, is...)
	}

	klog.Infof("found %d images in %d arguments", len(found), len(args))
	return found, nil
}

// hidden reports whether the last element of path is a dotfile. "." and ".."
// are directory references, not hidden entries.
func hidden(path string) bool {
	base := filepath.Base(path)
	return base != "." && base != ".." && strings.HasPrefix(base, ".")
}

// Find walks root in lexical order and returns the image files it contains.
// Hidden entries below root are skipped.
func Find(root string) ([]string, error) {
	found := []string{}
	// godirwalk reports the root cleaned, so "./" arrives as ".".
	root = filepath.Clean(root)

	err := godirwalk.Walk(root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			if path != root && hidden(path) {
				return godirwalk.SkipThis
			}

			if de.IsDir() || !Supported(path) {
				return nil
			}

			klog.V(1).Infof("found %s", path)
			found = append(found, path)
			return nil
		},
	})

	return found, err
}
