package preview

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// Debounce is how long Watch waits for a burst of events to settle.
var Debounce = 250 * time.Millisecond

// WatchDirs returns the sorted, de-duplicated directories to watch for a set
// of input paths and directory arguments.
func WatchDirs(paths []string, dirs []string) []string {
	ds := append([]string{}, dirs...)
	for _, p := range paths {
		ds = append(ds, filepath.Dir(p))
	}
	slices.Sort(ds)
	return slices.Compact(ds)
}

// Watch rebuilds s whenever something in dirs changes, until ctx is done.
func Watch(ctx context.Context, s *Server, dirs []string) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("new watcher: %w", err)
	}
	defer w.Close()

	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watch %s: %w", d, err)
		}
	}
	klog.Infof("watching %d dirs ...", len(dirs))

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			klog.V(1).Infof("event: %v", event)
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				settle = time.After(Debounce)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			klog.Warningf("watch error: %v", err)
		case <-settle:
			settle = nil
			if err := s.Rebuild(ctx); err != nil {
				klog.Errorf("rebuild failed: %v", err)
			}
		}
	}
}
