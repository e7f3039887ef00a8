package source

import (
	"fmt"
	"sort"
	"time"

	"github.com/barasher/go-exiftool"
	"k8s.io/klog/v2"
)

// exifDate is the EXIF DateTimeOriginal layout.
const exifDate = "2006:01:02 15:04:05"

// Taken returns the EXIF capture time of each path. Files without one get the zero time.
func Taken(paths []string) ([]time.Time, error) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		return nil, fmt.Errorf("exiftool: %w", err)
	}
	defer et.Close()

	ts := make([]time.Time, len(paths))
	for i, fi := range et.ExtractMetadata(paths...) {
		if fi.Err != nil {
			klog.Warningf("unable to read metadata for %s: %v", fi.File, fi.Err)
			continue
		}

		ds, err := fi.GetString("DateTimeOriginal")
		if err != nil {
			klog.V(1).Infof("unable to get date time for %s: %v", fi.File, err)
			continue
		}

		t, err := time.Parse(exifDate, ds)
		if err != nil {
			klog.Warningf("parse time %q for %s: %v", ds, fi.File, err)
			continue
		}
		ts[i] = t
	}

	return ts, nil
}

// SortByTaken orders paths by capture time, oldest first. Files without a
// capture time go last; ties keep their input order.
func SortByTaken(paths []string) ([]string, error) {
	ts, err := Taken(paths)
	if err != nil {
		return nil, err
	}
	return byTime(paths, ts), nil
}

func byTime(paths []string, ts []time.Time) []string {
	idx := make([]int, len(paths))
	for i := range idx {
		idx[i] = i
	}

	sort.SliceStable(idx, func(a, b int) bool {
		ta, tb := ts[idx[a]], ts[idx[b]]
		switch {
		case ta.IsZero():
			return false
		case tb.IsZero():
			return true
		default:
			return ta.Before(tb)
		}
	})

	out := make([]string, len(paths))
	for i, j := range idx {
		out[i] = paths[j]
	}
	return out
}
