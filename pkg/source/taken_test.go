package source

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/barasher/go-exiftool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByTime(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 12, 0, 0, 0, time.UTC) }

	paths := []string{"none1", "late", "early", "none2", "mid", "early2"}
	ts := []time.Time{{}, day(9), day(1), {}, day(5), day(1)}

	assert.Equal(t, []string{"early", "early2", "mid", "late", "none1", "none2"}, byTime(paths, ts))
	// Input is untouched.
	assert.Equal(t, "none1", paths[0])
}

func TestSortByTakenWithoutExif(t *testing.T) {
	et, err := exiftool.NewExiftool()
	if err != nil {
		t.Skipf("exiftool unavailable: %v", err)
	}
	et.Close()

	dir := t.TempDir()
	paths := []string{
		touch(t, filepath.Join(dir, "z.jpg")),
		touch(t, filepath.Join(dir, "a.jpg")),
	}

	got, err := SortByTaken(paths)
	require.NoError(t, err)
	assert.Equal(t, paths, got)
}
