package collage

import (
	"context"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "wide.png")
	require.NoError(t, imgio.Save(p, gradient(80, 60, 1), imgio.PNGEncoder()))

	img, err := FileLoader{}.Load(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 80, 60), img.Bounds())

	_, err = FileLoader{}.Load(context.Background(), filepath.Join(dir, "missing.png"))
	assert.Error(t, err)

	junk := filepath.Join(dir, "junk.jpg")
	require.NoError(t, os.WriteFile(junk, []byte("definitely not a jpeg"), 0o600))
	_, err = FileLoader{}.Load(context.Background(), junk)
	assert.Error(t, err)
}

func TestBuildFromFiles(t *testing.T) {
	dir := t.TempDir()
	var srcs []string
	for i, name := range []string{"a.png", "b.jpg", "c.bmp"} {
		p := filepath.Join(dir, name)
		enc, err := Encoder(p, 95)
		require.NoError(t, err)
		require.NoError(t, imgio.Save(p, solid(40+i*10, 30, palette[i]), enc))
		srcs = append(srcs, p)
	}

	c, err := Build(context.Background(), srcs, FileLoader{}, Config{TileSize: 16, Padding: 2, Background: background})
	require.NoError(t, err)
	assert.Equal(t, 2*16+3*2, c.Bounds().Dx())

	_, err = Build(context.Background(), append(srcs, filepath.Join(dir, "gone.png")), FileLoader{}, Config{TileSize: 16})
	require.ErrorIs(t, err, ErrDecode)
}

func TestLoaderFunc(t *testing.T) {
	want := solid(2, 2, palette[0])
	l := LoaderFunc(func(_ context.Context, src string) (image.Image, error) {
		assert.Equal(t, "x", src)
		return want, nil
	})
	got, err := l.Load(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, image.Image(want), got)
}
