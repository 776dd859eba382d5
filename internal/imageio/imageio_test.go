package imageio

import (
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"pixel-veil/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomGrid(t *testing.T, h, w int) *models.PixelGrid {
	t.Helper()
	g, err := models.NewPixelGrid(h, w, models.Channels)
	require.NoError(t, err)
	rand.New(rand.NewSource(int64(h*w))).Read(g.Pix)
	return g
}

func TestNativeRoundTripLossless(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewBackend("")
	require.NoError(t, err)
	assert.Equal(t, NativeBackend, backend.Name)

	for _, name := range []string{"out.png", "out.bmp", "out.tiff"} {
		t.Run(name, func(t *testing.T) {
			grid := randomGrid(t, 13, 17)
			path := filepath.Join(dir, name)

			require.NoError(t, backend.Writer.Write(grid, path))
			loaded, err := backend.Loader.Load(path)
			require.NoError(t, err)
			assert.Equal(t, grid, loaded)
		})
	}
}

func TestWriterRejectsLossyFormats(t *testing.T) {
	dir := t.TempDir()
	grid := randomGrid(t, 2, 2)

	for _, name := range []string{"a.jpg", "a.JPEG", "a.webp", "a.gif"} {
		err := NativeWriter{}.Write(grid, filepath.Join(dir, name))
		assert.True(t, errors.Is(err, models.ErrLossySink), name)
		_, statErr := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(statErr), "nothing written for %s", name)
	}

	err := NativeWriter{}.Write(grid, filepath.Join(dir, "a.xyz"))
	assert.True(t, errors.Is(err, models.ErrWrite))
}

func TestWriterInvalidGrid(t *testing.T) {
	err := NativeWriter{}.Write(&models.PixelGrid{}, filepath.Join(t.TempDir(), "x.png"))
	assert.True(t, errors.Is(err, models.ErrWrite))
}

func TestWriterMissingDirectory(t *testing.T) {
	err := NativeWriter{}.Write(randomGrid(t, 2, 2), filepath.Join(t.TempDir(), "missing", "x.png"))
	assert.True(t, errors.Is(err, models.ErrWrite))
}

func TestLoaderDecodesJPEGInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.jpg")
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = 255, 0, 0, 255
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, img, &jpeg.Options{Quality: 100}))
	require.NoError(t, f.Close())

	grid, err := NativeLoader{}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, grid.Width)
	assert.Equal(t, 3, grid.Channels)
	c := grid.ColorAt(4, 4)
	assert.InDelta(t, 255, int(c.R), 4)
	assert.InDelta(t, 0, int(c.B), 4)
}

func TestLoaderErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NativeLoader{}.Load(filepath.Join(dir, "nope.png"))
	assert.True(t, errors.Is(err, models.ErrDecode))

	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))
	_, err = NativeLoader{}.Load(garbage)
	assert.True(t, errors.Is(err, models.ErrDecode))
}

func TestLoaderDropsAlpha(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alpha.png")
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 7})
	grid, err := models.FromImage(img)
	require.NoError(t, err)
	require.NoError(t, NativeWriter{}.Write(grid, path))

	loaded, err := NativeLoader{}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []uint8{30, 20, 10}, loaded.Pix)
}

func TestNextFilename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "EncryptedImages")

	first, err := NextFilename(dir, "encrypted_image")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "encrypted_image_1.png"), first)
	assert.DirExists(t, dir)

	require.NoError(t, os.WriteFile(first, nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "encrypted_image_3.png"), nil, 0o644))

	next, err := NextFilename(dir, "encrypted_image")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "encrypted_image_2.png"), next)
}

func TestFormatFromPath(t *testing.T) {
	f, ok := FormatFromPath("x/y/Z.TIF")
	assert.True(t, ok)
	assert.Equal(t, FormatTIFF, f)
	assert.True(t, f.Lossless())

	f, ok = FormatFromPath("a.jpeg")
	assert.True(t, ok)
	assert.False(t, f.Lossless())

	_, ok = FormatFromPath("noext")
	assert.False(t, ok)
}

func TestNewBackendUnknown(t *testing.T) {
	_, err := NewBackend("magick")
	assert.Error(t, err)
	assert.Contains(t, Backends(), NativeBackend)
}

func TestRegisterBackend(t *testing.T) {
	RegisterBackend("test-only", func() Backend {
		return Backend{Name: "test-only", Loader: NativeLoader{}, Writer: NativeWriter{}}
	})
	b, err := NewBackend("test-only")
	require.NoError(t, err)
	assert.Equal(t, "test-only", b.Name)
}
