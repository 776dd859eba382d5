//go:build opencv

package conversion

import (
	"math/rand"
	"path/filepath"
	"testing"

	"pixel-veil/internal/imageio"
	"pixel-veil/internal/models"
	"pixel-veil/internal/quality"
	"pixel-veil/internal/resample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomGrid(t *testing.T, h, w int) *models.PixelGrid {
	t.Helper()
	g, err := models.NewPixelGrid(h, w, models.Channels)
	require.NoError(t, err)
	rand.New(rand.NewSource(int64(h + w))).Read(g.Pix)
	return g
}

func TestGridMatRoundTrip(t *testing.T) {
	grid := randomGrid(t, 9, 11)

	mat, err := GridToMat(grid)
	require.NoError(t, err)
	defer mat.Close()
	assert.Equal(t, 9, mat.Rows())
	assert.Equal(t, 11, mat.Cols())
	assert.Equal(t, 3, mat.Channels())

	back, err := MatToGrid(mat)
	require.NoError(t, err)
	assert.Equal(t, grid, back)
}

func TestGrayscaleMatchesNative(t *testing.T) {
	grid := randomGrid(t, 20, 20)

	cv, err := GrayscaleGrid(grid)
	require.NoError(t, err)
	native, err := quality.Grayscale(grid, 1)
	require.NoError(t, err)
	assert.Equal(t, native.Pix, cv.Pix)
}

func TestOpenCVResamplerRegistered(t *testing.T) {
	rs, err := resample.New(resample.OpenCVLinear)
	require.NoError(t, err)

	out, err := rs.Resample(randomGrid(t, 10, 10), 25, 7)
	require.NoError(t, err)
	assert.Equal(t, 25, out.Width)
	assert.Equal(t, 7, out.Height)
	assert.Equal(t, 3, out.Channels)
}

func TestOpenCVBackendRoundTrip(t *testing.T) {
	backend, err := imageio.NewBackend(BackendName)
	require.NoError(t, err)

	grid := randomGrid(t, 6, 8)
	path := filepath.Join(t.TempDir(), "cv.png")
	require.NoError(t, backend.Writer.Write(grid, path))

	loaded, err := backend.Loader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, grid, loaded)

	native, err := imageio.NativeLoader{}.Load(path)
	require.NoError(t, err)
	assert.Equal(t, grid, native)
}
