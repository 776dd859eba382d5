package codec

import (
	"errors"
	"math/rand"
	"testing"

	"pixel-veil/internal/models"
	"pixel-veil/internal/resample"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomGrid(t *testing.T, rng *rand.Rand, h, w int) *models.PixelGrid {
	t.Helper()
	g, err := models.NewPixelGrid(h, w, 3)
	require.NoError(t, err)
	rng.Read(g.Pix)
	return g
}

func newCodec(t *testing.T, workers int) *Codec {
	t.Helper()
	c, err := New(Options{Workers: workers})
	require.NoError(t, err)
	return c
}

func TestEmbedSampleWorkedExample(t *testing.T) {
	carrier := EmbedSample(0b10110101, 0b11000000)
	assert.Equal(t, uint8(0b10111100), carrier)
	assert.Equal(t, uint8(192), RevealSample(carrier))
}

func TestEmbedSampleExhaustive(t *testing.T) {
	for c := 0; c < 256; c++ {
		for s := 0; s < 256; s++ {
			out := EmbedSample(uint8(c), uint8(s))
			require.Equal(t, uint8(c)&0xF0, out&0xF0, "high nibble c=%d s=%d", c, s)
			require.Equal(t, uint8(s)>>4, out&0x0F, "low nibble c=%d s=%d", c, s)
		}
	}
}

func TestRevealSampleIsMultipleOf16(t *testing.T) {
	for v := 0; v < 256; v++ {
		r := RevealSample(uint8(v))
		assert.Zero(t, r%16)
		assert.LessOrEqual(t, r, uint8(240))
	}
}

func TestEmbedNibbleIsolation(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	cover := randomGrid(t, rng, 37, 41)
	secret := randomGrid(t, rng, 37, 41)

	carrier, err := newCodec(t, 4).Embed(cover, secret)
	require.NoError(t, err)
	require.True(t, carrier.SameShape(cover))

	for i := range carrier.Pix {
		assert.Equal(t, cover.Pix[i]&0xF0, carrier.Pix[i]&0xF0)
		assert.Equal(t, secret.Pix[i]>>4, carrier.Pix[i]&0x0F)
	}
}

func TestEmbedDoesNotMutateInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	cover := randomGrid(t, rng, 20, 30)
	secret := randomGrid(t, rng, 10, 15)
	coverCopy, secretCopy := cover.Clone(), secret.Clone()

	_, err := newCodec(t, 0).Embed(cover, secret)
	require.NoError(t, err)
	assert.Equal(t, coverCopy, cover)
	assert.Equal(t, secretCopy, secret)
}

func TestRoundTripExactForZeroLowNibble(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	cover := randomGrid(t, rng, 64, 48)
	secret := randomGrid(t, rng, 64, 48)
	for i := range secret.Pix {
		secret.Pix[i] &= 0xF0
	}

	c := newCodec(t, 3)
	carrier, err := c.Embed(cover, secret)
	require.NoError(t, err)
	recovered, err := c.Reveal(carrier)
	require.NoError(t, err)

	assert.Equal(t, secret.Pix, recovered.Pix)
}

func TestRoundTripKeepsTopBits(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	cover := randomGrid(t, rng, 16, 16)
	secret := randomGrid(t, rng, 16, 16)

	c := newCodec(t, 1)
	carrier, err := c.Embed(cover, secret)
	require.NoError(t, err)
	recovered, err := c.Reveal(carrier)
	require.NoError(t, err)

	for i := range recovered.Pix {
		assert.Equal(t, secret.Pix[i]&0xF0, recovered.Pix[i])
	}
}

func TestEmbedResamplesSecretToCoverShape(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	cover := randomGrid(t, rng, 30, 50)

	for _, m := range []resample.Method{resample.Nearest, resample.Bilinear, resample.Lanczos} {
		t.Run(string(m), func(t *testing.T) {
			rs, err := resample.New(m)
			require.NoError(t, err)
			c, err := New(Options{Resampler: rs})
			require.NoError(t, err)

			secret := randomGrid(t, rng, 13, 77)
			carrier, err := c.Embed(cover, secret)
			require.NoError(t, err)
			assert.Equal(t, cover.Height, carrier.Height)
			assert.Equal(t, cover.Width, carrier.Width)
			assert.Equal(t, cover.Channels, carrier.Channels)

			resampled, err := rs.Resample(secret, cover.Width, cover.Height)
			require.NoError(t, err)
			for i := range carrier.Pix {
				require.Equal(t, resampled.Pix[i]>>4, carrier.Pix[i]&0x0F)
			}
		})
	}
}

func TestEmbedResultIndependentOfWorkers(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	cover := randomGrid(t, rng, 131, 67)
	secret := randomGrid(t, rng, 131, 67)

	want, err := newCodec(t, 1).Embed(cover, secret)
	require.NoError(t, err)
	for _, w := range []int{2, 5, 16} {
		got, err := newCodec(t, w).Embed(cover, secret)
		require.NoError(t, err)
		assert.Equal(t, want.Pix, got.Pix, "workers=%d", w)
	}
}

func TestEmbedErrors(t *testing.T) {
	c := newCodec(t, 0)
	rng := rand.New(rand.NewSource(7))
	valid := randomGrid(t, rng, 4, 4)

	_, err := c.Embed(nil, valid)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	_, err = c.Embed(valid, &models.PixelGrid{Height: 0, Width: 4, Channels: 3})
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	gray, err := models.NewPixelGrid(4, 4, 1)
	require.NoError(t, err)
	_, err = c.Embed(valid, gray)
	assert.True(t, errors.Is(err, models.ErrShapeMismatch))
}

func TestRevealErrors(t *testing.T) {
	_, err := newCodec(t, 0).Reveal(&models.PixelGrid{Height: 3, Width: 0, Channels: 3})
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
}

func BenchmarkEmbed(b *testing.B) {
	rng := rand.New(rand.NewSource(8))
	cover, _ := models.NewPixelGrid(1080, 1920, 3)
	secret, _ := models.NewPixelGrid(1080, 1920, 3)
	rng.Read(cover.Pix)
	rng.Read(secret.Pix)
	c, _ := New(Options{})

	b.SetBytes(int64(len(cover.Pix)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := c.Embed(cover, secret); err != nil {
			b.Fatal(err)
		}
	}
}
