package qoi_test

import (
	"bytes"
	"image"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halcyon-codecs/qoi"
)

// image.Image round-trips through the ImageEncode/ImageDecode adapters.
func TestImageEncodeDecodeRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	src := image.NewNRGBA(image.Rect(0, 0, 12, 9))
	r.Read(src.Pix)

	var buf bytes.Buffer
	require.NoError(t, qoi.ImageEncode(&buf, src))

	decoded, err := qoi.ImageDecode(&buf)
	require.NoError(t, err)

	got, ok := decoded.(*image.NRGBA)
	require.True(t, ok)
	require.True(t, got.Bounds().Eq(src.Bounds()))
	require.Equal(t, src.Pix, got.Pix)
}

func TestImageDecodeConfigReadsHeaderOnly(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	src := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	r.Read(src.Pix)

	var buf bytes.Buffer
	require.NoError(t, qoi.ImageEncode(&buf, src))

	cfg, err := qoi.DecodeConfig(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Width)
	require.Equal(t, 3, cfg.Height)
}

func TestImageFormatIsRegistered(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	r.Read(src.Pix)

	var buf bytes.Buffer
	require.NoError(t, qoi.ImageEncode(&buf, src))

	decoded, format, err := image.Decode(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Equal(t, "qoi", format)
	require.True(t, decoded.Bounds().Eq(src.Bounds()))
}
