package qoi_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/halcyon-codecs/qoi"
)

func TestPixelHash(t *testing.T) {
	cases := []struct {
		p    qoi.Pixel
		want uint8
	}{
		{qoi.Pixel{}, 0},
		{qoi.Pixel{R: 0, G: 0, B: 0, A: 255}, uint8((255 * 11) % 64)},
		{qoi.Pixel{R: 10, G: 20, B: 30, A: 255}, uint8((10*3 + 20*5 + 30*7 + 255*11) % 64)},
		{qoi.Pixel{R: 255, G: 255, B: 255, A: 255}, uint8((255*3 + 255*5 + 255*7 + 255*11) % 64)},
	}
	for _, c := range cases {
		require.Equal(t, c.want, c.p.Hash())
	}
}

func TestPixelEquals(t *testing.T) {
	a := qoi.Pixel{R: 1, G: 2, B: 3, A: 4}
	b := qoi.Pixel{R: 1, G: 2, B: 3, A: 4}
	c := qoi.Pixel{R: 1, G: 2, B: 3, A: 5}
	require.True(t, a.Equals(b))
	require.False(t, a.Equals(c))
}
