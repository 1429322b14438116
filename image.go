package qoi

import (
	"image"
	"image/color"
	"image/draw"
	"io"
)

func init() {
	image.RegisterFormat("qoi", MAGIC_BYTES, ImageDecode, DecodeConfig)
}

// DecodeConfig reports the width, height and color model of a QOI stream
// without decoding any pixel data, reading only the 14-byte header.
func DecodeConfig(r io.Reader) (image.Config, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return image.Config{}, newError(TruncatedStream, "could not read %d-byte header: %v", headerSize, err)
	}

	// readHeader also wants the end marker present; appending a copy of it
	// satisfies the length check without requiring the caller's stream to
	// expose the pixel data.
	padded := append(buf, endMarker[:]...)
	h, err := readHeader(padded)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      int(h.Width),
		Height:     int(h.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// ImageDecode reads a whole QOI stream from r and returns it as an
// *image.NRGBA.
func ImageDecode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	pix, width, height, _, _, err := Decode(data, 4)
	if err != nil {
		return nil, err
	}

	return &image.NRGBA{
		Pix:    pix,
		Stride: 4 * int(width),
		Rect:   image.Rect(0, 0, int(width), int(height)),
	}, nil
}

// ImageEncode converts any image.Image to 4-channel QOI and writes it to w.
func ImageEncode(w io.Writer, m image.Image) error {
	nrgba := toNRGBA(m)
	b := nrgba.Bounds()
	data, err := Encode(nrgba.Pix, uint32(b.Dx()), uint32(b.Dy()), 4, 0)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Bounds().Min == (image.Point{}) && n.Stride == 4*n.Bounds().Dx() {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}
