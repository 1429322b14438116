package qoi

import "encoding/binary"

// MAGIC_BYTES is the 4-byte marker every QOI stream starts with.
const MAGIC_BYTES string = "qoif"

// QOI_PIXELS_MAX bounds width*height so intermediate size math can't overflow.
const QOI_PIXELS_MAX uint32 = 400_000_000

const headerSize = 14

// endMarker terminates every valid stream.
var endMarker = [8]byte{0, 0, 0, 0, 0, 0, 0, 1}

// Header is the fixed 14-byte descriptor at the start of every stream.
type Header struct {
	Width      uint32
	Height     uint32
	Channels   uint8
	Colorspace uint8
}

func validateChannels(channels uint8) error {
	if channels != 3 && channels != 4 {
		return newError(InvalidChannels, "channels must be 3 or 4, got %d", channels)
	}
	return nil
}

func validateColorspace(colorspace uint8) error {
	if colorspace != 0 && colorspace != 1 {
		return newError(InvalidColorspace, "colorspace must be 0 or 1, got %d", colorspace)
	}
	return nil
}

func validateDimensions(width, height uint32) error {
	if width == 0 || height == 0 {
		return newError(InvalidDimensions, "width and height must be non-zero, got %dx%d", width, height)
	}
	if height >= QOI_PIXELS_MAX/width {
		return newError(InvalidDimensions, "height %d >= QOI_PIXELS_MAX (%d) / width %d", height, QOI_PIXELS_MAX, width)
	}
	return nil
}

// readHeader parses and validates the header at the start of buf.
func readHeader(buf []byte) (Header, error) {
	if len(buf) < headerSize+len(endMarker) {
		return Header{}, newError(TruncatedStream, "stream is %d bytes, need at least %d for header+end marker", len(buf), headerSize+len(endMarker))
	}

	magic := string(buf[0:4])
	if magic != MAGIC_BYTES {
		return Header{}, newError(BadMagic, "expected magic %q, got %q", MAGIC_BYTES, magic)
	}

	h := Header{
		Width:      binary.BigEndian.Uint32(buf[4:8]),
		Height:     binary.BigEndian.Uint32(buf[8:12]),
		Channels:   buf[12],
		Colorspace: buf[13],
	}

	if err := validateDimensions(h.Width, h.Height); err != nil {
		return Header{}, err
	}
	if err := validateChannels(h.Channels); err != nil {
		return Header{}, err
	}
	if err := validateColorspace(h.Colorspace); err != nil {
		return Header{}, err
	}

	return h, nil
}

// writeHeader appends the 14-byte header for h to buf.
func writeHeader(buf []byte, h Header) []byte {
	buf = append(buf, MAGIC_BYTES...)
	buf = binary.BigEndian.AppendUint32(buf, h.Width)
	buf = binary.BigEndian.AppendUint32(buf, h.Height)
	buf = append(buf, h.Channels, h.Colorspace)
	return buf
}
