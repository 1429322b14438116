package qoi

const (
	opIndexTag = 0b00000000
	opDiffTag  = 0b01000000
	opLumaTag  = 0b10000000
	opRunTag   = 0b11000000
	opRGB      = 0b11111110
	opRGBA     = 0b11111111
	op2Mask    = 0b11000000
	maxRun     = 62
)

// Encode packs a row-major, channel-interleaved pixel buffer into a QOI
// byte stream. channels is 3 (RGB, alpha assumed 255) or 4 (RGBA);
// colorspace is 0 (sRGB) or 1 (linear) and is stored verbatim, never
// interpreted. The result always begins with the 14-byte header and ends
// with the 8-byte end marker.
func Encode(pixels []byte, width, height uint32, channels, colorspace uint8) ([]byte, error) {
	if err := validateDimensions(width, height); err != nil {
		return nil, err
	}
	if err := validateChannels(channels); err != nil {
		return nil, err
	}
	if err := validateColorspace(colorspace); err != nil {
		return nil, err
	}

	count := int(width) * int(height)
	want := count * int(channels)
	if len(pixels) != want {
		return nil, newError(BufferSizeMismatch, "expected %d bytes for %dx%d at %d channels, got %d", want, width, height, channels, len(pixels))
	}

	out := make([]byte, 0, headerSize+count*5+len(endMarker))
	out = writeHeader(out, Header{Width: width, Height: height, Channels: channels, Colorspace: colorspace})

	s := newPredictor()

	for i := 0; i < count; i++ {
		off := i * int(channels)
		p := Pixel{R: pixels[off], G: pixels[off+1], B: pixels[off+2], A: 255}
		if channels == 4 {
			p.A = pixels[off+3]
		}

		q := s.prev
		last := i == count-1

		if p.Equals(q) {
			s.run++
			if s.run == maxRun || last {
				out = append(out, opRunTag|(s.run-1))
				s.run = 0
			}
			continue
		}

		if s.run > 0 {
			out = append(out, opRunTag|(s.run-1))
			s.run = 0
		}

		h := p.Hash()
		if s.probe(h).Equals(p) {
			out = append(out, opIndexTag|h)
			s.trackPrevious(p)
			continue
		}

		s.store(p)

		if p.A == q.A {
			vr := int16(p.R) - int16(q.R)
			vg := int16(p.G) - int16(q.G)
			vb := int16(p.B) - int16(q.B)

			if inRange(vr, -2, 1) && inRange(vg, -2, 1) && inRange(vb, -2, 1) {
				out = append(out, opDiffTag|byte(vr+2)<<4|byte(vg+2)<<2|byte(vb+2))
				s.trackPrevious(p)
				continue
			}

			vgr := vr - vg
			vgb := vb - vg
			if inRange(vg, -32, 31) && inRange(vgr, -8, 7) && inRange(vgb, -8, 7) {
				out = append(out, opLumaTag|byte(vg+32))
				out = append(out, byte(vgr+8)<<4|byte(vgb+8))
				s.trackPrevious(p)
				continue
			}

			out = append(out, opRGB, p.R, p.G, p.B)
			s.trackPrevious(p)
			continue
		}

		out = append(out, opRGBA, p.R, p.G, p.B, p.A)
		s.trackPrevious(p)
	}

	out = append(out, endMarker[:]...)
	return out, nil
}

func inRange(v, lo, hi int16) bool {
	return v >= lo && v <= hi
}
