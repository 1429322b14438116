package qoi

// Decode unpacks a QOI byte stream into a row-major, channel-interleaved
// pixel buffer. forceChannels overrides the output channel count (3 or 4);
// 0 honors the channel count recorded in the header. The returned channels
// value always reflects the header, regardless of forceChannels.
func Decode(data []byte, forceChannels uint8) (pixels []byte, width, height uint32, channels, colorspace uint8, err error) {
	h, err := readHeader(data)
	if err != nil {
		return nil, 0, 0, 0, 0, err
	}

	outChannels := h.Channels
	if forceChannels == 3 || forceChannels == 4 {
		outChannels = forceChannels
	}

	count := int(h.Width) * int(h.Height)
	out := make([]byte, count*int(outChannels))

	s := newPredictor()
	opcodeEnd := len(data) - len(endMarker)
	idx := headerSize

	for i := 0; i < count; i++ {
		var p Pixel

		if s.run > 0 {
			s.run--
			p = s.prev
		} else {
			if idx >= opcodeEnd {
				return nil, 0, 0, 0, 0, newError(TruncatedStream, "ran out of opcodes at pixel %d of %d", i, count)
			}
			b1 := data[idx]
			idx++

			switch {
			case b1 == opRGB:
				if idx+3 > opcodeEnd {
					return nil, 0, 0, 0, 0, newError(TruncatedStream, "truncated QOI_OP_RGB at pixel %d", i)
				}
				p = Pixel{R: data[idx], G: data[idx+1], B: data[idx+2], A: s.prev.A}
				idx += 3
				s.store(p)

			case b1 == opRGBA:
				if idx+4 > opcodeEnd {
					return nil, 0, 0, 0, 0, newError(TruncatedStream, "truncated QOI_OP_RGBA at pixel %d", i)
				}
				p = Pixel{R: data[idx], G: data[idx+1], B: data[idx+2], A: data[idx+3]}
				idx += 4
				s.store(p)

			default:
				switch b1 & op2Mask {
				case opIndexTag:
					p = s.probe(b1 & 0x3F)
					s.store(p)

				case opDiffTag:
					dr := int((b1>>4)&0x3) - 2
					dg := int((b1>>2)&0x3) - 2
					db := int(b1&0x3) - 2
					p = Pixel{
						R: s.prev.R + uint8(dr),
						G: s.prev.G + uint8(dg),
						B: s.prev.B + uint8(db),
						A: s.prev.A,
					}
					s.store(p)

				case opLumaTag:
					if idx >= opcodeEnd {
						return nil, 0, 0, 0, 0, newError(TruncatedStream, "truncated QOI_OP_LUMA at pixel %d", i)
					}
					b2 := data[idx]
					idx++
					dg := int(b1&0x3F) - 32
					dr := dg + int((b2>>4)&0xF) - 8
					db := dg + int(b2&0xF) - 8
					p = Pixel{
						R: s.prev.R + uint8(dr),
						G: s.prev.G + uint8(dg),
						B: s.prev.B + uint8(db),
						A: s.prev.A,
					}
					s.store(p)

				case opRunTag:
					s.run = b1 & 0x3F
					p = s.prev
				}
			}
		}

		s.trackPrevious(p)
		writePixel(out, i, outChannels, p)
	}

	return out, h.Width, h.Height, h.Channels, h.Colorspace, nil
}

func writePixel(out []byte, i int, channels uint8, p Pixel) {
	off := i * int(channels)
	out[off] = p.R
	out[off+1] = p.G
	out[off+2] = p.B
	if channels == 4 {
		out[off+3] = p.A
	}
}
