package qoi

// predictor holds everything encoder and decoder need to agree on the next
// pixel from a short opcode: the previously emitted pixel, the 64-slot color
// cache, and an in-progress run length. It is constructed fresh for every
// Encode/Decode call and never shared across calls.
type predictor struct {
	prev  Pixel
	cache [64]Pixel
	run   uint8
}

// newPredictor returns a predictor in its initial state: previous pixel
// opaque black (0,0,0,255), cache slots all transparent black (0,0,0,0).
// The asymmetry between the two is required by the reference spec.
func newPredictor() predictor {
	return predictor{
		prev: Pixel{R: 0, G: 0, B: 0, A: 255},
	}
}

// probe returns the pixel currently cached at the given 6-bit hash.
func (s *predictor) probe(hash uint8) Pixel {
	return s.cache[hash]
}

// store writes p into its own hash slot.
func (s *predictor) store(p Pixel) {
	s.cache[p.Hash()] = p
}

// trackPrevious records p as the most recently seen pixel.
func (s *predictor) trackPrevious(p Pixel) {
	s.prev = p
}
