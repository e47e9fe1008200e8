// Package image implements the assembler's two memory images: the
// instruction image and the data image. Both are append-only sequences of
// machine words with an independent, resettable word counter, matching the
// lifecycle spec.md describes for the Memory Image (spans both passes; its
// counter is reset between passes but its words persist).
package image

// Word is one machine word produced by the encoder. Only the low 14 bits of
// Value are significant. Span is non-zero on the first word of an
// instruction and records how many words (including itself) the instruction
// occupies, so the second pass can walk the image without re-parsing
// operands; operand words and data words leave it zero.
type Word struct {
	Value uint16
	Span  uint8
}

// Mask keeps a value within the machine's 14-bit payload.
const Mask = 0x3FFF

// Image is one append-only region of memory words: either the instruction
// image or the data image.
type Image struct {
	Origin  uint16 // Starting address; 100 for instructions, 0 for data.
	Counter uint16 // Next address to be assigned.
	Words   []Word
}

// New returns an Image whose counter starts at origin.
func New(origin uint16) *Image {
	return &Image{Origin: origin, Counter: origin}
}

// Append adds w to the image at the current counter and advances the
// counter by one word, returning the address w was placed at.
func (img *Image) Append(w Word) uint16 {
	addr := img.Counter
	img.Words = append(img.Words, w)
	img.Counter++

	return addr
}

// Reset rewinds the counter to the image's origin without discarding the
// words already appended, per spec.md's two-pass lifecycle: pass one fills
// the image and leaves the counter at its final value; pass two needs that
// final instruction count (to offset data addresses) before rewinding to
// re-walk the same words.
func (img *Image) Reset() {
	img.Counter = img.Origin
}

// Size returns the number of words appended to the image.
func (img *Image) Size() int {
	return len(img.Words)
}

// At returns the word at image-relative index i (0-based from Origin), and
// whether i is in range.
func (img *Image) At(i int) (Word, bool) {
	if i < 0 || i >= len(img.Words) {
		return Word{}, false
	}

	return img.Words[i], true
}

// Patch overwrites the word at image-relative index i, used by the second
// pass to resolve a label operand's address and ARE field once the symbol
// table is complete.
func (img *Image) Patch(i int, w Word) {
	img.Words[i] = w
}
