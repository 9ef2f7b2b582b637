package shortener

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"
)

const (
	// DefaultAlphabet is the ordered digit set; a symbol's index is its value.
	DefaultAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXY"
	// DefaultPad left-pads codes to full width. It is not part of DefaultAlphabet.
	DefaultPad byte = 'Z'
	// DefaultWidth is the fixed length of every short code.
	DefaultWidth = 8
)

// DecodeMode selects how padding is removed before a code is folded back into an ID.
type DecodeMode int

const (
	// DecodeStrict strips only the leading run of pad symbols and accepts
	// exactly the codes Encode can produce.
	DecodeStrict DecodeMode = iota
	// DecodeLegacy strips the pad symbol wherever it occurs. Distinct codes
	// may decode to the same ID in this mode.
	DecodeLegacy
)

var errInvalidCodec = errors.New("invalid codec configuration")

// Codec converts identifiers to fixed-width codes and back.
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	alphabet string
	index    [256]int16
	pad      byte
	width    int
	base     uint64
	maxID    ID
	mode     DecodeMode
}

// NewCodec builds a codec over alphabet, padding with pad up to width characters.
func NewCodec(alphabet string, pad byte, width int, mode DecodeMode) (*Codec, error) {
	if len(alphabet) < 2 {
		return nil, fmt.Errorf("%w: alphabet needs at least 2 symbols", errInvalidCodec)
	}

	if width < 2 {
		return nil, fmt.Errorf("%w: width must be at least 2", errInvalidCodec)
	}

	if mode != DecodeStrict && mode != DecodeLegacy {
		return nil, fmt.Errorf("%w: unknown decode mode %d", errInvalidCodec, mode)
	}

	c := &Codec{
		alphabet: alphabet,
		pad:      pad,
		width:    width,
		base:     uint64(len(alphabet)),
		mode:     mode,
	}

	for i := range c.index {
		c.index[i] = -1
	}

	for i := 0; i < len(alphabet); i++ {
		ch := alphabet[i]
		if ch >= 0x80 {
			return nil, fmt.Errorf("%w: alphabet must be ASCII", errInvalidCodec)
		}

		if c.index[ch] != -1 {
			return nil, fmt.Errorf("%w: duplicate symbol %q", errInvalidCodec, ch)
		}

		c.index[ch] = int16(i)
	}

	if pad >= 0x80 {
		return nil, fmt.Errorf("%w: pad must be ASCII", errInvalidCodec)
	}

	if c.index[pad] != -1 {
		return nil, fmt.Errorf("%w: pad %q is part of the alphabet", errInvalidCodec, pad)
	}

	// One position is reserved for padding, so the usable range is base^(width-1).
	capacity := uint64(1)

	for i := 0; i < width-1; i++ {
		hi, lo := bits.Mul64(capacity, c.base)
		if hi != 0 {
			return nil, fmt.Errorf("%w: width %d overflows 64-bit identifiers", errInvalidCodec, width)
		}

		capacity = lo
	}

	c.maxID = ID(capacity - 1)

	return c, nil
}

// DefaultCodec returns the 51-symbol, 8-wide strict codec.
func DefaultCodec() *Codec {
	c, err := NewCodec(DefaultAlphabet, DefaultPad, DefaultWidth, DecodeStrict)
	if err != nil {
		panic(err)
	}

	return c
}

// Width returns the length of every code produced by the codec.
func (c *Codec) Width() int { return c.width }

// MaxID is the largest identifier Encode accepts.
func (c *Codec) MaxID() ID { return c.maxID }

// Mode returns the decode mode.
func (c *Codec) Mode() DecodeMode { return c.mode }

// Encode renders id most-significant digit first, left-padded to full width.
func (c *Codec) Encode(id ID) (Code, error) {
	if id > c.maxID {
		return "", fmt.Errorf("%w: %d > %d", ErrIDOutOfRange, id, c.maxID)
	}

	buf := make([]byte, c.width)
	i := c.width

	// id == 0 yields no digits and is all padding.
	for n := uint64(id); n > 0; n /= c.base {
		i--
		buf[i] = c.alphabet[n%c.base]
	}

	for i > 0 {
		i--
		buf[i] = c.pad
	}

	return Code(buf), nil
}

// Decode parses code back into the identifier it represents.
func (c *Codec) Decode(code Code) (ID, error) {
	s := string(code)
	if len(s) != c.width {
		return 0, fmt.Errorf("%w: length %d, want %d", ErrInvalidCode, len(s), c.width)
	}

	if c.mode == DecodeLegacy {
		return c.fold(strings.ReplaceAll(s, string(c.pad), ""))
	}

	digits := strings.TrimLeft(s, string(c.pad))

	switch {
	case len(digits) == len(s):
		return 0, fmt.Errorf("%w: missing leading pad", ErrInvalidCode)
	case digits == "":
		return 0, nil
	case digits[0] == c.alphabet[0]:
		return 0, fmt.Errorf("%w: leading zero digit", ErrInvalidCode)
	}

	return c.fold(digits)
}

func (c *Codec) fold(digits string) (ID, error) {
	var n uint64

	for i := 0; i < len(digits); i++ {
		v := c.index[digits[i]]
		if v < 0 {
			return 0, fmt.Errorf("%w: unexpected symbol %q at %d", ErrInvalidCode, digits[i], i)
		}

		hi, lo := bits.Mul64(n, c.base)
		sum, carry := bits.Add64(lo, uint64(v), 0)

		if hi != 0 || carry != 0 {
			return 0, fmt.Errorf("%w: value overflows", ErrInvalidCode)
		}

		n = sum
	}

	return ID(n), nil
}
