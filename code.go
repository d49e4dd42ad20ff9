package huffman

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the bit length of the longest representable Code.  It is
// also the largest value the container's one-byte code length field holds.
const MaxCodeSize = 255

const codeBytes = (MaxCodeSize + 7) / 8

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The most significant bit
	// of Bits[0] is the first bit.  Bits past Size are always zero, so
	// that two equal sequences compare equal with ==.
	Bits [codeBytes]byte
}

// MakeCode is a convenience function that constructs a Code of up to 64
// bits.  The least significant bit of bits is the *last* bit in the
// sequence, so MakeCode(3, 0x5) is "101".
func MakeCode(size byte, bits uint64) Code {
	assert.Assertf(size <= 64, "size %d > 64", size)
	var hc Code
	for i := size; i > 0; i-- {
		hc = hc.Append(byte(bits>>(i-1)) & 1)
	}
	return hc
}

// CodeFromBytes constructs a Code from size bits stored left-justified in
// data, which must hold at least ceil(size/8) bytes.  Bits past size are
// discarded.
func CodeFromBytes(size byte, data []byte) Code {
	n := bytesForBits(uint64(size))
	assert.Assertf(uint64(len(data)) >= n, "need %d bytes for %d bits, got %d", n, size, len(data))
	hc := Code{Size: size}
	copy(hc.Bits[:n], data)
	if rem := size & 7; rem != 0 {
		hc.Bits[n-1] &= 0xff << (8 - rem)
	}
	return hc
}

// ParseCode parses a string of '0' and '1' characters, such as "0110".
func ParseCode(str string) (Code, error) {
	if len(str) > MaxCodeSize {
		return Code{}, fmt.Errorf("%w: %d bits", ErrCodeTooLong, len(str))
	}
	var hc Code
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("invalid character %q at index %d in code %q", str[i], i, str)
		}
	}
	return hc, nil
}

// Append returns the Code with one more bit at the end.  The receiver is
// not modified.
func (hc Code) Append(bit byte) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code already holds %d bits", hc.Size)
	if bit != 0 {
		hc.Bits[hc.Size>>3] |= 0x80 >> (hc.Size & 7)
	}
	hc.Size++
	return hc
}

// Bit returns the bit at the given index, counting from the first bit.
func (hc Code) Bit(index byte) byte {
	assert.Assertf(index < hc.Size, "index %d out of range for %d-bit code", index, hc.Size)
	return (hc.Bits[index>>3] >> (7 - (index & 7))) & 1
}

// Truncate returns the first size bits of this Code.
func (hc Code) Truncate(size byte) Code {
	if size >= hc.Size {
		return hc
	}
	out := Code{Size: size}
	full := size >> 3
	copy(out.Bits[:full], hc.Bits[:full])
	if rem := size & 7; rem != 0 {
		out.Bits[full] = hc.Bits[full] & (0xff << (8 - rem))
	}
	return out
}

// HasPrefix returns true iff prefix is a prefix of this Code.  Every Code is
// a prefix of itself.
func (hc Code) HasPrefix(prefix Code) bool {
	return prefix.Size <= hc.Size && hc.Truncate(prefix.Size) == prefix
}

// Bytes returns the bits of this Code left-justified in ceil(Size/8)
// bytes, zero padded at the end.
func (hc Code) Bytes() []byte {
	n := bytesForBits(uint64(hc.Size))
	out := make([]byte, n)
	copy(out, hc.Bits[:n])
	return out
}

// Bitstring returns the bits of this Code as a string of '0' and '1'.
func (hc Code) Bitstring() string {
	var sb strings.Builder
	sb.Grow(int(hc.Size))
	for i := byte(0); i < hc.Size; i++ {
		sb.WriteByte('0' + hc.Bit(i))
	}
	return sb.String()
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return strconv.Quote(hc.Bitstring())
}

var _ fmt.Stringer = Code{}

// sibling returns the Code that differs from this one only in its last bit.
func (hc Code) sibling() Code {
	last := hc.Size - 1
	hc.Bits[last>>3] ^= 0x80 >> (last & 7)
	return hc
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	return bytes.Compare(a.Bits[:], b.Bits[:]) < 0
}

var _ sort.Interface = byCode(nil)

// }}}
