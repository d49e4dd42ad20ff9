package huffman

import (
	"bytes"
	"io"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// BitPacker writes Codes to a byte stream, most significant bit first.
type BitPacker struct {
	w     *bitio.Writer
	count uint64
}

// NewBitPacker returns a BitPacker that writes to w.
func NewBitPacker(w io.Writer) *BitPacker {
	return &BitPacker{w: bitio.NewWriter(w)}
}

// WriteCode appends the bits of hc to the stream.
func (p *BitPacker) WriteCode(hc Code) error {
	assert.Assertf(hc.Size != 0, "cannot write an empty code")
	full := hc.Size >> 3
	for i := byte(0); i < full; i++ {
		if err := p.w.WriteBits(uint64(hc.Bits[i]), 8); err != nil {
			return err
		}
	}
	if rem := hc.Size & 7; rem != 0 {
		if err := p.w.WriteBits(uint64(hc.Bits[full]>>(8-rem)), rem); err != nil {
			return err
		}
	}
	p.count += uint64(hc.Size)
	return nil
}

// BitCount returns the number of bits written so far, not counting padding.
func (p *BitPacker) BitCount() uint64 {
	return p.count
}

// Close pads the last byte with zero bits and flushes it.
func (p *BitPacker) Close() error {
	return p.w.Close()
}

// BitReader reads a fixed number of bits from a byte buffer, most
// significant bit first.  Bits past the limit are never returned.
type BitReader struct {
	r         *bitio.Reader
	remaining uint64
}

// NewBitReader returns a BitReader over the first bitCount bits of data.
func NewBitReader(data []byte, bitCount uint64) *BitReader {
	assert.Assertf(bitCount <= uint64(len(data))*8, "bitCount %d exceeds %d bytes", bitCount, len(data))
	return &BitReader{r: bitio.NewReader(bytes.NewReader(data)), remaining: bitCount}
}

// ReadBit returns the next bit as 0 or 1.  It returns io.EOF once the limit
// has been reached.
func (br *BitReader) ReadBit() (byte, error) {
	if br.remaining == 0 {
		return 0, io.EOF
	}
	b, err := br.r.ReadBool()
	if err != nil {
		return 0, err
	}
	br.remaining--
	if b {
		return 1, nil
	}
	return 0, nil
}

// Remaining returns the number of bits left before the limit.
func (br *BitReader) Remaining() uint64 {
	return br.remaining
}
