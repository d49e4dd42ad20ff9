package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chronos-tachyon/assert"
)

// Encoder writes containers using a fixed CodeTable.
type Encoder struct {
	table *CodeTable
}

// NewEncoder returns an Encoder for the given table.  The table must not be
// modified while the Encoder is in use.
func NewEncoder(table *CodeTable) *Encoder {
	assert.Assertf(table != nil, "table is nil")
	return &Encoder{table: table}
}

// Table returns the code table used by this Encoder.
func (e *Encoder) Table() *CodeTable {
	return e.table
}

// PayloadBits returns the number of bits that encoding input produces,
// not counting padding.  It fails with ErrUnencodableSymbol if input holds a
// byte with no code.
func (e *Encoder) PayloadBits(input []byte) (uint64, error) {
	var sum uint64
	for index, b := range input {
		hc, found := e.table.Lookup(b)
		if !found {
			return 0, fmt.Errorf("%w: byte 0x%02x at offset %d", ErrUnencodableSymbol, b, index)
		}
		sum += uint64(hc.Size)
	}
	return sum, nil
}

// Encode returns the container for input: the code table, the exact
// payload bit count, and the packed codes of every input byte.
func (e *Encoder) Encode(input []byte) ([]byte, error) {
	bitCount, err := e.PayloadBits(input)
	if err != nil {
		return nil, err
	}
	if bitCount > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bits", ErrPayloadTooLarge, bitCount)
	}

	var buf bytes.Buffer
	buf.Grow(headerSize(e.table) + int(bytesForBits(bitCount)))

	writeCodeTable(&buf, e.table)

	var field [bitCountFieldSize]byte
	binary.BigEndian.PutUint32(field[:], uint32(bitCount))
	buf.Write(field[:])

	p := NewBitPacker(&buf)
	for _, b := range input {
		if err := p.WriteCode(e.table.codes[b]); err != nil {
			return nil, err
		}
	}
	if err := p.Close(); err != nil {
		return nil, err
	}
	assert.Assertf(p.BitCount() == bitCount, "wrote %d bits, expected %d", p.BitCount(), bitCount)

	return buf.Bytes(), nil
}
