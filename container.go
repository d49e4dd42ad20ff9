package huffman

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Container layout, all integers big-endian:
//
//	symbol count      2 bytes
//	per symbol, ascending by symbol value:
//	  symbol          1 byte
//	  code length     1 byte, 1 .. MaxCodeSize
//	  code bits       ceil(length/8) bytes, left-justified, zero padded
//	payload bit count 4 bytes
//	payload           ceil(bit count/8) bytes, zero padded
//
const (
	countFieldSize    = 2
	bitCountFieldSize = 4
)

// Container is the parsed form of a compressed stream.
type Container struct {
	// Table holds the code table read from the header.
	Table CodeTable

	// BitCount holds the number of meaningful bits in Payload.
	BitCount uint32

	// Payload holds the packed codes, padded to a whole byte.
	Payload []byte
}

// Decode reconstructs the original bytes from the container's payload.
func (c *Container) Decode() ([]byte, error) {
	var d Decoder
	d.Init(&c.Table)
	return d.DecodePayload(c.Payload, uint64(c.BitCount))
}

// ParseContainer splits data into its code table and payload, validating
// the structure.  Running out of data before the payload bit count has been
// read yields ErrTruncatedHeader; any other inconsistency yields
// ErrMalformedContainer.  The returned Payload aliases data.
func ParseContainer(data []byte) (*Container, error) {
	r := headerReader{data: data}

	field, err := r.next(countFieldSize, "symbol count")
	if err != nil {
		return nil, err
	}
	numSymbols := int(binary.BigEndian.Uint16(field))
	if numSymbols > NumSymbols {
		return nil, fmt.Errorf("%w: symbol count %d exceeds %d", ErrMalformedContainer, numSymbols, NumSymbols)
	}

	c := new(Container)
	prev := -1
	for i := 0; i < numSymbols; i++ {
		entry, err := r.next(2, "code table entry")
		if err != nil {
			return nil, err
		}
		symbol, size := entry[0], entry[1]
		if int(symbol) <= prev {
			return nil, fmt.Errorf("%w: symbol 0x%02x out of order at offset %d", ErrMalformedContainer, symbol, r.pos-2)
		}
		prev = int(symbol)
		if size == 0 {
			return nil, fmt.Errorf("%w: zero-length code for symbol 0x%02x", ErrMalformedContainer, symbol)
		}

		bits, err := r.next(int(bytesForBits(uint64(size))), "code bits")
		if err != nil {
			return nil, err
		}
		hc := CodeFromBytes(size, bits)
		if !bytes.Equal(hc.Bytes(), bits) {
			return nil, fmt.Errorf("%w: non-zero padding in code for symbol 0x%02x", ErrMalformedContainer, symbol)
		}
		if err := c.Table.Set(symbol, hc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
		}
	}

	field, err = r.next(bitCountFieldSize, "payload bit count")
	if err != nil {
		return nil, err
	}
	c.BitCount = binary.BigEndian.Uint32(field)
	c.Payload = data[r.pos:]

	if numSymbols == 0 && c.BitCount != 0 {
		return nil, fmt.Errorf("%w: %d payload bits with an empty code table", ErrMalformedContainer, c.BitCount)
	}
	want := bytesForBits(uint64(c.BitCount))
	if uint64(len(c.Payload)) != want {
		return nil, fmt.Errorf("%w: bit count %d needs %d payload bytes, have %d", ErrMalformedContainer, c.BitCount, want, len(c.Payload))
	}
	if used := c.BitCount & 7; used != 0 && c.Payload[len(c.Payload)-1]&(0xff>>used) != 0 {
		return nil, fmt.Errorf("%w: non-zero padding bits after payload", ErrMalformedContainer)
	}
	return c, nil
}

// headerSize returns the number of bytes the header takes for table,
// including the payload bit count field.
func headerSize(table *CodeTable) int {
	n := countFieldSize + bitCountFieldSize
	for _, symbol := range table.Symbols() {
		n += 2 + int(bytesForBits(uint64(table.codes[symbol].Size)))
	}
	return n
}

// writeCodeTable writes the symbol count and the per-symbol entries.
func writeCodeTable(buf *bytes.Buffer, table *CodeTable) {
	var field [countFieldSize]byte
	binary.BigEndian.PutUint16(field[:], uint16(table.Len()))
	buf.Write(field[:])
	for _, symbol := range table.Symbols() {
		hc := table.codes[symbol]
		buf.WriteByte(symbol)
		buf.WriteByte(hc.Size)
		buf.Write(hc.Bytes())
	}
}

type headerReader struct {
	data []byte
	pos  int
}

func (r *headerReader) next(n int, what string) ([]byte, error) {
	if avail := len(r.data) - r.pos; avail < n {
		return nil, fmt.Errorf("%w: need %d bytes for %s at offset %d, have %d", ErrTruncatedHeader, n, what, r.pos, avail)
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}
