package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// Decoder turns a bit stream back into symbols, using the inverse of a
// CodeTable.
//
// Internally, every prefix of every code is kept in a table together with
// the range of code sizes reachable from it, so that a partially read code
// can be rejected as soon as it leaves the code tree.
//
type Decoder struct {
	table   map[Code]decoderData
	count   int
	minSize byte
	maxSize byte
}

// NewDecoder returns a Decoder for the given table.
func NewDecoder(ct *CodeTable) *Decoder {
	d := new(Decoder)
	d.Init(ct)
	return d
}

// Init initializes this Decoder from a code table.  An empty table is
// permitted; such a Decoder accepts only an empty bit stream.
func (d *Decoder) Init(ct *CodeTable) {
	if ct.Len() == 0 {
		*d = Decoder{}
		return
	}

	// A full binary tree with n leaves has 2n-1 nodes.
	numTableSlots := 2 * ct.Len()

	*d = Decoder{
		table:   make(map[Code]decoderData, numTableSlots),
		count:   ct.Len(),
		minSize: ct.MinSize(),
		maxSize: ct.MaxSize(),
	}

	for _, symbol := range ct.Symbols() {
		fillTable(d.table, Symbol(symbol), ct.codes[symbol])
	}
}

// Decode attempts to decode a Huffman code into a Symbol.
//
// If the Decode is completely successful, symbol >= 0 and minSize == maxSize.
//
// If the Decode fails due to insufficient bits, symbol == InvalidSymbol and
// at least (minSize - hc.Size) additional bits are required to decode this
// symbol.  No more than (maxSize - hc.Size) additional bits will be required.
//
// If the Decode fails due to unreasonable input, symbol == InvalidSymbol and
// minSize == maxSize == 0.
//
func (d *Decoder) Decode(hc Code) (symbol Symbol, minSize byte, maxSize byte) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// DecodePayload decodes exactly bitCount bits of payload.  Bits past
// bitCount are ignored.  It fails with ErrUnknownCode if the bits stray
// from every code, or if they end in the middle of a code.
func (d *Decoder) DecodePayload(payload []byte, bitCount uint64) ([]byte, error) {
	if have := uint64(len(payload)) * 8; bitCount > have {
		return nil, fmt.Errorf("%w: bit count %d exceeds %d payload bits", ErrMalformedContainer, bitCount, have)
	}

	var capHint uint64
	if d.maxSize != 0 {
		capHint = bitCount / uint64(d.maxSize)
	}
	out := make([]byte, 0, capHint)

	br := NewBitReader(payload, bitCount)
	var hc Code
	for br.Remaining() != 0 {
		bit, err := br.ReadBit()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedContainer, err)
		}
		hc = hc.Append(bit)

		symbol, minSize, _ := d.Decode(hc)
		if symbol != InvalidSymbol {
			out = append(out, byte(symbol))
			hc = Code{}
			continue
		}
		if minSize == 0 {
			return nil, fmt.Errorf("%w: %s ending at bit %d", ErrUnknownCode, hc, bitCount-br.Remaining())
		}
	}
	if hc.Size != 0 {
		return nil, fmt.Errorf("%w: payload ends inside code prefix %s", ErrUnknownCode, hc)
	}
	return out, nil
}

// MinSize is the bit length of the shortest legal code.
func (d *Decoder) MinSize() byte {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d *Decoder) MaxSize() byte {
	return d.maxSize
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (d *Decoder) DebugString() string {
	var buf bytes.Buffer
	_, _ = d.Dump(&buf)
	return buf.String()
}

// String returns a brief description of the Decoder.
func (d *Decoder) String() string {
	if d.count == 0 {
		return "(empty Huffman decoder)"
	}
	return fmt.Sprintf("(Huffman decoder with %d symbols, with coded lengths of %d .. %d bits)", d.count, d.minSize, d.maxSize)
}

var _ fmt.Stringer = (*Decoder)(nil)

type decoderData struct {
	symbol  Symbol
	minSize byte
	maxSize byte
}

func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) {
	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "...xxxa", compute "...xxxA" where A = NOT a.

		sibling := hc.sibling()

		// Merge the dd's from "...xxxa" (dd) and "...xxxA" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[sibling]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "...xxxa" to "...xxx".

		hc = hc.Truncate(hc.Size - 1)

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
}
