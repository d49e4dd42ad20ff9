package huffman

import (
	"bytes"
	"fmt"
	"io"
)

// FrequencyTable counts the occurrences of each byte value in some input,
// and remembers the order in which the distinct values first appeared.
//
// The zero value is an empty table, ready to use.
type FrequencyTable struct {
	counts [NumSymbols]uint64
	order  []byte
}

// CountFrequencies returns a FrequencyTable for the given data.  Empty data
// yields an empty table.
func CountFrequencies(data []byte) *FrequencyTable {
	ft := new(FrequencyTable)
	ft.Add(data)
	return ft
}

// Add counts each byte of data.
func (ft *FrequencyTable) Add(data []byte) {
	for _, b := range data {
		if ft.counts[b] == 0 {
			ft.order = append(ft.order, b)
		}
		ft.counts[b]++
	}
}

// Count returns the number of occurrences of the given byte value.
func (ft *FrequencyTable) Count(symbol byte) uint64 {
	return ft.counts[symbol]
}

// Len returns the number of distinct byte values seen so far.
func (ft *FrequencyTable) Len() int {
	return len(ft.order)
}

// Total returns the number of bytes counted.
func (ft *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, b := range ft.order {
		sum += ft.counts[b]
	}
	return sum
}

// Order returns the distinct byte values in order of first appearance.
func (ft *FrequencyTable) Order() []byte {
	out := make([]byte, len(ft.order))
	copy(out, ft.order)
	return out
}

// Symbols returns the distinct byte values in ascending order.
func (ft *FrequencyTable) Symbols() []byte {
	out := make([]byte, 0, len(ft.order))
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if ft.counts[symbol] != 0 {
			out = append(out, byte(symbol))
		}
	}
	return out
}

// Dump writes a programmer-readable listing of the table to the given
// writer: one line per byte value, in order of first appearance, with its
// count and its 8-bit binary representation.
func (ft *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	for _, b := range ft.order {
		fmt.Fprintf(&buf, "\tCount(0x%02x) = %d (%08b)\n", b, ft.counts[b], b)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
