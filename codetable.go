package huffman

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// CodeTable maps each byte value of an alphabet to its Huffman code.
//
// The codes in a CodeTable always form a prefix code: no code is a prefix
// of another.  Set enforces this.  The zero value is an empty table, ready
// to use.
//
type CodeTable struct {
	codes   [NumSymbols]Code
	count   int
	minSize byte
	maxSize byte
}

// Set assigns a code to a symbol.  It fails if the code is empty, if the
// symbol already has a code, or if the code and some other symbol's code
// are prefixes of one another.
func (t *CodeTable) Set(symbol byte, hc Code) error {
	if hc.Size == 0 {
		return fmt.Errorf("empty code for symbol 0x%02x", symbol)
	}
	if t.codes[symbol].Size != 0 {
		return fmt.Errorf("symbol 0x%02x already has code %s", symbol, t.codes[symbol])
	}
	for other := 0; other < NumSymbols; other++ {
		existing := t.codes[other]
		if existing.Size == 0 {
			continue
		}
		if existing.HasPrefix(hc) || hc.HasPrefix(existing) {
			return fmt.Errorf("code %s for symbol 0x%02x conflicts with code %s for symbol 0x%02x", hc, symbol, existing, other)
		}
	}

	t.codes[symbol] = hc
	if t.count == 0 {
		t.minSize = hc.Size
		t.maxSize = hc.Size
	} else if t.minSize > hc.Size {
		t.minSize = hc.Size
	} else if t.maxSize < hc.Size {
		t.maxSize = hc.Size
	}
	t.count++
	return nil
}

// Lookup returns the code for the given symbol.  The boolean is false if
// the symbol is not part of this table's alphabet.
func (t *CodeTable) Lookup(symbol byte) (Code, bool) {
	hc := t.codes[symbol]
	return hc, hc.Size != 0
}

// Len returns the number of symbols in the table.
func (t *CodeTable) Len() int {
	return t.count
}

// Symbols returns the symbols of the table in ascending order.
func (t *CodeTable) Symbols() []byte {
	out := make([]byte, 0, t.count)
	for symbol := 0; symbol < NumSymbols; symbol++ {
		if t.codes[symbol].Size != 0 {
			out = append(out, byte(symbol))
		}
	}
	return out
}

// MinSize is the bit length of the shortest code.
func (t *CodeTable) MinSize() byte {
	return t.minSize
}

// MaxSize is the bit length of the longest code.
func (t *CodeTable) MaxSize() byte {
	return t.maxSize
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer.
func (t *CodeTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", t.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", t.maxSize)
	for _, symbol := range t.Symbols() {
		fmt.Fprintf(&buf, "\tLookup(0x%02x) = %s\n", symbol, t.codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// DebugString returns the output of Dump as a string.
func (t *CodeTable) DebugString() string {
	var sb bytes.Buffer
	_, _ = t.Dump(&sb)
	return sb.String()
}

// String returns a brief description of the table.
func (t *CodeTable) String() string {
	if t.count == 0 {
		return "(empty Huffman code table)"
	}
	return fmt.Sprintf("(Huffman code table with %d symbols, with code lengths of %d .. %d bits)", t.count, t.minSize, t.maxSize)
}

type codeTableEntry struct {
	Symbol byte   `json:"symbol"`
	Code   string `json:"code"`
}

// MarshalJSON encodes the table as a list of {"symbol", "code"} objects in
// ascending symbol order.
func (t *CodeTable) MarshalJSON() ([]byte, error) {
	list := make([]codeTableEntry, 0, t.count)
	for _, symbol := range t.Symbols() {
		list = append(list, codeTableEntry{Symbol: symbol, Code: t.codes[symbol].Bitstring()})
	}
	return json.Marshal(list)
}

// UnmarshalJSON replaces the table's contents with the decoded list.  The
// table is left unchanged on error.
func (t *CodeTable) UnmarshalJSON(raw []byte) error {
	var list []codeTableEntry
	if err := json.Unmarshal(raw, &list); err != nil {
		return err
	}
	var fresh CodeTable
	for _, entry := range list {
		hc, err := ParseCode(entry.Code)
		if err != nil {
			return err
		}
		if err := fresh.Set(entry.Symbol, hc); err != nil {
			return err
		}
	}
	*t = fresh
	return nil
}

var (
	_ fmt.Stringer     = (*CodeTable)(nil)
	_ json.Marshaler   = (*CodeTable)(nil)
	_ json.Unmarshaler = (*CodeTable)(nil)
)
