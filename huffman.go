package huffman

// Compress returns the container for input.  The output depends only on
// input: compressing the same bytes twice yields the same container.
//
// Empty input yields a container with no symbols and no payload bits.
func Compress(input []byte) ([]byte, error) {
	ft := CountFrequencies(input)
	if ft.Len() == 0 {
		return NewEncoder(new(CodeTable)).Encode(nil)
	}

	tree, err := BuildTree(ft)
	if err != nil {
		return nil, err
	}
	table, err := tree.CodeTable()
	if err != nil {
		return nil, err
	}
	return NewEncoder(table).Encode(input)
}

// Decompress reverses Compress.  Malformed input fails with one of
// ErrTruncatedHeader, ErrUnknownCode or ErrMalformedContainer; no partial
// output is returned on failure.
func Decompress(container []byte) ([]byte, error) {
	c, err := ParseContainer(container)
	if err != nil {
		return nil, err
	}
	return c.Decode()
}
