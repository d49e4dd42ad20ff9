package huffman

import "errors"

var (
	// ErrEmptyAlphabet indicates that a Huffman tree was requested for a
	// frequency table with no symbols.
	ErrEmptyAlphabet = errors.New("empty alphabet")

	// ErrCodeTooLong indicates that a code would exceed MaxCodeSize bits.
	ErrCodeTooLong = errors.New("code too long")

	// ErrUnencodableSymbol indicates that the input holds a byte with no
	// entry in the code table.
	ErrUnencodableSymbol = errors.New("unencodable symbol")

	// ErrPayloadTooLarge indicates that the encoded payload has more bits
	// than the container's 32-bit bit count field can describe.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrTruncatedHeader indicates that the container ended before the
	// code table or the payload bit count was fully read.
	ErrTruncatedHeader = errors.New("truncated header")

	// ErrUnknownCode indicates that the payload holds a bit sequence that
	// does not match any code in the table.
	ErrUnknownCode = errors.New("unknown code")

	// ErrMalformedContainer indicates any other structural inconsistency
	// in a container.
	ErrMalformedContainer = errors.New("malformed container")
)
