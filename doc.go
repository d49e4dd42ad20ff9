// Package huffman implements a self-describing Huffman coder for byte
// streams.
//
// Compress counts the byte values of its input, builds a Huffman tree with a
// deterministic tie-break, derives one prefix code per byte value, and
// writes a container holding the code table, the exact payload bit count and
// the packed payload.  Decompress parses such a container and reproduces the
// input byte for byte.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
