package huffman

import (
	"bytes"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func roundTripInputs() map[string][]byte {
	rng := rand.New(rand.NewSource(1))

	random := make([]byte, 10000)
	rng.Read(random)

	skewed := make([]byte, 10000)
	for i := range skewed {
		switch n := rng.Intn(100); {
		case n < 80:
			skewed[i] = 'e'
		case n < 95:
			skewed[i] = 't'
		default:
			skewed[i] = byte(rng.Intn(256))
		}
	}

	full := make([]byte, 3*NumSymbols)
	for i := range full {
		full[i] = byte(i * 7)
	}

	return map[string][]byte{
		"empty":    {},
		"one-byte": {0x00},
		"aaab":     []byte("aaab"),
		"repeated": bytes.Repeat([]byte{0xff}, 1000),
		"full":     full,
		"random":   random,
		"skewed":   skewed,
		"text":     []byte(strings.Repeat("Não há nada como a poesia. ", 40)),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, input := range roundTripInputs() {
		t.Run(name, func(t *testing.T) {
			container, err := Compress(input)
			require.NoError(t, err)

			output, err := Decompress(container)
			require.NoError(t, err)
			require.True(t, bytes.Equal(input, output), "round trip mismatch")
		})
	}
}

func TestCompress_Deterministic(t *testing.T) {
	for name, input := range roundTripInputs() {
		t.Run(name, func(t *testing.T) {
			first, err := Compress(input)
			require.NoError(t, err)
			second, err := Compress(append([]byte(nil), input...))
			require.NoError(t, err)
			require.Equal(t, first, second)
		})
	}
}

func TestCompress_Parallel(t *testing.T) {
	inputs := roundTripInputs()
	want := make(map[string][]byte, len(inputs))
	for name, input := range inputs {
		out, err := Compress(input)
		require.NoError(t, err)
		want[name] = out
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	got := make(map[string][]byte, len(inputs))
	for name, input := range inputs {
		wg.Add(1)
		go func(name string, input []byte) {
			defer wg.Done()
			out, err := Compress(input)
			if err != nil {
				return
			}
			mu.Lock()
			got[name] = out
			mu.Unlock()
		}(name, input)
	}
	wg.Wait()
	require.Equal(t, want, got)
}

func TestCompress_SkewedIsSmaller(t *testing.T) {
	input := roundTripInputs()["skewed"]
	container, err := Compress(input)
	require.NoError(t, err)

	c, err := ParseContainer(container)
	require.NoError(t, err)
	require.Less(t, uint64(c.BitCount), uint64(len(input))*8)
	require.Less(t, len(container), len(input))
}
