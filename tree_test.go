package huffman

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// makeTestFrequencies returns a table in which symbol i occurs counts[i]
// times and symbols first appear in ascending order.
func makeTestFrequencies(counts []uint64) *FrequencyTable {
	ft := new(FrequencyTable)
	for symbol, count := range counts {
		ft.Add(bytes.Repeat([]byte{byte(symbol)}, int(count)))
	}
	return ft
}

func TestBuildTree(t *testing.T) {
	tree, err := BuildTree(makeTestFrequencies([]uint64{5, 9, 12, 13, 16, 45}))
	require.NoError(t, err)
	require.Equal(t, uint64(100), tree.Root.Freq)
	require.Equal(t, InvalidSymbol, tree.Root.Symbol)
	require.Equal(t, Symbol(5), tree.Root.Left.Symbol)

	table, err := tree.CodeTable()
	require.NoError(t, err)

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tLookup(0x00) = \"1100\"\n",
		"\tLookup(0x01) = \"1101\"\n",
		"\tLookup(0x02) = \"100\"\n",
		"\tLookup(0x03) = \"101\"\n",
		"\tLookup(0x04) = \"111\"\n",
		"\tLookup(0x05) = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = table.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestBuildTree_Empty(t *testing.T) {
	_, err := BuildTree(CountFrequencies(nil))
	require.ErrorIs(t, err, ErrEmptyAlphabet)
}

func TestBuildTree_SingleSymbol(t *testing.T) {
	tree, err := BuildTree(CountFrequencies([]byte("zzzz")))
	require.NoError(t, err)
	require.True(t, tree.Root.IsLeaf())
	require.Equal(t, Symbol('z'), tree.Root.Symbol)

	table, err := tree.CodeTable()
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	hc, found := table.Lookup('z')
	require.True(t, found)
	require.Equal(t, `"0"`, hc.String())
}

func TestBuildTree_TieBreakByFirstAppearance(t *testing.T) {
	type testRow struct {
		input string
		zero  byte
		one   byte
	}

	testData := [...]testRow{
		{input: "ab", zero: 'a', one: 'b'},
		{input: "ba", zero: 'b', one: 'a'},
		{input: "aaab", zero: 'b', one: 'a'},
		{input: "abbb", zero: 'a', one: 'b'},
	}
	for _, row := range testData {
		t.Run(row.input, func(t *testing.T) {
			tree, err := BuildTree(CountFrequencies([]byte(row.input)))
			require.NoError(t, err)
			table, err := tree.CodeTable()
			require.NoError(t, err)

			hc, _ := table.Lookup(row.zero)
			require.Equal(t, `"0"`, hc.String())
			hc, _ = table.Lookup(row.one)
			require.Equal(t, `"1"`, hc.String())
		})
	}
}

func TestBuildTree_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	counts := make([]uint64, NumSymbols)
	for i := range counts {
		counts[i] = uint64(rng.Intn(4) + 1)
	}

	var first string
	for i := 0; i < 5; i++ {
		tree, err := BuildTree(makeTestFrequencies(counts))
		require.NoError(t, err)
		table, err := tree.CodeTable()
		require.NoError(t, err)
		if i == 0 {
			first = table.DebugString()
			continue
		}
		require.Equal(t, first, table.DebugString())
	}
}

func TestCodeTable_PrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	distributions := map[string][]uint64{
		"equal-256": nil,
		"equal-5":   {3, 3, 3, 3, 3},
		"skewed":    {1000, 1, 1, 2, 3, 5, 8, 13},
	}
	equal := make([]uint64, NumSymbols)
	for i := range equal {
		equal[i] = 1
	}
	distributions["equal-256"] = equal
	for n := 0; n < 10; n++ {
		counts := make([]uint64, 2+rng.Intn(NumSymbols-1))
		for i := range counts {
			counts[i] = uint64(rng.Intn(1000) + 1)
		}
		distributions["random-"+string(rune('a'+n))] = counts
	}

	for name, counts := range distributions {
		t.Run(name, func(t *testing.T) {
			tree, err := BuildTree(makeTestFrequencies(counts))
			require.NoError(t, err)
			table, err := tree.CodeTable()
			require.NoError(t, err)
			require.Equal(t, len(counts), table.Len())

			symbols := table.Symbols()
			for _, a := range symbols {
				ca, _ := table.Lookup(a)
				require.NotZero(t, ca.Size)
				for _, b := range symbols {
					if a == b {
						continue
					}
					cb, _ := table.Lookup(b)
					require.False(t, cb.HasPrefix(ca), "%s is a prefix of %s", ca, cb)
				}
			}
		})
	}

	tree, err := BuildTree(makeTestFrequencies(equal))
	require.NoError(t, err)
	table, err := tree.CodeTable()
	require.NoError(t, err)
	require.Equal(t, byte(8), table.MinSize())
	require.Equal(t, byte(8), table.MaxSize())
}

func TestTree_CodeTableTooDeep(t *testing.T) {
	// A right-leaning chain of 256 internal nodes puts its last left leaf
	// at depth 256.
	root := &Node{Symbol: 0, Freq: 1}
	for i := NumSymbols - 1; i >= 0; i-- {
		root = &Node{
			Symbol: InvalidSymbol,
			Freq:   root.Freq + 1,
			Left:   &Node{Symbol: Symbol(i), Freq: 1},
			Right:  root,
		}
	}

	_, err := (&Tree{Root: root}).CodeTable()
	require.ErrorIs(t, err, ErrCodeTooLong)
}

func TestTree_DeepCodes(t *testing.T) {
	// Fibonacci frequencies give the most lopsided tree possible.
	ft := new(FrequencyTable)
	a, b := uint64(1), uint64(1)
	for symbol := 0; symbol < 60; symbol++ {
		ft.counts[symbol] = a
		ft.order = append(ft.order, byte(symbol))
		a, b = b, a+b
	}

	tree, err := BuildTree(ft)
	require.NoError(t, err)
	table, err := tree.CodeTable()
	require.NoError(t, err)
	require.Equal(t, byte(1), table.MinSize())
	require.Equal(t, byte(59), table.MaxSize())

	input := ft.Order()
	container, err := NewEncoder(table).Encode(input)
	require.NoError(t, err)
	output, err := Decompress(container)
	require.NoError(t, err)
	require.Equal(t, input, output)
}
