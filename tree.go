package huffman

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/chronos-tachyon/assert"
)

// Node is one node of a Huffman tree.
//
// A leaf has a valid Symbol and no children.  An internal node has Symbol
// set to InvalidSymbol, two children, and a Freq equal to the sum of its
// children's frequencies.
type Node struct {
	Symbol Symbol
	Freq   uint64
	Left   *Node
	Right  *Node

	// rank breaks ties between nodes of equal Freq.  Leaves are ranked by
	// first appearance of their symbol; internal nodes are ranked after
	// all leaves, in order of creation.
	rank int
}

// IsLeaf returns true iff this node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Tree is a Huffman code tree.
type Tree struct {
	Root *Node
}

// BuildTree constructs the Huffman tree for the given frequencies.
//
// The construction is deterministic: the two lowest nodes by (Freq, rank)
// are merged repeatedly, the first one popped becoming the left child.  The
// result depends only on the counts and on the order in which byte values
// first appeared, never on map iteration or sort stability.
//
// A table with a single symbol yields a tree whose root is that symbol's
// leaf.  An empty table is rejected with ErrEmptyAlphabet.
//
func BuildTree(ft *FrequencyTable) (*Tree, error) {
	numLeaves := len(ft.order)
	if numLeaves == 0 {
		return nil, ErrEmptyAlphabet
	}

	// Step 1: build a minheap of leaves.

	nodes := make([]*Node, 0, numLeaves)
	for rank, b := range ft.order {
		nodes = append(nodes, &Node{Symbol: Symbol(b), Freq: ft.counts[b], rank: rank})
	}
	h := freqHeap{nodes}
	h.Init()

	// Step 2: process the minheap by popping two nodes, combining them
	// into a new internal node, and pushing the new node back onto the
	// minheap.

	nextRank := numLeaves
	for h.Len() > 1 {
		a := heap.Pop(&h).(*Node)
		b := heap.Pop(&h).(*Node)

		// Compute freqSum using saturating addition
		freqSum := a.Freq + b.Freq
		if freqSum < a.Freq {
			freqSum = math.MaxUint64
		}

		heap.Push(&h, &Node{
			Symbol: InvalidSymbol,
			Freq:   freqSum,
			Left:   a,
			Right:  b,
			rank:   nextRank,
		})
		nextRank++
	}

	return &Tree{Root: heap.Pop(&h).(*Node)}, nil
}

// CodeTable derives the code for every leaf of the tree: a left edge
// appends a 0 bit, a right edge appends a 1 bit.  A tree consisting of a
// single leaf assigns that symbol the one-bit code "0".
//
// Each call returns a freshly allocated table.  Trees with a leaf deeper
// than MaxCodeSize bits are rejected with ErrCodeTooLong.
//
func (t *Tree) CodeTable() (*CodeTable, error) {
	assert.Assertf(t.Root != nil, "tree has no root")

	table := new(CodeTable)

	if t.Root.IsLeaf() {
		if err := table.Set(leafByte(t.Root), MakeCode(1, 0)); err != nil {
			return nil, err
		}
		return table, nil
	}

	// Walk the tree with an explicit stack.  Each stackItem carries the
	// code of the path to its node, so no state is shared between
	// branches.  stackItem.x tracks where we are in the walk:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		node *Node
		code Code
		x    byte
	}

	stack := make([]stackItem, 0, 16)
	stack = append(stack, stackItem{node: t.Root})
	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++

		var child *Node
		var bit byte
		switch x {
		case 0:
			child, bit = top.node.Left, 0
		case 1:
			child, bit = top.node.Right, 1
		default:
			stack = stack[:len(stack)-1]
			continue
		}

		assert.Assertf(child != nil, "internal node with a single child")
		if top.code.Size >= MaxCodeSize {
			return nil, fmt.Errorf("%w: tree is deeper than %d levels", ErrCodeTooLong, MaxCodeSize)
		}
		code := top.code.Append(bit)

		if !child.IsLeaf() {
			stack = append(stack, stackItem{node: child, code: code})
			continue
		}
		if err := table.Set(leafByte(child), code); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func leafByte(n *Node) byte {
	assert.Assertf(n.Symbol >= 0 && n.Symbol <= MaxSymbol, "leaf symbol %d out of range", n.Symbol)
	return byte(n.Symbol)
}

// type freqHeap {{{

type freqHeap struct {
	list []*Node
}

func (h *freqHeap) Init() {
	heap.Init(h)
}

func (h *freqHeap) Len() int {
	return len(h.list)
}

func (h *freqHeap) Swap(i, j int) {
	h.list[i], h.list[j] = h.list[j], h.list[i]
}

func (h *freqHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.Freq != b.Freq {
		return a.Freq < b.Freq
	}
	return a.rank < b.rank
}

func (h *freqHeap) Push(x interface{}) {
	h.list = append(h.list, x.(*Node))
}

func (h *freqHeap) Pop() interface{} {
	last := len(h.list) - 1
	x := h.list[last]
	h.list[last] = nil
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*freqHeap)(nil)

// }}}
