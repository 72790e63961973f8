package lattice

import (
	"testing"

	"github.com/sudachigo/sudachi/dic"
)

// newTestGrammar builds a 2x2 connection matrix: left/right ids are
// either 0 or 1, with costs chosen so that id 0 connects to id 0, and id
// 1 to id 1, cheaper than any cross connection.
func newTestGrammar() *dic.Grammar {
	// Cost() reads costs[rightID*leftSize+leftID].
	costs := []int16{
		0, 100, // rightID=0: leftID0->0, leftID1->100
		100, 0, // rightID=1: leftID0->100, leftID1->0
	}
	bos := dic.Params{LeftID: 0, RightID: 0, Cost: 0}
	eos := dic.Params{LeftID: 0, RightID: 0, Cost: 0}
	return dic.NewGrammar(nil, 2, 2, costs, bos, eos)
}

func TestLatticeSinglePath(t *testing.T) {
	g := newTestGrammar()
	l := New(g)
	l.Resize(3)

	n1 := NewNode(nil, 0, 0, 5, 1)
	l.Insert(0, 3, n1)
	l.ConnectEOSNode()

	path := l.GetBestPath()
	if len(path) != 1 {
		t.Fatalf("expected 1 node on best path, got %d", len(path))
	}
	if path[0] != n1 {
		t.Fatalf("expected the only candidate to win")
	}
	// BOS(cost0) -> n1: connect cost 0 (leftID0/rightID0) + node cost 5 = 5.
	if n1.TotalCost != 5 {
		t.Fatalf("n1.TotalCost = %d, want 5", n1.TotalCost)
	}
}

func TestLatticePicksCheaperPath(t *testing.T) {
	g := newTestGrammar()
	l := New(g)
	l.Resize(3)

	// Two candidates spanning the same range with different ids/costs;
	// the cheaper total path should win.
	cheap := NewNode(nil, 0, 0, 1, 1) // connects to BOS (id0) for free
	expensive := NewNode(nil, 1, 1, 1, 2)
	l.Insert(0, 3, cheap)
	l.Insert(0, 3, expensive)
	l.ConnectEOSNode()

	path := l.GetBestPath()
	if len(path) != 1 || path[0] != cheap {
		t.Fatalf("expected the cheap candidate to win the best path")
	}
}

func TestLatticeTwoSegmentPath(t *testing.T) {
	g := newTestGrammar()
	l := New(g)
	l.Resize(4)

	a := NewNode(nil, 0, 0, 2, 1)
	l.Insert(0, 2, a)
	b := NewNode(nil, 0, 0, 3, 2)
	l.Insert(2, 4, b)
	l.ConnectEOSNode()

	path := l.GetBestPath()
	if len(path) != 2 {
		t.Fatalf("expected 2 nodes on best path, got %d", len(path))
	}
	if path[0] != a || path[1] != b {
		t.Fatalf("expected [a, b] in forward order")
	}
}

func TestLatticeInhibitedConnectionSkipped(t *testing.T) {
	costs := []int16{
		dic.InhibitedConnection, 0,
		0, 0,
	}
	bos := dic.Params{LeftID: 0, RightID: 0, Cost: 0}
	eos := dic.Params{LeftID: 0, RightID: 0, Cost: 0}
	g := dic.NewGrammar(nil, 2, 2, costs, bos, eos)
	l := New(g)
	l.Resize(2)

	// leftID0 (BOS) -> rightID0 is inhibited, so this candidate must not
	// connect to BOS.
	n := NewNode(nil, 0, 0, 1, 1)
	l.Insert(0, 2, n)
	if n.IsConnectedToBOS {
		t.Fatal("expected the inhibited connection to leave the node unconnected")
	}
}
