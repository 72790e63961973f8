package lattice

import (
	"math"

	"github.com/sudachigo/sudachi/dic"
)

// Lattice is keyed by byte position in the modified input text:
// endLists[i] holds every candidate node ending at byte i.
type Lattice struct {
	size     int
	endLists [][]*Node
	grammar  *dic.Grammar
	eosNode  *Node
}

// New creates a lattice over grammar's connection table, seeded with a
// single BOS sentinel at position 0.
func New(grammar *dic.Grammar) *Lattice {
	bos := EmptyNode(grammar.BOSParams.LeftID, grammar.BOSParams.RightID, grammar.BOSParams.Cost)
	bos.IsConnectedToBOS = true
	return &Lattice{
		endLists: [][]*Node{{bos}},
		grammar:  grammar,
	}
}

// Resize grows the lattice to cover a text of the given byte length and
// installs a fresh EOS sentinel at that position.
func (l *Lattice) Resize(size int) {
	for len(l.endLists) <= size {
		l.endLists = append(l.endLists, nil)
	}
	l.size = size
	eos := EmptyNode(l.grammar.EOSParams.LeftID, l.grammar.EOSParams.RightID, l.grammar.EOSParams.Cost)
	eos.Start = size
	eos.End = size
	l.eosNode = eos
}

// Clear empties every end-list and drops the EOS sentinel, readying the
// lattice for reuse on the next input.
func (l *Lattice) Clear() {
	for i := range l.endLists {
		l.endLists[i] = nil
	}
	l.size = 0
	l.eosNode = nil
}

// Insert places node at [start, end), connecting it to its best
// predecessor among end-of-start candidates before appending it to
// endLists[end].
func (l *Lattice) Insert(start, end int, node *Node) {
	node.Start = start
	node.End = end
	l.connectNode(node)
	l.endLists[end] = append(l.endLists[end], node)
}

// HasPreviousNode reports whether any candidate ends at byte index.
func (l *Lattice) HasPreviousNode(index int) bool {
	return len(l.endLists[index]) > 0
}

// connectNode computes rNode's best predecessor among the nodes ending
// at rNode.Start: for each left candidate still connected to BOS, skip
// the inhibited-connection sentinel cost, otherwise keep the minimum
// total cost.
func (l *Lattice) connectNode(rNode *Node) {
	rNode.TotalCost = math.MaxInt32
	for _, lNode := range l.endLists[rNode.Start] {
		if !lNode.IsConnectedToBOS {
			continue
		}
		connectCost := l.grammar.Cost(lNode.RightID, rNode.LeftID)
		if connectCost == dic.InhibitedConnection {
			continue
		}
		cost := lNode.TotalCost + int32(connectCost)
		if cost < rNode.TotalCost {
			rNode.TotalCost = cost
			rNode.BestPrevious = lNode
		}
	}
	rNode.IsConnectedToBOS = rNode.BestPrevious != nil
	rNode.TotalCost += int32(rNode.Cost)
}

// ConnectEOSNode runs the same predecessor search for the EOS sentinel,
// finalizing the path cost for the whole lattice.
func (l *Lattice) ConnectEOSNode() {
	l.connectNode(l.eosNode)
}

// GetBestPath walks back from EOS through BestPrevious pointers and
// returns the winning node sequence in forward order.
func (l *Lattice) GetBestPath() []*Node {
	var result []*Node
	bos := l.endLists[0][0]
	node := l.eosNode.BestPrevious
	for node != nil && node != bos {
		result = append(result, node)
		node = node.BestPrevious
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}
