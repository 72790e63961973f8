// Package lattice builds the per-position candidate DAG and runs Viterbi
// over it to recover the minimum-cost morpheme sequence.
package lattice

import "github.com/sudachigo/sudachi/dic"

// Node is one lattice candidate: either a lexicon word (IsDefined, with a
// word id resolved through lexicon) or a BOS/EOS sentinel.
type Node struct {
	Start, End int

	WordID          uint32
	LeftID, RightID int16
	Cost            int16 // the node's own word cost
	TotalCost       int32 // best cumulative path cost ending at this node

	IsOOV            bool
	IsDefined        bool
	BestPrevious     *Node
	IsConnectedToBOS bool

	extraWordInfo *dic.WordInfo
	lexicon       *dic.LexiconSet
}

// EmptyNode builds a BOS/EOS sentinel: defined connection parameters, no
// backing lexicon entry.
func EmptyNode(leftID, rightID, cost int16) *Node {
	return &Node{LeftID: leftID, RightID: rightID, Cost: cost}
}

// NewNode builds a lexicon-backed candidate node.
func NewNode(lexicon *dic.LexiconSet, leftID, rightID, cost int16, wordID uint32) *Node {
	return &Node{
		lexicon:   lexicon,
		LeftID:    leftID,
		RightID:   rightID,
		Cost:      cost,
		WordID:    wordID,
		IsDefined: true,
	}
}

// DictionaryID returns the owning dictionary's index, or false for a
// sentinel node or one with an overridden word-info.
func (n *Node) DictionaryID() (int, bool) {
	if !n.IsDefined || n.extraWordInfo != nil {
		return 0, false
	}
	return n.lexicon.DictionaryID(n.WordID), true
}

// WordInfo resolves the node's word-info record: an OOV-provider override
// if SetWordInfo was called, otherwise a lexicon lookup, otherwise the
// undefined-sentinel record for BOS/EOS nodes.
func (n *Node) WordInfo() (dic.WordInfo, error) {
	if !n.IsDefined {
		return undefinedWordInfo(), nil
	}
	if n.extraWordInfo != nil {
		return *n.extraWordInfo, nil
	}
	return n.lexicon.GetWordInfo(n.WordID)
}

// SetWordInfo overrides the node's word-info record, as OOV providers do
// when they construct a node directly rather than through a lexicon.
func (n *Node) SetWordInfo(wi dic.WordInfo) {
	n.extraWordInfo = &wi
	n.IsDefined = true
}

const nullSurface = "(null)"

func undefinedWordInfo() dic.WordInfo {
	return dic.WordInfo{
		Surface:              nullSurface,
		POSID:                -1,
		NormalizedForm:       nullSurface,
		DictionaryFormWordID: -1,
		DictionaryForm:       nullSurface,
		ReadingForm:          nullSurface,
	}
}
