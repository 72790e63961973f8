package oov

import (
	"github.com/sudachigo/sudachi/dic"
	"github.com/sudachigo/sudachi/inputtext"
	"github.com/sudachigo/sudachi/lattice"
)

// SimpleProvider emits a single node spanning the next "word candidate"
// run (§4.7), but only when nothing else already starts there.
type SimpleProvider struct {
	leftID, rightID int16
	cost            int16
	posID           int16
}

// NewSimpleProvider resolves pos against grammar's POS table (falling
// back to -1 when unregistered) and fixes the connection parameters
// used for every node it emits.
func NewSimpleProvider(grammar *dic.Grammar, leftID, rightID, cost int16, pos dic.POS) *SimpleProvider {
	return &SimpleProvider{
		leftID:  leftID,
		rightID: rightID,
		cost:    cost,
		posID:   posOrUndefined(grammar, pos),
	}
}

func (p *SimpleProvider) ProvideOOV(text *inputtext.InputText, offset int, hasOtherWords bool) []*lattice.Node {
	if hasOtherWords {
		return nil
	}
	length := text.GetWordCandidateLength(offset)
	s, err := text.GetSubstring(offset, offset+length)
	if err != nil {
		return nil
	}

	n := newOOVNode(p.leftID, p.rightID, p.cost)
	n.SetWordInfo(dic.WordInfo{
		Surface:              s,
		HeadWordLength:       length,
		POSID:                p.posID,
		NormalizedForm:       s,
		DictionaryFormWordID: -1,
		DictionaryForm:       s,
		ReadingForm:          "",
	})
	return []*lattice.Node{n}
}
