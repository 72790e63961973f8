// Package oov supplies candidate nodes for spans the lexicon has no
// entry for: a fixed single-span filler (SimpleProvider) and a
// char.def/unk.def-driven provider (MecabProvider) that can also fire
// alongside a real lexicon match.
package oov

import (
	"github.com/sudachigo/sudachi/dic"
	"github.com/sudachigo/sudachi/inputtext"
	"github.com/sudachigo/sudachi/lattice"
)

// Provider emits OOV candidates starting at offset. hasOtherWords
// reports whether the lexicon already produced at least one node
// starting there; providers that only fill gaps use it to stay quiet.
type Provider interface {
	ProvideOOV(text *inputtext.InputText, offset int, hasOtherWords bool) []*lattice.Node
}

// Provide runs plugin and fixes up the start/end of every node it
// returns from the provider's own head-word-length bookkeeping.
func Provide(plugin Provider, text *inputtext.InputText, offset int, hasOtherWords bool) ([]*lattice.Node, error) {
	nodes := plugin.ProvideOOV(text, offset, hasOtherWords)
	for _, n := range nodes {
		wi, err := n.WordInfo()
		if err != nil {
			return nil, err
		}
		n.Start = offset
		n.End = offset + wi.HeadWordLength
	}
	return nodes, nil
}

func newOOVNode(leftID, rightID, cost int16) *lattice.Node {
	n := lattice.EmptyNode(leftID, rightID, cost)
	n.IsOOV = true
	return n
}

// posOrUndefined resolves pos against grammar, falling back to -1
// (undefined) when it was never registered in the POS table.
func posOrUndefined(grammar *dic.Grammar, pos dic.POS) int16 {
	if id, ok := grammar.PartOfSpeechID(pos); ok {
		return int16(id)
	}
	return -1
}
