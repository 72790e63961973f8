// Package morpheme exposes the best-path lattice nodes of one
// tokenize() call as a morpheme sequence: surface form mapped back into
// the caller's original (unrewritten) text, plus the resolved
// part-of-speech, normalized/dictionary/reading forms and owning
// dictionary id.
package morpheme

import (
	"strconv"
	"strings"

	"github.com/sudachigo/sudachi/dic"
	"github.com/sudachigo/sudachi/inputtext"
	"github.com/sudachigo/sudachi/lattice"
)

// List is the split path of one tokenize() call.
type List struct {
	text    *inputtext.InputText
	grammar *dic.Grammar
	path    []*lattice.Node
}

// NewList wraps a best (and possibly mode-split) path together with the
// input text and grammar it was produced against.
func NewList(text *inputtext.InputText, grammar *dic.Grammar, path []*lattice.Node) *List {
	return &List{text: text, grammar: grammar, path: path}
}

func (l *List) Len() int { return len(l.path) }

// Get resolves the path entry at index into a Morpheme, or false if
// index is out of range.
func (l *List) Get(index int) (Morpheme, bool) {
	if index < 0 || index >= len(l.path) {
		return Morpheme{}, false
	}
	node := l.path[index]
	wi, err := node.WordInfo()
	if err != nil {
		return Morpheme{}, false
	}
	return Morpheme{text: l.text, grammar: l.grammar, node: node, wordInfo: wi}, true
}

// InternalCost is the total path cost's increase across the whole
// sentence: the EOS-adjacent node's accumulated cost minus the first
// node's, i.e. the lattice's own idea of how "natural" the split was.
func (l *List) InternalCost() int32 {
	if len(l.path) == 0 {
		return 0
	}
	return l.path[len(l.path)-1].TotalCost - l.path[0].TotalCost
}

// Morpheme is one segment of a split path.
type Morpheme struct {
	text     *inputtext.InputText
	grammar  *dic.Grammar
	node     *lattice.Node
	wordInfo dic.WordInfo
}

// Surface returns the morpheme's span of the caller's original
// (unrewritten) text — not the modified text the lattice was built
// over — by mapping the node's byte range through GetOriginalIndex.
func (m Morpheme) Surface() string {
	original := []rune(m.text.GetOriginalText())
	start := m.text.GetOriginalIndex(m.node.Start)
	end := m.text.GetOriginalIndex(m.node.End)
	if start > len(original) {
		start = len(original)
	}
	if end > len(original) {
		end = len(original)
	}
	return string(original[start:end])
}

func (m Morpheme) PartOfSpeechID() int16 { return m.wordInfo.POSID }

// PartOfSpeech returns the six-field POS tuple, or the all-"*" tuple
// when the id is undefined (an unresolved OOV POS).
func (m Morpheme) PartOfSpeech() dic.POS {
	if m.wordInfo.POSID < 0 || int(m.wordInfo.POSID) >= m.grammar.POSSize() {
		return dic.POS{"*", "*", "*", "*", "*", "*"}
	}
	return m.grammar.POSString(int(m.wordInfo.POSID))
}

func (m Morpheme) NormalizedForm() string { return m.wordInfo.NormalizedForm }
func (m Morpheme) DictionaryForm() string { return m.wordInfo.DictionaryForm }
func (m Morpheme) ReadingForm() string    { return m.wordInfo.ReadingForm }
func (m Morpheme) IsOOV() bool            { return m.node.IsOOV }
func (m Morpheme) WordID() uint32         { return m.node.WordID }

// DictionaryID returns the owning dictionary index, or false for an
// OOV/sentinel node with no backing lexicon entry.
func (m Morpheme) DictionaryID() (int, bool) { return m.node.DictionaryID() }

// Fields renders the tab-separated CLI output row (§6): surface, POS
// tuple, normalized form, plus dictionary form/reading form/dictionary
// id and an "(OOV)" marker when all is set.
func (m Morpheme) Fields(all bool) []string {
	pos := m.PartOfSpeech()
	fields := []string{m.Surface(), strings.Join(pos[:], ","), m.NormalizedForm()}
	if !all {
		return fields
	}
	fields = append(fields, m.DictionaryForm(), m.ReadingForm())
	if id, ok := m.DictionaryID(); ok {
		fields = append(fields, strconv.Itoa(id))
	} else {
		fields = append(fields, "-1")
	}
	if m.IsOOV() {
		fields = append(fields, "(OOV)")
	}
	return fields
}
