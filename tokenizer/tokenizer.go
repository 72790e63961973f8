// Package tokenizer wires the input-text rewrite plugins, lexicon
// lookup, OOV providers and the lattice together into the single
// tokenize() entry point (§4.5-§4.8).
package tokenizer

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/sudachigo/sudachi/charcategory"
	"github.com/sudachigo/sudachi/dic"
	"github.com/sudachigo/sudachi/errs"
	"github.com/sudachigo/sudachi/inputtext"
	"github.com/sudachigo/sudachi/lattice"
	"github.com/sudachigo/sudachi/morpheme"
	"github.com/sudachigo/sudachi/oov"
)

// Tokenizer holds everything one tokenize() call needs: the grammar and
// merged lexicon a Dictionary assembled, plus the configured plugin
// chains that run around them.
type Tokenizer struct {
	grammar          *dic.Grammar
	lexiconSet       *dic.LexiconSet
	inputTextPlugins []inputtext.Plugin
	oovProviders     []oov.Provider

	logger *log.Logger
}

// New builds a Tokenizer from an already-assembled grammar/lexicon set
// and the plugin chains a Dictionary's configuration resolved.
func New(grammar *dic.Grammar, lexiconSet *dic.LexiconSet, inputTextPlugins []inputtext.Plugin, oovProviders []oov.Provider) *Tokenizer {
	return &Tokenizer{
		grammar:          grammar,
		lexiconSet:       lexiconSet,
		inputTextPlugins: inputTextPlugins,
		oovProviders:     oovProviders,
	}
}

// SetLogger attaches a logger to which Tokenize reports, at debug level,
// the input text and the best path's node count; nil (the default)
// disables the report.
func (t *Tokenizer) SetLogger(l *log.Logger) { t.logger = l }

// Tokenize rewrites text, fills and searches the lattice, and splits the
// best path at the requested granularity. An empty input yields (nil,
// nil); a position the lattice and every OOV provider both fail to
// cover is reported as errs.NoMorphemeAtPosition.
func (t *Tokenizer) Tokenize(text string, mode SplitMode) (*morpheme.List, error) {
	if text == "" {
		return nil, nil
	}

	builder := inputtext.NewBuilder(text, t.grammar.CharacterCategory())
	for _, plugin := range t.inputTextPlugins {
		if err := plugin.Rewrite(builder); err != nil {
			return nil, err
		}
	}
	input := builder.Build()

	l, err := t.buildLattice(input)
	if err != nil {
		return nil, err
	}

	path := l.GetBestPath()
	if t.logger != nil {
		t.logger.Debug("best path search done", "text", text, "nodes", len(path))
	}
	l.Clear()

	// pathRewritePlugin is reserved and currently always empty (§6), so
	// there is no rewrite stage between best-path search and mode split.

	path = t.splitPath(path, mode)
	return morpheme.NewList(input, t.grammar, path), nil
}

// TokenizeInternalCost satisfies dic.BootstrapTokenizer: it tokenizes
// surface at SplitC granularity and reports the resulting path's
// internal cost and morpheme count, used to back-fill a user
// dictionary word's cost at load time (§4.9).
func (t *Tokenizer) TokenizeInternalCost(surface string) (int32, int, bool) {
	list, err := t.Tokenize(surface, SplitC)
	if err != nil || list == nil || list.Len() == 0 {
		return 0, 0, false
	}
	return list.InternalCost(), list.Len(), true
}

func (t *Tokenizer) buildLattice(input *inputtext.InputText) (*lattice.Lattice, error) {
	l := lattice.New(t.grammar)
	bytes := input.GetByteText()
	n := len(bytes)
	l.Resize(n)

	for i := 0; i < n; i++ {
		if !input.CanBow(i) || !l.HasPreviousNode(i) {
			continue
		}
		hasWords := false
		for _, r := range t.lexiconSet.Lookup(bytes, i) {
			if r.End < n && !input.CanBow(r.End) {
				continue
			}
			hasWords = true
			node := lattice.NewNode(
				t.lexiconSet,
				t.lexiconSet.GetLeftID(r.WordID),
				t.lexiconSet.GetRightID(r.WordID),
				t.lexiconSet.GetCost(r.WordID),
				r.WordID,
			)
			l.Insert(i, r.End, node)
		}

		if input.GetCharCategoryTypes(i)&charcategory.NoOOVBOW == 0 {
			for _, p := range t.oovProviders {
				if err := t.processOOV(p, input, i, &hasWords, l); err != nil {
					return nil, err
				}
			}
		}
		if !hasWords && len(t.oovProviders) > 0 {
			last := t.oovProviders[len(t.oovProviders)-1]
			if err := t.processOOV(last, input, i, &hasWords, l); err != nil {
				return nil, err
			}
		}
		if !hasWords {
			return nil, errs.New(errs.NoMorphemeAtPosition, fmt.Sprintf("no morpheme at byte position %d", i))
		}
	}

	l.ConnectEOSNode()
	return l, nil
}

func (t *Tokenizer) processOOV(p oov.Provider, input *inputtext.InputText, i int, hasWords *bool, l *lattice.Lattice) error {
	nodes, err := oov.Provide(p, input, i, *hasWords)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		*hasWords = true
		l.Insert(node.Start, node.End, node)
	}
	return nil
}

// splitPath expands every multi-word-id A/B split in path into its
// constituent lexicon words, recomputing byte spans from each split
// word's own head-word length; SplitC returns path unchanged.
func (t *Tokenizer) splitPath(path []*lattice.Node, mode SplitMode) []*lattice.Node {
	if mode == SplitC {
		return path
	}
	var out []*lattice.Node
	for _, node := range path {
		wi, err := node.WordInfo()
		if err != nil {
			out = append(out, node)
			continue
		}
		wordIDs := wi.AUnitSplit
		if mode == SplitB {
			wordIDs = wi.BUnitSplit
		}
		if len(wordIDs) <= 1 {
			out = append(out, node)
			continue
		}
		offset := node.Start
		for _, wid := range wordIDs {
			sub := lattice.NewNode(t.lexiconSet, 0, 0, 0, uint32(wid))
			sub.Start = offset
			subWI, err := sub.WordInfo()
			if err != nil {
				continue
			}
			offset += subWI.HeadWordLength
			sub.End = offset
			out = append(out, sub)
		}
	}
	return out
}
