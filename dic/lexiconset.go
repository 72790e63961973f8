package dic

import "github.com/sudachigo/sudachi/errs"

// LexiconSet merges a system lexicon (always dictionary index 0) with up
// to 15 user lexicons (indices 1..15, in load order) under the packed
// global WordID namespace.
type LexiconSet struct {
	lexicons      []*Lexicon // index 0 is always the system lexicon
	posOffsets    []int      // posOffsets[i] is dictionary i's POS table base within the combined grammar; index-aligned with lexicons
	systemPOSSize int        // POS ids >= this threshold are user POS ids needing rebase
}

// NewLexiconSet creates a set containing only the system lexicon.
func NewLexiconSet(system *Lexicon, systemPOSSize int) *LexiconSet {
	return &LexiconSet{
		lexicons:      []*Lexicon{system},
		posOffsets:    []int{0},
		systemPOSSize: systemPOSSize,
	}
}

// AddUserLexicon appends a user lexicon, whose POS ids >= posBase in the
// combined grammar are its own (user) POS entries.
func (s *LexiconSet) AddUserLexicon(lex *Lexicon, posBase int) error {
	if len(s.lexicons) >= MaxDictionaries {
		return errs.New(errs.TooManyDictionaries, "too many dictionaries (max 16)")
	}
	s.lexicons = append(s.lexicons, lex)
	s.posOffsets = append(s.posOffsets, posBase)
	return nil
}

func (s *LexiconSet) Size() int { return len(s.lexicons) }

// Lookup returns globalized (word-id, absolute-end-position) pairs. User
// dictionaries are queried first, in load order, then the system
// dictionary last; callers (the lattice fill) rely on this order when
// breaking cost ties.
func (s *LexiconSet) Lookup(text []byte, offset int) []LookupResult {
	if len(s.lexicons) == 1 {
		return s.lexicons[0].Lookup(text, offset)
	}
	var out []LookupResult
	order := queryOrder(len(s.lexicons))
	for _, dictID := range order {
		for _, r := range s.lexicons[dictID].Lookup(text, offset) {
			out = append(out, LookupResult{
				WordID: uint32(BuildWordID(dictID, r.WordID)),
				End:    r.End,
			})
		}
	}
	return out
}

// queryOrder is [1, 2, ..., n-1, 0]: user dictionaries in load order,
// system dictionary last.
func queryOrder(n int) []int {
	order := make([]int, 0, n)
	for i := 1; i < n; i++ {
		order = append(order, i)
	}
	return append(order, 0)
}

func (s *LexiconSet) lexiconFor(globalWordID uint32) (*Lexicon, uint32, int) {
	w := WordID(globalWordID)
	dictID := w.DictionaryID()
	return s.lexicons[dictID], w.LocalID(), dictID
}

// DictionaryID returns the dictionary index a global word id belongs to.
func (s *LexiconSet) DictionaryID(wordID uint32) int {
	return WordID(wordID).DictionaryID()
}

func (s *LexiconSet) GetLeftID(wordID uint32) int16 {
	lex, local, _ := s.lexiconFor(wordID)
	return lex.GetLeftID(local)
}

func (s *LexiconSet) GetRightID(wordID uint32) int16 {
	lex, local, _ := s.lexiconFor(wordID)
	return lex.GetRightID(local)
}

func (s *LexiconSet) GetCost(wordID uint32) int16 {
	lex, local, _ := s.lexiconFor(wordID)
	return lex.GetCost(local)
}

// GetWordInfo fetches and globalizes a word-info record: split-list
// entries whose dictionary index is nonzero are rewritten to refer to
// the queried dictionary's index, and POS ids are rebased into the
// combined grammar's POS table.
func (s *LexiconSet) GetWordInfo(wordID uint32) (WordInfo, error) {
	lex, local, dictID := s.lexiconFor(wordID)
	wi, err := lex.GetWordInfo(local)
	if err != nil {
		return WordInfo{}, err
	}
	if dictID > 0 {
		if int(wi.POSID) >= s.systemPOSSize {
			wi.POSID = wi.POSID - int16(s.systemPOSSize) + int16(s.posOffsets[dictID])
		}
	}
	wi.AUnitSplit = s.convertSplit(wi.AUnitSplit, dictID)
	wi.BUnitSplit = s.convertSplit(wi.BUnitSplit, dictID)
	wi.WordStructure = s.convertSplit(wi.WordStructure, dictID)
	return wi, nil
}

// convertSplit rewrites split-list entries: a value whose stored
// high-nibble already names a (placeholder) user dictionary is remapped
// onto the actually-queried dictionary dictID; a value naming the system
// dictionary (high nibble 0) passes through unchanged.
func (s *LexiconSet) convertSplit(split []int32, dictID int) []int32 {
	if dictID == 0 || len(split) == 0 {
		return split
	}
	out := make([]int32, len(split))
	for i, v := range split {
		if v > 0 && WordID(uint32(v)).DictionaryID() > 0 {
			out[i] = int32(BuildWordID(dictID, WordID(uint32(v)).LocalID()))
		} else {
			out[i] = v
		}
	}
	return out
}
