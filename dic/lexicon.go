package dic

import (
	"encoding/binary"

	"github.com/sudachigo/sudachi/dic/doublearray"
	"github.com/sudachigo/sudachi/errs"
)

const (
	// userDictCostPerMorph is added per morpheme when back-filling a
	// user-dictionary word's cost from a bootstrap tokenization (§4.9).
	userDictCostPerMorph int16 = -20
	recostSentinel       int16 = -32768 // math.MinInt16, without importing math for one constant
)

// wordIDTable is the byte-blob word-id table: at byte offset v, one u8
// count followed by count little-endian u32 local word ids.
type wordIDTable struct {
	bytes []byte
}

func (t wordIDTable) get(index uint32) []uint32 {
	if int(index) >= len(t.bytes) {
		return nil
	}
	n := int(t.bytes[index])
	out := make([]uint32, n)
	base := int(index) + 1
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint32(t.bytes[base+i*4 : base+i*4+4])
	}
	return out
}

// wordParam is a word's (left-id, right-id, cost) triple.
type wordParam struct {
	LeftID  int16
	RightID int16
	Cost    int16
}

type wordParamList struct {
	params []wordParam
}

func (l *wordParamList) get(wordID uint32) wordParam { return l.params[wordID] }
func (l *wordParamList) setCost(wordID uint32, cost int16) {
	p := l.params[wordID]
	p.Cost = cost
	l.params[wordID] = p
}

// Lexicon is one dictionary's Double-Array + word-id table + word
// parameters + word-info block.
type Lexicon struct {
	trie      *doublearray.Trie
	wordIDs   wordIDTable
	params    *wordParamList
	wordInfos *WordInfoList
}

// Size returns the number of words in this lexicon.
func (l *Lexicon) Size() int { return l.wordInfos.Size() }

// Lookup returns (local-word-id, absolute-end-byte-position) pairs for
// every prefix of text[offset:] that is a stored key.
func (l *Lexicon) Lookup(text []byte, offset int) []LookupResult {
	matches := l.trie.CommonPrefixSearch(text[offset:])
	var results []LookupResult
	for _, m := range matches {
		for _, wordID := range l.wordIDs.get(m.Value) {
			results = append(results, LookupResult{WordID: wordID, End: offset + m.Length})
		}
	}
	return results
}

// LookupResult is one lexicon match.
type LookupResult struct {
	WordID uint32
	End    int
}

func (l *Lexicon) GetLeftID(wordID uint32) int16  { return l.params.get(wordID).LeftID }
func (l *Lexicon) GetRightID(wordID uint32) int16 { return l.params.get(wordID).RightID }
func (l *Lexicon) GetCost(wordID uint32) int16     { return l.params.get(wordID).Cost }
func (l *Lexicon) GetWordInfo(wordID uint32) (WordInfo, error) { return l.wordInfos.Get(wordID) }

// BootstrapTokenizer is the minimal tokenizing capability calculateCost
// needs: tokenize a surface against already-loaded lexicons and report
// total path cost plus morpheme count.
type BootstrapTokenizer interface {
	TokenizeInternalCost(surface string) (cost int32, morphemeCount int, ok bool)
}

// CalculateCost re-costs every word whose stored cost is the recost
// sentinel (math.MinInt16), per §4.9: tokenize the word's surface with a
// tokenizer bound to the already-loaded lexicons, and set
// cost = clamp_i16(path_cost + userDictCostPerMorph * morpheme_count).
func (l *Lexicon) CalculateCost(bt BootstrapTokenizer) error {
	for wordID := 0; wordID < l.Size(); wordID++ {
		if l.GetCost(uint32(wordID)) != recostSentinel {
			continue
		}
		wi, err := l.GetWordInfo(uint32(wordID))
		if err != nil {
			return err
		}
		pathCost, count, ok := bt.TokenizeInternalCost(wi.Surface)
		if !ok {
			continue
		}
		cost := pathCost + int32(userDictCostPerMorph)*int32(count)
		if cost > 32767 {
			cost = 32767
		}
		if cost < -32768 {
			cost = -32768
		}
		l.params.setCost(uint32(wordID), int16(cost))
	}
	return nil
}

// readLexicon parses a lexicon section (Double-Array, word-id table,
// word parameters, word-info block) starting at offset.
func readLexicon(buf []byte, offset int) (*Lexicon, int, error) {
	if offset+4 > len(buf) {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated DA size")
	}
	daSize := int(binary.LittleEndian.Uint32(buf[offset : offset+4]))
	offset += 4
	if offset+daSize*4 > len(buf) {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated DA units")
	}
	// Zero-copy: reinterpret the raw bytes directly as []uint32 rather
	// than decoding word by word. Relies on a little-endian host, same
	// assumption the mmap-backed reinterpretation elsewhere in this
	// package makes.
	units := bytesToSlice[uint32](buf[offset : offset+daSize*4])
	offset += daSize * 4
	trie := doublearray.New(units)

	if offset+4 > len(buf) {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated word-id table size")
	}
	widLen := int(binary.LittleEndian.Uint32(buf[offset : offset+4]))
	offset += 4
	if offset+widLen > len(buf) {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated word-id table")
	}
	widTable := wordIDTable{bytes: buf[offset : offset+widLen]}
	offset += widLen

	if offset+4 > len(buf) {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated word parameter count")
	}
	paramCount := int(binary.LittleEndian.Uint32(buf[offset : offset+4]))
	offset += 4
	params := make([]wordParam, paramCount)
	for i := 0; i < paramCount; i++ {
		if offset+6 > len(buf) {
			return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated word parameters")
		}
		params[i] = wordParam{
			LeftID:  int16(binary.LittleEndian.Uint16(buf[offset : offset+2])),
			RightID: int16(binary.LittleEndian.Uint16(buf[offset+2 : offset+4])),
			Cost:    int16(binary.LittleEndian.Uint16(buf[offset+4 : offset+6])),
		}
		offset += 6
	}

	wordInfos := newWordInfoList(buf, offset, paramCount)

	lex := &Lexicon{
		trie:      trie,
		wordIDs:   widTable,
		params:    &wordParamList{params: params},
		wordInfos: wordInfos,
	}
	return lex, len(buf), nil
}
