package dic

import (
	"encoding/binary"

	"github.com/sudachigo/sudachi/charcategory"
	"github.com/sudachigo/sudachi/errs"
)

// InhibitedConnection is the sentinel connection cost meaning "no
// connection possible".
const InhibitedConnection int16 = 0x7FFF

// POS is a part-of-speech 6-tuple.
type POS [6]string

// Grammar holds the part-of-speech table and the connection-cost matrix,
// plus BOS/EOS parameters and (once attached) the character category
// table.
type Grammar struct {
	pos      []POS
	leftSize int
	rightSize int
	// costs is stored flat in the file's natural row-major-by-left order:
	// costs[left*rightSize+right]. Cost() below reads it transposed, per
	// the reference reader/builder's documented (and load-bearing)
	// [right][left] access pattern; this only needs leftSize==rightSize
	// to be self-consistent, which holds for every dictionary this
	// package produces or consumes.
	costs []int16

	BOSParams Params
	EOSParams Params

	characterCategory *charcategory.Table
}

// Params is a (left-id, right-id, cost) triple, as used for BOS/EOS and
// for plain word parameters.
type Params struct {
	LeftID  int16
	RightID int16
	Cost    int16
}

// NewGrammar builds a Grammar directly from its parts, bypassing the
// binary reader; used by tests and by anything assembling a dictionary
// in-process rather than reading one from disk.
func NewGrammar(pos []POS, left, right int, costs []int16, bos, eos Params) *Grammar {
	return &Grammar{pos: pos, leftSize: left, rightSize: right, costs: costs, BOSParams: bos, EOSParams: eos}
}

// AddPOSList appends another grammar's POS table onto this one,
// returning the base index the appended entries start at; used to
// merge a user dictionary's POS entries into the combined grammar
// under construction.
func (g *Grammar) AddPOSList(other *Grammar) int {
	base := len(g.pos)
	g.pos = append(g.pos, other.pos...)
	return base
}

func (g *Grammar) SetCharacterCategory(t *charcategory.Table) { g.characterCategory = t }
func (g *Grammar) CharacterCategory() *charcategory.Table     { return g.characterCategory }

func (g *Grammar) POSSize() int       { return len(g.pos) }
func (g *Grammar) POSString(i int) POS { return g.pos[i] }
func (g *Grammar) LeftIDSize() int    { return g.leftSize }
func (g *Grammar) RightIDSize() int   { return g.rightSize }

// PartOfSpeechID returns the index of pos in the POS table. Plugins
// resolve their configured POS tuples (e.g. an OOV provider's
// "oovPOS") against this table at setup time; an unresolved tuple
// means the plugin falls back to pos_id -1 (undefined).
func (g *Grammar) PartOfSpeechID(pos POS) (int, bool) {
	for i, p := range g.pos {
		if p == pos {
			return i, true
		}
	}
	return 0, false
}

// Cost returns the connection cost for (leftID, rightID), reading the
// flat matrix transposed: matrix[right][left] in terms of the file's
// row-major-by-left layout.
func (g *Grammar) Cost(leftID, rightID int16) int16 {
	idx := int(rightID)*g.leftSize + int(leftID)
	return g.costs[idx]
}

// readGrammar parses the grammar section starting at offset, returning
// the grammar and the offset immediately following it.
func readGrammar(buf []byte, offset int) (*Grammar, int, error) {
	if offset+2 > len(buf) {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated grammar")
	}
	posSize := int(int16(binary.LittleEndian.Uint16(buf[offset : offset+2])))
	offset += 2
	if posSize < 0 {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "negative POS table size")
	}
	pos := make([]POS, posSize)
	for i := 0; i < posSize; i++ {
		var p POS
		for j := 0; j < 6; j++ {
			var s string
			var err error
			s, offset, err = readUTF16String(buf, offset)
			if err != nil {
				return nil, 0, err
			}
			p[j] = s
		}
		pos[i] = p
	}

	if offset+4 > len(buf) {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated grammar sizes")
	}
	left := int(int16(binary.LittleEndian.Uint16(buf[offset : offset+2])))
	right := int(int16(binary.LittleEndian.Uint16(buf[offset+2 : offset+4])))
	offset += 4

	total := left * right
	if offset+total*2 > len(buf) {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated connection matrix")
	}
	costs := make([]int16, total)
	for i := 0; i < total; i++ {
		costs[i] = int16(binary.LittleEndian.Uint16(buf[offset+i*2 : offset+i*2+2]))
	}
	offset += total * 2

	g := &Grammar{pos: pos, leftSize: left, rightSize: right, costs: costs}
	return g, offset, nil
}
