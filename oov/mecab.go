package oov

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sudachigo/sudachi/charcategory"
	"github.com/sudachigo/sudachi/dic"
	"github.com/sudachigo/sudachi/errs"
	"github.com/sudachigo/sudachi/inputtext"
	"github.com/sudachigo/sudachi/lattice"
)

// categoryInfo is one char.def-style category-info triple (§4.7):
// whether to invoke even over a lexicon match, whether to emit one
// grouped node over the whole continuity run, and how many
// per-character prefix nodes to additionally emit.
type categoryInfo struct {
	invoke bool
	group  bool
	length int
}

// mecabEntry is one unk.def row: connection parameters plus a resolved
// POS id (-1 if its six-column POS tuple wasn't in the grammar's table).
type mecabEntry struct {
	leftID, rightID int16
	cost            int16
	posID           int16
}

// MecabProvider is the char.def/unk.def-driven OOV provider: for every
// category the current position belongs to, it emits a grouped node
// over the whole continuity run and/or a ladder of per-character
// prefix nodes, per that category's categoryInfo.
type MecabProvider struct {
	categories map[charcategory.CategoryType]categoryInfo
	entries    map[charcategory.CategoryType][]mecabEntry
}

// NewMecabProvider parses charDef (a char.def-format category-info
// stream: "CATEGORY invoke group length" rows) and unkDef (an
// unk.def-format CSV: "CATEGORY,left,right,cost,pos1,...,pos6" rows),
// resolving each row's POS tuple against grammar.
func NewMecabProvider(charDef, unkDef io.Reader, grammar *dic.Grammar) (*MecabProvider, error) {
	categories, err := readCategoryInfo(charDef)
	if err != nil {
		return nil, err
	}
	entries, err := readMecabEntries(unkDef, categories, grammar)
	if err != nil {
		return nil, err
	}
	return &MecabProvider{categories: categories, entries: entries}, nil
}

func readCategoryInfo(r io.Reader) (map[charcategory.CategoryType]categoryInfo, error) {
	categories := make(map[charcategory.CategoryType]categoryInfo)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "0x") {
			continue
		}
		cols := strings.Fields(text)
		if len(cols) < 4 {
			return nil, errs.AtLine(errs.InvalidFormat, line, "expected CATEGORY invoke group length")
		}
		cat, ok := charcategory.ParseName(cols[0])
		if !ok {
			return nil, errs.AtLine(errs.InvalidType, line, "unknown category "+cols[0])
		}
		if _, exists := categories[cat]; exists {
			return nil, errs.AtLine(errs.AlreadyDefined, line, cols[0]+" is already defined")
		}
		length, err := strconv.Atoi(cols[3])
		if err != nil {
			return nil, errs.AtLine(errs.InvalidFormat, line, err.Error())
		}
		categories[cat] = categoryInfo{
			invoke: cols[1] != "0",
			group:  cols[2] != "0",
			length: length,
		}
	}
	return categories, scanner.Err()
}

func readMecabEntries(r io.Reader, categories map[charcategory.CategoryType]categoryInfo, grammar *dic.Grammar) (map[charcategory.CategoryType][]mecabEntry, error) {
	entries := make(map[charcategory.CategoryType][]mecabEntry)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		cols := strings.Split(text, ",")
		if len(cols) < 10 {
			return nil, errs.AtLine(errs.InvalidFormat, line, "expected 10 comma-separated columns")
		}
		cat, ok := charcategory.ParseName(cols[0])
		if !ok {
			return nil, errs.AtLine(errs.InvalidType, line, "unknown category "+cols[0])
		}
		if _, exists := categories[cat]; !exists {
			return nil, errs.AtLine(errs.NotDefined, line, cols[0]+" is not defined in charDef")
		}
		left, err := strconv.Atoi(cols[1])
		if err != nil {
			return nil, errs.AtLine(errs.InvalidFormat, line, err.Error())
		}
		right, err := strconv.Atoi(cols[2])
		if err != nil {
			return nil, errs.AtLine(errs.InvalidFormat, line, err.Error())
		}
		cost, err := strconv.Atoi(cols[3])
		if err != nil {
			return nil, errs.AtLine(errs.InvalidFormat, line, err.Error())
		}
		var pos dic.POS
		copy(pos[:], cols[4:10])
		entries[cat] = append(entries[cat], mecabEntry{
			leftID:  int16(left),
			rightID: int16(right),
			cost:    int16(cost),
			posID:   posOrUndefined(grammar, pos),
		})
	}
	return entries, scanner.Err()
}

func (p *MecabProvider) ProvideOOV(text *inputtext.InputText, offset int, hasOtherWords bool) []*lattice.Node {
	runLen := text.GetCharCategoryContinuousLength(offset)
	if runLen < 1 {
		return nil
	}
	var nodes []*lattice.Node
	for _, cat := range charcategory.Split(text.GetCharCategoryTypes(offset)) {
		info, ok := p.categories[cat]
		if !ok {
			continue
		}
		if !info.invoke && hasOtherWords {
			continue
		}
		entries := p.entries[cat]

		if info.group {
			s, err := text.GetSubstring(offset, offset+runLen)
			if err == nil {
				for _, e := range entries {
					nodes = append(nodes, p.buildNode(e, s, runLen))
				}
			}
		}

		for i := 1; i <= info.length; i++ {
			subLen := text.GetCodePointsOffsetLength(offset, i)
			if subLen > runLen {
				break
			}
			s, err := text.GetSubstring(offset, offset+subLen)
			if err != nil {
				break
			}
			for _, e := range entries {
				nodes = append(nodes, p.buildNode(e, s, subLen))
			}
		}
	}
	return nodes
}

func (p *MecabProvider) buildNode(e mecabEntry, surface string, length int) *lattice.Node {
	n := newOOVNode(e.leftID, e.rightID, e.cost)
	n.SetWordInfo(dic.WordInfo{
		Surface:              surface,
		HeadWordLength:       length,
		POSID:                e.posID,
		NormalizedForm:       surface,
		DictionaryFormWordID: -1,
		DictionaryForm:       surface,
		ReadingForm:          "",
	})
	return n
}
