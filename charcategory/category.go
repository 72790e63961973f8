// Package charcategory reads char.def and compiles it into a sorted,
// non-overlapping range table supporting category lookup by code point.
package charcategory

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/sudachigo/sudachi/errs"
)

// CategoryType is a bitmask of character category tags; a code point may
// belong to several categories at once.
type CategoryType uint16

const (
	Default CategoryType = 1 << iota
	Space
	Kanji
	Symbol
	Numeric
	Alpha
	Hiragana
	Katakana
	KanjiNumeric
	Greek
	Cyrillic
	User1
	User2
	User3
	User4
	NoOOVBOW
)

var nameToCategory = map[string]CategoryType{
	"DEFAULT":      Default,
	"SPACE":        Space,
	"KANJI":        Kanji,
	"SYMBOL":       Symbol,
	"NUMERIC":      Numeric,
	"ALPHA":        Alpha,
	"HIRAGANA":     Hiragana,
	"KATAKANA":     Katakana,
	"KANJINUMERIC": KanjiNumeric,
	"GREEK":        Greek,
	"CYRILLIC":     Cyrillic,
	"USER1":        User1,
	"USER2":        User2,
	"USER3":        User3,
	"USER4":        User4,
	"NOOOVBOW":     NoOOVBOW,
}

// ParseName resolves a char.def category name (e.g. "KANJI") to its
// CategoryType constant. Used by anything parsing a category name
// outside of a char.def range line, such as the OOV category-info file.
func ParseName(name string) (CategoryType, bool) {
	c, ok := nameToCategory[name]
	return c, ok
}

// Split returns the individual single-bit categories set in c, in
// ascending bit order.
func Split(c CategoryType) []CategoryType {
	var out []CategoryType
	for bit := CategoryType(1); bit != 0; bit <<= 1 {
		if c&bit != 0 {
			out = append(out, bit)
		}
	}
	return out
}

// rawRange is one input line from char.def, before compilation.
type rawRange struct {
	low, high  rune // half-open [low, high)
	categories CategoryType
}

// Table is the compiled, sorted, non-overlapping range list.
type Table struct {
	ranges []compiledRange
}

type compiledRange struct {
	low, high  rune
	categories CategoryType
}

// CategoryTypes returns the category set for cp, or {Default} if cp
// falls in no defined range. Implemented as a binary search over the
// sorted range list for the first range whose high bound exceeds cp.
func (t *Table) CategoryTypes(cp rune) CategoryType {
	i := sort.Search(len(t.ranges), func(i int) bool { return t.ranges[i].high > cp })
	if i < len(t.ranges) && t.ranges[i].low <= cp && cp < t.ranges[i].high {
		return t.ranges[i].categories
	}
	return Default
}

// Read parses a char.def-format stream (one directive per line; blank
// and '#'-prefixed lines are skipped) and compiles it into a Table.
func Read(r io.Reader) (*Table, error) {
	raws, err := parse(r)
	if err != nil {
		return nil, err
	}
	return compile(raws), nil
}

func parse(r io.Reader) ([]rawRange, error) {
	var raws []rawRange
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		cols := fieldsNonEmpty(text)
		if len(cols) < 2 {
			return nil, errs.AtLine(errs.InvalidFormat, line, "expected a code point/range plus at least one category")
		}
		low, high, err := parseCodePointSpec(cols[0])
		if err != nil {
			return nil, errs.AtLine(errs.InvalidFormat, line, err.Error())
		}
		if low >= high {
			return nil, errs.AtLine(errs.InvalidRange, line, "low >= high")
		}
		var cats CategoryType
		for _, tok := range cols[1:] {
			if strings.HasPrefix(tok, "#") || tok == "" {
				break
			}
			c, ok := nameToCategory[tok]
			if !ok {
				return nil, errs.AtLine(errs.InvalidType, line, "unknown category "+tok)
			}
			cats |= c
		}
		raws = append(raws, rawRange{low: low, high: high, categories: cats})
	}
	return raws, scanner.Err()
}

func fieldsNonEmpty(s string) []string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func parseCodePointSpec(spec string) (low, high rune, err error) {
	if idx := strings.Index(spec, ".."); idx >= 0 {
		l, err1 := parseHex(spec[:idx])
		h, err2 := parseHex(spec[idx+2:])
		if err1 != nil {
			return 0, 0, err1
		}
		if err2 != nil {
			return 0, 0, err2
		}
		return l, h, nil
	}
	cp, err := parseHex(spec)
	if err != nil {
		return 0, 0, err
	}
	return cp, cp + 1, nil
}

func parseHex(s string) (rune, error) {
	s = strings.TrimPrefix(s, "0x")
	n, err := strconv.ParseInt(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return rune(n), nil
}

// compile flattens overlapping input ranges into a sorted,
// non-overlapping sequence whose category set at each sub-range is the
// union of every input range containing it, then coalesces adjacent
// sub-ranges that end up with identical category sets.
func compile(raws []rawRange) *Table {
	if len(raws) == 0 {
		return &Table{}
	}
	boundSet := make(map[rune]struct{})
	for _, r := range raws {
		boundSet[r.low] = struct{}{}
		boundSet[r.high] = struct{}{}
	}
	bounds := make([]rune, 0, len(boundSet))
	for b := range boundSet {
		bounds = append(bounds, b)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })

	var out []compiledRange
	for i := 0; i+1 < len(bounds); i++ {
		lo, hi := bounds[i], bounds[i+1]
		var cats CategoryType
		for _, r := range raws {
			if r.low <= lo && hi <= r.high {
				cats |= r.categories
			}
		}
		if cats == 0 {
			continue
		}
		if n := len(out); n > 0 && out[n-1].high == lo && out[n-1].categories == cats {
			out[n-1].high = hi
		} else {
			out = append(out, compiledRange{low: lo, high: hi, categories: cats})
		}
	}
	return &Table{ranges: out}
}
