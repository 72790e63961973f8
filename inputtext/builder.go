package inputtext

import (
	"unicode/utf8"

	"github.com/sudachigo/sudachi/charcategory"
	"github.com/sudachigo/sudachi/errs"
)

// CategoryLookup resolves a code point's character categories; satisfied
// directly by *charcategory.Table.
type CategoryLookup interface {
	CategoryTypes(cp rune) charcategory.CategoryType
}

// Builder accumulates character-index-addressed rewrites (normalization,
// plugin substitutions) over an input string before producing the
// byte-addressed InputText the lattice consumes.
type Builder struct {
	categories CategoryLookup

	originalText string
	modified     []rune // modified text, addressed by character index
	textOffsets  []int  // len(modified)+1; textOffsets[i] = original char index the i-th modified char descends from
}

// NewBuilder starts a rewrite session over text with no rewrites applied
// yet: modified text equals the original and every offset is identity.
func NewBuilder(text string, categories CategoryLookup) *Builder {
	runes := []rune(text)
	offsets := make([]int, len(runes)+1)
	for i := range offsets {
		offsets[i] = i
	}
	return &Builder{
		categories:   categories,
		originalText: text,
		modified:     runes,
		textOffsets:  offsets,
	}
}

func (b *Builder) GetOriginalText() string { return b.originalText }
func (b *Builder) GetText() string         { return string(b.modified) }

// Replace substitutes the character range [start, end) of the current
// modified text with text, tracking which original-text position each
// resulting character descends from.
func (b *Builder) Replace(start, end int, text string) error {
	if start > len(b.modified) {
		return errs.New(errs.InvalidRange, "start > length")
	}
	if start > end {
		return errs.New(errs.InvalidRange, "start > end")
	}
	if start == end {
		return errs.New(errs.InvalidRange, "start == end")
	}
	if end > len(b.modified) {
		end = len(b.modified)
	}

	repl := []rune(text)
	rest := append([]rune{}, b.modified[end:]...)
	b.modified = append(append(append([]rune{}, b.modified[:start]...), repl...), rest...)

	origin := b.textOffsets[start]
	oldLen := end - start
	newLen := len(repl)
	if oldLen > newLen {
		kept := make([]int, 0, len(b.textOffsets))
		for i, off := range b.textOffsets {
			if i < start+newLen || end <= i {
				kept = append(kept, off)
			}
		}
		b.textOffsets = kept
	}
	for i := 0; i < newLen; i++ {
		pos := start + i
		if pos < end {
			b.textOffsets[pos] = origin
		} else {
			b.textOffsets = append(b.textOffsets[:pos], append([]int{origin}, b.textOffsets[pos:]...)...)
		}
	}
	return nil
}

// Build materializes the character-addressed rewrite state into a
// byte-addressed InputText: UTF-8 bytes, the offset/byte-index tables,
// per-character category sets, category-continuity runs, and the
// can-begin-word flags.
func (b *Builder) Build() *InputText {
	modifiedText := string(b.modified)
	bytes := []byte(modifiedText)
	n := len(bytes)

	byteIndexes := make([]int, n+1)
	offsets := make([]int, n+1)
	j := 0
	for i, r := range b.modified {
		for k := 0; k < utf8.RuneLen(r); k++ {
			byteIndexes[j] = i
			offsets[j] = b.textOffsets[i]
			j++
		}
	}
	byteIndexes[n] = len(b.modified)
	offsets[n] = b.textOffsets[len(b.textOffsets)-1]

	categories := make([]charcategory.CategoryType, len(b.modified))
	for i, r := range b.modified {
		categories[i] = b.categories.CategoryTypes(r)
	}

	continuities := charCategoryContinuities(b.modified, categories)
	canBow := buildCanBowList(categories)

	return &InputText{
		originalText:         b.originalText,
		modifiedText:         modifiedText,
		bytes:                bytes,
		offsets:              offsets,
		byteIndexes:          byteIndexes,
		charCategories:       categories,
		categoryContinuities: continuities,
		canBow:               canBow,
		modifiedRunes:        b.modified,
	}
}

func buildCanBowList(categories []charcategory.CategoryType) []bool {
	if len(categories) == 0 {
		return nil
	}
	canBow := make([]bool, len(categories))
	canBow[0] = true
	for i := 1; i < len(categories); i++ {
		cat := categories[i]
		if cat&(charcategory.Alpha|charcategory.Greek|charcategory.Cyrillic) != 0 {
			canBow[i] = cat&categories[i-1] == 0
			continue
		}
		canBow[i] = true
	}
	return canBow
}

// charCategoryContinuities computes, for each byte position, how many
// bytes of the category-continuity run starting there remain. A run is a
// maximal sequence of characters whose category-set intersection is
// non-empty.
func charCategoryContinuities(runes []rune, categories []charcategory.CategoryType) []int {
	if len(categories) == 0 {
		return nil
	}
	out := make([]int, 0, len(runes))
	i := 0
	for i < len(categories) {
		next := i + categoryRunLength(categories, i)
		runByteLen := 0
		for k := i; k < next; k++ {
			runByteLen += utf8.RuneLen(runes[k])
		}
		for k := 0; k < runByteLen; k++ {
			out = append(out, runByteLen-k)
		}
		i = next
	}
	return out
}

func categoryRunLength(categories []charcategory.CategoryType, offset int) int {
	continuous := categories[offset]
	for length := 1; offset+length < len(categories); length++ {
		continuous &= categories[offset+length]
		if continuous == 0 {
			return length
		}
	}
	return len(categories) - offset
}
