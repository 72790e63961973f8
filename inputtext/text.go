// Package inputtext builds the rewritten, category-annotated input text
// that the rest of the pipeline indexes by byte position.
package inputtext

import (
	"unicode/utf8"

	"github.com/sudachigo/sudachi/charcategory"
	"github.com/sudachigo/sudachi/errs"
)

// InputText is the post-rewrite text plus the offset/category tables
// §3 and §4.4 describe.
type InputText struct {
	originalText string
	modifiedText string
	bytes        []byte

	offsets     []int // byte index -> original-character index, len(bytes)+1
	byteIndexes []int // byte index -> modified-character index, len(bytes)+1

	charCategories       []charcategory.CategoryType // per modified character
	categoryContinuities []int                        // per byte: remaining bytes of the category-continuity run
	canBow               []bool                       // per modified character

	modifiedRunes []rune // modifiedText decoded once, indexed by character position
}

func (t *InputText) GetOriginalText() string { return t.originalText }
func (t *InputText) GetText() string         { return t.modifiedText }
func (t *InputText) GetByteText() []byte     { return t.bytes }

// GetOriginalIndex returns the original-character index corresponding to
// byte position i in the modified text's byte buffer.
func (t *InputText) GetOriginalIndex(i int) int { return t.offsets[i] }

// CanBow reports whether a word may begin at byte position i. A
// continuation byte (one with the 10xxxxxx pattern) never begins a word.
func (t *InputText) CanBow(i int) bool {
	if i >= len(t.bytes) {
		return true
	}
	if t.bytes[i]&0xC0 == 0x80 {
		return false
	}
	return t.canBow[t.byteIndexes[i]]
}

// GetCharCategoryTypes returns the category set of the modified character
// containing byte position i.
func (t *InputText) GetCharCategoryTypes(i int) charcategory.CategoryType {
	return t.charCategories[t.byteIndexes[i]]
}

// GetCharCategoryContinuousLength returns, in bytes, how much of the
// category-continuity run starting at byte i remains.
func (t *InputText) GetCharCategoryContinuousLength(i int) int {
	return t.categoryContinuities[i]
}

// GetWordCandidateLength is an alias used by OOV providers: the number of
// bytes in the category-continuity run starting at i.
func (t *InputText) GetWordCandidateLength(i int) int {
	return t.categoryContinuities[i]
}

// GetCodePointsOffsetLength returns the byte length spanning the first
// count code points of the modified text starting at byte offset i.
func (t *InputText) GetCodePointsOffsetLength(i, count int) int {
	charIdx := t.byteIndexes[i]
	length := 0
	for k := 0; k < count && charIdx+k < len(t.modifiedRunes); k++ {
		length += utf8.RuneLen(t.modifiedRunes[charIdx+k])
	}
	return length
}

// GetSubstring returns the modified-text substring spanning the byte
// range [start, end). Word surfaces are drawn from the modified text;
// callers wanting the original spelling use GetOriginalIndex to map
// byte positions back into the original string themselves.
func (t *InputText) GetSubstring(start, end int) (string, error) {
	if end > len(t.bytes) {
		return "", errs.New(errs.SubstringError, "end > len(bytes)")
	}
	if start > end {
		return "", errs.New(errs.SubstringError, "start > end")
	}
	return string(t.bytes[start:end]), nil
}

// CodePointCount returns the number of modified-text characters spanning
// the byte range [start, end).
func (t *InputText) CodePointCount(start, end int) int {
	return t.byteIndexes[end] - t.byteIndexes[start]
}
