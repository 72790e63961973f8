package tests

import (
	"fmt"
	"testing"

	"github.com/sudachigo/sudachi/tokenizer"
)

// BenchmarkTokenizeDictionaryWord measures a single-word, lexicon-only
// tokenize() call against the fixture dictionary TestMain sets up.
func BenchmarkTokenizeDictionaryWord(b *testing.B) {
	tok := dict.Create()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tok.Tokenize("東京都", tokenizer.SplitC); err != nil {
			b.Fatalf("Tokenize: %v", err)
		}
	}
}

// BenchmarkTokenizeSentence measures a multi-word sentence mixing
// dictionary words and an OOV character.
func BenchmarkTokenizeSentence(b *testing.B) {
	tok := dict.Create()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := tok.Tokenize("東京都に行く", tokenizer.SplitC); err != nil {
			b.Fatalf("Tokenize: %v", err)
		}
	}
}

// BenchmarkTokenizeSplitModes compares the three granularities' cost on
// the same compound word.
func BenchmarkTokenizeSplitModes(b *testing.B) {
	tok := dict.Create()
	modes := []struct {
		name string
		mode tokenizer.SplitMode
	}{
		{"A", tokenizer.SplitA},
		{"B", tokenizer.SplitB},
		{"C", tokenizer.SplitC},
	}
	for _, m := range modes {
		b.Run(fmt.Sprintf("mode_%s", m.name), func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := tok.Tokenize("東京都", m.mode); err != nil {
					b.Fatalf("Tokenize: %v", err)
				}
			}
		})
	}
}
