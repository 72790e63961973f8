package tokenizer

import (
	"testing"
)

func TestTokenizeBatchMatchesSequentialTokenize(t *testing.T) {
	tok, cleanup := buildFixture(t)
	defer cleanup()

	texts := []string{"東京", "行く", "ひ", "東京"}
	results, err := tok.TokenizeBatch(texts, SplitC)
	if err != nil {
		t.Fatalf("TokenizeBatch: %v", err)
	}
	if len(results) != len(texts) {
		t.Fatalf("len(results) = %d, want %d", len(results), len(texts))
	}

	for i, text := range texts {
		want, err := tok.Tokenize(text, SplitC)
		if err != nil {
			t.Fatalf("Tokenize(%q): %v", text, err)
		}
		got := results[i]
		if got == nil || want == nil {
			t.Fatalf("result[%d] = %v, want non-nil", i, got)
		}
		if got.Len() != want.Len() {
			t.Fatalf("result[%d].Len() = %d, want %d", i, got.Len(), want.Len())
		}
		gm, _ := got.Get(0)
		wm, _ := want.Get(0)
		if gm.Surface() != wm.Surface() {
			t.Errorf("result[%d].Surface() = %q, want %q", i, gm.Surface(), wm.Surface())
		}
	}
}

func TestTokenizeBatchEmptyInputYieldsEmptySlice(t *testing.T) {
	tok, cleanup := buildFixture(t)
	defer cleanup()

	results, err := tok.TokenizeBatch(nil, SplitC)
	if err != nil {
		t.Fatalf("TokenizeBatch: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("len(results) = %d, want 0", len(results))
	}
}

func TestTokenizeBatchPreservesOrderAcrossManyChunks(t *testing.T) {
	tok, cleanup := buildFixture(t)
	defer cleanup()

	texts := make([]string, 0, 2500)
	for i := 0; i < 2500; i++ {
		if i%2 == 0 {
			texts = append(texts, "東京")
		} else {
			texts = append(texts, "行く")
		}
	}

	results, err := tok.TokenizeBatch(texts, SplitC)
	if err != nil {
		t.Fatalf("TokenizeBatch: %v", err)
	}
	for i, text := range texts {
		m, _ := results[i].Get(0)
		if m.Surface() != text {
			t.Fatalf("result[%d].Surface() = %q, want %q", i, m.Surface(), text)
		}
	}
}

func TestTokenizeBatchSurfacesFirstError(t *testing.T) {
	tok, cleanup := buildFixture(t)
	defer cleanup()

	// the fixture's SimpleProvider covers every lexicon miss, so every text
	// here would tokenize; exercise the reported-error plumbing by draining
	// the oov providers so every lexicon-miss position fails.
	tok.oovProviders = nil

	texts := []string{"東京", "ひ"}
	_, err := tok.TokenizeBatch(texts, SplitC)
	if err == nil {
		t.Fatal("expected an error: ひ has no lexicon entry and no OOV provider is configured")
	}
}
