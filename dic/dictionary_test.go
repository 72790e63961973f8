package dic_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/sudachigo/sudachi/dic"
	"github.com/sudachigo/sudachi/dic/builder"
	"github.com/sudachigo/sudachi/errs"
)

var nounPOS = dic.POS{"名詞", "普通名詞", "一般", "*", "*", "*"}

func buildSystemFixture(t *testing.T, rows []builder.Row, pos []dic.POS) *dic.Dictionary {
	t.Helper()
	matrix := builder.Matrix{Left: 1, Right: 1, Costs: []int16{0}}
	bytes, err := builder.Build(rows, pos, matrix, "test fixture")
	if err != nil {
		t.Fatalf("builder.Build: %v", err)
	}
	path := filepath.Join(t.TempDir(), "system.dic")
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	d, err := dic.LoadSystem(path)
	if err != nil {
		t.Fatalf("LoadSystem: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestLoadSystemRoundTripsLexiconLookup(t *testing.T) {
	d := buildSystemFixture(t, []builder.Row{
		{Surface: "東京", LeftID: 0, RightID: 0, Cost: 100, POSID: 0, NormalizedForm: "東京", Reading: "トウキョウ", DictionaryFormWordID: -1},
	}, []dic.POS{nounPOS})

	results := d.Lexicon.Lookup([]byte("東京"), 0)
	if len(results) != 1 {
		t.Fatalf("Lookup returned %d results, want 1", len(results))
	}
	wi, err := d.Lexicon.GetWordInfo(results[0].WordID)
	if err != nil {
		t.Fatalf("GetWordInfo: %v", err)
	}
	if wi.Surface != "東京" {
		t.Errorf("Surface = %q, want %q", wi.Surface, "東京")
	}
}

func TestLoadSystemRejectsMissingFile(t *testing.T) {
	if _, err := dic.LoadSystem(filepath.Join(t.TempDir(), "missing.dic")); err == nil {
		t.Fatal("expected an error loading a nonexistent file")
	}
}

func TestLoadUserAcceptsSystemStampedBytesSinceBothV2HeadersCarryGrammar(t *testing.T) {
	// builder.Build always stamps SystemDictV2; since LoadUser does not
	// require a grammar section (unlike LoadSystem), it can load these
	// bytes unmodified even without the UserDictV2 header patch the other
	// fixtures in this file apply.
	rows := []builder.Row{
		{Surface: "x", LeftID: 0, RightID: 0, Cost: 0, POSID: 0, NormalizedForm: "x", DictionaryFormWordID: -1},
	}
	bytes, err := builder.Build(rows, []dic.POS{nounPOS}, builder.Matrix{Left: 1, Right: 1, Costs: []int16{0}}, "x")
	if err != nil {
		t.Fatalf("builder.Build: %v", err)
	}
	path := filepath.Join(t.TempDir(), "x.dic")
	if err := os.WriteFile(path, bytes, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	d, err := dic.LoadUser(path)
	if err != nil {
		t.Fatalf("LoadUser: %v", err)
	}
	defer d.Close()
}

func TestLexiconSetMergesUserDictionaryUnderPackedWordID(t *testing.T) {
	system := buildSystemFixture(t, []builder.Row{
		{Surface: "東京", LeftID: 0, RightID: 0, Cost: 100, POSID: 0, NormalizedForm: "東京", Reading: "トウキョウ", DictionaryFormWordID: -1},
	}, []dic.POS{nounPOS})

	userPOS := dic.POS{"名詞", "固有名詞", "地名", "*", "*", "*"}
	userBytes, err := builder.Build([]builder.Row{
		{Surface: "新宿", LeftID: 0, RightID: 0, Cost: 50, POSID: 0, NormalizedForm: "新宿", DictionaryFormWordID: -1},
	}, []dic.POS{userPOS}, builder.Matrix{Left: 1, Right: 1, Costs: []int16{0}}, "user")
	if err != nil {
		t.Fatalf("builder.Build: %v", err)
	}
	binary.LittleEndian.PutUint64(userBytes[0:8], uint64(dic.UserDictV2))
	userPath := filepath.Join(t.TempDir(), "user.dic")
	if err := os.WriteFile(userPath, userBytes, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	user, err := dic.LoadUser(userPath)
	if err != nil {
		t.Fatalf("LoadUser: %v", err)
	}
	defer user.Close()

	set := dic.NewLexiconSet(system.Lexicon, system.Grammar.POSSize())
	posBase := system.Grammar.AddPOSList(user.Grammar)
	if err := set.AddUserLexicon(user.Lexicon, posBase); err != nil {
		t.Fatalf("AddUserLexicon: %v", err)
	}

	results := set.Lookup([]byte("新宿"), 0)
	if len(results) != 1 {
		t.Fatalf("Lookup returned %d results, want 1", len(results))
	}
	if dictID := set.DictionaryID(results[0].WordID); dictID != 1 {
		t.Errorf("DictionaryID = %d, want 1 (the user dictionary)", dictID)
	}
	wi, err := set.GetWordInfo(results[0].WordID)
	if err != nil {
		t.Fatalf("GetWordInfo: %v", err)
	}
	if wi.Surface != "新宿" {
		t.Errorf("Surface = %q, want %q", wi.Surface, "新宿")
	}
}

func TestLexiconSetRebasesPOSForSecondUserDictionary(t *testing.T) {
	system := buildSystemFixture(t, []builder.Row{
		{Surface: "東京", LeftID: 0, RightID: 0, Cost: 100, POSID: 0, NormalizedForm: "東京", DictionaryFormWordID: -1},
	}, []dic.POS{nounPOS})

	buildUser := func(surface string, pos dic.POS) *dic.Dictionary {
		// user POS ids start after the system's one-entry POS table, so
		// POSID 1 names the user dictionary's own first POS entry.
		bytes, err := builder.Build([]builder.Row{
			{Surface: surface, LeftID: 0, RightID: 0, Cost: 50, POSID: 1, NormalizedForm: surface, DictionaryFormWordID: -1},
		}, []dic.POS{pos}, builder.Matrix{Left: 1, Right: 1, Costs: []int16{0}}, surface)
		if err != nil {
			t.Fatalf("builder.Build: %v", err)
		}
		binary.LittleEndian.PutUint64(bytes[0:8], uint64(dic.UserDictV2))
		path := filepath.Join(t.TempDir(), surface+".dic")
		if err := os.WriteFile(path, bytes, 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
		d, err := dic.LoadUser(path)
		if err != nil {
			t.Fatalf("LoadUser: %v", err)
		}
		t.Cleanup(func() { d.Close() })
		return d
	}

	user1POS := dic.POS{"名詞", "固有名詞", "地名", "*", "*", "*"}
	user2POS := dic.POS{"名詞", "固有名詞", "人名", "*", "*", "*"}
	user1 := buildUser("新宿", user1POS)
	user2 := buildUser("渋谷", user2POS)

	set := dic.NewLexiconSet(system.Lexicon, system.Grammar.POSSize())

	posBase1 := system.Grammar.AddPOSList(user1.Grammar)
	if err := set.AddUserLexicon(user1.Lexicon, posBase1); err != nil {
		t.Fatalf("AddUserLexicon user1: %v", err)
	}
	posBase2 := system.Grammar.AddPOSList(user2.Grammar)
	if err := set.AddUserLexicon(user2.Lexicon, posBase2); err != nil {
		t.Fatalf("AddUserLexicon user2: %v", err)
	}

	results2 := set.Lookup([]byte("渋谷"), 0)
	if len(results2) != 1 {
		t.Fatalf("Lookup(渋谷) returned %d results, want 1", len(results2))
	}
	if dictID := set.DictionaryID(results2[0].WordID); dictID != 2 {
		t.Fatalf("DictionaryID = %d, want 2 (the second user dictionary)", dictID)
	}
	wi2, err := set.GetWordInfo(results2[0].WordID)
	if err != nil {
		t.Fatalf("GetWordInfo(渋谷): %v", err)
	}
	if got := system.Grammar.POSString(int(wi2.POSID)); got != user2POS {
		t.Errorf("渋谷's rebased POS = %v, want %v (its own dictionary's POS, not aliased onto user1's)", got, user2POS)
	}

	results1 := set.Lookup([]byte("新宿"), 0)
	if len(results1) != 1 {
		t.Fatalf("Lookup(新宿) returned %d results, want 1", len(results1))
	}
	wi1, err := set.GetWordInfo(results1[0].WordID)
	if err != nil {
		t.Fatalf("GetWordInfo(新宿): %v", err)
	}
	if got := system.Grammar.POSString(int(wi1.POSID)); got != user1POS {
		t.Errorf("新宿's rebased POS = %v, want %v", got, user1POS)
	}
}

func TestLexiconSetAddUserLexiconRejectsTooManyDictionaries(t *testing.T) {
	system := buildSystemFixture(t, []builder.Row{
		{Surface: "x", LeftID: 0, RightID: 0, Cost: 0, POSID: 0, DictionaryFormWordID: -1},
	}, []dic.POS{nounPOS})
	set := dic.NewLexiconSet(system.Lexicon, system.Grammar.POSSize())

	for i := 0; i < dic.MaxDictionaries-1; i++ {
		if err := set.AddUserLexicon(system.Lexicon, 0); err != nil {
			t.Fatalf("AddUserLexicon #%d: %v", i, err)
		}
	}
	if err := set.AddUserLexicon(system.Lexicon, 0); !errs.Is(err, errs.TooManyDictionaries) {
		t.Fatalf("expected errs.TooManyDictionaries once the 16-dictionary cap is exceeded, got %v", err)
	}
}

func TestCalculateCostBackfillsRecostSentinel(t *testing.T) {
	d := buildSystemFixture(t, []builder.Row{
		{Surface: "東京", LeftID: 0, RightID: 0, Cost: 100, POSID: 0, NormalizedForm: "東京", Reading: "トウキョウ", DictionaryFormWordID: -1},
		{Surface: "新宿", LeftID: 0, RightID: 0, Cost: -32768, POSID: 0, NormalizedForm: "新宿", DictionaryFormWordID: -1},
	}, []dic.POS{nounPOS})

	bt := stubBootstrapTokenizer{cost: 200, count: 2}
	if err := d.Lexicon.CalculateCost(bt); err != nil {
		t.Fatalf("CalculateCost: %v", err)
	}

	results := d.Lexicon.Lookup([]byte("新宿"), 0)
	if len(results) != 1 {
		t.Fatalf("Lookup returned %d results, want 1", len(results))
	}
	if got, want := d.Lexicon.GetCost(results[0].WordID), int16(200+(-20)*2); got != want {
		t.Errorf("GetCost = %d, want %d", got, want)
	}
}

type stubBootstrapTokenizer struct {
	cost  int32
	count int
}

func (s stubBootstrapTokenizer) TokenizeInternalCost(surface string) (int32, int, bool) {
	return s.cost, s.count, true
}
