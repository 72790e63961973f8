package builder

import (
	"strings"
	"testing"
)

func TestParseMatrixDefParsesHeaderAndCosts(t *testing.T) {
	def := "2 2\n0 0 10\n0 1 -5\n1 0 20\n1 1 0\n"
	m, err := ParseMatrixDef(strings.NewReader(def))
	if err != nil {
		t.Fatalf("ParseMatrixDef: %v", err)
	}
	if m.Left != 2 || m.Right != 2 {
		t.Fatalf("Left/Right = %d/%d, want 2/2", m.Left, m.Right)
	}
	if got, want := m.Costs[0*2+1], int16(-5); got != want {
		t.Errorf("Costs[0][1] = %d, want %d", got, want)
	}
	if got, want := m.Costs[1*2+0], int16(20); got != want {
		t.Errorf("Costs[1][0] = %d, want %d", got, want)
	}
}

func TestParseMatrixDefEmptyMatrixIsValid(t *testing.T) {
	m, err := ParseMatrixDef(strings.NewReader("0 0\n"))
	if err != nil {
		t.Fatalf("ParseMatrixDef: %v", err)
	}
	if len(m.Costs) != 0 {
		t.Errorf("len(Costs) = %d, want 0", len(m.Costs))
	}
}

func TestParseMatrixDefSkipsBlankLines(t *testing.T) {
	def := "1 1\n\n0 0 5\n"
	m, err := ParseMatrixDef(strings.NewReader(def))
	if err != nil {
		t.Fatalf("ParseMatrixDef: %v", err)
	}
	if m.Costs[0] != 5 {
		t.Errorf("Costs[0] = %d, want 5", m.Costs[0])
	}
}

func TestParseMatrixDefRejectsEmptyInput(t *testing.T) {
	if _, err := ParseMatrixDef(strings.NewReader("")); err == nil {
		t.Fatal("expected an error for an empty matrix.def")
	}
}

func TestParseMatrixDefRejectsMalformedHeader(t *testing.T) {
	if _, err := ParseMatrixDef(strings.NewReader("not-a-header\n")); err == nil {
		t.Fatal("expected an error for a header that isn't two fields")
	}
}

func TestParseMatrixDefRejectsOutOfRangeIndex(t *testing.T) {
	if _, err := ParseMatrixDef(strings.NewReader("1 1\n5 0 10\n")); err == nil {
		t.Fatal("expected an error for a left index beyond L")
	}
}

func TestParseMatrixDefRejectsWrongFieldCount(t *testing.T) {
	if _, err := ParseMatrixDef(strings.NewReader("1 1\n0 0\n")); err == nil {
		t.Fatal("expected an error for a cost line missing its cost column")
	}
}
