package builder

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sudachigo/sudachi/errs"
)

// ParseMatrixDef reads a MeCab-format connection matrix: a header line
// "L R", then lines "l r cost". Missing matrix (L=R=0, no cost lines) is
// valid and yields an empty connection table.
func ParseMatrixDef(r io.Reader) (Matrix, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return Matrix{}, errs.New(errs.InvalidFormat, "empty matrix.def")
	}
	header := strings.Fields(scanner.Text())
	if len(header) != 2 {
		return Matrix{}, errs.New(errs.InvalidFormat, "matrix.def header must be \"L R\"")
	}
	left, err := strconv.Atoi(header[0])
	if err != nil {
		return Matrix{}, errs.Wrap(errs.InvalidFormat, err, "matrix.def L")
	}
	right, err := strconv.Atoi(header[1])
	if err != nil {
		return Matrix{}, errs.Wrap(errs.InvalidFormat, err, "matrix.def R")
	}

	costs := make([]int16, left*right)
	line := 1
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 3 {
			return Matrix{}, errs.AtLine(errs.InvalidFormat, line, "expected \"l r cost\"")
		}
		l, err1 := strconv.Atoi(fields[0])
		rr, err2 := strconv.Atoi(fields[1])
		cost, err3 := strconv.ParseInt(fields[2], 10, 16)
		if err1 != nil || err2 != nil || err3 != nil {
			return Matrix{}, errs.AtLine(errs.InvalidFormat, line, "non-numeric matrix entry")
		}
		if l < 0 || l >= left || rr < 0 || rr >= right {
			return Matrix{}, errs.AtLine(errs.InvalidRange, line, "matrix index out of range")
		}
		costs[l*right+rr] = int16(cost)
	}
	return Matrix{Left: left, Right: right, Costs: costs}, nil
}
