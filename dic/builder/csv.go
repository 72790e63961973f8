package builder

import (
	"strconv"
	"strings"

	"github.com/sudachigo/sudachi/errs"
)

// ParseCSVRow parses one 18-column CSV lexicon row (§6). resolveSplit
// resolves a single split-spec token (system/user word references, or a
// "surface,pos1..6,reading" literal) to a word id; it is supplied by the
// caller because resolution depends on other already-parsed rows.
func ParseCSVRow(line string, posIndex map[[6]string]int16, resolveSplit func(spec string) (int32, error)) (Row, error) {
	cols := splitCSVLine(line)
	if len(cols) != 18 {
		return Row{}, errs.Newf(errs.InvalidFormat, "expected 18 columns, got %d", len(cols))
	}
	for i := range cols {
		cols[i] = expandUnicodeEscapes(cols[i])
	}

	leftID, err := strconv.ParseInt(cols[1], 10, 16)
	if err != nil {
		return Row{}, errs.Wrap(errs.InvalidFormat, err, "left-id")
	}
	rightID, err := strconv.ParseInt(cols[2], 10, 16)
	if err != nil {
		return Row{}, errs.Wrap(errs.InvalidFormat, err, "right-id")
	}
	cost, err := strconv.ParseInt(cols[3], 10, 16)
	if err != nil {
		return Row{}, errs.Wrap(errs.InvalidFormat, err, "cost")
	}

	var pos [6]string
	copy(pos[:], cols[5:11])
	posID, ok := posIndex[pos]
	if !ok {
		return Row{}, errs.Newf(errs.InvalidFormat, "unregistered POS %v", pos)
	}

	dictFormID := int32(-1)
	if cols[13] != "*" {
		n, err := strconv.ParseInt(cols[13], 10, 32)
		if err != nil {
			return Row{}, errs.Wrap(errs.InvalidFormat, err, "dictionary-form word id")
		}
		dictFormID = int32(n)
	}

	aSplit, err := resolveSplitSpec(cols[15], resolveSplit)
	if err != nil {
		return Row{}, err
	}
	bSplit, err := resolveSplitSpec(cols[16], resolveSplit)
	if err != nil {
		return Row{}, err
	}
	wordStructure, err := resolveSplitSpec(cols[17], resolveSplit)
	if err != nil {
		return Row{}, err
	}

	return Row{
		Surface:              cols[0],
		LeftID:               int16(leftID),
		RightID:              int16(rightID),
		Cost:                 int16(cost),
		POSID:                posID,
		Reading:              cols[11],
		NormalizedForm:       cols[12],
		DictionaryFormWordID: dictFormID,
		AUnitSplit:           aSplit,
		BUnitSplit:           bSplit,
		WordStructure:        wordStructure,
	}, nil
}

func resolveSplitSpec(spec string, resolve func(string) (int32, error)) ([]int32, error) {
	if spec == "*" {
		return nil, nil
	}
	parts := strings.Split(spec, "/")
	out := make([]int32, 0, len(parts))
	for _, p := range parts {
		id, err := resolve(p)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// ResolveBareSplitToken resolves a bare split token (digits, or "U"+digits
// for a user-dictionary-local id) to a word id. Literal
// "surface,pos1..6,reading" specs are not handled here; callers needing
// that form must resolve it against their own row table before falling
// back to this helper.
func ResolveBareSplitToken(token string, dictID int) (int32, error) {
	if strings.HasPrefix(token, "U") {
		n, err := strconv.ParseUint(token[1:], 10, 32)
		if err != nil {
			return 0, errs.Wrap(errs.InvalidFormat, err, "user split token")
		}
		return int32(uint32(dictID)<<28 | uint32(n)), nil
	}
	n, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, errs.Wrap(errs.InvalidFormat, err, "split token")
	}
	return int32(n), nil
}

func splitCSVLine(line string) []string {
	var cols []string
	var cur strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			cols = append(cols, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	cols = append(cols, cur.String())
	return cols
}

// expandUnicodeEscapes expands \uXXXX and \u{XXXX...} escapes into their
// code points.
func expandUnicodeEscapes(s string) string {
	var out strings.Builder
	for i := 0; i < len(s); {
		if i+1 < len(s) && s[i] == '\\' && s[i+1] == 'u' {
			rest := s[i+2:]
			if strings.HasPrefix(rest, "{") {
				end := strings.IndexByte(rest, '}')
				if end > 0 {
					if cp, err := strconv.ParseInt(rest[1:end], 16, 32); err == nil {
						out.WriteRune(rune(cp))
						i += 2 + end + 1
						continue
					}
				}
			} else if len(rest) >= 4 {
				if cp, err := strconv.ParseInt(rest[:4], 16, 32); err == nil {
					out.WriteRune(rune(cp))
					i += 6
					continue
				}
			}
		}
		out.WriteByte(s[i])
		i++
	}
	return out.String()
}

// ParsePOSIndex reads registered POS 6-tuples in first-seen order,
// assigning sequential ids; used to build the posIndex passed to
// ParseCSVRow.
func ParsePOSIndex(poses [][6]string) map[[6]string]int16 {
	idx := make(map[[6]string]int16, len(poses))
	for i, p := range poses {
		idx[p] = int16(i)
	}
	return idx
}
