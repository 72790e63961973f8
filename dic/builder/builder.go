// Package builder is a trimmed offline dictionary writer: CSV lexicon
// rows plus a connection matrix go in, binary dictionary bytes (§4.3 of
// the format) come out. It exists so package tests across this module
// can construct real, self-consistent binary dictionary fixtures
// in-process rather than depending on external dictionary files — the
// full CSV-parsing/CLI builder described as an external collaborator is
// out of scope; only the writer half the core's own tests need is built.
package builder

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/sudachigo/sudachi/dic"
	"github.com/sudachigo/sudachi/dic/doublearray"
	"github.com/sudachigo/sudachi/errs"
)

// Row is one CSV lexicon row (§6), already parsed into fields; the CSV
// text format itself (18 columns, unicode escapes, split specs) is
// handled by csv.go.
type Row struct {
	Surface               string
	LeftID, RightID, Cost int16
	POSID                 int16 // resolved index into the Build POS table
	Reading               string
	NormalizedForm        string
	DictionaryFormWordID  int32 // -1 => none
	AUnitSplit            []int32
	BUnitSplit            []int32
	WordStructure         []int32
}

// Matrix is a parsed matrix.def: L rows, R columns of connection costs,
// in the file's natural row-major-by-left order.
type Matrix struct {
	Left, Right int
	Costs       []int16 // len == Left*Right, Costs[left*Right+right]
}

// Build assembles rows and matrix into a complete system-dictionary byte
// buffer: header, grammar, and a lexicon whose Double-Array is built
// fresh via doublearray.Build over the rows' distinct surfaces.
func Build(rows []Row, pos []dic.POS, matrix Matrix, description string) ([]byte, error) {
	if len(matrix.Costs) != matrix.Left*matrix.Right {
		return nil, errs.New(errs.InvalidFormat, "matrix cost count does not match L*R")
	}

	header := encodeHeader(description)
	grammar := encodeGrammar(pos, matrix)
	lexicon, err := encodeLexicon(rows, len(header)+len(grammar))
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Write(header)
	out.Write(grammar)
	out.Write(lexicon)
	return out.Bytes(), nil
}

func encodeHeader(description string) []byte {
	var out bytes.Buffer
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(dic.SystemDictV2))
	out.Write(b[:])
	binary.LittleEndian.PutUint64(b[:], 0) // create time
	out.Write(b[:])
	desc := make([]byte, 256)
	copy(desc, description)
	out.Write(desc)
	return out.Bytes()
}

func encodeGrammar(pos []dic.POS, m Matrix) []byte {
	var out bytes.Buffer
	var sz [2]byte
	binary.LittleEndian.PutUint16(sz[:], uint16(int16(len(pos))))
	out.Write(sz[:])
	for _, p := range pos {
		for _, s := range p {
			out.Write(dic.EncodeUTF16String(s))
		}
	}
	var l, r [2]byte
	binary.LittleEndian.PutUint16(l[:], uint16(int16(m.Left)))
	binary.LittleEndian.PutUint16(r[:], uint16(int16(m.Right)))
	out.Write(l[:])
	out.Write(r[:])
	for _, c := range m.Costs {
		var cb [2]byte
		binary.LittleEndian.PutUint16(cb[:], uint16(c))
		out.Write(cb[:])
	}
	return out.Bytes()
}

// encodeLexicon encodes the Double-Array, word-id table, word parameters
// and word-info block. base is the absolute file offset at which this
// section's own bytes begin, needed because the word-info offset table
// stores absolute file positions (per §4.3).
func encodeLexicon(rows []Row, base int) ([]byte, error) {
	bySurface := make(map[string][]uint32)
	for i, r := range rows {
		bySurface[r.Surface] = append(bySurface[r.Surface], uint32(i))
	}
	surfaces := make([]string, 0, len(bySurface))
	for s := range bySurface {
		surfaces = append(surfaces, s)
	}
	sort.Strings(surfaces)

	var widBlob bytes.Buffer
	values := make([]uint32, len(surfaces))
	keys := make([][]byte, len(surfaces))
	for i, s := range surfaces {
		ids := bySurface[s]
		if len(ids) > 127 {
			return nil, errs.New(errs.InvalidFormat, "more than 127 homonyms for one surface")
		}
		values[i] = uint32(widBlob.Len())
		keys[i] = []byte(s)
		widBlob.WriteByte(byte(len(ids)))
		for _, id := range ids {
			var b [4]byte
			binary.LittleEndian.PutUint32(b[:], id)
			widBlob.Write(b[:])
		}
	}

	units, err := doublearray.Build(keys, values)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	var daSize [4]byte
	binary.LittleEndian.PutUint32(daSize[:], uint32(len(units)))
	out.Write(daSize[:])
	for _, u := range units {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], u)
		out.Write(b[:])
	}

	var widLen [4]byte
	binary.LittleEndian.PutUint32(widLen[:], uint32(widBlob.Len()))
	out.Write(widLen[:])
	out.Write(widBlob.Bytes())

	var paramCount [4]byte
	binary.LittleEndian.PutUint32(paramCount[:], uint32(len(rows)))
	out.Write(paramCount[:])
	for _, r := range rows {
		var b [6]byte
		binary.LittleEndian.PutUint16(b[0:2], uint16(r.LeftID))
		binary.LittleEndian.PutUint16(b[2:4], uint16(r.RightID))
		binary.LittleEndian.PutUint16(b[4:6], uint16(r.Cost))
		out.Write(b[:])
	}

	records := make([][]byte, len(rows))
	for i, r := range rows {
		records[i] = dic.EncodeWordInfo(dic.WordInfo{
			Surface:              r.Surface,
			HeadWordLength:       len(r.Surface),
			POSID:                r.POSID,
			NormalizedForm:       r.NormalizedForm,
			DictionaryFormWordID: r.DictionaryFormWordID,
			ReadingForm:          r.Reading,
			AUnitSplit:           r.AUnitSplit,
			BUnitSplit:           r.BUnitSplit,
			WordStructure:        r.WordStructure,
		})
	}

	tableStart := base + out.Len()
	recordsStart := tableStart + 4*len(rows)
	offsets := make([]uint32, len(rows))
	pos := 0
	for i, rec := range records {
		offsets[i] = uint32(recordsStart + pos)
		pos += len(rec)
	}
	for _, off := range offsets {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], off)
		out.Write(b[:])
	}
	for _, rec := range records {
		out.Write(rec)
	}

	return out.Bytes(), nil
}
