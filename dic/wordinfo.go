package dic

import (
	"encoding/binary"

	"github.com/sudachigo/sudachi/errs"
)

// WordInfo is the record returned for a single dictionary entry.
type WordInfo struct {
	Surface              string
	HeadWordLength        int // UTF-8 byte length of the surface, in the modified text's byte space
	POSID                 int16 // -1 => undefined
	NormalizedForm        string
	DictionaryFormWordID  int32 // -1 => none
	DictionaryForm        string
	ReadingForm           string
	AUnitSplit            []int32
	BUnitSplit            []int32
	WordStructure         []int32
}

// WordInfoList is the variable-length word-info block, indexed by a
// parallel u32 absolute-file-offset table (one entry per word id).
type WordInfoList struct {
	bytes      []byte // everything from the offset table onward
	fileOffset int     // absolute file offset where bytes[0] sits
	wordSize   int
}

func newWordInfoList(buf []byte, fileOffset int, wordSize int) *WordInfoList {
	return &WordInfoList{bytes: buf[fileOffset:], fileOffset: fileOffset, wordSize: wordSize}
}

func (l *WordInfoList) Size() int { return l.wordSize }

// Get decodes the word-info record for wordID, resolving dictionary-form
// by recursively following DictionaryFormWordID when it names a
// different word.
func (l *WordInfoList) Get(wordID uint32) (WordInfo, error) {
	offAbs, err := l.offsetFor(wordID)
	if err != nil {
		return WordInfo{}, err
	}
	offset := offAbs - l.fileOffset
	if offset < 0 || offset >= len(l.bytes) {
		return WordInfo{}, errs.New(errs.InvalidWordID, "word-info offset out of range")
	}

	surface, offset, err := readUTF16String(l.bytes, offset)
	if err != nil {
		return WordInfo{}, err
	}
	headWordLength, offset, err := readLength(l.bytes, offset)
	if err != nil {
		return WordInfo{}, err
	}
	if offset+2 > len(l.bytes) {
		return WordInfo{}, errs.New(errs.InvalidDictionaryHeader, "truncated word-info pos-id")
	}
	posID := int16(binary.LittleEndian.Uint16(l.bytes[offset : offset+2]))
	offset += 2

	normalizedForm, offset, err := readUTF16String(l.bytes, offset)
	if err != nil {
		return WordInfo{}, err
	}
	if normalizedForm == "" {
		normalizedForm = surface
	}

	if offset+4 > len(l.bytes) {
		return WordInfo{}, errs.New(errs.InvalidDictionaryHeader, "truncated dictionary-form word id")
	}
	dictFormWordID := int32(binary.LittleEndian.Uint32(l.bytes[offset : offset+4]))
	offset += 4

	readingForm, offset, err := readUTF16String(l.bytes, offset)
	if err != nil {
		return WordInfo{}, err
	}
	if readingForm == "" {
		readingForm = surface
	}

	aSplit, offset, err := readIntArray(l.bytes, offset)
	if err != nil {
		return WordInfo{}, err
	}
	bSplit, offset, err := readIntArray(l.bytes, offset)
	if err != nil {
		return WordInfo{}, err
	}
	wordStructure, _, err := readIntArray(l.bytes, offset)
	if err != nil {
		return WordInfo{}, err
	}

	dictionaryForm := surface
	if dictFormWordID >= 0 && uint32(dictFormWordID) != wordID {
		ref, err := l.Get(uint32(dictFormWordID))
		if err != nil {
			return WordInfo{}, err
		}
		dictionaryForm = ref.Surface
	}

	return WordInfo{
		Surface:              surface,
		HeadWordLength:        headWordLength,
		POSID:                 posID,
		NormalizedForm:        normalizedForm,
		DictionaryFormWordID:  dictFormWordID,
		DictionaryForm:        dictionaryForm,
		ReadingForm:           readingForm,
		AUnitSplit:            aSplit,
		BUnitSplit:            bSplit,
		WordStructure:         wordStructure,
	}, nil
}

func (l *WordInfoList) offsetFor(wordID uint32) (int, error) {
	i := 4 * int(wordID)
	if i+4 > len(l.bytes) {
		return 0, errs.New(errs.InvalidWordID, "word id out of range")
	}
	return int(binary.LittleEndian.Uint32(l.bytes[i : i+4])), nil
}

// EncodeWordInfo serializes a WordInfo record in the layout Get decodes.
// Used by dic/builder.
func EncodeWordInfo(w WordInfo) []byte {
	var out []byte
	out = append(out, writeUTF16String(w.Surface)...)
	out = append(out, writeLength(w.HeadWordLength)...)
	var posID [2]byte
	binary.LittleEndian.PutUint16(posID[:], uint16(w.POSID))
	out = append(out, posID[:]...)

	normalized := w.NormalizedForm
	if normalized == w.Surface {
		normalized = ""
	}
	out = append(out, writeUTF16String(normalized)...)

	var dictFormID [4]byte
	binary.LittleEndian.PutUint32(dictFormID[:], uint32(w.DictionaryFormWordID))
	out = append(out, dictFormID[:]...)

	reading := w.ReadingForm
	if reading == w.Surface {
		reading = ""
	}
	out = append(out, writeUTF16String(reading)...)

	out = append(out, writeIntArray(w.AUnitSplit)...)
	out = append(out, writeIntArray(w.BUnitSplit)...)
	out = append(out, writeIntArray(w.WordStructure)...)
	return out
}
