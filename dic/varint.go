package dic

import (
	"encoding/binary"
	"unicode/utf16"

	"github.com/sudachigo/sudachi/errs"
)

// readLength decodes the 1-or-2-byte length prefix used throughout the
// dictionary format: b<128 => b; else ((b&0x7F)<<8)|next_byte. Maximum
// representable length is 32767.
func readLength(buf []byte, offset int) (int, int, error) {
	if offset >= len(buf) {
		return 0, 0, errs.New(errs.InvalidDictionaryHeader, "truncated length prefix")
	}
	b := int(buf[offset])
	if b < 128 {
		return b, offset + 1, nil
	}
	if offset+1 >= len(buf) {
		return 0, 0, errs.New(errs.InvalidDictionaryHeader, "truncated length prefix")
	}
	c := int(buf[offset+1])
	return ((b & 0x7F) << 8) | c, offset + 2, nil
}

// writeLength encodes a length in the same 1-or-2-byte scheme.
func writeLength(n int) []byte {
	if n < 0 || n > 32767 {
		panic("length out of range")
	}
	if n < 128 {
		return []byte{byte(n)}
	}
	return []byte{byte(0x80 | (n >> 8)), byte(n & 0xFF)}
}

// readUTF16String reads a length-prefixed UTF-16LE string (length counted
// in UTF-16 code units, surrogate pairs counting as 2).
func readUTF16String(buf []byte, offset int) (string, int, error) {
	n, offset, err := readLength(buf, offset)
	if err != nil {
		return "", 0, err
	}
	end := offset + n*2
	if end > len(buf) {
		return "", 0, errs.New(errs.InvalidDictionaryHeader, "truncated UTF-16 string")
	}
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		units[i] = binary.LittleEndian.Uint16(buf[offset+i*2 : offset+i*2+2])
	}
	return string(utf16.Decode(units)), end, nil
}

// EncodeUTF16String encodes s as a length-prefixed UTF-16LE string, per
// §4.3. Exported for dic/builder.
func EncodeUTF16String(s string) []byte { return writeUTF16String(s) }

// writeUTF16String encodes s as a length-prefixed UTF-16LE string.
func writeUTF16String(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := writeLength(len(units))
	for _, u := range units {
		out = append(out, byte(u), byte(u>>8))
	}
	return out
}

// readIntArray reads a u8 count followed by count little-endian i32
// values (used for the A/B-split and word-structure lists).
func readIntArray(buf []byte, offset int) ([]int32, int, error) {
	if offset >= len(buf) {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated array count")
	}
	n := int(buf[offset])
	offset++
	if offset+n*4 > len(buf) {
		return nil, 0, errs.New(errs.InvalidDictionaryHeader, "truncated array")
	}
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = int32(binary.LittleEndian.Uint32(buf[offset+i*4 : offset+i*4+4]))
	}
	return out, offset + n*4, nil
}

// writeIntArray encodes vals as a u8 count followed by count
// little-endian i32 values. len(vals) must be <= 127.
func writeIntArray(vals []int32) []byte {
	if len(vals) > 127 {
		panic("split array too long")
	}
	out := []byte{byte(len(vals))}
	for _, v := range vals {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(v))
		out = append(out, b[:]...)
	}
	return out
}
