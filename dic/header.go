// Package dic implements the binary dictionary format: header, grammar
// (part-of-speech table + connection-cost matrix), lexicon (Double-Array +
// word-id table + word parameters + word-info records), and the merge of
// a system lexicon with up to fifteen user lexicons under a packed 32-bit
// word-id namespace.
package dic

import (
	"bytes"
	"encoding/binary"

	"github.com/sudachigo/sudachi/errs"
)

// Version identifies the binary dictionary format revision stored in the
// header.
type Version uint64

const (
	SystemDictV1 Version = 0x7366d3f18bd111e7
	SystemDictV2 Version = 0x9fdeb5a90168a1e7
	UserDictV1   Version = 0xa5c7884d3bef6b2c
	UserDictV2   Version = 0x95d26a2d7c388020
	UserDictV3   Version = 0x15d26a2d7c388020

	descriptionSize = 256
	headerSize      = 8 + 8 + descriptionSize
)

// Header is the fixed 272-byte dictionary header.
type Header struct {
	Version     Version
	CreateTime  uint64
	Description string
}

// HasGrammar reports whether a dictionary with this version carries a
// grammar section. USER_DICT_v1 predates the grammar section; everything
// else does.
func (h Header) HasGrammar() bool { return h.Version != UserDictV1 }

func (h Header) isKnownVersion() bool {
	switch h.Version {
	case SystemDictV1, SystemDictV2, UserDictV1, UserDictV2, UserDictV3:
		return true
	}
	return false
}

// readHeader reads the fixed-size header starting at the current read
// position in buf[offset:], and returns the header plus the absolute
// offset immediately following it (offset+272, regardless of how many
// description bytes were actually consumed — matching the reference
// reader, which always seeks to header_start+272 before the next
// section).
func readHeader(buf []byte, offset int) (Header, int, error) {
	if offset+16 > len(buf) {
		return Header{}, 0, errs.New(errs.InvalidDictionaryHeader, "truncated header")
	}
	version := Version(binary.LittleEndian.Uint64(buf[offset : offset+8]))
	createTime := binary.LittleEndian.Uint64(buf[offset+8 : offset+16])

	descStart := offset + 16
	descRegion := buf[descStart:min(descStart+descriptionSize, len(buf))]
	nul := bytes.IndexByte(descRegion, 0)
	var desc string
	if nul >= 0 {
		desc = string(descRegion[:nul])
	} else {
		// No NUL found within the 256-byte region: the description is
		// truncated at the region boundary rather than treated as an error.
		desc = string(descRegion)
	}

	h := Header{Version: version, CreateTime: createTime, Description: desc}
	if !h.isKnownVersion() {
		return Header{}, 0, errs.Newf(errs.InvalidDictionaryVersion, "unrecognized dictionary version %#x", uint64(version))
	}
	return h, offset + headerSize, nil
}
