package dic

import (
	"encoding/binary"
	"testing"

	"github.com/sudachigo/sudachi/errs"
)

func encodeHeaderForTest(version Version, createTime uint64, description string) []byte {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(version))
	binary.LittleEndian.PutUint64(buf[8:16], createTime)
	copy(buf[16:], description)
	return buf
}

func TestReadHeaderRoundTrip(t *testing.T) {
	buf := encodeHeaderForTest(SystemDictV2, 1234, "a test dictionary")
	h, next, err := readHeader(buf, 0)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}
	if h.Version != SystemDictV2 {
		t.Errorf("Version = %#x, want %#x", uint64(h.Version), uint64(SystemDictV2))
	}
	if h.CreateTime != 1234 {
		t.Errorf("CreateTime = %d, want 1234", h.CreateTime)
	}
	if h.Description != "a test dictionary" {
		t.Errorf("Description = %q, want %q", h.Description, "a test dictionary")
	}
	if next != headerSize {
		t.Errorf("next = %d, want %d", next, headerSize)
	}
}

func TestReadHeaderAlwaysAdvancesByHeaderSizeRegardlessOfDescriptionLength(t *testing.T) {
	buf := append(make([]byte, 10), encodeHeaderForTest(SystemDictV2, 0, "short")...)
	_, next, err := readHeader(buf, 10)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}
	if next != 10+headerSize {
		t.Errorf("next = %d, want %d", next, 10+headerSize)
	}
}

func TestReadHeaderDescriptionWithoutNulIsTruncatedAtRegionBoundary(t *testing.T) {
	buf := make([]byte, headerSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(SystemDictV2))
	full := make([]byte, descriptionSize)
	for i := range full {
		full[i] = 'x'
	}
	copy(buf[16:], full)

	h, _, err := readHeader(buf, 0)
	if err != nil {
		t.Fatalf("readHeader: %v", err)
	}
	if len(h.Description) != descriptionSize {
		t.Errorf("len(Description) = %d, want %d", len(h.Description), descriptionSize)
	}
}

func TestReadHeaderRejectsUnknownVersion(t *testing.T) {
	buf := encodeHeaderForTest(Version(0xdeadbeef), 0, "")
	_, _, err := readHeader(buf, 0)
	if !errs.Is(err, errs.InvalidDictionaryVersion) {
		t.Fatalf("err = %v, want errs.InvalidDictionaryVersion", err)
	}
}

func TestReadHeaderRejectsTruncatedBuffer(t *testing.T) {
	_, _, err := readHeader(make([]byte, 10), 0)
	if !errs.Is(err, errs.InvalidDictionaryHeader) {
		t.Fatalf("err = %v, want errs.InvalidDictionaryHeader", err)
	}
}

func TestHasGrammar(t *testing.T) {
	cases := []struct {
		version Version
		want    bool
	}{
		{SystemDictV1, true},
		{SystemDictV2, true},
		{UserDictV1, false},
		{UserDictV2, true},
		{UserDictV3, true},
	}
	for _, c := range cases {
		h := Header{Version: c.version}
		if got := h.HasGrammar(); got != c.want {
			t.Errorf("Header{Version: %#x}.HasGrammar() = %v, want %v", uint64(c.version), got, c.want)
		}
	}
}
