package dic

import (
	"encoding/binary"
	"testing"
)

func TestBytesToSliceReinterpretsUint32s(t *testing.T) {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint32(buf[0:4], 1)
	binary.LittleEndian.PutUint32(buf[4:8], 2)
	binary.LittleEndian.PutUint32(buf[8:12], 3)

	got := bytesToSlice[uint32](buf)
	if len(got) != 3 {
		t.Fatalf("len(got) = %d, want 3", len(got))
	}
	if got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("got = %v, want [1 2 3]", got)
	}
}

func TestBytesToSliceEmptyInput(t *testing.T) {
	if got := bytesToSlice[uint32](nil); got != nil {
		t.Errorf("bytesToSlice(nil) = %v, want nil", got)
	}
}
