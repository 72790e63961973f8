package dic

import (
	"reflect"
	"unsafe"
)

// bytesToSlice reinterprets a byte slice as a slice of T in place,
// without copying — the zero-copy reinterpretation pattern used to view
// mmap'd dictionary bytes as structured data.
func bytesToSlice[T any](b []byte) []T {
	if len(b) == 0 {
		return nil
	}
	var t T
	size := int(unsafe.Sizeof(t))
	header := reflect.SliceHeader{Data: uintptr(unsafe.Pointer(&b[0])), Len: len(b) / size, Cap: len(b) / size}
	return *(*[]T)(unsafe.Pointer(&header))
}
