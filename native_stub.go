//go:build !cgo && !darwin && !linux

package mediainfo

import "fmt"

// Without CGO only darwin and linux can load the library (purego).
func loadNative(string) (*nativeLib, error) {
	return nil, fmt.Errorf("%w: build with CGO_ENABLED=1 on this platform", ErrLibraryNotFound)
}

func defaultAllocator() Allocator { return newHeapAllocator() }

// CHeapAllocator is unavailable without CGO on this platform.
func CHeapAllocator() (Allocator, error) {
	return nil, fmt.Errorf("%w: no C heap without CGO", ErrLibraryNotFound)
}
