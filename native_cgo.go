//go:build cgo

// libmediainfo bindings linked at build time with CGO.

package mediainfo

/*
#cgo linux LDFLAGS: -lmediainfo
#cgo darwin LDFLAGS: -lmediainfo
#cgo windows LDFLAGS: -lmediainfo

#include <stddef.h>
#include <stdlib.h>

// Prototypes from MediaInfoDLL.h with enums and strings widened to
// pointer-sized values; the Go side owns the string encoding.
void*  MediaInfo_New(void);
void   MediaInfo_Delete(void* handle);
size_t MediaInfo_Open(void* handle, const void* fileName);
size_t MediaInfoA_Open(void* handle, const void* fileName);
void   MediaInfo_Close(void* handle);
const void* MediaInfo_Get(void* handle, size_t streamKind, size_t streamNumber, const void* parameter, size_t infoKind, size_t searchKind);
const void* MediaInfoA_Get(void* handle, size_t streamKind, size_t streamNumber, const void* parameter, size_t infoKind, size_t searchKind);
const void* MediaInfo_GetI(void* handle, size_t streamKind, size_t streamNumber, size_t parameter, size_t infoKind);
const void* MediaInfoA_GetI(void* handle, size_t streamKind, size_t streamNumber, size_t parameter, size_t infoKind);
const void* MediaInfo_Option(void* handle, const void* option, const void* value);
const void* MediaInfoA_Option(void* handle, const void* option, const void* value);
size_t MediaInfo_State_Get(void* handle);
size_t MediaInfo_Count_Get(void* handle, size_t streamKind, size_t streamNumber);
*/
import "C"

import (
	"sync"
	"unsafe"
)

var (
	cgoLibOnce sync.Once
	cgoLib     *nativeLib
)

// loadNative returns the linked library. The path is ignored: with CGO the
// library is resolved by the dynamic linker.
func loadNative(string) (*nativeLib, error) {
	cgoLibOnce.Do(func() {
		cgoLib = &nativeLib{
			name: "libmediainfo (cgo)",
			newHandle: func() uintptr {
				return uintptr(C.MediaInfo_New())
			},
			deleteHandle: func(h uintptr) {
				C.MediaInfo_Delete(ptr(h))
			},
			open: func(h, fileName uintptr) uintptr {
				return uintptr(C.MediaInfo_Open(ptr(h), ptr(fileName)))
			},
			openA: func(h, fileName uintptr) uintptr {
				return uintptr(C.MediaInfoA_Open(ptr(h), ptr(fileName)))
			},
			close: func(h uintptr) {
				C.MediaInfo_Close(ptr(h))
			},
			get: func(h, kind, number, param, info, search uintptr) uintptr {
				return uintptr(C.MediaInfo_Get(ptr(h), C.size_t(kind), C.size_t(number), ptr(param), C.size_t(info), C.size_t(search)))
			},
			getA: func(h, kind, number, param, info, search uintptr) uintptr {
				return uintptr(C.MediaInfoA_Get(ptr(h), C.size_t(kind), C.size_t(number), ptr(param), C.size_t(info), C.size_t(search)))
			},
			getI: func(h, kind, number, param, info uintptr) uintptr {
				return uintptr(C.MediaInfo_GetI(ptr(h), C.size_t(kind), C.size_t(number), C.size_t(param), C.size_t(info)))
			},
			getIA: func(h, kind, number, param, info uintptr) uintptr {
				return uintptr(C.MediaInfoA_GetI(ptr(h), C.size_t(kind), C.size_t(number), C.size_t(param), C.size_t(info)))
			},
			option: func(h, option, value uintptr) uintptr {
				return uintptr(C.MediaInfo_Option(ptr(h), ptr(option), ptr(value)))
			},
			optionA: func(h, option, value uintptr) uintptr {
				return uintptr(C.MediaInfoA_Option(ptr(h), ptr(option), ptr(value)))
			},
			stateGet: func(h uintptr) uintptr {
				return uintptr(C.MediaInfo_State_Get(ptr(h)))
			},
			countGet: func(h, kind, number uintptr) uintptr {
				return uintptr(C.MediaInfo_Count_Get(ptr(h), C.size_t(kind), C.size_t(number)))
			},
		}
	})
	return cgoLib, nil
}

// ptr converts a native address held as uintptr. The memory is C-owned.
func ptr(p uintptr) unsafe.Pointer {
	return unsafe.Pointer(p)
}

// cHeapAllocator allocates parameter buffers with C.malloc.
type cHeapAllocator struct{}

func (cHeapAllocator) Alloc(size int) uintptr { return uintptr(C.malloc(C.size_t(size))) }
func (cHeapAllocator) Free(p uintptr)         { C.free(ptr(p)) }

func defaultAllocator() Allocator { return cHeapAllocator{} }

// CHeapAllocator returns an Allocator backed by C.malloc/C.free.
func CHeapAllocator() (Allocator, error) { return cHeapAllocator{}, nil }
