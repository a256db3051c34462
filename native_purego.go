//go:build (darwin || linux) && !cgo

// libmediainfo bindings loaded at runtime with purego.

package mediainfo

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/ebitengine/purego"
	"go.uber.org/zap"
)

var (
	nativeMu     sync.Mutex
	nativeLoaded = map[string]*nativeLib{}
)

// loadNative loads libmediainfo once per requested path. An empty path
// searches the default locations.
func loadNative(path string) (*nativeLib, error) {
	nativeMu.Lock()
	defer nativeMu.Unlock()

	if lib, ok := nativeLoaded[path]; ok {
		return lib, nil
	}
	lib, err := loadNativeLib(libraryPaths(path))
	if err != nil {
		return nil, err
	}
	nativeLoaded[path] = lib
	return lib, nil
}

func loadNativeLib(paths []string) (*nativeLib, error) {
	var lastErr error
	for _, path := range paths {
		handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			lastErr = err
			continue
		}
		lib, err := registerSymbols(handle, path)
		if err != nil {
			purego.Dlclose(handle)
			lastErr = err
			continue
		}
		Logger().Debug("loaded libmediainfo", zap.String("path", path))
		return lib, nil
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrLibraryNotFound, lastErr)
	}
	return nil, ErrLibraryNotFound
}

// registerSymbols binds every entry point. RegisterLibFunc panics on a
// missing symbol, so presence is checked with Dlsym first.
func registerSymbols(handle uintptr, path string) (*nativeLib, error) {
	lib := &nativeLib{name: filepath.Base(path)}
	symbols := []struct {
		fptr any
		name string
	}{
		{&lib.newHandle, symNew},
		{&lib.deleteHandle, symDelete},
		{&lib.open, symOpen},
		{&lib.openA, symOpenA},
		{&lib.close, symClose},
		{&lib.get, symGet},
		{&lib.getA, symGetA},
		{&lib.getI, symGetI},
		{&lib.getIA, symGetIA},
		{&lib.option, symOption},
		{&lib.optionA, symOptionA},
		{&lib.stateGet, symStateGet},
		{&lib.countGet, symCountGet},
	}
	for _, s := range symbols {
		if _, err := purego.Dlsym(handle, s.name); err != nil {
			return nil, fmt.Errorf("%s: missing symbol %s: %w", path, s.name, err)
		}
		purego.RegisterLibFunc(s.fptr, handle, s.name)
	}
	return lib, nil
}

func libraryPaths(explicit string) []string {
	var paths []string

	libName := "libmediainfo.so.0"
	if runtime.GOOS == "darwin" {
		libName = "libmediainfo.0.dylib"
	}

	if explicit != "" {
		paths = append(paths, explicit)
	}

	// Environment variable overrides
	if envPath := os.Getenv("MEDIAINFO_LIB_PATH"); envPath != "" {
		paths = append(paths, envPath)
	}
	if envDir := os.Getenv("MEDIAINFO_LIB_DIR"); envDir != "" {
		paths = append(paths, filepath.Join(envDir, libName))
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, libName),
			filepath.Join(exeDir, "..", "lib", libName),
		)
	}

	if root := findSourceRoot(); root != "" {
		paths = append(paths, filepath.Join(root, "build", libName))
	}
	if root := findModuleRoot(); root != "" {
		paths = append(paths, filepath.Join(root, "build", libName))
	}

	// System paths
	switch runtime.GOOS {
	case "darwin":
		paths = append(paths,
			libName,
			"libmediainfo.dylib",
			"/usr/local/lib/libmediainfo.dylib",
			"/opt/homebrew/lib/libmediainfo.dylib",
		)
	case "linux":
		paths = append(paths,
			libName,
			"libmediainfo.so",
			"/usr/lib/x86_64-linux-gnu/libmediainfo.so.0",
			"/usr/lib/aarch64-linux-gnu/libmediainfo.so.0",
			"/usr/local/lib/libmediainfo.so",
			"/usr/lib/libmediainfo.so",
		)
	}

	return paths
}

var (
	libcOnce   sync.Once
	libcErr    error
	libcMalloc func(size uintptr) uintptr
	libcFree   func(ptr uintptr)
)

func loadLibc() error {
	libcOnce.Do(func() {
		name := "libc.so.6"
		if runtime.GOOS == "darwin" {
			name = "/usr/lib/libSystem.B.dylib"
		}
		handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			libcErr = err
			return
		}
		purego.RegisterLibFunc(&libcMalloc, handle, "malloc")
		purego.RegisterLibFunc(&libcFree, handle, "free")
	})
	return libcErr
}

// cHeapAllocator allocates parameter buffers with libc malloc.
type cHeapAllocator struct{}

func (cHeapAllocator) Alloc(size int) uintptr { return libcMalloc(uintptr(size)) }
func (cHeapAllocator) Free(ptr uintptr)       { libcFree(ptr) }

func defaultAllocator() Allocator {
	if err := loadLibc(); err != nil {
		Logger().Debug("libc unavailable, using Go heap for parameters", zap.Error(err))
		return newHeapAllocator()
	}
	return cHeapAllocator{}
}

var errNoCHeap = errors.New("mediainfo: C heap unavailable")

// CHeapAllocator returns an Allocator backed by libc malloc/free.
func CHeapAllocator() (Allocator, error) {
	if err := loadLibc(); err != nil {
		return nil, fmt.Errorf("%w: %w", errNoCHeap, err)
	}
	return cHeapAllocator{}, nil
}
