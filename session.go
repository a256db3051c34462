package mediainfo

import (
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Config configures a session. The zero value loads libmediainfo from the
// default locations and negotiates the encoding.
type Config struct {
	// LibraryPath is tried before the default locations. Ignored under cgo.
	LibraryPath string

	// Encoding forces a mode instead of probing. The forced mode must still
	// return a recognizable Info_Version.
	Encoding Mode

	// NarrowCharset decodes and encodes text for the narrow entry points.
	// Defaults to UTF-8.
	NarrowCharset encoding.Encoding

	// Allocator backs outbound string parameters. Defaults to the C heap.
	Allocator Allocator

	// MinVersion is a semver constraint (for example ">= 18.0") the
	// library version must satisfy.
	MinVersion string

	Logger  *zap.Logger
	Metrics *Metrics
}

// MediaInfo is a session against libmediainfo. It owns one native handle.
//
// A session must have one logical owner. Calls are serialized but are
// blocking foreign calls that cannot be interrupted; a hung library blocks
// the caller.
type MediaInfo struct {
	mu      sync.Mutex
	lib     *nativeLib
	handle  uintptr
	mode    Mode
	surface callSurface
	logger  *zap.Logger
	metrics *Metrics
}

// New loads the native library, creates a handle and negotiates the
// encoding. A session is returned only if negotiation succeeded.
func New(config Config) (*MediaInfo, error) {
	lib, err := loadNative(config.LibraryPath)
	if err != nil {
		return nil, err
	}
	return newSession(lib, config, runtime.GOOS)
}

func newSession(lib *nativeLib, config Config, goos string) (*MediaInfo, error) {
	log := config.Logger
	if log == nil {
		log = Logger()
	}
	alloc := config.Allocator
	if alloc == nil {
		alloc = defaultAllocator()
	}

	handle := lib.newHandle()
	if handle == 0 {
		return nil, ErrCreateFailed
	}
	config.Metrics.sessionOpened()

	mi := &MediaInfo{
		lib:     lib,
		handle:  handle,
		logger:  log.With(zap.String("lib", lib.name)),
		metrics: config.Metrics,
	}

	probe := func(mode Mode) (string, error) {
		surface, err := mi.bind(mode, config.NarrowCharset, alloc)
		if err != nil {
			return "", err
		}
		return surface.setOption(versionOption, "")
	}
	mode, err := negotiate(goos, config.Encoding, probe, mi.logger)
	if err != nil {
		config.Metrics.negotiated("unsupported")
		mi.release(false)
		return nil, err
	}
	config.Metrics.negotiated(mode.String())

	surface, err := mi.bind(mode, config.NarrowCharset, alloc)
	if err != nil {
		mi.release(false)
		return nil, err
	}
	mi.mode = mode
	mi.surface = surface

	if config.MinVersion != "" {
		if err := mi.checkVersion(config.MinVersion); err != nil {
			mi.release(false)
			return nil, err
		}
	}

	runtime.SetFinalizer(mi, (*MediaInfo).finalize)
	return mi, nil
}

func (mi *MediaInfo) bind(mode Mode, narrow encoding.Encoding, alloc Allocator) (callSurface, error) {
	codec, err := newTextCodec(mode, narrow)
	if err != nil {
		return callSurface{}, err
	}
	return callSurface{
		lib:     mi.lib,
		handle:  mi.handle,
		calls:   selectEntryPoints(mi.lib, mode),
		marshal: marshaler{codec: codec, alloc: alloc, metrics: mi.metrics},
		metrics: mi.metrics,
	}, nil
}

// Mode returns the negotiated encoding mode.
func (mi *MediaInfo) Mode() Mode {
	return mi.mode
}

// Open opens a file and returns the native status unchanged; 0 means the
// library could not open it. The error is set only when the session is
// released or the path cannot be marshaled.
func (mi *MediaInfo) Open(path string) (int, error) {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if mi.handle == 0 {
		return 0, ErrReleased
	}
	status, err := mi.surface.openFile(path)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	if status == 0 {
		mi.metrics.openFailed()
		mi.logger.Debug("open failed", zap.String("path", path))
	}
	return status, nil
}

// CloseFile releases the per-file state of the last Open. The handle stays
// usable.
func (mi *MediaInfo) CloseFile() error {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if mi.handle == 0 {
		return ErrReleased
	}
	mi.metrics.nativeCall("close", "common")
	mi.lib.close(mi.handle)
	return nil
}

// Get returns the text of a named parameter. Missing and empty parameters
// both yield "".
func (mi *MediaInfo) Get(kind StreamKind, number int, parameter string) (string, error) {
	return mi.GetInfo(kind, number, parameter, InfoText, InfoName)
}

// GetInfo returns one facet of a named parameter, looked up by search.
func (mi *MediaInfo) GetInfo(kind StreamKind, number int, parameter string, info, search InfoKind) (string, error) {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if mi.handle == 0 {
		return "", ErrReleased
	}
	return mi.surface.getByName(kind, number, parameter, info, search)
}

// GetI returns one facet of a parameter addressed by index. Unsupported
// indexes yield "".
func (mi *MediaInfo) GetI(kind StreamKind, number, parameter int, info InfoKind) (string, error) {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if mi.handle == 0 {
		return "", ErrReleased
	}
	return mi.surface.getByIndex(kind, number, parameter, info), nil
}

// Option sets or queries a library option and returns its answer.
func (mi *MediaInfo) Option(option, value string) (string, error) {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if mi.handle == 0 {
		return "", ErrReleased
	}
	return mi.surface.setOption(option, value)
}

// State returns the library's parsing state.
func (mi *MediaInfo) State() (int, error) {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if mi.handle == 0 {
		return 0, ErrReleased
	}
	return mi.surface.state(), nil
}

// Count returns the number of streams of a kind, or with a stream number,
// the number of parameters of that stream.
func (mi *MediaInfo) Count(kind StreamKind, number int) (int, error) {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if mi.handle == 0 {
		return 0, ErrReleased
	}
	return mi.surface.count(kind, number), nil
}

// StreamCount returns the number of streams of a kind.
func (mi *MediaInfo) StreamCount(kind StreamKind) (int, error) {
	return mi.Count(kind, AllStreams)
}

// Close destroys the native handle. Further calls return ErrReleased;
// calling Close again is a no-op.
func (mi *MediaInfo) Close() error {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if mi.handle == 0 {
		return nil
	}
	runtime.SetFinalizer(mi, nil)
	mi.release(false)
	return nil
}

func (mi *MediaInfo) finalize() {
	mi.mu.Lock()
	defer mi.mu.Unlock()

	if mi.handle == 0 {
		return
	}
	mi.logger.Warn("mediainfo session was not closed; releasing from finalizer")
	mi.release(true)
}

// release deletes the handle. Callers hold mu or own mi exclusively.
func (mi *MediaInfo) release(byFinalizer bool) {
	mi.metrics.nativeCall("delete", "common")
	mi.lib.deleteHandle(mi.handle)
	mi.handle = 0
	mi.surface = callSurface{}
	mi.metrics.sessionReleased(byFinalizer)
	mi.logger.Debug("handle released", zap.Bool("finalizer", byFinalizer))
}
