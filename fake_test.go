package mediainfo

import (
	"sort"
	"strings"
	"sync"
	"unsafe"
)

// fakeFile is the metadata a fake library reports for one path.
type fakeFile map[StreamKind][]map[string]string

// fakeMediaInfo stands in for libmediainfo. wide is the wchar_t layout of
// the wide entry points; EncodingUnknown makes them return nothing.
type fakeMediaInfo struct {
	version string
	wide    Encoding
	files   map[string]fakeFile

	mu         sync.Mutex
	nextHandle uintptr
	live       map[uintptr]string // handle -> open path
	deletes    map[uintptr]int
	calls      []string
	keep       [][]byte
	options    map[string]string
}

func newFakeMediaInfo(wide Encoding) *fakeMediaInfo {
	return &fakeMediaInfo{
		version: "MediaInfoLib - v21.09",
		wide:    wide,
		files:   map[string]fakeFile{},
		live:    map[uintptr]string{},
		deletes: map[uintptr]int{},
		options: map[string]string{},
	}
}

func (f *fakeMediaInfo) record(name string) {
	f.calls = append(f.calls, name)
}

func (f *fakeMediaInfo) callsNamed(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeMediaInfo) deleteCount(h uintptr) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deletes[h]
}

func (f *fakeMediaInfo) totalDeletes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.deletes {
		n += c
	}
	return n
}

func (f *fakeMediaInfo) codec(narrow bool) (textCodec, bool) {
	if narrow {
		c, _ := newTextCodec(modeANSI, nil)
		return c, true
	}
	if f.wide == EncodingUnknown {
		return textCodec{}, false
	}
	c, _ := newTextCodec(Mode{Encoding: f.wide}, nil)
	return c, true
}

// readArg decodes an argument the way the native side would: by its own
// unit width, regardless of what the caller encoded.
func (f *fakeMediaInfo) readArg(narrow bool, p uintptr) (string, bool) {
	c, ok := f.codec(narrow)
	if !ok {
		return "", false
	}
	if c.mode.Encoding == EncodingUTF32 {
		// The library itself is not bounded by the reader's scan cap.
		return c.decodeBytes(scanUnits(p, 4, 0)), true
	}
	return c.decode(p), true
}

// result returns library-owned memory holding s.
func (f *fakeMediaInfo) result(narrow bool, s string) uintptr {
	c, ok := f.codec(narrow)
	if !ok {
		return 0
	}
	b, err := c.encode(s)
	if err != nil {
		return 0
	}
	f.keep = append(f.keep, b)
	return uintptr(unsafe.Pointer(&b[0]))
}

func (f *fakeMediaInfo) stream(h uintptr, kind, number uintptr) map[string]string {
	file, ok := f.files[f.live[h]]
	if !ok {
		return nil
	}
	streams := file[StreamKind(kind)]
	if int(number) < 0 || int(number) >= len(streams) {
		return nil
	}
	return streams[int(number)]
}

func (f *fakeMediaInfo) openFn(narrow bool, name string) func(h, fileName uintptr) uintptr {
	return func(h, fileName uintptr) uintptr {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(name)
		path, ok := f.readArg(narrow, fileName)
		if !ok {
			return 0
		}
		if _, exists := f.files[path]; !exists {
			return 0
		}
		f.live[h] = path
		return 1
	}
}

func (f *fakeMediaInfo) getFn(narrow bool, name string) func(h, kind, number, param, info, search uintptr) uintptr {
	return func(h, kind, number, param, info, search uintptr) uintptr {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(name)
		key, ok := f.readArg(narrow, param)
		if !ok {
			return 0
		}
		fields := f.stream(h, kind, number)
		if fields == nil {
			return f.result(narrow, "")
		}
		switch InfoKind(info) {
		case InfoText:
			return f.result(narrow, fields[key])
		case InfoName:
			if _, ok := fields[key]; ok {
				return f.result(narrow, key)
			}
		}
		return f.result(narrow, "")
	}
}

func (f *fakeMediaInfo) getIFn(narrow bool, name string) func(h, kind, number, param, info uintptr) uintptr {
	return func(h, kind, number, param, info uintptr) uintptr {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(name)
		fields := f.stream(h, kind, number)
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if int(param) < 0 || int(param) >= len(keys) {
			return 0
		}
		if InfoKind(info) == InfoName {
			return f.result(narrow, keys[param])
		}
		return f.result(narrow, fields[keys[param]])
	}
}

func (f *fakeMediaInfo) optionFn(narrow bool, name string) func(h, option, value uintptr) uintptr {
	return func(h, option, value uintptr) uintptr {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.record(name)
		opt, ok := f.readArg(narrow, option)
		if !ok {
			return 0
		}
		val, _ := f.readArg(narrow, value)
		if strings.EqualFold(opt, versionOption) {
			return f.result(narrow, f.version)
		}
		f.options[opt] = val
		return f.result(narrow, "")
	}
}

func (f *fakeMediaInfo) lib() *nativeLib {
	return &nativeLib{
		name: "fake",
		newHandle: func() uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.record(symNew)
			f.nextHandle += 0x10
			f.live[f.nextHandle] = ""
			return f.nextHandle
		},
		deleteHandle: func(h uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.record(symDelete)
			f.deletes[h]++
			delete(f.live, h)
		},
		open:  f.openFn(false, symOpen),
		openA: f.openFn(true, symOpenA),
		close: func(h uintptr) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.record(symClose)
			f.live[h] = ""
		},
		get:     f.getFn(false, symGet),
		getA:    f.getFn(true, symGetA),
		getI:    f.getIFn(false, symGetI),
		getIA:   f.getIFn(true, symGetIA),
		option:  f.optionFn(false, symOption),
		optionA: f.optionFn(true, symOptionA),
		stateGet: func(h uintptr) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.record(symStateGet)
			if f.live[h] == "" {
				return 0
			}
			return 10000
		},
		countGet: func(h, kind, number uintptr) uintptr {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.record(symCountGet)
			file, ok := f.files[f.live[h]]
			if !ok {
				return 0
			}
			if int(number) == AllStreams {
				return uintptr(len(file[StreamKind(kind)]))
			}
			return uintptr(len(f.stream(h, kind, number)))
		},
	}
}

// countingAllocator tracks every allocation so tests can assert that each
// one is freed exactly once.
type countingAllocator struct {
	heap *heapAllocator

	mu      sync.Mutex
	allocs  int
	frees   int
	live    map[uintptr]int
	badFree int
}

func newCountingAllocator() *countingAllocator {
	return &countingAllocator{heap: newHeapAllocator(), live: map[uintptr]int{}}
}

func (a *countingAllocator) Alloc(size int) uintptr {
	p := a.heap.Alloc(size)
	a.mu.Lock()
	a.allocs++
	a.live[p] = size
	a.mu.Unlock()
	return p
}

func (a *countingAllocator) Free(p uintptr) {
	a.mu.Lock()
	if _, ok := a.live[p]; !ok {
		a.badFree++
	}
	delete(a.live, p)
	a.frees++
	a.mu.Unlock()
	a.heap.Free(p)
}

func (a *countingAllocator) stats() (allocs, frees, live, badFree int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocs, a.frees, len(a.live), a.badFree
}

// failingAllocator fails after n successful allocations.
type failingAllocator struct {
	*countingAllocator
	remaining int
}

func (a *failingAllocator) Alloc(size int) uintptr {
	if a.remaining <= 0 {
		return 0
	}
	a.remaining--
	return a.countingAllocator.Alloc(size)
}

func sampleFile() fakeFile {
	return fakeFile{
		StreamGeneral: {{"Format": "Matroska", "Duration": "1427000", "Title": "Épisode 1 – 日本"}},
		StreamVideo:   {{"Format": "AVC", "Width": "1920", "Height": "1080", "FrameRate": "23.976"}},
		StreamAudio: {
			{"Format": "AC-3", "Channels": "6", "Language": "en"},
			{"Format": "AAC", "Channels": "2", "Language": "ja"},
		},
		StreamText: {{"Format": "UTF-8", "Language": "", "Title": "Signs"}},
	}
}
