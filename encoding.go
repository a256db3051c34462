package mediainfo

import (
	"encoding/binary"
	"fmt"
	"unsafe"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Encoding is the text encoding the library uses for string traffic.
type Encoding uint8

const (
	EncodingUnknown Encoding = iota
	EncodingUTF32            // 4-byte wchar_t, the usual Linux/macOS build
	EncodingUTF16            // 2-byte wchar_t, guaranteed on Windows
	EncodingANSI             // Single-byte platform code page
)

func (e Encoding) String() string {
	switch e {
	case EncodingUTF32:
		return "utf-32"
	case EncodingUTF16:
		return "utf-16"
	case EncodingANSI:
		return "ansi"
	default:
		return "unknown"
	}
}

// UnitSize returns the width in bytes of one code unit.
func (e Encoding) UnitSize() int {
	switch e {
	case EncodingUTF32:
		return 4
	case EncodingUTF16:
		return 2
	case EncodingANSI:
		return 1
	default:
		return 0
	}
}

// ParseEncoding parses the names produced by Encoding.String.
func ParseEncoding(name string) (Encoding, error) {
	switch name {
	case "utf-32", "utf32", "ucs-4":
		return EncodingUTF32, nil
	case "utf-16", "utf16", "ucs-2":
		return EncodingUTF16, nil
	case "ansi", "narrow":
		return EncodingANSI, nil
	}
	return EncodingUnknown, fmt.Errorf("unknown encoding %q", name)
}

// Mode is the negotiated string convention of a session.
type Mode struct {
	Encoding Encoding
	// Narrow selects the legacy "A"-suffixed entry points.
	Narrow bool
}

func (m Mode) String() string {
	if m.Narrow {
		return m.Encoding.String() + "/narrow"
	}
	return m.Encoding.String() + "/wide"
}

var (
	modeUTF32Wide = Mode{Encoding: EncodingUTF32}
	modeUTF16Wide = Mode{Encoding: EncodingUTF16}
	modeANSI      = Mode{Encoding: EncodingANSI, Narrow: true}
)

const (
	// paramPadBytes of zeros follow every outbound string so a reader
	// expecting a 4-byte terminator never runs past the buffer.
	paramPadBytes = 4

	// maxWideScanBytes bounds the terminator scan of a UTF-32 result.
	// Longer strings are truncated.
	maxWideScanBytes = 1024
)

var hostLittleEndian = binary.NativeEndian.Uint16([]byte{1, 0}) == 1

// textCodec converts strings for one Mode. It is immutable once built.
type textCodec struct {
	mode    Mode
	charset encoding.Encoding
}

func newTextCodec(mode Mode, narrow encoding.Encoding) (textCodec, error) {
	var cs encoding.Encoding
	switch mode.Encoding {
	case EncodingUTF32:
		if hostLittleEndian {
			cs = utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
		} else {
			cs = utf32.UTF32(utf32.BigEndian, utf32.IgnoreBOM)
		}
	case EncodingUTF16:
		if hostLittleEndian {
			cs = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
		} else {
			cs = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
		}
	case EncodingANSI:
		cs = narrow
		if cs == nil {
			cs = unicode.UTF8
		}
	default:
		return textCodec{}, fmt.Errorf("mediainfo: no codec for encoding %s", mode.Encoding)
	}
	return textCodec{mode: mode, charset: cs}, nil
}

// encode returns s in the native layout, zero pad included.
func (c textCodec) encode(s string) ([]byte, error) {
	enc := encoding.ReplaceUnsupported(c.charset.NewEncoder())
	b, err := enc.Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("mediainfo: encode %s: %w", c.mode.Encoding, err)
	}
	out := make([]byte, len(b)+paramPadBytes)
	copy(out, b)
	return out, nil
}

// decodeBytes decodes raw native bytes without a terminator.
func (c textCodec) decodeBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	out, err := c.charset.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(out)
}

// decode reads a NUL-terminated string at ptr. A null pointer yields "".
func (c textCodec) decode(ptr uintptr) string {
	if ptr == 0 {
		return ""
	}
	switch c.mode.Encoding {
	case EncodingUTF32:
		return c.decodeBytes(scanUTF32(ptr))
	case EncodingUTF16:
		return c.decodeBytes(scanUnits(ptr, 2, 0))
	default:
		return c.decodeBytes(scanUnits(ptr, 1, 0))
	}
}

// scanUTF32 copies 4-byte units up to the first zero unit, never reading
// beyond maxWideScanBytes.
func scanUTF32(ptr uintptr) []byte {
	return scanUnits(ptr, 4, maxWideScanBytes)
}

// scanUnits copies units of the given width from ptr until an all-zero unit.
// A positive limit caps the number of bytes examined.
func scanUnits(ptr uintptr, width, limit int) []byte {
	base := unsafe.Pointer(ptr)
	n := 0
	for limit <= 0 || n < limit {
		if isZeroUnit(unsafe.Slice((*byte)(unsafe.Add(base, n)), width)) {
			break
		}
		n += width
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(base), n))
	return out
}

func isZeroUnit(unit []byte) bool {
	for _, b := range unit {
		if b != 0 {
			return false
		}
	}
	return true
}
