package mediainfo

import (
	"fmt"
	"strings"
)

// StreamKind selects the family of streams a query is scoped to.
type StreamKind int

const (
	StreamGeneral StreamKind = iota // Container-level information
	StreamVideo
	StreamAudio
	StreamText // Subtitles and captions
	StreamOther
	StreamImage
	StreamMenu // Chapters
	streamKindCount
)

// AllStreams as a stream number aggregates across every stream of a kind.
const AllStreams = -1

var streamKindNames = [streamKindCount]string{
	StreamGeneral: "General",
	StreamVideo:   "Video",
	StreamAudio:   "Audio",
	StreamText:    "Text",
	StreamOther:   "Other",
	StreamImage:   "Image",
	StreamMenu:    "Menu",
}

// StreamKinds lists every stream kind in native order.
func StreamKinds() []StreamKind {
	kinds := make([]StreamKind, 0, streamKindCount)
	for k := StreamGeneral; k < streamKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

func (k StreamKind) String() string {
	if k < 0 || k >= streamKindCount {
		return fmt.Sprintf("StreamKind(%d)", int(k))
	}
	return streamKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k StreamKind) MarshalText() ([]byte, error) {
	if k < 0 || k >= streamKindCount {
		return nil, fmt.Errorf("invalid stream kind %d", int(k))
	}
	return []byte(streamKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *StreamKind) UnmarshalText(text []byte) error {
	parsed, err := ParseStreamKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseStreamKind parses a stream kind name, case-insensitively.
func ParseStreamKind(name string) (StreamKind, error) {
	for k, n := range streamKindNames {
		if strings.EqualFold(n, name) {
			return StreamKind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown stream kind %q", name)
}

// InfoKind selects which facet of a parameter the library returns.
type InfoKind int

const (
	InfoName        InfoKind = iota // Parameter name
	InfoText                        // Value as text
	InfoMeasure                     // Unit of the value
	InfoOptions                     // See InfoOption
	InfoNameText                    // Translated name
	InfoMeasureText                 // Translated unit
	InfoInfo                        // Description of the parameter
	InfoHowTo                       // How the value is computed
	infoKindCount
)

var infoKindNames = [infoKindCount]string{
	InfoName:        "Name",
	InfoText:        "Text",
	InfoMeasure:     "Measure",
	InfoOptions:     "Options",
	InfoNameText:    "NameText",
	InfoMeasureText: "MeasureText",
	InfoInfo:        "Info",
	InfoHowTo:       "HowTo",
}

func (k InfoKind) String() string {
	if k < 0 || k >= infoKindCount {
		return fmt.Sprintf("InfoKind(%d)", int(k))
	}
	return infoKindNames[k]
}

// InfoOption indexes the characters of an InfoOptions result.
type InfoOption int

const (
	InfoOptionShowInInform InfoOption = iota
	InfoOptionSupport
	InfoOptionShowInSupported
	InfoOptionTypeOfValue
)

// FileOption is a bitmask accepted by the library's file-level options.
type FileOption int

const (
	FileOptionNothing     FileOption = 0x00
	FileOptionNoRecursive FileOption = 0x01
	FileOptionCloseAll    FileOption = 0x02
	FileOptionMax         FileOption = 0x04
)

// Has reports whether all bits of opt are set.
func (f FileOption) Has(opt FileOption) bool { return f&opt == opt }
