package mediainfo

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLibraryNotFound is returned when libmediainfo cannot be loaded from
	// any candidate location.
	ErrLibraryNotFound = errors.New("mediainfo: native library not found")

	// ErrUnsupportedEncoding is returned when no probe mode yields a
	// recognizable Info_Version string.
	ErrUnsupportedEncoding = errors.New("mediainfo: unsupported MediaInfoLib encoding")

	// ErrReleased is returned by calls made after Close.
	ErrReleased = errors.New("mediainfo: session released")

	// ErrAllocFailed is returned when native memory for a string parameter
	// cannot be allocated.
	ErrAllocFailed = errors.New("mediainfo: native allocation failed")

	// ErrCreateFailed is returned when MediaInfo_New returns a null handle.
	ErrCreateFailed = errors.New("mediainfo: MediaInfo_New returned null handle")

	// ErrVersionUnsupported is returned when the loaded library does not
	// satisfy Config.MinVersion.
	ErrVersionUnsupported = errors.New("mediainfo: library version unsupported")
)

// ProbeAttempt records one step of encoding negotiation.
type ProbeAttempt struct {
	Mode   Mode
	Result string
}

// NegotiationError describes a failed encoding negotiation.
type NegotiationError struct {
	Attempts []ProbeAttempt
}

func (e *NegotiationError) Error() string {
	modes := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		modes[i] = a.Mode.String()
	}
	return fmt.Sprintf("%v (probed %s)", ErrUnsupportedEncoding, strings.Join(modes, ", "))
}

func (e *NegotiationError) Unwrap() error { return ErrUnsupportedEncoding }

// OpenError reports a failed MediaInfo_Open together with the raw status.
type OpenError struct {
	Path   string
	Status int
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("mediainfo: open %s: status %d", e.Path, e.Status)
}
