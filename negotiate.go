package mediainfo

import (
	"strings"

	"go.uber.org/zap"
)

const (
	versionOption = "Info_Version"
	versionPrefix = "MediaInfoLib"
)

// probeOrder is the sequence tried when the platform does not fix the
// encoding. The library does not report its wchar_t width; the only signal
// is whether Info_Version decodes to recognizable text.
var probeOrder = []Mode{modeUTF32Wide, modeUTF16Wide, modeANSI}

// pinnedMode returns the mode a platform guarantees, if any.
func pinnedMode(goos string) (Mode, bool) {
	if goos == "windows" {
		return modeUTF16Wide, true
	}
	return Mode{}, false
}

// probeFunc runs the Info_Version query under mode and returns the decoded
// text.
type probeFunc func(mode Mode) (string, error)

// negotiate picks the session mode. A forced mode replaces the probe order
// but must still be recognized; a platform-pinned mode is trusted as is.
func negotiate(goos string, forced Mode, probe probeFunc, log *zap.Logger) (Mode, error) {
	if forced.Encoding == EncodingUnknown {
		if mode, ok := pinnedMode(goos); ok {
			log.Debug("encoding pinned by platform", zap.String("goos", goos), zap.Stringer("mode", mode))
			return mode, nil
		}
	}

	order := probeOrder
	if forced.Encoding != EncodingUnknown {
		order = []Mode{forced}
	}

	attempts := make([]ProbeAttempt, 0, len(order))
	for _, mode := range order {
		text, err := probe(mode)
		if err != nil {
			return Mode{}, err
		}
		attempts = append(attempts, ProbeAttempt{Mode: mode, Result: text})
		if strings.HasPrefix(text, versionPrefix) {
			log.Debug("encoding negotiated", zap.Stringer("mode", mode), zap.String("version", text))
			return mode, nil
		}
		log.Debug("encoding probe rejected", zap.Stringer("mode", mode))
	}
	return Mode{}, &NegotiationError{Attempts: attempts}
}
