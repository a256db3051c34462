package mediainfo

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version returns the library's Info_Version string, for example
// "MediaInfoLib - v21.09".
func (mi *MediaInfo) Version() (string, error) {
	return mi.Option(versionOption, "")
}

// ParseLibraryVersion extracts the version number from an Info_Version
// string. "MediaInfoLib - v21.09" parses as 21.9.0.
func ParseLibraryVersion(info string) (*semver.Version, error) {
	s := strings.TrimSpace(strings.TrimPrefix(info, versionPrefix))
	s = strings.TrimSpace(strings.TrimPrefix(s, "-"))
	s = strings.TrimPrefix(s, "v")
	if s == "" {
		return nil, fmt.Errorf("mediainfo: no version in %q", info)
	}
	// MediaInfo uses zero-padded minors (21.09).
	segs := strings.Split(s, ".")
	for i, seg := range segs {
		if t := strings.TrimLeft(seg, "0"); t != "" {
			segs[i] = t
		} else if seg != "" {
			segs[i] = "0"
		}
	}
	v, err := semver.NewVersion(strings.Join(segs, "."))
	if err != nil {
		return nil, fmt.Errorf("mediainfo: parse version %q: %w", info, err)
	}
	return v, nil
}

// checkVersion runs during construction, before mu is shared.
func (mi *MediaInfo) checkVersion(constraint string) error {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("mediainfo: min version %q: %w", constraint, err)
	}
	info, err := mi.surface.setOption(versionOption, "")
	if err != nil {
		return err
	}
	v, err := ParseLibraryVersion(info)
	if err != nil {
		return err
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrVersionUnsupported, v, constraint)
	}
	return nil
}
