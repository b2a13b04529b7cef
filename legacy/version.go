package legacy

import (
	"strings"

	"github.com/gptab/gpxscore/internal/typedio"
)

// versionBannerSize is the fixed width of the leading version string
// field: a one-byte length followed by a 30-byte buffer (spec.md §4.1).
const versionBannerSize = 30

// readVersion reads the leading length-prefixed banner and resolves it
// to a known Version. An unrecognized banner is a FormatError, matching
// original_source's "Unsupported version: {0}" message.
func readVersion(r *typedio.Reader) (Version, error) {
	tag, err := r.ReadByteSizedString(versionBannerSize)
	if err != nil {
		return VersionUnknown, newFormatf("legacy.readVersion", "%v", err)
	}
	tag = strings.TrimRight(tag, "\x00")
	v, ok := versionTags[tag]
	if !ok {
		return VersionUnknown, newFormatf("legacy.readVersion", "Unsupported version: %s", tag)
	}
	return v, nil
}
