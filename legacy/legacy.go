// Package legacy decodes the legacy (pre-GPX) Guitar Pro stream format:
// a single binary stream whose leading version banner selects one of
// six on-disk layouts (v3.00, v4.00, v4.06, L4.06, v5.00, v5.10), all
// converging on the same Song model (song.go).
package legacy

import (
	"github.com/mewkiz/pkg/dbg"
	pkgerrors "github.com/pkg/errors"

	"github.com/gptab/gpxscore/internal/typedio"
)

// Read decodes a legacy stream into a Song, dispatching on the version
// banner at the start of data, and returns that version alongside it so
// a caller can tell which generation was parsed.
func Read(data []byte) (Version, *Song, error) {
	return ReadWithOptions(data, typedio.Options{})
}

// ReadWithOptions is Read with the text-decoding knobs (§2.3's
// Autodetect flag) threaded in explicitly, for callers that need
// anything other than the Windows-1252 baseline.
func ReadWithOptions(data []byte, opts typedio.Options) (Version, *Song, error) {
	r := typedio.NewReader(data, opts)
	version, err := readVersion(r)
	if err != nil {
		return VersionUnknown, nil, pkgerrors.Wrap(err, "legacy.Read")
	}
	dbg.Printf("legacy.Read: version %s\n", version)

	var song *Song
	switch {
	case version == V300:
		song, err = readV3(r)
	case version == V400 || version == V406 || version == L406:
		song, err = readV4(r)
	case version.IsV5():
		song, err = readV5(r, version)
	default:
		return VersionUnknown, nil, pkgerrors.Wrap(newFormatf("legacy.Read", "Unsupported version: %s", version), "legacy.Read")
	}
	if err != nil {
		return VersionUnknown, nil, pkgerrors.Wrap(err, "legacy.Read")
	}
	return version, song, nil
}
