// Package gpx decodes the GPX compound archive format: a BCFZ-compressed
// (or bare BCFS) sector-indexed virtual filesystem, yielding the named
// files embedded inside it (one of which holds the actual score data).
//
// The package structure follows meta/meta.go's NewBlock: a small
// dispatcher on a leading tag, delegating to one decoder per case.
package gpx

import (
	"github.com/mewkiz/pkg/dbg"
	pkgerrors "github.com/pkg/errors"

	"github.com/gptab/gpxscore/errs"
)

// FileType identifies the outer envelope of a GPX input.
type FileType uint8

// Recognized envelope types.
const (
	TypeUnknown FileType = iota
	TypeBCFS
	TypeBCFZ
)

func (t FileType) String() string {
	switch t {
	case TypeBCFS:
		return "BCFS"
	case TypeBCFZ:
		return "BCFZ"
	default:
		return "unknown"
	}
}

// CheckFileType inspects the first four bytes of data and reports which
// envelope, if any, they identify.
func CheckFileType(data []byte) FileType {
	if len(data) < 4 {
		return TypeUnknown
	}
	switch {
	case data[0] == 0x42 && data[1] == 0x43 && data[2] == 0x46 && data[3] == 0x53:
		return TypeBCFS
	case data[0] == 0x42 && data[1] == 0x43 && data[2] == 0x46 && data[3] == 0x5A:
		return TypeBCFZ
	default:
		return TypeUnknown
	}
}

// NamedFile is a single file extracted from a BCFS image.
type NamedFile struct {
	Name string
	Data []byte
}

// Read inspects data's outer magic and returns the named files embedded
// in the archive: a BCFZ envelope is decompressed first, and the result
// re-checked for the BCFS magic before extraction, matching the original
// gpx::read dispatch (a BCFZ stream that doesn't decompress to BCFS, or
// that nests another BCFZ inside, is a FormatError).
func Read(data []byte) ([]NamedFile, error) {
	dbg.Println("gpx.Read: reading archive")
	switch CheckFileType(data) {
	case TypeBCFZ:
		dbg.Println("gpx.Read: outer envelope is BCFZ")
		inner, err := DecompressBCFZ(data[4:])
		if err != nil {
			return nil, pkgerrors.Wrap(err, "gpx.Read")
		}
		switch CheckFileType(inner) {
		case TypeBCFS:
			dbg.Println("gpx.Read: decompressed BCFZ payload is BCFS")
			files, err := decompressBCFS(inner[4:])
			if err != nil {
				return nil, pkgerrors.Wrap(err, "gpx.Read")
			}
			return files, nil
		case TypeBCFZ:
			return nil, pkgerrors.Wrap(errs.NewFormat("gpx.Read", "BCFZ payload decompressed to another BCFZ envelope"), "gpx.Read")
		default:
			return nil, pkgerrors.Wrap(errs.NewFormat("gpx.Read", "BCFZ payload is not a BCFS image"), "gpx.Read")
		}
	case TypeBCFS:
		dbg.Println("gpx.Read: outer envelope is BCFS")
		files, err := decompressBCFS(data[4:])
		if err != nil {
			return nil, pkgerrors.Wrap(err, "gpx.Read")
		}
		return files, nil
	default:
		return nil, pkgerrors.Wrap(errs.NewFormat("gpx.Read", "unrecognized outer envelope; expected BCFS or BCFZ magic"), "gpx.Read")
	}
}

// DecompressBCFS extracts the named files embedded in a bare BCFS image.
// data must start immediately after the 4-byte BCFS magic.
func DecompressBCFS(data []byte) ([]NamedFile, error) {
	return decompressBCFS(data)
}
