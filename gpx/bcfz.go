package gpx

import (
	"encoding/binary"
	"errors"

	"github.com/mewkiz/pkg/dbg"

	"github.com/gptab/gpxscore/errs"
	"github.com/gptab/gpxscore/internal/bitio"
)

var errShortHeader = errors.New("BCFZ stream shorter than the 4-byte length header")

// DecompressBCFZ decompresses a BCFZ stream: data must start immediately
// after the 4-byte BCFZ magic, beginning with the 4-byte little-endian
// decompressed length, followed by a bit stream of marker-prefixed
// literal and back-reference chunks (spec.md §4.2).
func DecompressBCFZ(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errs.NewIo("gpx.DecompressBCFZ", errShortHeader)
	}
	wantLen := int(binary.LittleEndian.Uint32(data[:4]))
	if wantLen < 0 {
		return nil, errs.NewFormat("gpx.DecompressBCFZ", "negative decompressed length %d", wantLen)
	}
	dbg.Printf("gpx.DecompressBCFZ: expected decompressed length %d\n", wantLen)

	br := bitio.NewReader(data[4:])
	out := make([]byte, 0, wantLen)

	for len(out) < wantLen {
		marker, err := br.ReadBit()
		if err != nil {
			return nil, errs.NewIo("gpx.DecompressBCFZ: chunk marker", err)
		}
		switch marker {
		case 0:
			out, err = readLiteralChunk(br, out)
		case 1:
			out, err = readBackRefChunk(br, out)
		}
		if err != nil {
			return nil, err
		}
	}
	dbg.Printf("gpx.DecompressBCFZ: decompressed %d bytes\n", len(out))
	return out, nil
}

// readLiteralChunk reads a 2-bit reversed count k, then k full bytes
// MSB-first, appending them to out.
func readLiteralChunk(br *bitio.Reader, out []byte) ([]byte, error) {
	k, err := br.ReadBitsReversed(2)
	if err != nil {
		return nil, errs.NewIo("gpx.DecompressBCFZ: literal count", err)
	}
	for i := uint64(0); i < k; i++ {
		b, err := br.ReadByte()
		if err != nil {
			return nil, errs.NewIo("gpx.DecompressBCFZ: literal byte", err)
		}
		out = append(out, b)
	}
	return out, nil
}

// readBackRefChunk reads a 4-bit MSB-first word size, then offset and len
// as word_size-bit reversed values, and copies min(len, offset) bytes
// from out[len(out)-offset:] onto the tail of out. The copy can never
// self-overlap: we copy at most offset bytes, all of which precede the
// current tail.
func readBackRefChunk(br *bitio.Reader, out []byte) ([]byte, error) {
	wordSize, err := br.ReadBits(4)
	if err != nil {
		return nil, errs.NewIo("gpx.DecompressBCFZ: word size", err)
	}
	offset, err := br.ReadBitsReversed(uint8(wordSize))
	if err != nil {
		return nil, errs.NewIo("gpx.DecompressBCFZ: back-reference offset", err)
	}
	length, err := br.ReadBitsReversed(uint8(wordSize))
	if err != nil {
		return nil, errs.NewIo("gpx.DecompressBCFZ: back-reference length", err)
	}
	if offset == 0 || offset > uint64(len(out)) {
		return nil, errs.NewFormat("gpx.DecompressBCFZ: back-reference offset", "offset %d invalid for %d decoded bytes", offset, len(out))
	}
	toCopy := length
	if offset < toCopy {
		toCopy = offset
	}
	src := uint64(len(out)) - offset
	out = append(out, out[src:src+toCopy]...)
	return out, nil
}
