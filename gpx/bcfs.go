package gpx

import (
	"encoding/binary"

	"github.com/mewkiz/pkg/dbg"
	"golang.org/x/text/encoding/charmap"

	"github.com/gptab/gpxscore/errs"
)

// sectorSize is the fixed size of a BCFS logical sector (spec.md §3).
const sectorSize = 0x1000

const (
	dirTagOffset      = 0x00
	dirNameOffset     = 0x04
	dirNameMaxLen     = 127
	dirFileSizeOffset = 0x8C
	dirBlockOffset    = 0x94
)

// decompressBCFS walks sectors in data (which starts immediately after
// the BCFS magic) looking for directory sectors, and for each one walks
// its block table to assemble the named file it describes. Declared file
// sizes that exceed the accumulated block data are dropped rather than
// treated as fatal, per spec.md §4.3 step 6.
func decompressBCFS(data []byte) ([]NamedFile, error) {
	var files []NamedFile
	dataLen := len(data)

	for offset := sectorSize; offset+4 <= dataLen; offset += sectorSize {
		tag := int32(binary.LittleEndian.Uint32(data[offset : offset+4]))
		if tag != 2 {
			continue
		}
		dbg.Printf("gpx.decompressBCFS: directory sector at offset 0x%x\n", offset)

		name, err := readSectorName(data, offset)
		if err != nil {
			return nil, err
		}

		fileSizeOff := offset + dirFileSizeOffset
		if fileSizeOff+4 > dataLen {
			return nil, errs.NewFormat("gpx.decompressBCFS", "sector at 0x%x: file size field out of range", offset)
		}
		fileSize := int32(binary.LittleEndian.Uint32(data[fileSizeOff : fileSizeOff+4]))
		if fileSize < 0 {
			return nil, errs.NewFormat("gpx.decompressBCFS", "sector at 0x%x: negative declared file size %d", offset, fileSize)
		}

		fileData, err := readBlockTable(data, offset)
		if err != nil {
			return nil, err
		}

		if int(fileSize) <= len(fileData) {
			files = append(files, NamedFile{Name: name, Data: fileData[:fileSize]})
		} else {
			dbg.Printf("gpx.decompressBCFS: dropping %q: declared size %d exceeds %d accumulated bytes\n", name, fileSize, len(fileData))
		}
	}
	return files, nil
}

// readSectorName decodes the NUL-padded filename stored at
// offset+dirNameOffset, trimmed of trailing NULs.
func readSectorName(data []byte, offset int) (string, error) {
	start := offset + dirNameOffset
	end := start + dirNameMaxLen
	if end > len(data) {
		return "", errs.NewFormat("gpx.decompressBCFS", "sector at 0x%x: filename field out of range", offset)
	}
	raw := data[start:end]
	n := len(raw)
	for n > 0 && raw[n-1] == 0 {
		n--
	}
	name, err := charmap.Windows1252.NewDecoder().Bytes(raw[:n])
	if err != nil {
		return "", errs.NewStringEncoding("gpx.decompressBCFS: filename", err)
	}
	return string(name), nil
}

// readBlockTable walks the 32-bit little-endian sector index array at
// offset+dirBlockOffset, terminated by a zero word, appending a full
// sector's worth of bytes per non-zero index to the returned buffer. An
// out-of-range sector index is a FormatError; the growing buffer is
// bounded by the number of block-table entries actually present, which
// prevents pathological growth from a malformed table.
func readBlockTable(data []byte, offset int) ([]byte, error) {
	var out []byte
	dataLen := len(data)
	for i := 0; ; i++ {
		idxOff := offset + dirBlockOffset + 4*i
		if idxOff+4 > dataLen {
			return nil, errs.NewFormat("gpx.decompressBCFS", "sector at 0x%x: block table runs past end of data", offset)
		}
		block := int32(binary.LittleEndian.Uint32(data[idxOff : idxOff+4]))
		if block == 0 {
			break
		}
		if block < 0 {
			return nil, errs.NewFormat("gpx.decompressBCFS", "sector at 0x%x: negative block index %d", offset, block)
		}
		blockOff := int(block) * sectorSize
		if blockOff+sectorSize > dataLen {
			return nil, errs.NewFormat("gpx.decompressBCFS", "sector at 0x%x: block index %d out of range", offset, block)
		}
		out = append(out, data[blockOff:blockOff+sectorSize]...)
	}
	return out, nil
}
