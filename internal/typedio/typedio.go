// Package typedio provides the byte-level typed reader shared by the
// legacy parsers: little-endian integer/float reads and length-prefixed
// single-byte-encoded strings, over an immutable in-memory buffer.
//
// It mirrors the shape of original_source/src/legacy/io_reader.rs's
// IoReader trait, reading fixed-width fields with encoding/binary the way
// meta/meta.go reads FLAC's big-endian metadata fields — same idiom,
// little-endian per the Guitar Pro wire format.
package typedio

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/gptab/gpxscore/errs"
)

// MaxStringSize is the defensive upper bound on a requested string length;
// anything larger almost certainly comes from a corrupt length prefix.
const MaxStringSize = 65536

// Options configures text decoding.
type Options struct {
	// Autodetect chooses among Windows-1251, Windows-1252, UTF-8, and
	// ISO-8859-7 using a lightweight statistical scorer instead of always
	// decoding as Windows-1252. Off by default, matching spec.md's
	// "baseline codepage is Windows-1252" default.
	Autodetect bool
}

// Reader is a cursor over a byte source with sequential little-endian
// reads. It tracks no per-bit state and is reused across an entire
// legacy parse.
type Reader struct {
	data []byte
	pos  int
	opts Options
}

// NewReader creates a typed reader over data.
func NewReader(data []byte, opts Options) *Reader {
	return &Reader{data: data, opts: opts}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int { return len(r.data) - r.pos }

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

func (r *Reader) need(n int) error {
	if n < 0 || r.pos+n > len(r.data) {
		return errs.NewIo("typedio", fmt.Errorf("need %d bytes at offset %d, have %d", n, r.pos, len(r.data)-r.pos))
	}
	return nil
}

func (r *Reader) take(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.take(n)
	return err
}

// ReadByte reads a single unsigned byte.
func (r *Reader) ReadByte() (uint8, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadSignedByte reads a single signed byte.
func (r *Reader) ReadSignedByte() (int8, error) {
	b, err := r.ReadByte()
	return int8(b), err
}

// ReadBool reads one byte; any non-zero value is true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	return b != 0, err
}

// ReadShort reads a little-endian 16-bit signed integer.
func (r *Reader) ReadShort() (int16, error) {
	b, err := r.take(2)
	if err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// ReadInt reads a little-endian 32-bit signed integer.
func (r *Reader) ReadInt() (int32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadFloat reads a little-endian 32-bit float.
func (r *Reader) ReadFloat() (float32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// ReadDouble reads a little-endian 64-bit float.
func (r *Reader) ReadDouble() (float64, error) {
	b, err := r.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// ReadByteSizedString reads one length byte L, then exactly size bytes,
// decoding the first L of them as text.
func (r *Reader) ReadByteSizedString(size int) (string, error) {
	l, err := r.ReadByte()
	if err != nil {
		return "", err
	}
	return r.readFixedString(size, int(l))
}

// ReadIntSizedString reads a 32-bit size, then decodes exactly that many
// bytes as text.
func (r *Reader) ReadIntSizedString() (string, error) {
	size, err := r.ReadInt()
	if err != nil {
		return "", err
	}
	if size < 0 {
		return "", errs.NewFormat("typedio.ReadIntSizedString", "negative string size %d", size)
	}
	return r.readFixedString(int(size), int(size))
}

// ReadIntByteSizedString reads a 32-bit size, computes L = size-1, and
// delegates to ReadByteSizedString(L).
func (r *Reader) ReadIntByteSizedString() (string, error) {
	size, err := r.ReadInt()
	if err != nil {
		return "", err
	}
	return r.ReadByteSizedString(int(size) - 1)
}

// readFixedString consumes exactly size bytes and decodes the first
// length of them as text. size is the number of bytes to always consume;
// length (<= size) truncates what is decoded, mirroring io_reader.rs's
// read_string(size, length).
func (r *Reader) readFixedString(size, length int) (string, error) {
	if size > MaxStringSize {
		return "", errs.NewFormat("typedio.readFixedString", "requested string size %d exceeds %d byte limit", size, MaxStringSize)
	}
	if size < 0 {
		size = 0
	}
	buf, err := r.take(size)
	if err != nil {
		return "", err
	}
	if length < 0 {
		length = 0
	}
	if length > size {
		length = size
	}
	return decodeText(buf[:length], r.opts)
}

// decodeText decodes buf under the configured codepage, falling back to
// Windows-1252 (the wire format's baseline) and replacing malformed bytes
// with the Unicode replacement character rather than failing.
func decodeText(buf []byte, opts Options) (string, error) {
	enc := charmap.Windows1252.NewDecoder()
	if opts.Autodetect {
		enc = detectEncoding(buf).NewDecoder()
	}
	out, err := enc.Bytes(buf)
	if err != nil {
		// Single-byte codepages over arbitrary bytes essentially never
		// fail to decode (every byte maps to some rune); this path only
		// triggers on the decoder's internal transform errors.
		return "", errs.NewStringEncoding("typedio.decodeText", err)
	}
	return string(out), nil
}

// detectEncoding runs a small statistical scorer over buf choosing among
// the codepages spec.md §4.4 names as optional autodetect candidates.
// There is no codepage-sniffing library in the retrieval pack (the usual
// ecosystem choice, a chardet binding, never appears in any of the
// example repos or other_examples/ files), so this heuristic is
// hand-written: valid-UTF-8 wins outright, otherwise score printable
// Cyrillic-range bytes against Windows-1251 and Greek-range bytes against
// ISO-8859-7, defaulting to Windows-1252.
func detectEncoding(buf []byte) encoding.Encoding {
	if len(buf) == 0 {
		return charmap.Windows1252
	}
	if hasMultiByteRune(buf) && utf8.Valid(buf) {
		return encoding.Nop
	}
	var cyrillic, greek int
	for _, b := range buf {
		switch {
		case b >= 0xC0 && b <= 0xFF:
			cyrillic++
		case b >= 0xB0 && b <= 0xFE:
			greek++
		}
	}
	switch {
	case cyrillic > len(buf)/2:
		return charmap.Windows1251
	case greek > len(buf)/2 && cyrillic == 0:
		return charmap.ISO8859_7
	default:
		return charmap.Windows1252
	}
}

func hasMultiByteRune(buf []byte) bool {
	for _, b := range buf {
		if b >= 0x80 {
			return true
		}
	}
	return false
}
