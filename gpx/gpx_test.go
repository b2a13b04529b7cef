package gpx_test

import (
	"bytes"
	"testing"

	"github.com/gptab/gpxscore/gpx"
)

func TestCheckFileType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want gpx.FileType
	}{
		{"bcfs", []byte{0x42, 0x43, 0x46, 0x53}, gpx.TypeBCFS},
		{"bcfz", []byte{0x42, 0x43, 0x46, 0x5A}, gpx.TypeBCFZ},
		{"unknown", []byte{0xDE, 0xAD, 0xBE, 0xEF}, gpx.TypeUnknown},
		{"short", []byte{0x42, 0x43}, gpx.TypeUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := gpx.CheckFileType(tc.data); got != tc.want {
				t.Errorf("CheckFileType(%v) = %v, want %v", tc.data, got, tc.want)
			}
		})
	}
}

// buildLiteralBCFZ assembles a BCFZ stream (without the outer BCFZ magic)
// of n literal chunks, each emitting a single byte b. Each chunk is:
// marker bit 0, then a 2-bit reversed count of 1, then the byte b
// MSB-first.
func buildLiteralBCFZ(n int, b byte) []byte {
	var bits []uint8
	pushBits := func(value uint64, width int) {
		for i := 0; i < width; i++ {
			bits = append(bits, uint8((value>>(width-1-i))&1))
		}
	}
	pushBitsReversed := func(value uint64, width int) {
		for i := 0; i < width; i++ {
			bits = append(bits, uint8((value>>i)&1))
		}
	}
	for i := 0; i < n; i++ {
		bits = append(bits, 0) // literal marker
		pushBitsReversed(1, 2) // count = 1
		pushBits(uint64(b), 8) // literal byte, MSB-first
	}
	// Pack bits MSB-first into bytes.
	var out []byte
	var cur byte
	var filled int
	for _, bit := range bits {
		cur = cur<<1 | bit
		filled++
		if filled == 8 {
			out = append(out, cur)
			cur, filled = 0, 0
		}
	}
	if filled > 0 {
		cur <<= uint(8 - filled)
		out = append(out, cur)
	}
	lenHdr := []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
	return append(lenHdr, out...)
}

func TestDecompressBCFZLiteralOnly(t *testing.T) {
	stream := buildLiteralBCFZ(8, 0xAB)
	got, err := gpx.DecompressBCFZ(stream)
	if err != nil {
		t.Fatal(err)
	}
	want := bytes.Repeat([]byte{0xAB}, 8)
	if !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecompressBCFZLengthLaw(t *testing.T) {
	stream := buildLiteralBCFZ(3, 0x01)
	got, err := gpx.DecompressBCFZ(stream)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want 3", len(got))
	}
}

// buildSingleFileBCFS assembles a BCFS image (after the BCFS magic) with
// one directory sector at offset 0x1000, naming the file name, with a
// single data block holding 4096 bytes of fill.
func buildSingleFileBCFS(name string, fill byte) []byte {
	const sector = 0x1000
	data := make([]byte, sector*3) // dir sector at 0x1000, data block at 0x2000
	le32 := func(buf []byte, off int, v uint32) {
		buf[off] = byte(v)
		buf[off+1] = byte(v >> 8)
		buf[off+2] = byte(v >> 16)
		buf[off+3] = byte(v >> 24)
	}
	le32(data, sector+0x00, 2) // tag
	copy(data[sector+0x04:sector+0x04+127], []byte(name))
	le32(data, sector+0x8C, sector) // declared file size = 4096
	le32(data, sector+0x94, 2)      // block index 2 -> offset 0x2000
	le32(data, sector+0x98, 0)      // terminator
	for i := 0; i < sector; i++ {
		data[2*sector+i] = fill
	}
	return data
}

func TestDecompressBCFSSingleFile(t *testing.T) {
	data := buildSingleFileBCFS("score.gpif", 0xAA)
	files, err := gpx.DecompressBCFS(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}
	f := files[0]
	if f.Name != "score.gpif" {
		t.Errorf("name = %q, want %q", f.Name, "score.gpif")
	}
	if len(f.Data) != 0x1000 {
		t.Fatalf("data len = %d, want 4096", len(f.Data))
	}
	for _, b := range f.Data {
		if b != 0xAA {
			t.Fatal("data not all 0xAA")
		}
	}
}

func TestDecompressBCFSDropsOversizeDeclaration(t *testing.T) {
	data := buildSingleFileBCFS("x", 0x00)
	// Bump the declared file size past the single accumulated block.
	off := 0x1000 + 0x8C
	data[off], data[off+1], data[off+2], data[off+3] = 0x00, 0x20, 0x00, 0x00
	files, err := gpx.DecompressBCFS(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Fatalf("got %d files, want 0 (oversize declaration dropped)", len(files))
	}
}
