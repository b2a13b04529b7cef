package bitio_test

import (
	"testing"

	"github.com/gptab/gpxscore/internal/bitio"
)

func TestReadBitMSBFirst(t *testing.T) {
	data := []byte{0xCA, 0xF0}
	want := []uint8{1, 1, 0, 0, 1, 0, 1, 0, 1, 1, 1, 1, 0, 0, 0, 0}
	r := bitio.NewReader(data)
	for i, w := range want {
		got, err := r.ReadBit()
		if err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
		if got != w {
			t.Fatalf("bit %d: got %d, want %d", i, got, w)
		}
	}
}

func TestReadBits(t *testing.T) {
	tests := []struct {
		n    uint8
		want uint64
	}{
		{8, 202},
		{7, 101},
	}
	for _, tc := range tests {
		r := bitio.NewReader([]byte{0xCA, 0xF0})
		got, err := r.ReadBits(tc.n)
		if err != nil {
			t.Fatalf("ReadBits(%d): %v", tc.n, err)
		}
		if got != tc.want {
			t.Errorf("ReadBits(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestReadBitsReversed(t *testing.T) {
	tests := []struct {
		n    uint8
		want uint64
	}{
		{8, 83},
		{7, 83},
	}
	for _, tc := range tests {
		r := bitio.NewReader([]byte{0xCA, 0xF0})
		got, err := r.ReadBitsReversed(tc.n)
		if err != nil {
			t.Fatalf("ReadBitsReversed(%d): %v", tc.n, err)
		}
		if got != tc.want {
			t.Errorf("ReadBitsReversed(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}

func TestReadBitsThenReversedContinuesCursor(t *testing.T) {
	// read_bits(2) consumes the top two bits of 0xCA (11), then
	// read_bits_reversed(6) must continue from bit 2, not restart.
	r := bitio.NewReader([]byte{0xCA, 0xF0})
	if _, err := r.ReadBits(2); err != nil {
		t.Fatal(err)
	}
	// remaining bits of 0xCA: 001010 -> reversed packing: bit0=0,bit1=0,
	// bit2=1,bit3=0,bit4=1,bit5=0 => 0b010100 = 20
	got, err := r.ReadBitsReversed(6)
	if err != nil {
		t.Fatal(err)
	}
	if got != 20 {
		t.Errorf("got %d, want 20", got)
	}
}

func TestReadByteExhaustion(t *testing.T) {
	r := bitio.NewReader([]byte{0xFF})
	if _, err := r.ReadByte(); err != nil {
		t.Fatalf("first byte: %v", err)
	}
	if _, err := r.ReadByte(); err == nil {
		t.Fatal("expected error reading past end of stream")
	}
}
