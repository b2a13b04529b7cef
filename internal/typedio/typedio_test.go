package typedio_test

import (
	"testing"

	"github.com/gptab/gpxscore/internal/typedio"
)

func TestReadIntByteSizedStringEmpty(t *testing.T) {
	// size=1 (int), then byte-sized string of size L=size-1=0: one length
	// byte 0x00, and zero payload bytes.
	data := []byte{0x01, 0x00, 0x00, 0x00, 0x00}
	r := typedio.NewReader(data, typedio.Options{})
	s, err := r.ReadIntByteSizedString()
	if err != nil {
		t.Fatal(err)
	}
	if s != "" {
		t.Errorf("got %q, want empty string", s)
	}
}

func TestReadIntByteSizedStringValue(t *testing.T) {
	// size = 4 (3 payload bytes + 1), length byte = 3, payload "abc".
	data := []byte{0x04, 0x00, 0x00, 0x00, 0x03, 'a', 'b', 'c'}
	r := typedio.NewReader(data, typedio.Options{})
	s, err := r.ReadIntByteSizedString()
	if err != nil {
		t.Fatal(err)
	}
	if s != "abc" {
		t.Errorf("got %q, want %q", s, "abc")
	}
}

func TestReadIntLittleEndian(t *testing.T) {
	data := []byte{0x2C, 0x01, 0x00, 0x00} // 300
	r := typedio.NewReader(data, typedio.Options{})
	v, err := r.ReadInt()
	if err != nil {
		t.Fatal(err)
	}
	if v != 300 {
		t.Errorf("got %d, want 300", v)
	}
}

func TestReadOversizeStringRejected(t *testing.T) {
	data := make([]byte, 4)
	data[0], data[1], data[2], data[3] = 0xFF, 0xFF, 0xFF, 0x7F
	r := typedio.NewReader(data, typedio.Options{})
	if _, err := r.ReadIntSizedString(); err == nil {
		t.Fatal("expected FormatError for oversize string")
	}
}

func TestSkipAndByte(t *testing.T) {
	data := []byte{0x01, 0x02, 0x03}
	r := typedio.NewReader(data, typedio.Options{})
	if err := r.Skip(2); err != nil {
		t.Fatal(err)
	}
	b, err := r.ReadByte()
	if err != nil {
		t.Fatal(err)
	}
	if b != 0x03 {
		t.Errorf("got %#x, want 0x03", b)
	}
}

func TestReadSignedByte(t *testing.T) {
	data := []byte{0xFF}
	r := typedio.NewReader(data, typedio.Options{})
	v, err := r.ReadSignedByte()
	if err != nil {
		t.Fatal(err)
	}
	if v != -1 {
		t.Errorf("got %d, want -1", v)
	}
}
