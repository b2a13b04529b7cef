package legacy

import (
	"strings"
	"testing"

	"github.com/gptab/gpxscore/internal/typedio"
)

// intByteSizedString encodes s as an int_byte_sized_string: a 4-byte
// little-endian total N = len(s)+1, a length byte len(s), then len(s)
// content bytes (typedio.ReadIntByteSizedString / ReadByteSizedString).
func intByteSizedString(s string) []byte {
	n := len(s) + 1
	out := []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24), byte(len(s))}
	return append(out, []byte(s)...)
}

func TestReadVersionKnownBanner(t *testing.T) {
	banner := "FICHIER GUITAR PRO v4.06"
	padded := banner + strings.Repeat("\x00", versionBannerSize-len(banner))
	data := append([]byte{byte(versionBannerSize)}, []byte(padded)...)
	r := typedio.NewReader(data, typedio.Options{})
	v, err := readVersion(r)
	if err != nil {
		t.Fatal(err)
	}
	if v != V406 {
		t.Errorf("got %v, want V406", v)
	}
}

func TestReadVersionUnknownBanner(t *testing.T) {
	banner := "NOT A GUITAR PRO FILE"
	padded := banner + strings.Repeat("\x00", versionBannerSize-len(banner))
	data := append([]byte{byte(versionBannerSize)}, []byte(padded)...)
	r := typedio.NewReader(data, typedio.Options{})
	if _, err := readVersion(r); err == nil {
		t.Fatal("expected error for unrecognized version banner")
	}
}

func TestReadSongInfoAllEmpty(t *testing.T) {
	var data []byte
	for i := 0; i < 5; i++ {
		data = append(data, intByteSizedString("")...)
	}
	data = append(data, intByteSizedString("")...) // copyright
	data = append(data, intByteSizedString("")...) // tab
	data = append(data, intByteSizedString("")...) // instructions
	data = append(data, 0, 0, 0, 0)                // zero notice lines
	r := typedio.NewReader(data, typedio.Options{})
	info, err := readSongInfo(r, false)
	if err != nil {
		t.Fatal(err)
	}
	if info.Title != "" || info.Artist != "" || len(info.Notice) != 0 {
		t.Errorf("expected all-empty info, got %+v", info)
	}
}

func TestDecodeHeaderInheritsTimeSignatureReadsKey(t *testing.T) {
	prev := MeasureHeader{
		Number:        1,
		TimeSignature: TimeSignature{Numerator: 3, Denominator: Duration{Value: Quarter, Tuplet: DefaultTuplet}},
		KeySignature:  KeySignature{Root: 2, Type: 0},
	}
	// flags 0x60 = marker (0x20) + key signature (0x40); numerator and
	// denominator bits absent, so both inherit from prev.
	data := intByteSizedString("Chorus")
	data = append(data, 0x10, 0x20, 0x30) // marker color RGB
	data = append(data, 0xFF)             // marker reserved byte
	data = append(data, 3, 0)             // key signature root/type
	r := typedio.NewReader(data, typedio.Options{})
	h, err := decodeHeader(prev, nil, 2, 0, 0x60, r)
	if err != nil {
		t.Fatal(err)
	}
	if h.TimeSignature.Numerator != 3 {
		t.Errorf("numerator = %d, want inherited 3", h.TimeSignature.Numerator)
	}
	if h.Marker == nil || h.Marker.Title != "Chorus" {
		t.Errorf("marker = %+v, want Chorus", h.Marker)
	}
	if h.KeySignature.Root != 3 {
		t.Errorf("key root = %d, want 3 (read, not inherited, since flag was set)", h.KeySignature.Root)
	}
}

func TestDecodeTupletNumber(t *testing.T) {
	tuplet, err := decodeTupletNumber(5)
	if err != nil {
		t.Fatal(err)
	}
	if tuplet.Enters != 5 || tuplet.Times != 4 {
		t.Errorf("got %+v, want {5 4}", tuplet)
	}

	if _, err := decodeTupletNumber(13); err == nil {
		t.Fatal("expected error for unexpected tuplet number 13")
	}
}

func TestDurationTime(t *testing.T) {
	quarter := Duration{Value: Quarter, Tuplet: DefaultTuplet}
	if got := quarter.Time(); got != 960 {
		t.Errorf("quarter.Time() = %d, want 960", got)
	}

	dottedQuarter := Duration{Value: Quarter, IsDotted: true, Tuplet: DefaultTuplet}
	if got := dottedQuarter.Time(); got != 1440 {
		t.Errorf("dottedQuarter.Time() = %d, want 1440", got)
	}

	tripletEighth := Duration{Value: Eighth, Tuplet: Tuplet{Enters: 3, Times: 2}}
	if got := tripletEighth.Time(); got != 320 {
		t.Errorf("tripletEighth.Time() = %d, want 320", got)
	}
}

func TestReadChannelsClampsNegativeInstrument(t *testing.T) {
	var data []byte
	for i := 0; i < 64; i++ {
		data = append(data, 0xFF, 0xFF, 0xFF, 0xFF) // instrument = -1
		data = append(data, 0, 0, 0, 0, 0, 0)       // volume..tremolo
		data = append(data, 0, 0)                   // skip
	}
	r := typedio.NewReader(data, typedio.Options{})
	channels, err := readChannels(r)
	if err != nil {
		t.Fatal(err)
	}
	if channels[0].Instrument != 0 {
		t.Errorf("instrument = %d, want clamped to 0", channels[0].Instrument)
	}
	if !channels[9].IsPercussion() {
		t.Error("channel 9 should be the percussion slot")
	}
}
