package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// Track flag bits (spec.md §4.6 item 8).
const (
	trackFlagDrums   = 0x01
	trackFlagTwelve  = 0x02
	trackFlagBanjo   = 0x04
)

// readTrack reads one track header: flags, a 40-byte name, the
// string/tuning table (7 slots on the wire, truncated to the declared
// string count), port, the 1-based channel/effect-channel pair, fret
// count, capo offset, and a display color.
func readTrack(r *typedio.Reader, channels [64]Channel) (Track, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return Track{}, newFormatf("legacy.readTrack: flags", "%v", err)
	}
	name, err := r.ReadByteSizedString(40)
	if err != nil {
		return Track{}, newFormatf("legacy.readTrack: name", "%v", err)
	}
	stringCount, err := r.ReadInt()
	if err != nil {
		return Track{}, newFormatf("legacy.readTrack: string count", "%v", err)
	}
	if stringCount < 0 || stringCount > 7 {
		return Track{}, newFormatf("legacy.readTrack: string count", "unexpected string count %d", stringCount)
	}
	tunings := make([]int32, 7)
	for i := range tunings {
		tunings[i], err = r.ReadInt()
		if err != nil {
			return Track{}, newFormatf("legacy.readTrack: tuning", "%v", err)
		}
	}
	strings := make([]GuitarString, 0, stringCount)
	for i := 0; i < int(stringCount); i++ {
		strings = append(strings, GuitarString{Number: i + 1, Tuning: tunings[i]})
	}

	port, err := r.ReadInt()
	if err != nil {
		return Track{}, newFormatf("legacy.readTrack: port", "%v", err)
	}
	channel, err := r.ReadInt()
	if err != nil {
		return Track{}, newFormatf("legacy.readTrack: channel", "%v", err)
	}
	effectChannel, err := r.ReadInt()
	if err != nil {
		return Track{}, newFormatf("legacy.readTrack: effect channel", "%v", err)
	}
	fretCount, err := r.ReadInt()
	if err != nil {
		return Track{}, newFormatf("legacy.readTrack: fret count", "%v", err)
	}
	capo, err := r.ReadInt()
	if err != nil {
		return Track{}, newFormatf("legacy.readTrack: capo", "%v", err)
	}
	color, err := readColor(r)
	if err != nil {
		return Track{}, err
	}

	t := Track{
		IsPercussion: flags&trackFlagDrums != 0,
		Is12String:   flags&trackFlagTwelve != 0,
		IsBanjo:      flags&trackFlagBanjo != 0,
		Name:         name,
		Strings:      strings,
		Port:         port,
		FretCount:    fretCount,
		CapoOffset:   capo,
		Color:        color,
	}
	assignTrackChannel(&t, channels, channel, effectChannel)
	return t, nil
}

// trackRSEReservedBytes is the width of the per-track RSE sound-bank
// block GP5 appends after the fields readTrack already covers. Its
// internal layout isn't needed by anything SPEC_FULL.md names, so it is
// skipped rather than decomposed (DESIGN.md, remaining simplifications).
const trackRSEReservedBytes = 45

// readTrackV5 reads a GP5 track header: the shared v3/v4 layout plus a
// trailing RSE sound-bank block.
func readTrackV5(r *typedio.Reader, channels [64]Channel) (Track, error) {
	t, err := readTrack(r, channels)
	if err != nil {
		return Track{}, err
	}
	if err := r.Skip(trackRSEReservedBytes); err != nil {
		return Track{}, newFormatf("legacy.readTrackV5: rse reserved", "%v", err)
	}
	return t, nil
}
