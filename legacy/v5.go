package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// rseEQBands is the number of per-band EQ bytes carried by a GP5 RSE
// master effect block. original_source/src/legacy/gp5_reader.rs names
// the field (readRSEInstrument) but stops short of an implementation;
// DESIGN.md lists this width under its remaining simplifications.
const rseEQBands = 10

// directionSlotCount is the number of fixed navigation-marker slots in
// a GP5 directions table (Coda, Segno, Fine, Da Capo, ...).
const directionSlotCount = 19

// readRSEMasterEffect reads the song-wide RSE block: a volume, a
// reserved word, and a fixed EQ band array with a trailing preset byte.
func readRSEMasterEffect(r *typedio.Reader) (*RSEMasterEffect, error) {
	volume, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readRSEMasterEffect: volume", "%v", err)
	}
	reserved, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readRSEMasterEffect: reserved", "%v", err)
	}
	eq := make([]int8, rseEQBands)
	for i := range eq {
		eq[i], err = r.ReadSignedByte()
		if err != nil {
			return nil, newFormatf("legacy.readRSEMasterEffect: eq band", "%v", err)
		}
	}
	preset, err := r.ReadSignedByte()
	if err != nil {
		return nil, newFormatf("legacy.readRSEMasterEffect: preset", "%v", err)
	}
	return &RSEMasterEffect{Volume: volume, Reserved: reserved, EQ: eq, EQPreset: preset}, nil
}

// readDirections reads the fixed-size table of navigation marker
// measure indices.
func readDirections(r *typedio.Reader) ([]int16, error) {
	directions := make([]int16, directionSlotCount)
	for i := range directions {
		v, err := r.ReadShort()
		if err != nil {
			return nil, newFormatf("legacy.readDirections", "%v", err)
		}
		directions[i] = v
	}
	return directions, nil
}

// readMasterReverb reads the song-wide reverb setting.
func readMasterReverb(r *typedio.Reader) (*MasterReverb, error) {
	v, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readMasterReverb", "%v", err)
	}
	return &MasterReverb{Value: v}, nil
}

// readV5 decodes a v5.00/v5.10 stream body, per
// original_source/src/legacy/gp5_reader.rs's documented (if
// unimplemented) field order: info -> lyrics -> RSE master effect ->
// tempo name/tempo/hide-tempo -> key/octave -> channel bank ->
// directions -> master reverb -> measure/track counts -> measure
// headers -> tracks -> interleaved measures. There is no triplet-feel
// header bit on v5 (spec.md §4.7).
func readV5(r *typedio.Reader, version Version) (*Song, error) {
	info, err := readSongInfoV5(r)
	if err != nil {
		return nil, err
	}
	lyrics, err := readLyrics(r)
	if err != nil {
		return nil, err
	}
	rse, err := readRSEMasterEffect(r)
	if err != nil {
		return nil, err
	}
	tempoName, err := r.ReadIntByteSizedString()
	if err != nil {
		return nil, newFormatf("legacy.readV5: tempo name", "%v", err)
	}
	tempo, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV5: tempo", "%v", err)
	}
	hideTempo, err := r.ReadBool()
	if err != nil {
		return nil, newFormatf("legacy.readV5: hide tempo", "%v", err)
	}
	key, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV5: key", "%v", err)
	}
	octave, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV5: octave", "%v", err)
	}

	channels, err := readChannels(r)
	if err != nil {
		return nil, err
	}

	directions, err := readDirections(r)
	if err != nil {
		return nil, err
	}

	reverb, err := readMasterReverb(r)
	if err != nil {
		return nil, err
	}

	measureCount, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV5: measure count", "%v", err)
	}
	trackCount, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV5: track count", "%v", err)
	}

	headers, err := readMeasureHeaders(r, measureCount)
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, trackCount)
	for i := range tracks {
		t, err := readTrackV5(r, channels)
		if err != nil {
			return nil, err
		}
		tracks[i] = t
	}

	if err := readAllTrackMeasures(r, tracks, headers); err != nil {
		return nil, err
	}

	return &Song{
		Info:           info,
		Lyrics:         lyrics,
		Tempo:          tempo,
		TempoName:      tempoName,
		HideTempo:      hideTempo,
		Key:            key,
		Octave:         octave,
		RSE:            rse,
		Directions:     directions,
		MasterReverb:   reverb,
		Channels:       channels,
		MeasureHeaders: headers,
		Tracks:         tracks,
	}, nil
}
