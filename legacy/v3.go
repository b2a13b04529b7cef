package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// readTripletFeel reads the single triplet-feel byte carried by v3 and
// v4 streams (absent on v5; spec.md §4.7).
func readTripletFeel(r *typedio.Reader) (TripletFeel, error) {
	b, err := r.ReadBool()
	if err != nil {
		return TripletFeelNone, newFormatf("legacy.readTripletFeel", "%v", err)
	}
	if b {
		return TripletFeelEighth, nil
	}
	return TripletFeelNone, nil
}

// readV3 decodes a v3.00 stream body, following SongInfo ->
// triplet-feel -> tempo/key -> channel bank -> measure/track counts ->
// measure headers -> tracks -> interleaved measures (spec.md §4.6).
func readV3(r *typedio.Reader) (*Song, error) {
	info, err := readSongInfo(r, false)
	if err != nil {
		return nil, err
	}
	tripletFeel, err := readTripletFeel(r)
	if err != nil {
		return nil, err
	}
	tempo, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV3: tempo", "%v", err)
	}
	key, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV3: key", "%v", err)
	}

	channels, err := readChannels(r)
	if err != nil {
		return nil, err
	}

	measureCount, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV3: measure count", "%v", err)
	}
	trackCount, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV3: track count", "%v", err)
	}

	headers, err := readMeasureHeaders(r, measureCount)
	if err != nil {
		return nil, err
	}

	tracks := make([]Track, trackCount)
	for i := range tracks {
		t, err := readTrack(r, channels)
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
		TripletFeel:    &tripletFeel,
		Tempo:          tempo,
		Key:            key,
		Channels:       channels,
		MeasureHeaders: headers,
		Tracks:         tracks,
	}, nil
}
