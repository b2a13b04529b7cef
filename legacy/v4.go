package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// readV4 decodes a v4.00/v4.06/L4.06 stream body. It is identical to
// readV3 except a Lyrics block is read immediately after SongInfo
// (spec.md §4.7).
func readV4(r *typedio.Reader) (*Song, error) {
	info, err := readSongInfo(r, false)
	if err != nil {
		return nil, err
	}
	lyrics, err := readLyrics(r)
	if err != nil {
		return nil, err
	}
	tripletFeel, err := readTripletFeel(r)
	if err != nil {
		return nil, err
	}
	tempo, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV4: tempo", "%v", err)
	}
	key, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV4: key", "%v", err)
	}

	channels, err := readChannels(r)
	if err != nil {
		return nil, err
	}

	measureCount, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV4: measure count", "%v", err)
	}
	trackCount, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readV4: track count", "%v", err)
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
		Lyrics:         lyrics,
		TripletFeel:    &tripletFeel,
		Tempo:          tempo,
		Key:            key,
		Channels:       channels,
		MeasureHeaders: headers,
		Tracks:         tracks,
	}, nil
}
