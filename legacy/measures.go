package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// readMeasureHeaders reads the song-wide measure header list: a
// flags-prefixed header per measure, inheriting unset fields from its
// predecessor and back-scanning repeat-alternative markers across the
// open repeat they belong to.
func readMeasureHeaders(r *typedio.Reader, count int32) ([]MeasureHeader, error) {
	headers := make([]MeasureHeader, 0, count)
	start := 0
	var prev MeasureHeader
	prev.TimeSignature = DefaultTimeSignature
	for i := int32(0); i < count; i++ {
		flags, err := r.ReadByte()
		if err != nil {
			return nil, newFormatf("legacy.readMeasureHeaders: flags", "%v", err)
		}
		h, err := decodeHeader(prev, headers, int(i)+1, start, flags, r)
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
		start += h.TimeSignature.Len()
		prev = h
	}
	return headers, nil
}

// readOneMeasure reads a single track's content for a single measure
// header: a beat count followed by that many beats.
func readOneMeasure(r *typedio.Reader, track *Track) ([]Beat, error) {
	beatCount, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readOneMeasure: beat count", "%v", err)
	}
	if beatCount < 0 {
		return nil, newFormatf("legacy.readOneMeasure: beat count", "negative beat count %d", beatCount)
	}
	beats := make([]Beat, 0, beatCount)
	for i := int32(0); i < beatCount; i++ {
		beat, err := readBeat(r, track)
		if err != nil {
			return nil, err
		}
		beats = append(beats, beat)
	}
	return beats, nil
}

// readAllTrackMeasures reads the song body in its on-wire order: outer
// loop over measure headers, inner loop over tracks, matching the
// original interleaving where every track's bar N is read before any
// track's bar N+1.
func readAllTrackMeasures(r *typedio.Reader, tracks []Track, headers []MeasureHeader) error {
	for i := range tracks {
		tracks[i].Number = i + 1
		tracks[i].Measures = make([]Measure, 0, len(headers))
	}
	for hi := range headers {
		for ti := range tracks {
			beats, err := readOneMeasure(r, &tracks[ti])
			if err != nil {
				return err
			}
			tracks[ti].Measures = append(tracks[ti].Measures, Measure{HeaderIndex: hi, TrackIndex: tracks[ti].Number, Beats: beats})
		}
	}
	return nil
}
