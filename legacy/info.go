package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// readSongInfo reads the eight free-text header fields shared by every
// version, plus a notice block of int_byte_sized_string lines. The music
// field is only present on GP5 streams (spec.md §4.7); withMusic
// threads that decision in from the caller rather than branching on
// Version here, keeping this function version-agnostic. Without it,
// Music is left empty.
func readSongInfo(r *typedio.Reader, withMusic bool) (SongInfo, error) {
	var info SongInfo
	var err error
	if info.Title, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfo: title", "%v", err)
	}
	if info.Subtitle, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfo: subtitle", "%v", err)
	}
	if info.Artist, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfo: artist", "%v", err)
	}
	if info.Album, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfo: album", "%v", err)
	}
	if info.Words, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfo: words", "%v", err)
	}
	if withMusic {
		if info.Music, err = r.ReadIntByteSizedString(); err != nil {
			return info, newFormatf("legacy.readSongInfo: music", "%v", err)
		}
	}
	if info.Copyright, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfo: copyright", "%v", err)
	}
	if info.Tab, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfo: tab", "%v", err)
	}
	if info.Instructions, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfo: instructions", "%v", err)
	}

	noticeLines, err := r.ReadInt()
	if err != nil {
		return info, newFormatf("legacy.readSongInfo: notice count", "%v", err)
	}
	if noticeLines < 0 {
		return info, newFormatf("legacy.readSongInfo: notice count", "negative notice line count %d", noticeLines)
	}
	info.Notice = make([]string, 0, noticeLines)
	for i := int32(0); i < noticeLines; i++ {
		line, err := r.ReadIntByteSizedString()
		if err != nil {
			return info, newFormatf("legacy.readSongInfo: notice line", "%v", err)
		}
		info.Notice = append(info.Notice, line)
	}
	return info, nil
}

// readSongInfoV5 reads the nine GP5 free-text header fields followed by
// the same notice block readSongInfo reads for v3/v4. Unlike the v3/v4
// streams, GP5 always carries the music field on the wire
// (original_source/src/legacy/gp5_reader.rs's read_info,
// and gp_base.rs's doc comment: the info sequence "is followed by
// notice" regardless of version).
func readSongInfoV5(r *typedio.Reader) (SongInfo, error) {
	var info SongInfo
	var err error
	if info.Title, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfoV5: title", "%v", err)
	}
	if info.Subtitle, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfoV5: subtitle", "%v", err)
	}
	if info.Artist, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfoV5: artist", "%v", err)
	}
	if info.Album, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfoV5: album", "%v", err)
	}
	if info.Words, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfoV5: words", "%v", err)
	}
	if info.Music, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfoV5: music", "%v", err)
	}
	if info.Copyright, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfoV5: copyright", "%v", err)
	}
	if info.Tab, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfoV5: tab", "%v", err)
	}
	if info.Instructions, err = r.ReadIntByteSizedString(); err != nil {
		return info, newFormatf("legacy.readSongInfoV5: instructions", "%v", err)
	}

	noticeLines, err := r.ReadInt()
	if err != nil {
		return info, newFormatf("legacy.readSongInfoV5: notice count", "%v", err)
	}
	if noticeLines < 0 {
		return info, newFormatf("legacy.readSongInfoV5: notice count", "negative notice line count %d", noticeLines)
	}
	info.Notice = make([]string, 0, noticeLines)
	for i := int32(0); i < noticeLines; i++ {
		line, err := r.ReadIntByteSizedString()
		if err != nil {
			return info, newFormatf("legacy.readSongInfoV5: notice line", "%v", err)
		}
		info.Notice = append(info.Notice, line)
	}
	return info, nil
}

// readLyrics reads the GP4+ lyrics block: a track index, then exactly
// five {starting_measure, text} records (spec.md §4.7).
func readLyrics(r *typedio.Reader) (*Lyrics, error) {
	track, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readLyrics: track", "%v", err)
	}
	items := make([]LyricsItem, 0, 5)
	for i := 0; i < 5; i++ {
		startingMeasure, err := r.ReadInt()
		if err != nil {
			return nil, newFormatf("legacy.readLyrics: starting measure", "%v", err)
		}
		text, err := r.ReadIntSizedString()
		if err != nil {
			return nil, newFormatf("legacy.readLyrics: text", "%v", err)
		}
		items = append(items, LyricsItem{StartingMeasure: startingMeasure, Text: text})
	}
	return &Lyrics{Track: track, Items: items}, nil
}
