package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// readChannels reads the fixed 64-slot channel bank: each slot is an
// instrument int followed by six signed volume/pan/chorus/reverb/
// phaser/tremolo bytes and a 2-byte skip. A negative instrument number
// is clamped to 0 (spec.md §4.5).
func readChannels(r *typedio.Reader) ([64]Channel, error) {
	var channels [64]Channel
	for i := 0; i < 64; i++ {
		instrument, err := r.ReadInt()
		if err != nil {
			return channels, newFormatf("legacy.readChannels: instrument", "%v", err)
		}
		if instrument < 0 {
			instrument = 0
		}
		volume, err := r.ReadSignedByte()
		if err != nil {
			return channels, err
		}
		balance, err := r.ReadSignedByte()
		if err != nil {
			return channels, err
		}
		chorus, err := r.ReadSignedByte()
		if err != nil {
			return channels, err
		}
		reverb, err := r.ReadSignedByte()
		if err != nil {
			return channels, err
		}
		phaser, err := r.ReadSignedByte()
		if err != nil {
			return channels, err
		}
		tremolo, err := r.ReadSignedByte()
		if err != nil {
			return channels, err
		}
		if err := r.Skip(2); err != nil {
			return channels, err
		}
		channels[i] = Channel{
			Index:         i,
			EffectChannel: i,
			Instrument:    instrument,
			Volume:        volume,
			Balance:       balance,
			Chorus:        chorus,
			Reverb:        reverb,
			Phaser:        phaser,
			Tremolo:       tremolo,
		}
	}
	return channels, nil
}

// assignTrackChannel installs a track's 1-based channel/effect-channel
// pair, converting to 0-based indices, and forces IsPercussion whenever
// the resolved channel is the song's dedicated percussion slot (index %
// 16 == 9) regardless of what the track's own flag byte said. A
// percussion channel's effect channel is never rewritten from the wire
// (spec.md §3, §4.6 item 7): it keeps the identity mapping readChannels
// assigned it.
func assignTrackChannel(t *Track, channels [64]Channel, channel, effectChannel int32) {
	idx := int(channel) - 1
	if idx < 0 || idx >= len(channels) {
		idx = 0
	}
	t.ChannelIndex = idx

	if channels[idx].IsPercussion() {
		t.IsPercussion = true
		t.EffectChannel = channels[idx].EffectChannel
		return
	}

	effIdx := int(effectChannel) - 1
	if effIdx < 0 || effIdx >= len(channels) {
		effIdx = idx
	}
	t.EffectChannel = effIdx
}
