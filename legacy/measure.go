package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// Measure header flag bits (spec.md §4.6 item 6).
const (
	flagNumerator         = 0x01
	flagDenominator       = 0x02
	flagRepeatOpen        = 0x04
	flagRepeatClose       = 0x08
	flagRepeatAlternative = 0x10
	flagMarker            = 0x20
	flagKeySignature      = 0x40
	flagDoubleBar         = 0x80
)

// decodeHeader decodes one measure header's variable fields from its
// flag byte, inheriting any field prev carries when the corresponding
// bit is absent. It is a pure function of (prev, priorHeaders, flags,
// the bytes r yields for the bits that are set): number and start are
// supplied by the caller, which owns the running tick cursor and header
// list. priorHeaders is every header already decoded, used only to
// resolve the repeat-alternative bit's backward scan; it is never
// mutated.
func decodeHeader(prev MeasureHeader, priorHeaders []MeasureHeader, number, start int, flags uint8, r *typedio.Reader) (MeasureHeader, error) {
	h := MeasureHeader{
		Number:        number,
		Start:         start,
		TimeSignature: prev.TimeSignature,
		KeySignature:  prev.KeySignature,
		TripletFeel:   prev.TripletFeel,
	}

	if flags&flagNumerator != 0 {
		n, err := r.ReadSignedByte()
		if err != nil {
			return h, newFormatf("legacy.decodeHeader: numerator", "%v", err)
		}
		h.TimeSignature.Numerator = n
	}
	if flags&flagDenominator != 0 {
		d, err := r.ReadSignedByte()
		if err != nil {
			return h, newFormatf("legacy.decodeHeader: denominator", "%v", err)
		}
		h.TimeSignature.Denominator = Duration{Value: decodeDurationValue(d), Tuplet: DefaultTuplet}
	}

	h.IsRepeatOpen = flags&flagRepeatOpen != 0

	if flags&flagRepeatClose != 0 {
		count, err := r.ReadSignedByte()
		if err != nil {
			return h, newFormatf("legacy.decodeHeader: repeat close count", "%v", err)
		}
		h.RepeatClose = true
		h.RealStart = int16(count)
	}

	if flags&flagRepeatAlternative != 0 {
		raw, err := r.ReadByte()
		if err != nil {
			return h, newFormatf("legacy.decodeHeader: repeat alternative", "%v", err)
		}
		var shifted uint8
		if raw > 0 {
			shifted = 1 << (raw - 1)
		}
		h.RepeatAlternative = shifted ^ accumulatedRepeatAlternative(priorHeaders)
	}

	if flags&flagMarker != 0 {
		title, err := r.ReadIntByteSizedString()
		if err != nil {
			return h, newFormatf("legacy.decodeHeader: marker title", "%v", err)
		}
		color, err := readColor(r)
		if err != nil {
			return h, err
		}
		h.Marker = &Marker{Title: title, Color: color}
	}

	if flags&flagKeySignature != 0 {
		root, err := r.ReadSignedByte()
		if err != nil {
			return h, newFormatf("legacy.decodeHeader: key root", "%v", err)
		}
		typ, err := r.ReadSignedByte()
		if err != nil {
			return h, newFormatf("legacy.decodeHeader: key type", "%v", err)
		}
		h.KeySignature = KeySignature{Root: root, Type: typ}
	} else if number > 1 {
		h.KeySignature = prev.KeySignature
	}

	h.HasDoubleBar = flags&flagDoubleBar != 0

	return h, nil
}

// accumulatedRepeatAlternative OR-accumulates RepeatAlternative over
// headers, scanning backward from the end until it reaches (inclusive)
// the most recently opened repeat, per spec.md §4.6's 0x10 rule. headers
// is read-only; the result folds into the new header's own value in
// decodeHeader, never back into headers themselves.
func accumulatedRepeatAlternative(headers []MeasureHeader) uint8 {
	var acc uint8
	for i := len(headers) - 1; i >= 0; i-- {
		acc |= headers[i].RepeatAlternative
		if headers[i].IsRepeatOpen {
			break
		}
	}
	return acc
}
