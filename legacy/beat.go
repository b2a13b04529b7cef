package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// BeatStatus reports whether a beat is an actual note event, a rest, or
// an empty placeholder.
type BeatStatus int

// Beat statuses.
const (
	BeatEmpty BeatStatus = iota
	BeatNormal
	BeatRest
)

// VoiceDirection is a stroke/brush direction.
type VoiceDirection int

// Stroke directions.
const (
	VoiceDirectionNone VoiceDirection = iota
	VoiceDirectionUp
	VoiceDirectionDown
)

// BeatStroke is a strum/brush applied across a beat's notes.
type BeatStroke struct {
	Up   VoiceDirection
	Down VoiceDirection
}

// SlapEffect is a percussive slap/pop/tap applied to a beat.
type SlapEffect int

// Slap effect values.
const (
	SlapEffectNone SlapEffect = iota
	SlapEffectTapping
	SlapEffectSlapping
	SlapEffectPopping
)

// BeatDisplay carries rendering hints that don't affect musical content.
type BeatDisplay struct {
	Breaksecondary      bool
	ForceBeam           bool
	ForceBracket        bool
	Octave              Octave
}

// Octave is an ottava display shift.
type Octave int

// Octave shift values.
const (
	OctaveNone Octave = iota
	OctaveOttava
	OctaveQuindicesima
	OctavaOttavaBassa
	OctavaQuindicesimaBassa
)

// BeatEffect is the bundle of per-beat effects read when the 0x08 flag
// bit is set.
type BeatEffect struct {
	Stroke      BeatStroke
	HasRasgueado bool
	Pickstroke  VoiceDirection
	Slap        SlapEffect
	Tremolo     *TremoloBarEffect
}

// TremoloBarEffect is a whammy-bar dip/dive, reusing the same bend-point
// encoding as a note's BendEffect.
type TremoloBarEffect struct {
	Points []BendPoint
}

// Beat is one rhythmic slot within a measure: a shared duration and zero
// or more simultaneous notes.
type Beat struct {
	Status      BeatStatus
	Duration    Duration
	Text        string
	Effect      BeatEffect
	Display     BeatDisplay
	Chord       Chord
	Notes       []Note
}

// decodeTupletNumber maps the wire tuplet divisor byte to an Enters/Times
// pair. Values outside the closed set are a hard decode failure, matching
// original_source's "Unexpected tuplet number" panic.
func decodeTupletNumber(n int8) (Tuplet, error) {
	switch n {
	case 3:
		return Tuplet{Enters: 3, Times: 2}, nil
	case 5:
		return Tuplet{Enters: 5, Times: 4}, nil
	case 6:
		return Tuplet{Enters: 6, Times: 4}, nil
	case 7:
		return Tuplet{Enters: 7, Times: 4}, nil
	case 9:
		return Tuplet{Enters: 9, Times: 8}, nil
	case 10:
		return Tuplet{Enters: 10, Times: 8}, nil
	case 11:
		return Tuplet{Enters: 11, Times: 8}, nil
	case 12:
		return Tuplet{Enters: 12, Times: 8}, nil
	default:
		return Tuplet{}, newFormatf("legacy.decodeTupletNumber", "Unexpected tuplet number: %d", n)
	}
}

// decodeDurationValue converts the wire signed-byte exponent to a
// DurationValue: value = 1 << (byte + 2), so -2 -> Whole, 5 -> 128th.
func decodeDurationValue(exp int8) DurationValue {
	return DurationValue(1 << uint(exp+2))
}

// Beat flag bits (spec.md §4.6 item 9).
const (
	beatFlagDotted    = 0x01
	beatFlagChord     = 0x02
	beatFlagText      = 0x04
	beatFlagEffects   = 0x08
	beatFlagMixTable  = 0x10
	beatFlagTuplet    = 0x20
	beatFlagStatus    = 0x40
)

// readDuration reads the duration byte and, when beatFlagTuplet is set,
// the tuplet divisor int that follows it.
func readDuration(r *typedio.Reader, flags uint8) (Duration, error) {
	exp, err := r.ReadSignedByte()
	if err != nil {
		return Duration{}, newFormatf("legacy.readDuration", "%v", err)
	}
	d := Duration{
		Value:    decodeDurationValue(exp),
		IsDotted: flags&beatFlagDotted != 0,
		Tuplet:   DefaultTuplet,
	}
	if flags&beatFlagTuplet != 0 {
		n, err := r.ReadInt()
		if err != nil {
			return Duration{}, newFormatf("legacy.readDuration: tuplet", "%v", err)
		}
		tuplet, err := decodeTupletNumber(int8(n))
		if err != nil {
			return Duration{}, err
		}
		d.Tuplet = tuplet
	}
	return d, nil
}

// readBeat reads one beat: its flag byte, optional status override,
// duration, optional chord/text/effects/mix-table blocks, and its
// string-selected notes. track is mutated in place so later beats in
// the same track can resolve tied notes against earlier ones.
func readBeat(r *typedio.Reader, track *Track) (Beat, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return Beat{}, newFormatf("legacy.readBeat: flags", "%v", err)
	}

	b := Beat{Status: BeatNormal}
	if flags&beatFlagStatus != 0 {
		status, err := r.ReadByte()
		if err != nil {
			return Beat{}, newFormatf("legacy.readBeat: status", "%v", err)
		}
		if status == 0x00 {
			b.Status = BeatEmpty
		} else if status == 0x02 {
			b.Status = BeatRest
		}
	}

	duration, err := readDuration(r, flags)
	if err != nil {
		return Beat{}, err
	}
	b.Duration = duration

	if flags&beatFlagChord != 0 {
		chord, err := readChord(r, len(track.Strings))
		if err != nil {
			return Beat{}, err
		}
		b.Chord = chord
	}
	if flags&beatFlagText != 0 {
		text, err := r.ReadIntByteSizedString()
		if err != nil {
			return Beat{}, newFormatf("legacy.readBeat: text", "%v", err)
		}
		b.Text = text
	}
	if flags&beatFlagEffects != 0 {
		effect, err := readBeatEffect(r)
		if err != nil {
			return Beat{}, err
		}
		b.Effect = effect
	}
	if flags&beatFlagMixTable != 0 {
		if err := readMixTableChange(r); err != nil {
			return Beat{}, err
		}
	}

	stringFlags, err := r.ReadByte()
	if err != nil {
		return Beat{}, newFormatf("legacy.readBeat: string flags", "%v", err)
	}
	for i := 6; i >= 0; i-- {
		if stringFlags&(1<<uint(i)) == 0 {
			continue
		}
		stringIndex := 6 - i
		if stringIndex >= len(track.Strings) {
			continue
		}
		note, err := readNote(r, track, track.Strings[stringIndex].Number)
		if err != nil {
			return Beat{}, err
		}
		b.Notes = append(b.Notes, note)
	}
	if len(b.Notes) > 0 {
		track.pendingNotes = append(track.pendingNotes, b.Notes...)
	}
	return b, nil
}

// readBeatEffect reads the two beat-effect flag bytes and their
// conditional payloads: a slap-effect byte, a tremolo-bar curve, and a
// stroke direction pair.
func readBeatEffect(r *typedio.Reader) (BeatEffect, error) {
	flags1, err := r.ReadByte()
	if err != nil {
		return BeatEffect{}, newFormatf("legacy.readBeatEffect: flags1", "%v", err)
	}
	flags2, err := r.ReadByte()
	if err != nil {
		return BeatEffect{}, newFormatf("legacy.readBeatEffect: flags2", "%v", err)
	}

	var effect BeatEffect
	if flags1&0x20 != 0 {
		slap, err := r.ReadByte()
		if err != nil {
			return BeatEffect{}, newFormatf("legacy.readBeatEffect: slap", "%v", err)
		}
		switch slap {
		case 1:
			effect.Slap = SlapEffectTapping
		case 2:
			effect.Slap = SlapEffectSlapping
		case 3:
			effect.Slap = SlapEffectPopping
		}
	}
	if flags2&0x04 != 0 {
		tremolo, err := readTremoloBarEffect(r)
		if err != nil {
			return BeatEffect{}, err
		}
		effect.Tremolo = tremolo
	}
	if flags1&0x40 != 0 {
		up, err := r.ReadSignedByte()
		if err != nil {
			return BeatEffect{}, newFormatf("legacy.readBeatEffect: stroke up", "%v", err)
		}
		down, err := r.ReadSignedByte()
		if err != nil {
			return BeatEffect{}, newFormatf("legacy.readBeatEffect: stroke down", "%v", err)
		}
		if up > 0 {
			effect.Stroke.Up = VoiceDirectionUp
		}
		if down > 0 {
			effect.Stroke.Down = VoiceDirectionDown
		}
	}
	if flags2&0x02 != 0 {
		if err := r.Skip(1); err != nil {
			return BeatEffect{}, newFormatf("legacy.readBeatEffect: reserved", "%v", err)
		}
	}
	return effect, nil
}

// readTremoloBarEffect reads a whammy-bar dip/dive curve: a 5-byte
// reserved block, a point count, then {position, value, vibrato}
// triples, kept in raw wire units as note BendEffect points are.
func readTremoloBarEffect(r *typedio.Reader) (*TremoloBarEffect, error) {
	if err := r.Skip(5); err != nil {
		return nil, newFormatf("legacy.readTremoloBarEffect: reserved", "%v", err)
	}
	points, err := readBendPoints(r)
	if err != nil {
		return nil, err
	}
	if len(points) == 0 {
		return nil, nil
	}
	return &TremoloBarEffect{Points: points}, nil
}

// readBendPoints reads a bend/tremolo-bar point count followed by that
// many {position int, value int, vibrato bool byte} triples.
func readBendPoints(r *typedio.Reader) ([]BendPoint, error) {
	n, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readBendPoints: count", "%v", err)
	}
	if n < 0 {
		return nil, newFormatf("legacy.readBendPoints: count", "negative point count %d", n)
	}
	points := make([]BendPoint, 0, n)
	for i := int32(0); i < n; i++ {
		position, err := r.ReadInt()
		if err != nil {
			return nil, newFormatf("legacy.readBendPoints: position", "%v", err)
		}
		value, err := r.ReadInt()
		if err != nil {
			return nil, newFormatf("legacy.readBendPoints: value", "%v", err)
		}
		vibrato, err := r.ReadBool()
		if err != nil {
			return nil, newFormatf("legacy.readBendPoints: vibrato", "%v", err)
		}
		points = append(points, BendPoint{Position: position, Value: value, Vibrato: vibrato})
	}
	return points, nil
}

// readMixTableChange reads a mix-table-change block: an instrument byte,
// six per-parameter change bytes (-1 meaning unchanged), a tempo name
// and value, and a transition-duration byte per parameter that was
// actually changed.
func readMixTableChange(r *typedio.Reader) error {
	if _, err := r.ReadSignedByte(); err != nil { // instrument
		return newFormatf("legacy.readMixTableChange: instrument", "%v", err)
	}
	params := make([]int8, 6)
	for i := range params {
		v, err := r.ReadSignedByte()
		if err != nil {
			return newFormatf("legacy.readMixTableChange: parameter", "%v", err)
		}
		params[i] = v
	}
	if _, err := r.ReadIntByteSizedString(); err != nil { // tempo name
		return newFormatf("legacy.readMixTableChange: tempo name", "%v", err)
	}
	tempo, err := r.ReadInt()
	if err != nil {
		return newFormatf("legacy.readMixTableChange: tempo value", "%v", err)
	}
	for _, p := range params {
		if p >= 0 {
			if err := r.Skip(1); err != nil {
				return newFormatf("legacy.readMixTableChange: duration", "%v", err)
			}
		}
	}
	if tempo >= 0 {
		if err := r.Skip(1); err != nil {
			return newFormatf("legacy.readMixTableChange: tempo duration", "%v", err)
		}
	}
	if err := r.Skip(1); err != nil { // "all tracks" flag
		return newFormatf("legacy.readMixTableChange: all tracks flag", "%v", err)
	}
	return nil
}

// readNote reads one fretted note event for stringNumber.
func readNote(r *typedio.Reader, track *Track, stringNumber int) (Note, error) {
	flags, err := r.ReadByte()
	if err != nil {
		return Note{}, newFormatf("legacy.readNote: flags", "%v", err)
	}
	note := Note{
		Type:   NoteTypeNormal,
		String: stringNumber,
	}
	note.Effect.HeavyAccentuated = flags&0x02 != 0
	note.Effect.GhostNote = flags&0x04 != 0
	note.Effect.Accentuated = flags&0x40 != 0

	if flags&0x20 != 0 {
		noteType, err := r.ReadByte()
		if err != nil {
			return Note{}, newFormatf("legacy.readNote: type", "%v", err)
		}
		switch noteType {
		case 0x02:
			note.Type = NoteTypeTie
			note.IsTiedNote = true
		case 0x03:
			note.Type = NoteTypeDead
		}
	}

	if flags&0x10 != 0 {
		v, err := r.ReadByte()
		if err != nil {
			return Note{}, newFormatf("legacy.readNote: velocity", "%v", err)
		}
		note.Velocity = minVelocity + velocityIncrement*Velocity(v) - velocityIncrement
	} else {
		note.Velocity = DefaultVelocity
	}

	if flags&0x20 != 0 {
		fret, err := r.ReadSignedByte()
		if err != nil {
			return Note{}, newFormatf("legacy.readNote: fret", "%v", err)
		}
		if note.IsTiedNote {
			note.Fret = resolveTiedFret(track, stringNumber)
		} else if fret >= 0 && fret < 100 {
			note.Fret = fret
		}
	}
	if flags&0x80 != 0 {
		if err := r.Skip(2); err != nil {
			return Note{}, newFormatf("legacy.readNote: fingering", "%v", err)
		}
	}
	if flags&0x01 != 0 {
		if err := r.Skip(8); err != nil {
			return Note{}, newFormatf("legacy.readNote: duration percent", "%v", err)
		}
	}
	if err := r.Skip(1); err != nil {
		return Note{}, newFormatf("legacy.readNote: reserved", "%v", err)
	}
	if flags&0x08 != 0 {
		effect, err := readNoteEffect(r)
		if err != nil {
			return Note{}, err
		}
		note.Effect.Bend = effect.Bend
		note.Effect.Grace = effect.Grace
		note.Effect.Tremolo = effect.Tremolo
		note.Effect.Trill = effect.Trill
		note.Effect.Harmonic = effect.Harmonic
		note.Effect.Hammer = effect.Hammer
		note.Effect.LetRing = effect.LetRing
		note.Effect.Vibrato = note.Effect.Vibrato || effect.Vibrato
		note.Effect.PalmMute = effect.PalmMute
		note.Effect.Staccato = effect.Staccato
	}
	return note, nil
}

// resolveTiedFret walks a track's already-decoded beats, most recent
// first, for the last fret played on stringNumber; spec.md §4.6's tied
// note semantics point a tie at whatever that string was last playing.
func resolveTiedFret(track *Track, stringNumber int) int8 {
	for i := len(track.pendingNotes) - 1; i >= 0; i-- {
		if track.pendingNotes[i].String == stringNumber {
			return track.pendingNotes[i].Fret
		}
	}
	return 0
}

// readNoteEffect reads a note's two effect-flag bytes and their
// conditional payloads.
func readNoteEffect(r *typedio.Reader) (NoteEffect, error) {
	flags1, err := r.ReadByte()
	if err != nil {
		return NoteEffect{}, newFormatf("legacy.readNoteEffect: flags1", "%v", err)
	}
	flags2, err := r.ReadByte()
	if err != nil {
		return NoteEffect{}, newFormatf("legacy.readNoteEffect: flags2", "%v", err)
	}

	var effect NoteEffect
	if flags1&0x01 != 0 {
		bend, err := readBendEffect(r)
		if err != nil {
			return NoteEffect{}, err
		}
		effect.Bend = bend
	}
	if flags1&0x10 != 0 {
		grace, err := readGraceEffect(r)
		if err != nil {
			return NoteEffect{}, err
		}
		effect.Grace = grace
	}
	if flags2&0x04 != 0 {
		tremolo, err := readTremoloPickingEffect(r)
		if err != nil {
			return NoteEffect{}, err
		}
		effect.Tremolo = tremolo
	}
	if flags2&0x08 != 0 {
		slide, err := r.ReadSignedByte()
		if err != nil {
			return NoteEffect{}, newFormatf("legacy.readNoteEffect: slide", "%v", err)
		}
		effect.Slide = decodeSlideTypes(slide)
	}
	if flags2&0x10 != 0 {
		harmonic, err := readHarmonicEffect(r)
		if err != nil {
			return NoteEffect{}, err
		}
		effect.Harmonic = harmonic
	}
	if flags2&0x20 != 0 {
		trill, err := readTrillEffect(r)
		if err != nil {
			return NoteEffect{}, err
		}
		effect.Trill = trill
	}
	effect.Hammer = flags1&0x02 != 0
	effect.LetRing = flags1&0x08 != 0
	effect.Vibrato = flags2&0x40 != 0
	effect.PalmMute = flags2&0x02 != 0
	effect.Staccato = flags2&0x01 != 0
	return effect, nil
}

// decodeSlideTypes maps the single wire slide byte to the zero-or-one
// element SlideType slice it represents; negative/zero means no slide.
func decodeSlideTypes(v int8) []SlideType {
	switch v {
	case 1:
		return []SlideType{SlideTypeShiftSlideTo}
	case 2:
		return []SlideType{SlideTypeLegatoSlideTo}
	case 3:
		return []SlideType{SlideTypeOutDownwards}
	case 4:
		return []SlideType{SlideTypeOutUpwards}
	default:
		return nil
	}
}

func readBendEffect(r *typedio.Reader) (*BendEffect, error) {
	typ, err := r.ReadSignedByte()
	if err != nil {
		return nil, newFormatf("legacy.readBendEffect: type", "%v", err)
	}
	value, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readBendEffect: value", "%v", err)
	}
	points, err := readBendPoints(r)
	if err != nil {
		return nil, err
	}
	return &BendEffect{Type: BendType(typ), Value: value, Points: points}, nil
}

func readGraceEffect(r *typedio.Reader) (*GraceEffect, error) {
	fret, err := r.ReadByte()
	if err != nil {
		return nil, newFormatf("legacy.readGraceEffect: fret", "%v", err)
	}
	dynamic, err := r.ReadByte()
	if err != nil {
		return nil, newFormatf("legacy.readGraceEffect: dynamic", "%v", err)
	}
	transition, err := r.ReadSignedByte()
	if err != nil {
		return nil, newFormatf("legacy.readGraceEffect: transition", "%v", err)
	}
	duration, err := r.ReadByte()
	if err != nil {
		return nil, newFormatf("legacy.readGraceEffect: duration", "%v", err)
	}
	flags, err := r.ReadByte()
	if err != nil {
		return nil, newFormatf("legacy.readGraceEffect: flags", "%v", err)
	}
	var trans GraceEffectTransition
	switch transition {
	case 1:
		trans = GraceTransitionSlide
	case 2:
		trans = GraceTransitionBend
	case 3:
		trans = GraceTransitionHammer
	}
	return &GraceEffect{
		Fret:       fret,
		Dynamic:    dynamic,
		Transition: trans,
		Duration:   duration,
		IsDead:     flags&0x01 != 0,
		IsOnBeat:   flags&0x02 != 0,
	}, nil
}

func readTremoloPickingEffect(r *typedio.Reader) (*TremoloPickingEffect, error) {
	v, err := r.ReadByte()
	if err != nil {
		return nil, newFormatf("legacy.readTremoloPickingEffect", "%v", err)
	}
	var value DurationValue
	switch v {
	case 1:
		value = Eighth
	case 2:
		value = Sixteenth
	case 3:
		value = ThirtySecond
	default:
		return nil, nil
	}
	return &TremoloPickingEffect{Duration: Duration{Value: value, Tuplet: DefaultTuplet}}, nil
}

func readHarmonicEffect(r *typedio.Reader) (*HarmonicEffect, error) {
	typ, err := r.ReadSignedByte()
	if err != nil {
		return nil, newFormatf("legacy.readHarmonicEffect: type", "%v", err)
	}
	switch typ {
	case 1:
		return &HarmonicEffect{Type: HarmonicNatural}, nil
	case 2:
		pitch, err := r.ReadSignedByte()
		if err != nil {
			return nil, newFormatf("legacy.readHarmonicEffect: artificial pitch", "%v", err)
		}
		octave, err := r.ReadSignedByte()
		if err != nil {
			return nil, newFormatf("legacy.readHarmonicEffect: artificial octave", "%v", err)
		}
		if err := r.Skip(1); err != nil {
			return nil, newFormatf("legacy.readHarmonicEffect: reserved", "%v", err)
		}
		return &HarmonicEffect{Type: HarmonicArtificial, ArtificialPitch: pitch, ArtificialOctave: octave}, nil
	case 3:
		fret, err := r.ReadByte()
		if err != nil {
			return nil, newFormatf("legacy.readHarmonicEffect: tapped fret", "%v", err)
		}
		return &HarmonicEffect{Type: HarmonicTapped, TappedFret: fret}, nil
	case 4:
		return &HarmonicEffect{Type: HarmonicPinch}, nil
	case 5:
		return &HarmonicEffect{Type: HarmonicSemi}, nil
	default:
		return nil, nil
	}
}

func readTrillEffect(r *typedio.Reader) (*TrillEffect, error) {
	fret, err := r.ReadByte()
	if err != nil {
		return nil, newFormatf("legacy.readTrillEffect: fret", "%v", err)
	}
	period, err := r.ReadByte()
	if err != nil {
		return nil, newFormatf("legacy.readTrillEffect: period", "%v", err)
	}
	var value DurationValue
	switch period {
	case 1:
		value = Sixteenth
	case 2:
		value = ThirtySecond
	case 3:
		value = SixtyFourth
	default:
		return nil, nil
	}
	return &TrillEffect{Fret: fret, Duration: Duration{Value: value, Tuplet: DefaultTuplet}}, nil
}
