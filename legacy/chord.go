package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// ChordType is the harmonic quality of a new-format chord diagram.
type ChordType int

// Chord types, mirroring the wire's small integer enumeration.
const (
	ChordTypeMajor ChordType = iota
	ChordTypeSeventh
	ChordTypeMajorSeventh
	ChordTypeSixth
	ChordTypeMinor
	ChordTypeMinorSeventh
	ChordTypeMinorMajor
	ChordTypeMinorSixth
	ChordTypeSuspendedSecond
	ChordTypeSuspendedFourth
	ChordTypeSeventhSuspendedSecond
	ChordTypeSeventhSuspendedFourth
	ChordTypeDiminished
	ChordTypeAugmented
	ChordTypePower
)

// ChordAlteration is a fifth/ninth/eleventh alteration applied to a
// new-format chord.
type ChordAlteration int

// Alteration values.
const (
	ChordAlterationPerfect ChordAlteration = iota
	ChordAlterationDiminished
	ChordAlterationAugmented
)

// ChordExtension is the highest extension tone present in a new-format
// chord.
type ChordExtension int

// Extension values.
const (
	ChordExtensionNone ChordExtension = iota
	ChordExtensionNinth
	ChordExtensionEleventh
	ChordExtensionThirteenth
)

// Barre is a full or partial barre across a chord diagram, as a
// fret/start-string/end-string triple.
type Barre struct {
	Fret        int32
	StartString int32
	EndString   int32
}

// Chord is either the compact old-format diagram (name + frets) or the
// fully described new-format diagram. readChord sets exactly one
// pointer; a Beat read without the chord flag keeps the zero Chord, with
// both pointers nil.
type Chord struct {
	Old *OldChord
	New *NewChord
}

// OldChord is the pre-GP4 compact chord encoding.
type OldChord struct {
	Name      string
	FirstFret int32
	Frets     []int32 // one per string, truncated to the track's string count
}

// NewChord is the GP4+ fully described chord diagram.
type NewChord struct {
	Sharp       bool
	Root        int32
	Type        ChordType
	Extension   ChordExtension
	Bass        int32
	Tonality    ChordAlteration
	Add         bool
	Name        string
	Fifth       ChordAlteration
	Ninth       ChordAlteration
	Eleventh    ChordAlteration
	Frets       []int32
	Barres      []Barre
	OmitRoot    bool
	OmitThird   bool
	OmitFifth   bool
	OmitSeventh bool
	OmitNinth   bool
	OmitEleventh bool
	OmitThirteenth bool
}

// readOldChord reads the compact pre-GP4 chord layout: a name, a first
// fret, and six per-string frets truncated to stringCount.
func readOldChord(r *typedio.Reader, stringCount int) (*OldChord, error) {
	name, err := r.ReadIntByteSizedString()
	if err != nil {
		return nil, newFormatf("legacy.readOldChord: name", "%v", err)
	}
	firstFret, err := r.ReadInt()
	if err != nil {
		return nil, newFormatf("legacy.readOldChord: first fret", "%v", err)
	}
	frets := make([]int32, 0, stringCount)
	for i := 0; i < 6; i++ {
		fret, err := r.ReadInt()
		if err != nil {
			return nil, newFormatf("legacy.readOldChord: fret", "%v", err)
		}
		if i < stringCount {
			frets = append(frets, fret)
		}
	}
	return &OldChord{Name: name, FirstFret: firstFret, Frets: frets}, nil
}

// readNewChord reads the fully described GP4+ chord diagram.
func readNewChord(r *typedio.Reader) (*NewChord, error) {
	sharp, err := r.ReadBool()
	if err != nil {
		return nil, newFormatf("legacy.readNewChord: sharp", "%v", err)
	}
	if err := r.Skip(3); err != nil {
		return nil, newFormatf("legacy.readNewChord: reserved", "%v", err)
	}
	root, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	chordType, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	extension, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	bass, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	tonality, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	add, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	name, err := r.ReadByteSizedString(22)
	if err != nil {
		return nil, err
	}
	fifth, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	ninth, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	eleventh, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	frets := make([]int32, 6)
	for i := range frets {
		frets[i], err = r.ReadInt()
		if err != nil {
			return nil, err
		}
	}
	barreCount, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	if barreCount < 0 || barreCount > 2 {
		return nil, newFormatf("legacy.readNewChord: barre count", "unexpected barre count %d", barreCount)
	}
	barreFrets := make([]int32, 2)
	for i := range barreFrets {
		barreFrets[i], err = r.ReadInt()
		if err != nil {
			return nil, err
		}
	}
	barreStarts := make([]int32, 2)
	for i := range barreStarts {
		barreStarts[i], err = r.ReadInt()
		if err != nil {
			return nil, err
		}
	}
	barreEnds := make([]int32, 2)
	for i := range barreEnds {
		barreEnds[i], err = r.ReadInt()
		if err != nil {
			return nil, err
		}
	}
	barres := make([]Barre, 0, barreCount)
	for i := 0; i < int(barreCount); i++ {
		barres = append(barres, Barre{Fret: barreFrets[i], StartString: barreStarts[i], EndString: barreEnds[i]})
	}

	omit := make([]bool, 7)
	for i := range omit {
		omit[i], err = r.ReadBool()
		if err != nil {
			return nil, err
		}
	}
	if err := r.Skip(1); err != nil {
		return nil, err
	}

	return &NewChord{
		Sharp:          sharp,
		Root:           root,
		Type:           ChordType(chordType),
		Extension:      ChordExtension(extension),
		Bass:           bass,
		Tonality:       ChordAlteration(tonality),
		Add:            add,
		Name:           name,
		Fifth:          ChordAlteration(fifth),
		Ninth:          ChordAlteration(ninth),
		Eleventh:       ChordAlteration(eleventh),
		Frets:          frets,
		Barres:         barres,
		OmitRoot:       omit[0],
		OmitThird:      omit[1],
		OmitFifth:      omit[2],
		OmitSeventh:    omit[3],
		OmitNinth:      omit[4],
		OmitEleventh:   omit[5],
		OmitThirteenth: omit[6],
	}, nil
}

// readChord dispatches between the old and new chord layouts based on
// the leading format flag: false selects the old compact layout, true
// the fully described one.
func readChord(r *typedio.Reader, stringCount int) (Chord, error) {
	isNewFormat, err := r.ReadBool()
	if err != nil {
		return Chord{}, newFormatf("legacy.readChord", "%v", err)
	}
	if !isNewFormat {
		old, err := readOldChord(r, stringCount)
		if err != nil {
			return Chord{}, err
		}
		return Chord{Old: old}, nil
	}
	newChord, err := readNewChord(r)
	if err != nil {
		return Chord{}, err
	}
	return Chord{New: newChord}, nil
}
