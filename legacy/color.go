package legacy

import "github.com/gptab/gpxscore/internal/typedio"

// readColor reads an RGB triple plus one reserved byte, which is
// discarded (spec.md §9, Open Question (b): the wire's fourth byte is
// never exposed on Color).
func readColor(r *typedio.Reader) (Color, error) {
	rgb := make([]uint8, 3)
	for i := range rgb {
		b, err := r.ReadByte()
		if err != nil {
			return Color{}, newFormatf("legacy.readColor", "%v", err)
		}
		rgb[i] = b
	}
	if err := r.Skip(1); err != nil {
		return Color{}, newFormatf("legacy.readColor: reserved byte", "%v", err)
	}
	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}
