package legacy

import "github.com/gptab/gpxscore/errs"

// newFormatf is a thin convenience wrapper so call sites throughout
// legacy read like the rest of the package instead of importing errs
// everywhere under a second name.
func newFormatf(context, format string, args ...interface{}) error {
	return errs.NewFormat(context, format, args...)
}
