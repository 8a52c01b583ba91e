package value

import "strconv"

// formatFloat renders a Number the way the original interpreter's printer
// does: integral values print without a decimal point, everything else uses
// the shortest round-tripping representation.
func formatFloat(f float64) string {
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
