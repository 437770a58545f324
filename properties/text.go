package properties

import (
	"fmt"
	"strconv"
)

// Text returns the default text representation of a property value.
// Floats are written without exponent so that numbers loaded from a
// data source read back the way they were written.
func Text(value any) string {
	switch tv := value.(type) {
	case nil:
		return ""
	case string:
		return tv
	case float64:
		return strconv.FormatFloat(tv, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(tv), 'f', -1, 32)
	case fmt.Stringer:
		return tv.String()
	default:
		return fmt.Sprint(tv)
	}
}
