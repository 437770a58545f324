package edit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/byte4ever/layout_designer/render"
)

// ErrOutOfRange is returned when a position lies outside the text.
var ErrOutOfRange = errors.New("position out of range")

// Placeholder returns the placeholder text for a property name.
func Placeholder(name string) string {
	return render.DefaultStartTag + name + render.DefaultEndTag
}

// InsertPlaceholder inserts {name} at rune offset pos of text.
func InsertPlaceholder(text string, pos int, name string) (string, error) {
	const errCtx = "inserting placeholder"

	rs := []rune(text)
	if pos < 0 || pos > len(rs) {
		return text, fmt.Errorf(
			"%s: %w: %d not in [0, %d]",
			errCtx, ErrOutOfRange, pos, len(rs),
		)
	}

	return string(rs[:pos]) + Placeholder(name) + string(rs[pos:]), nil
}

// Embolden wraps the rune range [start, end) of text in bold markup.
// Empty selections and selections already starting with <b> are left
// as they are.
func Embolden(text string, start int, end int) (string, error) {
	const errCtx = "emboldening selection"

	rs := []rune(text)
	if start < 0 || end > len(rs) || start > end {
		return text, fmt.Errorf(
			"%s: %w: [%d, %d) not in [0, %d]",
			errCtx, ErrOutOfRange, start, end, len(rs),
		)
	}

	sel := string(rs[start:end])
	if sel == "" || strings.HasPrefix(sel, render.BoldOpen) {
		return text, nil
	}

	return string(rs[:start]) +
		render.BoldOpen + sel + render.BoldClose +
		string(rs[end:]), nil
}
