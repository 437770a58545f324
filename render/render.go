package render

import (
	"fmt"
	"strings"

	"github.com/byte4ever/layout_designer/properties"
)

// Default delimiters.
const (
	DefaultStartTag = "{"
	DefaultEndTag   = "}"

	BoldOpen  = "<b>"
	BoldClose = "</b>"
)

var boldScanner = spanScanner{open: BoldOpen, close: BoldClose}

// LookupFunc resolves a placeholder key to its text.
type LookupFunc func(key string) (string, bool)

// Engine renders layouts. The zero value uses single-brace placeholders.
type Engine struct {
	StartTag string
	EndTag   string
}

// Render derives TotalAmount in st, substitutes placeholders in
// template and converts bold markup into runs.
//
// The returned document is always complete. A non-nil error only
// reports that TotalAmount could not be derived because of an invalid
// quantity or price; it wraps properties.ErrInvalidQuantityOrPrice and
// the placeholders were substituted with the values left in st.
func (en *Engine) Render(
	template string,
	st *properties.Store,
) (Document, error) {
	const errCtx = "rendering layout"

	if st == nil {
		st = &properties.Store{}
	}

	var derr error
	if err := st.DeriveTotal(); err != nil {
		derr = fmt.Errorf("%s: %w", errCtx, err)
	}

	return Markup(en.Substitute(template, st.Lookup)), derr
}

// Substitute replaces every placeholder whose key lookup resolves with
// the resolved text. Unresolved placeholders are kept verbatim,
// delimiters included.
func (en *Engine) Substitute(template string, lookup LookupFunc) string {
	startTag, endTag := en.tags()

	var sb strings.Builder

	spanScanner{open: startTag, close: endTag}.scan(
		template,
		func(text string) {
			sb.WriteString(text)
		},
		func(key string) {
			if val, ok := lookup(key); ok {
				sb.WriteString(val)
				return
			}

			sb.WriteString(startTag)
			sb.WriteString(key)
			sb.WriteString(endTag)
		},
	)

	return sb.String()
}

// tags returns the configured start/end tags, falling back to
// single-brace defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = DefaultStartTag
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = DefaultEndTag
	}

	return startTag, endTag
}

// Render renders template against st with the default Engine.
func Render(template string, st *properties.Store) (Document, error) {
	var en Engine

	return en.Render(template, st)
}

// Substitute runs the placeholder pass with the default Engine.
func Substitute(template string, lookup LookupFunc) string {
	var en Engine

	return en.Substitute(template, lookup)
}

// Markup converts <b>...</b> spans of text into bold runs. Text around
// the spans becomes plain runs; empty runs are dropped.
func Markup(text string) Document {
	var doc Document

	boldScanner.scan(
		text,
		func(plain string) {
			doc = doc.add(plain, false)
		},
		func(inner string) {
			doc = doc.add(inner, true)
		},
	)

	return doc
}
