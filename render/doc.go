// Package render turns a layout template and a property store into a
// styled document. Rendering runs in two passes: {Name} placeholders are
// substituted from the store, then <b>...</b> spans in the substituted
// text become bold runs. Both passes scan lazily, never nest and treat
// unterminated delimiters as literal text, so rendering always succeeds.
package render
