// Package export writes rendered documents as plain text, JSON, HTML or
// Markdown.
package export
