// Package cli implements the layoutctl command tree: rendering layouts
// against property files, deriving totals, editing templates and serving
// a live preview.
package cli
