// Package preview serves a live print preview of a layout over HTTP.
// Files are read on every request so edits show up on reload.
package preview
