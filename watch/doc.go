// Package watch re-runs a callback when layout or property files change.
// Parent directories are watched rather than the files themselves so
// that editors replacing a file by rename are still noticed.
package watch
