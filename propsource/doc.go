// Package propsource reads and writes the property files a layout is
// bound to. JSON and YAML documents are read in key order so the store
// keeps the order of the file; ".txt" and ".status" files hold one
// "KEY VALUE" pair per line, the first space being the delimiter.
//
// A missing file is not an error for LoadInto: it means there are no
// properties yet.
package propsource
