// Package edit implements the text operations of the layout editor:
// inserting a placeholder at the cursor and making a selection bold.
// Positions are rune offsets into the template text.
package edit
