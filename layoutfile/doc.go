// Package layoutfile saves and opens layout templates. Each saved layout
// gets a companion .digest file holding the SHA256 of its content, which
// lets Open tell whether the layout was changed outside the designer.
package layoutfile
