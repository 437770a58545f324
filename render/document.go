package render

import "strings"

// Run is a contiguous piece of text rendered either plain or bold.
type Run struct {
	Text string `json:"text"`
	Bold bool   `json:"bold"`
}

// Document is the ordered sequence of runs produced by a render. It
// never contains empty runs.
type Document []Run

// Text returns the document text without styling.
func (doc Document) Text() string {
	var sb strings.Builder

	for _, rn := range doc {
		sb.WriteString(rn.Text)
	}

	return sb.String()
}

// HasBold reports whether any run is bold.
func (doc Document) HasBold() bool {
	for _, rn := range doc {
		if rn.Bold {
			return true
		}
	}

	return false
}

func (doc Document) add(text string, bold bool) Document {
	if text == "" {
		return doc
	}

	return append(doc, Run{Text: text, Bold: bold})
}
