package render

import (
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

// spanScanner splits text into literal segments and delimited spans. A
// span opens at the first open delimiter and closes at the first close
// delimiter after it. Spans do not nest: an open delimiter inside a span
// is part of its inner text. An open delimiter without a closing one is
// literal text.
type spanScanner struct {
	open  string
	close string
}

// scan walks text left to right, calling literal for text outside spans
// and span for the inner text of each span. Literal text between two
// spans is reported as one segment, possibly empty.
func (sc spanScanner) scan(
	text string,
	literal func(string),
	span func(string),
) {
	seg := &segmentWriter{emit: literal}

	//nolint:errcheck // segmentWriter and the tag func never fail
	_, _ = fasttemplate.ExecuteFunc(
		text, sc.open, sc.close, seg,
		func(_ io.Writer, inner string) (int, error) {
			seg.flush()
			span(inner)

			return 0, nil
		},
	)

	seg.flush()
}

// segmentWriter collects literal bytes written by the template scanner
// until the next span or the end of input.
type segmentWriter struct {
	buf  strings.Builder
	emit func(string)
}

func (sw *segmentWriter) Write(p []byte) (int, error) {
	return sw.buf.Write(p)
}

func (sw *segmentWriter) flush() {
	sw.emit(sw.buf.String())
	sw.buf.Reset()
}
