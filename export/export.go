package export

import (
	"errors"
	"fmt"
	"html"
	"io"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"

	"github.com/byte4ever/layout_designer/render"
)

// ErrUnknownFormat is returned for unsupported export formats.
var ErrUnknownFormat = errors.New("unknown export format")

// Format is an export encoding.
type Format string

// Supported formats.
const (
	Text     Format = "text"
	JSON     Format = "json"
	HTML     Format = "html"
	Markdown Format = "markdown"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{Text, JSON, HTML, Markdown}
}

// ParseFormat returns the format named name.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case Text, JSON, HTML, Markdown:
		return f, nil
	case "txt":
		return Text, nil
	case "md":
		return Markdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Write encodes doc to w.
func Write(w io.Writer, doc render.Document, format Format) error {
	const errCtx = "exporting document"

	var (
		out []byte
		err error
	)

	switch format {
	case Text:
		out = []byte(doc.Text())
	case JSON:
		out, err = encodeJSON(doc)
	case HTML:
		out = []byte(Fragment(doc))
	case Markdown:
		out = []byte(markdown(doc))
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func encodeJSON(doc render.Document) ([]byte, error) {
	if doc == nil {
		doc = render.Document{}
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding json: %w", err)
	}

	return append(out, '\n'), nil
}

var (
	htmlPolicyOnce sync.Once
	htmlPolicy     *bluemonday.Policy
)

// fragmentSanitizer only lets through the elements Fragment emits.
func fragmentSanitizer() *bluemonday.Policy {
	htmlPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("p", "strong", "br")
		htmlPolicy = policy
	})

	return htmlPolicy
}

// Fragment returns doc as an HTML paragraph. Bold runs become <strong>
// elements and line breaks become <br>.
func Fragment(doc render.Document) string {
	var sb strings.Builder

	sb.WriteString("<p>")

	for _, rn := range doc {
		text := strings.ReplaceAll(
			html.EscapeString(rn.Text), "\n", "<br>",
		)

		if rn.Bold {
			sb.WriteString("<strong>")
			sb.WriteString(text)
			sb.WriteString("</strong>")

			continue
		}

		sb.WriteString(text)
	}

	sb.WriteString("</p>")

	return fragmentSanitizer().Sanitize(sb.String())
}

// markdownEscaper backslash-escapes inline Markdown metacharacters.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"~", `\~`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
)

func markdown(doc render.Document) string {
	var sb strings.Builder

	for _, rn := range doc {
		if !rn.Bold {
			sb.WriteString(markdownEscaper.Replace(rn.Text))
			continue
		}

		// Emphasis markers must hug the text.
		trimmed := strings.TrimSpace(rn.Text)
		if trimmed == "" {
			sb.WriteString(rn.Text)
			continue
		}

		lead := rn.Text[:strings.Index(rn.Text, trimmed)]
		trail := rn.Text[len(lead)+len(trimmed):]

		sb.WriteString(lead)
		sb.WriteString("**")
		sb.WriteString(markdownEscaper.Replace(trimmed))
		sb.WriteString("**")
		sb.WriteString(trail)
	}

	return sb.String()
}
