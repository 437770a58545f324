package export_test

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/layout_designer/export"
	"github.com/byte4ever/layout_designer/render"
)

func receiptDoc() render.Document {
	return render.Document{
		{Text: "Receipt for "},
		{Text: "ACME", Bold: true},
		{Text: "\nTotal: "},
		{Text: "50", Bold: true},
	}
}

func TestWrite_golden(t *testing.T) {
	t.Parallel()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, format := range []export.Format{
		export.Text, export.JSON, export.Markdown,
	} {
		var buf bytes.Buffer

		require.NoError(t, export.Write(&buf, receiptDoc(), format))
		g.Assert(t, "receipt_"+string(format), buf.Bytes())
	}
}

func TestWrite_html(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, export.Write(&buf, receiptDoc(), export.HTML))
	assert.Equal(
		t,
		"<p>Receipt for <strong>ACME</strong><br>Total: <strong>50</strong></p>",
		buf.String(),
	)
}

func TestFragment_escapes_text(t *testing.T) {
	t.Parallel()

	got := export.Fragment(render.Document{
		{Text: "a<script>x</script>&c"},
	})

	assert.Equal(
		t,
		"<p>a&lt;script&gt;x&lt;/script&gt;&amp;c</p>",
		got,
	)
}

func TestWrite_empty_document_json(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, export.Write(&buf, nil, export.JSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_markdown_bold_spaces(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, export.Write(
		&buf,
		render.Document{
			{Text: "Total:"},
			{Text: " 50 ", Bold: true},
			{Text: "EUR"},
			{Text: "  ", Bold: true},
		},
		export.Markdown,
	))
	assert.Equal(t, "Total: **50** EUR  ", buf.String())
}

func TestWrite_markdown_escapes_metacharacters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, export.Write(
		&buf,
		render.Document{
			{Text: "snake_case 2*3 [x] "},
			{Text: "a**b", Bold: true},
			{Text: ` \ `},
			{Text: "<i>`c`</i>", Bold: true},
		},
		export.Markdown,
	))
	assert.Equal(
		t,
		`snake\_case 2\*3 \[x\] **a\*\*b** \\ **\<i\>`+"\\`c\\`"+`\</i\>**`,
		buf.String(),
	)
}

func TestWrite_unknown_format(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := export.Write(&buf, receiptDoc(), export.Format("pdf"))

	require.ErrorIs(t, err, export.ErrUnknownFormat)
	assert.Zero(t, buf.Len())
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]export.Format{
		"text":     export.Text,
		"TXT":      export.Text,
		"json":     export.JSON,
		"html":     export.HTML,
		"md":       export.Markdown,
		"Markdown": export.Markdown,
	}

	for name, want := range tests {
		got, err := export.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := export.ParseFormat("docx")
	require.ErrorIs(t, err, export.ErrUnknownFormat)
}
