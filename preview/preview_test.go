package preview_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/layout_designer/layoutfile"
	"github.com/byte4ever/layout_designer/preview"
	"github.com/byte4ever/layout_designer/render"
)

func setup(t *testing.T, props string) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	tpl := filepath.Join(dir, "layout.txt")
	pp := filepath.Join(dir, "props.json")

	require.NoError(t, layoutfile.Save(tpl, "Total: <b>{TotalAmount}</b>"))
	require.NoError(t, os.WriteFile(pp, []byte(props), 0o600))

	srv := httptest.NewServer(preview.NewHandler(preview.Config{
		TemplatePath: tpl,
		PropsPath:    pp,
	}))
	t.Cleanup(srv.Close)

	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, string(body)
}

const receiptProps = `{"ItemQuantity": "5", "ItemPrice": "10", "TotalAmount": ""}`

func TestHome_renders_html(t *testing.T) {
	t.Parallel()

	srv := setup(t, receiptProps)

	code, body := get(t, srv.URL+"/")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(
		t,
		"<html><body><p>Total: <strong>50</strong></p></body></html>",
		body,
	)
}

func TestHome_shows_validation_warning(t *testing.T) {
	t.Parallel()

	srv := setup(t, `{"ItemQuantity": "0", "ItemPrice": "10", "TotalAmount": "1"}`)

	code, body := get(t, srv.URL+"/")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `class="warning"`)
	assert.Contains(t, body, "<strong>1</strong>")
}

func TestRuns_returns_json(t *testing.T) {
	t.Parallel()

	srv := setup(t, receiptProps)

	code, body := get(t, srv.URL+"/runs")

	require.Equal(t, http.StatusOK, code)

	var got struct {
		Runs    render.Document `json:"runs"`
		Warning string          `json:"warning"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(
		t,
		render.Document{
			{Text: "Total: "},
			{Text: "50", Bold: true},
		},
		got.Runs,
	)
	assert.Empty(t, got.Warning)
}

func TestProperties_in_store_order(t *testing.T) {
	t.Parallel()

	srv := setup(t, receiptProps)

	code, body := get(t, srv.URL+"/properties")

	require.Equal(t, http.StatusOK, code)
	assert.Equal(
		t,
		"{\n  \"ItemQuantity\": \"5\",\n  \"ItemPrice\": \"10\",\n  \"TotalAmount\": \"50\"\n}\n",
		body,
	)
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv := setup(t, receiptProps)

	code, body := get(t, srv.URL+"/healthz")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok\n", body)
}

func TestHome_missing_layout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(preview.NewHandler(preview.Config{
		TemplatePath: "/nonexistent/layout.txt",
	}))
	t.Cleanup(srv.Close)

	code, _ := get(t, srv.URL+"/")

	assert.Equal(t, http.StatusInternalServerError, code)
}
