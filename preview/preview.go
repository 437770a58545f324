package preview

import (
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/layout_designer/export"
	"github.com/byte4ever/layout_designer/layoutfile"
	"github.com/byte4ever/layout_designer/properties"
	"github.com/byte4ever/layout_designer/propsource"
	"github.com/byte4ever/layout_designer/render"
)

// Config locates the layout and its properties.
type Config struct {
	TemplatePath string
	PropsPath    string
	Engine       render.Engine
}

type handler struct {
	cfg Config
}

// NewHandler returns the preview routes:
//
//	GET /            rendered layout as an HTML page
//	GET /runs        styled runs as JSON
//	GET /properties  properties after derivation, in store order
//	GET /healthz     liveness probe
func NewHandler(cfg Config) http.Handler {
	h := &handler{cfg: cfg}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /runs", h.runs)
	mux.HandleFunc("GET /properties", h.props)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "ok\n") //nolint:errcheck // client gone
	})

	return mux
}

type rendered struct {
	doc     render.Document
	store   *properties.Store
	warning error
}

func (h *handler) render() (rendered, error) {
	const errCtx = "rendering preview"

	lay, err := layoutfile.Open(h.cfg.TemplatePath)
	if err != nil {
		return rendered{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	st, err := propsource.Open(h.cfg.PropsPath)
	if err != nil {
		return rendered{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	doc, warning := h.cfg.Engine.Render(lay.Content, st)
	if warning != nil {
		slog.Warn("preview rendered with warning", "warning", warning)
	}

	return rendered{doc: doc, store: st, warning: warning}, nil
}

func (h *handler) home(w http.ResponseWriter, _ *http.Request) {
	res, err := h.render()
	if err != nil {
		fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	page := "<html><body>"
	if res.warning != nil {
		page += `<p class="warning">` +
			html.EscapeString(res.warning.Error()) + "</p>"
	}

	page += export.Fragment(res.doc) + "</body></html>"

	_, _ = io.WriteString(w, page) //nolint:errcheck // client gone
}

type runsResponse struct {
	Runs    render.Document `json:"runs"`
	Warning string          `json:"warning,omitempty"`
}

func (h *handler) runs(w http.ResponseWriter, _ *http.Request) {
	res, err := h.render()
	if err != nil {
		fail(w, err)
		return
	}

	body := runsResponse{Runs: res.doc}
	if body.Runs == nil {
		body.Runs = render.Document{}
	}

	if res.warning != nil {
		body.Warning = res.warning.Error()
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("writing runs", "error", err)
	}
}

func (h *handler) props(w http.ResponseWriter, _ *http.Request) {
	res, err := h.render()
	if err != nil {
		fail(w, err)
		return
	}

	out, err := propsource.Encode(res.store.All(), propsource.FormatJSON)
	if err != nil {
		fail(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	_, _ = w.Write(out) //nolint:errcheck // client gone
}

func fail(w http.ResponseWriter, err error) {
	slog.Error("preview failed", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
