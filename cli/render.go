package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/byte4ever/layout_designer/export"
	"github.com/byte4ever/layout_designer/layoutfile"
	"github.com/byte4ever/layout_designer/properties"
	"github.com/byte4ever/layout_designer/propsource"
	"github.com/byte4ever/layout_designer/render"
	"github.com/byte4ever/layout_designer/watch"
)

var errOutputCollision = errors.New("output collision")

// RenderOptions holds the flags of the render command.
type RenderOptions struct {
	PropsPath string
	Format    string
	Output    string
	Watch     bool
	Strict    bool
	StartTag  string
	EndTag    string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render <layout|glob>...",
		Short: "Render layouts against a property file",
		Long: `Render one or more layouts. Arguments may be doublestar globs such as
"layouts/**/*.txt". With several layouts --output names a directory that
receives one file per layout.

An invalid ItemQuantity or ItemPrice is reported as a warning and the
layout is rendered with the current TotalAmount, unless --strict is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), opts, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(
		&opts.PropsPath, "props", "p", "",
		"property file (json, yaml or KEY VALUE lines)",
	)
	cmd.Flags().StringVarP(
		&opts.Format, "format", "f", string(export.Text),
		"output format (text|json|html|markdown)",
	)
	cmd.Flags().StringVarP(
		&opts.Output, "output", "o", "",
		"output file or directory (default: stdout)",
	)
	cmd.Flags().BoolVarP(
		&opts.Watch, "watch", "w", false,
		"re-render when the layout or property file changes",
	)
	cmd.Flags().BoolVar(
		&opts.Strict, "strict", false,
		"fail when TotalAmount cannot be derived",
	)
	cmd.Flags().StringVar(
		&opts.StartTag, "start-tag", render.DefaultStartTag,
		"placeholder start tag",
	)
	cmd.Flags().StringVar(
		&opts.EndTag, "end-tag", render.DefaultEndTag,
		"placeholder end tag",
	)

	return cmd
}

func runRender(
	ctx context.Context,
	opts *RenderOptions,
	args []string,
	stdout io.Writer,
) error {
	const errCtx = "rendering"

	format, err := export.ParseFormat(opts.Format)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	layouts, err := expandLayouts(args)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	targets, err := assignOutputs(layouts, opts.Output, format)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	job := renderJob{
		opts:    opts,
		format:  format,
		targets: targets,
		stdout:  stdout,
		engine:  render.Engine{StartTag: opts.StartTag, EndTag: opts.EndTag},
	}

	if err := job.renderAll(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if !opts.Watch {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	paths := []string{opts.PropsPath}
	for _, lr := range layouts {
		paths = append(paths, lr.path)
	}

	err = watch.Run(
		ctx,
		watch.Config{Paths: paths},
		func(context.Context, string) error {
			if err := job.renderAll(); err != nil {
				slog.Error("re-render failed", "error", err)
			}

			return nil
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

type renderJob struct {
	opts    *RenderOptions
	format  export.Format
	targets []target
	stdout  io.Writer
	engine  render.Engine
}

// target pairs a layout with its output file. An empty output means
// stdout.
type target struct {
	layout string
	output string
}

func (rj *renderJob) renderAll() error {
	for _, tg := range rj.targets {
		// A fresh store per layout keeps derived values from leaking
		// between layouts.
		st, err := propsource.Open(rj.opts.PropsPath)
		if err != nil {
			return err
		}

		doc, err := renderLayout(rj.engine, tg.layout, st)
		if err != nil {
			if rj.opts.Strict ||
				!errors.Is(err, properties.ErrInvalidQuantityOrPrice) {
				return err
			}

			slog.Warn(
				"rendered with invalid totals",
				"layout", tg.layout,
				"error", err,
			)
		}

		if err := rj.write(tg, doc); err != nil {
			return err
		}
	}

	return nil
}

func (rj *renderJob) write(tg target, doc render.Document) error {
	const errCtx = "writing output"

	if tg.output == "" {
		if err := export.Write(rj.stdout, doc, rj.format); err != nil {
			return err
		}

		if rj.format != export.JSON {
			_, _ = io.WriteString(rj.stdout, "\n") //nolint:errcheck // stdout
		}

		return nil
	}

	out := tg.output
	if out != rj.opts.Output {
		if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	fi, err := os.Create(out) //nolint:gosec // path from CLI flag
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := export.Write(fi, doc, rj.format); err != nil {
		_ = fi.Close() //nolint:errcheck // write error takes precedence
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := fi.Close(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Info("rendered", "layout", tg.layout, "output", out)

	return nil
}

// renderLayout renders the layout file at path. The returned document is
// valid even when the error reports an invalid quantity or price.
func renderLayout(
	en render.Engine,
	path string,
	st *properties.Store,
) (render.Document, error) {
	lay, err := layoutfile.Open(path)
	if err != nil {
		return nil, err
	}

	return en.Render(lay.Content, st)
}

// layoutRef is a layout path together with its path relative to the
// glob base it was matched from.
type layoutRef struct {
	path string
	rel  string
}

// expandLayouts resolves glob arguments. Plain paths are kept as given
// and are relative to their own directory.
func expandLayouts(args []string) ([]layoutRef, error) {
	var out []layoutRef

	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			out = append(out, layoutRef{
				path: arg,
				rel:  filepath.Base(arg),
			})

			continue
		}

		base, _ := doublestar.SplitPattern(filepath.ToSlash(arg))

		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", arg, err)
		}

		for _, ma := range matches {
			if filepath.Ext(ma) == layoutfile.DigestSuffix {
				continue
			}

			rel, err := filepath.Rel(filepath.FromSlash(base), ma)
			if err != nil {
				rel = filepath.Base(ma)
			}

			out = append(out, layoutRef{path: ma, rel: rel})
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no layout matches %v", args)
	}

	return out, nil
}

// assignOutputs maps each layout to its output file. A single layout
// writes to dir itself; several layouts write below dir, mirroring
// their path relative to the glob base.
func assignOutputs(
	layouts []layoutRef,
	dir string,
	format export.Format,
) ([]target, error) {
	targets := make([]target, 0, len(layouts))

	if dir == "" || len(layouts) == 1 {
		for _, lr := range layouts {
			targets = append(targets, target{layout: lr.path, output: dir})
		}

		return targets, nil
	}

	owners := make(map[string]string, len(layouts))

	for _, lr := range layouts {
		out := filepath.Join(dir, outputName(lr.rel, format))

		if prev, ok := owners[out]; ok {
			return nil, fmt.Errorf(
				"%w: %s and %s both render to %s",
				errOutputCollision, prev, lr.path, out,
			)
		}

		owners[out] = lr.path
		targets = append(targets, target{layout: lr.path, output: out})
	}

	return targets, nil
}

// outputName swaps the extension of the relative layout path for the
// one of format.
func outputName(rel string, format export.Format) string {
	base := strings.TrimSuffix(rel, filepath.Ext(rel))

	ext := map[export.Format]string{
		export.Text:     ".txt",
		export.JSON:     ".json",
		export.HTML:     ".html",
		export.Markdown: ".md",
	}[format]

	return base + ext
}
