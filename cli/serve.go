package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/byte4ever/layout_designer/preview"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	var (
		cfg  preview.Config
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live HTML preview of a layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return serve(ctx, addr, cfg)
		},
	}

	cmd.Flags().StringVarP(&cfg.TemplatePath, "layout", "l", "", "layout file")
	cmd.Flags().StringVarP(&cfg.PropsPath, "props", "p", "", "property file")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	_ = cmd.MarkFlagRequired("layout") //nolint:errcheck // flag exists

	return cmd
}

func serve(ctx context.Context, addr string, cfg preview.Config) error {
	const errCtx = "serving preview"

	srv := &http.Server{
		Addr:              addr,
		Handler:           preview.NewHandler(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("preview listening", "addr", addr, "layout", cfg.TemplatePath)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("%s: %w", errCtx, err)
	case <-ctx.Done():
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
