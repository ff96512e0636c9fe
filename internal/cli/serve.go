package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pipwise/pipwise/internal/api"
)

// serveCommand creates the serve command: run the recommendation HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the recommendation HTTP API",
		Long: `Run an HTTP server exposing the recommendation engine.

Endpoints:
  GET  /healthz       liveness check
  POST /v1/recommend  {"packages": [...], "description": "..."} -> recommendation
  POST /v1/resolve    {"recommendation": {...}, "decisions": {...}} -> final list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	agg, err := c.newAggregator(noCache)
	if err != nil {
		return fmt.Errorf("initialize recommender: %w", err)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(agg, c.Logger).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
