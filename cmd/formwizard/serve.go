package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	formwizard "github.com/goliatone/go-formwizard"
)

func newServeCmd(c *cli) *cobra.Command {
	var (
		addr       string
		sessionTTL time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the wizard and status HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("addr") {
				c.cfg.Addr = addr
			}
			if cmd.Flags().Changed("session-ttl") {
				c.cfg.SessionTTL = sessionTTL
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", c.cfg.Addr)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			return c.serve(ctx, ln)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from FORMWIZARD_ADDR or :8080)")
	cmd.Flags().DurationVar(&sessionTTL, "session-ttl", 0, "idle lifetime of wizard sessions")
	return cmd
}

// serve runs the HTTP server on ln until ctx is done, then shuts it down
// within the configured timeout.
func (c *cli) serve(ctx context.Context, ln net.Listener) error {
	submitter, err := c.submitter()
	if err != nil {
		_ = ln.Close()
		return err
	}
	dir, err := c.directory()
	if err != nil {
		_ = ln.Close()
		return err
	}
	lookup, err := c.lookup(dir)
	if err != nil {
		_ = ln.Close()
		return err
	}

	app, err := formwizard.New(context.WithoutCancel(ctx),
		formwizard.WithSubmitter(submitter),
		formwizard.WithLookup(lookup),
		formwizard.WithDashboard(dir),
		formwizard.WithSessionTTL(c.cfg.SessionTTL),
		formwizard.WithLogger(c.logger),
	)
	if err != nil {
		_ = ln.Close()
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Handler:           app.Handler(),
		ReadHeaderTimeout: c.cfg.ReadHeaderTimeout,
		ErrorLog:          zap.NewStdLog(c.logger),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c.logger.Info("http server listening",
			zap.String("addr", ln.Addr().String()),
			zap.Strings("routes", app.Routes()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.cfg.ShutdownTimeout)
		defer cancel()
		c.logger.Info("http server shutting down", zap.Duration("timeout", c.cfg.ShutdownTimeout))
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}
