package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"nlcalc/internal/config"
	"nlcalc/internal/observability"
	"nlcalc/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	return cmd
}

// serve runs the HTTP server until ctx is cancelled, then drains it within
// the configured shutdown timeout.
func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg.Server
	logger := observability.Logger

	limiter := observability.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.NewRouter(a.agent, limiter),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server started", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if a.loadedFrom != "" {
		w, err := config.NewWatcher(a.loadedFrom, a.overrides, func(next *config.Config) {
			a.reload(next, limiter)
		}, func(err error) {
			logger.Warn("config reload failed", zap.Error(err))
		})
		if err != nil {
			return err
		}
		g.Go(func() error { return w.Watch(gctx) })
	}

	g.Go(func() error {
		<-gctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// reload applies the settings that can change while serving. Chart, history
// and listener settings are bound at startup.
func (a *app) reload(next *config.Config, limiter *observability.RateLimiter) {
	logger := observability.Logger

	if err := observability.SetLevel(next.Log.Level); err != nil {
		logger.Warn("config reload failed", zap.Error(err))
		return
	}
	limiter.SetLimit(next.Server.RateLimit, next.Server.RateBurst)

	if next.Chart != a.cfg.Chart || next.History != a.cfg.History || next.Server.Addr != a.cfg.Server.Addr {
		logger.Warn("config changes to chart, history or addr apply after restart")
	}

	logger.Info("config reloaded",
		zap.String("log_level", next.Log.Level),
		zap.Float64("rate_limit", next.Server.RateLimit),
		zap.Int("rate_burst", next.Server.RateBurst),
	)
}
