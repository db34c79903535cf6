package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/andrescamacho/craftreq/internal/adapters/httpapi"
	"github.com/andrescamacho/craftreq/internal/adapters/metrics"
	"github.com/andrescamacho/craftreq/internal/infrastructure/pidfile"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the evaluation API over HTTP",
		Long: `Serve POST /v1/check and POST /v1/chance.
When metrics are enabled the Prometheus endpoint is served on metrics.host:metrics.port.

Examples:
  craftreq serve
  craftreq serve --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap()
			if err != nil {
				return err
			}
			defer app.Close()

			pf := pidfile.New(app.cfg.Server.PIDFile)
			if err := pf.Acquire(); err != nil {
				if !force {
					return fmt.Errorf("%w\nUse --force to stop the existing server", err)
				}
				if killErr := pf.KillExisting(); killErr != nil {
					return fmt.Errorf("failed to stop existing server: %w", killErr)
				}
				if err := pf.Acquire(); err != nil {
					return fmt.Errorf("failed to acquire PID file after stopping existing server: %w", err)
				}
			}
			defer pf.Release()

			// Metrics share the API listener when both are configured on the same port
			sharedMetrics := metrics.IsEnabled() && sameListenPort(app.cfg.Server.Address, app.cfg.Metrics.Port)
			apiCfg := httpapi.Config{
				Mediator:          app.mediator,
				Logger:            app.logger,
				RequestsPerSecond: float64(app.cfg.Server.RateLimit.Requests),
				Burst:             app.cfg.Server.RateLimit.Burst,
			}
			if sharedMetrics {
				apiCfg.MetricsPath = app.cfg.Metrics.Path
			}
			api, err := httpapi.NewServer(apiCfg)
			if err != nil {
				return err
			}

			servers := []*http.Server{{
				Addr:         app.cfg.Server.Address,
				Handler:      api.Handler(),
				ReadTimeout:  app.cfg.Server.ReadTimeout,
				WriteTimeout: app.cfg.Server.WriteTimeout,
			}}
			if metrics.IsEnabled() && !sharedMetrics {
				mux := http.NewServeMux()
				mux.Handle(app.cfg.Metrics.Path, promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
				servers = append(servers, &http.Server{
					Addr:    fmt.Sprintf("%s:%d", app.cfg.Metrics.Host, app.cfg.Metrics.Port),
					Handler: mux,
				})
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, len(servers))
			for _, srv := range servers {
				srv := srv
				app.logger.Log("INFO", "listening", map[string]interface{}{"address": srv.Addr})
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						errCh <- err
					}
				}()
			}

			var serveErr error
			select {
			case <-ctx.Done():
			case serveErr = <-errCh:
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			for _, srv := range servers {
				_ = srv.Shutdown(shutdownCtx)
			}
			app.logger.Log("INFO", "server stopped", nil)
			return serveErr
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Stop any running server and start a new one")
	return cmd
}

func sameListenPort(address string, port int) bool {
	_, p, err := net.SplitHostPort(address)
	return err == nil && p == strconv.Itoa(port)
}
