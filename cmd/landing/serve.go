package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vcrobe/landing/appcomponents"
	"github.com/vcrobe/landing/gateway"
	"github.com/vcrobe/landing/web"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Starts the landing server. It shuts down gracefully on SIGINT or SIGTERM.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, nil)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (overrides config)")
	return cmd
}

// newSite builds the page server from the loaded configuration. store may
// be nil, in which case the sensor gateway is not mounted.
func (a *app) newSite(store gateway.Store) *web.Server {
	metrics := web.NewMetrics()
	var gw *gateway.Gateway
	if store != nil {
		gw = gateway.New(gateway.Options{
			Store:    store,
			Logger:   a.logger.Named("gateway"),
			Ingested: metrics.Readings,
		})
	}
	return web.NewServer(web.Options{
		Document: web.Document{
			Title:       a.cfg.Title,
			Description: a.cfg.Description,
			Lang:        a.cfg.Lang,
			Stylesheet:  a.cfg.Stylesheet,
		},
		Router:  appcomponents.NewRouter(a.cfg.PageRevision()),
		Metrics: metrics,
		Logger:  a.logger,
		Dev:     a.cfg.Dev,
		Cache:   a.cfg.Cache,
		Gateway: gw,
	})
}

// serve runs the HTTP server until ctx is done. onListen, when set,
// receives the bound address once the listener is open.
func (a *app) serve(ctx context.Context, onListen func(addr string)) error {
	ln, err := net.Listen("tcp", a.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", a.cfg.Addr, err)
	}

	var store gateway.Store
	if a.cfg.ReadingsDB != "" {
		st, err := gateway.OpenSQLite(ctx, a.cfg.ReadingsDB)
		if err != nil {
			ln.Close()
			return fmt.Errorf("open readings store: %w", err)
		}
		defer st.Close()
		store = st
		a.logger.Info("sensor gateway enabled", zap.String("db", st.Path()))
	}

	srv := &http.Server{
		Handler: a.newSite(store).Handler(),
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		a.logger.Info("starting landing server",
			zap.String("addr", ln.Addr().String()),
			zap.String("revision", a.cfg.PageRevision().String()),
		)
		serverErrors <- srv.Serve(ln)
	}()
	if onListen != nil {
		onListen(ln.Addr().String())
	}

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		a.logger.Info("shutting down", zap.Duration("timeout", a.cfg.ShutdownTimeout))

		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("graceful shutdown did not complete", zap.Error(err))
			if err := srv.Close(); err != nil {
				return fmt.Errorf("close server: %w", err)
			}
		}
		<-serverErrors
		a.logger.Info("landing server stopped")
		return nil
	}
}
