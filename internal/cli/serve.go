package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pedal/internal/api"
	"pedal/internal/config"
	"pedal/internal/engine"
	"pedal/internal/render"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a.cfg, a.log)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	t0 := time.Now()
	sample := engine.Sample(cfg.Sample.Seed, cfg.Sample.Rows)
	reg := engine.NewRegistry(sample, cfg.Session.MaxAge)

	h := api.NewHandler(reg, engine.NewLoader(log), newSessionStore(cfg.Session, log), log, api.Options{
		PreviewLimit:   cfg.Preview.Limit,
		MaxUploadBytes: cfg.Upload.MaxBytes,
		Render:         render.Options{Width: cfg.Render.Width, Height: cfg.Render.Height},
	})
	e := api.NewServer(h, log)

	if cfg.Session.MaxAge > 0 {
		go prune(ctx, reg, cfg.Session.MaxAge/2, log)
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("server ready",
			zap.String("addr", cfg.Addr),
			zap.Int("sample_rows", sample.Len()),
			zap.Duration("startup", time.Since(t0)),
		)
		errc <- e.Start(cfg.Addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}

func newSessionStore(cfg config.SessionConfig, log *zap.Logger) *sessions.CookieStore {
	secret := []byte(cfg.Secret)
	if len(secret) == 0 {
		log.Warn("session.secret not set, sessions will not survive a restart")
		secret = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(secret)
	store.MaxAge(int(cfg.MaxAge / time.Second))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return store
}

// prune drops idle sessions every interval until ctx is done.
func prune(ctx context.Context, reg *engine.Registry, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := reg.Prune(); n > 0 {
				log.Info("pruned idle sessions", zap.Int("count", n), zap.Int("active", reg.Len()))
			}
		}
	}
}
