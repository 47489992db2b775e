// main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/jotlin/jotlin-server/auth"
	"github.com/jotlin/jotlin-server/config"
	httphandlers "github.com/jotlin/jotlin-server/http"
	"github.com/jotlin/jotlin-server/store"
	"github.com/jotlin/jotlin-server/ws"
)

const sessionSweepInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg.DatabaseURL, log.With().Str("component", "store").Logger())
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer st.Close()

	hub := ws.NewHub(log.With().Str("component", "ws").Logger())
	go hub.Run()

	go sweepSessions(ctx, st.Users, log)

	server := httphandlers.NewServer(httphandlers.Options{
		Notes:           st.Notes,
		Users:           st.Users,
		Profiles:        st.Profiles,
		Resolver:        auth.NewResolver(st.Users),
		Hub:             hub,
		Log:             log.With().Str("component", "http").Logger(),
		SessionTTL:      cfg.SessionTTL,
		MaxContentBytes: cfg.MaxContentBytes,
	})
	app := server.App()

	go func() {
		<-ctx.Done()
		log.Info().Msg("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error().Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("addr", cfg.Addr).Msg("server starting")
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal().Err(err).Msg("listen")
	}
}

func sweepSessions(ctx context.Context, users *store.UserStore, log zerolog.Logger) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := users.DeleteExpiredSessions(ctx)
			if err != nil {
				log.Warn().Err(err).Msg("session sweep failed")
				continue
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("session sweep")
			}
		}
	}
}
