// @title Pet Record Guardian API
// @version 1.0
// @description Citas, medicaciones e historia clínica de mascotas, con estados derivados en cada lectura.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pet-record-guardian/internal/adapters/auth/odin"
	pg "pet-record-guardian/internal/adapters/storage/postgres"
	"pet-record-guardian/internal/domain/datewindow"
	"pet-record-guardian/internal/platform/config"
	"pet-record-guardian/internal/platform/logger"
	"pet-record-guardian/internal/ports/auth"
	"pet-record-guardian/internal/router"
)

func main() {
	log := logger.NewFromEnv()

	if err := config.LoadDotEnv(); err != nil {
		log.Error("dotenv", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Error("config", map[string]any{"err": err.Error()})
		os.Exit(1)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres open failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = pg.Migrate(ctx, db)
		cancel()
		if err != nil {
			log.Error("postgres migrate failed", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
	}

	var verifier auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)
	if cfg.Odin.Enabled() {
		client, err := odin.NewClient(odin.Config{
			BaseURL: cfg.Odin.BaseURL,
			APIKey:  cfg.Odin.APIKey,
			Log:     log,
		})
		if err != nil {
			log.Error("odin client", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		verifier = odin.NewVerifier(client)
	} else {
		log.Warn("auth verifier disabled, accepting X-Debug-User-ID", nil)
	}

	r := router.NewRouter(router.Options{
		AuthVerifier:        verifier,
		DB:                  db,
		Logger:              log,
		Clock:               datewindow.SystemClock(cfg.Location),
		LookaheadDays:       cfg.LookaheadDays,
		RefillThresholdDays: cfg.RefillThresholdDays,
	})

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": addr, "timezone": cfg.Location.String()})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}
