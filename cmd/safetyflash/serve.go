package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/safetyflash/internal/csrf"
	"github.com/nhle/safetyflash/internal/i18n"
	"github.com/nhle/safetyflash/internal/metrics"
	"github.com/nhle/safetyflash/internal/server"
	"github.com/nhle/safetyflash/internal/sync"
	"github.com/nhle/safetyflash/internal/view"
)

// csrfMaxAge is how long an issued token stays valid, in seconds.
const csrfMaxAge = 8 * 60 * 60

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the admin fragments over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	terms := i18n.New(cfg.I18n.DefaultLang, nil)
	if cfg.I18n.TermsFile != "" {
		if err := terms.Load(cfg.I18n.TermsFile); err != nil {
			return err
		}
		if cfg.I18n.ReloadSeconds > 0 {
			poller := sync.New(terms, cfg.I18n.TermsFile,
				time.Duration(cfg.I18n.ReloadSeconds)*time.Second, logger.Named("terms"))
			poller.Start()
			defer poller.Stop()
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	views, err := view.New(view.Options{
		Store:         st,
		Terms:         terms,
		Logger:        logger.Named("view"),
		Metrics:       metrics.New(reg),
		ReorderURL:    cfg.Server.ReorderURL,
		PlaylistLimit: cfg.Playlist.Limit,
	})
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Store:       st,
		Views:       views,
		Logger:      logger.Named("http"),
		Issuer:      csrf.NewSignedIssuer([]byte(cfg.CSRF.HashKey), csrfMaxAge),
		Gatherer:    reg,
		BaseURL:     cfg.Server.BaseURL,
		DefaultLang: cfg.I18n.DefaultLang,
		Development: cfg.Log.Development,
	})

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting server",
		zap.String("addr", addr),
		zap.String("database", cfg.Database.Path),
		zap.String("default_lang", cfg.I18n.DefaultLang),
	)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
