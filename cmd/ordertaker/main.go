// Ordertaker turns spoken restaurant orders into structured order drafts.
// It transcribes audio, parses the transcript with a per-language lexicon,
// matches items against the tenant's spoken menu and routes the result to
// point-of-sale and kitchen services.
//
// Usage:
//
//	ordertaker [flags]
//	ordertaker --config /path/to/ordertaker.yaml
//
// @title       ordertaker API
// @version     1.0
// @description Parses spoken restaurant orders into structured drafts and matches them against tenant menus.
// @BasePath    /
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	_ "github.com/nadzzz/ordertaker/docs"
	"github.com/nadzzz/ordertaker/internal/catalog"
	"github.com/nadzzz/ordertaker/internal/config"
	"github.com/nadzzz/ordertaker/internal/dispatch"
	"github.com/nadzzz/ordertaker/internal/health"
	"github.com/nadzzz/ordertaker/internal/lexicon"
	"github.com/nadzzz/ordertaker/internal/transcribe"
	"github.com/nadzzz/ordertaker/internal/transcribe/whisper"
	"github.com/nadzzz/ordertaker/internal/transport"
	grpctransport "github.com/nadzzz/ordertaker/internal/transport/grpc"
	httptransport "github.com/nadzzz/ordertaker/internal/transport/http"
	mqtttransport "github.com/nadzzz/ordertaker/internal/transport/mqtt"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/ordertaker.local.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("ordertaker %s\n", version)
		os.Exit(0)
	}

	if err := run(*configFile); err != nil {
		slog.Error("ordertaker failed", "error", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	// Secrets such as ORDERTAKER_CATALOG_DATABASE_DSN may live in .env.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger, logCloser := config.SetupLogging(cfg.Logging)
	defer logCloser.Close()
	logger.Info("ordertaker starting", "version", version)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var tr transcribe.Transcriber = transcribe.Disabled{}
	if cfg.Transcriber.Backend == "whisper" {
		tr = whisper.New(cfg.Transcriber.Whisper, logger)
		logger.Info("using whisper transcriber",
			"endpoint", cfg.Transcriber.Whisper.Endpoint,
			"type", cfg.Transcriber.Whisper.Type)
	}
	defer tr.Close()

	var src catalog.Source
	switch cfg.Catalog.Backend {
	case "postgres":
		pool, err := catalog.NewPool(ctx, cfg.Catalog.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		src = catalog.NewPostgresSource(pool)
		logger.Info("using postgres catalog")
	default:
		src = catalog.NewFileSource(cfg.Catalog.Dir)
		logger.Info("using file catalog", "dir", cfg.Catalog.Dir)
	}
	cache := catalog.NewCache(src, cfg.Catalog.CacheSize, cfg.Catalog.CacheTTL, logger)

	var transports []transport.Transport
	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC,
			grpctransport.WithLogger(logger)))
	}
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP,
			httptransport.WithCatalogInvalidator(cache.Invalidate),
			httptransport.WithLogger(logger)))
	}
	if cfg.Transports.MQTT.Enabled {
		transports = append(transports, mqtttransport.New(cfg.Transports.MQTT,
			mqtttransport.WithLogger(logger)))
	}
	if len(transports) == 0 {
		return errors.New("no transports enabled, enable at least one in config")
	}

	// Validate already rejected unknown tags.
	lang, _ := lexicon.ParseLanguage(cfg.Parser.DefaultLanguage)

	dispatcher := dispatch.New(dispatch.Options{
		Transcriber:       tr,
		Catalogs:          cache,
		Matcher:           cfg.Matcher,
		DefaultLanguage:   lang,
		BindModifications: cfg.Parser.BindModifications,
		Targets:           cfg.Targets,
		Logger:            logger,
	}, transports)

	g, gctx := errgroup.WithContext(ctx)

	healthServer := health.New(cfg.Server.HealthPort, logger)
	g.Go(func() error { return healthServer.ListenAndServe(gctx) })

	for _, t := range transports {
		g.Go(func() error {
			logger.Info("starting transport", "name", t.Name())
			if err := t.Listen(gctx, dispatcher); err != nil {
				return fmt.Errorf("transport %s: %w", t.Name(), err)
			}
			return nil
		})
	}

	// Transports bind inside Listen, so a bind failure shows up as a
	// group error shortly after readiness is reported.
	healthServer.SetReady(true)
	logger.Info("ordertaker ready",
		"transports", len(transports),
		"default_language", lang,
		"health_port", cfg.Server.HealthPort)

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutdown signal received, draining...")
		healthServer.SetReady(false)
		for _, t := range transports {
			if err := t.Close(); err != nil {
				logger.Error("transport close error", "name", t.Name(), "error", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("ordertaker stopped")
	return nil
}
