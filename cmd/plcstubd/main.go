package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/danmuck/plcstub/internal/auth"
	"github.com/danmuck/plcstub/internal/config"
	"github.com/danmuck/plcstub/internal/logging"
	"github.com/danmuck/plcstub/internal/observability"
	"github.com/danmuck/plcstub/internal/plctag"
	"github.com/danmuck/plcstub/internal/server"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "plcstubd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	path := flag.String("config", "cmd/plcstubd/config.toml", "config path (defaults apply when missing)")
	addr := flag.String("addr", "", "listen address override")
	flag.Parse()

	observability.InitLogger("plcstubd")

	cfg, err := resolveConfig(*path)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	stub := plctag.New()
	if cfg.DebugLevel != nil {
		applied := stub.SetDebugLevel(logging.DebugLevel(*cfg.DebugLevel))
		log.Debug().Str("level", applied.String()).Msg("debug level applied")
	}

	ids, err := config.PreloadTags(stub, cfg.Tags)
	if err != nil {
		return err
	}
	log.Info().Int("count", len(ids)).Msg("tags preloaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.Appear(cfg.Name, cfg.Addr, cfg.CorsOrigins, stub)
	if cfg.Token != "" {
		srv.Validator = auth.StaticToken{Token: cfg.Token}
	}
	return srv.Run(ctx)
}

func resolveConfig(path string) (config.ServerConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", path).Msg("config not found, using defaults")
		return config.DefaultServerConfig(), nil
	}
	return loadServiceConfig(path)
}
