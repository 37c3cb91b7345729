// Package server parses arena server flags and starts the HTTP API.
package server

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/lastarena/internal/arena/service"
	entrypoint "github.com/louisbranch/lastarena/internal/platform/cmd"
	"github.com/louisbranch/lastarena/internal/storage/memory"
	"github.com/louisbranch/lastarena/internal/storage/sqlite"
	"github.com/louisbranch/lastarena/internal/telemetry"
	"github.com/louisbranch/lastarena/internal/web"
)

// Config holds arena server configuration.
type Config struct {
	Port        int    `env:"LASTARENA_PORT" envDefault:"8080"`
	Addr        string `env:"LASTARENA_ADDR"`
	ArchivePath string `env:"LASTARENA_ARCHIVE_PATH"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The arena server port")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "The arena server listen address (overrides -port)")
	fs.StringVar(&cfg.ArchivePath, "archive", cfg.ArchivePath, "SQLite file for finished-match archives (disabled when empty)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the arena API service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceArena, func(ctx context.Context) error {
		opts := []service.Option{
			service.WithEmitter(telemetry.NewEmitter(telemetry.LogSink{})),
		}
		if cfg.ArchivePath != "" {
			archive, err := sqlite.OpenArchive(cfg.ArchivePath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer func() {
				if err := archive.Close(); err != nil {
					log.Printf("close archive: %v", err)
				}
			}()
			opts = append(opts, service.WithArchive(archive))
		}

		svc := service.New(memory.NewStore(), opts...)
		addr := cfg.Addr
		if addr == "" {
			addr = fmt.Sprintf(":%d", cfg.Port)
		}
		srv, err := web.NewServer(addr, web.NewHandler(svc))
		if err != nil {
			return err
		}
		return srv.ListenAndServe(ctx)
	})
}
