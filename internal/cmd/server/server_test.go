package server

import (
	"flag"
	"testing"
)

// TestParseConfigDefaults covers env defaults with no flags set.
func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.ArchivePath != "" {
		t.Fatalf("expected archive disabled by default, got %q", cfg.ArchivePath)
	}
}

// TestParseConfigFlags ensures flags override environment defaults.
func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9090", "-addr", "127.0.0.1:0", "-archive", "arena.db"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9090 || cfg.Addr != "127.0.0.1:0" || cfg.ArchivePath != "arena.db" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}
