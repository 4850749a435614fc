package app

import (
	"flag"
	"testing"
)

func TestConfigBindParsesFlags(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("cityview", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-preset", "archipelago", "-scale", "4", "-seed", "7"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Scene != "archipelago" || cfg.Scale != 4 || cfg.Seed != 7 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.TPS != 30 {
		t.Fatalf("expected default tps to survive, got %d", cfg.TPS)
	}
}
