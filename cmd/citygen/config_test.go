package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "city.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadSettingsPrecedence(t *testing.T) {
	path := writeConfig(t, "sea_level: 0.6\nres: 128\n")
	t.Setenv("CITYGEN_SEED", "9")

	got, err := loadSettings(path, []string{"res=96"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := map[string]string{"res": "96", "sea_level": "0.6", "seed": "9"}
	if len(got) != len(want) {
		t.Fatalf("unexpected settings %s", spew.Sdump(got))
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s: expected %q, got %q (%s)", k, v, got[k], spew.Sdump(got))
		}
	}
}

func TestLoadSettingsRejectsUnknownKeys(t *testing.T) {
	if _, err := loadSettings(writeConfig(t, "bogus: 1\n"), nil); err == nil {
		t.Fatalf("expected unknown file key to fail")
	}
	if _, err := loadSettings("", []string{"bogus=1"}); err == nil {
		t.Fatalf("expected unknown override key to fail")
	}
}

func TestSetFlagsRequiresKeyValue(t *testing.T) {
	var s setFlags
	if err := s.Set("res"); err == nil {
		t.Fatalf("expected error for missing '='")
	}
	if err := s.Set("res=64"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.String() != "res=64" {
		t.Fatalf("unexpected flag value %q", s.String())
	}
}

func TestNewLoggerRejectsBadLevel(t *testing.T) {
	if _, err := newLogger("loud", ""); err == nil {
		t.Fatalf("expected invalid level to fail")
	}
	log, err := newLogger("debug", filepath.Join(t.TempDir(), "citygen.log"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !log.IsLevelEnabled(logrus.DebugLevel) {
		t.Fatalf("expected debug level to be enabled")
	}
}
