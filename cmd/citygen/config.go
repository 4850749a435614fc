package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"citygen/internal/city"
)

// envPrefix scopes environment overrides, e.g. CITYGEN_SEA_LEVEL=0.6.
const envPrefix = "CITYGEN"

// setFlags collects repeated -set key=value overrides.
type setFlags []string

func (s *setFlags) String() string { return strings.Join(*s, ",") }

func (s *setFlags) Set(v string) error {
	if !strings.Contains(v, "=") {
		return fmt.Errorf("expected key=value, got %q", v)
	}
	*s = append(*s, v)
	return nil
}

// loadSettings merges the config file, CITYGEN_* environment variables and
// -set overrides, in increasing precedence, into the flat map city.FromMap
// reads. Unknown keys are rejected.
func loadSettings(path string, overrides []string) (map[string]string, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	known := make(map[string]bool)
	for _, k := range city.Keys() {
		known[k] = true
	}
	for _, k := range v.AllKeys() {
		if !known[k] {
			return nil, fmt.Errorf("unknown config key %q", k)
		}
	}

	out := make(map[string]string)
	for _, k := range city.Keys() {
		if v.IsSet(k) {
			out[k] = v.GetString(k)
		}
	}
	for _, kv := range overrides {
		k, val, _ := strings.Cut(kv, "=")
		k = strings.TrimSpace(k)
		if !known[k] {
			return nil, fmt.Errorf("unknown config key %q", k)
		}
		out[k] = strings.TrimSpace(val)
	}
	return out, nil
}

// newLogger configures a logrus logger writing to stderr and, when file is
// set, to a rotating log file.
func newLogger(level, file string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	log := logrus.New()
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	var out io.Writer = os.Stderr
	if file != "" {
		out = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     14,
		})
	}
	log.SetOutput(out)
	return log, nil
}
