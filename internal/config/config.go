package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const envPrefix = "BUGHOUSE_"

type Config struct {
	Addr          string
	AllowOrigins  string
	MatchInterval time.Duration
	Pretty        bool
	LogLevel      zerolog.Level
}

// Load reads the server flags from args. Every flag defaults to its
// BUGHOUSE_* environment variable when set.
func Load(args []string) (Config, error) {
	var (
		cfg   Config
		level string
	)
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", env("ADDR", ":3000"), "listen address")
	fs.StringVar(&cfg.AllowOrigins, "allow-origins", env("ALLOW_ORIGINS", "http://localhost:5173"), "comma separated CORS origins")
	fs.StringVar(&level, "log-level", env("LOG_LEVEL", "info"), "log level")

	interval, err := time.ParseDuration(env("MATCH_INTERVAL", "1s"))
	if err != nil {
		return Config{}, fmt.Errorf("%sMATCH_INTERVAL: %w", envPrefix, err)
	}
	fs.DurationVar(&cfg.MatchInterval, "match-interval", interval, "how often the matchmaking queue is processed")

	pretty, err := strconv.ParseBool(env("PRETTY", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("%sPRETTY: %w", envPrefix, err)
	}
	fs.BoolVar(&cfg.Pretty, "pretty", pretty, "human readable console logs")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg.LogLevel, err = zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return Config{}, fmt.Errorf("log level: %w", err)
	}
	if cfg.MatchInterval <= 0 {
		return Config{}, fmt.Errorf("match interval must be positive, got %s", cfg.MatchInterval)
	}
	return cfg, nil
}

// Origins splits AllowOrigins for the websocket origin check.
func (c Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func env(name, fallback string) string {
	if v, ok := os.LookupEnv(envPrefix + name); ok {
		return v
	}
	return fallback
}
