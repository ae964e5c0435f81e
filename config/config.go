package config

import (
	"strings"

	"github.com/joeshaw/envdecode"
)

// Config is the full server configuration, decoded from the
// environment. Gameplay knobs default to the standard Spades rules.
type Config struct {
	Addr           string `env:"ADDR,default=:5000"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`

	// PostgresURL enables room-metadata persistence when set. The game
	// engine runs fine without it.
	PostgresURL string `env:"POSTGRES_URL"`

	WinThreshold int  `env:"WIN_THRESHOLD,default=100"`
	Debug        bool `env:"DEBUG,default=false"`
}

// Load decodes the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Origins splits the comma-separated allowed origins list.
func (c Config) Origins() []string {
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
