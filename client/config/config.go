package config

import (
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/bookreview-service/pkg/logger"
)

const envPrefix = "BOOKREVIEW"

type Config struct {
	APIURL   string        `envconfig:"API_URL" default:"http://localhost:3000"`
	StateDir string        `envconfig:"STATE_DIR"`
	LogLevel zapcore.Level `envconfig:"LOG_LEVEL" default:"warn"`
	LogSink  string        `envconfig:"LOG_SINK"`
}

// Load reads BOOKREVIEW_* variables. The state dir falls back to the
// user config dir.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}
	if cfg.StateDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		cfg.StateDir = filepath.Join(dir, "bookreview")
	}
	return &cfg, nil
}

func (c *Config) Log() logger.Log {
	return logger.Log{LogLevel: c.LogLevel, Sink: c.LogSink}
}
