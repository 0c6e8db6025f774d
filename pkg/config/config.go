// Package config loads client configuration from an optional YAML file
// with environment overrides. Secrets (keys, mnemonics) are env-only and
// never written back to disk.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/sparkfi/sparkgo/pkg/logger"
)

// Config is everything sparkctl needs to come up.
type Config struct {
	NetworkURL string        `yaml:"network_url"`
	IndexerURL string        `yaml:"indexer_url"`
	DataDir    string        `yaml:"data_dir"`
	Log        logger.Config `yaml:"log"`

	// Env-only secrets.
	PrivateKey string `yaml:"-"`
	Mnemonic   string `yaml:"-"`
}

// Default returns the config used when no file exists.
func Default() *Config {
	return &Config{
		DataDir: ".sparkgo",
		Log:     logger.Config{Level: "info"},
	}
}

// Load reads path (missing file is fine), then applies env overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env
		case err != nil:
			return nil, errors.Wrapf(err, "config: read %s", path)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "config: parse %s", path)
			}
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SPARK_NETWORK_URL"); v != "" {
		cfg.NetworkURL = v
	}
	if v := os.Getenv("SPARK_INDEXER_URL"); v != "" {
		cfg.IndexerURL = v
	}
	if v := os.Getenv("SPARK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("SPARK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SPARK_LOG_FILE"); v != "" {
		cfg.Log.OutputFile = v
	}
	cfg.PrivateKey = os.Getenv("SPARK_PRIVATE_KEY")
	cfg.Mnemonic = os.Getenv("SPARK_MNEMONIC")
}
