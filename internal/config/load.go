package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// EnvPrefix is prepended to every environment variable, e.g. SCRY_SERVER_PORT.
const EnvPrefix = "SCRY"

// Load configuration from environment variables and optionally config files.
// A config.yaml is looked up in the working directory and in the default
// data directory. Environment variables take precedence over file values,
// and a .env file in the working directory is read first without
// overriding variables that are already set.
func Load() (*Config, error) {
	return load("")
}

// LoadFile is Load with an explicit config file, which must exist.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	dataDir := DefaultDataDir()
	setDefaults(v, dataDir)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(dataDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// DefaultDataDir is ~/.scry-notes, or .scry-notes when no home is known.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".scry-notes"
	}
	return filepath.Join(home, ".scry-notes")
}

func setDefaults(v *viper.Viper, dataDir string) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.log_format", "json")

	v.SetDefault("storage.driver", "file")
	v.SetDefault("storage.dir", dataDir)
	v.SetDefault("storage.sqlite_path", filepath.Join(dataDir, "scry-notes.db"))
	v.SetDefault("storage.redis_addr", "")
	v.SetDefault("storage.redis_key_prefix", "scry-notes:")
	v.SetDefault("storage.watch", false)

	v.SetDefault("auth.bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("auth.seed_demo_data", true)
}
