package update

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/tabtodo/internal/model"
	"github.com/sandeepkv93/tabtodo/internal/storage"
)

type RuntimeConfig struct {
	DBPath                string `toml:"db_path" yaml:"db_path"`
	Memory                bool   `toml:"memory" yaml:"memory"`
	StorageKey            string `toml:"storage_key" yaml:"storage_key"`
	LogFile               string `toml:"log_file" yaml:"log_file"`
	LogLevel              string `toml:"log_level" yaml:"log_level"`
	DefaultCategory       string `toml:"default_category" yaml:"default_category"`
	PointsPerTask         int    `toml:"points_per_task" yaml:"points_per_task"`
	MessageTimeoutSeconds int    `toml:"message_timeout_seconds" yaml:"message_timeout_seconds"`
	DueBuffer             int    `toml:"due_buffer" yaml:"due_buffer"`
	DueNotices            bool   `toml:"due_notices" yaml:"due_notices"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DBPath:                "tabtodo.db",
		StorageKey:            storage.DefaultKey,
		LogFile:               "tabtodo.log",
		LogLevel:              "info",
		DefaultCategory:       string(model.CategoryHome),
		PointsPerTask:         10,
		MessageTimeoutSeconds: 3,
		DueBuffer:             16,
		DueNotices:            true,
	}
}

func (c RuntimeConfig) MessageTimeout() time.Duration {
	if c.MessageTimeoutSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.MessageTimeoutSeconds) * time.Second
}

// StartCategory falls back to Home when the configured name is unknown.
func (c RuntimeConfig) StartCategory() model.Category {
	cat, err := model.ParseCategory(c.DefaultCategory)
	if err != nil {
		return model.CategoryHome
	}
	return cat
}

// LoadRuntimeConfigFile overlays a TOML or YAML file on base. Keys missing
// from the file keep the base value.
func LoadRuntimeConfigFile(path string, base RuntimeConfig) (RuntimeConfig, error) {
	cfg := base
	raw, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(raw), &cfg); err != nil {
			return base, fmt.Errorf("decode toml config: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return base, fmt.Errorf("decode yaml config: %w", err)
		}
	default:
		return base, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TABTODO_DB"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvBool("TABTODO_MEMORY"); ok {
		cfg.Memory = v
	}
	if v, ok := getEnvString("TABTODO_STORAGE_KEY"); ok {
		cfg.StorageKey = v
	}
	if v, ok := getEnvString("TABTODO_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TABTODO_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvString("TABTODO_DEFAULT_CATEGORY"); ok {
		cfg.DefaultCategory = v
	}
	if v, ok := getEnvInt("TABTODO_POINTS_PER_TASK"); ok && v > 0 {
		cfg.PointsPerTask = v
	}
	if v, ok := getEnvInt("TABTODO_MESSAGE_TIMEOUT_SECONDS"); ok && v > 0 {
		cfg.MessageTimeoutSeconds = v
	}
	if v, ok := getEnvInt("TABTODO_DUE_BUFFER"); ok && v > 0 {
		cfg.DueBuffer = v
	}
	if v, ok := getEnvBool("TABTODO_DUE_NOTICES"); ok {
		cfg.DueNotices = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
