// Package config loads the service configuration from YAML with defaults
// and a small set of environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"blockhold/server/internal/validation"
	"blockhold/server/logging"
)

// Duration wraps time.Duration so YAML values like "90s" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err == nil {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("config: invalid duration %q: %w", raw, err)
		}
		*d = Duration(parsed)
		return nil
	}
	var nanos int64
	if err := node.Decode(&nanos); err == nil {
		*d = Duration(nanos)
		return nil
	}
	return fmt.Errorf("config: invalid duration value")
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

type Config struct {
	HTTPAddr   string                       `yaml:"httpAddr"`
	Storage    StorageConfig                `yaml:"storage"`
	Sweep      SweepConfig                  `yaml:"sweep"`
	Logging    LoggingConfig                `yaml:"logging"`
	Validation validation.ValidationOptions `yaml:"validation"`
}

type StorageConfig struct {
	// Backend is "memory" or "file".
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	// SeedPlayers creates starter inventories for these IDs when the
	// backend starts empty. Useful for local runs and demos.
	SeedPlayers []string `yaml:"seedPlayers"`
}

type SweepConfig struct {
	Interval    Duration `yaml:"interval"`
	AutoCorrect bool     `yaml:"autoCorrect"`
	DryRun      bool     `yaml:"dryRun"`
}

type LoggingConfig struct {
	Sinks           []string `yaml:"sinks"`
	MinimumSeverity string   `yaml:"minimumSeverity"`
	BufferSize      int      `yaml:"bufferSize"`
	JSONPath        string   `yaml:"jsonPath"`
	FlushInterval   Duration `yaml:"flushInterval"`
}

func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		Storage:  StorageConfig{Backend: "memory"},
		Sweep: SweepConfig{
			Interval:    Duration(time.Minute),
			AutoCorrect: false,
			DryRun:      false,
		},
		Logging: LoggingConfig{
			Sinks:           []string{"console"},
			MinimumSeverity: "info",
			BufferSize:      512,
			FlushInterval:   Duration(2 * time.Second),
		},
		Validation: validation.DefaultOptions(),
	}
}

// Load reads the YAML file at path when it exists, layers it over the
// defaults and applies environment overrides. An empty path yields the
// defaults plus overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	return cfg.normalized()
}

func (c *Config) applyEnv() {
	if addr := os.Getenv("BLOCKHOLD_HTTP_ADDR"); addr != "" {
		c.HTTPAddr = addr
	}
	if raw := os.Getenv("BLOCKHOLD_SWEEP_INTERVAL"); raw != "" {
		if interval, err := time.ParseDuration(raw); err == nil {
			c.Sweep.Interval = Duration(interval)
		}
	}
	if dir := os.Getenv("BLOCKHOLD_STORAGE_DIR"); dir != "" {
		c.Storage.Backend = "file"
		c.Storage.Dir = dir
	}
}

// normalized applies fallback values and rejects contradictions.
func (c Config) normalized() (Config, error) {
	normalized := c
	normalized.HTTPAddr = strings.TrimSpace(normalized.HTTPAddr)
	if normalized.HTTPAddr == "" {
		normalized.HTTPAddr = ":8080"
	}
	switch normalized.Storage.Backend {
	case "", "memory":
		normalized.Storage.Backend = "memory"
	case "file":
		if strings.TrimSpace(normalized.Storage.Dir) == "" {
			return Config{}, fmt.Errorf("config: file storage requires storage.dir")
		}
	default:
		return Config{}, fmt.Errorf("config: unknown storage backend %q", normalized.Storage.Backend)
	}
	if normalized.Sweep.Interval <= 0 {
		normalized.Sweep.Interval = Duration(time.Minute)
	}
	if len(normalized.Logging.Sinks) == 0 {
		normalized.Logging.Sinks = []string{"console"}
	}
	if normalized.Logging.BufferSize <= 0 {
		normalized.Logging.BufferSize = 512
	}
	if _, err := parseSeverity(normalized.Logging.MinimumSeverity); err != nil {
		return Config{}, err
	}
	for _, sink := range normalized.Logging.Sinks {
		switch sink {
		case "console", "json":
		default:
			return Config{}, fmt.Errorf("config: unknown logging sink %q", sink)
		}
	}
	if hasSink(normalized.Logging.Sinks, "json") && strings.TrimSpace(normalized.Logging.JSONPath) == "" {
		return Config{}, fmt.Errorf("config: json sink requires logging.jsonPath")
	}
	return normalized, nil
}

// LoggingRouterConfig converts the YAML logging section into the router's
// own config type.
func (c Config) LoggingRouterConfig() logging.Config {
	severity, _ := parseSeverity(c.Logging.MinimumSeverity)
	routerCfg := logging.DefaultConfig()
	routerCfg.EnabledSinks = append([]string(nil), c.Logging.Sinks...)
	routerCfg.BufferSize = c.Logging.BufferSize
	routerCfg.MinimumSeverity = severity
	routerCfg.JSON.FilePath = c.Logging.JSONPath
	routerCfg.JSON.FlushInterval = c.Logging.FlushInterval.Std()
	return routerCfg
}

func parseSeverity(value string) (logging.Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "info":
		return logging.SeverityInfo, nil
	case "debug":
		return logging.SeverityDebug, nil
	case "warn", "warning":
		return logging.SeverityWarn, nil
	case "error":
		return logging.SeverityError, nil
	default:
		return 0, fmt.Errorf("config: unknown severity %q", value)
	}
}

func hasSink(sinks []string, name string) bool {
	for _, sink := range sinks {
		if sink == name {
			return true
		}
	}
	return false
}
