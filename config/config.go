package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/readingcorps/rsmatch/core/match"
	"github.com/readingcorps/rsmatch/core/metrics"
)

// Config is the full service configuration.
type Config struct {
	// Database is the path of the JSON matching database.
	Database string         `json:"database"`
	Match    match.Config   `json:"match"`
	Metrics  metrics.Config `json:"metrics"`
	Logging  LoggingConfig  `json:"logging"`
	Export   ExportConfig   `json:"export"`
}

// ExportConfig locates the rendered outputs.
type ExportConfig struct {
	// Dir receives assignments.csv and report.txt.
	Dir string `json:"dir"`
}

// SetDefaults applies sane defaults.
func (c *ExportConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "."
	}
}

// Load reads configuration from a JSON or YAML file with optional RS_
// environment overrides.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("RS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rs_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Match.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.Export.SetDefaults()
	if cfg.Database == "" {
		return nil, fmt.Errorf("database path is required")
	}
	if err := cfg.Match.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Logging.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
