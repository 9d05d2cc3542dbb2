package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads and validates a TOML config file, applying defaults and
// environment overrides in the same order the teacher repo uses:
// decode, defaults, env overrides, resolve paths, validate.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	applyDefaults(&cfg)
	ApplyEnvOverrides(&cfg)

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("resolve cwd: %w", err)
	}
	if configDir := filepath.Dir(path); configDir != "." {
		cwd = ResolveRelative(cwd, configDir)
	}
	ResolveSourcePaths(&cfg, cwd)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}

	if cfg.Search.DefaultLimit <= 0 {
		cfg.Search.DefaultLimit = 50
	}
	if cfg.Search.MaxLimit <= 0 {
		cfg.Search.MaxLimit = 500
	}

	if strings.TrimSpace(cfg.MCP.Transport) == "" {
		cfg.MCP.Transport = "stdio"
	}
	if strings.TrimSpace(cfg.MCP.ToolName) == "" {
		cfg.MCP.ToolName = "onec_api"
	}
	if cfg.MCP.RateLimit <= 0 {
		cfg.MCP.RateLimit = 20
	}
	if cfg.MCP.RateBurst <= 0 {
		cfg.MCP.RateBurst = 5
	}

	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "info"
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = "text"
	}

	if strings.TrimSpace(cfg.Observability.MetricsAddress) == "" {
		cfg.Observability.MetricsAddress = "127.0.0.1:9090"
	}
}

func validate(cfg *Config) error {
	hasHBK := strings.TrimSpace(cfg.Source.HBKPath) != ""
	hasJSON := strings.TrimSpace(cfg.Source.JSONDir) != ""
	hasVersions := strings.TrimSpace(cfg.Source.PlatformVersionsDir) != ""

	count := 0
	for _, set := range []bool{hasHBK, hasJSON, hasVersions} {
		if set {
			count++
		}
	}
	if count == 0 {
		return fmt.Errorf("config: one of source.hbk_path, source.json_dir, source.platform_versions_dir is required")
	}
	if count > 1 {
		return fmt.Errorf("config: source.hbk_path, source.json_dir and source.platform_versions_dir are mutually exclusive")
	}

	if cfg.Search.MaxLimit < cfg.Search.DefaultLimit {
		return fmt.Errorf("config: search.max_limit (%d) must be >= search.default_limit (%d)", cfg.Search.MaxLimit, cfg.Search.DefaultLimit)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.MCP.Transport)) {
	case "stdio", "sse":
	default:
		return fmt.Errorf("config: unsupported mcp.transport %q", cfg.MCP.Transport)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Log.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unsupported log.level %q", cfg.Log.Level)
	}

	return nil
}
