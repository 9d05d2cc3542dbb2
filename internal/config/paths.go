package config

import (
	"path/filepath"
	"strings"
)

// ResolveRelative resolves value against base: an absolute value is
// returned cleaned and unchanged, a relative value is joined onto base.
// Mirrors the teacher's path-resolution helper used throughout config.
func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}

// ResolveSourcePaths rewrites the Source block's path fields relative to
// cwd, so the rest of the process can treat them as absolute.
func ResolveSourcePaths(cfg *Config, cwd string) {
	if strings.TrimSpace(cfg.Source.HBKPath) != "" {
		cfg.Source.HBKPath = ResolveRelative(cwd, cfg.Source.HBKPath)
	}
	if strings.TrimSpace(cfg.Source.JSONDir) != "" {
		cfg.Source.JSONDir = ResolveRelative(cwd, cfg.Source.JSONDir)
	}
	if strings.TrimSpace(cfg.Source.PlatformVersionsDir) != "" {
		cfg.Source.PlatformVersionsDir = ResolveRelative(cwd, cfg.Source.PlatformVersionsDir)
	}
}
