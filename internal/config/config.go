package config

// Config is the root process configuration, loaded from a TOML file and
// optionally overridden by CATALOGD_* environment variables.
type Config struct {
	Version       int                 `toml:"version"`
	Source        Source              `toml:"source"`
	Search        Search              `toml:"search"`
	MCP           MCP                 `toml:"mcp"`
	Log           Log                 `toml:"log"`
	Observability ObservabilityConfig `toml:"observability"`
}

// Source names exactly one of the two ingestion paths (§6): an HBK
// container path, or a directory of pre-exported JSON files. If
// PlatformVersionsDir is set instead of HBKPath/JSONDir, it is resolved by
// internal/platformdir into a concrete versioned subdirectory containing
// either an HBK file or a JSON export, per spec.md §6's "platform-version
// discovery" collaborator.
type Source struct {
	HBKPath             string   `toml:"hbk_path"`
	JSONDir             string   `toml:"json_dir"`
	PlatformVersionsDir string   `toml:"platform_versions_dir"`
	PlatformVersion     string   `toml:"platform_version"`
	ExcludeGlobs        []string `toml:"exclude_globs"`
	WatchForChanges     bool     `toml:"watch_for_changes"`
}

// Search bounds the result size the search service will ever return.
type Search struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

// MCP configures the tool surface exposed to the AI-assistant protocol
// layer (§6).
type MCP struct {
	Enabled            bool     `toml:"enabled"`
	Transport          string   `toml:"transport"` // "stdio" or "sse"
	Address            string   `toml:"address"`   // only used by "sse"
	ToolName           string   `toml:"tool_name"`
	RateLimit          float64  `toml:"rate_limit"` // tokens/sec
	RateBurst          int      `toml:"rate_burst"`
	OperationAllowlist []string `toml:"operation_allowlist"` // empty = all six operations
}

// Log configures the slog handler used throughout the process.
type Log struct {
	Level  string `toml:"level"`  // debug|info|warn|error
	Format string `toml:"format"` // text|json
}

// ObservabilityConfig configures metrics and tracing export.
type ObservabilityConfig struct {
	MetricsEnabled bool   `toml:"metrics_enabled"`
	MetricsAddress string `toml:"metrics_address"`
	TracingEnabled bool   `toml:"tracing_enabled"`
	OTLPEndpoint   string `toml:"otlp_endpoint"`
}
