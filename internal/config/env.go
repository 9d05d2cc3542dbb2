package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// ApplyEnvOverrides applies environment variable overrides to the
// configuration. Pattern: CATALOGD_[SECTION]_[KEY]
// (e.g. CATALOGD_MCP_TRANSPORT).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Source.HBKPath, "CATALOGD_SOURCE_HBK_PATH")
	setEnvString(&cfg.Source.JSONDir, "CATALOGD_SOURCE_JSON_DIR")
	setEnvString(&cfg.Source.PlatformVersionsDir, "CATALOGD_SOURCE_PLATFORM_VERSIONS_DIR")
	setEnvString(&cfg.Source.PlatformVersion, "CATALOGD_SOURCE_PLATFORM_VERSION")
	setEnvBool(&cfg.Source.WatchForChanges, "CATALOGD_SOURCE_WATCH_FOR_CHANGES")

	setEnvInt(&cfg.Search.DefaultLimit, "CATALOGD_SEARCH_DEFAULT_LIMIT")
	setEnvInt(&cfg.Search.MaxLimit, "CATALOGD_SEARCH_MAX_LIMIT")

	setEnvBool(&cfg.MCP.Enabled, "CATALOGD_MCP_ENABLED")
	setEnvString(&cfg.MCP.Transport, "CATALOGD_MCP_TRANSPORT")
	setEnvString(&cfg.MCP.Address, "CATALOGD_MCP_ADDRESS")
	setEnvString(&cfg.MCP.ToolName, "CATALOGD_MCP_TOOL_NAME")
	setEnvFloat64(&cfg.MCP.RateLimit, "CATALOGD_MCP_RATE_LIMIT")
	setEnvInt(&cfg.MCP.RateBurst, "CATALOGD_MCP_RATE_BURST")

	setEnvString(&cfg.Log.Level, "CATALOGD_LOG_LEVEL")
	setEnvString(&cfg.Log.Format, "CATALOGD_LOG_FORMAT")

	setEnvBool(&cfg.Observability.MetricsEnabled, "CATALOGD_OBSERVABILITY_METRICS_ENABLED")
	setEnvString(&cfg.Observability.MetricsAddress, "CATALOGD_OBSERVABILITY_METRICS_ADDRESS")
	setEnvBool(&cfg.Observability.TracingEnabled, "CATALOGD_OBSERVABILITY_TRACING_ENABLED")
	setEnvString(&cfg.Observability.OTLPEndpoint, "CATALOGD_OBSERVABILITY_OTLP_ENDPOINT")
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		log.Printf("applying env override: %s=%s", key, val)
		*target = val
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			log.Printf("applying env override: %s=%s", key, val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			log.Printf("applying env override: %s=%s", key, val)
			*target = b
		}
	}
}

func setEnvFloat64(target *float64, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			log.Printf("applying env override: %s=%s", key, val)
			*target = f
		}
	}
}
