package runtime

import (
	"fmt"
	"log/slog"
	"strings"

	"catalogd/internal/config"
	"catalogd/internal/mcpapi/adapters"
	"catalogd/internal/mcpapi/registry"
	"catalogd/internal/mcpapi/transport"
	"catalogd/internal/search"
)

// Build wires config -> transport -> registry -> adapter -> Server, the
// shape the teacher's runtime.Build uses for its own single-tool MCP
// surface. svc is the already-bootstrapped search.Service (internal/
// bootstrap.Ensure is the caller that produced it).
func Build(cfg *config.Config, svc *search.Service, logger *slog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if svc == nil {
		return nil, fmt.Errorf("search service is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	adapter := adapters.NewAdapter(svc)

	transportAdapter, err := buildTransport(cfg)
	if err != nil {
		return nil, err
	}

	reg := registry.New()
	toolName := strings.TrimSpace(cfg.MCP.ToolName)
	allowlist := BuildOperationAllowlist(cfg)

	return New(Dependencies{Adapter: adapter, Logger: logger}, reg, transportAdapter, toolName, allowlist)
}

func buildTransport(cfg *config.Config) (transport.Adapter, error) {
	transportName := strings.ToLower(strings.TrimSpace(cfg.MCP.Transport))
	switch transportName {
	case "", "stdio":
		return transport.NewStdio(cfg.MCP)
	case "sse", "http":
		addr := cfg.MCP.Address
		if addr == "" {
			addr = "127.0.0.1:8765"
		}
		return transport.NewSSE(addr, cfg.MCP)
	default:
		return nil, fmt.Errorf("unsupported MCP transport: %s", transportName)
	}
}
