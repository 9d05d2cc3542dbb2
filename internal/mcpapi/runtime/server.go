package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"catalogd/internal/mcpapi/adapters"
	"catalogd/internal/mcpapi/contracts"
	"catalogd/internal/mcpapi/registry"
	"catalogd/internal/mcpapi/transport"
	"catalogd/internal/mcpapi/validate"
)

// Dependencies are the pieces Build needs beyond the config: the search
// core (wrapped by an adapters.Adapter once bootstrap publishes it) and a
// logger. Unlike the teacher's Dependencies this carries no watcher or
// per-project state — the catalog is one read-only snapshot per process
// (spec §5).
type Dependencies struct {
	Adapter *adapters.Adapter
	Logger  *slog.Logger
}

// Server wires one registered tool ("catalog" by default) to the six
// operations exposed through adapters.Adapter, behind whichever transport
// config.MCP.Transport selects.
type Server struct {
	deps      Dependencies
	registry  *registry.Registry
	transport transport.Adapter
	allowlist OperationAllowlist
	toolName  string

	mu      sync.Mutex
	running bool
}

// New assembles a Server from its already-built collaborators. Build is
// the usual entry point; New is exposed directly for tests and for
// callers that construct the transport/registry themselves.
func New(deps Dependencies, reg *registry.Registry, adapter transport.Adapter, toolName string, allowlist OperationAllowlist) (*Server, error) {
	if deps.Adapter == nil {
		return nil, fmt.Errorf("adapter dependency is required")
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if reg == nil {
		reg = registry.New()
	}
	if adapter == nil {
		return nil, fmt.Errorf("transport is required")
	}
	if strings.TrimSpace(toolName) == "" {
		toolName = contracts.ToolNameCatalog
	}

	return &Server{
		deps:      deps,
		registry:  reg,
		transport: adapter,
		allowlist: allowlist,
		toolName:  toolName,
	}, nil
}

// Start registers the default tool and blocks serving the transport until
// it returns (EOF on stdio, context cancellation, or a transport error).
func (s *Server) Start(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		<-ctx.Done()
		return ctx.Err()
	}
	s.running = true
	s.mu.Unlock()

	s.deps.Logger.Info("mcp runtime active", "tool", s.toolName)

	if err := s.registerDefaultTool(); err != nil {
		return err
	}

	err := s.transport.Start(ctx, s.handleToolCall)

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	return err
}

func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	return s.transport.Stop()
}

// Run is an alias for Start kept for symmetry with the teacher's
// Server.Run, used by the cmd/catalogd entrypoint.
func (s *Server) Run(ctx context.Context) error {
	return s.Start(ctx)
}

func (s *Server) registerDefaultTool() error {
	if _, ok := s.registry.HandlerFor(s.toolName); ok {
		return nil
	}
	return s.registry.Register(s.toolName, func(ctx context.Context, input any) (any, error) {
		raw, ok := input.(map[string]any)
		if !ok {
			return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "tool args must be an object"}
		}
		return s.dispatchOperation(ctx, raw)
	})
}

func (s *Server) handleToolCall(ctx context.Context, tool string, raw map[string]any) (any, error) {
	if strings.TrimSpace(tool) == "" {
		return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "tool is required"}
	}
	if !strings.EqualFold(tool, s.toolName) {
		return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("unsupported tool: %s", tool)}
	}

	handler, ok := s.registry.HandlerFor(s.toolName)
	if !ok {
		return nil, contracts.ToolError{Code: contracts.ErrorUnavailable, Message: "tool handler not registered"}
	}

	out, err := handler(ctx, raw)
	if err != nil {
		return nil, toToolError(err)
	}
	return out, nil
}

func (s *Server) dispatchOperation(ctx context.Context, raw map[string]any) (any, error) {
	operation, input, err := validate.ParseToolArgs(s.toolName, raw)
	if err != nil {
		return nil, err
	}
	if !s.allowlist.Allows(operation) {
		return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("operation not allowlisted: %s", operation)}
	}

	switch operation {
	case contracts.OperationSearch:
		out, err := s.deps.Adapter.Search(ctx, input.(contracts.SearchInput))
		return wrapToolResult(operation, out), err
	case contracts.OperationSearchHybrid:
		out, err := s.deps.Adapter.SearchHybrid(ctx, input.(contracts.SearchInput))
		return wrapToolResult(operation, out), err
	case contracts.OperationInfo:
		out, err := s.deps.Adapter.Info(ctx, input.(contracts.InfoInput))
		return wrapToolResult(operation, out), err
	case contracts.OperationGetMember:
		out, err := s.deps.Adapter.GetMember(ctx, input.(contracts.GetMemberInput))
		return wrapToolResult(operation, out), err
	case contracts.OperationGetMembers:
		out, err := s.deps.Adapter.GetMembers(ctx, input.(contracts.GetMembersInput))
		return wrapToolResult(operation, out), err
	case contracts.OperationGetConstructors:
		out, err := s.deps.Adapter.GetConstructors(ctx, input.(contracts.GetConstructorsInput))
		return wrapToolResult(operation, out), err
	default:
		return nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("unsupported operation: %s", operation)}
	}
}

func wrapToolResult(operation contracts.OperationID, payload any) any {
	return map[string]any{
		"version":   contracts.ContractVersion,
		"operation": operation,
		"result":    payload,
	}
}

func toToolError(err error) error {
	var toolErr contracts.ToolError
	if errors.As(err, &toolErr) {
		return toolErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return contracts.ToolError{Code: contracts.ErrorUnavailable, Message: "request timed out"}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	code := contracts.ErrorInternal
	switch {
	case strings.Contains(lower, "not found"):
		code = contracts.ErrorNotFound
	case strings.Contains(lower, "invalid"), strings.Contains(lower, "required"), strings.Contains(lower, "limit"):
		code = contracts.ErrorInvalidArgument
	}
	return contracts.ToolError{Code: code, Message: msg}
}
