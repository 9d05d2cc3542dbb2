package runtime

import (
	"testing"

	"catalogd/internal/config"
	"catalogd/internal/mcpapi/contracts"
)

func TestBuildOperationAllowlist_Aliases(t *testing.T) {
	cfg := &config.Config{
		MCP: config.MCP{
			OperationAllowlist: []string{"search", "info", "get_members"},
		},
	}
	allowlist := BuildOperationAllowlist(cfg)
	if !allowlist.Allows(contracts.OperationSearch) {
		t.Fatalf("expected search allowed")
	}
	if !allowlist.Allows(contracts.OperationInfo) {
		t.Fatalf("expected info allowed")
	}
	if !allowlist.Allows(contracts.OperationGetMembers) {
		t.Fatalf("expected get_members allowed")
	}
	if allowlist.Allows(contracts.OperationGetConstructors) {
		t.Fatalf("did not expect get_constructors allowed")
	}
}

func TestBuildOperationAllowlist_EmptyAllowsAll(t *testing.T) {
	allowlist := BuildOperationAllowlist(&config.Config{})
	if !allowlist.Allows(contracts.OperationSearchHybrid) {
		t.Fatalf("expected empty allowlist to allow every operation")
	}
}

func TestBuildOperationAllowlist_NilConfigAllowsAll(t *testing.T) {
	allowlist := BuildOperationAllowlist(nil)
	if !allowlist.Allows(contracts.OperationGetConstructors) {
		t.Fatalf("expected nil config to allow every operation")
	}
}
