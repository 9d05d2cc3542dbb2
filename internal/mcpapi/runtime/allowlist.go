package runtime

import (
	"strings"

	"catalogd/internal/config"
	"catalogd/internal/mcpapi/contracts"
)

type OperationAllowlist struct {
	allowAll bool
	allowed  map[contracts.OperationID]bool
}

func BuildOperationAllowlist(cfg *config.Config) OperationAllowlist {
	if cfg == nil {
		return OperationAllowlist{allowAll: true}
	}

	entries := cfg.MCP.OperationAllowlist
	if len(entries) == 0 {
		return OperationAllowlist{allowAll: true}
	}

	allowed := make(map[contracts.OperationID]bool)
	for _, entry := range entries {
		id := normalizeOperationAlias(entry)
		if id == "" {
			continue
		}
		allowed[id] = true
	}

	return OperationAllowlist{allowed: allowed}
}

func (o OperationAllowlist) Allows(id contracts.OperationID) bool {
	if o.allowAll {
		return true
	}
	return o.allowed[id]
}

func normalizeOperationAlias(raw string) contracts.OperationID {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "search":
		return contracts.OperationSearch
	case "search_hybrid", "search.hybrid":
		return contracts.OperationSearchHybrid
	case "info":
		return contracts.OperationInfo
	case "get_member":
		return contracts.OperationGetMember
	case "get_members":
		return contracts.OperationGetMembers
	case "get_constructors":
		return contracts.OperationGetConstructors
	default:
		return ""
	}
}
