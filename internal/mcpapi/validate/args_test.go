package validate

import (
	"reflect"
	"testing"

	"catalogd/internal/mcpapi/contracts"
)

func TestParseToolArgs_Search(t *testing.T) {
	raw := map[string]any{
		"operation": string(contracts.OperationSearch),
		"params": map[string]any{
			"query": "ТаблицаЗначений",
			"limit": 10,
		},
	}

	op, input, err := ParseToolArgs(contracts.ToolNameCatalog, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op != contracts.OperationSearch {
		t.Fatalf("expected operation %s, got %s", contracts.OperationSearch, op)
	}

	searchInput, ok := input.(contracts.SearchInput)
	if !ok {
		t.Fatalf("expected SearchInput, got %T", input)
	}
	if searchInput.Query != "ТаблицаЗначений" || searchInput.Limit != 10 {
		t.Fatalf("unexpected decoded input: %+v", searchInput)
	}
}

func TestParseToolArgs_SearchRejectsEmptyQuery(t *testing.T) {
	raw := map[string]any{
		"operation": string(contracts.OperationSearch),
		"params":    map[string]any{"query": "   "},
	}
	_, _, err := ParseToolArgs(contracts.ToolNameCatalog, raw)
	if err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestParseToolArgs_InvalidOperation(t *testing.T) {
	raw := map[string]any{"operation": "nope"}
	_, _, err := ParseToolArgs(contracts.ToolNameCatalog, raw)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateToolArgs_GetMembers(t *testing.T) {
	raw := map[string]any{
		"operation": string(contracts.OperationGetMembers),
		"params":    map[string]any{"type_name": "ValueTable"},
	}
	input, err := ValidateToolArgs(contracts.ToolNameCatalog, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := contracts.GetMembersInput{TypeName: "ValueTable"}
	if !reflect.DeepEqual(input, expected) {
		t.Fatalf("expected %v, got %v", expected, input)
	}
}

func TestParseToolArgs_GetMemberRequiresBothNames(t *testing.T) {
	raw := map[string]any{
		"operation": string(contracts.OperationGetMember),
		"params":    map[string]any{"type_name": "ValueTable"},
	}
	_, _, err := ParseToolArgs(contracts.ToolNameCatalog, raw)
	if err == nil {
		t.Fatal("expected error for missing member_name")
	}
}

func TestParseToolArgs_SearchHybridSharesInputShape(t *testing.T) {
	raw := map[string]any{
		"operation": string(contracts.OperationSearchHybrid),
		"params":    map[string]any{"query": "Добавить"},
	}
	op, input, err := ParseToolArgs(contracts.ToolNameCatalog, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if op != contracts.OperationSearchHybrid {
		t.Fatalf("expected operation %s, got %s", contracts.OperationSearchHybrid, op)
	}
	if _, ok := input.(contracts.SearchInput); !ok {
		t.Fatalf("expected SearchInput, got %T", input)
	}
}
