package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"catalogd/internal/mcpapi/contracts"
)

const (
	maxQueryLength = 500
	maxNameLength  = 200
	maxLimitValue  = 5000
)

func ValidateToolArgs(tool string, raw map[string]any) (any, error) {
	_, input, err := ParseToolArgs(tool, raw)
	return input, err
}

func ParseToolArgs(tool string, raw map[string]any) (contracts.OperationID, any, error) {
	if strings.TrimSpace(tool) == "" {
		return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "tool name is required"}
	}
	if tool != contracts.ToolNameCatalog {
		return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("unsupported tool: %s", tool)}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	operationRaw, ok := raw["operation"].(string)
	if !ok || strings.TrimSpace(operationRaw) == "" {
		return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "operation is required"}
	}
	operation := contracts.OperationID(strings.TrimSpace(operationRaw))

	params := map[string]any{}
	if rawParams, ok := raw["params"]; ok && rawParams != nil {
		if typed, ok := rawParams.(map[string]any); ok {
			params = typed
		} else {
			return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "params must be an object"}
		}
	}

	switch operation {
	case contracts.OperationSearch, contracts.OperationSearchHybrid:
		var input contracts.SearchInput
		if err := decodeParams(params, &input); err != nil {
			return "", nil, err
		}
		input.Query = strings.TrimSpace(input.Query)
		if input.Query == "" {
			return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "query is required"}
		}
		if len(input.Query) > maxQueryLength {
			return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "query is too long"}
		}
		if input.Limit < 0 || input.Limit > maxLimitValue {
			return "", nil, invalidLimitError("limit")
		}
		return operation, input, nil

	case contracts.OperationInfo:
		var input contracts.InfoInput
		if err := decodeParams(params, &input); err != nil {
			return "", nil, err
		}
		input.Name = strings.TrimSpace(input.Name)
		input.Kind = strings.TrimSpace(input.Kind)
		if input.Name == "" || input.Kind == "" {
			return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "name and kind are required"}
		}
		return operation, input, nil

	case contracts.OperationGetMember:
		var input contracts.GetMemberInput
		if err := decodeParams(params, &input); err != nil {
			return "", nil, err
		}
		input.TypeName = strings.TrimSpace(input.TypeName)
		input.MemberName = strings.TrimSpace(input.MemberName)
		if input.TypeName == "" || input.MemberName == "" {
			return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "type_name and member_name are required"}
		}
		return operation, input, nil

	case contracts.OperationGetMembers:
		var input contracts.GetMembersInput
		if err := decodeParams(params, &input); err != nil {
			return "", nil, err
		}
		input.TypeName = strings.TrimSpace(input.TypeName)
		if input.TypeName == "" {
			return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "type_name is required"}
		}
		if len(input.TypeName) > maxNameLength {
			return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "type_name is too long"}
		}
		return operation, input, nil

	case contracts.OperationGetConstructors:
		var input contracts.GetConstructorsInput
		if err := decodeParams(params, &input); err != nil {
			return "", nil, err
		}
		input.TypeName = strings.TrimSpace(input.TypeName)
		if input.TypeName == "" {
			return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "type_name is required"}
		}
		return operation, input, nil

	default:
		return "", nil, contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("unsupported operation: %s", operation)}
	}
}

func decodeParams(params map[string]any, out any) error {
	data, err := json.Marshal(params)
	if err != nil {
		return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "invalid params encoding"}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: "invalid params", Details: map[string]any{"error": err.Error()}}
	}
	return nil
}

func invalidLimitError(field string) error {
	return contracts.ToolError{Code: contracts.ErrorInvalidArgument, Message: fmt.Sprintf("%s is out of range", field)}
}
