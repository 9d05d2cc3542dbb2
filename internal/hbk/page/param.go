package page

import (
	"regexp"
	"strings"

	"catalogd/internal/catalog"
)

// angleParamPattern matches "<ParamName> - description", the form used
// when a parameter block lists formal parameter names in angle brackets.
var angleParamPattern = regexp.MustCompile(`^<(.+?)>\s*[-–]\s*(.*)$`)

// bareParamPattern matches "ParamName - description" with no brackets;
// only consulted while no parameter has been started yet, so it can name
// the block's first parameter only.
var bareParamPattern = regexp.MustCompile(`^(\w+)\s*[-–]\s*(.*)$`)

// parseParameters reads a flattened "parameters" block into an ordered
// ParameterDefinition list. Each parameter starts with a line naming it
// (bracketed, or bare for the first parameter only) followed by zero or
// more continuation lines that extend its description; once a parameter
// has started, a bare "Name - text" line is read as continuation.
func parseParameters(text string) []catalog.ParameterDefinition {
	var params []catalog.ParameterDefinition
	var name string
	var descLines []string

	flush := func() {
		if name == "" {
			return
		}
		params = append(params, catalog.ParameterDefinition{
			Name:        name,
			Description: strings.TrimSpace(strings.Join(descLines, "\n")),
		})
		name = ""
		descLines = nil
	}

	for _, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if m := angleParamPattern.FindStringSubmatch(line); m != nil {
			flush()
			name = strings.TrimSpace(m[1])
			if rest := strings.TrimSpace(m[2]); rest != "" {
				descLines = append(descLines, rest)
			}
			continue
		}

		if name == "" {
			if m := bareParamPattern.FindStringSubmatch(line); m != nil {
				name = strings.TrimSpace(m[1])
				if rest := strings.TrimSpace(m[2]); rest != "" {
					descLines = append(descLines, rest)
				}
				continue
			}
		}

		if name != "" {
			descLines = append(descLines, line)
		}
	}
	flush()
	return params
}
