// Package present is a best-effort Markdown renderer the CLI's stdio
// fallback path uses to print a human-readable result. It is not the
// canonical formatter spec.md §1 names as an external collaborator (that
// one lives upstream of this service and renders structured tool output
// into chat-facing Markdown); this package exists only because a shipped
// binary still needs something to print when run outside the MCP
// transport.
package present

import (
	"fmt"
	"strings"

	"catalogd/internal/catalog"
)

// FormatDefinition renders one Definition as a short Markdown block: a
// heading naming both languages, the description, and whatever
// kind-specific detail (signatures, parameters, readonly marker) applies.
func FormatDefinition(d catalog.Definition) string {
	var b strings.Builder

	fmt.Fprintf(&b, "### %s / %s\n", d.NameRU(), d.NameEN())
	fmt.Fprintf(&b, "_%s_", strings.ToLower(string(d.Kind())))
	if owner := d.OwnerTypeName(); owner != "" {
		fmt.Fprintf(&b, " of `%s`", owner)
	}
	b.WriteString("\n\n")

	if desc := strings.TrimSpace(d.Description()); desc != "" {
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	switch v := d.(type) {
	case *catalog.MethodDefinition:
		formatSignatures(&b, v.Signatures)
		if v.ReturnType != "" {
			fmt.Fprintf(&b, "**Returns:** `%s`\n", v.ReturnType)
		}
	case *catalog.PropertyDefinition:
		if v.TypeName != "" {
			fmt.Fprintf(&b, "**Type:** `%s`\n", v.TypeName)
		}
		if v.ReadOnly {
			b.WriteString("**Read-only**\n")
		}
	case *catalog.PlatformTypeDefinition:
		fmt.Fprintf(&b, "**Methods:** %d, **Properties:** %d, **Constructors:** %d\n",
			len(v.Methods), len(v.Properties), len(v.Constructors))
		if v.CollectionElementType != "" {
			fmt.Fprintf(&b, "**Element type:** `%s`\n", v.CollectionElementType)
		}
	case *catalog.ConstructorSignature:
		formatParameters(&b, v.Parameters)
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// FormatResult renders an ordered sequence of Definitions (a search()
// result, or a get_members()/get_constructors() listing) as a numbered
// Markdown list of one-line summaries.
func FormatResult(defs []catalog.Definition) string {
	if len(defs) == 0 {
		return "No results.\n"
	}
	var b strings.Builder
	for i, d := range defs {
		fmt.Fprintf(&b, "%d. **%s** / *%s* (%s)", i+1, d.NameRU(), d.NameEN(), strings.ToLower(string(d.Kind())))
		if owner := d.OwnerTypeName(); owner != "" {
			fmt.Fprintf(&b, " — %s", owner)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatSignatures(b *strings.Builder, sigs []catalog.Signature) {
	for _, sig := range sigs {
		b.WriteString("```\n")
		b.WriteString(sig.Name)
		b.WriteString("(")
		for i, p := range sig.Parameters {
			if i > 0 {
				b.WriteString(", ")
			}
			if p.Optional {
				b.WriteString("[")
			}
			b.WriteString(p.Name)
			if p.Optional {
				b.WriteString("]")
			}
		}
		b.WriteString(")\n```\n")
		formatParameters(b, sig.Parameters)
	}
}

func formatParameters(b *strings.Builder, params []catalog.ParameterDefinition) {
	for _, p := range params {
		fmt.Fprintf(b, "- `%s`", p.Name)
		if p.TypeName != "" {
			fmt.Fprintf(b, " (`%s`)", p.TypeName)
		}
		if p.Optional {
			b.WriteString(", optional")
		}
		if p.DefaultValue != "" {
			fmt.Fprintf(b, ", default `%s`", p.DefaultValue)
		}
		if p.Description != "" {
			fmt.Fprintf(b, " — %s", p.Description)
		}
		b.WriteString("\n")
	}
}
