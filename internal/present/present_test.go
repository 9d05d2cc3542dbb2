package present

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"catalogd/internal/catalog"
)

func TestFormatDefinitionMethodIncludesSignatureAndReturnType(t *testing.T) {
	m := &catalog.MethodDefinition{
		Header: catalog.NewHeader("Добавить", "Add", "Adds a row.", catalog.KindMethod, "ТаблицаЗначений"),
		Signatures: []catalog.Signature{{
			Name:       "Добавить",
			Parameters: []catalog.ParameterDefinition{{Name: "Значения", Optional: true}},
		}},
		ReturnType: "ValueTableRow",
	}

	out := FormatDefinition(m)
	assert.Contains(t, out, "Добавить / Add")
	assert.Contains(t, out, "ТаблицаЗначений")
	assert.Contains(t, out, "Adds a row.")
	assert.Contains(t, out, "Значения")
	assert.Contains(t, out, "ValueTableRow")
}

func TestFormatDefinitionPropertyMarksReadOnly(t *testing.T) {
	p := &catalog.PropertyDefinition{
		Header:   catalog.NewHeader("Количество", "Count", "", catalog.KindProperty, "Массив"),
		TypeName: "Number",
		ReadOnly: true,
	}
	out := FormatDefinition(p)
	assert.Contains(t, out, "Read-only")
	assert.Contains(t, out, "Number")
}

func TestFormatResultNumbersEachDefinition(t *testing.T) {
	defs := []catalog.Definition{
		&catalog.PlatformTypeDefinition{Header: catalog.NewHeader("Массив", "Array", "", catalog.KindType, "")},
		&catalog.PlatformTypeDefinition{Header: catalog.NewHeader("Структура", "Structure", "", catalog.KindType, "")},
	}
	out := FormatResult(defs)
	assert.True(t, strings.HasPrefix(out, "1. **Массив**"))
	assert.Contains(t, out, "2. **Структура**")
}

func TestFormatResultEmpty(t *testing.T) {
	assert.Equal(t, "No results.\n", FormatResult(nil))
}
