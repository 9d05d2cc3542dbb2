package strategy

import (
	"testing"

	"catalogd/internal/catalog"
	"catalogd/internal/search/index"
)

func buildFixture() (*catalog.Catalog, *index.Set) {
	cat := catalog.New()

	valueTable := &catalog.PlatformTypeDefinition{Header: catalog.NewHeader("ТаблицаЗначений", "ValueTable", "", catalog.KindType, "")}
	cat.AddType(valueTable)
	cat.AddMethod(&catalog.MethodDefinition{
		Header:     catalog.NewHeader("Добавить", "Add", "", catalog.KindMethod, "ТаблицаЗначений"),
		Signatures: []catalog.Signature{{Name: "Добавить"}},
	})
	cat.AddProperty(&catalog.PropertyDefinition{
		Header:   catalog.NewHeader("Колонки", "Columns", "", catalog.KindProperty, "ТаблицаЗначений"),
		TypeName: "ValueTableColumnCollection",
	})

	spravochnikObject := &catalog.PlatformTypeDefinition{Header: catalog.NewHeader("СправочникОбъект", "CatalogObject", "", catalog.KindType, "")}
	cat.AddType(spravochnikObject)

	cat.ResolveOwners()
	idx := index.Build(cat.AllDefinitions())
	return cat, idx
}

func TestCompoundTypeSearchJoinsTwoWords(t *testing.T) {
	cat, idx := buildFixture()
	results := CompoundTypeSearch("Справочник Объект", idx, cat)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].NameEN() != "CatalogObject" {
		t.Errorf("unexpected result: %+v", results[0])
	}
}

func TestTypeMemberSearchDotAndSpaceForms(t *testing.T) {
	cat, idx := buildFixture()

	dot := TypeMemberSearch("ТаблицаЗначений.Добавить", idx, cat)
	if len(dot) != 1 || dot[0].OwnerTypeName() != "ТаблицаЗначений" {
		t.Fatalf("dot form: unexpected results %+v", dot)
	}

	space := TypeMemberSearch("ValueTable Add", idx, cat)
	if len(space) != 1 || space[0].NameEN() != "Add" {
		t.Fatalf("space form: unexpected results %+v", space)
	}
}

func TestRegularSearchExactThenPrefix(t *testing.T) {
	cat, idx := buildFixture()
	exact := RegularSearch("ValueTable", idx, cat)
	if len(exact) != 1 {
		t.Fatalf("expected exact hit, got %d", len(exact))
	}

	prefix := RegularSearch("Value", idx, cat)
	if len(prefix) == 0 {
		t.Fatalf("expected prefix hits, got none")
	}
}

func TestWordOrderSearchMatchesNameTokenSubsequence(t *testing.T) {
	cat, idx := buildFixture()
	results := WordOrderSearch("Table", idx, cat)
	found := false
	for _, r := range results {
		if r.NameEN() == "ValueTable" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected ValueTable among word-order matches: %+v", results)
	}
}
