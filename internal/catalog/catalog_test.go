package catalog

import "testing"

func TestCatalogResolveOwnersAttachesMembers(t *testing.T) {
	c := New()

	typ := &PlatformTypeDefinition{Header: NewHeader("ТаблицаЗначений", "ValueTable", "", KindType, "")}
	c.AddType(typ)

	method := &MethodDefinition{
		Header:     NewHeader("Добавить", "Add", "", KindMethod, "ТаблицаЗначений"),
		Signatures: []Signature{{Name: "Добавить"}},
	}
	c.AddMethod(method)

	prop := &PropertyDefinition{
		Header:   NewHeader("Колонки", "Columns", "", KindProperty, "ТаблицаЗначений"),
		TypeName: "ValueTableColumnCollection",
	}
	c.AddProperty(prop)

	warnings := c.ResolveOwners()
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}

	membersRU := c.MembersOf("ТаблицаЗначений")
	membersEN := c.MembersOf("ValueTable")
	if len(membersRU) != 2 || len(membersEN) != 2 {
		t.Fatalf("expected 2 members via each language name, got %d / %d", len(membersRU), len(membersEN))
	}
	if membersRU[0].NameEN() != membersEN[0].NameEN() {
		t.Fatalf("RU and EN lookups disagree on identity")
	}
}

func TestCatalogResolveOwnersWarnsOnDanglingOwner(t *testing.T) {
	c := New()
	method := &MethodDefinition{
		Header:     NewHeader("Добавить", "Add", "", KindMethod, "НесуществующийТип"),
		Signatures: []Signature{{Name: "Добавить"}},
	}
	c.AddMethod(method)

	warnings := c.ResolveOwners()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if warnings[0].OwnerType != "НесуществующийТип" {
		t.Fatalf("unexpected warning owner: %+v", warnings[0])
	}
}

func TestCatalogByKeyIsCaseInsensitive(t *testing.T) {
	c := New()
	typ := &PlatformTypeDefinition{Header: NewHeader("Массив", "Array", "", KindType, "")}
	c.AddType(typ)

	for _, form := range []string{"Массив", "массив", "МАССИВ", "Array", "array", "ARRAY"} {
		if len(c.ByKey(form)) != 1 {
			t.Errorf("ByKey(%q) expected 1 hit", form)
		}
	}
}

func TestCatalogMethodAndPropertyNamespacesCanOverlap(t *testing.T) {
	c := New()
	typ := &PlatformTypeDefinition{Header: NewHeader("Тип", "SomeType", "", KindType, "")}
	c.AddType(typ)
	c.AddMethod(&MethodDefinition{Header: NewHeader("Значение", "Value", "", KindMethod, "Тип"), Signatures: []Signature{{Name: "Значение"}}})
	c.AddProperty(&PropertyDefinition{Header: NewHeader("Значение", "Value", "", KindProperty, "Тип")})

	c.ResolveOwners()

	members := c.MembersOf("Тип")
	if len(members) != 2 {
		t.Fatalf("expected method and property with the same name to both be retained, got %d", len(members))
	}
}
