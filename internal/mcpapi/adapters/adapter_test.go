package adapters

import (
	"context"
	"testing"

	"catalogd/internal/catalog"
	"catalogd/internal/mcpapi/contracts"
	"catalogd/internal/search"
	"catalogd/internal/search/index"
)

func buildAdapterFixture() *Adapter {
	cat := catalog.New()
	valueTable := &catalog.PlatformTypeDefinition{Header: catalog.NewHeader("ТаблицаЗначений", "ValueTable", "", catalog.KindType, "")}
	cat.AddType(valueTable)
	cat.AddMethod(&catalog.MethodDefinition{
		Header:     catalog.NewHeader("Добавить", "Add", "", catalog.KindMethod, "ТаблицаЗначений"),
		Signatures: []catalog.Signature{{Name: "Добавить"}},
	})
	cat.ResolveOwners()
	cat.Freeze()

	idx := index.Build(cat.AllDefinitions())
	svc := search.NewService(cat, idx, 50, 500)
	return NewAdapter(svc)
}

func TestAdapterSearchReturnsDefinitionRefs(t *testing.T) {
	a := buildAdapterFixture()
	out, err := a.Search(context.Background(), contracts.SearchInput{Query: "ValueTable"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(out.Results) != 1 || out.Results[0].NameEN != "ValueTable" {
		t.Fatalf("unexpected results: %+v", out.Results)
	}
}

func TestAdapterInfoUnknownKindErrors(t *testing.T) {
	a := buildAdapterFixture()
	_, err := a.Info(context.Background(), contracts.InfoInput{Name: "ValueTable", Kind: "NOT_A_KIND"})
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
}

func TestAdapterGetMemberResolvesByEitherLanguage(t *testing.T) {
	a := buildAdapterFixture()
	out, err := a.GetMember(context.Background(), contracts.GetMemberInput{TypeName: "ValueTable", MemberName: "Добавить"})
	if err != nil {
		t.Fatalf("get_member: %v", err)
	}
	if out.Member.NameEN != "Add" {
		t.Fatalf("unexpected member: %+v", out.Member)
	}
}

func TestAdapterSearchHybridDegradesToKeywordCascade(t *testing.T) {
	a := buildAdapterFixture()
	keyword, err := a.Search(context.Background(), contracts.SearchInput{Query: "ValueTable"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	hybrid, err := a.SearchHybrid(context.Background(), contracts.SearchInput{Query: "ValueTable"})
	if err != nil {
		t.Fatalf("search_hybrid: %v", err)
	}
	if len(hybrid.Results) != len(keyword.Results) {
		t.Fatalf("expected search_hybrid to match search without an embedding collaborator configured")
	}
}
