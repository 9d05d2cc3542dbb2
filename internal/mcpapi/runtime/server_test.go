package runtime

import (
	"context"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"catalogd/internal/catalog"
	"catalogd/internal/mcpapi/adapters"
	"catalogd/internal/mcpapi/contracts"
	"catalogd/internal/mcpapi/registry"
	"catalogd/internal/mcpapi/transport"
	"catalogd/internal/search"
	"catalogd/internal/search/index"
)

func testAdapter() *adapters.Adapter {
	cat := catalog.New()
	cat.AddType(&catalog.PlatformTypeDefinition{Header: catalog.NewHeader("Массив", "Array", "", catalog.KindType, "")})
	cat.ResolveOwners()
	cat.Freeze()
	idx := index.Build(cat.AllDefinitions())
	return adapters.NewAdapter(search.NewService(cat, idx, 50, 500))
}

type fakeTransport struct {
	startFn func(ctx context.Context, handler transport.Handler) error
	stopFn  func() error
}

func (f *fakeTransport) Start(ctx context.Context, handler transport.Handler) error {
	if f.startFn != nil {
		return f.startFn(ctx, handler)
	}
	return nil
}

func (f *fakeTransport) Stop() error {
	if f.stopFn != nil {
		return f.stopFn()
	}
	return nil
}

func TestServer_StartDispatchesSearch(t *testing.T) {
	var got any
	fake := &fakeTransport{
		startFn: func(ctx context.Context, handler transport.Handler) error {
			out, err := handler(ctx, contracts.ToolNameCatalog, map[string]any{
				"operation": string(contracts.OperationSearch),
				"params":    map[string]any{"query": "Array"},
			})
			if err != nil {
				return err
			}
			got = out
			return nil
		},
	}

	server, err := New(Dependencies{Adapter: testAdapter(), Logger: slog.Default()}, registry.New(), fake, contracts.ToolNameCatalog, OperationAllowlist{allowAll: true})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	if err := server.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got == nil {
		t.Fatal("expected transport call result")
	}
	result, ok := got.(map[string]any)
	if !ok {
		t.Fatalf("expected wrapped result map, got %T", got)
	}
	if result["operation"] != contracts.OperationSearch {
		t.Fatalf("unexpected operation result: %+v", result)
	}

	if err := server.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
}

func TestServer_RegisterDefaultToolIsIdempotent(t *testing.T) {
	reg := registry.New()
	server, err := New(Dependencies{Adapter: testAdapter(), Logger: slog.Default()}, reg, &fakeTransport{}, contracts.ToolNameCatalog, OperationAllowlist{allowAll: true})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	if err := server.registerDefaultTool(); err != nil {
		t.Fatalf("register tool: %v", err)
	}
	if err := server.registerDefaultTool(); err != nil {
		t.Fatalf("second register should be idempotent: %v", err)
	}

	tools := reg.Tools()
	if !reflect.DeepEqual(tools, []string{contracts.ToolNameCatalog}) {
		t.Fatalf("unexpected registered tools: %v", tools)
	}
}

func TestServer_DisallowedOperationRejected(t *testing.T) {
	var got error
	fake := &fakeTransport{
		startFn: func(ctx context.Context, handler transport.Handler) error {
			_, err := handler(ctx, contracts.ToolNameCatalog, map[string]any{
				"operation": string(contracts.OperationGetConstructors),
				"params":    map[string]any{"type_name": "Array"},
			})
			got = err
			return nil
		},
	}

	allowlist := BuildOperationAllowlist(nil)
	allowlist.allowAll = false
	allowlist.allowed = map[contracts.OperationID]bool{contracts.OperationSearch: true}

	server, err := New(Dependencies{Adapter: testAdapter(), Logger: slog.Default()}, registry.New(), fake, contracts.ToolNameCatalog, allowlist)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if err := server.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got == nil {
		t.Fatal("expected disallowed-operation error")
	}
}

// TestServer_MockTransportRoundTrip drives the server through
// transport.MockAdapter instead of fakeTransport: unlike fakeTransport's
// synchronous startFn callback, MockAdapter.Start genuinely loops on a
// channel in a separate goroutine, so Call and CallJSON exercise the same
// handler concurrently from the test body.
func TestServer_MockTransportRoundTrip(t *testing.T) {
	mock := transport.NewMockAdapter()
	server, err := New(Dependencies{Adapter: testAdapter(), Logger: slog.Default()}, registry.New(), mock, contracts.ToolNameCatalog, OperationAllowlist{allowAll: true})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start(ctx) }()

	got, err := mock.Call(contracts.ToolNameCatalog, map[string]any{
		"operation": string(contracts.OperationSearch),
		"params":    map[string]any{"query": "Array"},
	})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	result, ok := got.(map[string]any)
	if !ok || result["operation"] != contracts.OperationSearch {
		t.Fatalf("unexpected call result: %+v", got)
	}

	got, err = mock.CallJSON(contracts.ToolNameCatalog, map[string]any{
		"operation": string(contracts.OperationGetConstructors),
		"params":    map[string]any{"type_name": "Array"},
	})
	if err != nil {
		t.Fatalf("call json: %v", err)
	}
	result, ok = got.(map[string]any)
	if !ok || result["operation"] != contracts.OperationGetConstructors {
		t.Fatalf("unexpected call json result: %+v", got)
	}

	cancel()
	if err := <-serverErr; err != nil && !errors.Is(err, context.Canceled) {
		t.Fatalf("server start: %v", err)
	}
}
