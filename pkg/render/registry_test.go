package render_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-invoicegen/pkg/render"
)

type stubRenderer struct {
	name string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return "application/pdf" }
func (s stubRenderer) Render(context.Context, render.Document) error {
	return nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	registry := render.NewRegistry()
	if err := registry.Register(stubRenderer{name: "chrome"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	renderer, err := registry.Get("chrome")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if renderer.Name() != "chrome" {
		t.Fatalf("renderer name = %q, want chrome", renderer.Name())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "chrome"})

	err := registry.Register(stubRenderer{name: "chrome"})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Fatalf("err = %v, want duplicate registration error", err)
	}
}

func TestRegistryListIsSorted(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "zeta"})
	registry.MustRegister(stubRenderer{name: "alpha"})

	if diff := cmp.Diff([]string{"alpha", "zeta"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistryMissingRenderer(t *testing.T) {
	registry := render.NewRegistry()
	if _, err := registry.Get("nope"); err == nil {
		t.Fatal("expected an error for a missing renderer")
	}
	if registry.Has("nope") {
		t.Fatal("Has reported a missing renderer as present")
	}
}
