package render_test

import (
	"testing"

	"github.com/goliatone/go-invoicegen/pkg/records"
	"github.com/goliatone/go-invoicegen/pkg/render"
)

func TestEngineSubstitutesTokens(t *testing.T) {
	engine := render.NewEngine()

	cases := []struct {
		name     string
		template string
		ctx      render.Context
		want     string
	}{
		{
			name:     "plain token",
			template: "Invoice {{invoice_id}}",
			ctx:      render.Context{"invoice_id": "A1"},
			want:     "Invoice A1",
		},
		{
			name:     "whitespace padding",
			template: "{{  total   }}",
			ctx:      render.Context{"total": int64(10)},
			want:     "10",
		},
		{
			name:     "dotted path key",
			template: "{{ address.city }}",
			ctx:      render.Context{"address.city": "Riga"},
			want:     "Riga",
		},
		{
			name:     "hyphenated key",
			template: "{{ po-number }}",
			ctx:      render.Context{"po-number": "P-7"},
			want:     "P-7",
		},
		{
			name:     "unmatched token resolves empty",
			template: "[{{ missing }}]",
			ctx:      render.Context{},
			want:     "[]",
		},
		{
			name:     "nil value renders empty",
			template: "[{{ due }}]",
			ctx:      render.Context{"due": nil},
			want:     "[]",
		},
		{
			name:     "literal braces without token shape survive",
			template: "{{ not a token }} {{}}",
			ctx:      render.Context{"not": "x"},
			want:     "{{ not a token }} {{}}",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := engine.Render(tc.template, tc.ctx); got != tc.want {
				t.Fatalf("Render(%q) = %q, want %q", tc.template, got, tc.want)
			}
		})
	}
}

func TestEngineIdentityWithoutTokens(t *testing.T) {
	engine := render.NewEngine()
	template := "<html><body>static markup, no placeholders</body></html>"

	if got := engine.Render(template, render.Context{"unused": "x"}); got != template {
		t.Fatalf("Render changed a token-free template:\n%s", got)
	}
}

func TestContextFromRecordFlattens(t *testing.T) {
	address := records.NewRecord()
	address.Set("city", "Riga")

	rec := records.NewRecord()
	rec.Set("invoice_id", "A1")
	rec.Set("address", address)

	ctx := render.ContextFromRecord(rec)
	if ctx["invoice_id"] != "A1" {
		t.Fatalf("invoice_id = %v, want A1", ctx["invoice_id"])
	}
	if ctx["address.city"] != "Riga" {
		t.Fatalf("address.city = %v, want Riga", ctx["address.city"])
	}
	if _, ok := ctx["address"]; ok {
		t.Fatal("nested record leaked into the context under its own key")
	}
}
