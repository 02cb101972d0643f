package render

import (
	"regexp"

	"github.com/goliatone/go-invoicegen/pkg/records"
)

// tokenPattern matches `{{ token }}` placeholders: word characters, dots,
// and hyphens, optionally padded with whitespace inside the delimiters.
var tokenPattern = regexp.MustCompile(`\{\{\s*([\w.\-]+)\s*\}\}`)

// Context is the flat key-value mapping a template renders against: a
// flattened record plus engine-injected synthetic keys. It is rebuilt per
// render and never persisted back to the record.
type Context map[string]any

// ContextFromRecord flattens a record into a fresh render context.
func ContextFromRecord(rec *records.Record) Context {
	flat := records.Flatten(rec)
	ctx := make(Context, flat.Len())
	for _, key := range flat.Keys() {
		value, _ := flat.Get(key)
		ctx[key] = value
	}
	return ctx
}

// Engine substitutes placeholder tokens against a Context. Tokens resolve
// by exact string match; unmatched tokens render as empty string so missing
// data degrades to partial output instead of failing the run. There is no
// nesting, no conditionals or loops, and no escaping of literal braces.
type Engine struct{}

// NewEngine returns the placeholder substitution engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Render substitutes every recognized token in the template. A template
// with no recognized tokens is returned unchanged.
func (e *Engine) Render(template string, ctx Context) string {
	return tokenPattern.ReplaceAllStringFunc(template, func(match string) string {
		token := tokenPattern.FindStringSubmatch(match)[1]
		value, ok := ctx[token]
		if !ok {
			return ""
		}
		return records.FormatValue(value)
	})
}
