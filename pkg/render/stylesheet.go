package render

import (
	"fmt"
	"net/url"
	"path/filepath"
)

// fontFallbacks is the family chain used when no embedded font resolves.
const fontFallbacks = `'DejaVu Sans', 'Roboto', Arial, sans-serif`

// Stylesheet builds the auxiliary style text handed to the document
// renderer. When a font file is available it is embedded through an
// @font-face rule keyed to a file URI so Cyrillic and other non-Latin
// invoice data renders with full glyph coverage; otherwise only the
// fallback family chain is emitted.
func Stylesheet(fontPath string) string {
	if fontPath == "" {
		return fmt.Sprintf("body { font-family: %s; }", fontFallbacks)
	}

	uri := fileURI(fontPath)
	fontFace := "@font-face {\n" +
		"  font-family: 'DejaVuSansEmbedded';\n" +
		fmt.Sprintf("  src: url('%s') format('truetype');\n", uri) +
		"}\n"
	return fontFace + fmt.Sprintf("body { font-family: DejaVuSansEmbedded, %s; }", fontFallbacks)
}

func fileURI(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return u.String()
}
