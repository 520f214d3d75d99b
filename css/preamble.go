package css

import _ "embed"

// normalizeCSS is the default preamble: a small cross-browser reset in the
// spirit of modern-normalize. Sheets include it verbatim, before any
// generated styles.
//
//go:embed normalize.css
var normalizeCSS string
