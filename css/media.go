package css

import (
	"fmt"
	"strings"
)

// MediaQuery is a width-range scope over a sub-collection of styles. While
// the scope is active, styles added to the owning sheet are captured here
// instead of the sheet's top-level collection. The sheet remains the owner
// of all styles for lifetime purposes.
type MediaQuery struct {
	sheet    *StyleSheet
	minWidth int // 0 means unset
	maxWidth int // 0 means unset
	styles   []*Style
}

// Styles returns the styles captured by this scope, in capture order.
func (m *MediaQuery) Styles() []*Style { return m.styles }

func (m *MediaQuery) add(style *Style) {
	m.styles = append(m.styles, style)
}

// Close deactivates the scope: subsequent sheet additions go back to the
// top-level collection. Closing an inactive scope is a no-op.
func (m *MediaQuery) Close() {
	if m.sheet != nil && m.sheet.active == m {
		m.sheet.active = nil
	}
}

// CSS renders the @media prelude, omitting whichever bound is unset.
func (m *MediaQuery) CSS() string {
	var bounds []string
	if m.minWidth > 0 {
		bounds = append(bounds, fmt.Sprintf("min-width: %dpx", m.minWidth))
	}
	if m.maxWidth > 0 {
		bounds = append(bounds, fmt.Sprintf("max-width: %dpx", m.maxWidth))
	}
	return "@media(" + strings.Join(bounds, ", ") + ")"
}

// clone re-parents the scope onto another sheet, sharing style references.
// Used by StyleSheet.Extend.
func (m *MediaQuery) clone(sheet *StyleSheet) *MediaQuery {
	styles := make([]*Style, len(m.styles))
	copy(styles, m.styles)
	return &MediaQuery{
		sheet:    sheet,
		minWidth: m.minWidth,
		maxWidth: m.maxWidth,
		styles:   styles,
	}
}
