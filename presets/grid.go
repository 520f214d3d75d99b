// Package presets builds ready-made style catalogs as plain call sequences
// over the css engine: a fluid grid system, a button kit and utility-class
// scales. Nothing here touches rendering, presets only populate a sheet.
package presets

import (
	"fmt"
	"math"

	"cssg/css"
)

// Breakpoint collapses the fluid grid below MaxWidth to at most Columns
// columns.
type Breakpoint struct {
	Name     string
	MaxWidth int
	Columns  int
}

// FluidGrid populates sheet with a flexbox row container (".grid") and
// width-fraction span classes ".span-1" … ".span-N". Each breakpoint adds a
// media scope that redefines the spans against the collapsed column count,
// widest breakpoint first so narrower scopes win the cascade.
func FluidGrid(sheet *css.StyleSheet, columns int, breakpoints []Breakpoint) error {
	if columns < 1 {
		return fmt.Errorf("%w: fluid grid needs at least 1 column, got %d", css.ErrConfiguration, columns)
	}

	sheet.Select(".grid").Flexbox("row").FlexWrap()

	spans := make([]*css.Style, columns)
	for i := 1; i <= columns; i++ {
		spans[i-1] = sheet.Select(fmt.Sprintf(".span-%d", i)).
			Width(float64(i) / float64(columns))
	}

	for _, bp := range breakpoints {
		cols := bp.Columns
		if cols < 1 {
			cols = 1
		}
		m, err := sheet.Media(0, bp.MaxWidth)
		if err != nil {
			return fmt.Errorf("breakpoint %q: %w", bp.Name, err)
		}
		for i, span := range spans {
			width := math.Min(1, float64(i+1)/float64(cols))
			sheet.Redefine(span).Width(width)
		}
		m.Close()
	}
	return sheet.Err()
}
