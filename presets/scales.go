package presets

import (
	"fmt"

	"github.com/gosimple/slug"

	"cssg/css"
)

// TextScale populates sheet with ".text-1" … ".text-N" font-size utilities
// linearly interpolated between from and to rem.
func TextScale(sheet *css.StyleSheet, from, to float64, steps int) error {
	sizes, err := css.Scale(css.ToRem, from, to, steps)
	if err != nil {
		return fmt.Errorf("text scale: %w", err)
	}
	for i, size := range sizes {
		sheet.Select(fmt.Sprintf(".text-%d", i+1)).Font(size)
	}
	return sheet.Err()
}

// Shades populates sheet with background (".bg-<name>-i") and text
// (".fg-<name>-i") utilities interpolated between start and end.
func Shades(sheet *css.StyleSheet, name string, start, end css.Color, steps int) error {
	colors, err := css.Palette(start, end, steps)
	if err != nil {
		return fmt.Errorf("shades %q: %w", name, err)
	}
	cls := slug.Make(name)
	for i, color := range colors {
		sheet.Select(fmt.Sprintf(".bg-%s-%d", cls, i+1)).Background(color)
		sheet.Select(fmt.Sprintf(".fg-%s-%d", cls, i+1)).Color(color)
	}
	return sheet.Err()
}
