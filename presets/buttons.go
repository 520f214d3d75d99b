package presets

import (
	"sort"

	"github.com/gosimple/slug"

	"cssg/css"
)

// Buttons populates sheet with a ".btn" base class and one ".btn-<name>"
// variant per palette entry, class names slugified from the palette keys.
// Each variant carries hover and active shades derived from its base color.
// Variants are emitted in sorted key order so output is deterministic.
func Buttons(sheet *css.StyleSheet, palette map[string]css.Color) error {
	sheet.Select(".btn", "btn").
		Display("inline-block").
		Padding(css.Rem(0.5)).
		PaddingLeft(css.Rem(1)).
		PaddingRight(css.Rem(1)).
		Rounded().
		Center().
		FontWeight(600).
		Transition("", nil, "ease-in-out", nil).
		Rule("cursor", "pointer").
		Rule("border", "none")

	names := make([]string, 0, len(palette))
	for name := range palette {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		color := palette[name]
		cls := slug.Make(name)
		variant := sheet.Select(".btn-"+cls, "btn_"+cls).
			Background(color).
			Color(color.Lit(0.96))
		variant.On("hover").Background(color.Brighter(0.1))
		variant.On("active").Background(color.Darker(0.1))
	}
	return sheet.Err()
}
