package css

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color with all channels normalized to [0, 1]. Alpha
// defaults to 1 (opaque). HSV/HLS views are computed on demand; hue uses a
// [0, 1) convention and wraps modulo 1 instead of erroring.
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func wrapHue(h float64) float64 {
	h -= math.Floor(h)
	return h
}

func checkChannels(what string, channels ...float64) error {
	for _, c := range channels {
		if c < 0 || c > 1 || math.IsNaN(c) {
			return fmt.Errorf("%w: %s channel %v outside [0, 1]", ErrInvalidValue, what, c)
		}
	}
	return nil
}

// RGB builds an opaque color from normalized red, green and blue channels.
func RGB(r, g, b float64) (Color, error) {
	return RGBA(r, g, b, 1)
}

// RGBA builds a color from normalized channels, alpha included.
func RGBA(r, g, b, a float64) (Color, error) {
	if err := checkChannels("rgb", r, g, b, a); err != nil {
		return Color{}, err
	}
	return Color{R: r, G: g, B: b, A: a}, nil
}

// HSV builds an opaque color from hue, saturation and value. Hue wraps
// modulo 1, saturation and value must be in [0, 1].
func HSV(h, s, v float64) (Color, error) {
	return HSVA(h, s, v, 1)
}

// HSVA is HSV with explicit alpha.
func HSVA(h, s, v, a float64) (Color, error) {
	if err := checkChannels("hsv", s, v, a); err != nil {
		return Color{}, err
	}
	c := colorful.Hsv(wrapHue(h)*360, s, v)
	return Color{R: c.R, G: c.G, B: c.B, A: a}, nil
}

// HLS builds an opaque color from hue, lightness and saturation. Hue wraps
// modulo 1, lightness and saturation must be in [0, 1].
func HLS(h, l, s float64) (Color, error) {
	return HLSA(h, l, s, 1)
}

// HLSA is HLS with explicit alpha.
func HLSA(h, l, s, a float64) (Color, error) {
	if err := checkChannels("hls", l, s, a); err != nil {
		return Color{}, err
	}
	return fromHLS(h, l, s, a), nil
}

// fromHLS skips range validation; internal callers clamp first.
func fromHLS(h, l, s, a float64) Color {
	c := colorful.Hsl(wrapHue(h)*360, s, l)
	return Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: a}
}

// Hex parses a #rrggbb or #rgb literal into an opaque color.
func Hex(text string) (Color, error) {
	c, err := colorful.Hex(text)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// HSV returns the hue/saturation/value view of the color, hue in [0, 1).
func (c Color) HSV() (h, s, v float64) {
	h, s, v = c.colorful().Hsv()
	return h / 360, s, v
}

// HLS returns the hue/lightness/saturation view of the color, hue in [0, 1).
func (c Color) HLS() (h, l, s float64) {
	h, s, l = c.colorful().Hsl()
	return h / 360, l, s
}

// Lit returns the same hue and saturation at an absolute lightness. Used to
// derive text or accent colors at a prescribed lightness regardless of the
// base color's own.
func (c Color) Lit(lightness float64) Color {
	h, _, s := c.HLS()
	return fromHLS(h, clamp01(lightness), s, c.A)
}

// Brighter shifts lightness up by amount, clamped to [0, 1].
func (c Color) Brighter(amount float64) Color {
	_, l, _ := c.HLS()
	return c.Lit(l + amount)
}

// Darker shifts lightness down by amount, clamped to [0, 1].
func (c Color) Darker(amount float64) Color {
	_, l, _ := c.HLS()
	return c.Lit(l - amount)
}

// Saturated returns the same hue and value at an absolute saturation.
func (c Color) Saturated(saturation float64) Color {
	h, _, v := c.HSV()
	cc := colorful.Hsv(wrapHue(h)*360, clamp01(saturation), v)
	return Color{R: clamp01(cc.R), G: clamp01(cc.G), B: clamp01(cc.B), A: c.A}
}

// Transparent returns the same color at a different alpha.
func (c Color) Transparent(alpha float64) Color {
	c.A = clamp01(alpha)
	return c
}

// Palette produces steps colors linearly interpolating each RGBA channel
// independently between start and end, inclusive of both endpoints.
func Palette(start, end Color, steps int) ([]Color, error) {
	rs, err := scaleFloats(start.R, end.R, steps)
	if err != nil {
		return nil, err
	}
	gs, _ := scaleFloats(start.G, end.G, steps)
	bs, _ := scaleFloats(start.B, end.B, steps)
	as, _ := scaleFloats(start.A, end.A, steps)

	out := make([]Color, steps)
	for i := range out {
		out[i] = Color{R: rs[i], G: gs[i], B: bs[i], A: as[i]}
	}
	return out, nil
}

func byteExact(v float64) bool {
	return math.Abs(v*255-math.Round(v*255)) < 1e-9
}

func toByte(v float64) int {
	return int(math.Round(clamp01(v) * 255))
}

// String renders the CSS literal: compact hex when the color is opaque and
// byte-exact, rgba() otherwise.
func (c Color) String() string {
	if c.A >= 1 && byteExact(c.R) && byteExact(c.G) && byteExact(c.B) {
		return c.colorful().Hex()
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		toByte(c.R), toByte(c.G), toByte(c.B),
		strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Shorthand constructors for the primary hues at a given lightness.

func Red(lightness float64) Color {
	return Color{R: 1, A: 1}.Lit(lightness)
}

func Green(lightness float64) Color {
	return Color{G: 1, A: 1}.Lit(lightness)
}

func Blue(lightness float64) Color {
	return Color{B: 1, A: 1}.Lit(lightness)
}

func Gray(lightness float64) Color {
	return Color{R: 1, G: 1, B: 1, A: 1}.Lit(lightness)
}
