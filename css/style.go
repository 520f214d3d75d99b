package css

import (
	"fmt"
	"strings"
)

// Rule is a single CSS property/value pair.
type Rule struct {
	Property string
	Value    string
}

// Style binds a selector to an ordered rule map plus a tree of sub-styles
// (states, children). Rules keep insertion order; re-setting a property
// overwrites in place. All fluent methods return the receiver so calls can
// be chained; the first invalid argument is recorded as a sticky error,
// exposed by Err and propagated at render time.
type Style struct {
	sel      *Selector
	rules    []Rule
	index    map[string]int
	parent   *Style
	children []*Style
	anims    []*Animation
	err      error
}

// NewStyle creates an anonymous style without a selector, usable for rule
// composition (Apply) and animation keyframes.
func NewStyle() *Style {
	return &Style{index: make(map[string]int)}
}

// NewStyleFor creates a style bound to the given selector.
func NewStyleFor(sel Selector) *Style {
	s := NewStyle()
	s.sel = &sel
	return s
}

// ParseStyle creates a style from a selector literal.
func ParseStyle(selector string) (*Style, error) {
	sel, err := ParseSelector(selector)
	if err != nil {
		return nil, err
	}
	return NewStyleFor(sel), nil
}

// Selector returns the style's selector, nil for anonymous styles.
func (s *Style) Selector() *Selector { return s.sel }

// Parent returns the style this one was derived from, nil for top-level
// styles. The reference is for lineage only, ownership stays with the
// container.
func (s *Style) Parent() *Style { return s.parent }

// SubStyles returns the owned sub-styles in declaration order.
func (s *Style) SubStyles() []*Style { return s.children }

// Err returns the first error recorded by a fluent method, if any.
func (s *Style) Err() error { return s.err }

func (s *Style) fail(err error) *Style {
	if s.err == nil {
		s.err = err
	}
	return s
}

// Rule sets a raw property/value pair. An existing property is overwritten
// in place, keeping its original position.
func (s *Style) Rule(property, value string) *Style {
	if i, ok := s.index[property]; ok {
		s.rules[i].Value = value
		return s
	}
	s.index[property] = len(s.rules)
	s.rules = append(s.rules, Rule{Property: property, Value: value})
	return s
}

// Rules returns a copy of the rule map in insertion order.
func (s *Style) Rules() []Rule {
	out := make([]Rule, len(s.rules))
	copy(out, s.rules)
	return out
}

// Empty reports whether the style has no rules of its own. Empty styles are
// never emitted, though their children still are.
func (s *Style) Empty() bool { return len(s.rules) == 0 }

// Apply copies every rule from each argument style, in argument order, into
// this style. Later arguments overwrite earlier ones on key collision. This
// is the mechanism for base/shared style inheritance.
func (s *Style) Apply(others ...*Style) *Style {
	for _, other := range others {
		if other == nil {
			continue
		}
		if other.err != nil {
			s.fail(other.err)
		}
		for _, r := range other.rules {
			s.Rule(r.Property, r.Value)
		}
		s.anims = append(s.anims, other.anims...)
	}
	return s
}

// ruleUnit resolves v through Infer with the call site's float default and
// writes it under property.
func (s *Style) ruleUnit(property string, v any, onFloat func(float64) Unit) *Style {
	u, err := Infer(v, onFloat)
	if err != nil {
		return s.fail(fmt.Errorf("%s: %w", property, err))
	}
	return s.Rule(property, u.String())
}

// Typography

// Font sets the font size. Integers are pixels, floats are rem.
func (s *Style) Font(size any) *Style {
	return s.ruleUnit("font-size", size, ToRem)
}

// FontWeight accepts a numeric weight (400, 700) or a keyword ("bold").
func (s *Style) FontWeight(weight any) *Style {
	switch w := weight.(type) {
	case int:
		return s.Rule("font-weight", fmtNum(float64(w)))
	case float64:
		return s.Rule("font-weight", fmtNum(w))
	case string:
		return s.Rule("font-weight", w)
	default:
		return s.fail(fmt.Errorf("font-weight: %w: cannot use %T", ErrInvalidValue, weight))
	}
}

func (s *Style) FontFamily(families ...string) *Style {
	return s.Rule("font-family", strings.Join(families, ", "))
}

func (s *Style) TextAlign(align string) *Style { return s.Rule("text-align", align) }
func (s *Style) Center() *Style                { return s.TextAlign("center") }
func (s *Style) Justify() *Style               { return s.TextAlign("justify") }

// Colors

func (s *Style) Color(c Color) *Style      { return s.Rule("color", c.String()) }
func (s *Style) Background(c Color) *Style { return s.Rule("background-color", c.String()) }

// Visibility

func (s *Style) Visibility(visibility string) *Style { return s.Rule("visibility", visibility) }
func (s *Style) Visible() *Style                     { return s.Visibility("visible") }
func (s *Style) Hidden() *Style                      { return s.Visibility("hidden") }

func (s *Style) Display(display string) *Style { return s.Rule("display", display) }

// Geometry. Sizing floats default to percentages, box-model floats to bare
// ratios; integers are always pixels.

func (s *Style) Width(v any) *Style     { return s.ruleUnit("width", v, ToPercent) }
func (s *Style) MinWidth(v any) *Style  { return s.ruleUnit("min-width", v, ToPercent) }
func (s *Style) MaxWidth(v any) *Style  { return s.ruleUnit("max-width", v, ToPercent) }
func (s *Style) Height(v any) *Style    { return s.ruleUnit("height", v, ToPercent) }
func (s *Style) MinHeight(v any) *Style { return s.ruleUnit("min-height", v, ToPercent) }
func (s *Style) MaxHeight(v any) *Style { return s.ruleUnit("max-height", v, ToPercent) }

func (s *Style) Margin(v any) *Style       { return s.ruleUnit("margin", v, ToScalar) }
func (s *Style) MarginLeft(v any) *Style   { return s.ruleUnit("margin-left", v, ToScalar) }
func (s *Style) MarginRight(v any) *Style  { return s.ruleUnit("margin-right", v, ToScalar) }
func (s *Style) MarginTop(v any) *Style    { return s.ruleUnit("margin-top", v, ToScalar) }
func (s *Style) MarginBottom(v any) *Style { return s.ruleUnit("margin-bottom", v, ToScalar) }

func (s *Style) Padding(v any) *Style       { return s.ruleUnit("padding", v, ToScalar) }
func (s *Style) PaddingLeft(v any) *Style   { return s.ruleUnit("padding-left", v, ToScalar) }
func (s *Style) PaddingRight(v any) *Style  { return s.ruleUnit("padding-right", v, ToScalar) }
func (s *Style) PaddingTop(v any) *Style    { return s.ruleUnit("padding-top", v, ToScalar) }
func (s *Style) PaddingBottom(v any) *Style { return s.ruleUnit("padding-bottom", v, ToScalar) }

// Rounded sets the corner radius, 0.25rem when no radius is given.
func (s *Style) Rounded(radius ...any) *Style {
	if len(radius) == 0 {
		return s.Rule("border-radius", Rem(0.25).String())
	}
	return s.ruleUnit("border-radius", radius[0], ToRem)
}

// Border sets a solid border of the given width and color.
func (s *Style) Border(width any, c Color) *Style {
	s.ruleUnit("border-width", width, ToRem)
	s.Rule("border-style", "solid")
	return s.Rule("border-color", c.String())
}

// Shadow sets a box shadow with the given offsets, blur radius and color.
func (s *Style) Shadow(x, y, blur any, c Color) *Style {
	xs, err := Infer(x, ToRem)
	if err != nil {
		return s.fail(fmt.Errorf("box-shadow: %w", err))
	}
	ys, err := Infer(y, ToRem)
	if err != nil {
		return s.fail(fmt.Errorf("box-shadow: %w", err))
	}
	bs, err := Infer(blur, ToRem)
	if err != nil {
		return s.fail(fmt.Errorf("box-shadow: %w", err))
	}
	return s.Rule("box-shadow", fmt.Sprintf("%s %s %s %s", xs, ys, bs, c))
}

// Flexbox layout

// Flexbox turns the style into a flex container, direction "row" when empty.
func (s *Style) Flexbox(direction string) *Style {
	if direction == "" {
		direction = "row"
	}
	s.Display("flex")
	return s.Rule("flex-direction", direction)
}

func (s *Style) FlexWrap() *Style                 { return s.Rule("flex-wrap", "wrap") }
func (s *Style) AlignItems(align string) *Style   { return s.Rule("align-items", align) }
func (s *Style) JustifyContent(j string) *Style   { return s.Rule("justify-content", j) }
func (s *Style) FlexGrow(grow float64) *Style     { return s.Rule("flex-grow", fmtNum(grow)) }
func (s *Style) FlexShrink(shrink float64) *Style { return s.Rule("flex-shrink", fmtNum(shrink)) }

// FlexBasis accepts pixels for integers and fr for floats.
func (s *Style) FlexBasis(v any) *Style { return s.ruleUnit("flex-basis", v, ToFr) }

// Gap sets the container gap. Float gaps default to fr to match grid tracks.
func (s *Style) Gap(v any) *Style { return s.ruleUnit("gap", v, ToFr) }

// Grid layout

// GridSpec configures a grid container. Columns and Rows accept an int
// (that many equal fr tracks), a Unit or a []Unit track list; at least one
// of them must be set.
type GridSpec struct {
	Columns     any
	Rows        any
	AutoColumns Unit
	AutoRows    Unit
	Gap         any
}

// Grid turns the style into a grid container per spec.
func (s *Style) Grid(spec GridSpec) *Style {
	if spec.Columns == nil && spec.Rows == nil {
		return s.fail(fmt.Errorf("%w: grid needs columns or rows", ErrConfiguration))
	}
	s.Display("grid")

	if spec.Columns != nil {
		tpl, err := GridTemplate(spec.Columns)
		if err != nil {
			return s.fail(fmt.Errorf("grid-template-columns: %w", err))
		}
		s.Rule("grid-template-columns", tpl)
	} else if spec.AutoColumns != nil {
		s.Rule("grid-auto-columns", spec.AutoColumns.String())
	}

	if spec.Rows != nil {
		tpl, err := GridTemplate(spec.Rows)
		if err != nil {
			return s.fail(fmt.Errorf("grid-template-rows: %w", err))
		}
		s.Rule("grid-template-rows", tpl)
	} else if spec.AutoRows != nil {
		s.Rule("grid-auto-rows", spec.AutoRows.String())
	}

	gap := spec.Gap
	if gap == nil {
		gap = 0
	}
	return s.Gap(gap)
}

// Columns is a shorthand for a grid of count equal columns.
func (s *Style) Columns(count int, gap any) *Style {
	return s.Grid(GridSpec{Columns: Repeat(count, Minmax(Fr(1), Fr(1))), Gap: gap})
}

// Rows is a shorthand for a grid of count equal rows.
func (s *Style) Rows(count int, gap any) *Style {
	return s.Grid(GridSpec{Rows: Repeat(count, Minmax(Fr(1), Fr(1))), Gap: gap})
}

// Place positions an item at the given 1-based grid cell. Zero skips an
// axis.
func (s *Style) Place(column, row int) *Style {
	if column > 0 {
		s.Rule("grid-column", fmtNum(float64(column)))
	}
	if row > 0 {
		s.Rule("grid-row", fmtNum(float64(row)))
	}
	return s
}

// PlaceSpan positions an item across inclusive 1-based cell ranges. Zero
// skips an axis.
func (s *Style) PlaceSpan(fromColumn, toColumn, fromRow, toRow int) *Style {
	if fromColumn > 0 {
		s.Rule("grid-column", fmt.Sprintf("%d / %d", fromColumn, toColumn+1))
	}
	if fromRow > 0 {
		s.Rule("grid-row", fmt.Sprintf("%d / %d", fromRow, toRow+1))
	}
	return s
}

// Positioning

func (s *Style) Position(position string) *Style { return s.Rule("position", position) }
func (s *Style) Absolute() *Style                { return s.Position("absolute") }
func (s *Style) Relative() *Style                { return s.Position("relative") }
func (s *Style) Fixed() *Style                   { return s.Position("fixed") }

func (s *Style) Left(v any) *Style   { return s.ruleUnit("left", v, ToScalar) }
func (s *Style) Right(v any) *Style  { return s.ruleUnit("right", v, ToScalar) }
func (s *Style) Top(v any) *Style    { return s.ruleUnit("top", v, ToScalar) }
func (s *Style) Bottom(v any) *Style { return s.ruleUnit("bottom", v, ToScalar) }

// Effects

// Transition declares a transition on the given property ("all" when
// empty); duration defaults to 150ms, timing and delay are optional.
func (s *Style) Transition(property string, duration Unit, timing string, delay Unit) *Style {
	if property == "" {
		property = "all"
	}
	if duration == nil {
		duration = Ms(150)
	}
	s.Rule("transition-property", property)
	s.Rule("transition-duration", duration.String())
	if timing != "" {
		s.Rule("transition-timing-function", timing)
	}
	if delay != nil {
		s.Rule("transition-delay", delay.String())
	}
	return s
}

// Scale sets a scale transform.
func (s *Style) Scale(factor float64) *Style {
	return s.Rule("transform", fmt.Sprintf("scale(%s)", fmtNum(factor)))
}

// Translate sets a translate transform; integers are pixels.
func (s *Style) Translate(x, y any) *Style {
	xs, err := Infer(x, ToRem)
	if err != nil {
		return s.fail(fmt.Errorf("transform: %w", err))
	}
	ys, err := Infer(y, ToRem)
	if err != nil {
		return s.fail(fmt.Errorf("transform: %w", err))
	}
	return s.Rule("transform", fmt.Sprintf("translate(%s, %s)", xs, ys))
}

// Animate binds a named animation to this style. Iterations may be a count
// ("3") or "infinite"; empty leaves the property unset. The animation is
// collected and deduplicated by the sheet renderer.
func (s *Style) Animate(a *Animation, duration Unit, iterations string) *Style {
	if a == nil {
		return s.fail(fmt.Errorf("%w: nil animation", ErrInvalidValue))
	}
	if duration == nil {
		duration = Sec(1)
	}
	s.Rule("animation-name", a.Name())
	s.Rule("animation-duration", duration.String())
	if iterations != "" {
		s.Rule("animation-iteration-count", iterations)
	}
	s.anims = append(s.anims, a)
	return s
}

// Sub-styles

// On declares a state variant (e.g. "hover") as a new child style bound to
// the derived selector and returns it for chaining.
func (s *Style) On(state string) *Style {
	if s.sel == nil {
		detached := NewStyle()
		detached.err = fmt.Errorf("%w: anonymous style cannot have state sub-styles", ErrConfiguration)
		return detached
	}
	child := NewStyleFor(s.sel.On(state))
	child.parent = s
	s.children = append(s.children, child)
	return child
}

// Children declares a nested-element style for descendants matching
// selector and returns it for chaining.
func (s *Style) Children(selector string) *Style {
	return s.NthChild(selector, 0)
}

// NthChild declares a nested-element style restricted to the 1-based nth
// positional child; nth <= 0 drops the positional filter.
func (s *Style) NthChild(selector string, nth int) *Style {
	if s.sel == nil {
		detached := NewStyle()
		detached.err = fmt.Errorf("%w: anonymous style cannot have child sub-styles", ErrConfiguration)
		return detached
	}
	sel, err := s.sel.Children(selector, nth)
	if err != nil {
		detached := NewStyle()
		detached.err = err
		s.fail(err)
		return detached
	}
	child := NewStyleFor(sel)
	child.parent = s
	s.children = append(s.children, child)
	return child
}

// Rendering

// CSS serializes only this style's own rule map, never descending into
// children. With inline it renders a bare "prop: value;" sequence for
// attribute injection, otherwise a full selector block.
func (s *Style) CSS(inline bool) string {
	var b strings.Builder
	if inline {
		for _, r := range s.rules {
			b.WriteString(r.Property)
			b.WriteString(": ")
			b.WriteString(r.Value)
			b.WriteByte(';')
		}
		return b.String()
	}

	if s.sel != nil {
		b.WriteString(s.sel.CSS())
		b.WriteByte(' ')
	}
	b.WriteString("{\n")
	for _, r := range s.rules {
		b.WriteString("    ")
		b.WriteString(r.Property)
		b.WriteString(": ")
		b.WriteString(r.Value)
		b.WriteString(";\n")
	}
	b.WriteByte('}')
	return b.String()
}

// Inline renders the style as an HTML style attribute.
func (s *Style) Inline() string {
	return fmt.Sprintf("style=%q", s.CSS(true))
}

// Markup renders the selector's bare token list, empty for anonymous
// styles.
func (s *Style) Markup() string {
	if s.sel == nil {
		return ""
	}
	return s.sel.Markup()
}

func (s *Style) String() string { return s.Markup() }
