package css_test

import (
	"errors"
	"strings"
	"testing"

	"cssg/css"
)

func mustStyle(t *testing.T, selector string) *css.Style {
	t.Helper()
	s, err := css.ParseStyle(selector)
	if err != nil {
		t.Fatalf("ParseStyle(%q): %v", selector, err)
	}
	return s
}

func TestRuleOrderAndOverwrite(t *testing.T) {
	s := css.NewStyle().
		Rule("color", "red").
		Rule("width", "10px").
		Rule("color", "blue")

	rules := s.Rules()
	if len(rules) != 2 {
		t.Fatalf("got %d rules, want 2", len(rules))
	}
	if rules[0].Property != "color" || rules[0].Value != "blue" {
		t.Errorf("overwrite should keep position: got %+v", rules[0])
	}
	if rules[1].Property != "width" {
		t.Errorf("order lost: got %+v", rules[1])
	}
}

func TestFluentUnits(t *testing.T) {
	s := mustStyle(t, ".btn").
		Width(0.5).
		Height(100).
		Font(1.5).
		Margin(0.0).
		Padding(8)

	got := map[string]string{}
	for _, r := range s.Rules() {
		got[r.Property] = r.Value
	}
	want := map[string]string{
		"width":     "50%",
		"height":    "100px",
		"font-size": "1.5rem",
		"margin":    "0",
		"padding":   "8px",
	}
	for p, v := range want {
		if got[p] != v {
			t.Errorf("%s: got %q, want %q", p, got[p], v)
		}
	}
}

func TestStickyError(t *testing.T) {
	s := mustStyle(t, ".btn").
		Width("wrong").
		Height(100)

	if !errors.Is(s.Err(), css.ErrInvalidValue) {
		t.Fatalf("got %v, want ErrInvalidValue", s.Err())
	}
	// The failing rule is dropped, the chain keeps working.
	for _, r := range s.Rules() {
		if r.Property == "width" {
			t.Errorf("failed rule was stored: %+v", r)
		}
	}
	if len(s.Rules()) != 1 {
		t.Errorf("got %d rules, want 1", len(s.Rules()))
	}
}

func TestApply(t *testing.T) {
	base := css.NewStyle().Rule("color", "red").Rule("margin", "0")
	override := css.NewStyle().Rule("color", "blue")

	s := mustStyle(t, ".btn").Apply(base, override)
	got := map[string]string{}
	for _, r := range s.Rules() {
		got[r.Property] = r.Value
	}
	if got["color"] != "blue" {
		t.Errorf("later argument should win: got %q", got["color"])
	}
	if got["margin"] != "0" {
		t.Errorf("base rule lost: got %q", got["margin"])
	}

	// Applying an errored style taints the receiver.
	bad := css.NewStyle().Width("wrong")
	if err := mustStyle(t, ".x").Apply(bad).Err(); !errors.Is(err, css.ErrInvalidValue) {
		t.Errorf("error did not propagate through Apply: %v", err)
	}
}

func TestApplyAssociative(t *testing.T) {
	a := css.NewStyle().Rule("color", "red")
	b := css.NewStyle().Rule("color", "green").Rule("margin", "0")
	c := css.NewStyle().Rule("padding", "1rem").Rule("color", "blue")

	split := css.NewStyle().Apply(a, b).Apply(c)
	joined := css.NewStyle().Apply(a, b, c)

	sr, jr := split.Rules(), joined.Rules()
	if len(sr) != len(jr) {
		t.Fatalf("rule counts differ: %d vs %d", len(sr), len(jr))
	}
	for i := range sr {
		if sr[i] != jr[i] {
			t.Errorf("rule %d differs: %+v vs %+v", i, sr[i], jr[i])
		}
	}
}

func TestCSSBlock(t *testing.T) {
	s := mustStyle(t, ".btn").Width(0.5)
	want := ".btn {\n    width: 50%;\n}"
	if got := s.CSS(false); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestInline(t *testing.T) {
	s := css.NewStyle().Rule("color", "red").Rule("width", "10px")
	if got := s.CSS(true); got != "color: red;width: 10px;" {
		t.Errorf("inline: got %q", got)
	}
	if got := s.Inline(); got != `style="color: red;width: 10px;"` {
		t.Errorf("attribute: got %q", got)
	}
}

func TestSubStyles(t *testing.T) {
	s := mustStyle(t, ".btn")
	hover := s.On("hover").Color(css.Gray(1))

	if hover.Parent() != s {
		t.Errorf("hover parent is not the base style")
	}
	if got := hover.Selector().CSS(); got != ".btn:hover" {
		t.Errorf("hover selector: got %q", got)
	}
	if len(s.SubStyles()) != 1 || s.SubStyles()[0] != hover {
		t.Errorf("sub-style not registered on parent")
	}

	item := mustStyle(t, ".menu").NthChild("li", 2)
	if got := item.Selector().CSS(); got != ".menu li:nth-child(2)" {
		t.Errorf("nth-child selector: got %q", got)
	}

	// Anonymous styles cannot branch.
	if err := css.NewStyle().On("hover").Err(); !errors.Is(err, css.ErrConfiguration) {
		t.Errorf("anonymous On: got %v, want ErrConfiguration", err)
	}
}

func TestGrid(t *testing.T) {
	s := mustStyle(t, ".grid").Columns(3, 10)
	got := map[string]string{}
	for _, r := range s.Rules() {
		got[r.Property] = r.Value
	}
	if got["display"] != "grid" {
		t.Errorf("display: got %q", got["display"])
	}
	if want := "repeat(3, minmax(1fr, 1fr))"; got["grid-template-columns"] != want {
		t.Errorf("columns: got %q, want %q", got["grid-template-columns"], want)
	}
	if got["gap"] != "10px" {
		t.Errorf("gap: got %q", got["gap"])
	}

	if err := mustStyle(t, ".x").Grid(css.GridSpec{}).Err(); !errors.Is(err, css.ErrConfiguration) {
		t.Errorf("axis-less grid: got %v, want ErrConfiguration", err)
	}
}

func TestPlacement(t *testing.T) {
	s := mustStyle(t, ".cell").PlaceSpan(1, 3, 0, 0)
	got := map[string]string{}
	for _, r := range s.Rules() {
		got[r.Property] = r.Value
	}
	if got["grid-column"] != "1 / 4" {
		t.Errorf("span: got %q, want 1 / 4", got["grid-column"])
	}
	if _, ok := got["grid-row"]; ok {
		t.Errorf("skipped axis was written")
	}
}

func TestTransitionDefaults(t *testing.T) {
	s := mustStyle(t, ".btn").Transition("", nil, "", nil)
	got := map[string]string{}
	for _, r := range s.Rules() {
		got[r.Property] = r.Value
	}
	if got["transition-property"] != "all" {
		t.Errorf("property: got %q", got["transition-property"])
	}
	if got["transition-duration"] != "150ms" {
		t.Errorf("duration: got %q", got["transition-duration"])
	}
	if _, ok := got["transition-timing-function"]; ok {
		t.Errorf("empty timing was written")
	}
}

func TestAnimate(t *testing.T) {
	pulse := css.NewAnimation("pulse").
		Start(css.NewStyle().Rule("opacity", "1")).
		End(css.NewStyle().Rule("opacity", "0.5"))

	s := mustStyle(t, ".badge").Animate(pulse, css.Sec(2), "infinite")
	got := map[string]string{}
	for _, r := range s.Rules() {
		got[r.Property] = r.Value
	}
	if got["animation-name"] != "pulse" {
		t.Errorf("name: got %q", got["animation-name"])
	}
	if got["animation-duration"] != "2s" {
		t.Errorf("duration: got %q", got["animation-duration"])
	}
	if got["animation-iteration-count"] != "infinite" {
		t.Errorf("iterations: got %q", got["animation-iteration-count"])
	}

	if err := mustStyle(t, ".x").Animate(nil, nil, "").Err(); !errors.Is(err, css.ErrInvalidValue) {
		t.Errorf("nil animation: got %v, want ErrInvalidValue", err)
	}
}

func TestMarkupTokens(t *testing.T) {
	s := mustStyle(t, "div#main.card")
	if got := s.Markup(); got != "div main card" {
		t.Errorf("markup: got %q", got)
	}
	if !strings.Contains(s.String(), "card") {
		t.Errorf("String should mirror Markup, got %q", s.String())
	}
}
