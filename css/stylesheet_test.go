package css_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cssg/css"
)

func TestSelectIdempotent(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	a := sheet.Select(".btn")
	b := sheet.Select(".btn")
	if a != b {
		t.Fatalf("re-selecting the same selector created a new style")
	}

	a.Width(0.5)
	out := sheet.String()
	if got := strings.Count(out, ".btn {"); got != 1 {
		t.Errorf("got %d .btn blocks, want 1", got)
	}
}

func TestRenderEndToEnd(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	sheet.Select(".btn").Width(0.5)

	out := sheet.String()
	if !strings.Contains(out, ".btn {\n    width: 50%;\n}") {
		t.Errorf("missing rendered block in:\n%s", out)
	}
	if !strings.HasPrefix(out, "/* Made with cssg */") {
		t.Errorf("missing header in:\n%s", out)
	}
	if !strings.HasSuffix(out, "/* Generated 1 styles */") {
		t.Errorf("missing trailer in:\n%s", out)
	}
}

func TestEmptyStylesSkipped(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	empty := sheet.Select(".ghost")
	empty.On("hover").Color(css.Gray(1))

	out := sheet.String()
	if strings.Contains(out, ".ghost {") {
		t.Errorf("empty style was rendered:\n%s", out)
	}
	if !strings.Contains(out, ".ghost:hover {") {
		t.Errorf("child of empty style was skipped:\n%s", out)
	}
	if !strings.HasSuffix(out, "/* Generated 1 styles */") {
		t.Errorf("count should only include emitted blocks:\n%s", out)
	}
}

func TestNormalizePreamble(t *testing.T) {
	plain := css.NewStyleSheet(css.Options{})
	if strings.Contains(plain.String(), "box-sizing") {
		t.Errorf("preamble present without Normalize")
	}

	normalized := css.NewStyleSheet(css.Options{Normalize: true})
	if !strings.Contains(normalized.String(), "box-sizing: border-box") {
		t.Errorf("normalization preamble missing")
	}

	custom := css.NewStyleSheet(css.Options{Preamble: "/* custom reset */"})
	if !strings.Contains(custom.String(), "/* custom reset */") {
		t.Errorf("custom preamble missing")
	}
}

func TestBaseStyle(t *testing.T) {
	base := css.NewStyle().Rule("box-sizing", "border-box")
	sheet := css.NewStyleSheet(css.Options{Base: base})
	sheet.Select(".btn").Width(0.5)

	if !strings.Contains(sheet.String(), "box-sizing: border-box") {
		t.Errorf("base rules not applied to selected style")
	}
}

func TestMediaBlock(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	m, err := sheet.Media(0, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sheet.Select(".btn").Width(1.0)
	m.Close()
	sheet.Select(".other").Width(0.5)

	out := sheet.String()
	if !strings.Contains(out, "@media(max-width: 600px){\n") {
		t.Errorf("missing media prelude in:\n%s", out)
	}
	if !strings.Contains(out, "    .btn {\n        width: 100%;\n    }") {
		t.Errorf("media style not indented in:\n%s", out)
	}
	// Styles after Close go back to the top level.
	if !strings.Contains(out, "\n.other {") {
		t.Errorf("post-close style captured by media scope:\n%s", out)
	}

	both, err := sheet.Media(768, 1024)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer both.Close()
	if got := both.CSS(); got != "@media(min-width: 768px, max-width: 1024px)" {
		t.Errorf("two-bound prelude: got %q", got)
	}
}

func TestMediaErrors(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	if _, err := sheet.Media(0, 0); !errors.Is(err, css.ErrConfiguration) {
		t.Errorf("boundless media: got %v, want ErrConfiguration", err)
	}

	m, err := sheet.Media(0, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close()
	if _, err := sheet.Media(0, 900); !errors.Is(err, css.ErrConfiguration) {
		t.Errorf("nested media: got %v, want ErrConfiguration", err)
	}
}

func TestGet(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	sheet.Select(".btn", "button")

	if _, err := sheet.Get("button"); err != nil {
		t.Errorf("registered name: %v", err)
	}
	// The derived name works too when none is given.
	sheet.Select(".menu-item")
	if _, err := sheet.Get("menu_item"); err != nil {
		t.Errorf("derived name: %v", err)
	}

	if _, err := sheet.Get("nope"); !errors.Is(err, css.ErrNotFound) {
		t.Errorf("unknown name: got %v, want ErrNotFound", err)
	}
}

func TestDynamicRendering(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	used := sheet.Select(".used")
	used.Width(0.5)
	used.On("hover").Color(css.Gray(0))
	sheet.Select(".unused").Width(1.0)

	if _, err := sheet.Get("used"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := sheet.DynamicString()
	if !strings.Contains(out, ".used {") {
		t.Errorf("used style missing in:\n%s", out)
	}
	// Sub-styles ride along with their used parent.
	if !strings.Contains(out, ".used:hover {") {
		t.Errorf("sub-style of used parent missing in:\n%s", out)
	}
	if strings.Contains(out, ".unused") {
		t.Errorf("unused style rendered in:\n%s", out)
	}

	// The full render is unaffected.
	if !strings.Contains(sheet.String(), ".unused {") {
		t.Errorf("full render dropped unused style")
	}
}

func TestDynamicSkipsIdleMedia(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	m, err := sheet.Media(0, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sheet.Select(".narrow").Width(1.0)
	m.Close()

	if strings.Contains(sheet.DynamicString(), "@media") {
		t.Errorf("media block rendered without any used style")
	}

	if _, err := sheet.Get("narrow"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sheet.DynamicString(), "@media(max-width: 600px){") {
		t.Errorf("media block missing after use")
	}
}

func TestRedefine(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	btn := sheet.Select(".btn").Width(0.5)

	m, err := sheet.Media(0, 600)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sheet.Redefine(btn).Width(1.0)
	m.Close()

	out := sheet.String()
	if !strings.Contains(out, ".btn {\n    width: 50%;\n}") {
		t.Errorf("original definition lost:\n%s", out)
	}
	if !strings.Contains(out, "    .btn {\n        width: 100%;\n    }") {
		t.Errorf("redefinition missing inside media scope:\n%s", out)
	}
}

func TestAnimationDedup(t *testing.T) {
	frames := func() *css.Animation {
		return css.NewAnimation("pulse").
			Start(css.NewStyle().Rule("opacity", "1")).
			End(css.NewStyle().Rule("opacity", "0.5"))
	}
	sheet := css.NewStyleSheet(css.Options{})
	sheet.Select(".a").Animate(frames(), css.Sec(1), "")
	sheet.Select(".b").Animate(frames(), css.Sec(2), "infinite")

	out := sheet.String()
	if got := strings.Count(out, "@keyframes pulse {"); got != 1 {
		t.Errorf("got %d @keyframes blocks, want 1:\n%s", got, out)
	}
}

func TestAnimationOrder(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	a2 := css.NewAnimation("step10").End(css.NewStyle().Rule("opacity", "0"))
	a1 := css.NewAnimation("step2").End(css.NewStyle().Rule("opacity", "0"))
	sheet.Select(".x").Animate(a2, nil, "")
	sheet.Select(".y").Animate(a1, nil, "")

	out := sheet.String()
	i2 := strings.Index(out, "@keyframes step2")
	i10 := strings.Index(out, "@keyframes step10")
	if i2 < 0 || i10 < 0 || i2 > i10 {
		t.Errorf("animations not in natural name order (step2=%d, step10=%d)", i2, i10)
	}
}

func TestSheetErrPropagation(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	bad := sheet.Select(".a, .b")
	if !errors.Is(bad.Err(), css.ErrParse) {
		t.Errorf("detached style error: got %v", bad.Err())
	}
	if !errors.Is(sheet.Err(), css.ErrParse) {
		t.Errorf("sheet error: got %v", sheet.Err())
	}
	if out := sheet.String(); out != "" {
		t.Errorf("errored sheet rendered: %q", out)
	}

	// Sticky style errors surface through the sheet too.
	sheet2 := css.NewStyleSheet(css.Options{})
	sheet2.Select(".ok").Width("wrong")
	if !errors.Is(sheet2.Err(), css.ErrInvalidValue) {
		t.Errorf("style error not reachable from sheet: %v", sheet2.Err())
	}
}

func TestExtend(t *testing.T) {
	lib := css.NewStyleSheet(css.Options{})
	lib.Select(".btn", "button").Width(0.5)

	app := css.NewStyleSheet(css.Options{})
	app.Select(".app").Height(100)
	app.Extend(lib)

	out := app.String()
	if !strings.Contains(out, ".btn {") || !strings.Contains(out, ".app {") {
		t.Errorf("merged render incomplete:\n%s", out)
	}
	if _, err := app.Get("button"); err != nil {
		t.Errorf("name registry not merged: %v", err)
	}
}

func TestRenderFile(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	sheet.Select(".btn").Width(0.5)

	path := filepath.Join(t.TempDir(), "out.css")
	if err := sheet.RenderFile(path, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), ".btn {") {
		t.Errorf("file content incomplete:\n%s", data)
	}
}

func TestWriteTo(t *testing.T) {
	sheet := css.NewStyleSheet(css.Options{})
	sheet.Select(".btn").Width(0.5)

	var b strings.Builder
	n, err := sheet.WriteTo(&b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(b.Len()) {
		t.Errorf("byte count %d does not match output length %d", n, b.Len())
	}
}
