package css_test

import (
	"testing"

	"cssg/css"
)

func TestAnimationCSS(t *testing.T) {
	a := css.NewAnimation("pulse").
		Start(css.NewStyle().Rule("opacity", "1")).
		At(0.5, css.NewStyle().Rule("opacity", "0.25")).
		End(css.NewStyle().Rule("opacity", "1"))

	want := "@keyframes pulse {\n" +
		"    0% {\n        opacity: 1;\n    }\n" +
		"    50% {\n        opacity: 0.25;\n    }\n" +
		"    100% {\n        opacity: 1;\n    }\n" +
		"}"
	if got := a.CSS(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAnimationAtReplaces(t *testing.T) {
	a := css.NewAnimation("fade").
		At(0.5, css.NewStyle().Rule("opacity", "0.1")).
		At(0.5, css.NewStyle().Rule("opacity", "0.9"))

	want := "@keyframes fade {\n    50% {\n        opacity: 0.9;\n    }\n}"
	if got := a.CSS(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAnimationOffsetClamped(t *testing.T) {
	a := css.NewAnimation("slide").At(1.7, css.NewStyle().Rule("left", "0"))
	want := "@keyframes slide {\n    100% {\n        left: 0;\n    }\n}"
	if got := a.CSS(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAnimationKeyframeUnits(t *testing.T) {
	frame := css.NewStyle().Width(0.25).Translate(10, 0)
	a := css.NewAnimation("grow").End(frame)
	want := "@keyframes grow {\n    100% {\n        width: 25%;\n        transform: translate(10px, 0px);\n    }\n}"
	if got := a.CSS(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
