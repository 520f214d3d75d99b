package css

import (
	"math"
	"strings"
)

// Animation is a named sequence of keyframes, each an offset in [0, 1] with
// a rule map. Two animations with the same name and identical keyframe
// content are considered equal and deduplicate at render time.
type Animation struct {
	name   string
	frames []keyframe
}

type keyframe struct {
	at    Percent
	rules *Style
}

// NewAnimation creates an empty keyframe set with the given name.
func NewAnimation(name string) *Animation {
	return &Animation{name: name}
}

// Name returns the @keyframes name referenced by animation-name rules.
func (a *Animation) Name() string { return a.name }

// At adds a keyframe at the given offset, clamped to [0, 1]. A keyframe
// already present at the same offset is replaced in place. A nil style
// produces an empty keyframe.
func (a *Animation) At(offset float64, style *Style) *Animation {
	p := Percent(clamp01(offset))
	rules := NewStyle()
	if style != nil {
		rules.Apply(style)
	}
	for i := range a.frames {
		if math.Abs(float64(a.frames[i].at-p)) < 1e-9 {
			a.frames[i].rules = rules
			return a
		}
	}
	a.frames = append(a.frames, keyframe{at: p, rules: rules})
	return a
}

// Start adds the 0% keyframe.
func (a *Animation) Start(style *Style) *Animation { return a.At(0, style) }

// End adds the 100% keyframe.
func (a *Animation) End(style *Style) *Animation { return a.At(1, style) }

// Err returns the first error recorded on any keyframe style.
func (a *Animation) Err() error {
	for _, f := range a.frames {
		if err := f.rules.Err(); err != nil {
			return err
		}
	}
	return nil
}

// CSS renders the @keyframes block, keyframes in declaration order.
func (a *Animation) CSS() string {
	var b strings.Builder
	b.WriteString("@keyframes ")
	b.WriteString(a.name)
	b.WriteString(" {\n")
	for _, f := range a.frames {
		b.WriteString("    ")
		b.WriteString(f.at.String())
		b.WriteString(" {\n")
		for _, r := range f.rules.Rules() {
			b.WriteString("        ")
			b.WriteString(r.Property)
			b.WriteString(": ")
			b.WriteString(r.Value)
			b.WriteString(";\n")
		}
		b.WriteString("    }\n")
	}
	b.WriteByte('}')
	return b.String()
}

// key is the render-time dedup identity: name plus full keyframe content.
func (a *Animation) key() string {
	return a.name + "\x00" + a.CSS()
}
