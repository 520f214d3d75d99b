package css

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Options configures a new StyleSheet.
type Options struct {
	// Normalize includes the embedded normalization preamble.
	Normalize bool
	// Preamble overrides the normalization blob with caller-supplied text.
	// The sheet treats it as opaque and never parses it.
	Preamble string
	// Base is applied to every newly selected style.
	Base *Style
	// Logger defaults to a nop logger.
	Logger *zap.Logger
}

// StyleSheet is the aggregate root: it owns top-level styles and media
// scopes, keeps name and selector registries, tracks which styles were
// accessed by name, and renders the whole structure to CSS text. It is not
// safe for concurrent mutation.
type StyleSheet struct {
	log        *zap.Logger
	styles     []*Style
	medias     []*MediaQuery
	byName     map[string]*Style
	bySelector map[string]*Style
	used       map[*Style]bool
	active     *MediaQuery
	base       *Style
	preamble   string
	err        error
}

// NewStyleSheet creates an empty sheet.
func NewStyleSheet(opts Options) *StyleSheet {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	preamble := opts.Preamble
	if preamble == "" && opts.Normalize {
		preamble = normalizeCSS
	}
	return &StyleSheet{
		log:        log.Named("sheet"),
		byName:     make(map[string]*Style),
		bySelector: make(map[string]*Style),
		used:       make(map[*Style]bool),
		base:       opts.Base,
		preamble:   preamble,
	}
}

func (s *StyleSheet) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}

// deriveName turns selector text into a registry name: CSS punctuation and
// dashes become underscores.
func deriveName(selector string) string {
	r := strings.NewReplacer("#", "_", ".", "_", "-", "_", " ", "_", "*", "_", ":", "_")
	return strings.Trim(r.Replace(selector), "_")
}

// Select returns the style registered under the literal selector text,
// creating it on first use. New styles receive the sheet's base rules and
// join either the top-level collection or the active media scope. The
// optional name registers the style for name-keyed (dynamic) access; when
// absent a name is derived from the selector text. Selection is idempotent
// per literal selector string.
func (s *StyleSheet) Select(selector string, name ...string) *Style {
	key := strings.TrimSpace(selector)
	reg := ""
	if len(name) > 0 && name[0] != "" {
		reg = name[0]
	} else {
		reg = deriveName(key)
	}

	if style, ok := s.bySelector[key]; ok {
		if reg != "" {
			s.byName[reg] = style
		}
		return style
	}

	sel, err := ParseSelector(key)
	if err != nil {
		s.log.Warn("Invalid selector", zap.String("selector", selector), zap.Error(err))
		s.fail(err)
		detached := NewStyle()
		detached.err = err
		return detached
	}

	style := NewStyleFor(sel)
	if s.base != nil {
		style.Apply(s.base)
	}
	s.bySelector[key] = style
	return s.Add(style, reg)
}

// Add inserts a pre-built style, bypassing selector-text deduplication.
// The style joins the active media scope when one is open.
func (s *StyleSheet) Add(style *Style, name ...string) *Style {
	if s.active != nil {
		s.active.add(style)
	} else {
		s.styles = append(s.styles, style)
	}
	if len(name) > 0 && name[0] != "" {
		s.byName[name[0]] = style
	}
	return style
}

// Redefine creates a fresh, empty style with the same selector and adds it
// to the sheet (or the active media scope), without touching the original.
// This is how a breakpoint overrides an already-selected style.
func (s *StyleSheet) Redefine(style *Style) *Style {
	var ns *Style
	if sel := style.Selector(); sel != nil {
		ns = NewStyleFor(*sel)
	} else {
		ns = NewStyle()
	}
	return s.Add(ns)
}

// Media opens a width-range scope; zero bounds are unset and at least one
// bound is required. Only one scope may be active at a time. The caller
// must Close the scope to resume top-level additions.
func (s *StyleSheet) Media(minWidth, maxWidth int) (*MediaQuery, error) {
	if minWidth <= 0 && maxWidth <= 0 {
		return nil, fmt.Errorf("%w: media scope needs min or max width", ErrConfiguration)
	}
	if s.active != nil {
		return nil, fmt.Errorf("%w: media scopes do not nest", ErrConfiguration)
	}
	m := &MediaQuery{sheet: s, minWidth: minWidth, maxWidth: maxWidth}
	s.medias = append(s.medias, m)
	s.active = m
	return m, nil
}

// Get returns the style registered under name and marks it used for
// dynamic rendering. Unknown names fail with ErrNotFound after a warning,
// since consuming template layers are known to swallow the error.
func (s *StyleSheet) Get(name string) (*Style, error) {
	style, ok := s.byName[name]
	if !ok {
		s.log.Warn("Style not defined", zap.String("name", name))
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	s.used[style] = true
	return style, nil
}

// Extend merges another sheet's top-level styles, registries and media
// scopes into this one. Name and selector collisions are last-write-wins.
func (s *StyleSheet) Extend(other *StyleSheet) *StyleSheet {
	for _, style := range other.styles {
		s.Add(style)
	}
	for name, style := range other.byName {
		s.byName[name] = style
	}
	for selector, style := range other.bySelector {
		s.bySelector[selector] = style
	}
	for _, m := range other.medias {
		s.medias = append(s.medias, m.clone(s))
	}
	return s
}

// Err returns the first sticky error recorded on the sheet or on any style
// reachable from it.
func (s *StyleSheet) Err() error {
	if s.err != nil {
		return s.err
	}
	var walk func(*Style) error
	walk = func(style *Style) error {
		if err := style.Err(); err != nil {
			return err
		}
		for _, child := range style.children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	for _, style := range s.styles {
		if err := walk(style); err != nil {
			return err
		}
	}
	for _, m := range s.medias {
		for _, style := range m.styles {
			if err := walk(style); err != nil {
				return err
			}
		}
	}
	return nil
}

// sheetWriter accumulates the byte count and the first write error so the
// render path stays linear.
type sheetWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (sw *sheetWriter) writeString(text string) {
	if sw.err != nil {
		return
	}
	n, err := io.WriteString(sw.w, text)
	sw.n += int64(n)
	sw.err = err
}

func (sw *sheetWriter) writef(format string, args ...any) {
	sw.writeString(fmt.Sprintf(format, args...))
}

// indentText prefixes every non-empty line of text.
func indentText(text, prefix string) string {
	if prefix == "" {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// isUsed reports whether the style or any of its ancestors was accessed by
// name. Sub-styles render dynamically when their parent was used.
func (s *StyleSheet) isUsed(style *Style) bool {
	for cur := style; cur != nil; cur = cur.parent {
		if s.used[cur] {
			return true
		}
	}
	return false
}

// renderStyle emits the style and then its children, depth-first pre-order.
// Styles with empty rule maps are skipped but their children still render.
// Returns the number of emitted blocks.
func (s *StyleSheet) renderStyle(sw *sheetWriter, style *Style, indent string, dynamic bool, anims map[string]*Animation) int {
	total := 0
	if !style.Empty() && (!dynamic || s.isUsed(style)) {
		sw.writeString(indentText(style.CSS(false), indent))
		sw.writeString("\n\n")
		total++
		for _, a := range style.anims {
			anims[a.key()] = a
		}
	}
	for _, child := range style.children {
		total += s.renderStyle(sw, child, indent, dynamic, anims)
	}
	return total
}

// render writes the whole sheet: header, preamble, styles, media blocks,
// deduplicated animations and the trailing block count.
func (s *StyleSheet) render(w io.Writer, dynamic bool) (int64, error) {
	if err := s.Err(); err != nil {
		return 0, err
	}

	sw := &sheetWriter{w: w}
	sw.writeString("/* Made with cssg */\n")
	sw.writeString("/* This file is autogenerated. Do not modify. */\n\n")
	if s.preamble != "" {
		sw.writeString(s.preamble)
		sw.writeString("\n")
	}

	total := 0
	anims := make(map[string]*Animation)

	for _, style := range s.styles {
		total += s.renderStyle(sw, style, "", dynamic, anims)
	}

	for _, m := range s.medias {
		if dynamic && !s.anyUsed(m) {
			continue
		}
		sw.writeString(m.CSS())
		sw.writeString("{\n")
		for _, style := range m.styles {
			total += s.renderStyle(sw, style, "    ", dynamic, anims)
		}
		sw.writeString("}\n\n")
	}

	keys := make([]string, 0, len(anims))
	for k := range anims {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return natural.Less(anims[keys[i]].Name(), anims[keys[j]].Name())
	})
	for _, k := range keys {
		if err := anims[k].Err(); err != nil {
			return sw.n, err
		}
		sw.writeString(anims[k].CSS())
		sw.writeString("\n\n")
	}

	sw.writef("/* Generated %d styles */", total)

	if sw.err == nil {
		s.log.Debug("Rendered stylesheet",
			zap.Int("styles", total),
			zap.Int("medias", len(s.medias)),
			zap.Int("animations", len(anims)),
			zap.Bool("dynamic", dynamic))
	}
	return sw.n, sw.err
}

func (s *StyleSheet) anyUsed(m *MediaQuery) bool {
	for _, style := range m.styles {
		if s.isUsed(style) && !style.Empty() {
			return true
		}
		for _, child := range style.children {
			if s.isUsed(child) {
				return true
			}
		}
	}
	return false
}

// Render writes the sheet to w. With dynamic only styles accessed by name
// (and their sub-styles) are emitted, enabling partial output for
// template-driven consumption.
func (s *StyleSheet) Render(w io.Writer, dynamic bool) error {
	_, err := s.render(w, dynamic)
	return err
}

// WriteTo implements io.WriterTo with a full (non-dynamic) render.
func (s *StyleSheet) WriteTo(w io.Writer) (int64, error) {
	return s.render(w, false)
}

// String returns the full CSS text, empty on error.
func (s *StyleSheet) String() string {
	var b strings.Builder
	if _, err := s.render(&b, false); err != nil {
		return ""
	}
	return b.String()
}

// DynamicString returns the CSS text restricted to used styles, empty on
// error.
func (s *StyleSheet) DynamicString() string {
	var b strings.Builder
	if _, err := s.render(&b, true); err != nil {
		return ""
	}
	return b.String()
}

// RenderFile creates (or truncates) path and writes the rendered sheet,
// closing the file on every exit path.
func (s *StyleSheet) RenderFile(path string, dynamic bool) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create stylesheet file %q: %w", path, err)
	}
	defer func() {
		if er := f.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close stylesheet file %q: %w", path, er))
		}
	}()
	_, err = s.render(f, dynamic)
	return err
}
