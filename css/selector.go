package css

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// compound is one tag/id/class token group, e.g. "div.card#main".
type compound struct {
	tag     string
	id      string
	classes []string
}

func (c compound) empty() bool {
	return c.tag == "" && c.id == "" && len(c.classes) == 0
}

func (c compound) css() string {
	var b strings.Builder
	b.WriteString(c.tag)
	if c.id != "" {
		b.WriteByte('#')
		b.WriteString(c.id)
	}
	for _, cl := range c.classes {
		b.WriteByte('.')
		b.WriteString(cl)
	}
	return b.String()
}

// tokens returns the bare names of the compound, punctuation stripped. The
// universal selector carries no name.
func (c compound) tokens() []string {
	var out []string
	if c.tag != "" && c.tag != "*" {
		out = append(out, c.tag)
	}
	if c.id != "" {
		out = append(out, c.id)
	}
	out = append(out, c.classes...)
	return out
}

type stepKind int

const (
	stepState stepKind = iota // pseudo-class suffix, e.g. :hover
	stepChild                 // descendant combinator, optional nth-child
)

type step struct {
	kind  stepKind
	state string   // stepState: pseudo-class text without the colon
	child compound // stepChild
	nth   int      // stepChild: 1-based nth-child filter, 0 when absent
}

// Selector is an immutable CSS selector value: a base compound plus an
// ordered sequence of combinator steps. Deriving a state or child selector
// never mutates the original.
type Selector struct {
	base  compound
	steps []step
}

type selToken struct {
	tt   css.TokenType
	data string
}

// ParseSelector parses a CSS selector literal. Grouped (comma) selectors,
// sibling/child combinators and attribute selectors are outside the model
// and rejected; unbalanced brackets and empty input are malformed.
func ParseSelector(text string) (Selector, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Selector{}, fmt.Errorf("%w: empty selector", ErrParse)
	}

	lexer := css.NewLexer(parse.NewInputString(trimmed))
	var toks []selToken
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			if err := lexer.Err(); err != nil && err != io.EOF {
				return Selector{}, fmt.Errorf("%w: %v", ErrParse, err)
			}
			break
		}
		if tt != css.CommentToken {
			toks = append(toks, selToken{tt, string(data)})
		}
	}

	var (
		sel      Selector
		cur      compound
		curSet   bool
		baseDone bool
	)

	flush := func() {
		if !curSet {
			return
		}
		if !baseDone {
			sel.base = cur
			baseDone = true
		} else {
			sel.steps = append(sel.steps, step{kind: stepChild, child: cur})
		}
		cur = compound{}
		curSet = false
	}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.tt {
		case css.WhitespaceToken:
			flush()

		case css.IdentToken:
			if curSet {
				return Selector{}, fmt.Errorf("%w: unexpected %q in %q", ErrParse, t.data, trimmed)
			}
			cur.tag = t.data
			curSet = true

		case css.HashToken:
			cur.id = strings.TrimPrefix(t.data, "#")
			curSet = true

		case css.DelimToken:
			switch t.data {
			case ".":
				if i+1 >= len(toks) || toks[i+1].tt != css.IdentToken {
					return Selector{}, fmt.Errorf("%w: expected class name in %q", ErrParse, trimmed)
				}
				cur.classes = append(cur.classes, toks[i+1].data)
				curSet = true
				i++
			case "*":
				if curSet {
					return Selector{}, fmt.Errorf("%w: unexpected * in %q", ErrParse, trimmed)
				}
				cur.tag = "*"
				curSet = true
			case ">", "+", "~":
				return Selector{}, fmt.Errorf("%w: combinator %q is not supported", ErrParse, t.data)
			default:
				return Selector{}, fmt.Errorf("%w: unexpected %q in %q", ErrParse, t.data, trimmed)
			}

		case css.ColonToken:
			flush()
			baseDone = true
			if i+1 >= len(toks) {
				return Selector{}, fmt.Errorf("%w: dangling colon in %q", ErrParse, trimmed)
			}
			next := toks[i+1]
			switch next.tt {
			case css.IdentToken:
				sel.steps = append(sel.steps, step{kind: stepState, state: next.data})
				i++
			case css.FunctionToken:
				raw, adv, err := readPseudoFunction(toks[i+1:], trimmed)
				if err != nil {
					return Selector{}, err
				}
				i += adv
				if nth, ok := nthChildIndex(raw); ok && attachNth(&sel, nth) {
					break
				}
				sel.steps = append(sel.steps, step{kind: stepState, state: raw})
			default:
				return Selector{}, fmt.Errorf("%w: unexpected %q after colon in %q", ErrParse, next.data, trimmed)
			}

		case css.LeftBracketToken:
			for j := i + 1; j < len(toks); j++ {
				if toks[j].tt == css.RightBracketToken {
					return Selector{}, fmt.Errorf("%w: attribute selectors are not supported in %q", ErrParse, trimmed)
				}
			}
			return Selector{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrParse, trimmed)

		case css.RightBracketToken:
			return Selector{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrParse, trimmed)

		case css.CommaToken:
			return Selector{}, fmt.Errorf("%w: grouped selectors are not supported in %q", ErrParse, trimmed)

		default:
			return Selector{}, fmt.Errorf("%w: unexpected %q in %q", ErrParse, t.data, trimmed)
		}
	}
	flush()

	if sel.base.empty() && len(sel.steps) == 0 {
		return Selector{}, fmt.Errorf("%w: empty selector %q", ErrParse, text)
	}
	return sel, nil
}

// readPseudoFunction consumes a pseudo-class function like nth-child(2)
// starting at the FunctionToken and returns its raw text and the number of
// tokens consumed.
func readPseudoFunction(toks []selToken, src string) (raw string, adv int, err error) {
	var b strings.Builder
	b.WriteString(toks[0].data) // includes the opening parenthesis
	for j := 1; j < len(toks); j++ {
		if toks[j].tt == css.RightParenthesisToken {
			b.WriteByte(')')
			return b.String(), j + 1, nil
		}
		if toks[j].tt != css.WhitespaceToken {
			b.WriteString(toks[j].data)
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated pseudo-class in %q", ErrParse, src)
}

// nthChildIndex extracts N from "nth-child(N)" when N is a plain integer.
func nthChildIndex(raw string) (int, bool) {
	inner, ok := strings.CutPrefix(raw, "nth-child(")
	if !ok {
		return 0, false
	}
	inner = strings.TrimSuffix(inner, ")")
	n, err := strconv.Atoi(inner)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// attachNth folds an nth-child filter into the preceding child step, keeping
// the structural model instead of an opaque pseudo-class.
func attachNth(sel *Selector, nth int) bool {
	if len(sel.steps) == 0 {
		return false
	}
	last := &sel.steps[len(sel.steps)-1]
	if last.kind != stepChild || last.nth != 0 {
		return false
	}
	last.nth = nth
	return true
}

func (s Selector) clone() Selector {
	ns := s
	ns.steps = make([]step, len(s.steps))
	copy(ns.steps, s.steps)
	return ns
}

// On derives a new selector with a state pseudo-class appended, e.g.
// sel.On("hover"). The receiver is unchanged.
func (s Selector) On(state string) Selector {
	ns := s.clone()
	ns.steps = append(ns.steps, step{kind: stepState, state: strings.TrimPrefix(state, ":")})
	return ns
}

// Children derives a new selector with a descendant combinator over the
// given child selector. A positive nth further restricts the match to the
// 1-based nth child. The child selector must be a single compound.
func (s Selector) Children(selector string, nth int) (Selector, error) {
	child, err := ParseSelector(selector)
	if err != nil {
		return Selector{}, err
	}
	if len(child.steps) > 0 || child.base.empty() {
		return Selector{}, fmt.Errorf("%w: child selector %q must be a simple compound", ErrParse, selector)
	}
	ns := s.clone()
	ns.steps = append(ns.steps, step{kind: stepChild, child: child.base, nth: nth})
	return ns, nil
}

// CSS serializes the selector back to valid CSS selector syntax.
func (s Selector) CSS() string {
	var b strings.Builder
	b.WriteString(s.base.css())
	for _, st := range s.steps {
		switch st.kind {
		case stepState:
			b.WriteByte(':')
			b.WriteString(st.state)
		case stepChild:
			b.WriteByte(' ')
			b.WriteString(st.child.css())
			if st.nth > 0 {
				fmt.Fprintf(&b, ":nth-child(%d)", st.nth)
			}
		}
	}
	return b.String()
}

// Markup serializes the selector as a bare tag/class token list with CSS
// punctuation stripped, for non-CSS consumers such as markup attribute
// injection. State steps carry no tokens.
func (s Selector) Markup() string {
	tokens := s.base.tokens()
	for _, st := range s.steps {
		if st.kind == stepChild {
			tokens = append(tokens, st.child.tokens()...)
		}
	}
	return strings.Join(tokens, " ")
}

func (s Selector) String() string { return s.CSS() }
