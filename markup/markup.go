// Package markup is a small HTML prototyping aid: it builds a document tree
// with beevik/etree and injects class and style attributes from css styles.
// It is not a templating engine and renders the whole tree on every call.
package markup

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/multierr"

	"cssg/css"
)

// Document is an HTML page bound to an optional stylesheet. When a sheet is
// set, rendering embeds its CSS in a <style> element in the head.
type Document struct {
	doc   *etree.Document
	head  *etree.Element
	body  *etree.Element
	style *etree.Element
	sheet *css.StyleSheet
}

// NewDocument creates an html/head/body skeleton with the given title.
// sheet may be nil for documents styled inline only.
func NewDocument(title string, sheet *css.StyleSheet) *Document {
	doc := etree.NewDocument()
	doc.CreateDirective("DOCTYPE html")

	html := doc.CreateElement("html")
	head := html.CreateElement("head")
	head.CreateElement("meta").CreateAttr("charset", "utf-8")
	head.CreateElement("title").SetText(title)
	body := html.CreateElement("body")

	return &Document{doc: doc, head: head, body: body, sheet: sheet}
}

// Body returns the body element for building content under it.
func (d *Document) Body() *Element {
	return &Element{el: d.body}
}

// Element wraps a node in the document tree. All methods return an Element
// so building can be chained; Child descends, the rest stay on the node.
type Element struct {
	el *etree.Element
}

// Child appends a new child element and applies the given styles as class
// tokens.
func (e *Element) Child(tag string, styles ...*css.Style) *Element {
	child := &Element{el: e.el.CreateElement(tag)}
	return child.Classed(styles...)
}

// Text sets the element's text content.
func (e *Element) Text(text string) *Element {
	e.el.SetText(text)
	return e
}

// Attr sets an attribute.
func (e *Element) Attr(key, value string) *Element {
	e.el.CreateAttr(key, value)
	return e
}

// Classed appends each style's selector token list to the class attribute.
// Anonymous styles carry no tokens and are skipped.
func (e *Element) Classed(styles ...*css.Style) *Element {
	for _, s := range styles {
		tokens := s.Markup()
		if tokens == "" {
			continue
		}
		if attr := e.el.SelectAttr("class"); attr != nil && attr.Value != "" {
			e.el.CreateAttr("class", attr.Value+" "+tokens)
		} else {
			e.el.CreateAttr("class", tokens)
		}
	}
	return e
}

// Styled injects the style's rules as an inline style attribute.
func (e *Element) Styled(s *css.Style) *Element {
	e.el.CreateAttr("style", s.CSS(true))
	return e
}

// Render writes the indented HTML document to w, refreshing the embedded
// stylesheet first.
func (d *Document) Render(w io.Writer) error {
	if err := d.refreshStyles(); err != nil {
		return err
	}
	d.doc.Indent(2)
	if _, err := d.doc.WriteTo(w); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}
	return nil
}

// RenderFile renders the document into path.
func (d *Document) RenderFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create document file %q: %w", path, err)
	}
	defer func() {
		if er := f.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close document file %q: %w", path, er))
		}
	}()
	return d.Render(f)
}

// String returns the rendered HTML, empty on error.
func (d *Document) String() string {
	var b strings.Builder
	if err := d.Render(&b); err != nil {
		return ""
	}
	return b.String()
}

func (d *Document) refreshStyles() error {
	if d.sheet == nil {
		return nil
	}
	if err := d.sheet.Err(); err != nil {
		return err
	}
	if d.style == nil {
		d.style = d.head.CreateElement("style")
	}
	d.style.SetText("\n" + d.sheet.String() + "\n")
	return nil
}
