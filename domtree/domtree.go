// Package domtree adapts a golang.org/x/net/html node tree to the
// css.Handler vtable, the way html/htmlsafe adapts the same tree to its
// own tag/attribute allow-list using golang.org/x/net/html/atom.
package domtree

import (
	"strings"

	"golang.org/x/net/html"
	a "golang.org/x/net/html/atom"

	"spilled.ink/html/css"
	"spilled.ink/html/css/fixed"
	"spilled.ink/html/css/intern"
)

// nodeState holds the dynamic pseudo-class flags golang.org/x/net/html
// does not track itself (CSS 2.1 §5.11.3's :hover/:active/:focus, and
// visited-link history). A Tree's zero state answers false to all of them.
type nodeState struct {
	hover, active, focus, visited bool
}

// Tree wraps an html.Node document so css.SelectionContext can match
// selectors and compose computed style against it. Every Tree must share
// its Interner with the Stylesheets it is matched against: css.Detail
// names are compared by intern.Equal, which is pointer equality within one
// Table (intern.Equal is pointer equality within one Table).
type Tree struct {
	Interner *intern.Table
	Metrics  FontMetrics

	state   map[*html.Node]*nodeState
	uaCache map[a.Atom]css.Style
}

// NewTree creates a Tree that adapts the *html.Node values passed to its
// Handler methods (typically nodes of a tree returned by html.Parse),
// interning node names/attributes into interner — the same table used to
// build the Stylesheets the resulting Handler matches against.
func NewTree(interner *intern.Table, metrics FontMetrics) *Tree {
	if metrics == nil {
		metrics = DefaultFontMetrics{}
	}
	return &Tree{Interner: interner, Metrics: metrics, state: make(map[*html.Node]*nodeState)}
}

func (t *Tree) mutableState(n *html.Node) *nodeState {
	s := t.state[n]
	if s == nil {
		s = &nodeState{}
		t.state[n] = s
	}
	return s
}

// SetHover, SetActive, SetFocus, and SetVisited record the dynamic
// pseudo-class state of n (e.g. from a UI event loop) for subsequent
// SelectStyle calls to see through IsHover/IsActive/IsFocus/IsVisited.
func (t *Tree) SetHover(n *html.Node, v bool)   { t.mutableState(n).hover = v }
func (t *Tree) SetActive(n *html.Node, v bool)  { t.mutableState(n).active = v }
func (t *Tree) SetFocus(n *html.Node, v bool)   { t.mutableState(n).focus = v }
func (t *Tree) SetVisited(n *html.Node, v bool) { t.mutableState(n).visited = v }

func asNode(n css.Node) *html.Node { return n.(*html.Node) }

func (t *Tree) attr(n *html.Node, name string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && strings.EqualFold(attr.Key, name) {
			return attr.Val, true
		}
	}
	return "", false
}

// Parent returns n's nearest ancestor element, skipping the document node.
func (t *Tree) Parent(node css.Node) (css.Node, bool) {
	n := asNode(node).Parent
	for n != nil && n.Type != html.ElementNode {
		n = n.Parent
	}
	if n == nil {
		return nil, false
	}
	return n, true
}

// PreviousSibling returns n's nearest preceding sibling element.
func (t *Tree) PreviousSibling(node css.Node) (css.Node, bool) {
	n := asNode(node).PrevSibling
	for n != nil && n.Type != html.ElementNode {
		n = n.PrevSibling
	}
	if n == nil {
		return nil, false
	}
	return n, true
}

// Name returns n's lowercased tag name (golang.org/x/net/html already
// lowercases HTML element names while parsing).
func (t *Tree) Name(node css.Node) intern.Handle {
	return t.Interner.InternString(asNode(node).Data)
}

// ID returns the interned value of n's id attribute, if any.
func (t *Tree) ID(node css.Node) (intern.Handle, bool) {
	v, ok := t.attr(asNode(node), "id")
	if !ok || v == "" {
		return intern.Handle{}, false
	}
	return t.Interner.InternString(v), true
}

// Classes returns the interned whitespace-separated tokens of n's class
// attribute (CSS 2.1 §5.8.3).
func (t *Tree) Classes(node css.Node) []intern.Handle {
	v, ok := t.attr(asNode(node), "class")
	if !ok {
		return nil
	}
	fields := strings.Fields(v)
	if len(fields) == 0 {
		return nil
	}
	out := make([]intern.Handle, len(fields))
	for i, f := range fields {
		out[i] = t.Interner.InternString(f)
	}
	return out
}

func (t *Tree) HasAttribute(node css.Node, name intern.Handle) bool {
	_, ok := t.attr(asNode(node), string(name.Data()))
	return ok
}

func (t *Tree) AttributeEquals(node css.Node, name, value intern.Handle) bool {
	v, ok := t.attr(asNode(node), string(name.Data()))
	return ok && v == string(value.Data())
}

// AttributeIncludes implements [attr~=val]: val matches one whitespace-
// separated word of the attribute's value (CSS 2.1 §5.8.2).
func (t *Tree) AttributeIncludes(node css.Node, name, value intern.Handle) bool {
	v, ok := t.attr(asNode(node), string(name.Data()))
	if !ok {
		return false
	}
	want := string(value.Data())
	for _, f := range strings.Fields(v) {
		if f == want {
			return true
		}
	}
	return false
}

// AttributeDashMatch implements [attr|=val]: exact match, or val followed
// immediately by a hyphen (CSS 2.1 §5.8.2, used for language subtags).
func (t *Tree) AttributeDashMatch(node css.Node, name, value intern.Handle) bool {
	v, ok := t.attr(asNode(node), string(name.Data()))
	if !ok {
		return false
	}
	want := string(value.Data())
	return v == want || strings.HasPrefix(v, want+"-")
}

func (t *Tree) IsFirstChild(node css.Node) bool {
	_, ok := t.PreviousSibling(node)
	return !ok
}

func (t *Tree) IsLink(node css.Node) bool {
	n := asNode(node)
	if n.DataAtom != a.A && n.DataAtom != a.Area {
		return false
	}
	_, ok := t.attr(n, "href")
	return ok
}

func (t *Tree) IsVisited(node css.Node) bool {
	s := t.state[asNode(node)]
	return s != nil && s.visited
}

func (t *Tree) IsHover(node css.Node) bool {
	s := t.state[asNode(node)]
	return s != nil && s.hover
}

func (t *Tree) IsActive(node css.Node) bool {
	s := t.state[asNode(node)]
	return s != nil && s.active
}

func (t *Tree) IsFocus(node css.Node) bool {
	s := t.state[asNode(node)]
	return s != nil && s.focus
}

// IsLang walks up from n looking for the nearest lang attribute, dash-
// matching it against lang (CSS 2.1 §5.11.4's :lang()).
func (t *Tree) IsLang(node css.Node, lang intern.Handle) bool {
	n := asNode(node)
	for n != nil {
		if n.Type == html.ElementNode {
			if v, ok := t.attr(n, "lang"); ok {
				want := string(lang.Data())
				return v == want || strings.HasPrefix(strings.ToLower(v), strings.ToLower(want)+"-")
			}
		}
		n = n.Parent
	}
	return false
}

var _ css.Handler = (*Tree)(nil)

// FontMetrics resolves a specified font-size value to an absolute pixel
// length; ComputeFontSize (css.Handler's method of the same name) is
// implemented by delegating to the Tree's configured Metrics.
type FontMetrics interface {
	ComputeFontSize(parentSize fixed.Int, parentUnit css.Unit, specified css.StyleDecl) (fixed.Int, css.Unit)
}

func (t *Tree) ComputeFontSize(parentSize fixed.Int, parentUnit css.Unit, specified css.StyleDecl) (fixed.Int, css.Unit) {
	return t.Metrics.ComputeFontSize(parentSize, parentUnit, specified)
}
