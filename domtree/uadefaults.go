package domtree

import (
	"strconv"

	a "golang.org/x/net/html/atom"

	"spilled.ink/html/css"
)

// uaDefaultText is CSS 2.1 Appendix D's informative default style sheet
// for HTML 4, trimmed to the elements and properties this engine models
// (paged-media and generated-content properties are out of scope). Each
// entry is parsed once per Tree through the same ParseInlineStyle entry
// point an author style attribute goes through, rather than hand-building
// bytecode against the package's private enum tables.
var uaDefaultText = map[a.Atom]string{
	a.Head:   "display: none;",
	a.Title:  "display: none;",
	a.Script: "display: none;",
	a.Style:  "display: none;",
	a.Meta:   "display: none;",
	a.Link:   "display: none;",

	a.Html: "display: block;",
	a.Body: "display: block;",

	a.Div:        "display: block;",
	a.P:          "display: block;",
	a.Blockquote: "display: block;",
	a.Address:    "display: block;",
	a.Pre:        "display: block; white-space: pre;",
	a.Center:     "display: block; text-align: center;",

	a.H1: "display: block; font-weight: bold;",
	a.H2: "display: block; font-weight: bold;",
	a.H3: "display: block; font-weight: bold;",
	a.H4: "display: block; font-weight: bold;",
	a.H5: "display: block; font-weight: bold;",
	a.H6: "display: block; font-weight: bold;",

	a.Ul: "display: block;",
	a.Ol: "display: block;",
	a.Li: "display: list-item;",
	a.Dl: "display: block;",
	a.Dt: "display: block;",
	a.Dd: "display: block;",

	a.Table:  "display: table;",
	a.Caption: "display: table-caption;",
	a.Thead:  "display: table-header-group;",
	a.Tbody:  "display: table-row-group;",
	a.Tfoot:  "display: table-footer-group;",
	a.Tr:     "display: table-row;",
	a.Td:     "display: table-cell;",
	a.Th:     "display: table-cell; font-weight: bold; text-align: center;",

	a.Form:     "display: block;",
	a.Fieldset: "display: block;",
	a.Legend:   "display: block;",
	a.Hr:       "display: block;",

	a.B:      "font-weight: bold;",
	a.Strong: "font-weight: bold;",
	a.I:      "font-style: italic;",
	a.Em:     "font-style: italic;",
	a.U:      "text-decoration: underline;",
	a.S:      "text-decoration: line-through;",
	a.Strike: "text-decoration: line-through;",
}

func (t *Tree) uaStyle(at a.Atom) css.Style {
	if t.uaCache == nil {
		t.uaCache = make(map[a.Atom]css.Style)
	}
	if s, cached := t.uaCache[at]; cached {
		return s
	}
	var s css.Style
	if text, ok := uaDefaultText[at]; ok {
		s = css.ParseInlineStyle(t.Interner, []byte(text), false, nil)
	}
	t.uaCache[at] = s
	return s
}

// UADefault supplies the user-agent stylesheet's default for op, used for
// properties no matched declaration sets (css.Handler.UADefault).
func (t *Tree) UADefault(node css.Node, op css.Opcode) (css.StyleDecl, bool) {
	n := asNode(node)
	return t.uaStyle(n.DataAtom).Get(op)
}

// PresentationalHint derives a UA-origin declaration from one of HTML 4's
// legacy presentational attributes (CSS 2.1 §6.4.4) — the same attribute
// set html/htmlsafe already treats specially when sanitizing a document
// (Tag.Attrs for <font>, <img>, <table>/<td>/<th>, <hr>).
func (t *Tree) PresentationalHint(node css.Node, op css.Opcode) (css.StyleDecl, bool) {
	n := asNode(node)
	switch op {
	case css.OpColor:
		if n.DataAtom == a.Font {
			if v, ok := t.attr(n, "color"); ok {
				return hintDecl(t, op, "color: "+v+";")
			}
		}
	case css.OpBackgroundColor:
		if v, ok := t.attr(n, "bgcolor"); ok {
			return hintDecl(t, op, "background-color: "+v+";")
		}
	case css.OpTextAlign:
		if v, ok := t.attr(n, "align"); ok {
			switch v {
			case "left", "right", "center":
				return hintDecl(t, op, "text-align: "+v+";")
			}
		}
	case css.OpWidth:
		if v, ok := t.attr(n, "width"); ok {
			if unit := pixelOrPercent(v); unit != "" {
				return hintDecl(t, op, "width: "+unit+";")
			}
		}
	case css.OpHeight:
		if v, ok := t.attr(n, "height"); ok {
			if unit := pixelOrPercent(v); unit != "" {
				return hintDecl(t, op, "height: "+unit+";")
			}
		}
	}
	return css.StyleDecl{}, false
}

func hintDecl(t *Tree, op css.Opcode, text string) (css.StyleDecl, bool) {
	s := css.ParseInlineStyle(t.Interner, []byte(text), true, nil)
	return s.Get(op)
}

// pixelOrPercent turns a legacy HTML length attribute's value ("120" or
// "50%") into a CSS length/percentage token, or "" if it is not numeric.
func pixelOrPercent(v string) string {
	n := 0
	i := 0
	for i < len(v) && v[i] >= '0' && v[i] <= '9' {
		n = n*10 + int(v[i]-'0')
		i++
	}
	if i == 0 {
		return ""
	}
	if i < len(v) && v[i] == '%' {
		return strconv.Itoa(n) + "%"
	}
	if i == len(v) {
		return strconv.Itoa(n) + "px"
	}
	return ""
}
