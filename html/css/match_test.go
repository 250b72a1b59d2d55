package css

import (
	"spilled.ink/html/css/fixed"
	"spilled.ink/html/css/intern"
	"testing"
)

// fakeNode is a minimal in-memory document used to exercise SelectStyle
// without pulling in domtree (which imports this package).
type fakeNode struct {
	name     string
	id       string
	classes  []string
	parent   *fakeNode
	prevSibl *fakeNode
}

// fakeHandler implements Handler over a tree of fakeNodes, with every
// pseudo-class and presentational hint fixed to "no".
type fakeHandler struct {
	interner *intern.Table
}

func (h *fakeHandler) n(node Node) *fakeNode { return node.(*fakeNode) }

func (h *fakeHandler) Parent(node Node) (Node, bool) {
	n := h.n(node)
	if n.parent == nil {
		return nil, false
	}
	return n.parent, true
}

func (h *fakeHandler) PreviousSibling(node Node) (Node, bool) {
	n := h.n(node)
	if n.prevSibl == nil {
		return nil, false
	}
	return n.prevSibl, true
}

func (h *fakeHandler) Name(node Node) intern.Handle { return h.interner.InternString(h.n(node).name) }

func (h *fakeHandler) ID(node Node) (intern.Handle, bool) {
	n := h.n(node)
	if n.id == "" {
		return intern.Handle{}, false
	}
	return h.interner.InternString(n.id), true
}

func (h *fakeHandler) Classes(node Node) []intern.Handle {
	n := h.n(node)
	out := make([]intern.Handle, len(n.classes))
	for i, c := range n.classes {
		out[i] = h.interner.InternString(c)
	}
	return out
}

func (h *fakeHandler) HasAttribute(node Node, name intern.Handle) bool       { return false }
func (h *fakeHandler) AttributeEquals(node Node, name, value intern.Handle) bool   { return false }
func (h *fakeHandler) AttributeIncludes(node Node, name, value intern.Handle) bool { return false }
func (h *fakeHandler) AttributeDashMatch(node Node, name, value intern.Handle) bool {
	return false
}
func (h *fakeHandler) IsFirstChild(node Node) bool { _, ok := h.PreviousSibling(node); return !ok }
func (h *fakeHandler) IsLink(node Node) bool       { return false }
func (h *fakeHandler) IsVisited(node Node) bool    { return false }
func (h *fakeHandler) IsHover(node Node) bool      { return false }
func (h *fakeHandler) IsActive(node Node) bool     { return false }
func (h *fakeHandler) IsFocus(node Node) bool      { return false }
func (h *fakeHandler) IsLang(node Node, lang intern.Handle) bool { return false }

func (h *fakeHandler) PresentationalHint(node Node, op Opcode) (StyleDecl, bool) {
	return StyleDecl{}, false
}
func (h *fakeHandler) UADefault(node Node, op Opcode) (StyleDecl, bool) { return StyleDecl{}, false }

func (h *fakeHandler) ComputeFontSize(parentSize fixed.Int, parentUnit Unit, specified StyleDecl) (fixed.Int, Unit) {
	if specified.Payload.Unit == UnitPX {
		return specified.Payload.Length, UnitPX
	}
	if parentSize == 0 {
		return fixed.FromInt(16), UnitPX
	}
	return parentSize, UnitPX
}

func mustSheet(t *testing.T, interner *intern.Table, src string) *Stylesheet {
	t.Helper()
	sh := NewStylesheet(interner, Config{Level: LanguageCSS21})
	if err := sh.AppendData([]byte(src)); err != nil {
		t.Fatalf("AppendData: %v", err)
	}
	if err := sh.DataDone(); err != nil {
		t.Fatalf("DataDone: %v", err)
	}
	return sh
}

func TestSelectStyleCascadeAndInherit(t *testing.T) {
	interner := intern.New()
	h := &fakeHandler{interner: interner}

	root := &fakeNode{name: "html"}
	body := &fakeNode{name: "body", parent: root}
	p := &fakeNode{name: "p", id: "lead", classes: []string{"note"}, parent: body}

	sheet := mustSheet(t, interner, `
		p { color: blue; }
		.note { color: green; }
		#lead { color: red; }
	`)
	ctx := NewSelectionContext()
	ctx.AppendSheet(sheet, OriginAuthor, MediaAll)

	rootStyle := ctx.SelectStyle(root, nil, "", MediaAll, nil, h)
	bodyStyle := ctx.SelectStyle(body, rootStyle, "", MediaAll, nil, h)
	pStyle := ctx.SelectStyle(p, bodyStyle, "", MediaAll, nil, h)

	// An ID selector outranks a class selector, which outranks a type
	// selector, regardless of source order (CSS 2.1 §6.4.3).
	d, ok := pStyle.Get(OpColor)
	if !ok || d.Payload.Color != RGBA(0xff, 0x00, 0x00, 0xff) {
		t.Errorf("p color = %+v, %v, want red (ID wins)", d, ok)
	}

	// color is inherited; body has no rule of its own, so it must carry
	// the root's computed initial value (black).
	bd, ok := bodyStyle.Get(OpColor)
	if !ok || bd.Payload.Color != RGBA(0x00, 0x00, 0x00, 0xff) {
		t.Errorf("body color = %+v, %v, want inherited black", bd, ok)
	}
}

// TestSelectStyleImportantBeatsSpecificity exercises spec.md §8 scenario 3:
// an !important author declaration outranks a higher-specificity normal
// author declaration, the single riskiest piece of match.go's cascadeTier
// ordering (tierAuthorImportant sorts above tierAuthorNormal even though
// an ID selector would otherwise outrank an element selector).
func TestSelectStyleImportantBeatsSpecificity(t *testing.T) {
	interner := intern.New()
	h := &fakeHandler{interner: interner}
	p := &fakeNode{name: "p", id: "id"}

	sheet := mustSheet(t, interner, `
		p { color: red !important; }
		p#id { color: blue; }
	`)
	ctx := NewSelectionContext()
	ctx.AppendSheet(sheet, OriginAuthor, MediaAll)

	style := ctx.SelectStyle(p, nil, "", MediaAll, nil, h)

	d, ok := style.Get(OpColor)
	if !ok || d.Payload.Color != RGBA(0xff, 0x00, 0x00, 0xff) {
		t.Errorf("color = %+v, %v, want red (!important wins over higher specificity)", d, ok)
	}
}

func TestSelectStyleInlineOverridesAuthor(t *testing.T) {
	interner := intern.New()
	h := &fakeHandler{interner: interner}
	root := &fakeNode{name: "div"}

	sheet := mustSheet(t, interner, `div { color: blue; }`)
	ctx := NewSelectionContext()
	ctx.AppendSheet(sheet, OriginAuthor, MediaAll)

	inline := ParseInlineStyle(interner, []byte("color: red;"), false, nil)
	style := ctx.SelectStyle(root, nil, "", MediaAll, inline, h)

	d, ok := style.Get(OpColor)
	if !ok || d.Payload.Color != RGBA(0xff, 0x00, 0x00, 0xff) {
		t.Errorf("color = %+v, %v, want red (inline wins over author rule)", d, ok)
	}
}
