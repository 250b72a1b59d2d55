package css

import (
	"sort"

	"spilled.ink/html/css/fixed"
	"spilled.ink/html/css/intern"
)

// Node is an opaque handle to a host document node. The matcher never
// looks inside it; every question about a node (its name, its parent, its
// attributes, its pseudo-class state) is answered through a Handler.
type Node interface{}

// Handler is the host document's vtable: the matcher
// asks it everything it needs to know about a node instead of walking a
// concrete DOM type. domtree implements this over golang.org/x/net/html.
type Handler interface {
	Parent(n Node) (Node, bool)
	PreviousSibling(n Node) (Node, bool)

	Name(n Node) intern.Handle
	ID(n Node) (intern.Handle, bool)
	Classes(n Node) []intern.Handle

	HasAttribute(n Node, name intern.Handle) bool
	AttributeEquals(n Node, name, value intern.Handle) bool
	AttributeIncludes(n Node, name, value intern.Handle) bool
	AttributeDashMatch(n Node, name, value intern.Handle) bool

	IsFirstChild(n Node) bool
	IsLink(n Node) bool
	IsVisited(n Node) bool
	IsHover(n Node) bool
	IsActive(n Node) bool
	IsFocus(n Node) bool
	IsLang(n Node, lang intern.Handle) bool

	// PresentationalHint returns a synthetic UA-origin declaration derived
	// from a legacy presentational attribute (e.g. HTML's <font color>),
	// per CSS 2.1 §6.4.4.
	PresentationalHint(n Node, op Opcode) (StyleDecl, bool)
	// UADefault returns the user-agent stylesheet's default for op when no
	// rule in any registered sheet sets it (e.g. "display: block" for a
	// <div>). It is consulted only for properties no matched declaration
	// sets, and a value it supplies takes the place of the property's
	// inherited or CSS 2.1 initial value.
	UADefault(n Node, op Opcode) (StyleDecl, bool)
	// ComputeFontSize resolves a specified font-size value (a keyword, a
	// length, or a percentage/relative keyword against the parent's
	// already-absolute size) to an absolute pixel length, consulting font
	// metrics the engine itself has no access to.
	ComputeFontSize(parentSize fixed.Int, parentUnit Unit, specified StyleDecl) (fixed.Int, Unit)
}

// sheetEntry is one stylesheet registered with a SelectionContext.
type sheetEntry struct {
	sheet  *Stylesheet
	origin Origin
	media  MediaMask
}

// SelectionContext holds the ordered set of stylesheets a document selects
// style from.
type SelectionContext struct {
	sheets []sheetEntry
}

// NewSelectionContext creates an empty selection context.
func NewSelectionContext() *SelectionContext {
	return &SelectionContext{}
}

// AppendSheet adds sheet at the end of the context's sheet list.
func (ctx *SelectionContext) AppendSheet(sheet *Stylesheet, origin Origin, media MediaMask) {
	ctx.sheets = append(ctx.sheets, sheetEntry{sheet, origin, media})
}

// InsertSheet adds sheet at index i in the context's sheet list.
func (ctx *SelectionContext) InsertSheet(i int, sheet *Stylesheet, origin Origin, media MediaMask) {
	if i < 0 {
		i = 0
	}
	if i > len(ctx.sheets) {
		i = len(ctx.sheets)
	}
	ctx.sheets = append(ctx.sheets, sheetEntry{})
	copy(ctx.sheets[i+1:], ctx.sheets[i:])
	ctx.sheets[i] = sheetEntry{sheet, origin, media}
}

// RemoveSheet removes the first registration of sheet, if present.
func (ctx *SelectionContext) RemoveSheet(sheet *Stylesheet) {
	for i, e := range ctx.sheets {
		if e.sheet == sheet {
			ctx.sheets = append(ctx.sheets[:i], ctx.sheets[i+1:]...)
			return
		}
	}
}

// CountSheets returns the number of registered sheets.
func (ctx *SelectionContext) CountSheets() int { return len(ctx.sheets) }

// GetSheet returns the sheet registered at index i.
func (ctx *SelectionContext) GetSheet(i int) (*Stylesheet, Origin, MediaMask) {
	e := ctx.sheets[i]
	return e.sheet, e.origin, e.media
}

// cascade tiers ("origin (UA < USER < AUTHOR),
// important-flipped, specificity, rule-index, selector-position"),
// expanded to CSS 2.1 §6.4.1's canonical five-bucket order plus a
// dedicated slot for presentational hints, which sit between the true
// user-agent defaults and the author's own rules.
const (
	tierUANormal = iota
	tierPresentational
	tierUserNormal
	tierAuthorNormal
	tierAuthorImportant
	tierUserImportant
	tierUAImportant
)

func cascadeTier(origin Origin, important bool) int {
	if !important {
		switch origin {
		case OriginUA:
			return tierUANormal
		case OriginUser:
			return tierUserNormal
		default:
			return tierAuthorNormal
		}
	}
	switch origin {
	case OriginAuthor:
		return tierAuthorImportant
	case OriginUser:
		return tierUserImportant
	default:
		return tierUAImportant
	}
}

type matchedDecl struct {
	tier        int
	specificity Specificity
	ruleIndex   int
	selPos      int
	decl        StyleDecl
}

// SelectStyle computes node's cascaded-and-composed style: it matches
// node against every selector in every registered sheet whose media mask
// intersects media, folds in presentational hints, inline declarations,
// and UA defaults, resolves the cascade, and composes the winning
// declarations against parent (nil for the root) to produce a fully
// resolved ComputedStyle.
//
// pseudoElement is "" to select the element's own style, or a
// pseudo-element name ("before", "first-line", ...) to select the style
// of that generated box — only selectors ending in a matching
// pseudo-element are considered in that case.
func (ctx *SelectionContext) SelectStyle(node Node, parent *ComputedStyle, pseudoElement string, media MediaMask, inline Style, h Handler) *ComputedStyle {
	var matches []matchedDecl

	for op := Opcode(1); op < opcodeCount; op++ {
		if d, ok := h.PresentationalHint(node, op); ok {
			matches = append(matches, matchedDecl{tier: tierPresentational, decl: d})
		}
	}

	collect := func(se sheetEntry, rules []*Rule) {
		for _, r := range rules {
			if r.Media&media == 0 {
				continue
			}
			pe, hasPE := r.Selector.PseudoElement()
			if pseudoElement == "" {
				if hasPE {
					continue
				}
			} else if !hasPE || !handleEqualsString(pe.Name, pseudoElement) {
				continue
			}
			if !matchesSelector(h, node, r.Selector) {
				continue
			}
			for _, d := range r.Style {
				matches = append(matches, matchedDecl{
					tier:        cascadeTier(se.origin, d.OPV.Important()),
					specificity: r.Specificity,
					ruleIndex:   r.Index,
					selPos:      r.Position,
					decl:        d,
				})
			}
		}
	}

	for _, se := range ctx.sheets {
		if se.media&media == 0 {
			continue
		}
		if id, ok := h.ID(node); ok {
			collect(se, se.sheet.hash.IterateID(id))
		}
		for _, cl := range h.Classes(node) {
			collect(se, se.sheet.hash.IterateClass(cl))
		}
		collect(se, se.sheet.hash.IterateElement(h.Name(node)))
		collect(se, se.sheet.hash.IterateUniversal())
	}

	if pseudoElement == "" {
		for _, d := range inline {
			matches = append(matches, matchedDecl{
				tier:        cascadeTier(OriginAuthor, d.OPV.Important()),
				specificity: MakeSpecificity(1, 0, 0, 0),
				ruleIndex:   1<<31 - 1,
				decl:        d,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.tier != b.tier {
			return a.tier < b.tier
		}
		if a.specificity != b.specificity {
			return a.specificity < b.specificity
		}
		if a.ruleIndex != b.ruleIndex {
			return a.ruleIndex < b.ruleIndex
		}
		return a.selPos < b.selPos
	})

	merged := make(map[Opcode]StyleDecl, len(matches))
	for _, m := range matches {
		merged[m.decl.OPV.Opcode()] = m.decl
	}
	for op := Opcode(1); op < opcodeCount; op++ {
		if _, ok := merged[op]; ok {
			continue
		}
		if d, ok := h.UADefault(node, op); ok {
			merged[op] = d
		}
	}

	style := make(Style, 0, len(merged))
	for op := Opcode(1); op < opcodeCount; op++ {
		if d, ok := merged[op]; ok {
			style = append(style, d)
		}
	}

	return Compose(parent, style, h.ComputeFontSize)
}

func handleEqualsString(h intern.Handle, s string) bool {
	return asciiEqualFold(h.Data(), s)
}

// matchesSelector reports whether node satisfies sel's whole right-to-left
// combinator chain.
func matchesSelector(h Handler, node Node, sel *Selector) bool {
	if !matchesCompound(h, node, sel.Details) {
		return false
	}
	if sel.Prev == nil {
		return true
	}
	switch sel.Combinator {
	case CombDescendant:
		anc, ok := h.Parent(node)
		for ok {
			if matchesSelector(h, anc, sel.Prev) {
				return true
			}
			anc, ok = h.Parent(anc)
		}
		return false
	case CombChild:
		p, ok := h.Parent(node)
		return ok && matchesSelector(h, p, sel.Prev)
	case CombAdjacent:
		p, ok := h.PreviousSibling(node)
		return ok && matchesSelector(h, p, sel.Prev)
	}
	return false
}

func matchesCompound(h Handler, node Node, details []Detail) bool {
	for _, d := range details {
		if !matchesDetail(h, node, d) {
			return false
		}
	}
	return true
}

func matchesDetail(h Handler, node Node, d Detail) bool {
	switch d.Kind {
	case SimUniversal:
		return true
	case SimElement:
		return intern.EqualFold(h.Name(node), d.Name)
	case SimClass:
		for _, c := range h.Classes(node) {
			if intern.Equal(c, d.Name) {
				return true
			}
		}
		return false
	case SimID:
		id, ok := h.ID(node)
		return ok && intern.Equal(id, d.Name)
	case SimAttrExists:
		return h.HasAttribute(node, d.Name)
	case SimAttrEqual:
		return h.AttributeEquals(node, d.Name, d.Arg)
	case SimAttrIncludes:
		return h.AttributeIncludes(node, d.Name, d.Arg)
	case SimAttrDashMatch:
		return h.AttributeDashMatch(node, d.Name, d.Arg)
	case SimPseudoClass:
		return matchesPseudoClass(h, node, d)
	case SimPseudoElement:
		// Filtered at the selector level (SelectStyle's pseudoElement
		// parameter); trivially satisfied once a selector has been
		// admitted for consideration at all.
		return true
	}
	return false
}

func matchesPseudoClass(h Handler, node Node, d Detail) bool {
	switch {
	case handleEqualsString(d.Name, "first-child"):
		return h.IsFirstChild(node)
	case handleEqualsString(d.Name, "link"):
		return h.IsLink(node)
	case handleEqualsString(d.Name, "visited"):
		return h.IsVisited(node)
	case handleEqualsString(d.Name, "hover"):
		return h.IsHover(node)
	case handleEqualsString(d.Name, "active"):
		return h.IsActive(node)
	case handleEqualsString(d.Name, "focus"):
		return h.IsFocus(node)
	case handleEqualsString(d.Name, "lang"):
		return h.IsLang(node, d.Arg)
	}
	// An unrecognised pseudo-class never matches, rather than failing the
	// whole selector at parse time (CSS 2.1 forward-compatible parsing).
	return false
}
