package css

import "spilled.ink/html/css/intern"

// SimpleKind classifies one simple selector component (CSS 2.1 §5.1's
// "simple selector": a type selector or universal selector followed by
// zero or more attribute/class/ID/pseudo selectors).
type SimpleKind uint8

const (
	SimUniversal SimpleKind = iota
	SimElement
	SimClass
	SimID
	SimAttrExists      // [attr]
	SimAttrEqual       // [attr=val]
	SimAttrIncludes    // [attr~=val]
	SimAttrDashMatch   // [attr|=val]
	SimPseudoClass     // :hover, :lang(x), :nth-child (treated as opaque name+arg)
	SimPseudoElement   // ::first-line, ::before (also the legacy single-colon form)
)

// Detail is one component of a compound (simple) selector.
type Detail struct {
	Kind SimpleKind
	Name intern.Handle // element/class/attribute/pseudo name
	Arg  intern.Handle // attribute value, or a pseudo-class function argument
}

// Combinator is the relationship between two compound selectors in a
// selector chain (CSS 2.1 §5.2).
type Combinator uint8

const (
	CombNone        Combinator = iota // the single (rightmost) compound
	CombDescendant                    // "E F"
	CombChild                         // "E > F"
	CombAdjacent                      // "E + F"
)

// Selector is one compound selector plus a back-pointer to the compound
// it's combined with, forming a right-to-left linked chain: matching
// starts at the rightmost (key) compound and walks Prev through
// ancestors/siblings.
type Selector struct {
	Details    []Detail
	Combinator Combinator
	Prev       *Selector
}

// Specificity packs the CSS 2.1 Appendix F specificity tuple (a, b, c, d)
// into a single comparable integer: a<<24 | b<<16 | c<<8 | d. Each
// component is clamped to 0-255; the packed layout is an implementation
// choice as long as comparisons respect CSS 2.1's specificity ordering,
// and no real stylesheet selector approaches 255 ID/class/type components
// in one chain.
type Specificity uint32

func MakeSpecificity(a, b, c, d int) Specificity {
	return Specificity(uint32(clampByte(a))<<24 | uint32(clampByte(b))<<16 | uint32(clampByte(c))<<8 | uint32(clampByte(d)))
}

func clampByte(n int) uint8 {
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

// Compute returns the selector's specificity (Appendix F): a counts
// inline style (always 0 here — inline styles are scored separately by
// the caller), b counts ID selectors, c counts class/attribute/
// pseudo-class selectors, d counts type selectors and pseudo-elements.
func (s *Selector) Compute() Specificity {
	var b, c, d int
	for sel := s; sel != nil; sel = sel.Prev {
		for _, det := range sel.Details {
			switch det.Kind {
			case SimID:
				b++
			case SimClass, SimAttrExists, SimAttrEqual, SimAttrIncludes, SimAttrDashMatch, SimPseudoClass:
				c++
			case SimElement, SimPseudoElement:
				d++
			}
		}
	}
	return MakeSpecificity(0, b, c, d)
}

// Key returns the rightmost compound's single most-selective Detail used
// to bucket the selector in a SelectorHash: an ID detail if present,
// otherwise the first class, otherwise the element name, otherwise
// ok=false (a universal-keyed selector, hashed into the "any" bucket).
func (s *Selector) Key() (Detail, bool) {
	var class, elem *Detail
	for i := range s.Details {
		d := &s.Details[i]
		switch d.Kind {
		case SimID:
			return *d, true
		case SimClass:
			if class == nil {
				class = d
			}
		case SimElement:
			if elem == nil {
				elem = d
			}
		}
	}
	if class != nil {
		return *class, true
	}
	if elem != nil {
		return *elem, true
	}
	return Detail{}, false
}

// PseudoElement returns the pseudo-element Detail attached to the
// rightmost compound, if any (a selector may carry at most one, always
// trailing CSS 2.1 §5.11).
func (s *Selector) PseudoElement() (Detail, bool) {
	for _, d := range s.Details {
		if d.Kind == SimPseudoElement {
			return d, true
		}
	}
	return Detail{}, false
}

// legacyPseudoElements is the CSS 2.1 set recognised with the legacy single-colon
// form (":first-line", not just "::first-line").
var legacyPseudoElements = map[string]bool{
	"first-line":   true,
	"first-letter": true,
	"before":       true,
	"after":        true,
}

// selectorParser builds a Selector chain from a run of selector-grammar
// tokens (CSS Syntax's "component value" stream restricted to CSS 2.1's
// selector grammar, §5). It works on a rule prelude that events.go's
// collectPrelude has already gathered into a []Value; stylesheet.go
// passes that prelude to parseSelectorList.
type selectorParser struct {
	interner *intern.Table

	// quirks enables CSS 2.1 quirks-mode leniency: a run of combinators
	// and/or whitespace with no compound selector between them (e.g.
	// "div >  > p", "div >+ p") collapses to a single combinator instead
	// of failing the parse, keeping the last combinator of the run.
	quirks bool
}

func newSelectorParser(interner *intern.Table, quirks bool) *selectorParser {
	return &selectorParser{interner: interner, quirks: quirks}
}

// parseSelectorList parses a comma-separated selector list from a flat
// prelude token run (as produced by the language parser's qualified-rule
// prelude capture — Ident/Delim('.')/Hash/Colon/LeftBrack.../S/Comma
// tokens, no declarations). It returns one *Selector per comma-separated
// entry.
func (sp *selectorParser) parseSelectorList(toks []Value) ([]*Selector, bool) {
	var out []*Selector
	start := 0
	depth := 0
	for i, t := range toks {
		switch t.Type {
		case ValueDelim:
			if len(t.Value) == 1 && t.Value[0] == '[' {
				depth++
			} else if len(t.Value) == 1 && t.Value[0] == ']' {
				depth--
			}
		}
		if t.Type == ValueComma && depth == 0 {
			sel, ok := sp.parseSelector(toks[start:i])
			if !ok {
				return nil, false
			}
			out = append(out, sel)
			start = i + 1
		}
	}
	sel, ok := sp.parseSelector(toks[start:])
	if !ok {
		return nil, false
	}
	out = append(out, sel)
	return out, true
}

// parseSelector parses one selector (no top-level commas) into a
// right-most-first Selector chain.
func (sp *selectorParser) parseSelector(toks []Value) (*Selector, bool) {
	toks = trimDelimSpace(toks)
	if len(toks) == 0 {
		return nil, false
	}
	// Split on combinators (>, +, and implicit descendant whitespace —
	// which the prelude collector represents as an explicit
	// ValueWhitespaceCombinator Value inserted between compounds; see
	// events.go's collectPrelude).
	var groups [][]Value
	var combs []Combinator
	start := 0
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Type == ValueDelim && len(t.Value) == 1 && (t.Value[0] == '>' || t.Value[0] == '+') {
			groups = append(groups, toks[start:i])
			if t.Value[0] == '>' {
				combs = append(combs, CombChild)
			} else {
				combs = append(combs, CombAdjacent)
			}
			start = i + 1
		} else if t.Type == ValueWhitespaceCombinator {
			groups = append(groups, toks[start:i])
			combs = append(combs, CombDescendant)
			start = i + 1
		}
	}
	groups = append(groups, toks[start:])

	if sp.quirks {
		groups, combs = collapseEmptyGroups(groups, combs)
	}

	var sel *Selector
	for i, g := range groups {
		details, ok := sp.parseCompound(g)
		if !ok {
			return nil, false
		}
		comb := CombNone
		if i > 0 {
			comb = combs[i-1]
		}
		sel = &Selector{Details: details, Combinator: comb, Prev: sel}
	}
	return sel, true
}

// collapseEmptyGroups drops interior compound groups left empty by a run
// of adjacent combinators/whitespace (quirks-mode leniency: "div >  > p"
// or "div >+ p" collapse instead of failing the parse), keeping the last
// combinator of the run so the strongest relationship wins. The first and
// last group are never dropped: a selector must still start and end on an
// actual compound.
func collapseEmptyGroups(groups [][]Value, combs []Combinator) ([][]Value, []Combinator) {
	outGroups := make([][]Value, 0, len(groups))
	outCombs := make([]Combinator, 0, len(combs))
	pending := false
	var pendingComb Combinator
	for i, g := range groups {
		if len(g) == 0 && i != 0 && i != len(groups)-1 {
			pendingComb = combs[i-1]
			pending = true
			continue
		}
		if len(outGroups) > 0 {
			c := combs[i-1]
			if pending {
				c = pendingComb
				pending = false
			}
			outCombs = append(outCombs, c)
		}
		outGroups = append(outGroups, g)
	}
	return outGroups, outCombs
}

func trimDelimSpace(toks []Value) []Value {
	i, j := 0, len(toks)
	for i < j && toks[i].Type == ValueWhitespaceCombinator {
		i++
	}
	for j > i && toks[j-1].Type == ValueWhitespaceCombinator {
		j--
	}
	return toks[i:j]
}

// parseCompound parses one compound selector (a type/universal selector
// followed by class/id/attribute/pseudo selectors, in any CSS2.1-legal
// order).
func (sp *selectorParser) parseCompound(toks []Value) ([]Detail, bool) {
	var details []Detail
	i := 0
	if i < len(toks) {
		t := toks[i]
		switch {
		case t.Type == ValueDelim && len(t.Value) == 1 && t.Value[0] == '*':
			details = append(details, Detail{Kind: SimUniversal})
			i++
		case t.Type == ValueIdent:
			details = append(details, Detail{Kind: SimElement, Name: sp.interner.Intern(t.Value)})
			i++
		}
	}
	for i < len(toks) {
		t := toks[i]
		switch {
		case t.Type == ValueDelim && len(t.Value) == 1 && t.Value[0] == '.':
			i++
			if i >= len(toks) || toks[i].Type != ValueIdent {
				return nil, false
			}
			details = append(details, Detail{Kind: SimClass, Name: sp.interner.Intern(toks[i].Value)})
			i++
		case t.Type == ValueHash:
			details = append(details, Detail{Kind: SimID, Name: sp.interner.Intern(t.Value)})
			i++
		case t.Type == ValueDelim && len(t.Value) == 1 && t.Value[0] == '[':
			det, next, ok := sp.parseAttr(toks, i+1)
			if !ok {
				return nil, false
			}
			details = append(details, det)
			i = next
		case t.Type == ValueDelim && len(t.Value) == 1 && t.Value[0] == ':':
			det, next, ok := sp.parsePseudo(toks, i+1)
			if !ok {
				return nil, false
			}
			details = append(details, det)
			i = next
		default:
			return nil, false
		}
	}
	if len(details) == 0 {
		return nil, false
	}
	return details, true
}

func (sp *selectorParser) parseAttr(toks []Value, i int) (Detail, int, bool) {
	if i >= len(toks) || toks[i].Type != ValueIdent {
		return Detail{}, 0, false
	}
	name := toks[i].Value
	i++
	det := Detail{Kind: SimAttrExists, Name: sp.interner.Intern(name)}
	if i < len(toks) {
		switch toks[i].Type {
		case ValueIncludeMatch:
			det.Kind = SimAttrIncludes
			i++
		case ValueDashMatch:
			det.Kind = SimAttrDashMatch
			i++
		case ValueDelim:
			if len(toks[i].Value) == 1 && toks[i].Value[0] == '=' {
				det.Kind = SimAttrEqual
				i++
			}
		}
	}
	if det.Kind != SimAttrExists {
		if i >= len(toks) || (toks[i].Type != ValueIdent && toks[i].Type != ValueString) {
			return Detail{}, 0, false
		}
		det.Arg = sp.interner.Intern(toks[i].Value)
		i++
	}
	if i >= len(toks) || toks[i].Type != ValueDelim || len(toks[i].Value) != 1 || toks[i].Value[0] != ']' {
		return Detail{}, 0, false
	}
	return det, i + 1, true
}

func (sp *selectorParser) parsePseudo(toks []Value, i int) (Detail, int, bool) {
	kind := SimPseudoClass
	if i < len(toks) && toks[i].Type == ValueDelim && len(toks[i].Value) == 1 && toks[i].Value[0] == ':' {
		kind = SimPseudoElement
		i++
	}
	if i >= len(toks) {
		return Detail{}, 0, false
	}
	switch toks[i].Type {
	case ValueIdent:
		name := toks[i].Value
		if kind == SimPseudoClass && legacyPseudoElements[string(name)] {
			kind = SimPseudoElement
		}
		return Detail{Kind: kind, Name: sp.interner.Intern(name)}, i + 1, true
	case ValueFunction:
		name := toks[i].Value
		i++
		var args []byte
		for i < len(toks) {
			if toks[i].Type == ValueDelim && len(toks[i].Value) == 1 && toks[i].Value[0] == ')' {
				i++
				break
			}
			args = append(args, toks[i].Raw...)
			i++
		}
		det := Detail{Kind: kind, Name: sp.interner.Intern(name)}
		if args != nil {
			det.Arg = sp.interner.Intern(args)
		}
		return det, i, true
	}
	return Detail{}, 0, false
}

// ValueWhitespaceCombinator is a synthetic ValueType emitted only by the
// rule-prelude collector (events.go's collectPrelude) to mark a descendant
// combinator — plain inter-token whitespace that isn't adjacent to a
// combinator delimiter. It never appears in a declaration's Values.
const ValueWhitespaceCombinator ValueType = 255
