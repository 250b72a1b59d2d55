package css

// EventKind classifies the top-level constructs produced while walking a
// stylesheet's rule list (a tokens-to-events layer, flattened
// into a pull iterator rather than a pushed callback stream).
type EventKind uint8

const (
	// EventEnd marks the closing '}' of the rule list currently being
	// walked (an @media block, for instance) or, at nesting depth zero,
	// the end of the stylesheet itself.
	EventEnd EventKind = iota
	EventRuleset
	EventAtRule
)

// Event is one top-level construct: a style rule's prelude up to its '{',
// or an at-rule's name and prelude up to its '{' or ';'.
type Event struct {
	Kind     EventKind
	AtName   []byte // set for EventAtRule
	Prelude  []Value
	HasBlock bool // true when terminated by '{' rather than ';' or EOF
}

// Events walks a Scanner's rule-list grammar one top-level construct at a
// time. The caller drives nesting explicitly: after an EventRuleset or an
// EventAtRule with HasBlock set, it decides what the following block
// holds. A declaration block (a style rule's body, @page, @font-face) is
// consumed by calling Parser().ParseDecl in a loop and then EndBlock; a
// nested rule list (@media's body) is consumed by calling Next again,
// recursively, until it yields EventEnd.
type Events struct {
	s *Scanner
	p *Parser
}

// NewEvents creates an Events walker over s. s must not have been advanced
// yet; Events primes it on the first call to Next.
func NewEvents(s *Scanner) *Events {
	return &Events{s: s, p: NewParser(s)}
}

// Parser returns the declaration parser sharing this Events' scanner, for
// consumer-driven declaration-block parsing.
func (e *Events) Parser() *Parser { return e.p }

func (e *Events) advance() { e.s.Next() }

// EndBlock consumes the closing '}' of a declaration block whose
// declarations the caller has already drained via Parser().ParseDecl (a
// no-op if the scanner hit EOF instead, e.g. an unterminated sheet).
func (e *Events) EndBlock() {
	if e.s.Token == RightBrace {
		e.advance()
	}
}

// Next returns the next top-level construct in the current rule list, or
// EventEnd once that list (the enclosing block, or the stylesheet) is
// exhausted.
func (e *Events) Next() Event {
	if e.s.Token == Unknown {
		e.advance()
	}
	for {
		switch e.s.Token {
		case S, CDO, CDC:
			e.advance()
			continue
		}
		break
	}
	switch e.s.Token {
	case EOF:
		return Event{Kind: EventEnd}
	case RightBrace:
		e.advance()
		return Event{Kind: EventEnd}
	case AtKeyword:
		name := append([]byte(nil), e.s.Literal...)
		e.advance()
		prelude, term := e.collectPrelude()
		return Event{Kind: EventAtRule, AtName: name, Prelude: prelude, HasBlock: term == LeftBrace}
	default:
		prelude, term := e.collectPrelude()
		if term != LeftBrace {
			// CSS Syntax forward-compatible error recovery: a ruleset
			// prelude that never reaches '{' (terminated by a stray ';'
			// or EOF) is discarded; resume the rule-list walk.
			if term == EOF {
				return Event{Kind: EventEnd}
			}
			return e.Next()
		}
		return Event{Kind: EventRuleset, Prelude: prelude, HasBlock: true}
	}
}

// collectPrelude reads tokens up to (and consuming) the first top-level
// '{' or ';', converting each to a Value via the shared Parser and
// inserting a synthetic ValueWhitespaceCombinator marker for whitespace
// that functions as a selector descendant combinator (CSS 2.1 §5.2): any
// run of whitespace not immediately adjacent to an explicit '>'/'+'
// combinator or a comma. It returns the terminator token (LeftBrace,
// Semicolon, or EOF).
func (e *Events) collectPrelude() ([]Value, Token) {
	var out []Value
	depth := 0
	sawSpace := false
	for {
		switch e.s.Token {
		case EOF:
			return out, EOF
		case LeftBrace:
			if depth == 0 {
				e.advance()
				return out, LeftBrace
			}
		case Semicolon:
			if depth == 0 {
				e.advance()
				return out, Semicolon
			}
		case S:
			sawSpace = true
			e.advance()
			continue
		case LeftParen, Function, LeftBrack:
			depth++
		case RightParen, RightBrack:
			if depth > 0 {
				depth--
			}
		}

		v := e.p.tokenValue()
		if sawSpace && depth == 0 && len(out) > 0 {
			last := out[len(out)-1]
			if !isCombinatorDelim(last) && !isCombinatorDelim(v) && last.Type != ValueComma && v.Type != ValueComma {
				out = append(out, Value{Type: ValueWhitespaceCombinator})
			}
		}
		sawSpace = false
		out = append(out, v)
		e.advance()
	}
}

func isCombinatorDelim(v Value) bool {
	return v.Type == ValueDelim && len(v.Value) == 1 && (v.Value[0] == '>' || v.Value[0] == '+')
}
