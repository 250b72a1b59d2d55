package css

// Position is a source line/column location, in bytes from the start of
// the line.
type Position struct {
	Line int
	Col  int
}

// ValueType classifies a single parsed Value within a declaration.
type ValueType uint8

// Value kinds produced by Parser.ParseDecl.
const (
	ValueNone ValueType = iota
	ValueIdent
	ValueFunction
	ValueHash
	ValueHashID
	ValueString
	ValueURL
	ValueDelim
	ValueNumber
	ValueInteger
	ValuePercentage
	ValueDimension
	ValueUnicodeRange
	ValueIncludeMatch
	ValueDashMatch
	ValuePrefixMatch
	ValueSuffixMatch
	ValueSubstringMatch
	ValueColumn
	ValueComma
)

func (t ValueType) String() string {
	switch t {
	case ValueNone:
		return "ValueNone"
	case ValueIdent:
		return "ValueIdent"
	case ValueFunction:
		return "ValueFunction"
	case ValueHash:
		return "ValueHash"
	case ValueHashID:
		return "ValueHashID"
	case ValueString:
		return "ValueString"
	case ValueURL:
		return "ValueURL"
	case ValueDelim:
		return "ValueDelim"
	case ValueNumber:
		return "ValueNumber"
	case ValueInteger:
		return "ValueInteger"
	case ValuePercentage:
		return "ValuePercentage"
	case ValueDimension:
		return "ValueDimension"
	case ValueUnicodeRange:
		return "ValueUnicodeRange"
	case ValueIncludeMatch:
		return "ValueIncludeMatch"
	case ValueDashMatch:
		return "ValueDashMatch"
	case ValuePrefixMatch:
		return "ValuePrefixMatch"
	case ValueSuffixMatch:
		return "ValueSuffixMatch"
	case ValueSubstringMatch:
		return "ValueSubstringMatch"
	case ValueColumn:
		return "ValueColumn"
	case ValueComma:
		return "ValueComma"
	default:
		return "ValueType(?)"
	}
}

// Value is one value token within a Decl. Raw carries the exact source
// text when it can't be trivially reconstructed from Value/Number (see
// FormatRaw for the tokens where it can).
type Value struct {
	Pos    Position
	Type   ValueType
	Raw    []byte
	Value  []byte
	Number float64
}

func (v *Value) clear() {
	v.Pos = Position{}
	v.Type = ValueNone
	if v.Raw != nil {
		v.Raw = v.Raw[:0]
	}
	if v.Value != nil {
		v.Value = v.Value[:0]
	}
	v.Number = 0
}

// Decl is a CSS declaration: "property: value value ... [!important]".
type Decl struct {
	Pos           Position
	Property      []byte
	PropertyRaw   []byte
	Values        []Value
	BangImportant bool
}

func (d *Decl) clear() {
	d.Pos = Position{}
	if d.Property != nil {
		d.Property = d.Property[:0]
	}
	if d.PropertyRaw != nil {
		d.PropertyRaw = d.PropertyRaw[:0]
	}
	if d.Values != nil {
		for i := range d.Values {
			d.Values[i].clear()
		}
		d.Values = d.Values[:0]
	}
	d.BangImportant = false
}

// Parser parses CSS declaration lists (the low-level Decl/Value grammar
// shared by style="" attributes and the body of a ruleset block).
type Parser struct {
	s *Scanner
}

// NewParser creates a new CSS parser.
func NewParser(s *Scanner) *Parser {
	return &Parser{s: s}
}

func (p *Parser) next() {
	p.s.Next()
}

// skipS advances past the current token and any run of whitespace that
// follows, leaving p.s positioned at the next non-S token.
func (p *Parser) skipS() {
	p.next()
	for p.s.Token == S {
		p.next()
	}
}

func (p *Parser) error(msg string) {
	if p.s.ErrHandler != nil {
		p.s.ErrHandler(p.s.Line, p.s.Col, p.s.N, msg)
	}
}

// ParseDecl parses a single CSS declaration.
// An HTML style="" attribute, and the body of a ruleset block, are each a
// sequence of declarations.
//
// The passed Decl is cleared by reducing all its slices to a length of
// zero, so repeated calls reuse the same backing arrays.
func (p *Parser) ParseDecl(decl *Decl) bool {
	decl.clear()

	for {
		p.skipS()
		if p.s.Token == Semicolon {
			// An empty declaration ("; ;"); CSS Syntax 5.4.4 discards it
			// and moves on to the next one.
			continue
		}
		break
	}

	switch p.s.Token {
	case EOF, RightBrace:
		// RightBrace means "end of a rule body"; ParseDecl is also used to
		// walk a ruleset's declaration block (stylesheet.go), where the
		// closing brace must stay unconsumed for the caller to see.
		return false
	case Ident:
		return p.parseDecl(decl)
	default:
		p.error("invalid token")
		for p.s.Token != EOF && p.s.Token != Semicolon && p.s.Token != RightBrace {
			p.next()
		}
		return false
	}
}

func (p *Parser) parseDecl(d *Decl) bool {
	// CSS Syntax 5.4.5 "Consume a declaration"
	d.Pos = Position{Line: p.s.Line, Col: p.s.Col}
	d.Property = append(d.Property, p.s.Literal...)
	d.PropertyRaw = append(d.PropertyRaw, p.s.Raw...)

	p.skipS()
	if p.s.Token != Colon {
		p.error("bad declaration: expecting ':'")
		d.clear()
		for p.s.Token != EOF && p.s.Token != Semicolon && p.s.Token != RightBrace {
			p.next()
		}
		return false
	}

	advance := true
	p.next() // consume ':'
	for {
		if advance {
			p.next()
		}
		advance = true

		if p.s.Token == S {
			continue
		}
		if p.s.Token == EOF || p.s.Token == Semicolon || p.s.Token == RightBrace {
			break
		}
		if p.s.Token == Delim && len(p.s.Literal) == 1 && p.s.Literal[0] == '!' {
			p.next()
			for p.s.Token == S {
				p.next()
			}
			if p.s.Token == Ident && asciiEqualFold(p.s.Literal, "important") {
				d.BangImportant = true
				p.next()
				for p.s.Token != EOF && p.s.Token != Semicolon && p.s.Token != RightBrace {
					p.next()
				}
				break
			}
			// Not "!important": the '!' was a literal delimiter value.
			d.Values = append(d.Values, Value{Type: ValueDelim, Value: []byte("!")})
			advance = false
			continue
		}

		d.Values = append(d.Values, p.tokenValue())
	}
	return true
}

// tokenValue converts the scanner's current token into a declaration
// Value, without advancing the scanner.
func (p *Parser) tokenValue() Value {
	v := Value{Pos: Position{Line: p.s.Line, Col: p.s.Col}}
	s := p.s
	switch s.Token {
	case Ident:
		v.Type = ValueIdent
		v.Value = append(v.Value, s.Literal...)
		v.Raw = append(v.Raw, s.Raw...)
	case Function:
		v.Type = ValueFunction
		v.Value = append(v.Value, s.Literal...)
		v.Raw = append(v.Raw, s.Raw...)
	case Hash:
		// Declaration values never distinguish the id-like subtype; that
		// flag only matters to the ID-selector grammar (selector.go).
		v.Type = ValueHash
		v.Value = append(v.Value, s.Literal...)
		v.Raw = append(v.Raw, s.Raw...)
	case String, BadString:
		v.Type = ValueString
		v.Value = append(v.Value, s.Literal...)
		v.Raw = append(v.Raw, s.Raw...)
	case URL, BadURL:
		v.Type = ValueURL
		v.Value = append(v.Value, s.Literal...)
		v.Raw = append(v.Raw, s.Raw...)
	case Number:
		v.Number, _ = parseFloatBytes(s.Literal)
		if s.TypeFlag == TypeFlagInteger {
			v.Type = ValueInteger
		} else {
			v.Type = ValueNumber
		}
		v.Raw = append(v.Raw, s.Raw...)
	case Percentage:
		v.Number, _ = parseFloatBytes(s.Literal)
		v.Type = ValuePercentage
		v.Raw = append(v.Raw, s.Raw...)
	case Dimension:
		v.Number, _ = parseFloatBytes(s.Literal)
		v.Type = ValueDimension
		v.Value = append(v.Value, s.Unit...)
		v.Raw = append(v.Raw, s.Raw...)
	case UnicodeRange:
		v.Type = ValueUnicodeRange
		v.Value = append(v.Value, s.Raw...)
		v.Raw = append(v.Raw, s.Raw...)
	case IncludeMatch:
		v.Type = ValueIncludeMatch
	case DashMatch:
		v.Type = ValueDashMatch
	case PrefixMatch:
		v.Type = ValuePrefixMatch
	case SuffixMatch:
		v.Type = ValueSuffixMatch
	case SubstringMatch:
		v.Type = ValueSubstringMatch
	case Column:
		v.Type = ValueColumn
	case Comma:
		v.Type = ValueComma
	case RightParen:
		v.Type = ValueDelim
		v.Value = append(v.Value, ')')
	case LeftParen:
		v.Type = ValueDelim
		v.Value = append(v.Value, '(')
	case RightBrack:
		v.Type = ValueDelim
		v.Value = append(v.Value, ']')
	case LeftBrack:
		v.Type = ValueDelim
		v.Value = append(v.Value, '[')
	case Colon:
		v.Type = ValueDelim
		v.Value = append(v.Value, ':')
	default: // Delim and anything else not part of this grammar
		v.Type = ValueDelim
		v.Value = append(v.Value, s.Literal...)
	}
	return v
}

// parseFloatBytes parses a float the way CSS numeric tokens are written
// (sign, digits, optional fraction, optional exponent) without requiring a
// string conversion allocation for the common short-literal case.
func parseFloatBytes(b []byte) (float64, bool) {
	i := 0
	neg := false
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		neg = b[i] == '-'
		i++
	}
	var whole float64
	scale := 1.0 // whole holds every digit; the value is whole/scale
	for i < len(b) && isDigit(rune(b[i])) {
		whole = whole*10 + float64(b[i]-'0')
		i++
	}
	if i < len(b) && b[i] == '.' {
		i++
		for i < len(b) && isDigit(rune(b[i])) {
			whole = whole*10 + float64(b[i]-'0')
			scale *= 10
			i++
		}
	}
	if i < len(b) && (b[i] == 'e' || b[i] == 'E') {
		j := i + 1
		eneg := false
		if j < len(b) && (b[j] == '+' || b[j] == '-') {
			eneg = b[j] == '-'
			j++
		}
		exp := 0
		start := j
		for j < len(b) && isDigit(rune(b[j])) {
			exp = exp*10 + int(b[j]-'0')
			j++
		}
		if j > start {
			i = j
			if eneg {
				for k := 0; k < exp; k++ {
					scale *= 10
				}
			} else {
				for k := 0; k < exp; k++ {
					whole *= 10
				}
			}
		}
	}
	whole /= scale
	if neg {
		whole = -whole
	}
	return whole, i == len(b)
}
