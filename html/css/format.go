package css

import (
	"bytes"
	"strconv"

	"spilled.ink/html/css/fixed"
)

func appendEscapedString(dst, src []byte) []byte {
	for _, c := range src {
		switch c {
		case '\\':
			dst = append(dst, '\\', '\\')
		case '\n':
			dst = append(dst, '\\', '\n')
		case '"':
			dst = append(dst, '\\', '"')
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

func FormatRaw(d *Decl) {
	d.PropertyRaw = appendEscapedString(d.PropertyRaw[:0], d.Property)
	for i := range d.Values {
		v := &d.Values[i]
		switch v.Type {
		case ValueIdent:
			v.Raw = appendEscapedString(v.Raw[:0], v.Value)
		case ValueFunction:
			v.Raw = appendEscapedString(v.Raw[:0], v.Value)
			v.Raw = append(v.Raw, '(')
		case ValueHash, ValueHashID:
			v.Raw = append(v.Raw[:0], '#')
			v.Raw = appendEscapedString(v.Raw, v.Value)
		case ValueString:
			v.Raw = append(v.Raw[:0], '"')
			v.Raw = appendEscapedString(v.Raw, v.Value)
			v.Raw = append(v.Raw, '"')
		case ValueURL:
			v.Raw = append(v.Raw[:0], `url("`...)
			v.Raw = appendEscapedString(v.Raw, v.Value)
			v.Raw = append(v.Raw, `")`...)
		case ValueDelim:
			v.Raw = append(v.Raw[:0], v.Value...)
		case ValueNumber:
		case ValueInteger:
		case ValuePercentage:
			v.Raw = strconv.AppendFloat(v.Raw[:0], v.Number, 'g', -1, 64)
			v.Raw = append(v.Raw, '%')
		case ValueDimension:
			v.Raw = strconv.AppendFloat(v.Raw[:0], v.Number, 'g', -1, 64)
			v.Raw = append(v.Raw, v.Value...)
		case ValueUnicodeRange:
			v.Raw = append(v.Raw[:0], v.Value...)
		case ValueIncludeMatch:
			v.Raw = append(v.Raw[:0], '~', '=')
		case ValueDashMatch:
			v.Raw = append(v.Raw[:0], '|', '=')
		case ValuePrefixMatch:
			v.Raw = append(v.Raw[:0], '^', '=')
		case ValueSuffixMatch:
			v.Raw = append(v.Raw[:0], '$', '=')
		case ValueSubstringMatch:
			v.Raw = append(v.Raw[:0], '*', '=')
		case ValueComma:
			v.Raw = append(v.Raw[:0], ',')
		}
	}
}

func FormatDecl(dst *bytes.Buffer, d *Decl) {
	FormatRaw(d)
	dst.Write(d.PropertyRaw)
	dst.WriteString(": ")
	for i, val := range d.Values {
		if i > 0 && val.Type != ValueComma {
			dst.WriteByte(' ')
		}
		dst.Write(val.Raw)
	}
	dst.WriteByte(';')
}

// FormatStyle appends every declaration in s to dst, one "property: value;"
// line at a time.
func FormatStyle(dst *bytes.Buffer, s Style) {
	for _, d := range s {
		FormatStyleDecl(dst, d)
		dst.WriteByte('\n')
	}
}

// FormatStyleDecl appends a decoded StyleDecl as "property: value;" text to
// dst. It is the mirror image of the per-property Parse functions in
// properties.go, meant for debugging and tooling output (cmd/cssdump's
// computed-style dump) rather than for round-tripping shorthand syntax:
// every declaration prints as its longhand.
func FormatStyleDecl(dst *bytes.Buffer, d StyleDecl) {
	name := OpcodeName(d.OPV.Opcode())
	if name == "" {
		name = "unknown-property"
	}
	dst.WriteString(name)
	dst.WriteString(": ")
	FormatStyleValue(dst, d)
	if d.OPV.Important() {
		dst.WriteString(" !important")
	}
	dst.WriteByte(';')
}

// FormatStyleValue appends just the value portion of d (no property name, no
// trailing semicolon or "!important") to dst.
func FormatStyleValue(dst *bytes.Buffer, d StyleDecl) {
	p := d.Payload
	switch {
	case p.Color != 0:
		formatColor(dst, p.Color)
	case !p.Str.IsZero():
		dst.Write(p.Str.Data())
	case len(p.List) > 0:
		for i, item := range p.List {
			if i > 0 {
				dst.WriteString(", ")
			}
			formatListItem(dst, item)
		}
	case p.Unit != UnitNone || p.Length != 0:
		formatLength(dst, p.Length, p.Unit)
	default:
		formatEnumValue(dst, d.OPV.Opcode(), d.OPV.Value())
	}
}

func formatEnumValue(dst *bytes.Buffer, op Opcode, v uint8) {
	switch v {
	case VAuto:
		dst.WriteString("auto")
		return
	case VNone:
		dst.WriteString("none")
		return
	case VNormal:
		dst.WriteString("normal")
		return
	}
	if name, ok := KeywordName(op, v); ok {
		dst.WriteString(name)
		return
	}
	dst.WriteString(strconv.Itoa(int(v)))
}

func formatLength(dst *bytes.Buffer, n fixed.Int, u Unit) {
	dst.WriteString(strconv.FormatFloat(n.Float64(), 'g', -1, 64))
	dst.WriteString(u.String())
}

func formatColor(dst *bytes.Buffer, c Color) {
	dst.WriteString("rgba(")
	dst.WriteString(strconv.Itoa(int(c.R())))
	dst.WriteString(", ")
	dst.WriteString(strconv.Itoa(int(c.G())))
	dst.WriteString(", ")
	dst.WriteString(strconv.Itoa(int(c.B())))
	dst.WriteString(", ")
	dst.WriteString(strconv.FormatFloat(float64(c.A())/255, 'g', -1, 64))
	dst.WriteByte(')')
}

func formatListItem(dst *bytes.Buffer, item ListItem) {
	switch item.Kind {
	case ListItemString:
		dst.WriteByte('"')
		dst.Write(appendEscapedString(nil, item.Name.Data()))
		dst.WriteByte('"')
	case ListItemURL:
		dst.WriteString(`url("`)
		dst.Write(appendEscapedString(nil, item.Name.Data()))
		dst.WriteString(`")`)
	case ListItemCounter, ListItemCounters, ListItemAttr:
		dst.Write(item.Name.Data())
	case ListItemOpenQuote:
		dst.WriteString("open-quote")
	case ListItemCloseQuote:
		dst.WriteString("close-quote")
	case ListItemNoOpenQuote:
		dst.WriteString("no-open-quote")
	case ListItemNoCloseQuote:
		dst.WriteString("no-close-quote")
	default:
		dst.Write(item.Name.Data())
	}
}

// AppendDecl appends the serialized form of d to dst, regenerating Raw
// fields first (see FormatRaw) so that callers who mutated a Value's
// decoded form (htmlsafe's URL rewriting, for instance) see the change
// reflected in the output.
func AppendDecl(dst []byte, d *Decl) []byte {
	FormatRaw(d)
	dst = append(dst, d.PropertyRaw...)
	dst = append(dst, ':', ' ')
	for i, val := range d.Values {
		if i > 0 && val.Type != ValueComma {
			dst = append(dst, ' ')
		}
		dst = append(dst, val.Raw...)
	}
	dst = append(dst, ';')
	return dst
}
