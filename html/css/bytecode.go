package css

import (
	"spilled.ink/html/css/fixed"
	"spilled.ink/html/css/intern"
)

// Opcode identifies a CSS 2.1 longhand property inside a Style bytecode
// block.
type Opcode uint16

// Longhand property opcodes. The grouping mirrors CSS 2.1's own property
// table ordering (background/color, font, text, box model, tables,
// generated content, paged media).
const (
	OpUnknown Opcode = iota

	OpColor
	OpBackgroundColor
	OpBackgroundImage
	OpBackgroundRepeat
	OpBackgroundAttachment
	OpBackgroundPositionX
	OpBackgroundPositionY

	OpFontFamily
	OpFontStyle
	OpFontVariant
	OpFontWeight
	OpFontSize
	OpLineHeight

	OpTextAlign
	OpTextDecoration
	OpTextIndent
	OpTextTransform
	OpLetterSpacing
	OpWordSpacing
	OpWhiteSpace
	OpVerticalAlign
	OpDirection
	OpUnicodeBidi

	OpDisplay
	OpPosition
	OpTop
	OpRight
	OpBottom
	OpLeft
	OpFloat
	OpClear
	OpWidth
	OpHeight
	OpMinWidth
	OpMaxWidth
	OpMinHeight
	OpMaxHeight

	OpMarginTop
	OpMarginRight
	OpMarginBottom
	OpMarginLeft

	OpPaddingTop
	OpPaddingRight
	OpPaddingBottom
	OpPaddingLeft

	OpBorderTopWidth
	OpBorderRightWidth
	OpBorderBottomWidth
	OpBorderLeftWidth
	OpBorderTopStyle
	OpBorderRightStyle
	OpBorderBottomStyle
	OpBorderLeftStyle
	OpBorderTopColor
	OpBorderRightColor
	OpBorderBottomColor
	OpBorderLeftColor
	OpBorderCollapse
	OpBorderSpacing

	OpOutlineWidth
	OpOutlineStyle
	OpOutlineColor

	OpVisibility
	OpOverflow
	OpClip
	OpZIndex
	OpCursor

	OpListStyleType
	OpListStylePosition
	OpListStyleImage

	OpTableLayout
	OpCaptionSide
	OpEmptyCells

	OpContent
	OpQuotes
	OpCounterReset
	OpCounterIncrement

	OpPageBreakBefore
	OpPageBreakAfter
	OpPageBreakInside
	OpOrphans
	OpWidows

	opcodeCount
)

// Flags carries the per-declaration bits ("flags carries at minimum the
// inherit bit and the important bit").
type Flags uint8

const (
	FlagInherit Flags = 1 << iota
	FlagImportant
)

// OPV is the 32-bit declaration header: opcode(16) | flags(8) | value(8).
type OPV uint32

// MakeOPV packs an opcode, flag set, and enum value byte into an OPV.
func MakeOPV(op Opcode, flags Flags, value uint8) OPV {
	return OPV(uint32(op)<<16 | uint32(flags)<<8 | uint32(value))
}

func (o OPV) Opcode() Opcode { return Opcode(o >> 16) }
func (o OPV) Flags() Flags   { return Flags(o >> 8) }
func (o OPV) Value() uint8   { return uint8(o) }

func (o OPV) Inherit() bool   { return o.Flags()&FlagInherit != 0 }
func (o OPV) Important() bool { return o.Flags()&FlagImportant != 0 }

func (o OPV) withFlags(f Flags) OPV {
	return MakeOPV(o.Opcode(), f, o.Value())
}

// Color is a resolved RGBA color, stored as (r<<24)|(g<<16)|(b<<8)|a.
type Color uint32

func RGBA(r, g, b, a uint8) Color {
	return Color(uint32(r)<<24 | uint32(g)<<16 | uint32(b)<<8 | uint32(a))
}

func (c Color) R() uint8 { return uint8(c >> 24) }
func (c Color) G() uint8 { return uint8(c >> 16) }
func (c Color) B() uint8 { return uint8(c >> 8) }
func (c Color) A() uint8 { return uint8(c) }

// ListItemKind distinguishes the entries of a List payload (content,
// counters, quotes, font-family, cursor, voice-family).
type ListItemKind uint8

const (
	ListItemString ListItemKind = iota
	ListItemIdent
	ListItemURL
	ListItemCounter     // counter(name[, style])
	ListItemCounters    // counters(name, sep[, style])
	ListItemAttr        // attr(name)
	ListItemOpenQuote
	ListItemCloseQuote
	ListItemNoOpenQuote
	ListItemNoCloseQuote
)

// ListItem is one element of a List-valued declaration payload.
type ListItem struct {
	Kind  ListItemKind
	Name  intern.Handle // counter/attr name, or the string/ident/url text
	Arg   intern.Handle // counters() separator, or counter/counters() style
	Num   int           // counter-reset/counter-increment integer
}

// Payload holds the side data that follows an OPV in a Style block. Only
// the fields relevant to the OPV's opcode/value are meaningful; the rest
// are zero.
type Payload struct {
	Length fixed.Int
	Unit   Unit
	Color  Color
	Str    intern.Handle
	List   []ListItem
}

// StyleDecl is one decoded declaration: an OPV header plus its payload, a
// decoded variant rather than a literal byte buffer.
type StyleDecl struct {
	OPV     OPV
	Payload Payload
}

// Style is an ordered declaration block.
type Style []StyleDecl

// MakeImportant walks s and ORs the important flag onto every declaration.
// It is a linear scan and idempotent: running it twice leaves s unchanged
// on the second pass.
func MakeImportant(s Style) {
	for i := range s {
		s[i].OPV = s[i].OPV.withFlags(s[i].OPV.Flags() | FlagImportant)
	}
}

// Get returns the last (winning) declaration for op in s, and whether one
// was present. Style blocks may carry more than one declaration for the
// same opcode (e.g. a shorthand followed by an override longhand); later
// entries win, matching source order/cascade-within-a-rule semantics.
func (s Style) Get(op Opcode) (StyleDecl, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].OPV.Opcode() == op {
			return s[i], true
		}
	}
	return StyleDecl{}, false
}
