package css

import (
	"spilled.ink/html/css/fixed"
	"spilled.ink/html/css/intern"
)

// Generic non-length markers, shared across every length-capable property.
// Each opcode interprets its own Value() byte independently, so reusing
// these constants across properties causes no ambiguity.
const (
	VAuto uint8 = 1 + iota
	VNone
	VNormal
	VKeyword // the property's own enum table is authoritative; see its table
)

// declContext carries the state a property parser needs beyond the raw
// token values: the interner every string/url/ident is stored through, and
// the quirks-mode/URL-resolution policy of the sheet being built.
type declContext struct {
	interner *intern.Table
	quirks   bool
	resolve  func(rel string) string
	// quirksUsed, when non-nil, is set to true the first time a quirks-only
	// leniency branch actually fires.
	quirksUsed *bool
}

func (c *declContext) intern(b []byte) intern.Handle {
	return c.interner.Intern(b)
}

// propertyInfo is one entry of the property table: each CSS 2.1 property
// has a handler.
type propertyInfo struct {
	Opcode    Opcode
	Inherited bool
	// Parse decodes values (the tokens after the ':') into one or more
	// longhand declarations (a shorthand may expand into several). false
	// means the value was invalid for this property (the
	// caller discards the whole declaration and does not change sheet
	// state).
	Parse func(c *declContext, values []Value) ([]StyleDecl, bool)
	// Initial produces this property's CSS 2.1 initial value.
	Initial func() StyleDecl
}

var properties map[string]*propertyInfo

// opcodeInfo maps an Opcode back to its propertyInfo, for computed.go's
// cascade/inherit/initial walk, which iterates by opcode
// rather than by property name. Built alongside properties in init() below
// to avoid any cross-file init-order dependency.
var opcodeInfo map[Opcode]*propertyInfo

// lookupProperty returns the property table entry for name (CSS property
// names are ASCII case-insensitive), or nil if name is not a recognised
// CSS 2.1 property.
func lookupProperty(name []byte) *propertyInfo {
	return properties[asciiLowerCopy(name)]
}

func init() {
	properties = make(map[string]*propertyInfo, 96)

	reg := func(name string, op Opcode, inherited bool, initial StyleDecl, parse func(*declContext, []Value) ([]StyleDecl, bool)) {
		properties[name] = &propertyInfo{
			Opcode:    op,
			Inherited: inherited,
			Initial:   func() StyleDecl { return initial },
			Parse:     parse,
		}
	}

	// --- color & background ---------------------------------------------
	reg("color", OpColor, true, colorDecl(OpColor, RGBA(0, 0, 0, 0xff)), colorHandler(OpColor))
	reg("background-color", OpBackgroundColor, false, plainDecl(OpBackgroundColor, VKeyword), bgColorHandler())
	reg("background-image", OpBackgroundImage, false, plainDecl(OpBackgroundImage, VNone), urlOrNoneHandler(OpBackgroundImage))
	reg("background-repeat", OpBackgroundRepeat, false, enumDecl(OpBackgroundRepeat, bgRepeatKeywords, "repeat"), enumHandler(OpBackgroundRepeat, bgRepeatKeywords))
	reg("background-attachment", OpBackgroundAttachment, false, enumDecl(OpBackgroundAttachment, bgAttachKeywords, "scroll"), enumHandler(OpBackgroundAttachment, bgAttachKeywords))
	reg("background-position-x", OpBackgroundPositionX, false, lengthDecl(OpBackgroundPositionX, 0, UnitPCT), lengthHandler(OpBackgroundPositionX, lengthFlagsPercent))
	reg("background-position-y", OpBackgroundPositionY, false, lengthDecl(OpBackgroundPositionY, 0, UnitPCT), lengthHandler(OpBackgroundPositionY, lengthFlagsPercent))
	properties["background"] = &propertyInfo{Parse: expandBackground}

	// --- font -------------------------------------------------------------
	reg("font-family", OpFontFamily, true, fontFamilyInitial(), fontFamilyHandler())
	reg("font-style", OpFontStyle, true, enumDecl(OpFontStyle, fontStyleKeywords, "normal"), enumHandler(OpFontStyle, fontStyleKeywords))
	reg("font-variant", OpFontVariant, true, enumDecl(OpFontVariant, fontVariantKeywords, "normal"), enumHandler(OpFontVariant, fontVariantKeywords))
	reg("font-weight", OpFontWeight, true, enumDecl(OpFontWeight, fontWeightKeywords, "normal"), fontWeightHandler())
	reg("font-size", OpFontSize, true, enumDecl(OpFontSize, fontSizeKeywords, "medium"), fontSizeHandler())
	reg("line-height", OpLineHeight, true, plainDecl(OpLineHeight, VNormal), lineHeightHandler())
	properties["font"] = &propertyInfo{Parse: expandFont}

	// --- text ---------------------------------------------------------------
	reg("text-align", OpTextAlign, true, enumDecl(OpTextAlign, textAlignKeywords, "left"), enumHandler(OpTextAlign, textAlignKeywords))
	reg("text-decoration", OpTextDecoration, false, plainDecl(OpTextDecoration, textDecorKeywords["none"]), textDecorationHandler())
	reg("text-indent", OpTextIndent, true, lengthDecl(OpTextIndent, 0, UnitPX), lengthHandler(OpTextIndent, lengthFlagsPercent))
	reg("text-transform", OpTextTransform, true, enumDecl(OpTextTransform, textTransformKeywords, "none"), enumHandler(OpTextTransform, textTransformKeywords))
	reg("letter-spacing", OpLetterSpacing, true, plainDecl(OpLetterSpacing, VNormal), lengthHandler(OpLetterSpacing, lengthFlagsNormal))
	reg("word-spacing", OpWordSpacing, true, plainDecl(OpWordSpacing, VNormal), lengthHandler(OpWordSpacing, lengthFlagsNormal))
	reg("white-space", OpWhiteSpace, true, enumDecl(OpWhiteSpace, whiteSpaceKeywords, "normal"), enumHandler(OpWhiteSpace, whiteSpaceKeywords))
	reg("vertical-align", OpVerticalAlign, false, enumDecl(OpVerticalAlign, vertAlignKeywords, "baseline"), vertAlignHandler())
	reg("direction", OpDirection, true, enumDecl(OpDirection, directionKeywords, "ltr"), enumHandler(OpDirection, directionKeywords))
	reg("unicode-bidi", OpUnicodeBidi, false, enumDecl(OpUnicodeBidi, unicodeBidiKeywords, "normal"), enumHandler(OpUnicodeBidi, unicodeBidiKeywords))

	// --- box ------------------------------------------------------------
	reg("display", OpDisplay, false, enumDecl(OpDisplay, displayKeywords, "inline"), enumHandler(OpDisplay, displayKeywords))
	reg("position", OpPosition, false, enumDecl(OpPosition, positionKeywords, "static"), enumHandler(OpPosition, positionKeywords))
	reg("top", OpTop, false, plainDecl(OpTop, VAuto), lengthHandler(OpTop, lengthFlagsAutoPercent))
	reg("right", OpRight, false, plainDecl(OpRight, VAuto), lengthHandler(OpRight, lengthFlagsAutoPercent))
	reg("bottom", OpBottom, false, plainDecl(OpBottom, VAuto), lengthHandler(OpBottom, lengthFlagsAutoPercent))
	reg("left", OpLeft, false, plainDecl(OpLeft, VAuto), lengthHandler(OpLeft, lengthFlagsAutoPercent))
	reg("float", OpFloat, false, enumDecl(OpFloat, floatKeywords, "none"), enumHandler(OpFloat, floatKeywords))
	reg("clear", OpClear, false, enumDecl(OpClear, clearKeywords, "none"), enumHandler(OpClear, clearKeywords))
	reg("width", OpWidth, false, plainDecl(OpWidth, VAuto), lengthHandler(OpWidth, lengthFlagsAutoPercent))
	reg("height", OpHeight, false, plainDecl(OpHeight, VAuto), lengthHandler(OpHeight, lengthFlagsAutoPercent))
	reg("min-width", OpMinWidth, false, lengthDecl(OpMinWidth, 0, UnitPX), lengthHandler(OpMinWidth, lengthFlagsPercent))
	reg("max-width", OpMaxWidth, false, plainDecl(OpMaxWidth, VNone), lengthHandler(OpMaxWidth, lengthFlagsNonePercent))
	reg("min-height", OpMinHeight, false, lengthDecl(OpMinHeight, 0, UnitPX), lengthHandler(OpMinHeight, lengthFlagsPercent))
	reg("max-height", OpMaxHeight, false, plainDecl(OpMaxHeight, VNone), lengthHandler(OpMaxHeight, lengthFlagsNonePercent))

	for _, e := range []struct {
		name string
		op   Opcode
	}{
		{"margin-top", OpMarginTop}, {"margin-right", OpMarginRight},
		{"margin-bottom", OpMarginBottom}, {"margin-left", OpMarginLeft},
	} {
		op := e.op
		reg(e.name, op, false, plainDecl(op, 0), lengthHandler(op, lengthFlagsAutoPercent))
		properties[e.name].Initial = func() StyleDecl { return lengthDeclV(op, fixed.FromInt(0), UnitPX) }
	}
	properties["margin"] = &propertyInfo{Parse: expandEdges([4]Opcode{OpMarginTop, OpMarginRight, OpMarginBottom, OpMarginLeft}, lengthFlagsAutoPercent)}

	for _, e := range []struct {
		name string
		op   Opcode
	}{
		{"padding-top", OpPaddingTop}, {"padding-right", OpPaddingRight},
		{"padding-bottom", OpPaddingBottom}, {"padding-left", OpPaddingLeft},
	} {
		op := e.op
		reg(e.name, op, false, lengthDecl(op, 0, UnitPX), lengthHandler(op, lengthFlagsPercent))
	}
	properties["padding"] = &propertyInfo{Parse: expandEdges([4]Opcode{OpPaddingTop, OpPaddingRight, OpPaddingBottom, OpPaddingLeft}, lengthFlagsPercent)}

	widthOps := [4]Opcode{OpBorderTopWidth, OpBorderRightWidth, OpBorderBottomWidth, OpBorderLeftWidth}
	styleOps := [4]Opcode{OpBorderTopStyle, OpBorderRightStyle, OpBorderBottomStyle, OpBorderLeftStyle}
	colorOps := [4]Opcode{OpBorderTopColor, OpBorderRightColor, OpBorderBottomColor, OpBorderLeftColor}
	sideNames := [4]string{"top", "right", "bottom", "left"}
	for i := 0; i < 4; i++ {
		wop, sop, cop := widthOps[i], styleOps[i], colorOps[i]
		reg("border-"+sideNames[i]+"-width", wop, false, lengthDecl(wop, 2, UnitPX), borderWidthHandler(wop))
		reg("border-"+sideNames[i]+"-style", sop, false, enumDecl(sop, borderStyleKeywords, "none"), enumHandler(sop, borderStyleKeywords))
		reg("border-"+sideNames[i]+"-color", cop, false, plainDecl(cop, VKeyword), colorOrInitialHandler(cop))
		properties["border-"+sideNames[i]] = &propertyInfo{Parse: expandBorderSide(wop, sop, cop)}
	}
	properties["border-width"] = &propertyInfo{Parse: expandEdgesWidth(widthOps)}
	properties["border-style"] = &propertyInfo{Parse: expandEdgesEnum(styleOps, borderStyleKeywords)}
	properties["border-color"] = &propertyInfo{Parse: expandEdgesColor(colorOps)}
	properties["border"] = &propertyInfo{Parse: expandBorder(widthOps, styleOps, colorOps)}
	reg("border-collapse", OpBorderCollapse, true, enumDecl(OpBorderCollapse, borderCollapseKeywords, "separate"), enumHandler(OpBorderCollapse, borderCollapseKeywords))
	reg("border-spacing", OpBorderSpacing, true, lengthDecl(OpBorderSpacing, 0, UnitPX), borderSpacingHandler())

	reg("outline-width", OpOutlineWidth, false, lengthDecl(OpOutlineWidth, 2, UnitPX), borderWidthHandler(OpOutlineWidth))
	reg("outline-style", OpOutlineStyle, false, enumDecl(OpOutlineStyle, borderStyleKeywords, "none"), enumHandler(OpOutlineStyle, borderStyleKeywords))
	reg("outline-color", OpOutlineColor, false, plainDecl(OpOutlineColor, VKeyword), colorOrInvertHandler())
	properties["outline"] = &propertyInfo{Parse: expandOutline()}

	reg("visibility", OpVisibility, true, enumDecl(OpVisibility, visibilityKeywords, "visible"), enumHandler(OpVisibility, visibilityKeywords))
	reg("overflow", OpOverflow, false, enumDecl(OpOverflow, overflowKeywords, "visible"), enumHandler(OpOverflow, overflowKeywords))
	reg("clip", OpClip, false, plainDecl(OpClip, VAuto), clipHandler())
	reg("z-index", OpZIndex, false, plainDecl(OpZIndex, VAuto), zIndexHandler())
	reg("cursor", OpCursor, true, enumDecl(OpCursor, cursorKeywords, "auto"), cursorHandler())

	reg("list-style-type", OpListStyleType, true, enumDecl(OpListStyleType, listStyleTypeKeywords, "disc"), enumHandler(OpListStyleType, listStyleTypeKeywords))
	reg("list-style-position", OpListStylePosition, true, enumDecl(OpListStylePosition, listStylePosKeywords, "outside"), enumHandler(OpListStylePosition, listStylePosKeywords))
	reg("list-style-image", OpListStyleImage, true, plainDecl(OpListStyleImage, VNone), urlOrNoneHandler(OpListStyleImage))
	properties["list-style"] = &propertyInfo{Parse: expandListStyle()}

	reg("table-layout", OpTableLayout, false, enumDecl(OpTableLayout, tableLayoutKeywords, "auto"), enumHandler(OpTableLayout, tableLayoutKeywords))
	reg("caption-side", OpCaptionSide, true, enumDecl(OpCaptionSide, captionSideKeywords, "top"), enumHandler(OpCaptionSide, captionSideKeywords))
	reg("empty-cells", OpEmptyCells, true, enumDecl(OpEmptyCells, emptyCellsKeywords, "show"), enumHandler(OpEmptyCells, emptyCellsKeywords))

	reg("content", OpContent, false, plainDecl(OpContent, VNone), contentHandler())
	reg("quotes", OpQuotes, true, plainDecl(OpQuotes, VNone), quotesHandler())
	reg("counter-reset", OpCounterReset, false, plainDecl(OpCounterReset, VNone), counterHandler(0))
	reg("counter-increment", OpCounterIncrement, false, plainDecl(OpCounterIncrement, VNone), counterHandler(1))

	reg("page-break-before", OpPageBreakBefore, false, enumDecl(OpPageBreakBefore, pageBreakKeywords, "auto"), enumHandler(OpPageBreakBefore, pageBreakKeywords))
	reg("page-break-after", OpPageBreakAfter, false, enumDecl(OpPageBreakAfter, pageBreakKeywords, "auto"), enumHandler(OpPageBreakAfter, pageBreakKeywords))
	reg("page-break-inside", OpPageBreakInside, false, enumDecl(OpPageBreakInside, pageBreakInsideKeywords, "auto"), enumHandler(OpPageBreakInside, pageBreakInsideKeywords))
	reg("orphans", OpOrphans, true, numberDecl(OpOrphans, 2), numberHandler(OpOrphans))
	reg("widows", OpWidows, true, numberDecl(OpWidows, 2), numberHandler(OpWidows))

	opcodeInfo = make(map[Opcode]*propertyInfo, len(properties))
	opcodeNames = make(map[Opcode]string, len(properties))
	for name, p := range properties {
		if p.Initial != nil {
			opcodeInfo[p.Opcode] = p
			opcodeNames[p.Opcode] = name
		}
	}
}

// --- keyword tables (CSS 2.1 §.. grammar productions) ----------------------

var (
	bgRepeatKeywords        = kw("repeat", "repeat-x", "repeat-y", "no-repeat")
	bgAttachKeywords        = kw("scroll", "fixed")
	fontStyleKeywords       = kw("normal", "italic", "oblique")
	fontVariantKeywords     = kw("normal", "small-caps")
	fontSizeKeywords        = kw("xx-small", "x-small", "small", "medium", "large", "x-large", "xx-large", "larger", "smaller")
	textAlignKeywords       = kw("left", "right", "center", "justify")
	textTransformKeywords  = kw("none", "capitalize", "uppercase", "lowercase")
	whiteSpaceKeywords      = kw("normal", "pre", "nowrap", "pre-wrap", "pre-line")
	vertAlignKeywords       = kw("baseline", "sub", "super", "top", "text-top", "middle", "bottom", "text-bottom")
	directionKeywords       = kw("ltr", "rtl")
	unicodeBidiKeywords     = kw("normal", "embed", "bidi-override")
	displayKeywords         = kw("inline", "block", "list-item", "inline-block", "table", "inline-table",
		"table-row-group", "table-header-group", "table-footer-group", "table-row", "table-column-group",
		"table-column", "table-cell", "table-caption", "none", "run-in")
	positionKeywords        = kw("static", "relative", "absolute", "fixed")
	floatKeywords           = kw("none", "left", "right")
	clearKeywords           = kw("none", "left", "right", "both")
	borderStyleKeywords     = kw("none", "hidden", "dotted", "dashed", "solid", "double", "groove", "ridge", "inset", "outset")
	borderCollapseKeywords  = kw("separate", "collapse")
	visibilityKeywords      = kw("visible", "hidden", "collapse")
	overflowKeywords        = kw("visible", "hidden", "scroll", "auto")
	cursorKeywords          = kw("auto", "crosshair", "default", "pointer", "move", "text", "wait", "help",
		"e-resize", "n-resize", "ne-resize", "nw-resize", "s-resize", "se-resize", "sw-resize", "w-resize", "progress")
	listStyleTypeKeywords   = kw("disc", "circle", "square", "decimal", "decimal-leading-zero", "lower-roman",
		"upper-roman", "lower-greek", "lower-latin", "upper-latin", "armenian", "georgian", "lower-alpha", "upper-alpha", "none")
	listStylePosKeywords    = kw("inside", "outside")
	tableLayoutKeywords     = kw("auto", "fixed")
	captionSideKeywords     = kw("top", "bottom")
	emptyCellsKeywords      = kw("show", "hide")
	pageBreakKeywords       = kw("auto", "always", "avoid", "left", "right")
	pageBreakInsideKeywords = kw("auto", "avoid")
	textDecorKeywords       = kw("none", "underline", "overline", "line-through", "blink")
)

func kw(names ...string) map[string]uint8 {
	m := make(map[string]uint8, len(names))
	for i, n := range names {
		m[n] = uint8(i) + VKeyword + 1
	}
	return m
}

func keywordValue(values []Value, table map[string]uint8) (uint8, bool) {
	if len(values) != 1 || values[0].Type != ValueIdent {
		return 0, false
	}
	for name, v := range table {
		if asciiEqualFold(values[0].Value, name) {
			return v, true
		}
	}
	return 0, false
}

func isInherit(values []Value) bool {
	return len(values) == 1 && values[0].Type == ValueIdent && asciiEqualFold(values[0].Value, "inherit")
}

func plainDecl(op Opcode, v uint8) StyleDecl { return StyleDecl{OPV: MakeOPV(op, 0, v)} }

func enumDecl(op Opcode, table map[string]uint8, name string) StyleDecl {
	opcodeKeywords[op] = table
	return StyleDecl{OPV: MakeOPV(op, 0, table[name])}
}

// opcodeKeywords records, for every opcode whose initial value is built by
// enumDecl, the name->value table that opcode's Value() byte is drawn from.
// KeywordName uses it to decode a StyleDecl back to the keyword a caller
// outside this package (a debug dumper, say) can print.
var opcodeKeywords = map[Opcode]map[string]uint8{}

// OpcodeName returns the CSS property name op was registered under (e.g.
// OpDisplay -> "display"), or "" if op is not a recognised longhand.
func OpcodeName(op Opcode) string {
	return opcodeNames[op]
}

var opcodeNames map[Opcode]string

// KeywordName decodes v against op's keyword table, returning the CSS
// keyword it was parsed from (e.g. OpDisplay, 9 -> "table", true). ok is
// false for properties whose Value() byte is not a keyword enum (lengths,
// colors, numbers) or for an unrecognised opcode.
func KeywordName(op Opcode, v uint8) (name string, ok bool) {
	table, present := opcodeKeywords[op]
	if !present {
		return "", false
	}
	for n, val := range table {
		if val == v {
			return n, true
		}
	}
	return "", false
}

func numberDecl(op Opcode, n int) StyleDecl {
	return StyleDecl{OPV: MakeOPV(op, 0, 0), Payload: Payload{Length: fixed.FromInt(n)}}
}

func lengthDecl(op Opcode, n int, u Unit) StyleDecl {
	return lengthDeclV(op, fixed.FromInt(n), u)
}

func lengthDeclV(op Opcode, n fixed.Int, u Unit) StyleDecl {
	return StyleDecl{OPV: MakeOPV(op, 0, 0), Payload: Payload{Length: n, Unit: u}}
}

func colorDecl(op Opcode, c Color) StyleDecl {
	return StyleDecl{OPV: MakeOPV(op, 0, 0), Payload: Payload{Color: c}}
}

func fontFamilyInitial() StyleDecl {
	return StyleDecl{OPV: MakeOPV(OpFontFamily, 0, 0)}
}

// --- generic handlers -------------------------------------------------------

func enumHandler(op Opcode, table map[string]uint8) func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(op, FlagInherit, 0)}}, true
		}
		v, ok := keywordValue(values, table)
		if !ok {
			return nil, false
		}
		return []StyleDecl{{OPV: MakeOPV(op, 0, v)}}, true
	}
}

func colorHandler(op Opcode) func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(op, FlagInherit, 0)}}, true
		}
		if len(values) == 0 {
			return nil, false
		}
		col, ok := parseColor(values, c)
		if !ok {
			return nil, false
		}
		return []StyleDecl{colorDecl(op, col)}, true
	}
}

func bgColorHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpBackgroundColor, FlagInherit, 0)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueIdent && asciiEqualFold(values[0].Value, "transparent") {
			return []StyleDecl{{OPV: MakeOPV(OpBackgroundColor, 0, VNone)}}, true
		}
		col, ok := parseColor(values, c)
		if !ok {
			return nil, false
		}
		return []StyleDecl{colorDecl(OpBackgroundColor, col)}, true
	}
}

// colorOrInitialHandler is for border-*-color: "transparent"/a color, or
// the CSS 2.1 §8.5.2 default of "the computed value of color" encoded here
// as VKeyword (resolved during Compose).
func colorOrInitialHandler(op Opcode) func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(op, FlagInherit, 0)}}, true
		}
		col, ok := parseColor(values, c)
		if !ok {
			return nil, false
		}
		return []StyleDecl{colorDecl(op, col)}, true
	}
}

// colorOrInvertHandler is for outline-color, which additionally accepts
// the "invert" keyword (kept as a VKeyword marker; rendering-level
// fidelity for "invert" is out of scope, so this just
// round-trips the keyword without resolving to a specific color).
func colorOrInvertHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpOutlineColor, FlagInherit, 0)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueIdent && asciiEqualFold(values[0].Value, "invert") {
			return []StyleDecl{{OPV: MakeOPV(OpOutlineColor, 0, VKeyword)}}, true
		}
		col, ok := parseColor(values, c)
		if !ok {
			return nil, false
		}
		return []StyleDecl{colorDecl(OpOutlineColor, col)}, true
	}
}

func urlOrNoneHandler(op Opcode) func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(op, FlagInherit, 0)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueIdent && asciiEqualFold(values[0].Value, "none") {
			return []StyleDecl{{OPV: MakeOPV(op, 0, VNone)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueURL {
			u := values[0].Value
			if c.resolve != nil {
				u = []byte(c.resolve(string(u)))
			}
			return []StyleDecl{{OPV: MakeOPV(op, 0, 0), Payload: Payload{Str: c.intern(u)}}}, true
		}
		return nil, false
	}
}

type lengthFlags uint8

const (
	lengthFlagsPlain lengthFlags = 1 << iota
	lengthFlagsAuto
	lengthFlagsNone
	lengthFlagsNormalBit
	lengthFlagsPercentBit
)

const (
	lengthFlagsAutoPercent = lengthFlagsAuto | lengthFlagsPercentBit
	lengthFlagsPercent     = lengthFlagsPercentBit
	lengthFlagsNonePercent = lengthFlagsNone | lengthFlagsPercentBit
	lengthFlagsNormal      = lengthFlagsNormalBit
)

func lengthHandler(op Opcode, flags lengthFlags) func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(op, FlagInherit, 0)}}, true
		}
		if len(values) != 1 {
			return nil, false
		}
		v := values[0]
		if v.Type == ValueIdent {
			switch {
			case flags&lengthFlagsAuto != 0 && asciiEqualFold(v.Value, "auto"):
				return []StyleDecl{{OPV: MakeOPV(op, 0, VAuto)}}, true
			case flags&lengthFlagsNone != 0 && asciiEqualFold(v.Value, "none"):
				return []StyleDecl{{OPV: MakeOPV(op, 0, VNone)}}, true
			case flags&lengthFlagsNormalBit != 0 && asciiEqualFold(v.Value, "normal"):
				return []StyleDecl{{OPV: MakeOPV(op, 0, VNormal)}}, true
			}
			return nil, false
		}
		n, u, ok := parseLengthValue(v, flags&lengthFlagsPercentBit != 0)
		if !ok {
			return nil, false
		}
		return []StyleDecl{lengthDeclV(op, n, u)}, true
	}
}

// borderWidthHandler additionally accepts the thin/medium/thick keywords
// (substituted with 1px/2px/4px lengths here, when the declaration is
// parsed).
func borderWidthHandler(op Opcode) func(*declContext, []Value) ([]StyleDecl, bool) {
	plain := lengthHandler(op, lengthFlagsPlain)
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(op, FlagInherit, 0)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueIdent {
			switch {
			case asciiEqualFold(values[0].Value, "thin"):
				return []StyleDecl{lengthDecl(op, 1, UnitPX)}, true
			case asciiEqualFold(values[0].Value, "medium"):
				return []StyleDecl{lengthDecl(op, 2, UnitPX)}, true
			case asciiEqualFold(values[0].Value, "thick"):
				return []StyleDecl{lengthDecl(op, 4, UnitPX)}, true
			}
			return nil, false
		}
		return plain(c, values)
	}
}

func numberHandler(op Opcode) func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(op, FlagInherit, 0)}}, true
		}
		if len(values) != 1 || values[0].Type != ValueInteger {
			return nil, false
		}
		return []StyleDecl{numberDecl(op, int(values[0].Number))}, true
	}
}

func zIndexHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpZIndex, FlagInherit, 0)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueIdent && asciiEqualFold(values[0].Value, "auto") {
			return []StyleDecl{{OPV: MakeOPV(OpZIndex, 0, VAuto)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueInteger {
			return []StyleDecl{numberDecl(OpZIndex, int(values[0].Number))}, true
		}
		return nil, false
	}
}

func lineHeightHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpLineHeight, FlagInherit, 0)}}, true
		}
		if len(values) != 1 {
			return nil, false
		}
		v := values[0]
		if v.Type == ValueIdent && asciiEqualFold(v.Value, "normal") {
			return []StyleDecl{{OPV: MakeOPV(OpLineHeight, 0, VNormal)}}, true
		}
		if v.Type == ValueNumber || v.Type == ValueInteger {
			return []StyleDecl{{OPV: MakeOPV(OpLineHeight, 0, 0), Payload: Payload{Length: fixed.FromFloat64(v.Number), Unit: UnitNone}}}, true
		}
		n, u, ok := parseLengthValue(v, true)
		if !ok {
			return nil, false
		}
		return []StyleDecl{lengthDeclV(OpLineHeight, n, u)}, true
	}
}

func vertAlignHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	enum := enumHandler(OpVerticalAlign, vertAlignKeywords)
	length := lengthHandler(OpVerticalAlign, lengthFlagsPercentBit)
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if len(values) == 1 && values[0].Type == ValueIdent {
			if d, ok := enum(c, values); ok {
				return d, true
			}
		}
		return length(c, values)
	}
}

var fontWeightKeywords = kw("normal", "bold", "bolder", "lighter")

func fontWeightHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpFontWeight, FlagInherit, 0)}}, true
		}
		if len(values) != 1 {
			return nil, false
		}
		if values[0].Type == ValueIdent {
			if v, ok := keywordValue(values, fontWeightKeywords); ok {
				return []StyleDecl{{OPV: MakeOPV(OpFontWeight, 0, v)}}, true
			}
			return nil, false
		}
		if values[0].Type == ValueInteger {
			n := int(values[0].Number)
			if n < 100 || n > 900 || n%100 != 0 {
				return nil, false
			}
			return []StyleDecl{{OPV: MakeOPV(OpFontWeight, 0, uint8(n/100) + 10)}}, true
		}
		return nil, false
	}
}

func fontSizeHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	enum := enumHandler(OpFontSize, fontSizeKeywords)
	length := lengthHandler(OpFontSize, lengthFlagsPercentBit)
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if len(values) == 1 && values[0].Type == ValueIdent && !asciiEqualFold(values[0].Value, "inherit") {
			return enum(c, values)
		}
		return length(c, values)
	}
}

// FontSizeKeywordName returns the CSS keyword ("medium", "larger", ...) a
// font-size OPV.Value() encodes, for a host's ComputeFontSize callback to
// branch on. A font-size decl specified as a length or percentage instead
// carries no keyword (ok is false; the caller should read d.Payload).
func FontSizeKeywordName(v uint8) (name string, ok bool) {
	return KeywordName(OpFontSize, v)
}

func fontFamilyHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpFontFamily, FlagInherit, 0)}}, true
		}
		list, ok := parseCommaIdentOrStringList(c, values)
		if !ok || len(list) == 0 {
			return nil, false
		}
		return []StyleDecl{{OPV: MakeOPV(OpFontFamily, 0, 0), Payload: Payload{List: list}}}, true
	}
}

func parseCommaIdentOrStringList(c *declContext, values []Value) ([]ListItem, bool) {
	var list []ListItem
	expectValue := true
	for _, v := range values {
		if v.Type == ValueComma {
			if expectValue {
				return nil, false
			}
			expectValue = true
			continue
		}
		if !expectValue {
			// Multiple bare idents in a row form one family name
			// ("Times New Roman"); merge with a space, CSS 2.1 §15.3.
			if v.Type != ValueIdent || len(list) == 0 {
				return nil, false
			}
			last := &list[len(list)-1]
			merged := append(append(append([]byte(nil), last.Name.Data()...), ' '), v.Value...)
			last.Name = c.intern(merged)
			continue
		}
		switch v.Type {
		case ValueIdent:
			list = append(list, ListItem{Kind: ListItemIdent, Name: c.intern(v.Value)})
		case ValueString:
			list = append(list, ListItem{Kind: ListItemString, Name: c.intern(v.Value)})
		default:
			return nil, false
		}
		expectValue = false
	}
	if expectValue {
		return nil, false
	}
	return list, true
}

func textDecorationHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpTextDecoration, FlagInherit, 0)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueIdent && asciiEqualFold(values[0].Value, "none") {
			return []StyleDecl{{OPV: MakeOPV(OpTextDecoration, 0, textDecorKeywords["none"])}}, true
		}
		var bits uint8
		for _, v := range values {
			if v.Type != ValueIdent {
				return nil, false
			}
			val, ok := keywordValue([]Value{v}, textDecorKeywords)
			if !ok || val == textDecorKeywords["none"] {
				return nil, false
			}
			bits |= val
		}
		if bits == 0 {
			return nil, false
		}
		return []StyleDecl{{OPV: MakeOPV(OpTextDecoration, 0, bits)}}, true
	}
}

func cursorHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	enum := enumHandler(OpCursor, cursorKeywords)
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpCursor, FlagInherit, 0)}}, true
		}
		var urls []ListItem
		i := 0
		for i < len(values) {
			if values[i].Type == ValueURL {
				u := values[i].Value
				if c.resolve != nil {
					u = []byte(c.resolve(string(u)))
				}
				urls = append(urls, ListItem{Kind: ListItemURL, Name: c.intern(u)})
				i++
				if i < len(values) && values[i].Type == ValueComma {
					i++
					continue
				}
			}
			break
		}
		rest := values[i:]
		decl, ok := enum(c, rest)
		if !ok {
			return nil, false
		}
		if len(urls) > 0 {
			decl[0].Payload.List = urls
		}
		return decl, true
	}
}

func clipHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpClip, FlagInherit, 0)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueIdent && asciiEqualFold(values[0].Value, "auto") {
			return []StyleDecl{{OPV: MakeOPV(OpClip, 0, VAuto)}}, true
		}
		// rect(top, right, bottom, left) — kept as four lengths packed
		// into a List of ListItem idents carrying the raw numeric text;
		// full rect geometry is a presentational detail the matcher's
		// consumers (not this core) ultimately render.
		if len(values) > 0 && values[0].Type == ValueFunction && asciiEqualFold(values[0].Value, "rect") {
			var items []ListItem
			for _, v := range values[1:] {
				if v.Type == ValueComma || (v.Type == ValueDelim && len(v.Value) == 1 && v.Value[0] == ')') {
					continue
				}
				items = append(items, ListItem{Kind: ListItemIdent, Name: c.intern(v.Raw)})
			}
			return []StyleDecl{{OPV: MakeOPV(OpClip, 0, VKeyword), Payload: Payload{List: items}}}, true
		}
		return nil, false
	}
}

func contentHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpContent, FlagInherit, 0)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueIdent {
			switch {
			case asciiEqualFold(values[0].Value, "none"):
				return []StyleDecl{{OPV: MakeOPV(OpContent, 0, VNone)}}, true
			case asciiEqualFold(values[0].Value, "normal"):
				return []StyleDecl{{OPV: MakeOPV(OpContent, 0, VNormal)}}, true
			}
		}
		var list []ListItem
		i := 0
		for i < len(values) {
			v := values[i]
			switch v.Type {
			case ValueString:
				list = append(list, ListItem{Kind: ListItemString, Name: c.intern(v.Value)})
			case ValueURL:
				list = append(list, ListItem{Kind: ListItemURL, Name: c.intern(v.Value)})
			case ValueIdent:
				switch {
				case asciiEqualFold(v.Value, "open-quote"):
					list = append(list, ListItem{Kind: ListItemOpenQuote})
				case asciiEqualFold(v.Value, "close-quote"):
					list = append(list, ListItem{Kind: ListItemCloseQuote})
				case asciiEqualFold(v.Value, "no-open-quote"):
					list = append(list, ListItem{Kind: ListItemNoOpenQuote})
				case asciiEqualFold(v.Value, "no-close-quote"):
					list = append(list, ListItem{Kind: ListItemNoCloseQuote})
				default:
					return nil, false
				}
			case ValueFunction:
				// attr(name), counter(name[,style]), counters(name,sep[,style]).
				name := asciiLowerCopy(v.Value)
				j := i + 1
				var args []intern.Handle
				for j < len(values) {
					if values[j].Type == ValueDelim && len(values[j].Value) == 1 && values[j].Value[0] == ')' {
						j++
						break
					}
					if values[j].Type == ValueComma {
						j++
						continue
					}
					switch values[j].Type {
					case ValueIdent, ValueString:
						args = append(args, c.intern(values[j].Value))
					}
					j++
				}
				switch name {
				case "attr":
					if len(args) != 1 {
						return nil, false
					}
					list = append(list, ListItem{Kind: ListItemAttr, Name: args[0]})
				case "counter":
					if len(args) < 1 {
						return nil, false
					}
					item := ListItem{Kind: ListItemCounter, Name: args[0]}
					if len(args) > 1 {
						item.Arg = args[1]
					}
					list = append(list, item)
				case "counters":
					if len(args) < 2 {
						return nil, false
					}
					item := ListItem{Kind: ListItemCounters, Name: args[0], Arg: args[1]}
					list = append(list, item)
				default:
					return nil, false
				}
				i = j
				continue
			default:
				return nil, false
			}
			i++
		}
		if len(list) == 0 {
			return nil, false
		}
		return []StyleDecl{{OPV: MakeOPV(OpContent, 0, 0), Payload: Payload{List: list}}}, true
	}
}

func quotesHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpQuotes, FlagInherit, 0)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueIdent && asciiEqualFold(values[0].Value, "none") {
			return []StyleDecl{{OPV: MakeOPV(OpQuotes, 0, VNone)}}, true
		}
		var list []ListItem
		for _, v := range values {
			if v.Type != ValueString {
				return nil, false
			}
			list = append(list, ListItem{Kind: ListItemString, Name: c.intern(v.Value)})
		}
		if len(list) == 0 || len(list)%2 != 0 {
			return nil, false
		}
		return []StyleDecl{{OPV: MakeOPV(OpQuotes, 0, 0), Payload: Payload{List: list}}}, true
	}
}

// counterHandler parses counter-reset (mode 0, initial value 0 when
// omitted) and counter-increment (mode 1, default increment 1).
func counterHandler(mode int) func(*declContext, []Value) ([]StyleDecl, bool) {
	op := OpCounterReset
	if mode == 1 {
		op = OpCounterIncrement
	}
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(op, FlagInherit, 0)}}, true
		}
		if len(values) == 1 && values[0].Type == ValueIdent && asciiEqualFold(values[0].Value, "none") {
			return []StyleDecl{{OPV: MakeOPV(op, 0, VNone)}}, true
		}
		var list []ListItem
		i := 0
		def := 0
		if mode == 1 {
			def = 1
		}
		for i < len(values) {
			if values[i].Type != ValueIdent {
				return nil, false
			}
			item := ListItem{Kind: ListItemIdent, Name: c.intern(values[i].Value), Num: def}
			i++
			if i < len(values) && values[i].Type == ValueInteger {
				item.Num = int(values[i].Number)
				i++
			}
			list = append(list, item)
		}
		if len(list) == 0 {
			return nil, false
		}
		return []StyleDecl{{OPV: MakeOPV(op, 0, 0), Payload: Payload{List: list}}}, true
	}
}

func borderSpacingHandler() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{{OPV: MakeOPV(OpBorderSpacing, FlagInherit, 0)}}, true
		}
		if len(values) == 0 || len(values) > 2 {
			return nil, false
		}
		n, u, ok := parseLengthValue(values[0], false)
		if !ok {
			return nil, false
		}
		return []StyleDecl{lengthDeclV(OpBorderSpacing, n, u)}, true
	}
}

// --- shorthand expansion -----------------------------------------------

// expandEdges implements the generic CSS2.1 1-to-4-value edge expansion
// (margin, padding): 1 value -> all sides; 2 -> vert/horiz; 3 ->
// top/horiz/bottom; 4 -> top/right/bottom/left.
func expandEdges(ops [4]Opcode, flags lengthFlags) func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			var out []StyleDecl
			for _, op := range ops {
				out = append(out, StyleDecl{OPV: MakeOPV(op, FlagInherit, 0)})
			}
			return out, true
		}
		vals := splitValues(values)
		if len(vals) == 0 || len(vals) > 4 {
			return nil, false
		}
		idx := [4]int{0, 1, 2, 3}
		switch len(vals) {
		case 1:
			idx = [4]int{0, 0, 0, 0}
		case 2:
			idx = [4]int{0, 1, 0, 1}
		case 3:
			idx = [4]int{0, 1, 2, 1}
		}
		h := lengthHandler(ops[0], flags)
		var out []StyleDecl
		for side := 0; side < 4; side++ {
			d, ok := h(c, vals[idx[side]])
			if !ok {
				return nil, false
			}
			d[0].OPV = MakeOPV(ops[side], d[0].OPV.Flags(), d[0].OPV.Value())
			out = append(out, d[0])
		}
		return out, true
	}
}

func expandEdgesWidth(ops [4]Opcode) func(*declContext, []Value) ([]StyleDecl, bool) {
	e := expandEdges(ops, lengthFlagsPlain)
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return e(c, values)
		}
		vals := splitValues(values)
		if len(vals) == 0 || len(vals) > 4 {
			return nil, false
		}
		idx := edgeIndex(len(vals))
		var out []StyleDecl
		h := borderWidthHandler(ops[0])
		for side := 0; side < 4; side++ {
			d, ok := h(c, vals[idx[side]])
			if !ok {
				return nil, false
			}
			d[0].OPV = MakeOPV(ops[side], d[0].OPV.Flags(), d[0].OPV.Value())
			out = append(out, d[0])
		}
		return out, true
	}
}

func expandEdgesEnum(ops [4]Opcode, table map[string]uint8) func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			var out []StyleDecl
			for _, op := range ops {
				out = append(out, StyleDecl{OPV: MakeOPV(op, FlagInherit, 0)})
			}
			return out, true
		}
		vals := splitValues(values)
		if len(vals) == 0 || len(vals) > 4 {
			return nil, false
		}
		idx := edgeIndex(len(vals))
		var out []StyleDecl
		for side := 0; side < 4; side++ {
			v, ok := keywordValue(vals[idx[side]], table)
			if !ok {
				return nil, false
			}
			out = append(out, StyleDecl{OPV: MakeOPV(ops[side], 0, v)})
		}
		return out, true
	}
}

func expandEdgesColor(ops [4]Opcode) func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			var out []StyleDecl
			for _, op := range ops {
				out = append(out, StyleDecl{OPV: MakeOPV(op, FlagInherit, 0)})
			}
			return out, true
		}
		vals := splitValues(values)
		if len(vals) == 0 || len(vals) > 4 {
			return nil, false
		}
		idx := edgeIndex(len(vals))
		var out []StyleDecl
		for side := 0; side < 4; side++ {
			col, ok := parseColor(vals[idx[side]], c)
			if !ok {
				return nil, false
			}
			out = append(out, colorDecl(ops[side], col))
		}
		return out, true
	}
}

func edgeIndex(n int) [4]int {
	switch n {
	case 1:
		return [4]int{0, 0, 0, 0}
	case 2:
		return [4]int{0, 1, 0, 1}
	case 3:
		return [4]int{0, 1, 2, 1}
	default:
		return [4]int{0, 1, 2, 3}
	}
}

// expandBorderSide parses "border-top: <width> || <style> || <color>"
// (components in any order).
func expandBorderSide(wop, sop, cop Opcode) func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{
				{OPV: MakeOPV(wop, FlagInherit, 0)},
				{OPV: MakeOPV(sop, FlagInherit, 0)},
				{OPV: MakeOPV(cop, FlagInherit, 0)},
			}, true
		}
		var width, style, color *StyleDecl
		for _, v := range splitValues(values) {
			single := v
			if width == nil {
				if d, ok := borderWidthHandler(wop)(c, single); ok {
					width = &d[0]
					continue
				}
			}
			if style == nil {
				if val, ok := keywordValue(single, borderStyleKeywords); ok {
					d := StyleDecl{OPV: MakeOPV(sop, 0, val)}
					style = &d
					continue
				}
			}
			if color == nil {
				if col, ok := parseColor(single, c); ok {
					d := colorDecl(cop, col)
					color = &d
					continue
				}
			}
			return nil, false
		}
		out := []StyleDecl{lengthDecl(wop, 2, UnitPX), {OPV: MakeOPV(sop, 0, borderStyleKeywords["none"])}, {OPV: MakeOPV(cop, 0, VKeyword)}}
		if width != nil {
			out[0] = *width
		}
		if style != nil {
			out[1] = *style
		}
		if color != nil {
			out[2] = *color
		}
		return out, true
	}
}

func expandBorder(widthOps, styleOps, colorOps [4]Opcode) func(*declContext, []Value) ([]StyleDecl, bool) {
	side := expandBorderSide(widthOps[0], styleOps[0], colorOps[0])
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		one, ok := side(c, values)
		if !ok {
			return nil, false
		}
		var out []StyleDecl
		for i := 0; i < 4; i++ {
			out = append(out,
				StyleDecl{OPV: MakeOPV(widthOps[i], one[0].OPV.Flags(), one[0].OPV.Value()), Payload: one[0].Payload},
				StyleDecl{OPV: MakeOPV(styleOps[i], one[1].OPV.Flags(), one[1].OPV.Value()), Payload: one[1].Payload},
				StyleDecl{OPV: MakeOPV(colorOps[i], one[2].OPV.Flags(), one[2].OPV.Value()), Payload: one[2].Payload},
			)
		}
		return out, true
	}
}

func expandOutline() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{
				{OPV: MakeOPV(OpOutlineWidth, FlagInherit, 0)},
				{OPV: MakeOPV(OpOutlineStyle, FlagInherit, 0)},
				{OPV: MakeOPV(OpOutlineColor, FlagInherit, 0)},
			}, true
		}
		var width, style, color *StyleDecl
		for _, v := range splitValues(values) {
			single := v
			if width == nil {
				if d, ok := borderWidthHandler(OpOutlineWidth)(c, single); ok {
					width = &d[0]
					continue
				}
			}
			if style == nil {
				if val, ok := keywordValue(single, borderStyleKeywords); ok {
					d := StyleDecl{OPV: MakeOPV(OpOutlineStyle, 0, val)}
					style = &d
					continue
				}
			}
			if color == nil {
				if d, ok := colorOrInvertHandler()(c, single); ok {
					color = &d[0]
					continue
				}
			}
			return nil, false
		}
		out := []StyleDecl{lengthDecl(OpOutlineWidth, 2, UnitPX), {OPV: MakeOPV(OpOutlineStyle, 0, borderStyleKeywords["none"])}, {OPV: MakeOPV(OpOutlineColor, 0, VKeyword)}}
		if width != nil {
			out[0] = *width
		}
		if style != nil {
			out[1] = *style
		}
		if color != nil {
			out[2] = *color
		}
		return out, true
	}
}

func expandListStyle() func(*declContext, []Value) ([]StyleDecl, bool) {
	return func(c *declContext, values []Value) ([]StyleDecl, bool) {
		if isInherit(values) {
			return []StyleDecl{
				{OPV: MakeOPV(OpListStyleType, FlagInherit, 0)},
				{OPV: MakeOPV(OpListStylePosition, FlagInherit, 0)},
				{OPV: MakeOPV(OpListStyleImage, FlagInherit, 0)},
			}, true
		}
		var typ, pos, img *StyleDecl
		for _, v := range splitValues(values) {
			single := v
			if typ == nil {
				if val, ok := keywordValue(single, listStyleTypeKeywords); ok {
					d := StyleDecl{OPV: MakeOPV(OpListStyleType, 0, val)}
					typ = &d
					continue
				}
			}
			if pos == nil {
				if val, ok := keywordValue(single, listStylePosKeywords); ok {
					d := StyleDecl{OPV: MakeOPV(OpListStylePosition, 0, val)}
					pos = &d
					continue
				}
			}
			if img == nil {
				if d, ok := urlOrNoneHandler(OpListStyleImage)(c, single); ok {
					img = &d[0]
					continue
				}
			}
			return nil, false
		}
		out := []StyleDecl{
			{OPV: MakeOPV(OpListStyleType, 0, listStyleTypeKeywords["disc"])},
			{OPV: MakeOPV(OpListStylePosition, 0, listStylePosKeywords["outside"])},
			{OPV: MakeOPV(OpListStyleImage, 0, VNone)},
		}
		if typ != nil {
			out[0] = *typ
		}
		if pos != nil {
			out[1] = *pos
		}
		if img != nil {
			out[2] = *img
		}
		return out, true
	}
}

func expandFont(c *declContext, values []Value) ([]StyleDecl, bool) {
	if isInherit(values) {
		return []StyleDecl{
			{OPV: MakeOPV(OpFontStyle, FlagInherit, 0)},
			{OPV: MakeOPV(OpFontVariant, FlagInherit, 0)},
			{OPV: MakeOPV(OpFontWeight, FlagInherit, 0)},
			{OPV: MakeOPV(OpFontSize, FlagInherit, 0)},
			{OPV: MakeOPV(OpLineHeight, FlagInherit, 0)},
			{OPV: MakeOPV(OpFontFamily, FlagInherit, 0)},
		}, true
	}
	i := 0
	style := StyleDecl{OPV: MakeOPV(OpFontStyle, 0, fontStyleKeywords["normal"])}
	variant := StyleDecl{OPV: MakeOPV(OpFontVariant, 0, fontVariantKeywords["normal"])}
	weight := StyleDecl{OPV: MakeOPV(OpFontWeight, 0, fontWeightKeywords["normal"])}
	matchedStyle, matchedVariant, matchedWeight := false, false, false
	for i < len(values) {
		v := values[i]
		if v.Type != ValueIdent && v.Type != ValueInteger {
			break
		}
		if v.Type == ValueInteger {
			if matchedWeight {
				break
			}
			if d, ok := fontWeightHandler()(c, []Value{v}); ok {
				weight = d[0]
				matchedWeight = true
				i++
				continue
			}
			break
		}
		if !matchedStyle {
			if val, ok := keywordValue([]Value{v}, fontStyleKeywords); ok {
				style = StyleDecl{OPV: MakeOPV(OpFontStyle, 0, val)}
				matchedStyle = true
				i++
				continue
			}
		}
		if !matchedVariant {
			if val, ok := keywordValue([]Value{v}, fontVariantKeywords); ok {
				variant = StyleDecl{OPV: MakeOPV(OpFontVariant, 0, val)}
				matchedVariant = true
				i++
				continue
			}
		}
		if !matchedWeight {
			if d, ok := fontWeightHandler()(c, []Value{v}); ok {
				weight = d[0]
				matchedWeight = true
				i++
				continue
			}
		}
		break
	}
	if i >= len(values) {
		return nil, false
	}
	sizeDecl, ok := fontSizeHandler()(c, values[i:i+1])
	if !ok {
		return nil, false
	}
	i++
	lineHeight := StyleDecl{OPV: MakeOPV(OpLineHeight, 0, VNormal)}
	if i < len(values) && values[i].Type == ValueDelim && len(values[i].Value) == 1 && values[i].Value[0] == '/' {
		i++
		if i >= len(values) {
			return nil, false
		}
		lhDecl, ok := lineHeightHandler()(c, values[i:i+1])
		if !ok {
			return nil, false
		}
		lineHeight = lhDecl[0]
		i++
	}
	if i >= len(values) {
		return nil, false
	}
	family, ok := fontFamilyHandler()(c, values[i:])
	if !ok {
		return nil, false
	}
	return []StyleDecl{style, variant, weight, sizeDecl[0], lineHeight, family[0]}, true
}

func expandBackground(c *declContext, values []Value) ([]StyleDecl, bool) {
	if isInherit(values) {
		return []StyleDecl{
			{OPV: MakeOPV(OpBackgroundColor, FlagInherit, 0)},
			{OPV: MakeOPV(OpBackgroundImage, FlagInherit, 0)},
			{OPV: MakeOPV(OpBackgroundRepeat, FlagInherit, 0)},
			{OPV: MakeOPV(OpBackgroundAttachment, FlagInherit, 0)},
			{OPV: MakeOPV(OpBackgroundPositionX, FlagInherit, 0)},
			{OPV: MakeOPV(OpBackgroundPositionY, FlagInherit, 0)},
		}, true
	}
	color := StyleDecl{OPV: MakeOPV(OpBackgroundColor, 0, VNone)}
	image := StyleDecl{OPV: MakeOPV(OpBackgroundImage, 0, VNone)}
	repeat := StyleDecl{OPV: MakeOPV(OpBackgroundRepeat, 0, bgRepeatKeywords["repeat"])}
	attach := StyleDecl{OPV: MakeOPV(OpBackgroundAttachment, 0, bgAttachKeywords["scroll"])}
	posX := lengthDecl(OpBackgroundPositionX, 0, UnitPCT)
	posY := lengthDecl(OpBackgroundPositionY, 0, UnitPCT)
	gotColor, gotImage, gotRepeat, gotAttach, gotPos := false, false, false, false, false
	for _, unit := range splitValues(values) {
		single := unit
		v := unit[0]
		if !gotImage {
			if d, ok := urlOrNoneHandler(OpBackgroundImage)(c, single); ok {
				image = d[0]
				gotImage = true
				continue
			}
		}
		if !gotRepeat {
			if val, ok := keywordValue(single, bgRepeatKeywords); ok {
				repeat = StyleDecl{OPV: MakeOPV(OpBackgroundRepeat, 0, val)}
				gotRepeat = true
				continue
			}
		}
		if !gotAttach {
			if val, ok := keywordValue(single, bgAttachKeywords); ok {
				attach = StyleDecl{OPV: MakeOPV(OpBackgroundAttachment, 0, val)}
				gotAttach = true
				continue
			}
		}
		if !gotPos {
			if n, u, ok := parseLengthValue(v, true); ok {
				posX = lengthDeclV(OpBackgroundPositionX, n, u)
				gotPos = true
				continue
			}
			if v.Type == ValueIdent {
				switch {
				case asciiEqualFold(v.Value, "left"):
					posX = lengthDecl(OpBackgroundPositionX, 0, UnitPCT)
					gotPos = true
					continue
				case asciiEqualFold(v.Value, "right"):
					posX = lengthDecl(OpBackgroundPositionX, 100, UnitPCT)
					gotPos = true
					continue
				case asciiEqualFold(v.Value, "top"):
					posY = lengthDecl(OpBackgroundPositionY, 0, UnitPCT)
					gotPos = true
					continue
				case asciiEqualFold(v.Value, "bottom"):
					posY = lengthDecl(OpBackgroundPositionY, 100, UnitPCT)
					gotPos = true
					continue
				case asciiEqualFold(v.Value, "center"):
					posX = lengthDecl(OpBackgroundPositionX, 50, UnitPCT)
					posY = lengthDecl(OpBackgroundPositionY, 50, UnitPCT)
					gotPos = true
					continue
				}
			}
		}
		if !gotColor {
			if col, ok := parseColor(single, c); ok {
				color = colorDecl(OpBackgroundColor, col)
				gotColor = true
				continue
			}
			if v.Type == ValueIdent && asciiEqualFold(v.Value, "transparent") {
				color = StyleDecl{OPV: MakeOPV(OpBackgroundColor, 0, VNone)}
				gotColor = true
				continue
			}
		}
		return nil, false
	}
	return []StyleDecl{color, image, repeat, attach, posX, posY}, true
}

// splitValues groups a flat Decl.Values run into component units for
// multi-value and multi-component properties: commas are dropped (CSS 2.1
// shorthands separate components by whitespace, not comma) and a
// Function token is grouped together with its arguments through the
// matching synthetic closing-paren Delim, so "rgb(1,2,3)" is one unit even
// though the scanner produced it as several Value tokens.
func splitValues(values []Value) [][]Value {
	var out [][]Value
	i := 0
	for i < len(values) {
		if values[i].Type == ValueComma {
			i++
			continue
		}
		if values[i].Type == ValueFunction {
			start := i
			depth := 1
			i++
			for i < len(values) && depth > 0 {
				switch {
				case values[i].Type == ValueFunction:
					depth++
				case values[i].Type == ValueDelim && len(values[i].Value) == 1 && values[i].Value[0] == ')':
					depth--
				}
				i++
			}
			out = append(out, values[start:i])
			continue
		}
		out = append(out, values[i:i+1])
		i++
	}
	return out
}

func asciiLowerCopy(b []byte) string {
	buf := make([]byte, len(b))
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		buf[i] = c
	}
	return string(buf)
}
