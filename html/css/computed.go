package css

import "spilled.ink/html/css/fixed"

// ComputedStyle holds one resolved value per CSS 2.1 longhand opcode:
// inheritance resolved, CSS 2.1 initial values filled in, and every
// absolute-length fixup (ex-to-em conversion, border colors,
// position/float/display remapping) applied. Border width keywords are
// already lengths by then: the property parser substitutes them.
type ComputedStyle struct {
	decls [opcodeCount]StyleDecl
	set   [opcodeCount]bool
}

// Get returns the computed declaration for op, and whether this style
// carries a value for it at all (every non-extension CSS 2.1 property
// does once Compose has run; after Initialise only the non-inherited
// ones do).
func (cs *ComputedStyle) Get(op Opcode) (StyleDecl, bool) {
	return cs.decls[op], cs.set[op]
}

// Style returns cs's declarations as an ordered Style block, one entry per
// opcode that carries a value, for callers (FormatStyle, a debug dumper)
// that want to walk or print the whole computed style rather than probing
// individual opcodes with Get.
func (cs *ComputedStyle) Style() Style {
	s := make(Style, 0, opcodeCount)
	for op := Opcode(1); op < opcodeCount; op++ {
		if cs.set[op] {
			s = append(s, cs.decls[op])
		}
	}
	return s
}

// Initialise fills cs with the CSS 2.1 initial value of every
// non-inherited property, leaving inherited properties unset (Compose
// treats an unset inherited property as "copy the parent's computed
// value"; Initialise is only useful directly for a style with no parent
// and no specified declarations at all).
func (cs *ComputedStyle) Initialise() {
	*cs = ComputedStyle{}
	for op := Opcode(1); op < opcodeCount; op++ {
		info := opcodeInfo[op]
		if info == nil || info.Inherited {
			continue
		}
		cs.decls[op] = info.Initial()
		cs.set[op] = true
	}
}

// FontSizeFunc resolves a specified font-size (or ex-unit probe) value to
// an absolute pixel length, given the parent's already-absolute font
// size. It is the computed style engine's one external collaborator,
// normally Handler.ComputeFontSize.
type FontSizeFunc func(parentSize fixed.Int, parentUnit Unit, specified StyleDecl) (fixed.Int, Unit)

// Compose computes child's resolved style given its own cascaded
// declarations and its parent's already-computed style: for each property, an explicit non-inherit declaration in child wins;
// an explicit "inherit" declaration, or silence on an inherited property,
// copies the parent's computed value; otherwise the property's CSS 2.1
// initial value applies. parent == nil means child is the document root.
//
// After the per-property pass, font-size is resolved to an absolute
// pixel length (needed first, since ex units below depend on it), every
// ex-unit length is converted to an equivalent em length, the four
// border-*-color properties still carrying their "use computed color"
// marker are resolved against the final color, and position/float/
// display are fixed up per CSS 2.1 §9.4.3 and §9.7.
func Compose(parent *ComputedStyle, child Style, fontSize FontSizeFunc) *ComputedStyle {
	result := &ComputedStyle{}

	for op := Opcode(1); op < opcodeCount; op++ {
		info := opcodeInfo[op]
		if info == nil {
			continue
		}
		if d, ok := child.Get(op); ok {
			if d.OPV.Inherit() {
				result.decls[op] = inheritedOrInitial(parent, op, info)
			} else {
				result.decls[op] = StyleDecl{OPV: MakeOPV(op, 0, d.OPV.Value()), Payload: d.Payload}
			}
		} else if info.Inherited {
			result.decls[op] = inheritedOrInitial(parent, op, info)
		} else {
			result.decls[op] = info.Initial()
		}
		result.set[op] = true
	}

	composeFontSize(result, parent, child, fontSize)
	composeExUnits(result, fontSize)
	composeBorderColors(result)
	composeBoxFixups(result, parent == nil)

	return result
}

func inheritedOrInitial(parent *ComputedStyle, op Opcode, info *propertyInfo) StyleDecl {
	if parent != nil {
		return parent.decls[op]
	}
	return info.Initial()
}

// composeFontSize resolves OpFontSize to an absolute pixel length. When
// the generic loop above already copied it from the parent (the
// inherited/no-override cases), it is absolute already — only an
// explicit child value, or the initial keyword at the root, needs the
// callback.
func composeFontSize(result, parent *ComputedStyle, child Style, fontSize FontSizeFunc) {
	var parentSize fixed.Int
	var parentUnit Unit = UnitPX
	if parent != nil {
		pd, _ := parent.Get(OpFontSize)
		parentSize, parentUnit = pd.Payload.Length, pd.Payload.Unit
	}

	d, explicit := child.Get(OpFontSize)
	var specified StyleDecl
	needResolve := false
	switch {
	case explicit && !d.OPV.Inherit():
		specified = d
		needResolve = true
	case !explicit && parent == nil:
		specified = opcodeInfo[OpFontSize].Initial()
		needResolve = true
	}
	if !needResolve {
		return
	}
	abs, u := fontSize(parentSize, parentUnit, specified)
	result.decls[OpFontSize] = StyleDecl{OPV: MakeOPV(OpFontSize, 0, 0), Payload: Payload{Length: abs, Unit: u}}
}

// composeExUnits converts every length still expressed in ex units to an
// equivalent em length (CSS 2.1's ex-to-em normalisation), using the
// same font-metrics callback queried with a synthetic "1ex" probe against
// the element's own (now-absolute) font size.
func composeExUnits(result *ComputedStyle, fontSize FontSizeFunc) {
	hasEx := false
	for op := Opcode(1); op < opcodeCount; op++ {
		if result.set[op] && result.decls[op].Payload.Unit == UnitEX {
			hasEx = true
			break
		}
	}
	if !hasEx {
		return
	}
	fs := result.decls[OpFontSize].Payload
	exProbe := StyleDecl{Payload: Payload{Length: fixed.FromInt(1), Unit: UnitEX}}
	exAbs, _ := fontSize(fs.Length, fs.Unit, exProbe)
	if fs.Length == 0 {
		return
	}
	factor := fixed.Div(exAbs, fs.Length)
	for op := Opcode(1); op < opcodeCount; op++ {
		if !result.set[op] || result.decls[op].Payload.Unit != UnitEX {
			continue
		}
		p := result.decls[op].Payload
		p.Length = fixed.Mul(p.Length, factor)
		p.Unit = UnitEM
		result.decls[op].Payload = p
	}
}

// composeBorderColors resolves the four border-*-color properties that
// were parsed as "use the computed value of color" (CSS 2.1 §8.5.2) to
// the element's actual computed color. outline-color's "invert" marker is
// deliberately left untouched — rendering it is out of scope.
func composeBorderColors(result *ComputedStyle) {
	borderColorOps := [4]Opcode{OpBorderTopColor, OpBorderRightColor, OpBorderBottomColor, OpBorderLeftColor}
	color := result.decls[OpColor].Payload.Color
	for _, op := range borderColorOps {
		if result.decls[op].OPV.Value() == VKeyword {
			p := result.decls[op].Payload
			p.Color = color
			result.decls[op].Payload = p
		}
	}
}

// composeBoxFixups applies CSS 2.1 §9.4.3's relative-positioning offset
// resolution and §9.7's float/display remapping.
func composeBoxFixups(result *ComputedStyle, isRoot bool) {
	position := result.decls[OpPosition].OPV.Value()

	switch position {
	case positionKeywords["static"]:
		forceAuto(result, OpTop)
		forceAuto(result, OpRight)
		forceAuto(result, OpBottom)
		forceAuto(result, OpLeft)
	case positionKeywords["relative"]:
		resolveRelativePair(result, OpTop, OpBottom)
		resolveRelativePair(result, OpLeft, OpRight)
	}

	if isRoot || position == positionKeywords["absolute"] || position == positionKeywords["fixed"] {
		forceKeyword(result, OpFloat, floatKeywords["none"])
		d := result.decls[OpDisplay]
		result.decls[OpDisplay] = StyleDecl{OPV: MakeOPV(OpDisplay, 0, fixupDisplay(d.OPV.Value()))}
	}
}

func forceAuto(result *ComputedStyle, op Opcode) {
	result.decls[op] = StyleDecl{OPV: MakeOPV(op, 0, VAuto)}
}

func forceKeyword(result *ComputedStyle, op Opcode, v uint8) {
	result.decls[op] = StyleDecl{OPV: MakeOPV(op, 0, v)}
}

// resolveRelativePair applies the documented css_computed_bottom
// idiosyncrasy: when the "start" side (top or left) is not auto, the
// "end" side is forced to its negation even if the end side was itself
// given an explicit, different value. Only when the start side is auto
// does the end side's own value (or auto) stand. When both are auto, CSS
// 2.1's "auto + auto = 0" rule makes both resolve to a zero offset.
func resolveRelativePair(result *ComputedStyle, start, end Opcode) {
	startIsAuto := result.decls[start].OPV.Value() == VAuto
	if !startIsAuto {
		neg := result.decls[start].Payload
		neg.Length = -neg.Length
		result.decls[end] = StyleDecl{OPV: MakeOPV(end, 0, 0), Payload: neg}
		return
	}
	endIsAuto := result.decls[end].OPV.Value() == VAuto
	if endIsAuto {
		result.decls[start] = StyleDecl{OPV: MakeOPV(start, 0, 0), Payload: Payload{Unit: UnitPX}}
		result.decls[end] = StyleDecl{OPV: MakeOPV(end, 0, 0), Payload: Payload{Unit: UnitPX}}
	}
}

func fixupDisplay(v uint8) uint8 {
	switch v {
	case displayKeywords["inline-table"]:
		return displayKeywords["table"]
	case displayKeywords["inline"], displayKeywords["run-in"], displayKeywords["table-row-group"],
		displayKeywords["table-header-group"], displayKeywords["table-footer-group"], displayKeywords["table-row"],
		displayKeywords["table-column-group"], displayKeywords["table-column"], displayKeywords["table-cell"],
		displayKeywords["table-caption"], displayKeywords["inline-block"]:
		return displayKeywords["block"]
	default:
		return v
	}
}
