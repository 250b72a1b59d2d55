package css

import (
	"testing"

	"spilled.ink/html/css/fixed"
)

func pxFontSize(parentSize fixed.Int, parentUnit Unit, specified StyleDecl) (fixed.Int, Unit) {
	if specified.Payload.Unit == UnitPX {
		return specified.Payload.Length, UnitPX
	}
	if parentSize == 0 {
		return fixed.FromInt(16), UnitPX
	}
	return parentSize, UnitPX
}

func TestComposeRelativePositionOffsets(t *testing.T) {
	child := Style{
		plainDecl(OpPosition, positionKeywords["relative"]),
		lengthDeclV(OpTop, fixed.FromInt(10), UnitPX),
		// left is left auto: both top/left's partner sides should react to
		// resolveRelativePair's documented "start side wins" rule.
	}
	result := Compose(nil, child, pxFontSize)

	bottom, _ := result.Get(OpBottom)
	if bottom.Payload.Length != fixed.FromInt(-10) || bottom.Payload.Unit != UnitPX {
		t.Errorf("bottom = %+v, want -10px (negation of explicit top)", bottom)
	}
}

func TestComposeStaticPositionForcesOffsetsAuto(t *testing.T) {
	child := Style{
		lengthDeclV(OpTop, fixed.FromInt(5), UnitPX),
	}
	result := Compose(nil, child, pxFontSize)

	top, _ := result.Get(OpTop)
	if top.OPV.Value() != VAuto {
		t.Errorf("top = %+v, want auto under position: static (the default)", top)
	}
}

func TestComposeExUnitsConvertToEm(t *testing.T) {
	child := Style{
		lengthDeclV(OpTextIndent, fixed.FromInt(2), UnitEX),
	}
	result := Compose(nil, child, pxFontSize)

	indent, ok := result.Get(OpTextIndent)
	if !ok || indent.Payload.Unit != UnitEM {
		t.Errorf("text-indent = %+v, %v, want an em-unit length (ex normalised away)", indent, ok)
	}
}

func TestComposeInheritsBorderColorFromColor(t *testing.T) {
	child := Style{
		colorDecl(OpColor, RGBA(0x10, 0x20, 0x30, 0xff)),
	}
	result := Compose(nil, child, pxFontSize)

	bc, ok := result.Get(OpBorderTopColor)
	if !ok || bc.Payload.Color != RGBA(0x10, 0x20, 0x30, 0xff) {
		t.Errorf("border-top-color = %+v, %v, want the element's own color", bc, ok)
	}
}

func TestInitialiseSkipsInheritedProperties(t *testing.T) {
	var cs ComputedStyle
	cs.Initialise()

	if _, ok := cs.Get(OpColor); ok {
		t.Error("Initialise set OpColor (inherited), want it left unset")
	}
	if _, ok := cs.Get(OpDisplay); !ok {
		t.Error("Initialise did not set OpDisplay (non-inherited), want its CSS 2.1 initial value")
	}
}
