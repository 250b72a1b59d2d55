package domtree

import (
	"spilled.ink/html/css"
	"spilled.ink/html/css/fixed"
)

// absoluteSizeTable is CSS 2.1 §4.3.2's suggested scaling factors for the
// seven absolute font-size keywords, applied to a 16px "medium" baseline —
// the same baseline most desktop browsers ship as their default. "larger"
// and "smaller" apply the traditional 1.2 scaling ratio against the
// parent's computed size instead of this table.
var absoluteSizeTable = map[string]int{
	"xx-small": 9,
	"x-small":  10,
	"small":    13,
	"medium":   16,
	"large":    18,
	"x-large":  24,
	"xx-large": 32,
}

const relativeSizeFactorNum, relativeSizeFactorDen = 6, 5 // 1.2

// DefaultFontMetrics implements FontMetrics with CSS 2.1's own suggested
// absolute-keyword table and percentage/em/relative-keyword scaling rules
// (§4.3.2, §10.2), with no access to actual font/glyph metrics: ex units
// resolve to exactly half the em size, a common approximation absent real
// font data.
type DefaultFontMetrics struct{}

func (DefaultFontMetrics) ComputeFontSize(parentSize fixed.Int, parentUnit css.Unit, specified css.StyleDecl) (fixed.Int, css.Unit) {
	if parentSize == 0 {
		parentSize, parentUnit = fixed.FromInt(absoluteSizeTable["medium"]), css.UnitPX
	}

	if specified.Payload.Unit == css.UnitEX {
		// The "1ex" probe computed.go issues to derive its ex->em ratio.
		return fixed.Div(parentSize, fixed.FromInt(2)), css.UnitPX
	}

	if name, ok := css.FontSizeKeywordName(specified.OPV.Value()); ok {
		if px, ok := absoluteSizeTable[name]; ok {
			return fixed.FromInt(px), css.UnitPX
		}
		switch name {
		case "larger":
			return fixed.Div(fixed.Mul(parentSize, fixed.FromInt(relativeSizeFactorNum)), fixed.FromInt(relativeSizeFactorDen)), css.UnitPX
		case "smaller":
			return fixed.Div(fixed.Mul(parentSize, fixed.FromInt(relativeSizeFactorDen)), fixed.FromInt(relativeSizeFactorNum)), css.UnitPX
		}
		return parentSize, css.UnitPX
	}

	switch specified.Payload.Unit {
	case css.UnitEM:
		return fixed.Mul(parentSize, specified.Payload.Length), css.UnitPX
	case css.UnitPCT:
		return fixed.Div(fixed.Mul(parentSize, specified.Payload.Length), fixed.FromInt(100)), css.UnitPX
	default:
		return specified.Payload.Length, specified.Payload.Unit
	}
}
