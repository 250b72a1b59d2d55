package domtree

import (
	"testing"

	"spilled.ink/html/css"
	"spilled.ink/html/css/fixed"
)

var fontSizeTests = []struct {
	name       string
	parentSize int // px, 0 means "no parent / document root"
	specified  css.StyleDecl
	wantPX     int
}{
	{
		name:       "em_relative",
		parentSize: 20,
		specified:  css.StyleDecl{Payload: css.Payload{Length: fixed.FromInt(2), Unit: css.UnitEM}},
		wantPX:     40,
	},
	{
		name:       "percent_relative",
		parentSize: 10,
		specified:  css.StyleDecl{Payload: css.Payload{Length: fixed.FromInt(150), Unit: css.UnitPCT}},
		wantPX:     15,
	},
	{
		name:       "absolute_length_passthrough",
		parentSize: 16,
		specified:  css.StyleDecl{Payload: css.Payload{Length: fixed.FromInt(12), Unit: css.UnitPT}},
		wantPX:     12, // unit left as-is; only the length value is checked here
	},
}

func TestDefaultFontMetricsComputeFontSize(t *testing.T) {
	m := DefaultFontMetrics{}
	for _, test := range fontSizeTests {
		t.Run(test.name, func(t *testing.T) {
			parent := fixed.FromInt(test.parentSize)
			got, _ := m.ComputeFontSize(parent, css.UnitPX, test.specified)
			if got.ToInt() != test.wantPX {
				t.Errorf("ComputeFontSize(%dpx, %+v) = %dpx, want %dpx", test.parentSize, test.specified, got.ToInt(), test.wantPX)
			}
		})
	}
}

func TestDefaultFontMetricsKeywordsScaleFromMedium(t *testing.T) {
	m := DefaultFontMetrics{}
	mediumDecl, _ := keywordFontSizeDecl("medium")
	large, _ := m.ComputeFontSize(0, css.UnitPX, mediumDecl)
	if large.ToInt() != 16 {
		t.Fatalf("medium = %dpx, want 16px", large.ToInt())
	}

	largerDecl, _ := keywordFontSizeDecl("larger")
	got, _ := m.ComputeFontSize(large, css.UnitPX, largerDecl)
	want := large.ToInt() * 6 / 5
	if got.ToInt() != want {
		t.Errorf("larger against 16px = %dpx, want %dpx (1.2x)", got.ToInt(), want)
	}
}

// keywordFontSizeDecl builds a StyleDecl carrying op-encoded font-size
// keyword name, the same shape properties.go's enumDecl produces.
func keywordFontSizeDecl(name string) (css.StyleDecl, bool) {
	for v := uint8(0); v < 255; v++ {
		if n, ok := css.FontSizeKeywordName(v); ok && n == name {
			return css.StyleDecl{OPV: css.MakeOPV(css.OpFontSize, 0, v)}, true
		}
	}
	return css.StyleDecl{}, false
}
