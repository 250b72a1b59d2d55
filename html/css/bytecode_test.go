package css

import (
	"reflect"
	"testing"

	"spilled.ink/html/css/intern"
)

// TestMakeImportantIdempotent exercises spec.md §8's invariant directly:
// running MakeImportant a second time must leave the Style unchanged.
func TestMakeImportantIdempotent(t *testing.T) {
	interner := intern.New()
	style := ParseInlineStyle(interner, []byte("color: red; margin: 1px 2px;"), false, nil)

	for _, d := range style {
		if d.OPV.Important() {
			t.Fatalf("declaration already important before MakeImportant: %+v", d)
		}
	}

	MakeImportant(style)
	once := make(Style, len(style))
	copy(once, style)
	for _, d := range once {
		if !d.OPV.Important() {
			t.Errorf("declaration not important after MakeImportant: %+v", d)
		}
	}

	MakeImportant(style)
	if !reflect.DeepEqual(once, style) {
		t.Errorf("MakeImportant not idempotent:\n  first  = %+v\n  second = %+v", once, style)
	}
}
