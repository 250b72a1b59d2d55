package css

import (
	"bytes"
	"testing"

	"spilled.ink/html/css/fixed"
)

var formatDeclTests = []struct {
	name string
	decl Decl
	want string
}{
	{
		name: "url_encoding",
		decl: Decl{
			Property: b("background"),
			Values: []Value{
				{Type: ValueURL, Value: b("https://example.com/\"a\"")},
				{Type: ValueComma},
				{Type: ValueIdent, Value: b("blue")},
			},
		},
		want: `background: url("https://example.com/\"a\""), blue;`,
	},
}

func TestFormatDecl(t *testing.T) {
	for _, test := range formatDeclTests {
		t.Run(test.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			FormatDecl(buf, &test.decl)
			got := buf.String()
			if got != test.want {
				t.Errorf("FormatDecl:\n  got: %q\n want: %q", got, test.want)
			}
		})
	}
}

var formatStyleDeclTests = []struct {
	name string
	decl StyleDecl
	want string
}{
	{
		name: "keyword",
		decl: StyleDecl{OPV: MakeOPV(OpDisplay, 0, displayKeywords["block"])},
		want: "display: block;",
	},
	{
		name: "important",
		decl: StyleDecl{OPV: MakeOPV(OpFloat, FlagImportant, floatKeywords["left"])},
		want: "float: left !important;",
	},
	{
		name: "auto_marker",
		decl: StyleDecl{OPV: MakeOPV(OpWidth, 0, VAuto)},
		want: "width: auto;",
	},
	{
		name: "length",
		decl: StyleDecl{OPV: MakeOPV(OpMarginLeft, 0, 0), Payload: Payload{Length: fixed.FromInt(10), Unit: UnitPX}},
		want: "margin-left: 10px;",
	},
	{
		name: "color",
		decl: StyleDecl{OPV: MakeOPV(OpColor, 0, 0), Payload: Payload{Color: RGBA(0x11, 0x22, 0x33, 0xff)}},
		want: "color: rgba(17, 34, 51, 1);",
	},
}

func TestFormatStyleDecl(t *testing.T) {
	for _, test := range formatStyleDeclTests {
		t.Run(test.name, func(t *testing.T) {
			buf := new(bytes.Buffer)
			FormatStyleDecl(buf, test.decl)
			got := buf.String()
			if got != test.want {
				t.Errorf("FormatStyleDecl:\n  got: %q\n want: %q", got, test.want)
			}
		})
	}
}

func TestOpcodeNameAndKeywordName(t *testing.T) {
	if got := OpcodeName(OpDisplay); got != "display" {
		t.Errorf("OpcodeName(OpDisplay) = %q, want \"display\"", got)
	}
	if got := OpcodeName(OpUnknown); got != "" {
		t.Errorf("OpcodeName(OpUnknown) = %q, want \"\"", got)
	}
	if name, ok := KeywordName(OpDisplay, displayKeywords["table"]); !ok || name != "table" {
		t.Errorf("KeywordName(OpDisplay, table) = %q, %v, want \"table\", true", name, ok)
	}
	if _, ok := KeywordName(OpColor, 0); ok {
		t.Errorf("KeywordName(OpColor, 0) = ok, want false (color is not a keyword enum)")
	}
}
