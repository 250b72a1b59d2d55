package domtree

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"spilled.ink/html/css"
	"spilled.ink/html/css/intern"
)

func TestUADefaultDisplay(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><div>x</div><li>y</li></body></html>`))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	div := findElement(doc, "div")
	li := findElement(doc, "li")

	tree := NewTree(intern.New(), nil)

	d, ok := tree.UADefault(div, css.OpDisplay)
	name, _ := css.KeywordName(css.OpDisplay, d.OPV.Value())
	if !ok || name != "block" {
		t.Errorf("UADefault(div, display) = %+v, %v (%q), want block", d, ok, name)
	}

	d, ok = tree.UADefault(li, css.OpDisplay)
	name, _ = css.KeywordName(css.OpDisplay, d.OPV.Value())
	if !ok || name != "list-item" {
		t.Errorf("UADefault(li, display) = %+v, %v (%q), want list-item", d, ok, name)
	}
}

func TestUADefaultCachesPerAtom(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><div>x</div><div>y</div></body></html>`))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	tree := NewTree(intern.New(), nil)

	var divs []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "div" {
			divs = append(divs, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if len(divs) != 2 {
		t.Fatalf("found %d <div>, want 2", len(divs))
	}

	first, _ := tree.UADefault(divs[0], css.OpDisplay)
	second, _ := tree.UADefault(divs[1], css.OpDisplay)
	if first.OPV != second.OPV {
		t.Errorf("two <div> elements produced different cached UA defaults: %+v vs %+v", first, second)
	}
}

func TestPresentationalHintFontColor(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<font color="red">x</font>`))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	font := findElement(doc, "font")
	tree := NewTree(intern.New(), nil)

	d, ok := tree.PresentationalHint(font, css.OpColor)
	if !ok || d.Payload.Color != css.RGBA(0xff, 0, 0, 0xff) {
		t.Errorf("PresentationalHint(font, color) = %+v, %v, want red", d, ok)
	}
}

func TestPresentationalHintWidthAttribute(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<table width="50%"></table>`))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	table := findElement(doc, "table")
	tree := NewTree(intern.New(), nil)

	d, ok := tree.PresentationalHint(table, css.OpWidth)
	if !ok || d.Payload.Unit != css.UnitPCT {
		t.Errorf("PresentationalHint(table, width) = %+v, %v, want a percentage length", d, ok)
	}
}
