package domtree

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"spilled.ink/html/css"
	"spilled.ink/html/css/intern"
)

// findElement returns the first descendant of root (inclusive) named tag.
func findElement(root *html.Node, tag string) *html.Node {
	if root.Type == html.ElementNode && root.Data == tag {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// ancestorChain mirrors cmd/cssdump's walk: target's element ancestors from
// the outermost down to and including target.
func ancestorChain(target *html.Node) []*html.Node {
	var chain []*html.Node
	for n := target; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			chain = append(chain, n)
		}
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func mustParseSheet(t *testing.T, interner *intern.Table, src string) *css.Stylesheet {
	t.Helper()
	sheet := css.NewStylesheet(interner, css.Config{Level: css.LanguageCSS21})
	if err := sheet.AppendData([]byte(src)); err != nil {
		t.Fatalf("AppendData: %v", err)
	}
	if err := sheet.DataDone(); err != nil {
		t.Fatalf("DataDone: %v", err)
	}
	return sheet
}

func TestTreeSelectStyle(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><p id="x" class="note">hi</p></body></html>`))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	target := findElement(doc, "p")
	if target == nil {
		t.Fatal("could not find <p> in parsed document")
	}

	interner := intern.New()
	sheet := mustParseSheet(t, interner, `p { color: red; } #x { font-weight: bold; } .note { text-align: center; }`)

	ctx := css.NewSelectionContext()
	ctx.AppendSheet(sheet, css.OriginAuthor, css.MediaAll)

	tree := NewTree(interner, nil)

	var parent *css.ComputedStyle
	for _, n := range ancestorChain(target) {
		parent = ctx.SelectStyle(n, parent, "", css.MediaAll, nil, tree)
	}

	colorDecl, ok := parent.Get(css.OpColor)
	if !ok || colorDecl.Payload.Color != css.RGBA(0xff, 0x00, 0x00, 0xff) {
		t.Errorf("OpColor = %+v, %v, want red", colorDecl, ok)
	}
	weightDecl, ok := parent.Get(css.OpFontWeight)
	weightName, _ := css.KeywordName(css.OpFontWeight, weightDecl.OPV.Value())
	if !ok || weightName != "bold" {
		t.Errorf("OpFontWeight = %+v, %v, want bold", weightDecl, ok)
	}
	alignDecl, ok := parent.Get(css.OpTextAlign)
	alignName, _ := css.KeywordName(css.OpTextAlign, alignDecl.OPV.Value())
	if !ok || alignName != "center" {
		t.Errorf("OpTextAlign = %+v, %v, want center", alignDecl, ok)
	}
}

func TestTreeIDAndClasses(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><p id="x" class="a b">hi</p></body></html>`))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	target := findElement(doc, "p")
	interner := intern.New()
	tree := NewTree(interner, nil)

	id, ok := tree.ID(target)
	if !ok || string(id.Data()) != "x" {
		t.Errorf("ID = %q, %v, want \"x\", true", id.Data(), ok)
	}
	classes := tree.Classes(target)
	if len(classes) != 2 || string(classes[0].Data()) != "a" || string(classes[1].Data()) != "b" {
		t.Errorf("Classes = %v, want [a b]", classes)
	}
}

func TestTreeDynamicState(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><a href="/x">link</a></body></html>`))
	if err != nil {
		t.Fatalf("html.Parse: %v", err)
	}
	target := findElement(doc, "a")
	tree := NewTree(intern.New(), nil)

	if !tree.IsLink(target) {
		t.Error("IsLink = false, want true for <a href>")
	}
	if tree.IsHover(target) {
		t.Error("IsHover = true before SetHover, want false")
	}
	tree.SetHover(target, true)
	if !tree.IsHover(target) {
		t.Error("IsHover = false after SetHover(true), want true")
	}
}
