// The cssdump command prints the fully cascaded, computed CSS 2.1 style of
// one element in an HTML document, given a set of stylesheets to match it
// against.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"spilled.ink/domtree"
	"spilled.ink/html/css"
	"spilled.ink/html/css/intern"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-select selector] [-verify] page.html [style.css ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flagSelect := flag.String("select", "body", "CSS selector identifying the element to dump computed style for")
	flagVerify := flag.Bool("verify", false, "cross-check -select against github.com/andybalholm/cascadia")
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		exit(2)
	}

	if err := run(flag.Arg(0), flag.Args()[1:], *flagSelect, *flagVerify); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", os.Args[0], err)
		exit(1)
	}
	exit(0)
}

func run(htmlPath string, cssPaths []string, selector string, verify bool) error {
	htmlFile, err := os.Open(htmlPath)
	if err != nil {
		return err
	}
	defer htmlFile.Close()

	doc, err := goquery.NewDocumentFromReader(htmlFile)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", htmlPath, err)
	}

	sel := doc.Find(selector)
	if sel.Length() == 0 {
		return fmt.Errorf("selector %q matched no element", selector)
	}
	target := sel.Nodes[0]

	if verify {
		if err := verifySelect(doc, selector, target); err != nil {
			return err
		}
	}

	interner := intern.New()
	ctx := css.NewSelectionContext()
	for _, path := range cssPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		sheet := css.NewStylesheet(interner, css.Config{
			Level:         css.LanguageCSS21,
			URL:           path,
			QuirksAllowed: true,
		})
		if err := sheet.AppendData(data); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := sheet.DataDone(); err != nil && err != css.ErrImportsPending {
			return fmt.Errorf("%s: %w", path, err)
		}
		ctx.AppendSheet(sheet, css.OriginAuthor, css.MediaAll)
	}

	tree := domtree.NewTree(interner, nil)

	var parent *css.ComputedStyle
	for _, n := range ancestorChain(target) {
		inline := nodeInlineStyle(interner, n)
		parent = ctx.SelectStyle(n, parent, "", css.MediaAll, inline, tree)
	}

	var buf bytes.Buffer
	css.FormatStyle(&buf, parent.Style())
	_, err = os.Stdout.Write(buf.Bytes())
	return err
}

// ancestorChain returns target's element ancestors from the outermost
// (typically <html>) down to and including target itself: the order
// SelectStyle's cascade-then-compose walk needs, since a child's inherited
// properties require its parent's ComputedStyle to already exist.
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

func nodeInlineStyle(interner *intern.Table, n *html.Node) css.Style {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, "style") {
			return css.ParseInlineStyle(interner, []byte(a.Val), true, nil)
		}
	}
	return nil
}

// verifySelect cross-checks that selector, parsed independently by
// cascadia, matches (among any others) the same element goquery chose: a sanity
// oracle over the -select flag's own syntax, not over the cascade engine's
// rule matching (cascadia is never consulted by the matcher itself).
func verifySelect(doc *goquery.Document, selector string, target *html.Node) error {
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return fmt.Errorf("-verify: cascadia could not parse %q: %w", selector, err)
	}
	root := doc.Selection.Nodes[0]
	for _, m := range sel.MatchAll(root) {
		if m == target {
			return nil
		}
	}
	return fmt.Errorf("-verify: cascadia's independent match for %q disagrees with goquery's", selector)
}

func exit(code int) {
	os.Exit(code)
}
