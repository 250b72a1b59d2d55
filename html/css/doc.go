/*
Package css implements a CSS 2.1 engine: tokenizer, parser, stylesheet
and selector model, selector matcher, and computed-style resolver.

It is written to the CSS Syntax Module Level 3 specification,
https://www.w3.org/TR/css-syntax-3/, for tokenization, and to CSS 2.1,
https://www.w3.org/TR/CSS21/, for everything built on top of it.
There are oddities in the Syntax spec so it is not taken as gospel.
It suggests for example that declarations in style attributes
can contain at-rules, when all other sources and implementations
say they cannot.
So this package was written by also consulting other sources,
such as https://developer.mozilla.org/en-US/docs/Web/CSS/Syntax.

Scanner

Turn bytes into tokens by calling the Next method until an EOF token:

	errh := func(line, col, n int, msg string) {
		log.Printf("%d:%d: %s", line, col, msg)
	}
	s := css.NewScanner(r, errh)
	for {
		s.Next()
		if s.Token == css.EOF {
			break
		}
		// ... process the token fields of s.
	}

The error handler function errh will be called for CSS tokenization
errors and any underlying I/O errors from the provided io.Reader.

Note: []byte data provided by s is reused when Next is called.

NewStylesheetScanner wraps NewScanner with charset detection
(DetectCharset): a caller-supplied HTTP/enclosing-document charset, a
byte-order mark, or a leading @charset rule, each transcoded to UTF-8
via golang.org/x/text/encoding before tokenizing begins.

Parser and Events

Parser turns a token stream into Decl/Value level constructs. An
example of parsing a style attribute:

	errh := func(line, col, n int, msg string) {
		log.Printf("%d:%d: %s", line, col, msg)
	}
	p := css.NewParser(css.NewScanner(r, errh))
	var decl css.Decl
	for p.ParseDecl(&decl) {
		// A declaration is written to decl
		// and any parse errors are reported to errh.
	}

Events sits above Parser and walks a full stylesheet's rule-list
grammar, one top-level construct (a ruleset's prelude, or an at-rule's
name and prelude) at a time; Stylesheet drives an Events/Parser pair to
build the rule and selector model below.

Stylesheet model

Stylesheet parses a complete CSS 2.1 style sheet (NewStylesheet,
AppendData, DataDone) into a tree of *Rule values: style rules holding
a Selector chain and a Style declaration list, @media rules holding a
nested rule list, and @import/@charset/@page/@font-face rules. Values
are interned through intern.Table and numeric payloads stored as fixed
24.8 fixed-point (package fixed). The declaration parser's Value.Number
is a float64; it is converted to fixed point when a declaration is stored.

Selector matching

Handler is the host document's vtable: SelectionContext.SelectStyle
matches a Handler-described node against every selector in every
registered stylesheet, ranks the results by CSS 2.1 §6.4.1 cascade
order (origin, !important, specificity, source order), and composes
the winning declarations into a ComputedStyle.

Computed style

Compose resolves a node's cascaded declarations against its parent's
already-computed style: inheritance, CSS 2.1 initial values, absolute
font-size and ex-to-em conversion (via the host-supplied
FontSizeFunc), border-color "use computed value" markers, and the
position/float/display fixups of CSS 2.1 §9.4.3 and §9.7.
*/
package css
