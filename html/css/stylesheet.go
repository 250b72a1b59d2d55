package css

import (
	"bytes"
	"log"

	"spilled.ink/html/css/intern"
)

// ErrCode is the small set of error codes the Stylesheet construction
// API names.
type ErrCode uint8

const (
	ECOk ErrCode = iota
	ECBadParm
	ECInvalid
	ECNeedData
	ECImportsPending
)

func (c ErrCode) String() string {
	switch c {
	case ECOk:
		return "ok"
	case ECBadParm:
		return "bad parameter"
	case ECInvalid:
		return "invalid stylesheet state"
	case ECNeedData:
		return "no data appended yet"
	case ECImportsPending:
		return "imports pending"
	default:
		return "unknown error"
	}
}

// Error is a Stylesheet construction error; compare against the Err*
// sentinels with errors.Is (they're singletons, so == works too).
type Error struct{ Code ErrCode }

func (e *Error) Error() string { return "css: " + e.Code.String() }

var (
	ErrBadParm       = &Error{ECBadParm}
	ErrInvalid       = &Error{ECInvalid}
	ErrNeedData      = &Error{ECNeedData}
	ErrImportsPending = &Error{ECImportsPending}
)

// LanguageLevel is the CSS language level a Stylesheet was constructed
// for.
type LanguageLevel uint8

const (
	LanguageCSS1 LanguageLevel = iota
	LanguageCSS21
)

// Config configures a new Stylesheet.
type Config struct {
	Level LanguageLevel
	// Charset is a caller-dictated character encoding (e.g. from an HTTP
	// Content-Type header or an enclosing document's declared charset).
	// Empty means "detect" (DetectCharset).
	Charset string
	URL     string
	Title   string
	// QuirksAllowed enables HTML quirks-mode leniencies (bare hex colors,
	// 8-digit hex/rgba leniency).
	QuirksAllowed bool
	IsInlineStyle bool
	// Resolve resolves a URL token's text against the sheet's own URL.
	// Nil leaves URLs untouched.
	Resolve func(base, rel string) string
	// Logf receives scanner/parser diagnostics and charset fallback
	// notices. Defaults to log.Printf, matching htmlsafe's Sanitizer and
	// the rest of this package's ambient logging convention.
	Logf func(format string, v ...interface{})
}

// Stylesheet is a parsed CSS stylesheet: a sequence of Rules plus the
// SelectorHash indexing every style rule it (transitively, through
// @media) contains.
type Stylesheet struct {
	cfg      Config
	interner *intern.Table
	hash     *SelectorHash

	rules      []*Rule
	head, tail *Rule
	nextIndex  int

	hadRule bool // seen any rule other than @charset/@import (gates @import)
	started bool // seen anything at all yet (gates @charset)

	disabled   bool
	quirksUsed bool

	appended bool
	buf      bytes.Buffer
	done     bool

	inline Style // populated only when cfg.IsInlineStyle

	pendingImports []*Rule
	nextImport     int
}

// NewStylesheet creates an empty stylesheet. Feed it source text via
// AppendData (any number of times) and finish with DataDone.
func NewStylesheet(interner *intern.Table, cfg Config) *Stylesheet {
	if cfg.Logf == nil {
		cfg.Logf = log.Printf
	}
	return &Stylesheet{cfg: cfg, interner: interner, hash: newSelectorHash()}
}

// AppendData appends a chunk of source bytes. It may be called any number
// of times before DataDone; chunk boundaries need not align with token or
// rule boundaries.
func (sh *Stylesheet) AppendData(data []byte) error {
	if sh.done {
		return ErrInvalid
	}
	sh.appended = true
	sh.buf.Write(data)
	return nil
}

// DataDone finishes construction: it decodes the accumulated bytes
// (charset detection), tokenizes, and builds the rule list
// and selector hash. It returns ErrImportsPending if the stylesheet
// contains @import rules that RegisterImport has not yet resolved;
// NextPendingImport/RegisterImport let the caller drive that resolution
// and call DataDone again to re-check (imports themselves don't block the
// rules already parsed from being used).
func (sh *Stylesheet) DataDone() error {
	if !sh.appended {
		return ErrNeedData
	}
	if !sh.done {
		sh.done = true
		scanner := NewStylesheetScanner(sh.buf.Bytes(), sh.cfg.Charset, sh.cfg.Logf, sh.scanError)
		if sh.cfg.IsInlineStyle {
			sh.inline = ParseInlineStyle(sh.interner, sh.buf.Bytes(), sh.cfg.QuirksAllowed, sh.resolveFunc())
		} else {
			ev := NewEvents(scanner)
			sh.parseRuleList(ev, MediaAll, nil)
		}
	}
	if sh.nextImport < len(sh.pendingImports) {
		return ErrImportsPending
	}
	return nil
}

func (sh *Stylesheet) scanError(line, col, n int, msg string) {
	sh.cfg.Logf("css: %s:%d:%d: %s", sh.cfg.URL, line, col, msg)
}

func (sh *Stylesheet) resolveFunc() func(rel string) string {
	return func(rel string) string {
		if sh.cfg.Resolve == nil {
			return rel
		}
		return sh.cfg.Resolve(sh.cfg.URL, rel)
	}
}

func (sh *Stylesheet) declContext() *declContext {
	return &declContext{
		interner:   sh.interner,
		quirks:     sh.cfg.QuirksAllowed,
		resolve:    sh.resolveFunc(),
		quirksUsed: &sh.quirksUsed,
	}
}

// parseRuleList drains one nesting level's worth of events: the top of
// the stylesheet when parent is nil, or the body of an @media rule.
func (sh *Stylesheet) parseRuleList(ev *Events, media MediaMask, parent *Rule) {
	for {
		e := ev.Next()
		switch e.Kind {
		case EventEnd:
			return
		case EventRuleset:
			sh.handleRuleset(ev, e.Prelude, media, parent)
		case EventAtRule:
			sh.handleAtRule(ev, e, media, parent)
		}
	}
}

func (sh *Stylesheet) handleRuleset(ev *Events, prelude []Value, media MediaMask, parent *Rule) {
	sp := newSelectorParser(sh.interner, sh.cfg.QuirksAllowed)
	selectors, selOK := sp.parseSelectorList(prelude)
	style := sh.parseDeclBlock(ev)
	ev.EndBlock()
	sh.started = true
	if !selOK {
		// CSS Syntax forward-compatible recovery: an unparsable selector
		// discards the whole rule, but its declaration block has already
		// been drained above so the scanner stays in sync.
		return
	}
	sh.hadRule = true
	sh.insertStyleRule(selectors, style, media, parent)
}

// parseDeclBlock drains a '{'-terminated declaration block (already
// consumed up to and including '{' by the caller's Events.Next) into a
// Style, discarding unknown properties and invalid values.
func (sh *Stylesheet) parseDeclBlock(ev *Events) Style {
	dc := sh.declContext()
	var style Style
	var decl Decl
	for ev.Parser().ParseDecl(&decl) {
		info := lookupProperty(decl.Property)
		if info == nil {
			continue
		}
		decls, ok := info.Parse(dc, decl.Values)
		if !ok {
			continue
		}
		if decl.BangImportant {
			MakeImportant(decls)
		}
		style = append(style, decls...)
	}
	return style
}

func (sh *Stylesheet) insertStyleRule(selectors []*Selector, style Style, media MediaMask, parent *Rule) {
	idx := sh.nextIndex
	sh.nextIndex++
	for pos, sel := range selectors {
		r := &Rule{
			Type:        RuleStyle,
			Index:       idx,
			Position:    pos,
			Selector:    sel,
			Specificity: sel.Compute(),
			Style:       style,
			Media:       media,
		}
		sh.attachRule(r, parent)
		sh.hash.Insert(r)
	}
}

func (sh *Stylesheet) attachRule(r *Rule, parent *Rule) {
	r.sheet = sh
	r.Parent = parent
	if parent != nil {
		if parent.childTail != nil {
			parent.childTail.next = r
			r.prev = parent.childTail
		} else {
			parent.childHead = r
		}
		parent.childTail = r
	} else {
		if sh.tail != nil {
			sh.tail.next = r
			r.prev = sh.tail
		} else {
			sh.head = r
		}
		sh.tail = r
	}
	sh.rules = append(sh.rules, r)
}

func (sh *Stylesheet) handleAtRule(ev *Events, e Event, media MediaMask, parent *Rule) {
	name := asciiLowerCopy(e.AtName)
	switch name {
	case "charset":
		if !sh.started && parent == nil {
			if len(e.Prelude) == 1 && e.Prelude[0].Type == ValueString {
				r := &Rule{Type: RuleCharset, Index: sh.nextIndex, Encoding: sh.interner.Intern(e.Prelude[0].Value)}
				sh.nextIndex++
				sh.attachRule(r, nil)
			}
		}
		sh.started = true
	case "import":
		sh.started = true
		if !sh.hadRule && parent == nil {
			if url, mask, ok := parseImportPrelude(e.Prelude); ok {
				resolved := url
				if sh.cfg.Resolve != nil {
					resolved = sh.cfg.Resolve(sh.cfg.URL, url)
				}
				r := &Rule{Type: RuleImport, Index: sh.nextIndex, URL: sh.interner.Intern([]byte(resolved)), Media: mask}
				sh.nextIndex++
				sh.attachRule(r, nil)
				sh.pendingImports = append(sh.pendingImports, r)
			}
		}
	case "media":
		sh.started = true
		if !e.HasBlock {
			return
		}
		mask := parseMediaList(e.Prelude)
		sh.hadRule = true
		mr := &Rule{Type: RuleMedia, Index: sh.nextIndex, Media: mask}
		sh.nextIndex++
		sh.attachRule(mr, parent)
		sh.parseRuleList(ev, mask, mr)
	case "page":
		sh.started = true
		if !e.HasBlock {
			return
		}
		pagePseudo := parsePagePseudo(sh.interner, e.Prelude)
		style := sh.parseDeclBlock(ev)
		ev.EndBlock()
		sh.hadRule = true
		pr := &Rule{Type: RulePage, Index: sh.nextIndex, Style: style, Media: media, PagePseudo: pagePseudo}
		sh.nextIndex++
		sh.attachRule(pr, parent)
	case "font-face":
		sh.started = true
		if !e.HasBlock {
			return
		}
		style := sh.parseDeclBlock(ev)
		ev.EndBlock()
		fr := &Rule{Type: RuleFontFace, Index: sh.nextIndex, Style: style, Media: media}
		sh.nextIndex++
		sh.attachRule(fr, parent)
	default:
		sh.started = true
		if e.HasBlock {
			sh.skipBlock(ev)
		}
	}
}

// skipBlock discards an unrecognised at-rule's block, including any
// further nested constructs it contains.
func (sh *Stylesheet) skipBlock(ev *Events) {
	for {
		e := ev.Next()
		if e.Kind == EventEnd {
			return
		}
		if e.HasBlock {
			sh.skipBlock(ev)
		}
	}
}

func parseMediaList(prelude []Value) MediaMask {
	var mask MediaMask
	any := false
	for _, v := range prelude {
		if v.Type == ValueIdent {
			if m, ok := mediaFromIdent(v.Value); ok {
				mask |= m
				any = true
			}
		}
	}
	if !any {
		return MediaAll
	}
	return mask
}

// parsePagePseudo reads the optional ":first"/":left"/":right" page
// pseudo-class off an "@page" prelude, the same way parseSelector's
// pseudo-class branch (selector.go's parsePseudo) reads one off a
// compound selector. An "@page { ... }" prelude (no pseudo-class) yields
// the zero intern.Handle.
func parsePagePseudo(interner *intern.Table, prelude []Value) intern.Handle {
	toks := trimDelimSpace(prelude)
	if len(toks) == 0 || toks[0].Type != ValueDelim || len(toks[0].Value) != 1 || toks[0].Value[0] != ':' {
		return intern.Handle{}
	}
	sp := newSelectorParser(interner, false)
	det, _, ok := sp.parsePseudo(toks, 1)
	if !ok {
		return intern.Handle{}
	}
	return det.Name
}

func parseImportPrelude(prelude []Value) (url string, media MediaMask, ok bool) {
	var urlToks []Value
	var rest []Value
	for i, v := range prelude {
		if v.Type == ValueWhitespaceCombinator {
			continue
		}
		urlToks = append(urlToks, v)
		rest = prelude[i+1:]
		break
	}
	if len(urlToks) != 1 {
		return "", 0, false
	}
	switch urlToks[0].Type {
	case ValueString, ValueURL:
		url = string(urlToks[0].Value)
	default:
		return "", 0, false
	}
	return url, parseMediaList(rest), true
}

// NextPendingImport returns the next @import rule's URL and media mask
// that RegisterImport has not yet resolved.
func (sh *Stylesheet) NextPendingImport() (url string, media MediaMask, ok bool) {
	if sh.nextImport >= len(sh.pendingImports) {
		return "", 0, false
	}
	r := sh.pendingImports[sh.nextImport]
	return string(r.URL.Data()), r.Media, true
}

// RegisterImport attaches child as the resolved stylesheet for the next
// pending @import rule.
func (sh *Stylesheet) RegisterImport(child *Stylesheet) error {
	if sh.nextImport >= len(sh.pendingImports) {
		return ErrBadParm
	}
	sh.pendingImports[sh.nextImport].importedSheet = child
	sh.nextImport++
	return nil
}

// Interner returns the string table this sheet interns every identifier
// and string into. A Handler matching nodes against this sheet must intern
// node names, IDs, and classes into the same table, since SimID/SimClass
// matching compares handles by pointer equality (intern.Equal).
func (sh *Stylesheet) Interner() *intern.Table { return sh.interner }

func (sh *Stylesheet) GetLanguageLevel() LanguageLevel { return sh.cfg.Level }
func (sh *Stylesheet) GetURL() string                  { return sh.cfg.URL }
func (sh *Stylesheet) GetTitle() string                { return sh.cfg.Title }
func (sh *Stylesheet) QuirksAllowed() bool              { return sh.cfg.QuirksAllowed }
func (sh *Stylesheet) UsedQuirks() bool                 { return sh.quirksUsed }
func (sh *Stylesheet) GetDisabled() bool                { return sh.disabled }
func (sh *Stylesheet) SetDisabled(v bool)               { sh.disabled = v }
func (sh *Stylesheet) Size() int                        { return len(sh.rules) }
func (sh *Stylesheet) Rules() []*Rule                   { return sh.rules }
func (sh *Stylesheet) InlineStyle() Style               { return sh.inline }

// RemoveRule detaches every Rule belonging to r's rule group (the
// comma-separated selectors that share r's Index and Parent) from both
// the sheet's rule list and its SelectorHash.
func (sh *Stylesheet) RemoveRule(r *Rule) error {
	if r.sheet != sh {
		return ErrBadParm
	}
	group := sh.ruleGroup(r)
	sh.hash.removeRules(group)
	for _, g := range group {
		sh.detach(g)
	}
	return nil
}

func (sh *Stylesheet) ruleGroup(r *Rule) []*Rule {
	var group []*Rule
	for _, x := range sh.rules {
		if x.Index == r.Index && x.Parent == r.Parent {
			group = append(group, x)
		}
	}
	return group
}

func (sh *Stylesheet) detach(r *Rule) {
	if r.prev != nil {
		r.prev.next = r.next
	} else if r.Parent != nil {
		r.Parent.childHead = r.next
	} else {
		sh.head = r.next
	}
	if r.next != nil {
		r.next.prev = r.prev
	} else if r.Parent != nil {
		r.Parent.childTail = r.prev
	} else {
		sh.tail = r.prev
	}
	r.prev, r.next = nil, nil
	r.sheet = nil
	r.Parent = nil
	for i, x := range sh.rules {
		if x == r {
			sh.rules = append(sh.rules[:i], sh.rules[i+1:]...)
			break
		}
	}
}

// Destroy releases every interned string this stylesheet owns. A
// style-rule group's comma-siblings share one Style slice (built once by
// insertStyleRule), so its payload strings are only unreffed through the
// Position-0 rule to avoid double-releasing a handle that was only
// interned once.
func (sh *Stylesheet) Destroy() {
	for _, r := range sh.rules {
		sh.unrefRule(r)
	}
	sh.rules = nil
	sh.head, sh.tail = nil, nil
	sh.hash = newSelectorHash()
}

func (sh *Stylesheet) unrefRule(r *Rule) {
	for sel := r.Selector; sel != nil; sel = sel.Prev {
		for _, d := range sel.Details {
			if !d.Name.IsZero() {
				sh.interner.Unref(d.Name)
			}
			if !d.Arg.IsZero() {
				sh.interner.Unref(d.Arg)
			}
		}
	}
	if r.Position == 0 {
		sh.unrefStyle(r.Style)
	}
	if !r.URL.IsZero() {
		sh.interner.Unref(r.URL)
	}
	if !r.Encoding.IsZero() {
		sh.interner.Unref(r.Encoding)
	}
}

func (sh *Stylesheet) unrefStyle(s Style) {
	for _, d := range s {
		if !d.Payload.Str.IsZero() {
			sh.interner.Unref(d.Payload.Str)
		}
		for _, item := range d.Payload.List {
			if !item.Name.IsZero() {
				sh.interner.Unref(item.Name)
			}
			if !item.Arg.IsZero() {
				sh.interner.Unref(item.Arg)
			}
		}
	}
}

// ParseInlineStyle parses a style="" attribute's value directly into a
// Style, without any stylesheet/rule machinery ("inline style
// mode is promoted to a first-class entry point").
func ParseInlineStyle(interner *intern.Table, data []byte, quirks bool, resolve func(rel string) string) Style {
	p := NewParser(NewScanner(bytes.NewReader(data), nil))
	dc := &declContext{interner: interner, quirks: quirks, resolve: resolve}
	var style Style
	var decl Decl
	for p.ParseDecl(&decl) {
		info := lookupProperty(decl.Property)
		if info == nil {
			continue
		}
		decls, ok := info.Parse(dc, decl.Values)
		if !ok {
			continue
		}
		if decl.BangImportant {
			MakeImportant(decls)
		}
		style = append(style, decls...)
	}
	return style
}
