package css

import "spilled.ink/html/css/intern"

// RuleType tags the variant payload a Rule carries.
type RuleType uint8

const (
	RuleUnknown RuleType = iota
	RuleStyle
	RuleCharset
	RuleImport
	RuleMedia
	RuleFontFace
	RulePage
)

// MediaMask is a bitfield of CSS 2.1 media types.
type MediaMask uint16

const (
	MediaAural MediaMask = 1 << iota
	MediaBraille
	MediaEmbossed
	MediaHandheld
	MediaPrint
	MediaProjection
	MediaScreen
	MediaSpeech
	MediaTTY
	MediaTV
	mediaCount
)

// MediaAll matches every recognised media type.
const MediaAll MediaMask = mediaCount - 1

func mediaFromIdent(b []byte) (MediaMask, bool) {
	switch {
	case asciiEqualFold(b, "aural"):
		return MediaAural, true
	case asciiEqualFold(b, "braille"):
		return MediaBraille, true
	case asciiEqualFold(b, "embossed"):
		return MediaEmbossed, true
	case asciiEqualFold(b, "handheld"):
		return MediaHandheld, true
	case asciiEqualFold(b, "print"):
		return MediaPrint, true
	case asciiEqualFold(b, "projection"):
		return MediaProjection, true
	case asciiEqualFold(b, "screen"):
		return MediaScreen, true
	case asciiEqualFold(b, "speech"):
		return MediaSpeech, true
	case asciiEqualFold(b, "tty"):
		return MediaTTY, true
	case asciiEqualFold(b, "tv"):
		return MediaTV, true
	case asciiEqualFold(b, "all"):
		return MediaAll, true
	}
	return 0, false
}

// Origin is the cascade origin of a stylesheet.
type Origin uint8

const (
	OriginUA Origin = iota
	OriginUser
	OriginAuthor
)

// Rule is one rule within a Stylesheet. A comma-separated style-rule
// prelude ("a, b { ... }") is expanded at parse time into one Rule per
// selector, all sharing the same Style block and Index (Position
// disambiguates between the comma-siblings).
type Rule struct {
	Type        RuleType
	Index       int // monotonic insertion order within the owning sheet
	Position    int // position of Selector among its rule's comma-siblings
	Selector    *Selector
	Specificity Specificity
	Style       Style
	Media       MediaMask

	// PagePseudo is the interned page pseudo-class name ("first", "left",
	// "right") from an "@page :first { ... }" prelude, for RulePage rules.
	// It is the zero intern.Handle when the @page prelude was empty.
	PagePseudo intern.Handle

	URL      intern.Handle // @import
	Encoding intern.Handle // @charset

	// Parent is the containing @media rule, or nil when the rule is owned
	// directly by the sheet.
	Parent *Rule

	prev, next           *Rule
	childHead, childTail *Rule // RuleMedia's nested rule list
	sheet                *Stylesheet
	importedSheet        *Stylesheet // RuleImport, once resolved via RegisterImport
}

// Next and Prev walk the doubly-linked sibling list a rule belongs to
// (the sheet's top-level list, or its containing @media rule's child
// list).
func (r *Rule) Next() *Rule { return r.next }
func (r *Rule) Prev() *Rule { return r.prev }

// FirstChild returns the first rule nested inside a RuleMedia rule, or nil.
func (r *Rule) FirstChild() *Rule { return r.childHead }

// ImportedSheet returns the child stylesheet registered for a RuleImport
// rule via Stylesheet.RegisterImport, or nil if not yet resolved.
func (r *Rule) ImportedSheet() *Stylesheet { return r.importedSheet }

// SelectorHash indexes a sheet's style rules by the CSS 2.1 §4.7 primary
// key (rightmost ID, else class, else element name; otherwise the
// universal bucket), with each bucket kept in ascending
// (specificity, rule-index, position) order.
type SelectorHash struct {
	byID      map[intern.Handle][]*Rule
	byClass   map[intern.Handle][]*Rule
	byElement map[intern.Handle][]*Rule
	universal []*Rule
}

func newSelectorHash() *SelectorHash {
	return &SelectorHash{
		byID:      make(map[intern.Handle][]*Rule),
		byClass:   make(map[intern.Handle][]*Rule),
		byElement: make(map[intern.Handle][]*Rule),
	}
}

func bucketLess(a, b *Rule) bool {
	if a.Specificity != b.Specificity {
		return a.Specificity < b.Specificity
	}
	if a.Index != b.Index {
		return a.Index < b.Index
	}
	return a.Position < b.Position
}

func insertSorted(bucket []*Rule, r *Rule) []*Rule {
	i := 0
	for i < len(bucket) && bucketLess(bucket[i], r) {
		i++
	}
	bucket = append(bucket, nil)
	copy(bucket[i+1:], bucket[i:])
	bucket[i] = r
	return bucket
}

func removeFromBucket(bucket []*Rule, r *Rule) []*Rule {
	for i, e := range bucket {
		if e == r {
			return append(bucket[:i], bucket[i+1:]...)
		}
	}
	return bucket
}

// Insert adds r's selector to the hash, keeping bucket order.
func (h *SelectorHash) Insert(r *Rule) {
	det, ok := r.Selector.Key()
	if !ok {
		h.universal = insertSorted(h.universal, r)
		return
	}
	switch det.Kind {
	case SimID:
		h.byID[det.Name] = insertSorted(h.byID[det.Name], r)
	case SimClass:
		h.byClass[det.Name] = insertSorted(h.byClass[det.Name], r)
	default:
		h.byElement[det.Name] = insertSorted(h.byElement[det.Name], r)
	}
}

// Remove removes r's selector from the hash.
func (h *SelectorHash) Remove(r *Rule) {
	det, ok := r.Selector.Key()
	if !ok {
		h.universal = removeFromBucket(h.universal, r)
		return
	}
	switch det.Kind {
	case SimID:
		h.byID[det.Name] = removeFromBucket(h.byID[det.Name], r)
	case SimClass:
		h.byClass[det.Name] = removeFromBucket(h.byClass[det.Name], r)
	default:
		h.byElement[det.Name] = removeFromBucket(h.byElement[det.Name], r)
	}
}

// IterateID, IterateClass, and IterateElement return the bucket for a
// given key (nil if empty); IterateUniversal returns the catch-all
// bucket. All are already in cascade-comparison order.
func (h *SelectorHash) IterateID(name intern.Handle) []*Rule      { return h.byID[name] }
func (h *SelectorHash) IterateClass(name intern.Handle) []*Rule   { return h.byClass[name] }
func (h *SelectorHash) IterateElement(name intern.Handle) []*Rule { return h.byElement[name] }
func (h *SelectorHash) IterateUniversal() []*Rule                 { return h.universal }

// removeRules removes every selector-keyed bucket entry for a style rule
// (a rule built from one comma-separated selector expands to one *Rule
// per selector sharing an Index — see insertStyleRule — so removing "the
// rule" from a stylesheet's perspective means removing all of them).
func (h *SelectorHash) removeRules(rules []*Rule) {
	for _, r := range rules {
		h.Remove(r)
	}
}
