package css

import (
	"bytes"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// DetectCharset determines which character encoding a stylesheet's raw
// bytes are in, per CSS Syntax Module Level 3 §3.2: a
// caller-supplied charset (httpCharset, e.g. from a Content-Type header or
// an enclosing document's declared encoding) wins outright; otherwise a
// byte-order mark; otherwise a leading ASCII `@charset "name";` rule;
// otherwise UTF-8.
func DetectCharset(data []byte, httpCharset string) string {
	if httpCharset != "" {
		return httpCharset
	}
	if name, ok := bomCharset(data); ok {
		return name
	}
	if name, ok := atCharsetRule(data); ok {
		return name
	}
	return "utf-8"
}

func bomCharset(data []byte) (string, bool) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8", true
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return "utf-16be", true
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return "utf-16le", true
	}
	return "", false
}

// atCharsetRule extracts the encoding name from a leading
// `@charset "name";` rule, matched byte-for-byte against the ASCII literal
// per CSS Syntax 3.2: this has to happen before any tokenizing, since the
// detected charset is what tells us how to decode the bytes the tokenizer
// would otherwise read.
func atCharsetRule(data []byte) (string, bool) {
	const prefix = `@charset "`
	if !bytes.HasPrefix(data, []byte(prefix)) {
		return "", false
	}
	rest := data[len(prefix):]
	end := bytes.IndexByte(rest, '"')
	if end < 0 || end+1 >= len(rest) || rest[end+1] != ';' {
		return "", false
	}
	name := rest[:end]
	if bytes.IndexByte(name, '"') >= 0 {
		return "", false
	}
	return string(name), true
}

// resolveEncoding looks up a named character encoding the way a browser
// does: the WHATWG label table first (golang.org/x/text/encoding/
// htmlindex, which knows the aliases real style sheets use — "iso-8859-1",
// "windows-1252", "utf-16"), falling back to the plain IANA registry for
// labels htmlindex doesn't carry.
func resolveEncoding(name string) (encoding.Encoding, bool) {
	if enc, err := htmlindex.Get(name); err == nil {
		return enc, true
	}
	if enc, err := ianaindex.IANA.Get(name); err == nil && enc != nil {
		return enc, true
	}
	return nil, false
}

// decodeCharset transcodes data to UTF-8 using the detected or
// caller-dictated charset. An unrecognised charset name
// falls back to treating the bytes as UTF-8 already, logging the fallback
// through logf rather than failing the parse outright.
func decodeCharset(data []byte, httpCharset string, logf func(format string, v ...interface{})) []byte {
	name := DetectCharset(data, httpCharset)
	if asciiEqualFold([]byte(name), "utf-8") || asciiEqualFold([]byte(name), "utf8") {
		return data
	}
	enc, ok := resolveEncoding(name)
	if !ok {
		logf("css: unrecognised charset %q, treating stylesheet as UTF-8", name)
		return data
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		logf("css: charset %q failed to decode (%v), treating stylesheet as UTF-8", name, err)
		return data
	}
	return out
}

// NewStylesheetScanner decodes data per decodeCharset and returns a
// Scanner ready to tokenize the result.
func NewStylesheetScanner(data []byte, httpCharset string, logf func(format string, v ...interface{}), errHandler func(line, col, n int, msg string)) *Scanner {
	return NewScanner(bytes.NewReader(decodeCharset(data, httpCharset, logf)), errHandler)
}
