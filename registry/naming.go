package registry

import (
	"strings"
	"unicode"
)

// Identifier derivation is a pure function of the schema name (plus the
// override table, applied by the Registry before calling into here), so two
// independently built binaries sharing the schema file agree on every
// generated name.

// splitWords breaks a schema name into lowercase words, recognizing
// camelCase, PascalCase, snake_case and UPPER_CASE inputs.
func splitWords(name string) []string {
	var words []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words = append(words, strings.ToLower(current.String()))
			current.Reset()
		}
	}
	prevUpper := false
	for i, r := range name {
		switch {
		case r == '_' || r == '-':
			flush()
		case unicode.IsUpper(r):
			// A lower->upper boundary starts a word; an upper run stays one
			// word (HTTPServer -> http, server).
			if !prevUpper {
				flush()
			} else if next := i + 1; next < len(name) && unicode.IsLower(rune(name[next])) {
				flush()
			}
			current.WriteRune(r)
			prevUpper = true
		default:
			current.WriteRune(r)
			prevUpper = false
		}
	}
	flush()
	if len(words) == 0 {
		words = []string{""}
	}
	return words
}

// Exported derives the exported (PascalCase) Go identifier for a schema name.
func Exported(name string) string {
	var b strings.Builder
	for _, w := range splitWords(name) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// Unexported derives the unexported (camelCase) Go identifier for a schema
// name, escaping Go reserved words.
func Unexported(name string) string {
	words := splitWords(name)
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(capitalize(w))
	}
	return escapeReserved(b.String())
}

func capitalize(w string) string {
	if w == "" {
		return ""
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

// reservedWords lists every identifier an unexported generated name must not
// collide with: the Go keywords and the predeclared identifiers.
var reservedWords = map[string]bool{
	// keywords
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	// predeclared types
	"any": true, "bool": true, "byte": true, "comparable": true, "complex64": true,
	"complex128": true, "error": true, "float32": true, "float64": true, "int": true,
	"int8": true, "int16": true, "int32": true, "int64": true, "rune": true,
	"string": true, "uint": true, "uint8": true, "uint16": true, "uint32": true,
	"uint64": true, "uintptr": true,
	// predeclared constants and zero value
	"true": true, "false": true, "iota": true, "nil": true,
	// predeclared functions
	"append": true, "cap": true, "clear": true, "close": true, "complex": true,
	"copy": true, "delete": true, "imag": true, "len": true, "make": true,
	"max": true, "min": true, "new": true, "panic": true, "print": true,
	"println": true, "real": true, "recover": true,
}

// escapeReserved prefixes a reserved identifier with an underscore. A prefix
// keeps the escape deterministic and reversible by eye; a collided name is
// never dropped.
func escapeReserved(ident string) string {
	if reservedWords[ident] {
		return "_" + ident
	}
	return ident
}
