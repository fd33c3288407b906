package render

import (
	"strings"
	"unicode"
)

// ToUpperCamel derives an exported identifier from a wire property name:
// leading sigil characters are stripped, then the first letter of each
// underscore-delimited segment is capitalized and the underscores removed.
//
//	"include_attributes" -> "IncludeAttributes"
//	"$ref_count"         -> "RefCount"
func ToUpperCamel(name string) string {
	name = strings.TrimLeft(name, "$")
	var b strings.Builder
	b.Grow(len(name))
	upper := true
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DecapitalizeLeadingRun lowercases each consecutive leading character while
// it is uppercase, stopping permanently the first time a processed character
// is not uppercase. The stopping character itself is still lowercased; every
// character after it is left unchanged.
//
// This is deliberately not an acronym-aware camelCase transform: generated
// identifiers downstream depend on this exact rule, which can leave
// mid-string casing unchanged ("FooBar" -> "fooBar") or lowercase a whole
// run ("HTTPStatus" -> "httpstatus"). Do not "fix" it.
func DecapitalizeLeadingRun(name string) string {
	runes := []rune(name)
	var b strings.Builder
	b.Grow(len(name))
	i := 0
	for ; i < len(runes); i++ {
		b.WriteRune(unicode.ToLower(runes[i]))
		if !unicode.IsUpper(runes[i]) {
			i++
			break
		}
	}
	for ; i < len(runes); i++ {
		b.WriteRune(runes[i])
	}
	return b.String()
}

// Capitalize uppercases the first rune only, leaving the rest untouched.
// Enum member names derive from const literals this way.
func Capitalize(s string) string {
	for i, r := range s {
		return string(unicode.ToUpper(r)) + s[i+len(string(r)):]
	}
	return s
}
