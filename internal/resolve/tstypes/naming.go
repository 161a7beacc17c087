package tstypes

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NoLower keeps embedded camelCase intact: "getPet" -> "GetPet".
var titler = cases.Title(language.English, cases.NoLower)

// pascal converts an identifier-ish string to PascalCase, splitting on any
// non-alphanumeric rune.
func pascal(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(titler.String(p))
	}
	return b.String()
}

// declName derives the registry name for a discovered declaration from the
// (key, parentKey) naming hints. The parent is dropped when it is empty or
// repeats the key, so a body parameter named "pet" yields "Pet" rather
// than "PetPet".
func declName(key, parentKey string) string {
	if parentKey == "" || parentKey == key {
		return pascal(key)
	}
	return pascal(parentKey) + pascal(key)
}
