// Package naming turns user supplied identifiers into the case and number
// variants used for generated file names, type names, and table names.
package naming

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jinzhu/inflection"
)

// Casing selects how words are joined.
type Casing int

const (
	Pascal Casing = iota // UserProfile
	Camel                // userProfile
	Snake                // user_profile
)

func (c Casing) String() string {
	switch c {
	case Pascal:
		return "pascalcase"
	case Camel:
		return "camelcase"
	case Snake:
		return "snakecase"
	default:
		return fmt.Sprintf("casing(%d)", int(c))
	}
}

// Plurality selects the grammatical number of the last word.
type Plurality int

const (
	Singular Plurality = iota
	Plural
)

func (p Plurality) String() string {
	if p == Plural {
		return "plural"
	}
	return "singular"
}

// Pattern combines a casing and a plurality.
type Pattern struct {
	Casing    Casing
	Plurality Plurality
}

func (p Pattern) String() string {
	return p.Casing.String() + "+" + p.Plurality.String()
}

// InvalidIdentifierError is returned for empty or whitespace-only identifiers.
type InvalidIdentifierError struct {
	Identifier string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: name must contain at least one letter or digit", e.Identifier)
}

// Transform applies p to identifier. Reapplying the same pattern to the
// result returns the result unchanged.
func Transform(identifier string, p Pattern) (string, error) {
	words := splitWords(identifier)
	if len(words) == 0 {
		return "", &InvalidIdentifierError{Identifier: identifier}
	}

	for i, word := range words {
		words[i] = strings.ToLower(word)
	}

	// Only the last word carries number: user_profiles -> user_profile.
	// Plurals are built from the singular so people stays people.
	last := len(words) - 1
	switch p.Plurality {
	case Plural:
		words[last] = inflection.Plural(inflection.Singular(words[last]))
	default:
		words[last] = inflection.Singular(words[last])
	}

	switch p.Casing {
	case Snake:
		return strings.Join(words, "_"), nil
	case Camel:
		for i := 1; i < len(words); i++ {
			words[i] = capitalize(words[i])
		}
		return strings.Join(words, ""), nil
	default:
		for i, word := range words {
			words[i] = capitalize(word)
		}
		return strings.Join(words, ""), nil
	}
}

// Variants holds every form of a name that the stubs interpolate.
type Variants struct {
	Name            string // Post
	NamePlural      string // Posts
	NameCamel       string // post
	NameCamelPlural string // posts
	NameSnake       string // post
	NameSnakePlural string // posts
}

// NewVariants computes all variants of identifier.
func NewVariants(identifier string) (*Variants, error) {
	v := &Variants{}
	targets := []struct {
		dst     *string
		pattern Pattern
	}{
		{&v.Name, Pattern{Pascal, Singular}},
		{&v.NamePlural, Pattern{Pascal, Plural}},
		{&v.NameCamel, Pattern{Camel, Singular}},
		{&v.NameCamelPlural, Pattern{Camel, Plural}},
		{&v.NameSnake, Pattern{Snake, Singular}},
		{&v.NameSnakePlural, Pattern{Snake, Plural}},
	}

	for _, t := range targets {
		out, err := Transform(identifier, t.pattern)
		if err != nil {
			return nil, err
		}
		*t.dst = out
	}
	return v, nil
}

// Map returns the variants keyed the way templates reference them.
func (v *Variants) Map() map[string]string {
	return map[string]string{
		"name":            v.Name,
		"namePlural":      v.NamePlural,
		"nameCamel":       v.NameCamel,
		"nameCamelPlural": v.NameCamelPlural,
		"nameSnake":       v.NameSnake,
		"nameSnakePlural": v.NameSnakePlural,
	}
}

// capitalize returns the string with the first letter uppercased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// splitWords splits a string into words (handles camelCase, PascalCase, snake_case, kebab-case).
func splitWords(s string) []string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, ".", " ")

	// Insert space before uppercase letters in camelCase/PascalCase
	var result strings.Builder
	var prev rune
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) && !unicode.IsSpace(prev) && !unicode.IsUpper(prev) {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
		prev = r
	}

	return strings.Fields(result.String())
}
