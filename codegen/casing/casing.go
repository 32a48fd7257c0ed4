// Package casing splits identifiers into words and re-joins them under the
// serde renaming conventions (rename_all) and the global field naming policy.
package casing

import (
	"strings"
	"unicode"

	"github.com/misha-mad/vercel-rpc-sub000/errors"
)

// Rule is a serde rename_all convention. The zero value means "no rule".
type Rule int

const (
	RuleNone Rule = iota
	Lower
	Upper
	Pascal
	Camel
	Snake
	ScreamingSnake
	Kebab
	ScreamingKebab
)

var ruleNames = map[Rule]string{
	Lower:          "lowercase",
	Upper:          "UPPERCASE",
	Pascal:         "PascalCase",
	Camel:          "camelCase",
	Snake:          "snake_case",
	ScreamingSnake: "SCREAMING_SNAKE_CASE",
	Kebab:          "kebab-case",
	ScreamingKebab: "SCREAMING-KEBAB-CASE",
}

// RuleNames lists the accepted rename_all values in a stable order.
func RuleNames() []string {
	return []string{
		"lowercase", "UPPERCASE", "PascalCase", "camelCase",
		"snake_case", "SCREAMING_SNAKE_CASE", "kebab-case", "SCREAMING-KEBAB-CASE",
	}
}

// ParseRule maps a serde rename_all string to a Rule.
func ParseRule(s string) (Rule, error) {
	for rule, name := range ruleNames {
		if name == s {
			return rule, nil
		}
	}
	return RuleNone, errors.Wrapf(errors.ErrUnknownRenameRule, "%q", s)
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return "none"
}

// MarshalText renders the serde spelling so manifests dump readably.
func (r Rule) MarshalText() ([]byte, error) {
	if r == RuleNone {
		return []byte{}, nil
	}
	return []byte(r.String()), nil
}

// UnmarshalText accepts the serde spelling; empty means RuleNone.
func (r *Rule) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*r = RuleNone
		return nil
	}
	parsed, err := ParseRule(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// SplitWords splits an identifier into words.
//
// Explicit separators ('_', '-', whitespace) are applied first. Inside each
// segment an uppercase letter starts a new word when the previous rune is
// lowercase or a digit ("firstName" -> first, Name) or when it ends a run of
// capitals followed by a lowercase letter ("HTTPSPort" -> HTTPS, Port).
func SplitWords(s string) []string {
	segments := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})

	var words []string
	for _, seg := range segments {
		runes := []rune(seg)
		start := 0
		for i := 1; i < len(runes); i++ {
			if !unicode.IsUpper(runes[i]) {
				continue
			}
			prev := runes[i-1]
			prevLowerOrDigit := unicode.IsLower(prev) || unicode.IsDigit(prev)
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLowerOrDigit || (unicode.IsUpper(prev) && nextLower) {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}
		words = append(words, string(runes[start:]))
	}
	return words
}

// Apply re-joins the words of s under rule. RuleNone returns s unchanged.
func Apply(rule Rule, s string) string {
	if rule == RuleNone || s == "" {
		return s
	}

	words := SplitWords(s)
	switch rule {
	case Lower:
		return join(words, "", strings.ToLower)
	case Upper:
		return join(words, "", strings.ToUpper)
	case Pascal:
		return join(words, "", capitalize)
	case Camel:
		if len(words) == 0 {
			return ""
		}
		return strings.ToLower(words[0]) + join(words[1:], "", capitalize)
	case Snake:
		return join(words, "_", strings.ToLower)
	case ScreamingSnake:
		return join(words, "_", strings.ToUpper)
	case Kebab:
		return join(words, "-", strings.ToLower)
	case ScreamingKebab:
		return join(words, "-", strings.ToUpper)
	}
	return s
}

func join(words []string, sep string, transform func(string) string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = transform(w)
	}
	return strings.Join(out, sep)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(w string) string {
	runes := []rune(strings.ToLower(w))
	if len(runes) == 0 {
		return ""
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ToCamelCase converts any identifier to camelCase ("uptime_secs" -> "uptimeSecs").
func ToCamelCase(s string) string { return Apply(Camel, s) }

// ToPascalCase converts any identifier to PascalCase.
func ToPascalCase(s string) string { return Apply(Pascal, s) }

// ToSnakeCase converts any identifier to snake_case ("HTTPSPort" -> "https_port").
func ToSnakeCase(s string) string { return Apply(Snake, s) }
