// Package postcode parses allow-lists of postal codes and matches destinations against them.
package postcode

import (
	"regexp"
	"strings"
	"unicode"
)

// Wildcard marks a prefix pattern. Every occurrence is stripped from the token.
const Wildcard = "*"

// Kind classifies an allow pattern.
type Kind int

const (
	KindExact Kind = iota
	KindPrefixWildcard
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindPrefixWildcard:
		return "prefix"
	default:
		return "unknown"
	}
}

// AllowPattern is a single configured rule.
// Value is never empty for KindExact. An empty Value on a prefix pattern matches everything.
type AllowPattern struct {
	Raw   string
	Kind  Kind
	Value string
}

// Matches reports whether an already normalized destination satisfies the pattern.
func (p AllowPattern) Matches(dest string) bool {
	if p.Kind == KindPrefixWildcard {
		return strings.HasPrefix(dest, p.Value)
	}
	return dest == p.Value
}

// PatternSet is an ordered list of allow patterns in configuration order.
type PatternSet struct {
	patterns []AllowPattern
}

// Line breaks and commas separate tokens. Spaces and tabs inside a token are
// formatting ("110 00") and are stripped rather than treated as separators.
var separators = regexp.MustCompile(`[,\n\r\v\f]+`)

// Parse splits raw configuration text into allow patterns.
// It never fails: any token is accepted as a literal.
func Parse(raw string) PatternSet {
	var out []AllowPattern
	for _, tok := range separators.Split(raw, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		value := stripSpace(tok)
		kind := KindExact
		if strings.Contains(value, Wildcard) {
			kind = KindPrefixWildcard
			value = strings.ReplaceAll(value, Wildcard, "")
		}
		out = append(out, AllowPattern{Raw: tok, Kind: kind, Value: value})
	}
	return PatternSet{patterns: out}
}

// Normalize trims a postal code and removes any internal whitespace ("110 00" -> "11000").
func Normalize(code string) string {
	return stripSpace(strings.TrimSpace(code))
}

func stripSpace(s string) string {
	if strings.IndexFunc(s, unicode.IsSpace) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// Len returns the number of patterns.
func (s PatternSet) Len() int { return len(s.patterns) }

// Empty reports whether the set has no patterns. An empty set matches nothing.
func (s PatternSet) Empty() bool { return len(s.patterns) == 0 }

// Patterns returns a copy of the patterns in configuration order.
func (s PatternSet) Patterns() []AllowPattern {
	out := make([]AllowPattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Match normalizes dest and returns the first pattern it satisfies.
func (s PatternSet) Match(dest string) (AllowPattern, bool) {
	dest = Normalize(dest)
	for _, p := range s.patterns {
		if p.Matches(dest) {
			return p, true
		}
	}
	return AllowPattern{}, false
}

// Matches is Match without the credited pattern.
func (s PatternSet) Matches(dest string) bool {
	_, ok := s.Match(dest)
	return ok
}
