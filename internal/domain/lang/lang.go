// Package lang resolves the storefront display language.
package lang

import (
	"golang.org/x/text/language"
)

// Lang is a supported storefront language.
type Lang string

// Supported languages. The first entry is the default.
const (
	English Lang = "en"
	Arabic  Lang = "ar"
)

var (
	supported = []Lang{English, Arabic}
	matcher   = language.NewMatcher([]language.Tag{language.English, language.Arabic})
)

// Default returns the language used when nothing matches.
func Default() Lang { return English }

// Supported returns all supported languages.
func Supported() []Lang {
	out := make([]Lang, len(supported))
	copy(out, supported)
	return out
}

// Parse validates an exact language code.
func Parse(s string) (Lang, bool) {
	for _, l := range supported {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// Match picks the best supported language for the given preferences, which may be
// plain codes ("ar"), regional tags ("ar-EG") or Accept-Language header values.
// Empty or unrecognised preferences fall back to Default.
func Match(prefs ...string) Lang {
	nonEmpty := prefs[:0:0]
	for _, p := range prefs {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return Default()
	}
	_, idx := language.MatchStrings(matcher, nonEmpty...)
	if idx < 0 || idx >= len(supported) {
		return Default()
	}
	return supported[idx]
}

// IsValid reports whether l is a supported language.
func (l Lang) IsValid() bool {
	_, ok := Parse(string(l))
	return ok
}
