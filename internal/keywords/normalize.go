package keywords

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Normalize lower-cases text for case-insensitive matching.
// It uses the root locale so the result does not depend on the user's
// language settings. Whitespace and Unicode composition are left untouched.
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	// A Caser holds state and must not be shared between goroutines.
	return cases.Lower(language.Und).String(text)
}
