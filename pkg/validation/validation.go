// Package validation checks a contact form snapshot against the field rules.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/payback159/contactform/pkg/models"
)

// nonSpace matches one character outside the browser's whitespace set:
// ASCII whitespace including \v, every Unicode separator (Zs, Zl, Zp) and
// the byte order mark. U+0085 is not whitespace to the browser.
const nonSpace = `[^\t\n\v\f\r \p{Z}\x{FEFF}]`

// emailPattern is a minimal shape check, not an RFC 5322 grammar.
var emailPattern = regexp.MustCompile(`^` + nonSpace + `+@` + nonSpace + `+\.` + nonSpace + `+$`)

// Validate evaluates every field rule and collects all failures. No rule
// short-circuits another.
func Validate(state models.FormState) models.ValidationResult {
	result := models.ValidationResult{}

	requireText(result, models.FieldFirstName, state.FirstName)
	requireText(result, models.FieldLastName, state.LastName)

	email := Trim(state.Email)
	switch {
	case email == "":
		result[models.FieldEmail] = models.ErrRequired
	case !ValidEmail(email):
		result[models.FieldEmail] = models.ErrInvalidFormat
	}

	if state.Query == "" {
		result[models.FieldQuery] = models.ErrRequired
	}

	requireText(result, models.FieldMessage, state.Message)

	if !state.Consent {
		result[models.FieldConsent] = models.ErrRequired
	}

	return result
}

// ValidEmail reports whether s has the shape local@domain.tld
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// Trim strips leading and trailing whitespace using the same whitespace set
// as the email pattern.
func Trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\uFEFF':
		return true
	}
	return unicode.Is(unicode.Z, r)
}

func requireText(result models.ValidationResult, field, value string) {
	if Trim(value) == "" {
		result[field] = models.ErrRequired
	}
}
