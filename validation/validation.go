package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Violations maps a form field to a violation code. Codes are translated at
// render time; a field with several unmet rules carries them comma-joined.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Codes splits the field's violation into individual codes.
func (v Violations) Codes(field string) []string {
	s, ok := v[field]
	if !ok || s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// Violation codes.
const (
	CodeRequired          = "required"
	CodeTooShort          = "too_short"
	CodeInvalidPhone      = "invalid_phone"
	CodeInvalidEmail      = "invalid_email"
	CodeMismatch          = "mismatch"
	CodePasswordMinLength = "password_min_length"
	CodePasswordUppercase = "password_uppercase"
	CodePasswordLowercase = "password_lowercase"
	CodePasswordDigit     = "password_digit"
	CodePasswordSymbol    = "password_symbol"
)

var (
	// Norwegian local numbers: 8 digits, optionally prefixed with +47.
	localPhoneRe = regexp.MustCompile(`^(\+47\s?)?\d{8}$`)
	intlPhoneRe  = regexp.MustCompile(`^\+\d{7,15}$`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	upperRe  = regexp.MustCompile(`[A-Z]`)
	lowerRe  = regexp.MustCompile(`[a-z]`)
	digitRe  = regexp.MustCompile(`\d`)
	symbolRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

const PasswordMinLength = 8

func IsPhone(s string) bool { return localPhoneRe.MatchString(s) || intlPhoneRe.MatchString(s) }

func IsEmail(s string) bool { return emailRe.MatchString(s) }

// PasswordProblems returns every unmet password rule, in a fixed order.
func PasswordProblems(pw string) []string {
	var out []string
	if utf8.RuneCountInString(pw) < PasswordMinLength {
		out = append(out, CodePasswordMinLength)
	}
	if !upperRe.MatchString(pw) {
		out = append(out, CodePasswordUppercase)
	}
	if !lowerRe.MatchString(pw) {
		out = append(out, CodePasswordLowercase)
	}
	if !digitRe.MatchString(pw) {
		out = append(out, CodePasswordDigit)
	}
	if !symbolRe.MatchString(pw) {
		out = append(out, CodePasswordSymbol)
	}
	return out
}
