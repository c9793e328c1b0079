package validator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"mercator-hq/provconf/pkg/fields"
)

// MinPasswordStrength is the lowest accepted PasswordStrength score.
const MinPasswordStrength = 3

// PasswordStrength scores s from 0 to 5, one point each for: at least 8
// characters, a lowercase letter, an uppercase letter, a digit, a symbol.
func PasswordStrength(s string) int {
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			symbol = true
		}
	}

	score := 0
	for _, ok := range []bool{utf8.RuneCountInString(s) >= 8, lower, upper, digit, symbol} {
		if ok {
			score++
		}
	}
	return score
}

// LooksLikePassword reports whether the field's id or label suggests a
// password: it contains "password" or is exactly "secret" or "pass",
// ignoring case.
func LooksLikePassword(decl fields.FieldDeclaration) bool {
	if decl == nil {
		return false
	}
	base := decl.Base()
	for _, name := range []string{base.ID, base.Label} {
		n := strings.ToLower(strings.TrimSpace(name))
		if strings.Contains(n, "password") || n == "secret" || n == "pass" {
			return true
		}
	}
	return false
}
