// Package nit validates the tax identifier collected before checkout.
package nit

import (
	"regexp"
	"strings"

	pkgerrors "github.com/tiendasport/storefront-api/pkg/errors"
)

// ConsumidorFinal is the exempt marker meaning no invoice was requested.
const ConsumidorFinal = "CF"

// Format: one or more digits, optionally followed by a dash and a check
// character that is a digit or K. Mirrors the regional check-digit convention.
var nitPattern = regexp.MustCompile(`^\d+(-[\dkK])?$`)

// Validate reports whether the value is an acceptable tax identifier.
// Returns nil for the CF marker (case-insensitive) or a well-formed NIT.
func Validate(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "nit requerido (o CF)")
	}
	if strings.EqualFold(trimmed, ConsumidorFinal) {
		return nil
	}
	if !nitPattern.MatchString(trimmed) {
		return pkgerrors.New(pkgerrors.CodeValidation, "nit inválido").WithDetails(map[string]any{
			"examples": []string{"CF", "1234567", "1234567-8", "1234567-K"},
		})
	}
	return nil
}

// IsValid is the boolean form of Validate.
func IsValid(value string) bool {
	return Validate(value) == nil
}

// Normalize trims the value and upper-cases the CF marker and check letter so
// the assembled payload always carries a canonical form.
func Normalize(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.EqualFold(trimmed, ConsumidorFinal) {
		return ConsumidorFinal
	}
	return strings.ToUpper(trimmed)
}
