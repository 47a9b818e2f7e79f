// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// DefaultCountryCode is prefixed to local numbers written with a leading 0.
const DefaultCountryCode = "254"

var (
	phonePattern      = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	localPhonePattern = regexp.MustCompile(`^0[1-9]\d{5,13}$`)
)

// CleanPhone strips the separators people type into phone fields
func CleanPhone(phone string) string {
	r := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
	return r.Replace(strings.TrimSpace(phone))
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Allows + prefix followed by 7-15 digits
	return phonePattern.MatchString(CleanPhone(phone))
}

// NormalizePhone rewrites a local number ("0712 345 678") to international
// form with countryCode ("+254712345678"). Other input is only cleaned.
func NormalizePhone(phone, countryCode string) string {
	p := CleanPhone(phone)
	if localPhonePattern.MatchString(p) {
		return "+" + countryCode + p[1:]
	}
	return p
}

// ValidateLocalOrInternationalPhone accepts what customers type into forms:
// an international number or a local one with a leading 0.
func ValidateLocalOrInternationalPhone(phone string) bool {
	return ValidatePhone(NormalizePhone(phone, DefaultCountryCode))
}

// WhatsAppNumber returns the digits-only form wa.me expects.
func WhatsAppNumber(phone string) string {
	return strings.TrimPrefix(CleanPhone(phone), "+")
}
