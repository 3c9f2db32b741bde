// Package validation holds the typed input validators for tenant identity
// fields. Each validator returns the normalized value or a *FieldError naming
// the offending field, so handlers can map failures straight onto the
// validation error envelope.
package validation

import (
	"regexp"
	"strings"
)

// FieldError is an enumerated validation failure for a single input field.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Reason }

var (
	idNumberRe = regexp.MustCompile(`^[0-9]{13}$`)
	// South African mobile numbers: optional +27/27/0 prefix followed by a
	// 6/7/8-leading nine-digit subscriber number.
	mobileRe = regexp.MustCompile(`^(?:\+27|27|0)([6-8][0-9]{8})$`)
	stripRe  = regexp.MustCompile(`[\s\-()]`)
)

// IDNumber validates a national ID number: exactly 13 digits.
func IDNumber(s string) (string, *FieldError) {
	s = strings.TrimSpace(s)
	if !idNumberRe.MatchString(s) {
		return "", &FieldError{Field: "idNumber", Reason: "must be exactly 13 digits"}
	}
	return s, nil
}

// MobileNumber validates a South African mobile number and normalizes it to
// the international 27XXXXXXXXX form used by the SMS gateway. Spaces, dashes
// and parentheses are stripped before matching.
func MobileNumber(s string) (string, *FieldError) {
	cleaned := stripRe.ReplaceAllString(strings.TrimSpace(s), "")
	m := mobileRe.FindStringSubmatch(cleaned)
	if m == nil {
		return "", &FieldError{Field: "phone", Reason: "must be a valid South African mobile number"}
	}
	return "27" + m[1], nil
}
