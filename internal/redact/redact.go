// Package redact masks sensitive card data in text destined for logs.
// Full card numbers and CVV codes must never appear in log output, even
// inside error strings bubbled up from lower layers.
package redact

import (
	"regexp"
)

var (
	// panPattern matches runs of 12-19 digits, covering PANs embedded in
	// error text. Shorter runs (account ids are 11 digits) are left alone.
	panPattern = regexp.MustCompile(`\b[0-9]{12,19}\b`)

	// cvvPattern matches CVV values only when labeled, to avoid mangling
	// every 3-digit number in a message.
	cvvPattern = regexp.MustCompile(`(?i)\b(cvv|cvv_code|cvvcode)\s*[:=]?\s*[0-9]{3}\b`)
)

// String masks card numbers and labeled CVV values in s, keeping the last
// four digits of each card number for correlation.
func String(s string) string {
	out := panPattern.ReplaceAllStringFunc(s, func(match string) string {
		return mask(match)
	})
	out = cvvPattern.ReplaceAllString(out, "cvv=***")
	return out
}

// Error returns the redacted message of err, or "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// CardNumber masks a card number keeping only the last four digits.
// Values shorter than four digits are fully masked.
func CardNumber(cardNumber string) string {
	return mask(cardNumber)
}

func mask(digits string) string {
	if len(digits) <= 4 {
		return "****"
	}
	masked := make([]byte, len(digits))
	for i := range masked {
		masked[i] = '*'
	}
	copy(masked[len(digits)-4:], digits[len(digits)-4:])
	return string(masked)
}
