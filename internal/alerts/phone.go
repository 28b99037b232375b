package alerts

import "regexp"

var (
	nonPhoneCharsRe = regexp.MustCompile(`[^\d+]`)
	e164Re          = regexp.MustCompile(`^\+\d{10,15}$`)
	localNumberRe   = regexp.MustCompile(`^\d{10}$`)
)

// ValidatePhone checks a phone number and returns its canonical E.164
// form. A bare 10-digit local number is accepted and prefixed with the
// default country code. On rejection the original string is returned
// unchanged with ok=false.
func ValidatePhone(phone, defaultCountryCode string) (string, bool) {
	cleaned := nonPhoneCharsRe.ReplaceAllString(phone, "")

	if e164Re.MatchString(cleaned) {
		return cleaned, true
	}

	if localNumberRe.MatchString(cleaned) {
		return defaultCountryCode + cleaned, true
	}

	return phone, false
}
