// Package phone validates user-entered phone numbers and normalizes them
// to E.164.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/protomem/bizcard-pass/internal/locale"
	"github.com/protomem/bizcard-pass/internal/model"
)

const (
	ErrorKey = "api.phoneError"

	fallbackPlaceholder = "+1 234 567 8900"
)

var e164 = regexp.MustCompile(`^\+[1-9][0-9]{1,14}$`)

// Normalize parses raw using the calling region of l as a hint; numbers
// written with a leading + keep their own country code. Only numbers valid
// for their numbering plan are accepted.
func Normalize(raw string, l locale.Locale) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", invalid()
	}

	num, err := phonenumbers.Parse(raw, l.Region())
	if err != nil {
		return "", invalid()
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", invalid()
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// IsE164 reports whether s is already in canonical form. It only checks
// the shape, not the numbering plan.
func IsE164(s string) bool {
	return e164.MatchString(s)
}

// Placeholder is an example number for the region of l in international
// format, used as form input hint.
func Placeholder(l locale.Locale) string {
	example := phonenumbers.GetExampleNumberForType(l.Region(), phonenumbers.MOBILE)
	if example == nil {
		return fallbackPlaceholder
	}
	return phonenumbers.Format(example, phonenumbers.INTERNATIONAL)
}

func invalid() error {
	return model.NewKeyedError(model.ErrPhoneInvalid, ErrorKey)
}
