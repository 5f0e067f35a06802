package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone formats phone as E.164 when it parses as a valid number,
// reading national formats against region. Anything else is returned with
// whitespace collapsed so the customer's input is never lost.
func NormalizePhone(phone, region string) string {
	phone = TrimAndNormalize(phone)
	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, strings.ToUpper(region))
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return phone
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}
