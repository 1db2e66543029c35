package message

import (
	"strings"

	"msgsend/schema"
)

// NormalizePhone removes every "-" separator from a phone number. No other
// check is made: digit count and country codes are left to the service.
func NormalizePhone(s string) string {
	return strings.ReplaceAll(s, "-", "")
}

// Phone decodes a phone number string and normalizes it.
var Phone schema.Decoder[string] = schema.Transform(schema.String, NormalizePhone)
