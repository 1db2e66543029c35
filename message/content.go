package message

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

const (
	maxSMSBytes = 90   // EUC-KR bytes that fit one SMS
	maxLMSBytes = 2000 // EUC-KR bytes that fit one LMS/MMS body
)

// EstimateBytes returns the EUC-KR encoded length of text, the unit the
// service bills SMS and LMS bodies in. Runes EUC-KR cannot represent count as
// their one-byte replacement, so the result is a lower bound for such text.
func EstimateBytes(text string) int {
	enc := encoding.ReplaceUnsupported(korean.EUCKR.NewEncoder())
	out, _, err := transform.String(enc, text)
	if err != nil {
		return len(text)
	}
	return len(out)
}

// SuggestType returns the plain messaging tier the content fits: MMS when an
// image is attached, SMS for short text and LMS otherwise. It is advisory;
// the message type itself is never changed.
func SuggestType(m Message) Type {
	if m.ImageID != "" {
		return MMS
	}
	if EstimateBytes(m.Text) <= maxSMSBytes {
		return SMS
	}
	return LMS
}

// FitsLMS reports whether text stays within the LMS body limit.
func FitsLMS(text string) bool {
	return EstimateBytes(text) <= maxLMSBytes
}
