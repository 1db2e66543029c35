// Package message turns loosely typed send input into validated, normalized
// requests for the messaging API.
package message

import (
	"encoding/json"

	"msgsend/rcs"
	"msgsend/schema"
)

// Type is the message channel and tier.
type Type string

const (
	SMS     Type = "SMS"
	LMS     Type = "LMS"
	MMS     Type = "MMS"
	ATA     Type = "ATA" // Kakao alimtalk
	CTA     Type = "CTA" // Kakao friendtalk
	CTI     Type = "CTI" // Kakao friendtalk with image
	NSA     Type = "NSA" // Naver smart alert
	RCSSMS  Type = "RCS_SMS"
	RCSLMS  Type = "RCS_LMS"
	RCSMMS  Type = "RCS_MMS"
	RCSTPL  Type = "RCS_TPL"
	RCSITPL Type = "RCS_ITPL"
	RCSLTPL Type = "RCS_LTPL"
	FAX     Type = "FAX"
	VOICE   Type = "VOICE"
)

// Types lists every accepted message type.
var Types = []Type{SMS, LMS, MMS, ATA, CTA, CTI, NSA,
	RCSSMS, RCSLMS, RCSMMS, RCSTPL, RCSITPL, RCSLTPL, FAX, VOICE}

// Recipients is either a single phone number or a list of them. The form the
// caller used is kept: a one-element list stays a list.
type Recipients struct {
	phones []string
	list   bool
}

// One returns a single recipient.
func One(phone string) Recipients {
	return Recipients{phones: []string{phone}}
}

// Many returns a recipient list.
func Many(phones ...string) Recipients {
	return Recipients{phones: append([]string{}, phones...), list: true}
}

// IsList reports whether the recipients were given in list form.
func (r Recipients) IsList() bool { return r.list }

// Len returns the number of recipients.
func (r Recipients) Len() int { return len(r.phones) }

// Phones returns a copy of the recipient numbers.
func (r Recipients) Phones() []string {
	return append([]string(nil), r.phones...)
}

// MarshalJSON encodes a string for a single recipient and an array for a list.
func (r Recipients) MarshalJSON() ([]byte, error) {
	if r.list {
		return json.Marshal(r.Phones())
	}
	if len(r.phones) == 0 {
		return []byte(`""`), nil
	}
	return json.Marshal(r.phones[0])
}

// Message is one deliverable unit.
type Message struct {
	To             Recipients        `json:"to"`
	From           string            `json:"from,omitempty"`
	Text           string            `json:"text,omitempty"`
	Type           Type              `json:"type,omitempty"`
	Subject        string            `json:"subject,omitempty"`
	ImageID        string            `json:"imageId,omitempty"`
	Country        string            `json:"country,omitempty"`
	AutoTypeDetect *bool             `json:"autoTypeDetect,omitempty"`
	CustomFields   map[string]string `json:"customFields,omitempty"`
	RCSOptions     *rcs.Option       `json:"rcsOptions,omitempty"`
}

func setTo(m *Message, v Recipients) { m.To = v }
func setFrom(m *Message, v string)   { m.From = v }

// BaseShape is the message as the API models it: recipients as given, no
// normalization.
var BaseShape = schema.Struct("Message",
	schema.Required("to", schema.Union("string or array of strings",
		schema.Transform(schema.String, One),
		schema.Transform(schema.Array(schema.String), func(v []string) Recipients { return Many(v...) }),
	), setTo),
	schema.Optional("from", schema.String, setFrom),
	schema.Optional("text", schema.String, func(m *Message, v string) { m.Text = v }),
	schema.Optional("type", schema.Literal(Types...), func(m *Message, v Type) { m.Type = v }),
	schema.Optional("subject", schema.String, func(m *Message, v string) { m.Subject = v }),
	schema.Optional("imageId", schema.String, func(m *Message, v string) { m.ImageID = v }),
	schema.Optional("country", schema.String, func(m *Message, v string) { m.Country = v }),
	schema.Optional("autoTypeDetect", schema.Bool, func(m *Message, v bool) { m.AutoTypeDetect = &v }),
	schema.Optional("customFields", schema.StringMap, func(m *Message, v map[string]string) { m.CustomFields = v }),
	schema.Optional("rcsOptions", rcs.OptionShape.Decoder(), func(m *Message, v rcs.Option) { m.RCSOptions = &v }),
)

// Recipient decodes "to": one phone number or a non-empty list of them.
var Recipient = schema.Union("phone number or non-empty array of phone numbers",
	schema.Transform(Phone, One),
	schema.Transform(schema.NonEmpty(schema.Array(Phone)), func(v []string) Recipients { return Many(v...) }),
)

// SendOneShape is the message accepted by a send call: BaseShape with to and
// from re-declared as normalized phone numbers.
var SendOneShape = BaseShape.Omit("to", "from").Extend(
	schema.Required("to", Recipient, setTo),
	schema.Optional("from", Phone, setFrom),
)
