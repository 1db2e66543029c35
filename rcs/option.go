// Package rcs declares the RCS (photo message) options attached to a message
// and validates them before they reach the transport.
package rcs

import "msgsend/schema"

// MMSType is the photo message layout: M is medium size, S is small size,
// the digit is the number of photos.
type MMSType string

const (
	M3 MMSType = "M3"
	S3 MMSType = "S3"
	M4 MMSType = "M4"
	S4 MMSType = "S4"
	M5 MMSType = "M5"
	S5 MMSType = "S5"
	M6 MMSType = "M6"
	S6 MMSType = "S6"
)

// MMSTypes lists every accepted MMSType in documentation order.
var MMSTypes = []MMSType{M3, S3, M4, S4, M5, S5, M6, S6}

// Button is one RCS template button. Its fields belong to the RCS template
// catalog; here they are only carried, not interpreted.
type Button struct {
	ButtonType string `json:"buttonType,omitempty"`
	ButtonName string `json:"buttonName,omitempty"`
	Link       string `json:"link,omitempty"`
	Text       string `json:"text,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Title      string `json:"title,omitempty"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	Latitude   string `json:"latitude,omitempty"`
	Longitude  string `json:"longitude,omitempty"`
	Label      string `json:"label,omitempty"`
	Query      string `json:"query,omitempty"`
}

// AdditionalBody is one slide of a multi-slide photo message.
type AdditionalBody struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	// ImageID is the storage id of the slide image. Only valid when the
	// image type is MMS.
	ImageID string   `json:"imageId,omitempty"`
	Buttons []Button `json:"buttons,omitempty"`
}

// Option holds the RCS parameters of a message.
type Option struct {
	BrandID     string `json:"brandId"`
	TemplateID  string `json:"templateId,omitempty"`
	CopyAllowed *bool  `json:"copyAllowed,omitempty"`
	// Variables maps template placeholders, e.g. "#{name}", to their values.
	Variables      map[string]string `json:"variables,omitempty"`
	MMSType        MMSType           `json:"mmsType,omitempty" validate:"omitempty,oneof=M3 S3 M4 S4 M5 S5 M6 S6"`
	CommercialType *bool             `json:"commercialType,omitempty"`
	// DisableSMS turns off the SMS/LMS/MMS fallback when RCS delivery fails.
	// The zero value keeps the fallback.
	DisableSMS     bool            `json:"disableSms,omitempty"`
	AdditionalBody *AdditionalBody `json:"additionalBody,omitempty"`
	Buttons        []Button        `json:"buttons,omitempty"`
}

func buttonText(name string, set func(*Button, string)) schema.Field[Button] {
	return schema.Optional(name, schema.String, set)
}

// ButtonShape decodes a single button object.
var ButtonShape = schema.Struct("RcsButton",
	buttonText("buttonType", func(b *Button, v string) { b.ButtonType = v }),
	buttonText("buttonName", func(b *Button, v string) { b.ButtonName = v }),
	buttonText("link", func(b *Button, v string) { b.Link = v }),
	buttonText("text", func(b *Button, v string) { b.Text = v }),
	buttonText("phone", func(b *Button, v string) { b.Phone = v }),
	buttonText("title", func(b *Button, v string) { b.Title = v }),
	buttonText("startTime", func(b *Button, v string) { b.StartTime = v }),
	buttonText("endTime", func(b *Button, v string) { b.EndTime = v }),
	buttonText("latitude", func(b *Button, v string) { b.Latitude = v }),
	buttonText("longitude", func(b *Button, v string) { b.Longitude = v }),
	buttonText("label", func(b *Button, v string) { b.Label = v }),
	buttonText("query", func(b *Button, v string) { b.Query = v }),
)

// Buttons decodes a button list of any length.
var Buttons = schema.Array(ButtonShape.Decoder())

// AdditionalBodyShape decodes a photo message slide.
var AdditionalBodyShape = schema.Struct("AdditionalBody",
	schema.Required("title", schema.String, func(b *AdditionalBody, v string) { b.Title = v }),
	schema.Required("description", schema.String, func(b *AdditionalBody, v string) { b.Description = v }),
	schema.Optional("imageId", schema.String, func(b *AdditionalBody, v string) { b.ImageID = v }),
	schema.Optional("buttons", Buttons, func(b *AdditionalBody, v []Button) { b.Buttons = v }),
)

// OptionShape decodes the RCS options object. Only types are checked here;
// value rules are applied by Validator.
var OptionShape = schema.Struct("RcsOption",
	schema.Required("brandId", schema.String, func(o *Option, v string) { o.BrandID = v }),
	schema.Optional("templateId", schema.String, func(o *Option, v string) { o.TemplateID = v }),
	schema.Optional("copyAllowed", schema.Bool, func(o *Option, v bool) { o.CopyAllowed = &v }),
	schema.Optional("variables", schema.StringMap, func(o *Option, v map[string]string) { o.Variables = v }),
	schema.Optional("mmsType", schema.String, func(o *Option, v string) { o.MMSType = MMSType(v) }),
	schema.Optional("commercialType", schema.Bool, func(o *Option, v bool) { o.CommercialType = &v }),
	schema.Optional("disableSms", schema.Bool, func(o *Option, v bool) { o.DisableSMS = v }),
	schema.Optional("additionalBody", AdditionalBodyShape.Decoder(), func(o *Option, v AdditionalBody) { o.AdditionalBody = &v }),
	schema.Optional("buttons", Buttons, func(o *Option, v []Button) { o.Buttons = v }),
)
