package message

import (
	"encoding/json"
	"fmt"
	"time"

	"msgsend/rcs"
	"msgsend/schema"
)

// SendRequest is a validated request: either *SingleRequest or *BatchRequest.
// Consumers must switch on the concrete type.
type SendRequest interface {
	sendRequest()
}

// SingleRequest sends one message.
type SingleRequest struct {
	Message Message `json:"message"`
	Agent   Agent   `json:"agent"`
}

// BatchRequest sends a non-empty ordered list of messages.
type BatchRequest struct {
	Messages []Message `json:"messages"`
	Agent    Agent     `json:"agent"`
	// AllowDuplicates permits identical messages within one batch.
	AllowDuplicates *bool      `json:"allowDuplicates,omitempty"`
	ScheduledDate   *time.Time `json:"scheduledDate,omitempty"`
	// ShowMessageList asks the service to list every message in the response.
	ShowMessageList *bool `json:"showMessageList,omitempty"`
}

func (*SingleRequest) sendRequest() {}
func (*BatchRequest) sendRequest()  {}

// Messages is the bare "one message or many" input of a send call.
type Messages struct {
	One  *Message
	Many []Message
}

// IsList reports whether the input was a list.
func (m Messages) IsList() bool { return m.One == nil }

// SingleShape decodes {message, agent}.
var SingleShape = schema.Struct("SingleMessageSendingRequest",
	schema.Required("message", SendOneShape.Decoder(), func(r *SingleRequest, v Message) { r.Message = v }),
	agentField(func(r *SingleRequest, v Agent) { r.Agent = v }),
)

// BatchShape decodes {messages, agent, allowDuplicates, scheduledDate, showMessageList}.
var BatchShape = schema.Struct("MultipleMessageSendingRequest",
	schema.Optional("allowDuplicates", schema.Bool, func(r *BatchRequest, v bool) { r.AllowDuplicates = &v }),
	agentField(func(r *BatchRequest, v Agent) { r.Agent = v }),
	schema.Required("messages", messageList, func(r *BatchRequest, v []Message) { r.Messages = v }),
	schema.Optional("scheduledDate", schema.Date, func(r *BatchRequest, v time.Time) { r.ScheduledDate = &v }),
	schema.Optional("showMessageList", schema.Bool, func(r *BatchRequest, v bool) { r.ShowMessageList = &v }),
)

var messageList = schema.NonEmpty(schema.Array(SendOneShape.Decoder()))

var messagesUnion = schema.Union("message object or non-empty array of message objects",
	schema.Transform(SendOneShape.Decoder(), func(m Message) Messages { return Messages{One: &m} }),
	schema.Transform(messageList, func(v []Message) Messages { return Messages{Many: v} }),
)

// Parser validates send input. The zero value is not usable; use NewParser.
type Parser struct {
	rcs *rcs.Validator
}

// NewParser returns a Parser that validates RCS options with v. A nil v uses
// an unbounded validator.
func NewParser(v *rcs.Validator) *Parser {
	if v == nil {
		v = rcs.NewValidator()
	}
	return &Parser{rcs: v}
}

var defaultParser = NewParser(nil)

// Resolve decides between the single and the batch form of raw. An object is
// validated as one message and returned as *SingleRequest; an array as a
// non-empty list of messages returned as *BatchRequest. Both get the default
// agent.
func (p *Parser) Resolve(raw any) (SendRequest, error) {
	msgs, err := p.DecodeMessages(raw)
	if err != nil {
		return nil, err
	}
	if msgs.One != nil {
		return &SingleRequest{Message: *msgs.One, Agent: DefaultAgent()}, nil
	}
	return &BatchRequest{Messages: msgs.Many, Agent: DefaultAgent()}, nil
}

// DecodeMessages validates raw as one message or a non-empty list of them.
func (p *Parser) DecodeMessages(raw any) (Messages, error) {
	msgs, err := messagesUnion("", raw)
	if err != nil {
		return Messages{}, err
	}
	if msgs.One != nil {
		if err := p.checkOptions("", msgs.One); err != nil {
			return Messages{}, err
		}
		return msgs, nil
	}
	for i := range msgs.Many {
		if err := p.checkOptions(schema.Index("", i), &msgs.Many[i]); err != nil {
			return Messages{}, err
		}
	}
	return msgs, nil
}

// DecodeSingle validates a {message, agent} envelope.
func (p *Parser) DecodeSingle(raw any) (*SingleRequest, error) {
	req, err := SingleShape.Decode("", raw)
	if err != nil {
		return nil, err
	}
	if err := p.checkOptions("message", &req.Message); err != nil {
		return nil, err
	}
	return &req, nil
}

// DecodeBatch validates a {messages, ...} envelope.
func (p *Parser) DecodeBatch(raw any) (*BatchRequest, error) {
	req, err := BatchShape.Decode("", raw)
	if err != nil {
		return nil, err
	}
	for i := range req.Messages {
		if err := p.checkOptions(schema.Index("messages", i), &req.Messages[i]); err != nil {
			return nil, err
		}
	}
	return &req, nil
}

func (p *Parser) checkOptions(path string, m *Message) error {
	if m.RCSOptions == nil {
		return nil
	}
	return p.rcs.Validate(schema.Join(path, "rcsOptions"), m.RCSOptions)
}

// Resolve uses a parser with default settings.
func Resolve(raw any) (SendRequest, error) { return defaultParser.Resolve(raw) }

// DecodeMessages uses a parser with default settings.
func DecodeMessages(raw any) (Messages, error) { return defaultParser.DecodeMessages(raw) }

// DecodeSingle uses a parser with default settings.
func DecodeSingle(raw any) (*SingleRequest, error) { return defaultParser.DecodeSingle(raw) }

// DecodeBatch uses a parser with default settings.
func DecodeBatch(raw any) (*BatchRequest, error) { return defaultParser.DecodeBatch(raw) }

// ParseJSON decodes JSON text into the raw form accepted by the decoders.
func ParseJSON(data []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return raw, nil
}
