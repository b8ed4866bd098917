package mail

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a required value is missing
var ErrInvalidArgument = errors.New("invalid argument")

// Body holds the text and HTML versions of the message content
type Body struct {
	Text string
	HTML string
}

// Message is one email to send. It is built with NewMessage and is read-only afterwards.
// The zero value is not a valid message; it still encodes with an empty recipient list.
type Message struct {
	from            Address
	to              []Address
	subject         string
	body            Body
	customID        string
	customIDUnique  bool
	trackOpens      bool
	trackClicks     bool
	listID          string
	listUnsubscribe string
	replyTo         []Address
}

// Option configures an optional Message field
type Option func(*Message)

// WithBodyText sets the text version of the content
func WithBodyText(text string) Option {
	return func(m *Message) {
		m.body.Text = text
	}
}

// WithBodyHTML sets the HTML version of the content
func WithBodyHTML(html string) Option {
	return func(m *Message) {
		m.body.HTML = html
	}
}

// WithCustomID attaches a caller-supplied correlation id
func WithCustomID(id string) Option {
	return func(m *Message) {
		m.customID = id
	}
}

// WithCustomIDUnique tells the service to treat the custom id as a deduplication key
func WithCustomIDUnique(unique bool) Option {
	return func(m *Message) {
		m.customIDUnique = unique
	}
}

// WithTrackOpens toggles open tracking
func WithTrackOpens(track bool) Option {
	return func(m *Message) {
		m.trackOpens = track
	}
}

// WithTrackClicks toggles click tracking
func WithTrackClicks(track bool) Option {
	return func(m *Message) {
		m.trackClicks = track
	}
}

// WithListID sets the mailing list identifier
func WithListID(id string) Option {
	return func(m *Message) {
		m.listID = id
	}
}

// WithListUnsubscribe sets the list unsubscribe link
func WithListUnsubscribe(link string) Option {
	return func(m *Message) {
		m.listUnsubscribe = link
	}
}

// WithReplyTo sets the reply-to addresses
func WithReplyTo(addrs ...Address) Option {
	return func(m *Message) {
		m.replyTo = append([]Address(nil), addrs...)
	}
}

// NewMessage validates the required fields and returns a Message.
// from, at least one recipient and a subject are required; every address needs an email.
func NewMessage(from Address, to []Address, subject string, opts ...Option) (Message, error) {
	if from.Email == "" {
		return Message{}, fmt.Errorf("%w: from is required", ErrInvalidArgument)
	}
	if len(to) == 0 {
		return Message{}, fmt.Errorf("%w: to is required", ErrInvalidArgument)
	}
	if subject == "" {
		return Message{}, fmt.Errorf("%w: subject is required", ErrInvalidArgument)
	}

	m := Message{
		from:    from,
		to:      append([]Address(nil), to...),
		subject: subject,
	}
	for _, opt := range opts {
		opt(&m)
	}

	if err := checkAddresses("to", m.to); err != nil {
		return Message{}, err
	}
	if err := checkAddresses("reply_to", m.replyTo); err != nil {
		return Message{}, err
	}

	return m, nil
}

func checkAddresses(field string, addrs []Address) error {
	for i, a := range addrs {
		if a.Email == "" {
			return fmt.Errorf("%w: %s[%d] has no email", ErrInvalidArgument, field, i)
		}
	}
	return nil
}

func (m Message) From() Address           { return m.from }
func (m Message) To() []Address           { return append([]Address(nil), m.to...) }
func (m Message) Subject() string         { return m.subject }
func (m Message) Body() Body              { return m.body }
func (m Message) BodyText() string        { return m.body.Text }
func (m Message) BodyHTML() string        { return m.body.HTML }
func (m Message) CustomID() string        { return m.customID }
func (m Message) CustomIDUnique() bool    { return m.customIDUnique }
func (m Message) TrackOpens() bool        { return m.trackOpens }
func (m Message) TrackClicks() bool       { return m.trackClicks }
func (m Message) ListID() string          { return m.listID }
func (m Message) ListUnsubscribe() string { return m.listUnsubscribe }
func (m Message) ReplyTo() []Address      { return append([]Address(nil), m.replyTo...) }

// wireMessage is the request representation: snake_case keys with the body flattened
type wireMessage struct {
	From            Address   `json:"from"`
	To              []Address `json:"to"`
	Subject         string    `json:"subject"`
	BodyText        string    `json:"body_text,omitempty"`
	BodyHTML        string    `json:"body_html,omitempty"`
	CustomID        string    `json:"custom_id,omitempty"`
	CustomIDUnique  bool      `json:"custom_id_unique"`
	TrackOpens      bool      `json:"track_opens"`
	TrackClicks     bool      `json:"track_clicks"`
	ListID          string    `json:"list_id,omitempty"`
	ListUnsubscribe string    `json:"list_unsubscribe,omitempty"`
	ReplyTo         []Address `json:"reply_to,omitempty"`
}

// MarshalJSON writes the message in the send_email wire format
func (m Message) MarshalJSON() ([]byte, error) {
	to := m.to
	if to == nil {
		to = []Address{}
	}
	return encode(wireMessage{
		From:            m.from,
		To:              to,
		Subject:         m.subject,
		BodyText:        m.body.Text,
		BodyHTML:        m.body.HTML,
		CustomID:        m.customID,
		CustomIDUnique:  m.customIDUnique,
		TrackOpens:      m.trackOpens,
		TrackClicks:     m.trackClicks,
		ListID:          m.listID,
		ListUnsubscribe: m.listUnsubscribe,
		ReplyTo:         m.replyTo,
	})
}

// EncodeMessages encodes msgs as the send_email request body.
// HTML is not escaped so bodies go out as written; nil encodes as [].
func EncodeMessages(msgs []Message) ([]byte, error) {
	if msgs == nil {
		msgs = []Message{}
	}
	return encode(msgs)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON reads the wire format and applies the same checks as NewMessage
func (m *Message) UnmarshalJSON(data []byte) error {
	var w wireMessage
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	msg, err := NewMessage(w.From, w.To, w.Subject,
		WithBodyText(w.BodyText),
		WithBodyHTML(w.BodyHTML),
		WithCustomID(w.CustomID),
		WithCustomIDUnique(w.CustomIDUnique),
		WithTrackOpens(w.TrackOpens),
		WithTrackClicks(w.TrackClicks),
		WithListID(w.ListID),
		WithListUnsubscribe(w.ListUnsubscribe),
		WithReplyTo(w.ReplyTo...),
	)
	if err != nil {
		return err
	}
	*m = msg
	return nil
}
