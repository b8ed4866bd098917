package console

import (
	"fmt"
	"os"

	"github.com/coresender/coresender-go/pkg/mail"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// messageInput is the textual form of a message used by flags and batch files
type messageInput struct {
	From            string   `yaml:"from" validate:"required"`
	To              []string `yaml:"to" validate:"required,min=1,dive,required"`
	Subject         string   `yaml:"subject" validate:"required"`
	BodyText        string   `yaml:"body_text"`
	BodyHTML        string   `yaml:"body_html"`
	CustomID        string   `yaml:"custom_id"`
	CustomIDUnique  bool     `yaml:"custom_id_unique"`
	TrackOpens      bool     `yaml:"track_opens"`
	TrackClicks     bool     `yaml:"track_clicks"`
	ListID          string   `yaml:"list_id"`
	ListUnsubscribe string   `yaml:"list_unsubscribe"`
	ReplyTo         []string `yaml:"reply_to" validate:"omitempty,dive,required"`
}

// batchFile is the YAML document read by the batch command
type batchFile struct {
	AutoCustomID bool           `yaml:"auto_custom_id"`
	Messages     []messageInput `yaml:"messages"`
}

// build parses the addresses and validates the message.
// With autoID an empty custom id is replaced by a random UUID.
func (s messageInput) build(autoID bool) (mail.Message, error) {
	if err := validate.Struct(s); err != nil {
		return mail.Message{}, fmt.Errorf("%w: %v", mail.ErrInvalidArgument, err)
	}
	from, err := mail.ParseAddress(s.From)
	if err != nil {
		return mail.Message{}, err
	}
	to, err := mail.ParseAddressList(s.To)
	if err != nil {
		return mail.Message{}, err
	}
	replyTo, err := mail.ParseAddressList(s.ReplyTo)
	if err != nil {
		return mail.Message{}, err
	}

	customID := s.CustomID
	if customID == "" && autoID {
		customID = uuid.NewString()
	}

	return mail.NewMessage(from, to, s.Subject,
		mail.WithBodyText(s.BodyText),
		mail.WithBodyHTML(s.BodyHTML),
		mail.WithCustomID(customID),
		mail.WithCustomIDUnique(s.CustomIDUnique),
		mail.WithTrackOpens(s.TrackOpens),
		mail.WithTrackClicks(s.TrackClicks),
		mail.WithListID(s.ListID),
		mail.WithListUnsubscribe(s.ListUnsubscribe),
		mail.WithReplyTo(replyTo...),
	)
}

// loadBatchFile reads and builds every message of a batch file
func loadBatchFile(path string) ([]mail.Message, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var bf batchFile
	if err := yaml.Unmarshal(raw, &bf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	msgs := make([]mail.Message, 0, len(bf.Messages))
	for i, in := range bf.Messages {
		msg, err := in.build(bf.AutoCustomID)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}
