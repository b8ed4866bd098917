package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// LogStatus is the per-message status reported by LogMailer
const LogStatus = "logged"

// LogMailer implements Mailer by logging the request payload instead of sending it
type LogMailer struct{}

// NewLogMailer creates a new LogMailer
func NewLogMailer() *LogMailer {
	return &LogMailer{}
}

// Send logs every message and returns a synthetic reply with one entry per message
func (m *LogMailer) Send(ctx context.Context, msgs []Message) (*Result, error) {
	if msgs == nil {
		msgs = []Message{}
	}
	payload, err := EncodeMessages(msgs)
	if err != nil {
		return nil, fmt.Errorf("failed to encode messages: %w", err)
	}

	logger := log.Ctx(ctx).With().
		Str("mailer", "log").
		Int("messages", len(msgs)).
		Logger()
	logger.Info().Msg("Sending emails")

	data := make([]Data, 0, len(msgs))
	for i, msg := range msgs {
		to := make([]string, 0, len(msg.to))
		for _, a := range msg.to {
			to = append(to, a.String())
		}
		logger.Info().
			Int("index", i).
			Str("from", msg.from.String()).
			Strs("to", to).
			Str("subject", msg.subject).
			Str("custom_id", msg.customID).
			Msg("Email")

		data = append(data, Data{CustomID: msg.customID, Status: LogStatus})
	}
	logger.Debug().RawJSON("payload", payload).Msg("Request body")

	return &Result{
		StatusCode: 200,
		StatusText: "200 OK",
		RawBody:    payload,
		Body:       &SendEmailResponse{Data: data},
	}, nil
}
