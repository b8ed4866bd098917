package client

import (
	"context"
	"fmt"

	"github.com/coresender/coresender-go/pkg/config"
	"github.com/coresender/coresender-go/pkg/mail"
)

// NewMailer creates a new Mailer based on the configuration.
// The log mailer needs no credentials; the api mailer resolves them against the environment.
func NewMailer(ctx context.Context, cfg config.Config, explicit config.Credentials, opts ...Option) (mail.Mailer, error) {
	switch cfg.Mailer {
	case "api", "":
		if cfg.Endpoint != "" {
			opts = append([]Option{WithEndpoint(cfg.Endpoint)}, opts...)
		}
		c, err := NewFromCredentials(ctx, explicit, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "log":
		return mail.NewLogMailer(), nil
	default:
		return nil, fmt.Errorf("unsupported mailer: %s", cfg.Mailer)
	}
}
