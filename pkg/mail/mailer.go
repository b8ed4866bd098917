package mail

import "context"

// Mailer sends a list of messages as one request
type Mailer interface {
	// Send delivers msgs in order and returns the service reply.
	// A non-nil error means the request itself failed; per-message failures are in the Result.
	Send(ctx context.Context, msgs []Message) (*Result, error)
}
