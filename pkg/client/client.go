package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/coresender/coresender-go/pkg/config"
	"github.com/coresender/coresender-go/pkg/mail"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/coresender/coresender-go/pkg/client"

// ErrInvalidConfiguration is returned by NewFromCredentials when credentials are missing
var ErrInvalidConfiguration = config.ErrInvalidConfiguration

// Option configures a Client
type Option func(*Client)

// WithEndpoint overrides the send_email URL
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTracer sets the tracer used for request spans
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

// Client sends messages to the Coresender API.
// The batch is not synchronized: use one Client per goroutine or guard it externally.
type Client struct {
	accountID  string
	apiKey     string
	endpoint   string
	httpClient *http.Client
	tracer     trace.Tracer
	batch      mail.Batch
}

// New creates a Client from already resolved credentials
func New(accountID, apiKey string, opts ...Option) (*Client, error) {
	if accountID == "" {
		return nil, fmt.Errorf("%w: accountID is required", mail.ErrInvalidArgument)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: apiKey is required", mail.ErrInvalidArgument)
	}

	c := &Client{
		accountID:  accountID,
		apiKey:     apiKey,
		endpoint:   config.DefaultEndpoint,
		httpClient: http.DefaultClient,
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// NewFromCredentials resolves explicit against the process environment and creates a Client.
// It fails with ErrInvalidConfiguration when either credential is still missing.
func NewFromCredentials(ctx context.Context, explicit config.Credentials, opts ...Option) (*Client, error) {
	creds, err := config.ResolveCredentials(ctx, explicit, nil)
	if err != nil {
		return nil, err
	}
	return New(creds.AccountID, creds.APIKey, opts...)
}

// AddToBatch appends msg to the pending batch
func (c *Client) AddToBatch(msg mail.Message) {
	c.batch.Add(msg)
}

// Pending returns the number of messages waiting for Execute
func (c *Client) Pending() int {
	return c.batch.Len()
}

// SendSimpleEmail sends msg on its own, leaving the pending batch untouched
func (c *Client) SendSimpleEmail(ctx context.Context, msg mail.Message) (*mail.Result, error) {
	return c.Send(ctx, []mail.Message{msg})
}

// Execute sends the pending batch as one request. The batch is cleared whatever the outcome.
func (c *Client) Execute(ctx context.Context) (*mail.Result, error) {
	return c.Send(ctx, c.batch.Drain())
}

// Send posts msgs as a JSON array and decodes the reply.
// Transport failures are returned as errors; an undecodable reply is not an error
// and shows up as a Result without a body.
func (c *Client) Send(ctx context.Context, msgs []mail.Message) (*mail.Result, error) {
	if msgs == nil {
		msgs = []mail.Message{}
	}

	ctx, span := c.tracer.Start(ctx, "coresender.send_email", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.Int("coresender.messages", len(msgs)))

	logger := zerolog.Ctx(ctx).With().Str("endpoint", c.endpoint).Logger()

	payload, err := mail.EncodeMessages(msgs)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode request")
		return nil, fmt.Errorf("failed to encode messages: %w", err)
	}
	if e := logger.Debug(); e.Enabled() {
		pretty, _ := mail.PrettyPrint(msgs)
		e.Int("messages", len(msgs)).Msgf("Sending emails: %s", pretty)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.accountID, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport")
		logger.Error().Err(err).Msg("HTTP request failed")
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read response")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	result := mail.NewResult(resp.StatusCode, resp.Status, raw)
	if !result.HasBody() {
		span.SetStatus(codes.Error, "unparseable response")
		logger.Warn().
			Int("status", resp.StatusCode).
			Str("status_text", resp.Status).
			Err(result.ParsingError).
			Msg("Response body could not be parsed")
		return result, nil
	}

	if e := logger.Debug(); e.Enabled() {
		e.Int("status", resp.StatusCode).Msgf("Got response: %s", mail.PrettyPrintResponse(result.Body))
	}
	return result, nil
}
