package console

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/coresender/coresender-go/pkg/client"
	"github.com/coresender/coresender-go/pkg/config"
	"github.com/coresender/coresender-go/pkg/mail"
	"github.com/coresender/coresender-go/pkg/root"
	"github.com/coresender/coresender-go/pkg/telemetry"
	"github.com/rs/zerolog/log"
)

var (
	accountID     string
	apiKey        string
	endpoint      string
	logLevel      string
	dryRun        bool
	traceRequests bool
)

func init() {
	pf := root.GetRoot().PersistentFlags()
	pf.StringVar(&accountID, "account-id", "", "Sending account id (default $"+config.EnvAccountID+")")
	pf.StringVar(&apiKey, "api-key", "", "Sending account API key (default $"+config.EnvAPIKey+")")
	pf.StringVar(&endpoint, "endpoint", "", "Override the send_email endpoint URL")
	pf.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.BoolVar(&dryRun, "dry-run", false, "Log the messages instead of sending them")
	pf.BoolVar(&traceRequests, "trace", false, "Print OpenTelemetry spans to stderr")
}

// newMailer loads configuration, sets up logging and tracing and returns the mailer to use.
// The returned func flushes telemetry and must be called when done.
func newMailer(ctx context.Context) (context.Context, mail.Mailer, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return ctx, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if endpoint != "" {
		cfg.Endpoint = endpoint
	}
	if dryRun {
		cfg.Mailer = "log"
	}

	telemetry.SetGlobalLogger(cfg.LogLevel, cfg.LogFormat)
	ctx = log.Logger.WithContext(ctx)

	cleanup := func() {}
	if traceRequests {
		tp, err := telemetry.InitTracer("coresender-cli", os.Stderr)
		if err != nil {
			return ctx, nil, nil, fmt.Errorf("failed to initialize tracer: %w", err)
		}
		cleanup = func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				telemetry.LoggerFromContext(ctx).Error().Err(err).Msg("Error shutting down tracer")
			}
		}
	}

	mailer, err := client.NewMailer(ctx, *cfg, config.Credentials{AccountID: accountID, APIKey: apiKey})
	if err != nil {
		cleanup()
		return ctx, nil, nil, err
	}
	return ctx, mailer, cleanup, nil
}

// printResult writes the reply and turns an undecodable or non-2xx reply into an error
func printResult(ctx context.Context, w io.Writer, res *mail.Result) error {
	if !res.HasBody() {
		fmt.Fprintf(w, "%s\n%v\n", res.StatusText, res.ParsingError)
		return fmt.Errorf("unparseable response (%s)", res.StatusText)
	}

	fmt.Fprintln(w, mail.PrettyPrintResponse(res.Body))

	logger := telemetry.LoggerFromContext(ctx)
	for i, d := range res.Body.Data {
		for _, e := range d.Errors {
			e.Walk(func(depth int, err mail.Error) {
				logger.Warn().
					Int("message", i).
					Str("custom_id", d.CustomID).
					Int("depth", depth).
					Str("code", err.Code).
					Str("field", err.Field).
					Msg(err.Description)
			})
		}
	}

	if !res.Success() {
		return fmt.Errorf("service returned %s", res.StatusText)
	}
	return nil
}
