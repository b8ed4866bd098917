package config

// DefaultEndpoint is the send_email endpoint of the Coresender API
const DefaultEndpoint = "https://api.coresender.com/v1/send_email"

// Config holds client settings read from the environment
type Config struct {
	Endpoint  string `env:"CORESENDER_ENDPOINT" envDefault:"https://api.coresender.com/v1/send_email"`
	Mailer    string `env:"CORESENDER_MAILER" envDefault:"api"` // api, log
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"` // console, json
}

// Credentials identify a Coresender sending account
type Credentials struct {
	AccountID string `env:"CORESENDER_SENDING_API_ID"`
	APIKey    string `env:"CORESENDER_SENDING_API_KEY"`
}

// Complete reports whether both values are set
func (c Credentials) Complete() bool {
	return c.AccountID != "" && c.APIKey != ""
}
