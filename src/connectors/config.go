package connectors

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIKey     string `envconfig:"OKX_API_KEY"`
	APISecret  string `envconfig:"OKX_API_SECRET"`
	Passphrase string `envconfig:"OKX_PASSPHRASE"`
	BaseURL    string `envconfig:"OKX_BASE_URL"`
	Sandbox    bool   `envconfig:"OKX_SANDBOX" default:"false"`

	Timeout       time.Duration `envconfig:"OKX_TIMEOUT" default:"15s"`
	RateLimit     float64       `envconfig:"OKX_RATE_LIMIT" default:"10"`
	RateBurst     int           `envconfig:"OKX_RATE_BURST" default:"20"`
	RetryAttempts int           `envconfig:"OKX_RETRY_ATTEMPTS" default:"5"`
	RetryWait     time.Duration `envconfig:"OKX_RETRY_WAIT" default:"500ms"`
	RetryMaxWait  time.Duration `envconfig:"OKX_RETRY_MAX_WAIT" default:"8s"`

	// OptionsFile is an optional YAML overlay of the exchange options.
	OptionsFile string `envconfig:"OKX_OPTIONS_FILE"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
