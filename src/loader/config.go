package loader

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Interval   time.Duration `envconfig:"LOADER_INTERVAL" default:"1h"`
	Keep       int           `envconfig:"LOADER_KEEP" default:"5"`
	BackoffMin time.Duration `envconfig:"LOADER_BACKOFF_MIN" default:"5s"`
	BackoffMax time.Duration `envconfig:"LOADER_BACKOFF_MAX" default:"5m"`
}

func GetConfig() Config {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		panic(fmt.Errorf("error processing env config: %w", err))
	}
	return config
}
