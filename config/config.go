package config

import (
	"os"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	HostHTTP   = "http"
	HostLambda = "lambda"
)

// Config holds the process-level configuration read from the environment.
type Config struct {
	Host           string `env:"FUNCAPP_HOST"`
	Port           int    `env:"FUNCTIONS_CUSTOMHANDLER_PORT" envDefault:"8080"`
	Trigger        string `env:"FUNCAPP_TRIGGER" envDefault:"helloWorld1"` // trigger served by the lambda host
	ConfigFile     string `env:"FUNCAPP_CONFIG"`
	Debug          bool   `env:"FUNCAPP_DEBUG" envDefault:"false"`
	MetricsEnabled bool   `env:"FUNCAPP_METRICS" envDefault:"true"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat      string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	// Attempt to load .env file for local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Host == "" {
		cfg.Host = HostHTTP
		if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
			cfg.Host = HostLambda
		}
	}

	return cfg, nil
}
