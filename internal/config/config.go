package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Env holds the process-wide configuration, loaded once at startup and
// passed down explicitly.
type Env struct {
	HTTPPort        string `envconfig:"HTTP_PORT" default:"8080"`
	AsanaAPIURL     string `envconfig:"ASANA_API_URL" default:"https://app.asana.com/api/1.0"`
	AsanaAppURL     string `envconfig:"ASANA_APP_URL" default:"https://app.asana.com"`
	StoreURL        string `envconfig:"STORE_URL" required:"true"`
	StoreServiceKey string `envconfig:"STORE_SERVICE_KEY" required:"true"`
	IntegrationType string `envconfig:"INTEGRATION_TYPE" default:"asana"`
}

const namespace = "TRACKSYNC"

// Load reads Env from the process environment.
func Load() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}
