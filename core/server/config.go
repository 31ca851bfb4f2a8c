package server

import "fmt"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the admin API.
	// The storefront endpoint is always public.
	ApiKey string `mapstructure:"api_key" default:""`
	// StorefrontOrigin is sent as Access-Control-Allow-Origin on storefront responses.
	StorefrontOrigin string `mapstructure:"storefront_origin" default:"*"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	return ":" + c.Port
}

// Validate checks that the configuration can be served.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("server port is required")
	}
	return nil
}
