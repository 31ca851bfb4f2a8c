package graphql

// Config holds configuration for the commerce platform Admin GraphQL API.
type Config struct {
	// APIVersion is the Admin API version segment of the endpoint.
	APIVersion string `mapstructure:"api_version" default:"2024-10"`
	// TimeoutSeconds bounds a whole request. Zero leaves it to the transport defaults.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"0"`
	// Domain is the shop used by CLI commands when no --shop flag is given.
	Domain string `mapstructure:"domain" default:""`
	// AccessToken is a static Admin API token for Domain (custom app installs).
	// Sessions from the session store take precedence.
	AccessToken string `mapstructure:"access_token" default:""`
}
