// Package config provides configuration for the audit job.
package config

const (
	// APIKeyEnv holds the platform API key.
	APIKeyEnv = "DD_API_KEY"

	// AppKeyEnv holds the platform application key.
	AppKeyEnv = "DD_APP_KEY"

	DefaultSite     = "datadoghq.com"
	DefaultLogLevel = "info"

	// FormatText is the plain report layout.
	FormatText = "text"

	// FormatJSON is the machine-readable report layout.
	FormatJSON = "json"

	// DotEnvFile is loaded from the working directory when present.
	DotEnvFile = ".env"
)
