package config

// Config holds all application configuration. It is constructed once at
// startup, validated, and treated as immutable for the process lifetime;
// every component receives it (or a sub-struct) by injection.
type Config struct {
	Server   ServerConfig   `validate:"required"`
	Database DatabaseConfig `validate:"required"`
	Auth     AuthConfig     `validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	BindAddr string `validate:"required"`
	LogLevel string `validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// URL is either a postgres:// connection string or a SQLite file path.
	// The sqlite:// prefix used by older deployment configs is accepted.
	URL string `validate:"required"`
}

// AuthConfig contains all authentication settings.
type AuthConfig struct {
	// JWTSecret signs and verifies bearer tokens. An empty value disables
	// authentication entirely and the server runs open.
	JWTSecret string

	// ReadOnlyWithoutAuth exempts GET requests from the auth gate while a
	// signing secret is configured.
	ReadOnlyWithoutAuth bool
}

// Enabled reports whether bearer-token authentication is configured.
func (c AuthConfig) Enabled() bool {
	return c.JWTSecret != ""
}
