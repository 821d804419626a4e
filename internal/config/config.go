// Package config loads application configuration from environment variables.
//
// Earlier deployments hard-coded the Mongo URI and session secret as
// constants. Externalising them must not change behaviour, so every field
// carries the old constant as its env-default — an empty environment yields
// the exact same runtime configuration as before.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the full application configuration, populated by Load.
type Config struct {
	HTTP    HTTPConfig
	Mongo   MongoConfig
	Session SessionConfig
	Google  GoogleConfig
}

// HTTPConfig holds the listener and asset locations.
type HTTPConfig struct {
	Port        int    `env:"PORT" env-default:"8080"`
	TemplateDir string `env:"TEMPLATE_DIR" env-default:"web/templates"`
	StaticDir   string `env:"STATIC_DIR" env-default:"web/static"`
}

// MongoConfig holds the document-store connection settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI" env-default:"mongodb://localhost:27017/salon_db"`
	Database string `env:"MONGO_DATABASE" env-default:"salon_db"`
}

// SessionConfig holds the signing secret and lifetime for session cookies.
type SessionConfig struct {
	Secret string `env:"SESSION_SECRET" env-default:"your_secret_key_change_me_please"`
	TTL    string `env:"SESSION_TTL" env-default:"24h"`
	// BcryptCost is exposed so tests and low-power environments can lower it.
	BcryptCost int `env:"BCRYPT_COST" env-default:"12"`
}

// TTLDuration returns the session lifetime, defaulting to 24 hours when the
// configured value doesn't parse.
func (c *SessionConfig) TTLDuration() time.Duration {
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GoogleConfig holds the OAuth client credentials. When ClientID or
// ClientSecret is empty the /google_login routes are not registered and the
// rest of the app works normally.
type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID" env-default:""`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET" env-default:""`
	CallbackURL  string `env:"GOOGLE_CALLBACK_URL" env-default:""`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: reading environment: %w", err)
	}
	return &cfg, nil
}
