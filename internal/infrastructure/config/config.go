package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=168h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Mongo MongoConfig
	Redis RedisConfig
	Web   WebConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=course_platform"`
}

// RedisConfig is optional: an empty Addr disables the revocation denylist
// and the system stays fully stateless for session purposes.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// WebConfig configures the presentation-tier server. The signing secret is
// deliberately absent: the web tier delegates all token verification to the
// backend and never holds the secret.
type WebConfig struct {
	Port       string `env:"WEB_PORT,     default=3000"`
	APIBaseURL string `env:"API_BASE_URL, default=http://localhost:8080"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// SecureCookies reports whether the session cookie should carry the Secure
// attribute. Only plain-HTTP local development goes without it.
func (c *Config) SecureCookies() bool {
	return c.Env != "development"
}
