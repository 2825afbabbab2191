package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is read once at process start and immutable afterwards. Everything
// the orchestrator and token issuer need is injected from here; nothing
// reads ambient environment later.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	MongoURI     string `env:"DATABASE_URL" envDefault:"mongodb://localhost:27017"`
	DatabaseName string `env:"DATABASE_NAME" envDefault:"authcore"`

	JWTSecret     string        `env:"JWT_SECRET,required"`
	JWTIssuer     string        `env:"JWT_ISSUER" envDefault:"authcore"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"11m"`

	CodeLength int           `env:"VERIFICATION_CODE_LENGTH" envDefault:"6"`
	CodeTTL    time.Duration `env:"VERIFICATION_CODE_TTL" envDefault:"10m"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	ResendAPIKey string `env:"RESEND_API_KEY"`
	EmailFrom    string `env:"EMAIL_FROM"`
	AppBaseURL   string `env:"APP_BASE_URL" envDefault:"http://localhost:8080"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

// Load reads .env if present, then parses the environment. A missing .env
// is not an error; a missing JWT_SECRET is.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
