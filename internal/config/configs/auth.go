package configs

import "time"

// Auth configures the bearer tokens accepted by the HTTP API.
type Auth struct {
	// JWTSecret signs and verifies HS256 tokens.
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`
	// TokenTTL is the lifetime of tokens issued by the CLI.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
}
