package configs

// Redis configures event publication. Publishing is disabled while URL is
// empty.
type Redis struct {
	URL     string `env:"URL"`
	Channel string `env:"CHANNEL" envDefault:"events:ledger"`
}
