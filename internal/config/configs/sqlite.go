package configs

// SQLite configures the embedded SQLite store.
type SQLite struct {
	Path string `env:"PATH" envDefault:"crowdfunding.db"`
	// RunMigrations controls whether migrations run on startup.
	RunMigrations bool `env:"RUN_MIGRATIONS" envDefault:"true"`
}
