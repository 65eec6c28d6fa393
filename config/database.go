package config

// RedisConfig contains Redis configuration. Redis backs the persistent
// session tier, the remembered-identity store, and the dashboard cache.
type RedisConfig struct {
	URI      string `env:"URI"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD" envDefault:""`
	DB       int    `env:"DB"       envDefault:"0"`
}
