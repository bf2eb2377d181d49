package config

// AppConfig holds the application configuration
type AppConfig struct {
	DBURL        string
	RedisAddress string
	SymmetricKey string
	Port         string
}

// GetSymmetricKey returns the session-signing key from the config
func (c *AppConfig) GetSymmetricKey() string {
	return c.SymmetricKey
}
