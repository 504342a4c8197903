package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Auth    AuthConfig    `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains HTTP and logging settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
}

// StorageConfig selects and configures the snapshot store.
type StorageConfig struct {
	// Driver is one of memory, file, sqlite, redis.
	Driver string `mapstructure:"driver" validate:"required,oneof=memory file sqlite redis"`
	// Dir is the data directory used by the file driver.
	Dir string `mapstructure:"dir" validate:"required_if=Driver file"`
	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `mapstructure:"sqlite_path" validate:"required_if=Driver sqlite"`
	// RedisAddr is host:port of the redis server.
	RedisAddr      string `mapstructure:"redis_addr" validate:"required_if=Driver redis"`
	RedisKeyPrefix string `mapstructure:"redis_key_prefix"`
	// Watch reloads state when the file driver's directory changes underneath us.
	Watch bool `mapstructure:"watch"`
}

// AuthConfig contains credential and seed settings.
type AuthConfig struct {
	BcryptCost   int  `mapstructure:"bcrypt_cost" validate:"gte=4,lte=31"`
	SeedDemoData bool `mapstructure:"seed_demo_data"`
}
