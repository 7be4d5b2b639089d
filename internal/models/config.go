package models

import "time"

// Config represents the application configuration
type Config struct {
	Storage  StorageConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Accounts AccountsConfig
	Sessions SessionsConfig
}

const (
	BackendSqlite = "sqlite"
	BackendRedis  = "redis"
)

// StorageConfig selects the key-value backend
type StorageConfig struct {
	Backend string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	KeyPrefix   string
	PingTimeout time.Duration
}

// AccountsConfig holds account manager settings
type AccountsConfig struct {
	SessionTTL    time.Duration
	AdminId       string
	AdminEmail    string
	AdminPassword string
	SeedFile      string
	SeedAdmin     bool
}

// SessionsConfig holds session sweeper settings
type SessionsConfig struct {
	PollingInterval time.Duration
}
