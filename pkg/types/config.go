package types

import "errors"

// Config holds backend selection and parameters for kv.Open.
type Config struct {
	Backend     string `json:"backend" yaml:"backend"`
	DataDir     string `json:"data_dir" yaml:"data_dir"`
	DSN         string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	RedisAddr   string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisPrefix string `json:"redis_prefix,omitempty" yaml:"redis_prefix,omitempty"`
}

// Supported backend names.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDSNEmpty       = errors.New("postgres backend requires a dsn")
	ErrRedisAddrEmpty = errors.New("redis backend requires redis_addr")
)

// knownBackends lists the backends that Validate accepts.
var knownBackends = map[string]bool{
	BackendMemory:   true,
	BackendFile:     true,
	BackendSQLite:   true,
	BackendPostgres: true,
	BackendRedis:    true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	switch c.Backend {
	case BackendPostgres:
		if c.DSN == "" {
			return ErrDSNEmpty
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return ErrRedisAddrEmpty
		}
	}
	return nil
}
