package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	SettleImmediate = "immediate"
	SettleDeferred  = "deferred"
)

type Config struct {
	Env         string      `yaml:"env" env:"ENV" env-default:"local"`
	Postgres    Postgres    `yaml:"postgres"`
	Server      Server      `yaml:"server"`
	Redis       Redis       `yaml:"redis"`
	Kafka       Kafka       `yaml:"kafka"`
	Settlement  Settlement  `yaml:"settlement"`
	Reservation Reservation `yaml:"reservation"`
	Cache       Cache       `yaml:"cache"`
}

type Postgres struct {
	Username        string        `env:"POSTGRES_USER" env-required:"true"`
	Password        string        `env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-required:"true"`
	Port            string        `yaml:"port" env:"POSTGRES_PORT" env-default:"5432"`
	Database        string        `yaml:"database" env:"POSTGRES_DB" env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env-default:"1m"`
}

// DSN returns a libpq connection URL.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.Username, p.Password, p.Host, p.Port, p.Database)
}

type Server struct {
	Host    string        `yaml:"host" env-default:"localhost"`
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

// Redis is optional: an empty Addr disables the apartment lock and the listing cache.
type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

// Kafka is optional: no brokers means notifications are dropped.
type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env-default:"booking-notifications"`

	// WriteTimeout bounds every post-commit audit write and publish.
	WriteTimeout time.Duration `yaml:"write_timeout" env-default:"2s"`
}

type Settlement struct {
	Policy        string `yaml:"policy" env:"SETTLEMENT_POLICY" env-default:"immediate"`
	DefaultMethod string `yaml:"default_method" env-default:"CREDIT_CARD"`
}

type Reservation struct {
	RejectOverlaps bool          `yaml:"reject_overlaps" env:"RESERVATION_REJECT_OVERLAPS" env-default:"false"`
	LockTTL        time.Duration `yaml:"lock_ttl" env-default:"10s"`
}

type Cache struct {
	ApartmentsTTL time.Duration `yaml:"apartments_ttl" env-default:"1m"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MustLoad is Load for binaries: it panics on a missing or invalid config.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

func (c *Config) validate() error {
	switch c.Settlement.Policy {
	case SettleImmediate, SettleDeferred:
	default:
		return fmt.Errorf("unknown settlement policy '%s'", c.Settlement.Policy)
	}

	return nil
}
