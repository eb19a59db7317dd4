package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"

	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverBadger = "badger"
)

type Config struct {
	Env                    string `env:"APP_ENV" env-default:"local"`
	AppHost                string `env:"APP_HOST" env-default:"127.0.0.1"`
	AppPort                string `env:"APP_PORT" env-default:"8080"`
	StorageDriver          string `env:"STORAGE_DRIVER" env-default:"sqlite"`
	StorageKey             string `env:"STORAGE_KEY" env-default:"todos"`
	DatabaseDSN            string `env:"DATABASE_DSN" env-default:"todos.db"`
	RedisHost              string `env:"REDIS_HOST" env-default:"127.0.0.1"`
	RedisPort              string `env:"REDIS_PORT" env-default:"6379"`
	BadgerPath             string `env:"BADGER_PATH" env-default:"data/badger"`
	RateLimit              int    `env:"RATE_LIMIT_PER_MINUTE" env-default:"120"`
	ShutdownTimeoutSeconds int    `env:"SHUTDOWN_TIMEOUT_SECONDS" env-default:"10"`
}

func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) AppURL() string {
	return fmt.Sprintf("%s:%s", c.AppHost, c.AppPort)
}

func (c Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func (c Config) Validate() error {
	switch c.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("APP_ENV must be one of local, dev, prod (got %q)", c.Env)
	}

	switch c.StorageDriver {
	case DriverSQLite:
		if c.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN must not be empty")
		}
	case DriverRedis:
		if c.RedisHost == "" || c.RedisPort == "" {
			return errors.New("REDIS_HOST and REDIS_PORT must not be empty")
		}
	case DriverBadger:
		if c.BadgerPath == "" {
			return errors.New("BADGER_PATH must not be empty")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of sqlite, redis, badger (got %q)", c.StorageDriver)
	}

	if c.StorageKey == "" {
		return errors.New("STORAGE_KEY must not be empty")
	}
	if c.AppHost == "" || c.AppPort == "" {
		return errors.New("APP_HOST and APP_PORT must not be empty (e.g. 127.0.0.1:8080)")
	}
	if c.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	return nil
}
