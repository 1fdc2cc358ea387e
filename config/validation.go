package config

import (
	"errors"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var logLevels = []interface{}{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// ValidateConfig checks that the configuration is usable for the selected store
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	return validation.ValidateStruct(cfg,
		validation.Field(&cfg.ServerPort, validation.Required, validation.By(isPort)),
		validation.Field(&cfg.LogLevel, validation.In(logLevels...)),
		validation.Field(&cfg.StoreDriver, validation.Required, validation.In(DriverMongo, DriverPostgres, DriverSQLite)),
		validation.Field(&cfg.MongoURI, validation.When(cfg.StoreDriver == DriverMongo, validation.Required)),
		validation.Field(&cfg.MongoDatabase, validation.When(cfg.StoreDriver == DriverMongo, validation.Required)),
		validation.Field(&cfg.DBHost, validation.When(cfg.StoreDriver == DriverPostgres, validation.Required)),
		validation.Field(&cfg.DBPort, validation.When(cfg.StoreDriver == DriverPostgres, validation.Required, validation.By(isPort))),
		validation.Field(&cfg.DBUser, validation.When(cfg.StoreDriver == DriverPostgres, validation.Required)),
		validation.Field(&cfg.DBName, validation.When(cfg.StoreDriver == DriverPostgres, validation.Required)),
		validation.Field(&cfg.DBPassword, validation.When(cfg.StoreDriver == DriverPostgres && cfg.Env.IsProduction(), validation.Required)),
		validation.Field(&cfg.SQLitePath, validation.When(cfg.StoreDriver == DriverSQLite, validation.Required)),
		validation.Field(&cfg.RedisURL, is.RequestURL),
		validation.Field(&cfg.RateLimitPerMinute, validation.Required, validation.Min(1)),
	)
}

func isPort(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return errors.New("must be a valid port number")
	}
	return nil
}
