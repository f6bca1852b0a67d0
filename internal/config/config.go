package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/maxviazov/cricket-scoring-service/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
	Storage  StorageConfig       `mapstructure:"storage"`
	Postgres PostgresConfig      `mapstructure:"postgres"`
	Engine   EngineConfig        `mapstructure:"engine"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
	Env     string `mapstructure:"env"`
	Port    int    `mapstructure:"port" validate:"gte=1,lte=65535"`
}

// StorageConfig selects the delivery journal backend.
type StorageConfig struct {
	Driver     string `mapstructure:"driver" validate:"oneof=sqlite postgres"`
	SQLitePath string `mapstructure:"sqlite_path"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	Port              int    `mapstructure:"port"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	DBName            string `mapstructure:"db"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod int    `mapstructure:"health_check_period"`
}

// EngineConfig holds match defaults used by the CLI and the service.
type EngineConfig struct {
	DefaultFormat  string `mapstructure:"default_format" validate:"oneof=T20 ODI TEST"`
	CommentaryKeep int    `mapstructure:"commentary_keep" validate:"gte=0"`
}

// Validate checks the loaded values. The logger section validates itself in logger.New.
func (c *Config) Validate() error {
	v := validator.New()
	for name, section := range map[string]any{"app": c.App, "storage": c.Storage, "engine": c.Engine} {
		if err := v.Struct(section); err != nil {
			return fmt.Errorf("%s config validation error: %w", name, err)
		}
	}
	if c.Storage.Driver == "postgres" && (c.Postgres.Host == "" || c.Postgres.DBName == "") {
		return fmt.Errorf("postgres config validation error: host and db are required")
	}
	return nil
}
