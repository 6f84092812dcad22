package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa.
 * O .env é opcional: em produção as variáveis vêm do ambiente, e o ambiente sempre ganha do arquivo.
 */

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

type Config struct {
	Port          string `mapstructure:"PORT"`
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`

	PostgresHost               string `mapstructure:"POSTGRES_HOST"`
	PostgresPort               int    `mapstructure:"POSTGRES_PORT"`
	PostgresUser               string `mapstructure:"POSTGRES_USER"`
	PostgresPassword           string `mapstructure:"POSTGRES_PASSWORD"`
	PostgresDB                 string `mapstructure:"POSTGRES_DB"`
	PostgresSSLMode            string `mapstructure:"POSTGRES_SSLMODE"`
	PostgresMaxOpenConns       int    `mapstructure:"POSTGRES_MAX_OPEN_CONNS"`
	PostgresMaxIdleConns       int    `mapstructure:"POSTGRES_MAX_IDLE_CONNS"`
	PostgresConnMaxLifeMinutes int    `mapstructure:"POSTGRES_CONN_MAX_LIFE_MINUTES"`
	PostgresAutoMigrate        bool   `mapstructure:"POSTGRES_AUTO_MIGRATE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	LogLevel       string `mapstructure:"LOG_LEVEL"`
	LogJSON        bool   `mapstructure:"LOG_JSON"`
	MetricsEnabled bool   `mapstructure:"METRICS_ENABLED"`
}

var defaults = map[string]any{
	"PORT":                           "8080",
	"STORAGE_DRIVER":                 DriverMemory,
	"POSTGRES_HOST":                  "localhost",
	"POSTGRES_PORT":                  5432,
	"POSTGRES_USER":                  "bookstore",
	"POSTGRES_PASSWORD":              "bookstore",
	"POSTGRES_DB":                    "bookstore",
	"POSTGRES_SSLMODE":               "disable",
	"POSTGRES_MAX_OPEN_CONNS":        25,
	"POSTGRES_MAX_IDLE_CONNS":        5,
	"POSTGRES_CONN_MAX_LIFE_MINUTES": 5,
	"POSTGRES_AUTO_MIGRATE":          true,
	"REDIS_ADDR":                     "localhost:6379",
	"REDIS_PASSWORD":                 "",
	"REDIS_DB":                       0,
	"LOG_LEVEL":                      "info",
	"LOG_JSON":                       true,
	"METRICS_ENABLED":                true,
}

func GetConfig() (*Config, error) {
	return Load(".env")
}

// Load reads envFile into the process environment when it exists, then resolves every key from the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		err := godotenv.Load(envFile)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	var config Config
	err := v.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	config.StorageDriver = strings.ToLower(strings.TrimSpace(config.StorageDriver))
	return &config, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("PORT must be a number, got %q", c.Port)
	}
	switch c.StorageDriver {
	case DriverMemory:
		return nil
	case DriverPostgres:
		return c.ValidatePostgres()
	case DriverRedis:
		return c.ValidateRedis()
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want memory, postgres or redis)", c.StorageDriver)
	}
}

func (c *Config) ValidatePostgres() error {
	if c.PostgresHost == "" {
		return errors.New("POSTGRES_HOST is required")
	}
	if c.PostgresPort <= 0 {
		return fmt.Errorf("POSTGRES_PORT must be positive, got %d", c.PostgresPort)
	}
	if c.PostgresUser == "" {
		return errors.New("POSTGRES_USER is required")
	}
	if c.PostgresDB == "" {
		return errors.New("POSTGRES_DB is required")
	}
	if c.PostgresMaxOpenConns <= 0 {
		return fmt.Errorf("POSTGRES_MAX_OPEN_CONNS must be positive, got %d", c.PostgresMaxOpenConns)
	}
	if c.PostgresMaxIdleConns < 0 || c.PostgresMaxIdleConns > c.PostgresMaxOpenConns {
		return fmt.Errorf("POSTGRES_MAX_IDLE_CONNS must be between 0 and %d, got %d", c.PostgresMaxOpenConns, c.PostgresMaxIdleConns)
	}
	return nil
}

func (c *Config) ValidateRedis() error {
	if c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("REDIS_DB cannot be negative, got %d", c.RedisDB)
	}
	return nil
}

func (c *Config) PostgresConnectionString() string {
	dsn := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:   fmt.Sprintf("%s:%d", c.PostgresHost, c.PostgresPort),
		Path:   "/" + c.PostgresDB,
	}
	q := dsn.Query()
	q.Set("sslmode", c.PostgresSSLMode)
	dsn.RawQuery = q.Encode()
	return dsn.String()
}
