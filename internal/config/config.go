package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/tugohq/tugo/internal/types"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Auth       AuthConfig       `validate:"required"`
	Redemption RedemptionConfig `validate:"required"`
	Cache      CacheConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type PostgresConfig struct {
	Host                   string
	Port                   int
	User                   string
	Password               string
	DBName                 string
	SSLMode                string
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeMinutes int
}

type AuthConfig struct {
	// Secret signs and verifies the HS256 session tokens issued to
	// dashboard operators.
	Secret string `validate:"required"`
	// TokenExpiry is how long an issued token stays valid.
	TokenExpiry time.Duration
	// OperatorPassword gates dashboard logins. Login is disabled while it
	// is empty.
	OperatorPassword string
}

type RedemptionConfig struct {
	// SubmitTimeout bounds a single credit/redeem submission so a stuck
	// backend cannot hold the operator's request open indefinitely.
	SubmitTimeout time.Duration `validate:"required"`
}

type CacheConfig struct {
	Enabled bool
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tugo")

	v.SetEnvPrefix("TUGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.dbname", "tugo")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.maxopenconns", 25)
	v.SetDefault("postgres.maxidleconns", 5)
	v.SetDefault("postgres.connmaxlifetimeminutes", 60)
	v.SetDefault("auth.tokenexpiry", 24*time.Hour)
	v.SetDefault("redemption.submittimeout", 10*time.Second)
	v.SetDefault("cache.enabled", true)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetLogLevel implements logger.Config
func (c *Configuration) GetLogLevel() types.LogLevel {
	return c.Logging.Level
}

// GetDefaultConfig returns a configuration suitable for tests and local
// scripts without a config file.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Auth: AuthConfig{
			Secret:           "local-dev-secret",
			TokenExpiry:      24 * time.Hour,
			OperatorPassword: "local-dev-password",
		},
		Redemption: RedemptionConfig{SubmitTimeout: 10 * time.Second},
		Cache:      CacheConfig{Enabled: true},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User, c.Password, c.DBName, c.Host, c.Port, c.SSLMode,
	)
}
