package configs

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"http"`
	DB struct {
		Driver string `mapstructure:"driver"` // sqlite | postgres
		DSN    string `mapstructure:"dsn"`
	} `mapstructure:"db"`
	Session struct {
		Secret string        `mapstructure:"secret"`
		TTL    time.Duration `mapstructure:"ttl"`
	} `mapstructure:"session"`
	Seed bool `mapstructure:"seed"`
}

// Load reads configs/config.yaml, with environment variables taking
// precedence over file values.
func Load() (*Config, error) {
	viper.AddConfigPath("./configs")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()

	viper.SetDefault("http.addr", ":8080")
	viper.SetDefault("db.driver", "sqlite")
	viper.SetDefault("db.dsn", "instance/finantrack.db")
	viper.SetDefault("session.ttl", 24*time.Hour)

	var notFound viper.ConfigFileNotFoundError
	if err := viper.ReadInConfig(); err != nil && !errors.As(err, &notFound) {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		return nil, errors.New("session.secret must be set")
	}
	return &cfg, nil
}
