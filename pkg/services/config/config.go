package config

import (
	"fmt"
	"net"

	"github.com/spf13/viper"
)

// App is the web server configuration. Values come from the environment
// (SERVER_HOST, SERVER_PORT, APP_PASSWORD), optionally seeded from an
// .env file by the entrypoint.
type App struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
}

// Load reads the application configuration. A missing APP_PASSWORD is a
// hard startup error: the tool must never come up ungated.
func Load() (*App, error) {
	v := viper.New()
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("password", "")

	_ = v.BindEnv("host", "SERVER_HOST")
	_ = v.BindEnv("port", "SERVER_PORT")
	_ = v.BindEnv("password", "APP_PASSWORD")

	var cfg App
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse app config: %w", err)
	}
	if cfg.Password == "" {
		return nil, fmt.Errorf("missing APP_PASSWORD: set it before starting the server")
	}
	return &cfg, nil
}

// Addr is the listen address assembled from host and port.
func (c *App) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
