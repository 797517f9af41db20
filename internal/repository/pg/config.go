package pg

import (
	"fmt"
	"time"
)

type Config struct {
	User            string        `yaml:"user"`
	Pwd             string        `yaml:"pwd"`
	Server          string        `yaml:"server"`
	DBName          string        `yaml:"db_name"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	ApplySchema     bool          `yaml:"apply_schema"`
}

func (c *Config) dsn() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s", c.User, c.Pwd, c.Server, c.DBName, sslMode)
}
