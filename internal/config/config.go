// Package config loads the tracker's settings: defaults, then an optional
// TOML file, then a .env file, then the process environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Duration is a time.Duration that unmarshals from TOML strings like "30m".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Config struct {
	HTTP     HTTP     `toml:"http"`
	GRPC     GRPC     `toml:"grpc"`
	Database Database `toml:"database"`
	RabbitMQ RabbitMQ `toml:"rabbitmq"`
	Log      Log      `toml:"log"`
}

type HTTP struct {
	Port            string   `toml:"port"`
	AllowedOrigins  []string `toml:"allowed_origins"`
	ShutdownTimeout Duration `toml:"shutdown_timeout"`
	AccessLog       bool     `toml:"access_log"`
}

type GRPC struct {
	Enabled bool   `toml:"enabled"`
	Port    string `toml:"port"`
}

type Database struct {
	Host            string   `toml:"host"`
	Port            string   `toml:"port"`
	User            string   `toml:"user"`
	Password        string   `toml:"password"`
	Name            string   `toml:"name"`
	SSLMode         string   `toml:"sslmode"`
	MaxConns        int32    `toml:"max_conns"`
	MinConns        int32    `toml:"min_conns"`
	MaxConnLifetime Duration `toml:"max_conn_lifetime"`
	MaxConnIdleTime Duration `toml:"max_conn_idle_time"`
	AutoMigrate     bool     `toml:"auto_migrate"`
}

// URL renders the postgres connection string.
func (d Database) URL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     d.Host + ":" + d.Port,
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}

type RabbitMQ struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Queue    string `toml:"queue"`
}

func (r RabbitMQ) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(r.User, r.Password),
		Host:   r.Host + ":" + r.Port,
		Path:   "/",
	}
	return u.String()
}

type Log struct {
	Level string `toml:"level"`
	// Format is "json" or "text".
	Format string `toml:"format"`
}

func Default() *Config {
	return &Config{
		HTTP: HTTP{
			Port:            "5000",
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: Duration{10 * time.Second},
			AccessLog:       true,
		},
		GRPC: GRPC{
			Enabled: true,
			Port:    "9090",
		},
		Database: Database{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Name:            "employee_tracker",
			SSLMode:         "disable",
			MaxConns:        20,
			MinConns:        2,
			MaxConnLifetime: Duration{time.Hour},
			MaxConnIdleTime: Duration{30 * time.Minute},
			AutoMigrate:     true,
		},
		RabbitMQ: RabbitMQ{
			Enabled:  false,
			Host:     "localhost",
			Port:     "5672",
			User:     "guest",
			Password: "guest",
			Queue:    "task_audit_logs",
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration. path may be empty; a missing .env is ignored.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	// .env не обязателен, переменные окружения процесса важнее
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	boolean := func(key string, dst *bool) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
		return nil
	}

	str("PORT", &c.HTTP.Port)
	str("HTTP_PORT", &c.HTTP.Port)
	str("GRPC_PORT", &c.GRPC.Port)
	str("DB_HOST", &c.Database.Host)
	str("DB_PORT", &c.Database.Port)
	str("DB_USER", &c.Database.User)
	str("DB_PASSWORD", &c.Database.Password)
	str("DB_NAME", &c.Database.Name)
	str("DB_SSLMODE", &c.Database.SSLMode)
	str("RABBITMQ_HOST", &c.RabbitMQ.Host)
	str("RABBITMQ_PORT", &c.RabbitMQ.Port)
	str("RABBITMQ_USER", &c.RabbitMQ.User)
	str("RABBITMQ_PASSWORD", &c.RabbitMQ.Password)
	str("RABBITMQ_QUEUE", &c.RabbitMQ.Queue)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.HTTP.AllowedOrigins = origins
	}

	for key, dst := range map[string]*bool{
		"AUDIT_ENABLED":   &c.RabbitMQ.Enabled,
		"GRPC_ENABLED":    &c.GRPC.Enabled,
		"DB_AUTO_MIGRATE": &c.Database.AutoMigrate,
		"HTTP_ACCESS_LOG": &c.HTTP.AccessLog,
	} {
		if err := boolean(key, dst); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) Validate() error {
	var problems []string
	if c.Database.Host == "" {
		problems = append(problems, "database host is required")
	}
	if c.Database.Name == "" {
		problems = append(problems, "database name is required")
	}
	if c.Database.User == "" {
		problems = append(problems, "database user is required")
	}
	if c.Database.MaxConns < 1 || c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		problems = append(problems, fmt.Sprintf("invalid pool size min=%d max=%d", c.Database.MinConns, c.Database.MaxConns))
	}
	if _, err := strconv.Atoi(c.HTTP.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid http port %q", c.HTTP.Port))
	}
	if c.GRPC.Enabled {
		if _, err := strconv.Atoi(c.GRPC.Port); err != nil {
			problems = append(problems, fmt.Sprintf("invalid grpc port %q", c.GRPC.Port))
		}
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.Queue == "" {
		problems = append(problems, "rabbitmq queue is required when audit is enabled")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		problems = append(problems, fmt.Sprintf("unknown log format %q", c.Log.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
