// Package config предоставляет структуры и функции для загрузки конфигурации портала
// из YAML-файла, путь к которому задаётся переменной окружения CONFIG_PATH.
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
type Config struct {
	Env                     string          `yaml:"env" env-default:"local"`
	StorageConnectionString string          `yaml:"storage_connection_string"`
	HTTPServer              HTTPServer      `yaml:"http_server"`
	Remote                  Remote          `yaml:"remote"`
	Session                 Session         `yaml:"session"`
	State                   State           `yaml:"state"`
	RedisConnection         RedisConnection `yaml:"redis_connection"`
	RabbitMQ                RabbitMQ        `yaml:"rabbitmq"`
	RateLimit               RateLimit       `yaml:"rate_limit"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	Address     string        `yaml:"address" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Remote настройки клиента удалённого сервиса бронирования.
type Remote struct {
	BaseURL string        `yaml:"base_url" env-required:"true"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`
}

// Session настройки сессионной cookie.
type Session struct {
	SecretKey  string        `yaml:"secret_key" env-required:"true"`
	TTL        time.Duration `yaml:"ttl" env-default:"24h"`
	CookieName string        `yaml:"cookie_name" env-default:"flagship_session"`
	Secure     bool          `yaml:"secure" env-default:"false"`
	LoginPath  string        `yaml:"login_path" env-default:"/login"`
}

// State выбирает хранилище для слотов состояния: redis или postgres.
type State struct {
	Backend string `yaml:"backend" env-default:"redis"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	Address     string        `yaml:"address" env-default:"localhost:6379"`
	Password    string        `yaml:"password"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
}

// RabbitMQ настройки публикации событий уведомлений.
type RabbitMQ struct {
	URL     string        `yaml:"url"`
	Retries int           `yaml:"retries" env-default:"5"`
	Delay   time.Duration `yaml:"delay" env-default:"2s"`
}

// RateLimit ограничивает частоту запросов к эндпоинтам аутентификации.
type RateLimit struct {
	RPS   float64 `yaml:"rps" env-default:"1"`
	Burst int     `yaml:"burst" env-default:"5"`
}

const (
	// StateRedis хранит слоты состояния в redis.
	StateRedis = "redis"
	// StatePostgres хранит слоты состояния в postgres.
	StatePostgres = "postgres"
)

// Load читает конфиг из файла и проверяет значения.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if configPath == "" {
		return nil, fmt.Errorf("%s: config path is empty", op)
	}
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch cfg.State.Backend {
	case StateRedis:
	case StatePostgres:
		if cfg.StorageConnectionString == "" {
			return nil, fmt.Errorf("%s: storage_connection_string is required for postgres state", op)
		}
	default:
		return nil, fmt.Errorf("%s: unknown state backend %q", op, cfg.State.Backend)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Remote:\n"+
			"  BaseURL: %s\n"+
			"  Timeout: %s\n"+
			"Session:\n"+
			"  TTL: %s\n"+
			"  CookieName: %s\n"+
			"State:\n"+
			"  Backend: %s\n"+
			"RedisConnection:\n"+
			"  Address: %s\n"+
			"  DB: %d\n",
		c.Env,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		c.Remote.BaseURL,
		c.Remote.Timeout,
		c.Session.TTL,
		c.Session.CookieName,
		c.State.Backend,
		c.RedisConnection.Address,
		c.RedisConnection.DB,
	)
}
