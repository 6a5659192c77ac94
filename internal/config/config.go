package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Debug       bool        `yaml:"debug" env:"FYM_DEBUG"`
	AppSecret   string      `yaml:"app_secret" env:"FYM_APP_SECRET" env-required:"true"`
	Limiter     Limiter     `yaml:"limiter"`
	Server      Server      `yaml:"server"`
	Cors        Cors        `yaml:"cors"`
	Omdb        Omdb        `yaml:"omdb"`
	Cache       Cache       `yaml:"cache"`
	Carousel    Carousel    `yaml:"carousel"`
	Suggestions Suggestions `yaml:"suggestions"`
	Storage     Storage     `yaml:"storage"`
	Tasks       Tasks       `yaml:"tasks"`
	SMTPServer  SMTPServer  `yaml:"smtp"`
}

type Limiter struct {
	Enabled bool    `yaml:"enabled"`
	Rps     float64 `yaml:"rps" env-default:"20"`
	Burst   int     `yaml:"burst" env-default:"5"`
}

type Server struct {
	Port string `yaml:"port" env:"FYM_PORT" env-default:"8000"`
	Host string `yaml:"host" env-default:"localhost"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	SessionTTL      time.Duration `yaml:"session_ttl" env-default:"720h"`
}

type Cors struct {
	AllowedOrigins []string `yaml:"allowed_origins" env-default:"http://localhost:5173"`
}

// Omdb configures the metadata provider. APIKey is intentionally optional here:
// a missing key is reported by the client on every call.
type Omdb struct {
	APIKey  string        `yaml:"api_key" env:"FYM_OMDB_API_KEY"`
	BaseURL string        `yaml:"base_url" env-default:"https://www.omdbapi.com/"`
	Timeout time.Duration `yaml:"timeout" env-default:"10s"`

	// EnrichWorkers bounds concurrent detail lookups per page.
	EnrichWorkers int `yaml:"enrich_workers" env-default:"6"`
}

type Cache struct {
	StaleTime time.Duration `yaml:"stale_time" env-default:"5m"`
	GCTime    time.Duration `yaml:"gc_time" env-default:"10m"`
}

type Carousel struct {
	Interval     time.Duration `yaml:"interval" env-default:"6s"`
	MaxImages    int           `yaml:"max_images" env-default:"20"`
	Placeholder  string        `yaml:"placeholder" env-default:"/fym_logo.png"`
	PreloadCount int           `yaml:"preload_count" env-default:"3"`
}

type Suggestions struct {
	Delay time.Duration `yaml:"delay" env-default:"250ms"`
	Limit int           `yaml:"limit" env-default:"6"`
}

type Storage struct {
	Driver   string   `yaml:"driver" env:"FYM_STORAGE_DRIVER" env-default:"badger"`
	Badger   Badger   `yaml:"badger"`
	Postgres Postgres `yaml:"postgres"`
}

type Badger struct {
	Path     string `yaml:"path" env-default:"data/fym"`
	InMemory bool   `yaml:"in_memory"`
}

type Postgres struct {
	Dsn             string        `yaml:"dsn" env:"FYM_DB_DSN"`
	MaxConns        int           `yaml:"max_conns" env-default:"25"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env-default:"10m"`
}

type Tasks struct {
	Workers   int `yaml:"workers" env-default:"4"`
	QueueSize int `yaml:"queue_size" env-default:"100"`
}

type SMTPServer struct {
	Enabled      bool          `yaml:"enabled"`
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port" env-default:"587"`
	Username     string        `yaml:"username"`
	Password     string        `yaml:"password" env:"FYM_SMTP_PASSWORD"`
	Sender       string        `yaml:"sender" env-default:"FYM <no-reply@fym.local>"`
	Timeout      time.Duration `yaml:"timeout" env-default:"5s"`
	RetriesCount int           `yaml:"retries_count" env-default:"3"`
}

// MustLoad reads .env (if present) into the environment and then the YAML
// config at configPath, with environment variables taking precedence.
func MustLoad(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err)
	}
	return cfg
}

func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file %s not found", configPath)
	}
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
