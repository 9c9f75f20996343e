package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, provider keys)
// - default: Values common across all environments (timeouts, pool sizes, chunk sizes)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	Batch    BatchConfig
	Provider ProviderConfig
	Mail     MailConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"UTC"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"0"`
}

// BatchConfig drives the scheduled price-check and deal-ingestion runs.
// An empty CronSecret disables trigger authorization; acceptable for local
// development only.
type BatchConfig struct {
	CronSecret string        `envconfig:"CRON_SECRET" default:""`
	RunTimeout time.Duration `envconfig:"BATCH_RUN_TIMEOUT" default:"5m"`
	Workers    int           `envconfig:"BATCH_WORKERS" default:"8"`
	ChunkSize  int           `envconfig:"NOTIFY_CHUNK_SIZE" default:"100"`
	MaxRetries int           `envconfig:"NOTIFY_MAX_RETRIES" default:"3"`
	Routes     []string      `envconfig:"BATCH_ROUTES" default:"JFK-LHR,LAX-NRT,SFO-CDG,ORD-FCO,MIA-MAD"`
}

type ProviderConfig struct {
	BaseURL     string        `envconfig:"PROVIDER_BASE_URL" required:"true"`
	APIKey      string        `envconfig:"PROVIDER_API_KEY" required:"true"`
	CallTimeout time.Duration `envconfig:"PROVIDER_CALL_TIMEOUT" default:"12s"`
	RatePerSec  float64       `envconfig:"PROVIDER_RATE_PER_SEC" default:"5"`
	ResultLimit int           `envconfig:"PROVIDER_RESULT_LIMIT" default:"20"`
}

type MailConfig struct {
	BaseURL     string        `envconfig:"MAIL_BASE_URL" required:"true"`
	APIKey      string        `envconfig:"MAIL_API_KEY" required:"true"`
	FromAddress string        `envconfig:"MAIL_FROM" default:"deals@farewatch.app"`
	CallTimeout time.Duration `envconfig:"MAIL_CALL_TIMEOUT" default:"10s"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "UTC",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 0,
		},
		Batch: BatchConfig{
			CronSecret: "test-secret",
			RunTimeout: time.Minute,
			Workers:    4,
			ChunkSize:  100,
			MaxRetries: 2,
			Routes:     []string{"JFK-LHR", "LAX-NRT"},
		},
		Provider: ProviderConfig{
			BaseURL:     "http://localhost:18080",
			APIKey:      "test-key",
			CallTimeout: 2 * time.Second,
			RatePerSec:  100,
			ResultLimit: 20,
		},
		Mail: MailConfig{
			BaseURL:     "http://localhost:18081",
			APIKey:      "test-key",
			FromAddress: "test@farewatch.app",
			CallTimeout: 2 * time.Second,
		},
	}
}
