package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   processor keys, etc.), security settings
// - default: Values common across all environments (timeouts, TTLs, batch
//   sizes, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Redis  RedisConfig
	MQ     MQConfig
	Stripe StripeConfig
	Lock   LockConfig
	Queue  QueueConfig
	Reaper ReaperConfig
	CORS   CORSConfig
	Log    LogConfig
	JWT    JWTConfig
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
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type MQConfig struct {
	URL      string `envconfig:"MQ_URL" default:""`
	Exchange string `envconfig:"MQ_EXCHANGE" default:"booking.events"`
}

type StripeConfig struct {
	SecretKey     string `envconfig:"STRIPE_SECRET_KEY" required:"true"`
	WebhookSecret string `envconfig:"STRIPE_WEBHOOK_SECRET" required:"true"`
}

// Lock is a throughput optimization in front of the atomic slot update;
// Enabled=false degrades to lock-less operation without losing correctness.
type LockConfig struct {
	Enabled bool          `envconfig:"SLOT_LOCK_ENABLED" default:"true"`
	TTL     time.Duration `envconfig:"SLOT_LOCK_TTL" default:"30s"`
}

type QueueConfig struct {
	Enabled          bool   `envconfig:"QUEUE_ENABLED" default:"false"`
	Key              string `envconfig:"QUEUE_KEY" default:"payment:events"`
	DefaultBatchSize int    `envconfig:"QUEUE_DEFAULT_BATCH_SIZE" default:"50"`
}

type ReaperConfig struct {
	Interval  time.Duration `envconfig:"REAPER_INTERVAL" default:"1m"`
	BatchSize int           `envconfig:"REAPER_BATCH_SIZE" default:"100"`
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
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string `envconfig:"JWT_SECRET" required:"true"`
	Duration string `envconfig:"JWT_DURATION" default:"24h"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
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
		},
		Lock: LockConfig{
			Enabled: false,
			TTL:     30 * time.Second,
		},
		Queue: QueueConfig{
			Enabled:          false,
			Key:              "payment:events:test",
			DefaultBatchSize: 10,
		},
		Reaper: ReaperConfig{
			Interval:  time.Minute,
			BatchSize: 100,
		},
		Log: LogConfig{
			Level:      "error", // Error level only for tests
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-jwt-secret",
			Duration: "1h",
		},
	}
}
