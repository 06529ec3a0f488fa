package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

const defaultAddr = "0.0.0.0:8080"

// Config holds the service configuration, loadable from environment
// variables (KART_ prefix), flags, or YAML config files.
type Config struct {
	Addr        string `default:"0.0.0.0:8080" usage:"HTTP listen address for the API and health endpoints"`
	DatabaseURL string `usage:"PostgreSQL connection URL (KART_DATABASE_URL or DATABASE_URL)" flag:"database-url"`
	Redis       RedisConfig
	Kafka       KafkaConfig
	Outbox      OutboxConfig
	Graceful    GracefulConfig
}

// RedisConfig controls the shipping method cache. An empty Addr disables it.
type RedisConfig struct {
	Addr string        `usage:"Redis address for the shipping method cache"`
	TTL  time.Duration `default:"5m" usage:"Cache entry lifetime"`
}

// KafkaConfig controls event publishing. Without brokers events stay in the
// outbox table.
type KafkaConfig struct {
	Brokers []string `usage:"Kafka bootstrap brokers"`
}

// OutboxConfig controls the outbox relay.
type OutboxConfig struct {
	Interval     time.Duration `default:"1s" usage:"Relay poll interval"`
	BatchSize    int           `default:"100" usage:"Messages published per batch"`
	BacklogLimit int           `default:"10000" usage:"Pending messages above which readiness fails"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables and YAML files,
// then applies platform defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "KART",
		Files:     []string{"config.yaml", "/etc/kart/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database URL is required: set KART_DATABASE_URL or DATABASE_URL")
	}
	if c.Outbox.BatchSize <= 0 {
		return errors.Errorf("outbox batch size must be positive, got %d", c.Outbox.BatchSize)
	}
	if c.Outbox.Interval <= 0 {
		return errors.Errorf("outbox interval must be positive, got %s", c.Outbox.Interval)
	}
	return nil
}

// applyPlatformDefaults maps platform-provided DATABASE_URL and PORT onto
// the KART_ settings.
func (c *Config) applyPlatformDefaults() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == defaultAddr {
		c.Addr = "0.0.0.0:" + port
	}
	// KART_KAFKA_BROKERS="a,,b" leaves empty entries behind.
	brokers := c.Kafka.Brokers[:0]
	for _, b := range c.Kafka.Brokers {
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	c.Kafka.Brokers = brokers
}
