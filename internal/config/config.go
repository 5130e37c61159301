package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"names_demo/internal/domain"
)

type Config struct {
	HTTPAddr         string
	StoreDriver      string
	SQLiteDSN        string
	MySQLDSN         string
	LockTimeout      time.Duration
	SeedNames        []string
	LogLevel         string
	LogFile          string
	RabbitMQURL      string
	RabbitExchange   string
	RabbitReadyKey   string
	OTELServiceName  string
	OTLPEndpoint     string
	OTLPInsecure     bool
	// TraceSampleRatio is the share of root traces kept, 0..1.
	TraceSampleRatio float64
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:         "127.0.0.1:7878",
		StoreDriver:      "sqlite",
		SQLiteDSN:        ":memory:",
		LockTimeout:      2 * time.Second,
		SeedNames:        domain.DefaultSeedNames(),
		LogLevel:         "info",
		LogFile:          "logs/app.log",
		RabbitExchange:   "names.events",
		RabbitReadyKey:   "store.ready",
		OTELServiceName:  "names-demo",
		OTLPInsecure:     true,
		TraceSampleRatio: 1,
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	} else if port := os.Getenv("PORT"); port != "" {
		cfg.HTTPAddr = ":" + port
	}

	cfg.MySQLDSN = os.Getenv("MYSQL_DSN")
	if cfg.MySQLDSN != "" {
		cfg.StoreDriver = "mysql"
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.StoreDriver = v
	}
	if v := os.Getenv("SQLITE_DSN"); v != "" {
		cfg.SQLiteDSN = v
	}

	if v := os.Getenv("LOCK_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.LockTimeout = time.Duration(n) * time.Millisecond
		}
	}
	if v := os.Getenv("SEED_NAMES"); v != "" {
		cfg.SeedNames = domain.ParseSeedNames(v)
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		cfg.LogFile = v
	}

	cfg.RabbitMQURL = os.Getenv("RABBITMQ_URL")
	if v := os.Getenv("RABBITMQ_EXCHANGE"); v != "" {
		cfg.RabbitExchange = v
	}
	if v := os.Getenv("RABBITMQ_READY_KEY"); v != "" {
		cfg.RabbitReadyKey = v
	}

	if v := os.Getenv("OTEL_SERVICE_NAME"); v != "" {
		cfg.OTELServiceName = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTLPEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.OTLPInsecure = b
		}
	}

	if v := os.Getenv("OTEL_TRACES_SAMPLER_ARG"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.TraceSampleRatio = f
		}
	}

	return cfg
}

// StoreDSN returns the data source name for the selected driver.
func (c *Config) StoreDSN() string {
	if c.StoreDriver == "mysql" {
		return c.MySQLDSN
	}
	return c.SQLiteDSN
}
