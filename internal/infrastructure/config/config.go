package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/JBB13/credit-risk-model/pkg/kafka"
	"github.com/JBB13/credit-risk-model/pkg/money"
)

// Config holds all configuration for the credit risk service.
type Config struct {
	DefaultLGDPercent decimal.Decimal
	DefaultEAD        decimal.Decimal

	GRPCPort    string
	HTTPPort    string
	Environment string
	LogLevel    string
	LogFormat   string

	ModelPath  string
	ScalerPath string
	Currency   string

	KafkaEventsTopic   string
	KafkaRequestTopic  string
	KafkaConsumerGroup string
	KafkaSASLMechanism string
	KafkaSASLUsername  string
	KafkaSASLPassword  string

	OTLPEndpoint    string
	GRPCTLSCertFile string
	GRPCTLSKeyFile  string

	KafkaBrokers []string

	HTTPRateLimit int

	KafkaTLS       bool
	KafkaSASL      bool
	TracingEnabled bool
	GRPCReflection bool
}

var defaults = map[string]any{
	"GRPC_PORT":                   "8090",
	"HTTP_PORT":                   "9090",
	"HTTP_RATE_LIMIT":             100,
	"ENVIRONMENT":                 "development",
	"LOG_LEVEL":                   "info",
	"LOG_FORMAT":                  "json",
	"MODEL_PATH":                  "artifacts/model.json",
	"SCALER_PATH":                 "artifacts/scaler.json",
	"DEFAULT_LGD_PCT":             "60",
	"DEFAULT_EAD":                 "10000",
	"CURRENCY":                    "USD",
	"KAFKA_BROKERS":               "",
	"KAFKA_EVENTS_TOPIC":          "credit-risk.events",
	"KAFKA_REQUEST_TOPIC":         "",
	"KAFKA_CONSUMER_GROUP":        "credit-risk-service",
	"KAFKA_TLS":                   false,
	"KAFKA_SASL_ENABLED":          false,
	"KAFKA_SASL_MECHANISM":        "PLAIN",
	"KAFKA_SASL_USERNAME":         "",
	"KAFKA_SASL_PASSWORD":         "",
	"TRACING_ENABLED":             false,
	"OTEL_EXPORTER_OTLP_ENDPOINT": "localhost:4317",
	"GRPC_TLS_CERT_FILE":          "",
	"GRPC_TLS_KEY_FILE":           "",
	"GRPC_REFLECTION":             false,
	"CONFIG_FILE":                 "",
}

// Load reads configuration from an optional .env file, an optional YAML file
// named by CONFIG_FILE and environment variables, in increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	lgd, err := decimal.NewFromString(v.GetString("DEFAULT_LGD_PCT"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_LGD_PCT: %w", err)
	}
	ead, err := decimal.NewFromString(v.GetString("DEFAULT_EAD"))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_EAD: %w", err)
	}

	cfg := &Config{
		GRPCPort:           v.GetString("GRPC_PORT"),
		HTTPPort:           v.GetString("HTTP_PORT"),
		HTTPRateLimit:      v.GetInt("HTTP_RATE_LIMIT"),
		Environment:        v.GetString("ENVIRONMENT"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		ModelPath:          v.GetString("MODEL_PATH"),
		ScalerPath:         v.GetString("SCALER_PATH"),
		DefaultLGDPercent:  lgd,
		DefaultEAD:         ead,
		Currency:           v.GetString("CURRENCY"),
		KafkaBrokers:       splitList(v.GetString("KAFKA_BROKERS")),
		KafkaEventsTopic:   v.GetString("KAFKA_EVENTS_TOPIC"),
		KafkaRequestTopic:  v.GetString("KAFKA_REQUEST_TOPIC"),
		KafkaConsumerGroup: v.GetString("KAFKA_CONSUMER_GROUP"),
		KafkaTLS:           v.GetBool("KAFKA_TLS"),
		KafkaSASL:          v.GetBool("KAFKA_SASL_ENABLED"),
		KafkaSASLMechanism: v.GetString("KAFKA_SASL_MECHANISM"),
		KafkaSASLUsername:  v.GetString("KAFKA_SASL_USERNAME"),
		KafkaSASLPassword:  v.GetString("KAFKA_SASL_PASSWORD"),
		TracingEnabled:     v.GetBool("TRACING_ENABLED"),
		OTLPEndpoint:       v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
		GRPCTLSCertFile:    v.GetString("GRPC_TLS_CERT_FILE"),
		GRPCTLSKeyFile:     v.GetString("GRPC_TLS_KEY_FILE"),
		GRPCReflection:     v.GetBool("GRPC_REFLECTION"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DefaultLGDPercent.IsNegative() || c.DefaultLGDPercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("DEFAULT_LGD_PCT must be between 0 and 100, got %s", c.DefaultLGDPercent)
	}
	if c.DefaultEAD.IsNegative() {
		return fmt.Errorf("DEFAULT_EAD must not be negative, got %s", c.DefaultEAD)
	}
	cur, err := money.NewCurrency(c.Currency)
	if err != nil {
		return fmt.Errorf("CURRENCY: %w", err)
	}
	c.Currency = cur.Code()
	if c.HTTPRateLimit < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT must not be negative, got %d", c.HTTPRateLimit)
	}
	if (c.GRPCTLSCertFile == "") != (c.GRPCTLSKeyFile == "") {
		return errors.New("GRPC_TLS_CERT_FILE and GRPC_TLS_KEY_FILE must be set together")
	}
	return nil
}

// GRPCAddress returns the full gRPC listen address.
func (c *Config) GRPCAddress() string {
	return fmt.Sprintf(":%s", c.GRPCPort)
}

// HTTPAddress returns the full HTTP listen address.
func (c *Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.HTTPPort)
}

// CurrencyCode returns the validated default currency.
func (c *Config) CurrencyCode() money.Currency {
	return money.MustCurrency(c.Currency)
}

// Kafka returns the broker connection settings.
func (c *Config) Kafka() kafka.Config {
	return kafka.Config{
		Brokers:       c.KafkaBrokers,
		ConsumerGroup: c.KafkaConsumerGroup,
		TLS:           c.KafkaTLS,
		SASLEnabled:   c.KafkaSASL,
		SASLMechanism: c.KafkaSASLMechanism,
		SASLUsername:  c.KafkaSASLUsername,
		SASLPassword:  c.KafkaSASLPassword,
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
