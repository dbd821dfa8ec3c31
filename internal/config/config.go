package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type PaymentConfig struct {
	Env            string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer     `yaml:"http_server"`
	GRPCServer     `yaml:"grpc_server"`
	PaymentDB      `yaml:"payment_db"`
	LogConfig      `yaml:"log_config"`
	MercadoPago    `yaml:"mercado_pago"`
	Notifier       `yaml:"notifier"`
	KafkaService   `yaml:"kafka-service"`
	Webhook        `yaml:"webhook"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"migrations"`
}

type HTTPServer struct {
	Host         string        `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port         string        `yaml:"port" env:"PORT" env-default:"3000"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"45s"`
}

// GRPCServer serves the grpc health protocol. Empty port disables it.
type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT"`
}

type PaymentDB struct {
	Host         string        `yaml:"host" env:"DB_HOST" env-default:"localhost"`
	Port         string        `yaml:"port" env:"DB_PORT" env-default:"5432"`
	User         string        `yaml:"user" env:"DB_USER"`
	Password     string        `yaml:"password" env:"DB_PASSWORD"`
	Name         string        `yaml:"name" env:"DB_NAME"`
	SSLMode      string        `yaml:"ssl_mode" env:"DB_SSL_MODE" env-default:"disable"`
	MaxOpenConns int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	LockTimeout  time.Duration `yaml:"lock_timeout" env:"DB_LOCK_TIMEOUT" env-default:"5s"`
}

func (db PaymentDB) Dsn() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		db.Host, db.Port, db.User, db.Password, db.Name, db.SSLMode)
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"text"`
	LogOutput string `yaml:"log_output" env:"LOG_OUTPUT" env-default:"stdout"`
}

type MercadoPago struct {
	BaseURL     string        `yaml:"base_url" env:"MERCADO_PAGO_BASE_URL" env-default:"https://api.mercadopago.com"`
	AccessToken string        `yaml:"access_token" env:"MERCADO_PAGO_ACCESS_TOKEN"`
	Timeout     time.Duration `yaml:"timeout" env:"MERCADO_PAGO_TIMEOUT" env-default:"5s"`
}

// Notifier selects the customer message driver: log, http or kafka.
type Notifier struct {
	Driver  string        `yaml:"driver" env:"NOTIFIER_DRIVER" env-default:"log"`
	URL     string        `yaml:"url" env:"NOTIFIER_URL"`
	Timeout time.Duration `yaml:"timeout" env:"NOTIFIER_TIMEOUT" env-default:"5s"`
}

type KafkaService struct {
	Host  string `yaml:"host" env:"KAFKA_HOST" env-default:"localhost"`
	Port  string `yaml:"port" env:"KAFKA_PORT" env-default:"9092"`
	Topic string `yaml:"topic" env:"KAFKA_NOTIFICATIONS_TOPIC" env-default:"payment-notifications"`
}

func (k KafkaService) Brokers() []string {
	return []string{fmt.Sprintf("%s:%s", k.Host, k.Port)}
}

// Webhook bounds one notification. The transaction budget covers lock, notifier
// and commit, and runs past a cancelled request; it must exceed Notifier.Timeout.
type Webhook struct {
	ProcessingTimeout  time.Duration `yaml:"processing_timeout" env:"WEBHOOK_PROCESSING_TIMEOUT" env-default:"30s"`
	TransactionTimeout time.Duration `yaml:"transaction_timeout" env:"WEBHOOK_TRANSACTION_TIMEOUT" env-default:"20s"`
}

func MustLoad() *PaymentConfig {
	cfg, err := Load(os.Getenv("PAYMENT_CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v\n", err)
	}
	return cfg
}

// Load reads configPath when given, otherwise the environment alone.
func Load(configPath string) (*PaymentConfig, error) {
	var cfg PaymentConfig

	if configPath == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	} else {
		if _, err := os.Stat(configPath); err != nil {
			return nil, fmt.Errorf("failed to find config file: %w", err)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if cfg.MercadoPago.AccessToken == "" {
		return nil, fmt.Errorf("MERCADO_PAGO_ACCESS_TOKEN is required")
	}
	if cfg.Webhook.TransactionTimeout > 0 && cfg.Notifier.Timeout >= cfg.Webhook.TransactionTimeout {
		return nil, fmt.Errorf("NOTIFIER_TIMEOUT (%s) must be shorter than WEBHOOK_TRANSACTION_TIMEOUT (%s)",
			cfg.Notifier.Timeout, cfg.Webhook.TransactionTimeout)
	}

	return &cfg, nil
}
