package notifier

import (
	"fmt"
	"log/slog"

	"github.com/LavaJover/shvark-payment-service/internal/config"
	"github.com/LavaJover/shvark-payment-service/internal/domain"
	publisher "github.com/LavaJover/shvark-payment-service/internal/infrastructure/kafka"
)

const (
	DriverLog   = "log"
	DriverHTTP  = "http"
	DriverKafka = "kafka"
)

// New builds the notifier selected by cfg.Driver. pub is only used by the kafka driver.
func New(cfg config.Notifier, kafkaCfg config.KafkaService, pub *publisher.DefaultKafkaPublisher) (domain.Notifier, error) {
	switch cfg.Driver {
	case "", DriverLog:
		return NewLogNotifier(slog.Default()), nil
	case DriverHTTP:
		if cfg.URL == "" {
			return nil, fmt.Errorf("notifier driver %q requires NOTIFIER_URL", cfg.Driver)
		}
		return NewHTTPNotifier(cfg.URL, cfg.Timeout), nil
	case DriverKafka:
		if pub == nil {
			return nil, fmt.Errorf("notifier driver %q requires a kafka publisher", cfg.Driver)
		}
		return NewKafkaNotifier(pub, kafkaCfg.Topic)
	default:
		return nil, fmt.Errorf("unknown notifier driver %q", cfg.Driver)
	}
}
