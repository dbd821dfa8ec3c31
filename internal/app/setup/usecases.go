package setup

import (
	"fmt"

	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/mercadopago"
	"github.com/LavaJover/shvark-payment-service/internal/infrastructure/notifier"
	webhookuc "github.com/LavaJover/shvark-payment-service/internal/usecase/webhook"
)

type UseCases struct {
	WebhookUsecase webhookuc.WebhookUsecase
}

func InitializeUseCases(deps *Dependencies) (*UseCases, error) {
	processor, err := mercadopago.NewClientFromConfig(deps.Config.MercadoPago)
	if err != nil {
		return nil, fmt.Errorf("payment processor: %w", err)
	}

	customerNotifier, err := notifier.New(deps.Config.Notifier, deps.Config.KafkaService, deps.Publisher)
	if err != nil {
		return nil, fmt.Errorf("notifier: %w", err)
	}

	webhookUsecase := webhookuc.NewDefaultWebhookUsecase(
		deps.Repositories.TransactionRepo,
		processor,
		customerNotifier,
		deps.Repositories.WebhookEventLogger,
		deps.Metrics,
		webhookuc.Timeouts{
			Lookup:      deps.Config.MercadoPago.Timeout,
			Transaction: deps.Config.Webhook.TransactionTimeout,
			Notify:      deps.Config.Notifier.Timeout,
		},
	)

	return &UseCases{
		WebhookUsecase: webhookUsecase,
	}, nil
}
