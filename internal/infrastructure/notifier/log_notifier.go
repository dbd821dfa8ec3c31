package notifier

import (
	"context"
	"log/slog"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

// LogNotifier only logs the message. Used until a delivery provider is wired.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(ctx context.Context, email, name string, status domain.PaymentStatus) error {
	msg := BuildMessage(email, name, status)

	switch status {
	case domain.StatusApproved:
		n.logger.InfoContext(ctx, "sending approval confirmation", "name", name, "email", email, "subject", msg.Subject)
	case domain.StatusRejected:
		n.logger.WarnContext(ctx, "sending rejection notice", "name", name, "email", email, "subject", msg.Subject)
	default:
		n.logger.InfoContext(ctx, "sending payment update", "name", name, "email", email, "status", status.String())
	}
	return nil
}
