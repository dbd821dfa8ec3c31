package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	webhookuc "github.com/LavaJover/shvark-payment-service/internal/usecase/webhook"
	"github.com/go-chi/chi/v5/middleware"
)

type WebhookHandler struct {
	usecase           webhookuc.WebhookUsecase
	processingTimeout time.Duration
}

func NewWebhookHandler(usecase webhookuc.WebhookUsecase, processingTimeout time.Duration) *WebhookHandler {
	return &WebhookHandler{
		usecase:           usecase,
		processingTimeout: processingTimeout,
	}
}

// HandlePaymentWebhook serves POST /api/pagamento/webhook?topic=payment&id=<payment id>.
func (h *WebhookHandler) HandlePaymentWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.processingTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.processingTimeout)
		defer cancel()
	}

	query := r.URL.Query()
	notification := domain.Notification{
		Topic:     query.Get("topic"),
		PaymentID: query.Get("id"),
		RequestID: middleware.GetReqID(r.Context()),
	}

	_, err := h.usecase.HandleNotification(ctx, notification)
	status, body := webhookResponse(err)
	writeText(w, status, body)
}

func webhookResponse(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, "Webhook processado com sucesso."
	case errors.Is(err, domain.ErrInvalidTopic):
		return http.StatusBadRequest, "Tópico inválido"
	case errors.Is(err, domain.ErrMissingPaymentID):
		return http.StatusBadRequest, "ID do pagamento ausente"
	case errors.Is(err, domain.ErrMissingExternalReference):
		return http.StatusBadRequest, "Referência externa ausente"
	case errors.Is(err, domain.ErrTransactionNotFound):
		return http.StatusNotFound, "Transação não encontrada no DB."
	case domain.IsUpstreamError(err):
		return http.StatusBadGateway, "Falha ao consultar o pagamento no processador"
	default:
		return http.StatusInternalServerError, "Erro interno do servidor"
	}
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
