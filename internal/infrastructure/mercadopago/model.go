package mercadopago

import (
	"encoding/json"
	"time"
)

// paymentResponse is the subset of GET /v1/payments/{id} the service reads.
type paymentResponse struct {
	ID                json.Number `json:"id"`
	Status            string      `json:"status"`
	StatusDetail      string      `json:"status_detail"`
	ExternalReference string      `json:"external_reference"`
	PaymentTypeID     string      `json:"payment_type_id"`
	PaymentMethodID   string      `json:"payment_method_id"`
	DateApproved      *time.Time  `json:"date_approved"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}
