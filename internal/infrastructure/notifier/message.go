package notifier

import (
	"fmt"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
)

// Message is the customer-facing text for a payment status.
type Message struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func BuildMessage(email, name string, status domain.PaymentStatus) Message {
	msg := Message{
		Email:  email,
		Name:   name,
		Status: status.String(),
	}

	switch status {
	case domain.StatusApproved:
		msg.Subject = "Pagamento aprovado"
		msg.Body = fmt.Sprintf("Olá %s, seu pagamento foi aprovado. Obrigado pela compra!", name)
	case domain.StatusRejected:
		msg.Subject = "Pagamento recusado"
		msg.Body = fmt.Sprintf("Olá %s, seu pagamento foi recusado. Tente novamente com outro meio de pagamento.", name)
	default:
		msg.Subject = "Atualização do pagamento"
		msg.Body = fmt.Sprintf("Olá %s, o status do seu pagamento agora é %s.", name, status)
	}

	return msg
}
