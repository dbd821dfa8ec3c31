package handlers

import "net/http"

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, "API de Pagamento e Webhook está rodando.")
}
