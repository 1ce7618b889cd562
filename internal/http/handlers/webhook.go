package handlers

import (
	"errors"
	"net/http"
	"strings"

	"course-go-avito-dispatch/internal/apperr"
	"course-go-avito-dispatch/internal/logx"
)

// WebhookHandler handles inbound WhatsApp replies relayed by Twilio.
type WebhookHandler struct {
	usecase dispatchUsecase
	logger  logx.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(logger logx.Logger, uc dispatchUsecase) *WebhookHandler {
	return &WebhookHandler{usecase: uc, logger: logger}
}

// Inbound handles POST /webhook/whatsapp.
// Twilio шлет reply как form-encoded POST; любой исход кроме сбоя сервера
// отвечаем 200, чтобы Twilio не ретраил доставленные сообщения.
// @Summary Входящий ответ райдера
// @Description Принимает WhatsApp-ответ райдера и назначает доставку при согласии
// @Tags webhook
// @Accept x-www-form-urlencoded
// @Produce json
// @Param From formData string true "Sender, e.g. whatsapp:+79990000000"
// @Param Body formData string true "Message text"
// @Success 200 {object} webhookResponse
// @Failure 400 {object} ErrorResponse "malformed form"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /webhook/whatsapp [post]
func (h *WebhookHandler) Inbound(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "malformed form")
		return
	}

	phone := strings.TrimPrefix(strings.TrimSpace(r.PostFormValue("From")), "whatsapp:")
	body := r.PostFormValue("Body")

	if !isAffirmative(body) {
		writeJSON(h.logger, w, r, http.StatusOK, webhookResponse{Status: "ignored"})
		return
	}

	res, err := h.usecase.Accept(r.Context(), phone)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusOK, acceptResultToResponse(res))
	case errors.Is(err, apperr.ErrInvalid), errors.Is(err, apperr.ErrUnresolved):
		// неизвестный или протухший номер - молча игнорируем
		writeJSON(h.logger, w, r, http.StatusOK, webhookResponse{Status: "unresolved"})
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(h.logger, w, r, http.StatusOK, webhookResponse{Status: "taken"})
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

func isAffirmative(body string) bool {
	switch strings.ToLower(strings.TrimSpace(body)) {
	case "yes", "y", "accept", "ok", "1", "да":
		return true
	}
	return false
}
