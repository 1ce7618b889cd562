package handlers

import (
	"errors"
	"net/http"

	"course-go-avito-dispatch/internal/apperr"
	"course-go-avito-dispatch/internal/logx"
)

// DispatchHandler handles HTTP requests for starting dispatches.
type DispatchHandler struct {
	usecase dispatchUsecase
	logger  logx.Logger
}

// NewDispatchHandler creates a new DispatchHandler.
func NewDispatchHandler(logger logx.Logger, uc dispatchUsecase) *DispatchHandler {
	return &DispatchHandler{usecase: uc, logger: logger}
}

// Start handles POST /dispatch.
// @Summary Запустить диспетчеризацию доставки
// @Description Начинает последовательный обзвон доступных райдеров по delivery_id
// @Tags dispatch
// @Accept json
// @Produce json
// @Param request body startDispatchRequest true "Start dispatch payload"
// @Success 202 {object} startDispatchResponse
// @Failure 400 {object} ErrorResponse "invalid input"
// @Failure 404 {object} ErrorResponse "delivery not found"
// @Failure 409 {object} ErrorResponse "already dispatching or assigned"
// @Failure 500 {object} ErrorResponse "internal error"
// @Router /dispatch [post]
func (h *DispatchHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startDispatchRequest
	if ok := decodeJSON(h.logger, w, r, &req); !ok {
		return
	}

	res, err := h.usecase.Dispatch(r.Context(), req.DeliveryID)
	switch {
	case err == nil:
		writeJSON(h.logger, w, r, http.StatusAccepted, dispatchResultToResponse(res))
	case errors.Is(err, apperr.ErrInvalid):
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid input")
	case errors.Is(err, apperr.ErrNotFound):
		writeError(h.logger, w, r, http.StatusNotFound, "delivery not found")
	case errors.Is(err, apperr.ErrConflict):
		writeError(h.logger, w, r, http.StatusConflict, "already dispatching or assigned")
	default:
		writeError(h.logger, w, r, http.StatusInternalServerError, "internal error")
	}
}
