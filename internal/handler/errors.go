package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/middleware"
	"github.com/AdrianD28/whatsapp-marketing/internal/service"
)

const (
	errorCodeInsufficientCredits  = "INSUFFICIENT_CREDITS"
	errorCodeDuplicateBatch       = "DUPLICATE_BATCH"
	errorCodeInvalidTransition    = "INVALID_TRANSITION"
	errorCodeCampaignNotFound     = "CAMPAIGN_NOT_FOUND"
	errorCodeReportNotFound       = "REPORT_NOT_FOUND"
	errorCodeValidation           = "VALIDATION_ERROR"
	errorCodeAccountNotConfigured = "ACCOUNT_NOT_CONFIGURED"
)

const (
	errorMessageDuplicateBatch       = "A campaign with this batch id already exists"
	errorMessageCampaignNotFound     = "Campaign not found"
	errorMessageReportNotFound       = "No send log entries for this batch"
	errorMessageAccountNotConfigured = "WhatsApp account is not configured for this tenant"
	errorMessageInvalidBody          = "Request body is not valid JSON"
)

func (h *Handler) sendError(w http.ResponseWriter, r *http.Request, statusCode int, errorCode, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error:     errorCode,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

// handleServiceError maps service errors onto the HTTP error envelope. Anything
// unrecognised is logged and answered with a generic 500.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, op string) {
	var (
		insufficient *service.InsufficientCreditsError
		transition   *service.InvalidTransitionError
		validation   *service.ValidationError
	)

	switch {
	case errors.As(err, &insufficient):
		render.Status(r, http.StatusPaymentRequired)
		render.JSON(w, r, ErrorResponse{
			Error:     errorCodeInsufficientCredits,
			Message:   insufficient.Error(),
			Timestamp: time.Now().UTC(),
			Required:  &insufficient.Required,
			Available: &insufficient.Available,
			Missing:   &insufficient.Missing,
		})
	case errors.As(err, &validation):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, ErrorResponse{
			Error:     errorCodeValidation,
			Message:   validation.Error(),
			Timestamp: time.Now().UTC(),
			Field:     validation.Field,
		})
	case errors.As(err, &transition):
		h.sendError(w, r, http.StatusConflict, errorCodeInvalidTransition, transition.Error())
	case errors.Is(err, service.ErrDuplicateBatch):
		h.sendError(w, r, http.StatusConflict, errorCodeDuplicateBatch, errorMessageDuplicateBatch)
	case errors.Is(err, service.ErrCampaignNotFound):
		h.sendError(w, r, http.StatusNotFound, errorCodeCampaignNotFound, errorMessageCampaignNotFound)
	case errors.Is(err, service.ErrReportNotFound):
		h.sendError(w, r, http.StatusNotFound, errorCodeReportNotFound, errorMessageReportNotFound)
	case errors.Is(err, service.ErrAccountNotConfigured):
		h.sendError(w, r, http.StatusUnprocessableEntity, errorCodeAccountNotConfigured, errorMessageAccountNotConfigured)
	default:
		h.logger.Error("Request failed",
			zap.String("operation", op),
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("tenant_id", middleware.GetTenantID(r.Context())),
			zap.Error(err))
		h.sendError(w, r, http.StatusInternalServerError, middleware.ErrorCodeInternal, middleware.ErrorMessageInternal)
	}
}

func (h *Handler) sendBindError(w http.ResponseWriter, r *http.Request, param string, err error) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, ErrorResponse{
		Error:     errorCodeValidation,
		Message:   err.Error(),
		Timestamp: time.Now().UTC(),
		Field:     param,
	})
}
