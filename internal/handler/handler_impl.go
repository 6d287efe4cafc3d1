// Package handler provides HTTP request handlers for the application.
package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/middleware"
	"github.com/AdrianD28/whatsapp-marketing/internal/models"
	"github.com/AdrianD28/whatsapp-marketing/internal/service"
	"github.com/AdrianD28/whatsapp-marketing/internal/whatsapp"
)

// maxWebhookBody bounds a single provider notification.
const maxWebhookBody = 1 << 20

const (
	accountStatusConfigured = "configured"
	webhookStatusReceived   = "received"
)

type Handler struct {
	service *service.Service
	logger  *zap.Logger
}

func NewHandler(service *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// CreateCampaign admits a campaign for the requesting tenant.
func (h *Handler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var body CreateCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, errorMessageInvalidBody)
		return
	}

	campaign, err := h.service.Campaign.Create(r.Context(), middleware.GetTenantID(r.Context()), &service.CreateCampaignRequest{
		Name:         body.Name,
		BatchID:      body.BatchID,
		Contacts:     body.Contacts,
		Template:     body.Template,
		DelaySeconds: body.DelaySeconds,
	})
	if err != nil {
		h.handleServiceError(w, r, err, "create_campaign")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, CreateCampaignResponse{
		CampaignID:    campaign.ID,
		BatchID:       campaign.BatchID,
		Status:        campaign.Status,
		ContactsCount: campaign.ContactsCount,
	})
}

func (h *Handler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	var params ListCampaignsParams
	if err := runtime.BindQueryParameter("form", true, false, "status", r.URL.Query(), &params.Status); err != nil {
		h.sendBindError(w, r, "status", err)
		return
	}

	var status *models.CampaignStatus
	if params.Status != nil && *params.Status != "" {
		s := models.CampaignStatus(*params.Status)
		status = &s
	}

	campaigns, err := h.service.Campaign.List(r.Context(), middleware.GetTenantID(r.Context()), status)
	if err != nil {
		h.handleServiceError(w, r, err, "list_campaigns")
		return
	}

	render.JSON(w, r, CampaignListResponse{
		Campaigns: campaigns,
		Total:     len(campaigns),
	})
}

func (h *Handler) GetCampaign(w http.ResponseWriter, r *http.Request) {
	campaignID, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	detail, err := h.service.Campaign.Get(r.Context(), middleware.GetTenantID(r.Context()), campaignID)
	if err != nil {
		h.handleServiceError(w, r, err, "get_campaign")
		return
	}

	render.JSON(w, r, detail)
}

func (h *Handler) PauseCampaign(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "pause_campaign", h.service.Campaign.Pause)
}

func (h *Handler) ResumeCampaign(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "resume_campaign", h.service.Campaign.Resume)
}

func (h *Handler) CancelCampaign(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "cancel_campaign", h.service.Campaign.Cancel)
}

type transitionFunc func(ctx context.Context, tenantID, campaignID string) (*models.Campaign, error)

func (h *Handler) transition(w http.ResponseWriter, r *http.Request, op string, apply transitionFunc) {
	campaignID, ok := h.campaignID(w, r)
	if !ok {
		return
	}

	campaign, err := apply(r.Context(), middleware.GetTenantID(r.Context()), campaignID)
	if err != nil {
		h.handleServiceError(w, r, err, op)
		return
	}

	render.JSON(w, r, campaign)
}

func (h *Handler) campaignID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var campaignID string
	err := runtime.BindStyledParameterWithLocation("simple", false, "campaignID",
		runtime.ParamLocationPath, chi.URLParam(r, "campaignID"), &campaignID)
	if err != nil || campaignID == "" {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "campaignID path parameter is required")
		return "", false
	}
	return campaignID, true
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	var params ListReportsParams
	query := r.URL.Query()

	if err := runtime.BindQueryParameter("form", true, false, "from", query, &params.From); err != nil {
		h.sendBindError(w, r, "from", err)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", query, &params.To); err != nil {
		h.sendBindError(w, r, "to", err)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &params.Page); err != nil {
		h.sendBindError(w, r, "page", err)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", query, &params.Limit); err != nil {
		h.sendBindError(w, r, "limit", err)
		return
	}

	page, limit := 1, 0
	if params.Page != nil {
		page = *params.Page
	}
	if params.Limit != nil {
		limit = *params.Limit
	}

	result, err := h.service.Report.List(r.Context(), middleware.GetTenantID(r.Context()),
		models.ReportFilter{From: params.From, To: params.To}, page, limit)
	if err != nil {
		h.handleServiceError(w, r, err, "list_reports")
		return
	}

	render.JSON(w, r, result)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	var batchID string
	err := runtime.BindStyledParameterWithLocation("simple", false, "batchID",
		runtime.ParamLocationPath, chi.URLParam(r, "batchID"), &batchID)
	if err != nil || batchID == "" {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "batchID path parameter is required")
		return
	}

	report, err := h.service.Report.Summarize(r.Context(), middleware.GetTenantID(r.Context()), batchID)
	if err != nil {
		h.handleServiceError(w, r, err, "get_report")
		return
	}

	render.JSON(w, r, report)
}

func (h *Handler) GetCredits(w http.ResponseWriter, r *http.Request) {
	tenantID := middleware.GetTenantID(r.Context())

	balance, err := h.service.Credit.Balance(r.Context(), tenantID)
	if err != nil {
		h.handleServiceError(w, r, err, "get_credits")
		return
	}

	render.JSON(w, r, CreditBalanceResponse{TenantID: tenantID, Balance: balance})
}

// VerifyWebhook answers the provider's subscription handshake with the raw challenge.
func (h *Handler) VerifyWebhook(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	params := VerifyWebhookParams{
		Mode:        query.Get("hub.mode"),
		VerifyToken: query.Get("hub.verify_token"),
		Challenge:   query.Get("hub.challenge"),
	}

	challenge, ok := h.service.Reconciler.VerifySubscription(params.Mode, params.VerifyToken, params.Challenge)
	if !ok {
		h.logger.Warn("Webhook verification rejected",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.String("mode", params.Mode))
		h.sendError(w, r, http.StatusForbidden, middleware.ErrorCodeUnauthorized, "Webhook verification failed")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, challenge)
}

// ReceiveWebhook always acknowledges; unprocessable events are dropped by the reconciler.
func (h *Handler) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		h.logger.Warn("Failed to read webhook body",
			zap.String("request_id", middleware.GetRequestID(r.Context())),
			zap.Error(err))
		render.JSON(w, r, WebhookAck{Status: webhookStatusReceived})
		return
	}

	result := h.service.Reconciler.HandleWebhook(r.Context(), body, r.Header.Get(whatsapp.SignatureHeader))
	h.logger.Debug("Webhook processed",
		zap.String("request_id", middleware.GetRequestID(r.Context())),
		zap.Int("applied", result.Applied),
		zap.Int("dropped", result.Dropped))

	render.JSON(w, r, WebhookAck{Status: webhookStatusReceived})
}

func (h *Handler) CreditTenant(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantParam(w, r)
	if !ok {
		return
	}

	var body CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, errorMessageInvalidBody)
		return
	}

	balance, err := h.service.Credit.Credit(r.Context(), tenantID, body.Amount)
	if err != nil {
		h.handleServiceError(w, r, err, "credit_tenant")
		return
	}

	render.JSON(w, r, CreditBalanceResponse{TenantID: tenantID, Balance: balance})
}

func (h *Handler) ConfigureAccount(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := h.tenantParam(w, r)
	if !ok {
		return
	}

	var body AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, errorMessageInvalidBody)
		return
	}

	account := &models.TenantAccount{
		TenantID:      tenantID,
		PhoneNumberID: body.PhoneNumberID,
		AccessToken:   body.AccessToken,
	}
	if wabaID := strings.TrimSpace(body.WABAID); wabaID != "" {
		account.WABAID.String, account.WABAID.Valid = wabaID, true
	}

	if err := h.service.Account.Configure(r.Context(), account); err != nil {
		h.handleServiceError(w, r, err, "configure_account")
		return
	}

	render.JSON(w, r, AccountResponse{
		TenantID:      account.TenantID,
		PhoneNumberID: account.PhoneNumberID,
		Status:        accountStatusConfigured,
	})
}

func (h *Handler) tenantParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	var tenantID string
	err := runtime.BindStyledParameterWithLocation("simple", false, "tenantID",
		runtime.ParamLocationPath, chi.URLParam(r, "tenantID"), &tenantID)
	if err != nil || strings.TrimSpace(tenantID) == "" {
		h.sendError(w, r, http.StatusBadRequest, errorCodeValidation, "tenantID path parameter is required")
		return "", false
	}
	return tenantID, true
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := h.service.Health.GetHealth(r.Context())

	if health.Status == service.HealthStatusUnhealthy {
		render.Status(r, http.StatusServiceUnavailable)
	}

	render.JSON(w, r, health)
}
