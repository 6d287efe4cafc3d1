package handler

import (
	"time"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

type CreateCampaignRequest struct {
	Name         string             `json:"name"`
	BatchID      string             `json:"batch_id,omitempty"`
	Contacts     []models.Contact   `json:"contacts"`
	Template     models.TemplateRef `json:"template"`
	DelaySeconds *int               `json:"delay_seconds,omitempty"`
}

type CreateCampaignResponse struct {
	CampaignID    string                `json:"campaign_id"`
	BatchID       string                `json:"batch_id"`
	Status        models.CampaignStatus `json:"status"`
	ContactsCount int                   `json:"contacts_count"`
}

type CampaignListResponse struct {
	Campaigns []*models.Campaign `json:"campaigns"`
	Total     int                `json:"total"`
}

type CreditBalanceResponse struct {
	TenantID string `json:"tenant_id"`
	Balance  int64  `json:"balance"`
}

type CreditRequest struct {
	Amount int64 `json:"amount"`
}

type AccountRequest struct {
	PhoneNumberID string `json:"phone_number_id"`
	AccessToken   string `json:"access_token"`
	WABAID        string `json:"waba_id,omitempty"`
}

type AccountResponse struct {
	TenantID      string `json:"tenant_id"`
	PhoneNumberID string `json:"phone_number_id"`
	Status        string `json:"status"`
}

type WebhookAck struct {
	Status string `json:"status"`
}

type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Field     string    `json:"field,omitempty"`
	Required  *int64    `json:"required,omitempty"`
	Available *int64    `json:"available,omitempty"`
	Missing   *int64    `json:"missing,omitempty"`
}

// ListCampaignsParams are the query parameters of GET /campaigns.
type ListCampaignsParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
}

// ListReportsParams are the query parameters of GET /reports/campaigns.
type ListReportsParams struct {
	From  *time.Time `form:"from,omitempty" json:"from,omitempty"`
	To    *time.Time `form:"to,omitempty" json:"to,omitempty"`
	Page  *int       `form:"page,omitempty" json:"page,omitempty"`
	Limit *int       `form:"limit,omitempty" json:"limit,omitempty"`
}

// VerifyWebhookParams are the hub.* query parameters of the subscription handshake.
type VerifyWebhookParams struct {
	Mode        string
	VerifyToken string
	Challenge   string
}
