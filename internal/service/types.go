package service

import (
	"time"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

type CreateCampaignRequest struct {
	Name         string
	BatchID      string
	Contacts     []models.Contact
	Template     models.TemplateRef
	DelaySeconds *int
}

// CampaignDetail is a campaign record plus whatever a worker is holding for it right now.
type CampaignDetail struct {
	*models.Campaign
	Live *LiveProgress `json:"live,omitempty"`
}

type BatchReport struct {
	BatchID      string                  `json:"batch_id"`
	Total        int                     `json:"total"`
	Delivered    int                     `json:"delivered"`
	Read         int                     `json:"read"`
	Failed       int                     `json:"failed"`
	SendErrors   int                     `json:"send_errors"`
	DeliveryRate int                     `json:"delivery_rate"`
	ReadRate     int                     `json:"read_rate"`
	Errors       []models.RecipientError `json:"errors"`
	Rows         []*models.ReportRow     `json:"rows"`
}

type BatchSummaryView struct {
	*models.BatchSummary
	DeliveryRate int `json:"delivery_rate"`
	ReadRate     int `json:"read_rate"`
}

type ReportPage struct {
	Items      []BatchSummaryView `json:"items"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Total      int                `json:"total"`
	TotalPages int                `json:"total_pages"`
}

type ReconcileResult struct {
	Applied int
	Dropped int
}

const (
	HealthStatusHealthy   = "healthy"
	HealthStatusDegraded  = "degraded"
	HealthStatusUnhealthy = "unhealthy"

	ComponentConnected    = "connected"
	ComponentDisconnected = "disconnected"
	SchedulerRunning      = "running"
	SchedulerStopped      = "stopped"
)

type HealthStatus struct {
	Status          string            `json:"status"`
	SchedulerStatus string            `json:"scheduler_status"`
	DatabaseStatus  string            `json:"database_status"`
	RedisStatus     string            `json:"redis_status"`
	CircuitBreakers map[string]string `json:"circuit_breakers,omitempty"`
	Timestamp       time.Time         `json:"timestamp"`
}
