package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/metrics"
	"github.com/AdrianD28/whatsapp-marketing/internal/models"
	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
	"github.com/AdrianD28/whatsapp-marketing/internal/whatsapp"
)

const (
	dropInvalidSignature = "invalid_signature"
	dropMalformedPayload = "malformed_payload"
	dropMalformedEvent   = "malformed_event"
	dropUnknownPhone     = "unknown_phone_number"
	dropUnknownStatus    = "unknown_status"
	dropStorageError     = "storage_error"

	subscribeMode = "subscribe"
	messagesField = "messages"
)

type reconcilerService struct {
	cfg    *config.WebhookConfig
	repo   repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewReconcilerService(cfg *config.WebhookConfig, repo repository.Repository, logger *zap.Logger) ReconcilerService {
	return &reconcilerService{
		cfg:    cfg,
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// VerifySubscription answers the provider's webhook handshake.
func (s *reconcilerService) VerifySubscription(mode, token, challenge string) (string, bool) {
	if mode != subscribeMode || s.cfg.VerifyToken == "" || token != s.cfg.VerifyToken {
		return "", false
	}
	return challenge, true
}

// HandleWebhook merges every status update in body into message state.
// Events that cannot be attributed or stored are counted and dropped; the
// provider is always acknowledged.
func (s *reconcilerService) HandleWebhook(ctx context.Context, body []byte, signature string) ReconcileResult {
	var result ReconcileResult

	if s.cfg.AppSecret != "" && !whatsapp.VerifySignature(s.cfg.AppSecret, body, signature) {
		s.drop(&result, dropInvalidSignature, zap.Int("bytes", len(body)))
		return result
	}

	payload, err := whatsapp.ParseWebhook(body)
	if err != nil {
		s.drop(&result, dropMalformedPayload, zap.Error(err))
		return result
	}

	tenants := make(map[string]string)
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != messagesField || len(change.Value.Statuses) == 0 {
				continue
			}

			phoneID := change.Value.Metadata.PhoneNumberID
			tenantID, ok := tenants[phoneID]
			if !ok {
				tenantID = s.resolveTenant(ctx, phoneID)
				tenants[phoneID] = tenantID
			}

			for _, update := range change.Value.Statuses {
				if tenantID == "" {
					s.drop(&result, dropUnknownPhone,
						zap.String("phone_number_id", phoneID),
						zap.String("message_id", update.ID))
					continue
				}
				s.applyUpdate(ctx, tenantID, update, &result)
			}
		}
	}

	return result
}

func (s *reconcilerService) resolveTenant(ctx context.Context, phoneID string) string {
	if phoneID == "" {
		return ""
	}
	account, err := s.repo.Account().GetByPhoneNumberID(ctx, phoneID)
	if err != nil {
		if !errors.Is(err, repository.ErrAccountNotFound) {
			s.logger.Error("Failed to resolve webhook tenant",
				zap.String("phone_number_id", phoneID),
				zap.Error(err))
		}
		return ""
	}
	return account.TenantID
}

func (s *reconcilerService) applyUpdate(ctx context.Context, tenantID string, update whatsapp.StatusUpdate, result *ReconcileResult) {
	if update.ID == "" {
		s.drop(result, dropMalformedEvent, zap.String("tenant_id", tenantID))
		return
	}

	status, ok := models.ParseDeliveryStatus(update.Status)
	if !ok {
		s.drop(result, dropUnknownStatus,
			zap.String("message_id", update.ID),
			zap.String("status", update.Status))
		return
	}

	ts, err := update.Time()
	if err != nil {
		ts = s.now()
	}

	ev := models.StatusEvent{
		TenantID:  tenantID,
		MessageID: update.ID,
		Status:    status,
		Timestamp: ts,
		Recipient: update.RecipientID,
	}
	if werr, ok := update.FirstError(); ok {
		ev.Error = werr.Text()
		if werr.Code != 0 {
			ev.ErrorCode = strconv.Itoa(werr.Code)
		}
		ev.ErrorType = werr.Title
	}

	merged, err := s.repo.MessageEvent().Apply(ctx, ev)
	if err != nil {
		s.drop(result, dropStorageError,
			zap.String("message_id", update.ID),
			zap.Error(err))
		return
	}

	result.Applied++
	metrics.WebhookEvents.WithLabelValues(string(status)).Inc()
	s.logger.Debug("Delivery status applied",
		zap.String("tenant_id", tenantID),
		zap.String("message_id", update.ID),
		zap.String("event", string(status)),
		zap.String("status", string(merged.Status)))
}

func (s *reconcilerService) drop(result *ReconcileResult, reason string, fields ...zap.Field) {
	result.Dropped++
	metrics.WebhookDropped.WithLabelValues(reason).Inc()
	s.logger.Warn("Webhook event dropped", append(fields, zap.String("reason", reason))...)
}
