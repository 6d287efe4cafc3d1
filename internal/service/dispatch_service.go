package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/metrics"
	"github.com/AdrianD28/whatsapp-marketing/internal/models"
	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
	"github.com/AdrianD28/whatsapp-marketing/internal/whatsapp"
)

var errInvalidRecipient = errors.New("recipient phone number has no digits")

const (
	// releaseTimeout bounds the bookkeeping done after the worker context is gone.
	releaseTimeout = 5 * time.Second

	commitRetries = 2
	commitBackoff = 100 * time.Millisecond

	errorCodeLimit = 32
	errorTypeLimit = 128
)

type dispatchService struct {
	cfg      *config.DispatchConfig
	repo     repository.Repository
	sender   MessageSender
	progress ProgressStore
	bus      ControlBus
	logger   *zap.Logger
}

func NewDispatchService(
	cfg *config.DispatchConfig,
	repo repository.Repository,
	sender MessageSender,
	progress ProgressStore,
	bus ControlBus,
	logger *zap.Logger,
) DispatchService {
	return &dispatchService{
		cfg:      cfg,
		repo:     repo,
		sender:   sender,
		progress: progress,
		bus:      bus,
		logger:   logger,
	}
}

// contactResult is the outcome of one contact. blocked means nothing was sent
// because the provider breaker is open; fatal aborts the campaign.
type contactResult struct {
	entry   *models.SendLogEntry
	outcome models.AttemptOutcome
	blocked bool
	fatal   error
}

func (s *dispatchService) ProcessNext(ctx context.Context, workerID string) (bool, error) {
	campaign, err := s.repo.Campaign().ClaimNext(ctx, workerID, s.cfg.ClaimTTL())
	if err != nil {
		return false, fmt.Errorf("failed to claim campaign: %w", err)
	}
	if campaign == nil {
		return false, nil
	}

	logger := s.logger.With(
		zap.String("worker_id", workerID),
		zap.String("campaign_id", campaign.ID),
		zap.String("batch_id", campaign.BatchID),
		zap.String("tenant_id", campaign.TenantID))
	logger.Info("Campaign claimed", zap.Int("processed", campaign.Processed), zap.Int("contacts", campaign.ContactsCount))

	// A blocked campaign was handed back for later, so the scheduler should
	// wait its interval instead of polling again at once.
	blocked, err := s.run(ctx, workerID, campaign, logger)
	return !blocked, err
}

func (s *dispatchService) run(ctx context.Context, workerID string, campaign *models.Campaign, logger *zap.Logger) (bool, error) {
	bg := context.WithoutCancel(ctx)
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(bg, releaseTimeout)
		defer cancel()
		if err := s.progress.Delete(cleanupCtx, campaign.ID); err != nil {
			logger.Debug("Failed to clear live progress", zap.Error(err))
		}
	}()

	account, err := s.repo.Account().GetByTenant(ctx, campaign.TenantID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			s.finish(bg, campaign, models.CampaignStatusFailed, ErrAccountNotConfigured, logger)
			return false, nil
		}
		s.release(bg, campaign.ID, workerID, logger)
		return false, fmt.Errorf("failed to load tenant account: %w", err)
	}
	creds := whatsapp.Credentials{PhoneNumberID: account.PhoneNumberID, AccessToken: account.AccessToken}

	wake, unsubscribe := s.bus.Subscribe(campaign.ID)
	defer unsubscribe()

	for {
		if ctx.Err() != nil {
			s.release(bg, campaign.ID, workerID, logger)
			return false, nil
		}

		// The reload below observes every signal published so far.
		select {
		case <-wake:
		default:
		}

		current, err := s.repo.Campaign().Load(ctx, campaign.ID)
		if err != nil {
			s.release(bg, campaign.ID, workerID, logger)
			return false, fmt.Errorf("failed to reload campaign: %w", err)
		}
		if current.Status != models.CampaignStatusProcessing {
			logger.Info("Campaign no longer processing, stopping", zap.String("status", string(current.Status)))
			s.release(bg, campaign.ID, workerID, logger)
			return false, nil
		}
		if current.Done() {
			s.finish(bg, current, models.CampaignStatusCompleted, nil, logger)
			return false, nil
		}

		// An in-flight contact always runs to completion so its send log row
		// and counters are never left half written.
		result := s.processContact(bg, workerID, current, creds, logger)
		if result.blocked {
			retryAfter := s.cfg.BlockedBackoff()
			logger.Warn("Provider circuit open, deferring campaign",
				zap.Int("index", current.Processed),
				zap.Duration("retry_after", retryAfter))
			s.deferClaim(bg, campaign.ID, workerID, retryAfter, logger)
			return true, nil
		}

		updated, exhausted, err := s.commit(bg, workerID, current, result, logger)
		if err != nil {
			if errors.Is(err, repository.ErrClaimLost) {
				logger.Warn("Claim lost, stopping")
				return false, nil
			}
			logger.Error("Failed to record contact, releasing campaign",
				zap.Int("index", current.Processed),
				zap.Error(err))
			s.release(bg, campaign.ID, workerID, logger)
			return false, fmt.Errorf("failed to record attempt: %w", err)
		}
		if exhausted && result.fatal == nil {
			logger.Error("Credit balance exhausted", zap.Int("index", current.Processed))
			result.fatal = ErrCreditsExhausted
		}

		if result.fatal != nil {
			s.finish(bg, updated, models.CampaignStatusFailed, result.fatal, logger)
			return false, nil
		}
		if updated.Done() {
			s.finish(bg, updated, models.CampaignStatusCompleted, nil, logger)
			return false, nil
		}

		if err := s.pause(ctx, workerID, updated, wake); err != nil {
			if errors.Is(err, repository.ErrClaimLost) {
				logger.Warn("Claim lost while waiting, stopping")
				return false, nil
			}
			s.release(bg, campaign.ID, workerID, logger)
			return false, nil
		}
	}
}

// commit records one contact atomically: the send log row, the credit debit
// for a success and the counter advance. exhausted reports a success that
// found no credit left; the row and counters are still written.
func (s *dispatchService) commit(ctx context.Context, workerID string, campaign *models.Campaign, result contactResult, logger *zap.Logger) (*models.Campaign, bool, error) {
	var (
		updated   *models.Campaign
		exhausted bool
	)

	op := func() error {
		exhausted = false
		err := s.repo.WithTx(ctx, func(tx repository.Repository) error {
			if err := tx.SendLog().Append(ctx, result.entry); err != nil {
				return err
			}

			if result.outcome == models.OutcomeSuccess {
				if _, err := tx.Credit().Debit(ctx, campaign.TenantID, 1); err != nil {
					if !errors.Is(err, repository.ErrInsufficientBalance) {
						return fmt.Errorf("failed to debit credit: %w", err)
					}
					exhausted = true
				}
			}

			var err error
			updated, err = tx.Campaign().RecordAttempt(ctx, campaign.ID, workerID, result.outcome)
			return err
		})
		if errors.Is(err, repository.ErrClaimLost) {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewConstantBackOff(commitBackoff), commitRetries)
	err := backoff.RetryNotify(op, policy, func(err error, wait time.Duration) {
		logger.Warn("Failed to record contact, retrying", zap.Duration("wait", wait), zap.Error(err))
	})
	if err != nil {
		return nil, false, err
	}
	return updated, exhausted, nil
}

// processContact tries each candidate language until one succeeds or a
// non-language error ends the attempt. It builds the send log row but does not store it.
func (s *dispatchService) processContact(ctx context.Context, workerID string, campaign *models.Campaign, creds whatsapp.Credentials, logger *zap.Logger) contactResult {
	contact, _ := campaign.NextContact()
	phone := NormalizePhone(contact.Phone)
	components, realMessage := RenderTemplate(campaign.Template, contact)
	languages := s.candidateLanguages(campaign.Template.Language)

	logger = logger.With(zap.Int("index", campaign.Processed), zap.String("recipient", phone))

	s.saveProgress(ctx, campaign.ID, LiveProgress{
		WorkerID:         workerID,
		Index:            campaign.Processed,
		CurrentRecipient: phone,
		Language:         languages[0],
		Heartbeat:        time.Now().UTC(),
	}, logger)

	entry := &models.SendLogEntry{
		TenantID:    campaign.TenantID,
		BatchID:     campaign.BatchID,
		CampaignID:  campaign.ID,
		Recipient:   phone,
		RealMessage: realMessage,
	}

	if phone == "" {
		entry.Language = languages[0]
		return s.recordFailure(entry, errInvalidRecipient, logger)
	}

	base := whatsapp.NewTemplateMessage(phone, campaign.Template.Name, languages[0], components)

	var (
		messageID string
		sendErr   error
	)
	for i, lang := range languages {
		entry.Language = lang
		messageID, sendErr = s.sender.SendTemplate(ctx, creds, base.WithLanguage(lang))
		if sendErr == nil {
			if i > 0 {
				metrics.LanguageFallbacks.WithLabelValues(lang).Inc()
				logger.Info("Sent on fallback language", zap.String("language", lang))
			}
			break
		}
		if errors.Is(sendErr, whatsapp.ErrCircuitOpen) {
			return contactResult{blocked: true}
		}
		if !whatsapp.IsLanguageUnavailable(sendErr) {
			break
		}
		logger.Debug("Template language unavailable, trying next",
			zap.String("language", lang),
			zap.Error(sendErr))
	}

	if sendErr == nil {
		return s.recordSuccess(entry, messageID)
	}
	return s.recordFailure(entry, sendErr, logger)
}

func (s *dispatchService) recordSuccess(entry *models.SendLogEntry, messageID string) contactResult {
	entry.Status = models.SendStatusSent
	entry.MessageID = sql.NullString{String: messageID, Valid: true}
	metrics.MessagesSent.Inc()

	return contactResult{entry: entry, outcome: models.OutcomeSuccess}
}

func (s *dispatchService) recordFailure(entry *models.SendLogEntry, sendErr error, logger *zap.Logger) contactResult {
	entry.Status = models.SendStatusFailed
	entry.Error = sql.NullString{String: sendErr.Error(), Valid: true}

	var apiErr *whatsapp.APIError
	if errors.As(sendErr, &apiErr) {
		if code := apiErr.CodeString(); code != "" {
			entry.ErrorCode = sql.NullString{String: truncate(code, errorCodeLimit), Valid: true}
		}
		if apiErr.Type != "" {
			entry.ErrorType = sql.NullString{String: truncate(apiErr.Type, errorTypeLimit), Valid: true}
		}
	}
	metrics.MessagesFailed.Inc()

	result := contactResult{entry: entry, outcome: models.OutcomeFailure}
	if whatsapp.IsAuthError(sendErr) {
		logger.Error("Provider rejected credentials, aborting campaign", zap.Error(sendErr))
		result.fatal = sendErr
		return result
	}

	logger.Warn("Contact send failed", zap.String("language", entry.Language), zap.Error(sendErr))
	return result
}

// candidateLanguages is the template language followed by the configured
// fallbacks, without duplicates.
func (s *dispatchService) candidateLanguages(primary string) []string {
	seen := make(map[string]bool, len(s.cfg.FallbackLanguages)+1)
	out := make([]string, 0, len(s.cfg.FallbackLanguages)+1)
	for _, lang := range append([]string{primary}, s.cfg.FallbackLanguages...) {
		if lang == "" || seen[lang] {
			continue
		}
		seen[lang] = true
		out = append(out, lang)
	}
	if len(out) == 0 {
		out = append(out, "")
	}
	return out
}

// pause sleeps the per-message delay, keeping the claim fresh. It returns early
// without error when a control signal arrives, and with ctx.Err() on shutdown.
func (s *dispatchService) pause(ctx context.Context, workerID string, campaign *models.Campaign, wake <-chan struct{}) error {
	delay := time.Duration(campaign.DelaySeconds) * time.Second
	if delay <= 0 {
		return ctx.Err()
	}

	refreshEvery := s.cfg.ClaimTTL() / 3
	if refreshEvery <= 0 {
		refreshEvery = time.Second
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()
	refresh := time.NewTicker(refreshEvery)
	defer refresh.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-wake:
			return nil
		case <-timer.C:
			return nil
		case <-refresh.C:
			if err := s.repo.Campaign().RefreshClaim(ctx, campaign.ID, workerID); err != nil {
				return err
			}
		}
	}
}

func (s *dispatchService) saveProgress(ctx context.Context, campaignID string, p LiveProgress, logger *zap.Logger) {
	if err := s.progress.Save(ctx, campaignID, p); err != nil {
		logger.Debug("Failed to save live progress", zap.Error(err))
	}
}

func (s *dispatchService) deferClaim(ctx context.Context, campaignID, workerID string, retryAfter time.Duration, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, releaseTimeout)
	defer cancel()
	if err := s.repo.Campaign().DeferClaim(ctx, campaignID, workerID, retryAfter); err != nil {
		logger.Error("Failed to defer claim", zap.Error(err))
	}
}

func (s *dispatchService) release(ctx context.Context, campaignID, workerID string, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, releaseTimeout)
	defer cancel()
	if err := s.repo.Campaign().ReleaseClaim(ctx, campaignID, workerID); err != nil {
		logger.Error("Failed to release claim", zap.Error(err))
	}
}

func (s *dispatchService) finish(ctx context.Context, campaign *models.Campaign, status models.CampaignStatus, cause error, logger *zap.Logger) {
	var errMsg *string
	if cause != nil {
		msg := cause.Error()
		errMsg = &msg
	}

	ctx, cancel := context.WithTimeout(ctx, releaseTimeout)
	defer cancel()
	if err := s.repo.Campaign().MarkTerminal(ctx, campaign.ID, status, errMsg); err != nil {
		logger.Error("Failed to finalize campaign", zap.String("status", string(status)), zap.Error(err))
		return
	}
	metrics.CampaignsFinished.WithLabelValues(string(status)).Inc()

	fields := []zap.Field{
		zap.String("status", string(status)),
		zap.Int("processed", campaign.Processed),
		zap.Int("success", campaign.SuccessCount),
		zap.Int("failed", campaign.FailedCount),
	}
	if cause != nil {
		logger.Error("Campaign failed", append(fields, zap.Error(cause))...)
		return
	}
	logger.Info("Campaign finished", fields...)
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
