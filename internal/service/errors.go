package service

import (
	"errors"
	"fmt"

	"github.com/AdrianD28/whatsapp-marketing/internal/repository"
)

var (
	ErrCampaignNotFound     = repository.ErrCampaignNotFound
	ErrDuplicateBatch       = repository.ErrDuplicateBatch
	ErrReportNotFound       = errors.New("report not found")
	ErrAccountNotConfigured = errors.New("whatsapp account not configured for tenant")
	ErrCreditsExhausted     = errors.New("credit balance exhausted during dispatch")
)

// InvalidTransitionError is returned by pause, resume and cancel.
type InvalidTransitionError = repository.InvalidTransitionError

// InsufficientCreditsError rejects a campaign whose contact count exceeds the balance.
type InsufficientCreditsError struct {
	Required  int64
	Available int64
	Missing   int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: required %d, available %d, missing %d",
		e.Required, e.Available, e.Missing)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
