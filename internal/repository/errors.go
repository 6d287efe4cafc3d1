package repository

import (
	"errors"
	"fmt"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

var (
	ErrCampaignNotFound    = errors.New("campaign not found")
	ErrDuplicateBatch      = errors.New("batch id already exists for tenant")
	ErrClaimLost           = errors.New("campaign claim is no longer held by this worker")
	ErrInsufficientBalance = errors.New("insufficient credit balance")
	ErrAccountNotFound     = errors.New("tenant account not found")
)

// InvalidTransitionError is returned when a lifecycle command does not apply to the current status.
type InvalidTransitionError struct {
	From models.CampaignStatus
	To   models.CampaignStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move campaign from %s to %s", e.From, e.To)
}

const uniqueViolation = "23505"
