package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.CampaignStatus
		allowed  bool
	}{
		{models.CampaignStatusProcessing, models.CampaignStatusPaused, true},
		{models.CampaignStatusPending, models.CampaignStatusPaused, false},
		{models.CampaignStatusPaused, models.CampaignStatusPaused, false},
		{models.CampaignStatusPaused, models.CampaignStatusProcessing, true},
		{models.CampaignStatusProcessing, models.CampaignStatusProcessing, false},
		{models.CampaignStatusPending, models.CampaignStatusCancelled, true},
		{models.CampaignStatusProcessing, models.CampaignStatusCancelled, true},
		{models.CampaignStatusPaused, models.CampaignStatusCancelled, true},
		{models.CampaignStatusCompleted, models.CampaignStatusCancelled, false},
		{models.CampaignStatusFailed, models.CampaignStatusProcessing, false},
		{models.CampaignStatusCancelled, models.CampaignStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, models.CanTransition(tt.from, tt.to))
		})
	}
}

func TestCampaign_NextContact(t *testing.T) {
	c := &models.Campaign{
		Contacts:      models.Contacts{{Phone: "1"}, {Phone: "2"}},
		ContactsCount: 2,
		Processed:     1,
		SuccessCount:  1,
	}

	next, ok := c.NextContact()
	assert.True(t, ok)
	assert.Equal(t, "2", next.Phone)
	assert.True(t, c.Consistent())
	assert.False(t, c.Done())

	c.Processed, c.FailedCount = 2, 1
	_, ok = c.NextContact()
	assert.False(t, ok)
	assert.True(t, c.Done())
	assert.True(t, c.Consistent())
}

func TestContacts_ScanValue(t *testing.T) {
	in := models.Contacts{{Phone: "573001112233", Name: "Ana", Email: "ana@example.com"}}
	v, err := in.Value()
	assert.NoError(t, err)

	var out models.Contacts
	assert.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}
