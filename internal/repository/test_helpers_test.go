package repository_test

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AdrianD28/whatsapp-marketing/internal/models"
)

func newTestCampaign(tenantID, batchID string, contacts int) *models.Campaign {
	list := make(models.Contacts, contacts)
	for i := range list {
		list[i] = models.Contact{
			Phone: fmt.Sprintf("57300%07d", i),
			Name:  fmt.Sprintf("Contact %d", i),
		}
	}

	return &models.Campaign{
		ID:       uuid.NewString(),
		TenantID: tenantID,
		BatchID:  batchID,
		Name:     "Spring promo",
		Template: models.TemplateRef{
			Name:     "spring_promo",
			Language: "es",
			Components: []models.TemplateComponent{
				{Type: "BODY", Text: "Hola {{1}}", Parameters: []string{"{{name}}"}},
			},
		},
		Contacts:     list,
		DelaySeconds: 0,
	}
}

func sentEntry(c *models.Campaign, recipient, messageID string) *models.SendLogEntry {
	return &models.SendLogEntry{
		TenantID:    c.TenantID,
		BatchID:     c.BatchID,
		CampaignID:  c.ID,
		Recipient:   recipient,
		MessageID:   sql.NullString{String: messageID, Valid: true},
		Language:    "es",
		Status:      models.SendStatusSent,
		RealMessage: "Hola " + recipient,
	}
}

func failedEntry(c *models.Campaign, recipient, errMsg string) *models.SendLogEntry {
	return &models.SendLogEntry{
		TenantID:   c.TenantID,
		BatchID:    c.BatchID,
		CampaignID: c.ID,
		Recipient:  recipient,
		Language:   "en_US",
		Status:     models.SendStatusFailed,
		Error:      sql.NullString{String: errMsg, Valid: true},
		ErrorCode:  sql.NullString{String: "131026", Valid: true},
		ErrorType:  sql.NullString{String: "OAuthException", Valid: true},
	}
}

func ptr(s string) *string {
	return &s
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}
