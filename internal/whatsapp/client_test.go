package whatsapp_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/whatsapp"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *whatsapp.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return whatsapp.NewClient(&config.WhatsAppConfig{
		GraphBaseURL:   srv.URL,
		APIVersion:     "v21.0",
		Timeout:        1,
		RateLimit:      0,
		RateLimitBurst: 1,
		CircuitBreaker: testBreakerConfig(),
	}, zap.NewNop())
}

var testCreds = whatsapp.Credentials{PhoneNumberID: "1111", AccessToken: "secret-token"}

func TestClient_SendTemplate_Success(t *testing.T) {
	var got whatsapp.TemplateMessage
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v21.0/1111/messages", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"messaging_product":"whatsapp","contacts":[{"input":"573001234567","wa_id":"573001234567"}],"messages":[{"id":"wamid.HBgM"}]}`))
	})

	msg := whatsapp.NewTemplateMessage("573001234567", "spring_promo", "es", []whatsapp.Component{
		{Type: "body", Parameters: []whatsapp.Parameter{{Type: "text", Text: "Ana"}}},
	})

	id, err := client.SendTemplate(context.Background(), testCreds, msg)
	require.NoError(t, err)
	assert.Equal(t, "wamid.HBgM", id)
	assert.Equal(t, "template", got.Type)
	assert.Equal(t, "es", got.Template.Language.Code)
	require.Len(t, got.Template.Components, 1)
	assert.Equal(t, "Ana", got.Template.Components[0].Parameters[0].Text)
}

func TestClient_SendTemplate_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantCode     int
		wantLanguage bool
		wantAuth     bool
	}{
		{
			name:         "template missing for locale",
			status:       http.StatusNotFound,
			body:         `{"error":{"message":"(#132001) Template name does not exist in the translation","type":"OAuthException","code":132001,"fbtrace_id":"AbC"}}`,
			wantCode:     132001,
			wantLanguage: true,
		},
		{
			name:     "expired access token",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"message":"Error validating access token: Session has expired","type":"OAuthException","code":190,"error_subcode":463}}`,
			wantCode: 190,
			wantAuth: true,
		},
		{
			name:     "invalid recipient",
			status:   http.StatusBadRequest,
			body:     `{"error":{"message":"(#131026) Message Undeliverable","type":"OAuthException","code":131026}}`,
			wantCode: 131026,
		},
		{
			name:   "non json body",
			status: http.StatusBadGateway,
			body:   `upstream unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			msg := whatsapp.NewTemplateMessage("573001234567", "spring_promo", "es", nil)
			_, err := client.SendTemplate(context.Background(), testCreds, msg)
			require.Error(t, err)

			var apiErr *whatsapp.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.HTTPStatus)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.NotEmpty(t, apiErr.Message)
			assert.Equal(t, tt.wantLanguage, whatsapp.IsLanguageUnavailable(err))
			assert.Equal(t, tt.wantAuth, whatsapp.IsAuthError(err))
		})
	}
}

func TestClient_SendTemplate_OpenBreakerSkipsRateLimiter(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	client := whatsapp.NewClient(&config.WhatsAppConfig{
		GraphBaseURL:   srv.URL,
		APIVersion:     "v21.0",
		Timeout:        1,
		RateLimit:      0.001,
		RateLimitBurst: 3,
		CircuitBreaker: testBreakerConfig(),
	}, zap.NewNop())

	msg := whatsapp.NewTemplateMessage("573001234567", "spring_promo", "es", nil)
	for i := 0; i < 3; i++ {
		_, err := client.SendTemplate(context.Background(), testCreds, msg)
		require.Error(t, err)
	}
	require.True(t, client.Breakers().Blocked(testCreds.PhoneNumberID))

	// The bucket is empty, so waiting on the limiter would fail on this deadline.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := client.SendTemplate(ctx, testCreds, msg)
	assert.ErrorIs(t, err, whatsapp.ErrCircuitOpen)
	assert.Equal(t, int32(3), hits.Load())
	assert.False(t, client.Breakers().Blocked("2222"))
}

func TestClient_SendTemplate_Timeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	msg := whatsapp.NewTemplateMessage("573001234567", "spring_promo", "es", nil)
	_, err := client.SendTemplate(context.Background(), testCreds, msg)
	require.Error(t, err)
	assert.False(t, whatsapp.IsAuthError(err))
	assert.False(t, whatsapp.IsLanguageUnavailable(err))
}

func TestClient_SendTemplate_EmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"messaging_product":"whatsapp","messages":[]}`))
	})

	_, err := client.SendTemplate(context.Background(), testCreds, whatsapp.NewTemplateMessage("1", "t", "es", nil))
	assert.ErrorIs(t, err, whatsapp.ErrEmptyResponse)
}

func TestTemplateMessage_WithLanguage(t *testing.T) {
	msg := whatsapp.NewTemplateMessage("573001234567", "spring_promo", "es", nil)
	other := msg.WithLanguage("en_US")

	assert.Equal(t, "es", msg.Template.Language.Code)
	assert.Equal(t, "en_US", other.Template.Language.Code)
	assert.Equal(t, msg.To, other.To)
}
