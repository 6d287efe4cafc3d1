package whatsapp_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
	"github.com/AdrianD28/whatsapp-marketing/internal/whatsapp"
)

func testBreakerConfig() config.CircuitBreakerConfig {
	return config.CircuitBreakerConfig{
		MaxRequests:      1,
		Interval:         10,
		Timeout:          60,
		FailureRatio:     0.5,
		ConsecutiveFails: 3,
	}
}

func TestBreakerSet_Execute(t *testing.T) {
	tests := []struct {
		name      string
		failure   error
		wantState gobreaker.State
	}{
		{
			name:      "transport errors trip the breaker",
			failure:   errors.New("connection refused"),
			wantState: gobreaker.StateOpen,
		},
		{
			name:      "server errors trip the breaker",
			failure:   &whatsapp.APIError{HTTPStatus: http.StatusBadGateway},
			wantState: gobreaker.StateOpen,
		},
		{
			name:      "throttling trips the breaker",
			failure:   &whatsapp.APIError{HTTPStatus: http.StatusTooManyRequests, Code: 130429},
			wantState: gobreaker.StateOpen,
		},
		{
			name:      "request rejections do not trip the breaker",
			failure:   &whatsapp.APIError{HTTPStatus: http.StatusBadRequest, Code: 131026},
			wantState: gobreaker.StateClosed,
		},
		{
			name:      "expired token does not trip the breaker",
			failure:   &whatsapp.APIError{HTTPStatus: http.StatusUnauthorized, Code: 190},
			wantState: gobreaker.StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := whatsapp.NewBreakerSet(testBreakerConfig(), zap.NewNop())

			for i := 0; i < 5; i++ {
				_, err := set.Execute("1111", func() (string, error) {
					return "", tt.failure
				})
				require.Error(t, err)
			}

			assert.Equal(t, tt.wantState, set.States()["1111"])
		})
	}
}

func TestBreakerSet_OpenBlocksOnlyThatNumber(t *testing.T) {
	set := whatsapp.NewBreakerSet(testBreakerConfig(), zap.NewNop())

	for i := 0; i < 3; i++ {
		_, _ = set.Execute("1111", func() (string, error) {
			return "", errors.New("timeout")
		})
	}

	called := false
	_, err := set.Execute("1111", func() (string, error) {
		called = true
		return "wamid.x", nil
	})
	assert.ErrorIs(t, err, whatsapp.ErrCircuitOpen)
	assert.False(t, called)
	assert.True(t, set.AnyOpen())

	id, err := set.Execute("2222", func() (string, error) {
		return "wamid.y", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "wamid.y", id)
}
