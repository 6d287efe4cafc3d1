package whatsapp

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/AdrianD28/whatsapp-marketing/internal/config"
)

// BreakerSet keeps one circuit breaker per sending phone number, so a suspended
// number does not stall campaigns of other tenants.
type BreakerSet struct {
	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
	cfg      config.CircuitBreakerConfig
	logger   *zap.Logger
}

func NewBreakerSet(cfg config.CircuitBreakerConfig, logger *zap.Logger) *BreakerSet {
	return &BreakerSet{
		breakers: make(map[string]*gobreaker.CircuitBreaker),
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *BreakerSet) get(phoneNumberID string) *gobreaker.CircuitBreaker {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cb, ok := s.breakers[phoneNumberID]; ok {
		return cb
	}

	cfg := s.cfg
	settings := gobreaker.Settings{
		Name:        "whatsapp:" + phoneNumberID,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.ConsecutiveFails && failureRatio >= cfg.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			s.logger.Info("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
		IsSuccessful: countsAsSuccess,
	}

	cb := gobreaker.NewCircuitBreaker(settings)
	s.breakers[phoneNumberID] = cb
	return cb
}

// Execute runs fn through the breaker of phoneNumberID.
func (s *BreakerSet) Execute(phoneNumberID string, fn func() (string, error)) (string, error) {
	res, err := s.get(phoneNumberID).Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.logger.Warn("Circuit breaker is open, request blocked",
				zap.String("phone_number_id", phoneNumberID))
			return "", ErrCircuitOpen
		}
		return "", err
	}

	id, _ := res.(string)
	return id, nil
}

// Blocked reports whether the breaker of phoneNumberID is open. It does not
// create a breaker for an unseen number.
func (s *BreakerSet) Blocked(phoneNumberID string) bool {
	s.mu.Lock()
	cb, ok := s.breakers[phoneNumberID]
	s.mu.Unlock()
	return ok && cb.State() == gobreaker.StateOpen
}

// States reports the state of every breaker created so far.
func (s *BreakerSet) States() map[string]gobreaker.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	states := make(map[string]gobreaker.State, len(s.breakers))
	for id, cb := range s.breakers {
		states[id] = cb.State()
	}
	return states
}

// AnyOpen reports whether some phone number is currently blocked.
func (s *BreakerSet) AnyOpen() bool {
	for _, state := range s.States() {
		if state == gobreaker.StateOpen {
			return true
		}
	}
	return false
}

// Request-level rejections (bad number, unapproved template, expired token) say
// nothing about provider health and do not trip the breaker.
func countsAsSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return !apiErr.retryable()
	}
	return false
}
