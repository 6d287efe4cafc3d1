package whatsapp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

var (
	ErrCircuitOpen   = errors.New("whatsapp: circuit breaker is open")
	ErrEmptyResponse = errors.New("whatsapp: response carried no message id")
)

const (
	codeTemplateLanguageMissing = 132001
	codeAccessTokenExpired      = 190
	codeAuthException           = 102
	codePermissionDenied        = 10
)

// APIError is a non-2xx Graph API response.
type APIError struct {
	HTTPStatus int
	Code       int
	Subcode    int
	Type       string
	Message    string
	FbtraceID  string
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("whatsapp api error %d (http %d): %s", e.Code, e.HTTPStatus, e.Message)
	}
	return fmt.Sprintf("whatsapp api error (http %d): %s", e.HTTPStatus, e.Message)
}

// CodeString is the provider code as stored on send logs.
func (e *APIError) CodeString() string {
	if e.Code == 0 {
		return ""
	}
	return strconv.Itoa(e.Code)
}

// retryable reports whether the failure says something about provider health
// rather than about the request itself.
func (e *APIError) retryable() bool {
	return e.HTTPStatus >= http.StatusInternalServerError || e.HTTPStatus == http.StatusTooManyRequests
}

// IsLanguageUnavailable matches "template not approved for this locale" failures.
func IsLanguageUnavailable(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == codeTemplateLanguageMissing {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	return strings.Contains(msg, "does not exist in") || strings.Contains(msg, "translation")
}

// IsAuthError matches invalid or expired access credentials.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.HTTPStatus == http.StatusUnauthorized || apiErr.Code == codeAccessTokenExpired {
		return true
	}
	return apiErr.Type == "OAuthException" &&
		(apiErr.Code == codeAuthException || apiErr.Code == codePermissionDenied)
}
