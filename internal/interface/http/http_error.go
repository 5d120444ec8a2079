package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/polyglot-faq/pkg/errors"
)

// Error codes rendered in the {"error":{"code","message"}} envelope.
const (
	codeInvalidRequest = "invalid_request"
	codeNotFound       = "not_found"
	codeFAQFailed      = "faq_failed"
	codeRateLimited    = "rate_limit_exceeded"
)

// HTTPError is a transport-level failure with its response status.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func invalidRequest(message string, err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, codeInvalidRequest, message, err)
}

// asHTTPError maps handler failures onto a response. Domain errors are mapped by their
// apperrors code; internal details never reach the client.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidInput:
		return invalidRequest(messageOf(err), err)
	case apperrors.CodeNotFound:
		return NewHTTPError(http.StatusNotFound, codeNotFound, messageOf(err), err)
	default:
		return NewHTTPError(http.StatusInternalServerError, codeFAQFailed, "failed to process faq request", err)
	}
}

// messageOf prefers the AppError message over the wrapped cause.
func messageOf(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func abortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
