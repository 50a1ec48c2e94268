package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Domenick1991/tripavista/internal/domain"
	"github.com/gin-gonic/gin"
)

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type redirectBody struct {
	To      string `json:"to"`
	AfterMs int64  `json:"after_ms"`
}

type errorResponse struct {
	Error    errorDetail   `json:"error"`
	Redirect *redirectBody `json:"redirect,omitempty"`
}

// writeError answers with the status and code err maps to. Handlers that
// can recover a missing draft do so before calling it.
func writeError(c *gin.Context, err error) {
	status, code := classify(err)
	body := errorResponse{Error: errorDetail{Code: code, Message: err.Error()}}
	if status == http.StatusInternalServerError {
		body.Error.Message = "internal error"
		_ = c.Error(err)
	}
	if errors.Is(err, domain.ErrContactRequired) {
		body.Redirect = &redirectBody{To: "/profile"}
	}
	c.JSON(status, body)
}

func writeRedirect(c *gin.Context, status int, code, message, to string, after time.Duration) {
	c.JSON(status, errorResponse{
		Error:    errorDetail{Code: code, Message: message},
		Redirect: &redirectBody{To: to, AfterMs: after.Milliseconds()},
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, domain.ErrMissingContext):
		return http.StatusBadRequest, "missing_context"
	case errors.Is(err, domain.ErrContactRequired):
		return http.StatusConflict, "contact_required"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid_credentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrPaymentInProgress):
		return http.StatusConflict, "payment_in_progress"
	case errors.Is(err, domain.ErrIllegalTransition):
		return http.StatusConflict, "illegal_transition"
	}
	return http.StatusInternalServerError, "internal_error"
}

// bindJSON decodes the request body into dst. An empty body leaves dst
// untouched so a missing draft can be told apart from a malformed one.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	return nil
}
