package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Matilda0841/AccountSystem-ZB/internal/middleware"
	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
)

// statusFor maps a domain error to its HTTP status. Anything outside the
// domain set is an infrastructure fault and surfaces as 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrOwnerNotFound),
		errors.Is(err, models.ErrAccountNotFound),
		errors.Is(err, models.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrOwnershipMismatch):
		return http.StatusForbidden
	case errors.Is(err, models.ErrInitialBalanceTooSmall):
		return http.StatusBadRequest
	case models.IsLedgerError(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	message := err.Error()
	if !models.IsLedgerError(err) {
		message = "internal error"
	}
	middleware.RespondWithError(c, statusFor(err), models.ErrorCode(err), message)
}
