package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Matilda0841/AccountSystem-ZB/internal/middleware"
	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
)

// Ledger defines the balance-mutation operations used by TransactionHandler.
type Ledger interface {
	UseBalance(ctx context.Context, ownerID int64, accountNumber string, amount int64) (*models.Transaction, error)
	CancelBalance(ctx context.Context, transactionID, accountNumber string, amount int64) (*models.Transaction, error)
	RecordFailedUse(ctx context.Context, accountNumber string, amount int64) (*models.Transaction, error)
	RecordFailedCancel(ctx context.Context, accountNumber string, amount int64) (*models.Transaction, error)
}

// TransactionHandler handles balance use and cancel requests. On a domain
// validation failure it appends the FAILURE audit record before responding;
// infrastructure faults and malformed requests do not leave an audit trail.
type TransactionHandler struct {
	ledger Ledger
}

func NewTransactionHandler(ledger Ledger) *TransactionHandler {
	return &TransactionHandler{ledger: ledger}
}

type UseBalanceRequest struct {
	OwnerID       int64  `json:"ownerId" validate:"required,min=1"`
	AccountNumber string `json:"accountNumber" validate:"required,len=10"`
	Amount        int64  `json:"amount" validate:"required,gte=10,lte=1000000000"`
}

type CancelBalanceRequest struct {
	TransactionID string `json:"transactionId" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required,len=10"`
	Amount        int64  `json:"amount" validate:"required,gte=10,lte=1000000000"`
}

type TransactionResponse struct {
	AccountNumber string                   `json:"accountNumber"`
	Result        models.TransactionResult `json:"result"`
	TransactionID string                   `json:"transactionId"`
	Amount        int64                    `json:"amount"`
	TransactedAt  time.Time                `json:"transactedTimestamp"`
}

func (h *TransactionHandler) UseBalance(c *gin.Context) {
	var req UseBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.ledger.UseBalance(c.Request.Context(), req.OwnerID, req.AccountNumber, req.Amount)
	if err != nil {
		if models.IsLedgerError(err) {
			if _, auditErr := h.ledger.RecordFailedUse(c.Request.Context(), req.AccountNumber, req.Amount); auditErr != nil {
				log.Printf("Failed to record failed use for account %s: %v", req.AccountNumber, auditErr)
			}
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactionResponse(req.AccountNumber, transaction))
}

func (h *TransactionHandler) CancelBalance(c *gin.Context) {
	var req CancelBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	transaction, err := h.ledger.CancelBalance(c.Request.Context(), req.TransactionID, req.AccountNumber, req.Amount)
	if err != nil {
		if models.IsLedgerError(err) {
			if _, auditErr := h.ledger.RecordFailedCancel(c.Request.Context(), req.AccountNumber, req.Amount); auditErr != nil {
				log.Printf("Failed to record failed cancel for account %s: %v", req.AccountNumber, auditErr)
			}
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, transactionResponse(req.AccountNumber, transaction))
}

func transactionResponse(accountNumber string, t *models.Transaction) TransactionResponse {
	return TransactionResponse{
		AccountNumber: accountNumber,
		Result:        t.Result,
		TransactionID: t.TransactionID,
		Amount:        t.Amount,
		TransactedAt:  t.TransactedAt,
	}
}
