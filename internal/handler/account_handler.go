package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Matilda0841/AccountSystem-ZB/internal/middleware"
	"github.com/Matilda0841/AccountSystem-ZB/internal/models"
)

// AccountDirectory defines the account-lifecycle operations used by AccountHandler.
type AccountDirectory interface {
	Open(ctx context.Context, ownerID, initialBalance int64) (*models.Account, error)
	Close(ctx context.Context, ownerID int64, accountNumber string) (*models.Account, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.AccountView, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accounts AccountDirectory
}

func NewAccountHandler(accounts AccountDirectory) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// OpenAccountRequest only rejects negative balances here; the minimum initial
// balance is runtime-configurable, so the service enforces it against the
// configured floor and the handler maps the error to 400.
type OpenAccountRequest struct {
	OwnerID        int64 `json:"ownerId" validate:"required,min=1"`
	InitialBalance int64 `json:"initialBalance" validate:"min=0"`
}

type CloseAccountRequest struct {
	OwnerID       int64  `json:"ownerId" validate:"required,min=1"`
	AccountNumber string `json:"accountNumber" validate:"required,len=10"`
}

type OpenAccountResponse struct {
	OwnerID       int64     `json:"ownerId"`
	AccountNumber string    `json:"accountNumber"`
	RegisteredAt  time.Time `json:"registeredTimestamp"`
}

type CloseAccountResponse struct {
	OwnerID        int64      `json:"ownerId"`
	AccountNumber  string     `json:"accountNumber"`
	RegisteredAt   time.Time  `json:"registeredTimestamp"`
	UnregisteredAt *time.Time `json:"unregisteredTimestamp"`
}

type AccountInfo struct {
	AccountNumber string `json:"accountNumber"`
	Balance       int64  `json:"balance"`
}

func (h *AccountHandler) OpenAccount(c *gin.Context) {
	var req OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.accounts.Open(c.Request.Context(), req.OwnerID, req.InitialBalance)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, OpenAccountResponse{
		OwnerID:       account.OwnerID,
		AccountNumber: account.AccountNumber,
		RegisteredAt:  account.RegisteredAt,
	})
}

func (h *AccountHandler) CloseAccount(c *gin.Context) {
	var req CloseAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	account, err := h.accounts.Close(c.Request.Context(), req.OwnerID, req.AccountNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, CloseAccountResponse{
		OwnerID:        account.OwnerID,
		AccountNumber:  account.AccountNumber,
		RegisteredAt:   account.RegisteredAt,
		UnregisteredAt: account.UnregisteredAt,
	})
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Query("owner_id"), 10, 64)
	if err != nil || ownerID < 1 {
		middleware.RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", "owner_id query parameter is required")
		return
	}

	accounts, err := h.accounts.ListByOwner(c.Request.Context(), ownerID)
	if err != nil {
		respondError(c, err)
		return
	}

	infos := make([]AccountInfo, 0, len(accounts))
	for _, account := range accounts {
		infos = append(infos, AccountInfo{
			AccountNumber: account.AccountNumber,
			Balance:       account.Balance,
		})
	}
	c.JSON(http.StatusOK, infos)
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "BAD_REQUEST", "Invalid account id")
		return
	}

	view, err := h.accounts.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
