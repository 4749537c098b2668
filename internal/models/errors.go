// Domain errors raised by the account and transaction services. These are
// caller-input or state-precondition violations, not infrastructure faults;
// the HTTP layer maps them to status codes and decides whether to append a
// failed-attempt audit record. Storage and lock errors are wrapped and
// propagated as-is, never folded into this set.
package models

import "errors"

var (
	// ErrOwnerNotFound indicates the owner id does not resolve to a known owner.
	ErrOwnerNotFound = errors.New("account owner not found")

	// ErrAccountNotFound indicates no account exists for the given number or id.
	ErrAccountNotFound = errors.New("account not found")

	// ErrOwnershipMismatch indicates the account belongs to a different owner.
	ErrOwnershipMismatch = errors.New("account owner does not match")

	// ErrAccountAlreadyClosed indicates a close on an already unregistered account.
	ErrAccountAlreadyClosed = errors.New("account already unregistered")

	// ErrBalanceNotEmpty indicates a close on an account that still holds balance.
	ErrBalanceNotEmpty = errors.New("account balance is not empty")

	// ErrAccountLimitExceeded indicates the owner already holds the maximum
	// number of accounts, open or closed.
	ErrAccountLimitExceeded = errors.New("maximum account count per owner exceeded")

	// ErrAccountClosed indicates a balance operation against an unregistered account.
	ErrAccountClosed = errors.New("account is unregistered")

	// ErrInsufficientBalance indicates the use amount exceeds the current balance.
	ErrInsufficientBalance = errors.New("amount exceeds account balance")

	// ErrTransactionNotFound indicates no transaction exists for the given id.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransactionAccountMismatch indicates the transaction does not belong
	// to the given account.
	ErrTransactionAccountMismatch = errors.New("transaction does not belong to account")

	// ErrCancelMustBeFull indicates a partial cancellation attempt.
	ErrCancelMustBeFull = errors.New("cancel amount must equal the original amount")

	// ErrCancelWindowExpired indicates the original transaction is older than
	// the cancellation window.
	ErrCancelWindowExpired = errors.New("transaction is too old to cancel")

	// ErrInitialBalanceTooSmall indicates an open with less than the configured
	// minimum initial balance.
	ErrInitialBalanceTooSmall = errors.New("initial balance below the configured minimum")
)

var ledgerErrors = []error{
	ErrOwnerNotFound,
	ErrAccountNotFound,
	ErrOwnershipMismatch,
	ErrAccountAlreadyClosed,
	ErrBalanceNotEmpty,
	ErrAccountLimitExceeded,
	ErrAccountClosed,
	ErrInsufficientBalance,
	ErrTransactionNotFound,
	ErrTransactionAccountMismatch,
	ErrCancelMustBeFull,
	ErrCancelWindowExpired,
	ErrInitialBalanceTooSmall,
}

// IsLedgerError reports whether err belongs to the domain error set. The HTTP
// layer uses this to separate validation failures (which get a failed-attempt
// audit record) from infrastructure faults (which do not).
func IsLedgerError(err error) bool {
	for _, ledgerErr := range ledgerErrors {
		if errors.Is(err, ledgerErr) {
			return true
		}
	}
	return false
}

// ErrorCode returns the wire-level code for a domain error, or INTERNAL_ERROR
// for anything outside the set.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrOwnerNotFound):
		return "OWNER_NOT_FOUND"
	case errors.Is(err, ErrAccountNotFound):
		return "ACCOUNT_NOT_FOUND"
	case errors.Is(err, ErrOwnershipMismatch):
		return "OWNERSHIP_MISMATCH"
	case errors.Is(err, ErrAccountAlreadyClosed):
		return "ACCOUNT_ALREADY_CLOSED"
	case errors.Is(err, ErrBalanceNotEmpty):
		return "BALANCE_NOT_EMPTY"
	case errors.Is(err, ErrAccountLimitExceeded):
		return "ACCOUNT_LIMIT_EXCEEDED"
	case errors.Is(err, ErrAccountClosed):
		return "ACCOUNT_CLOSED"
	case errors.Is(err, ErrInsufficientBalance):
		return "INSUFFICIENT_BALANCE"
	case errors.Is(err, ErrTransactionNotFound):
		return "TRANSACTION_NOT_FOUND"
	case errors.Is(err, ErrTransactionAccountMismatch):
		return "TRANSACTION_ACCOUNT_MISMATCH"
	case errors.Is(err, ErrCancelMustBeFull):
		return "CANCEL_MUST_BE_FULL"
	case errors.Is(err, ErrCancelWindowExpired):
		return "CANCEL_WINDOW_EXPIRED"
	case errors.Is(err, ErrInitialBalanceTooSmall):
		return "INITIAL_BALANCE_TOO_SMALL"
	default:
		return "INTERNAL_ERROR"
	}
}
