package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const accountNumberLength = 10

// newTransactionID generates the opaque transaction token: a UUID with the
// dashes stripped.
func newTransactionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func parseAccountNumber(accountNumber string) (int64, error) {
	if len(accountNumber) != accountNumberLength {
		return 0, fmt.Errorf("malformed account number %q", accountNumber)
	}
	parsed, err := strconv.ParseInt(accountNumber, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed account number %q: %w", accountNumber, err)
	}
	return parsed, nil
}
