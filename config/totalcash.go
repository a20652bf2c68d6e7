package config

import (
	"os"
	"strings"
)

// TotalCashId returns the id of the singleton total-capital row. All cash
// movements in the ledger target this one row; callers must treat an empty
// value as a configuration error.
func TotalCashId() string {
	return strings.TrimSpace(os.Getenv("TOTAL_CASH_ID"))
}
