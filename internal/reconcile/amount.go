package reconcile

import (
	"strings"

	"github.com/MrJamesThe3rd/cuotas/internal/amount"
)

// parseAmount accepts "1234.56", "1234,56", "1.234,56" and "1,234.56". When both separators
// appear the rightmost one is the decimal mark.
func parseAmount(s string) (amount.Amount, error) {
	clean := strings.ReplaceAll(s, " ", "")

	dot, comma := strings.LastIndex(clean, "."), strings.LastIndex(clean, ",")

	switch {
	case comma > dot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case dot > comma && comma >= 0:
		clean = strings.ReplaceAll(clean, ",", "")
	}

	return amount.NewFromString(clean)
}
