package database

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/cuotas/internal/pagination"
)

// Where turns filter criteria into "col = $n" conditions joined by AND. columns maps each accepted
// filter key to its column expression; unknown keys are rejected. Placeholders start at argIdx.
// The returned clause has no leading WHERE and is empty for an empty filter.
func Where(filter pagination.Filter, columns map[string]string, argIdx int) (string, []any, error) {
	var (
		conds []string
		args  []any
	)

	for _, key := range pagination.Keys(filter) {
		col, ok := columns[key]
		if !ok {
			return "", nil, fmt.Errorf("unknown filter field %q", key)
		}

		conds = append(conds, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, filter.Get()[key])
		argIdx++
	}

	return strings.Join(conds, " AND "), args, nil
}

// And joins non-empty conditions.
func And(conds ...string) string {
	var parts []string

	for _, c := range conds {
		if c != "" {
			parts = append(parts, c)
		}
	}

	if len(parts) == 0 {
		return ""
	}

	return " WHERE " + strings.Join(parts, " AND ")
}
