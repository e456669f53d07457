// Package pagination holds the paged query result and filter contracts shared by the repositories.
package pagination

import (
	"sort"
)

// Page is one slice of a larger result set. Page numbers start at 1.
type Page[T any] struct {
	Items      []T
	TotalItems int
	TotalPages int
	Page       int
	PageSize   int
}

// NewPage derives TotalPages from totalItems and pageSize.
func NewPage[T any](items []T, totalItems, page, pageSize int) Page[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (totalItems + pageSize - 1) / pageSize
	}

	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:      items,
		TotalItems: totalItems,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}

func (p Page[T]) HasNext() bool {
	return p.Page < p.TotalPages
}

func (p Page[T]) HasPrevious() bool {
	return p.Page > 1
}

// Offset is the number of rows to skip for the requested page.
func Offset(page, pageSize int) int {
	if page < 1 {
		return 0
	}

	return (page - 1) * pageSize
}

// Filter supplies opaque key/value criteria to a query. A nil Filter means no criteria.
type Filter interface {
	Get() map[string]any
}

// Criteria is the plain map implementation of Filter.
type Criteria map[string]any

func (c Criteria) Get() map[string]any {
	return c
}

// Keys returns the filter's keys in a stable order so generated queries are deterministic.
func Keys(f Filter) []string {
	if f == nil {
		return nil
	}

	criteria := f.Get()

	keys := make([]string, 0, len(criteria))
	for k := range criteria {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
