package category

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/cuotas/internal/mapping"
	"github.com/MrJamesThe3rd/cuotas/internal/validation"
)

// Category classifies expenses (or incomes) for one owner.
type Category struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description string
	IsIncome    bool
}

func NewCategory(ownerID uuid.UUID, name, description string, isIncome bool) (*Category, error) {
	c := &Category{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Description: description,
		IsIncome:    isIncome,
	}

	if err := c.SetName(name); err != nil {
		return nil, fmt.Errorf("creating category: %w", err)
	}

	return c, nil
}

func (c *Category) SetName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validation.New("name", "cannot be empty")
	}

	c.Name = name

	return nil
}

type record struct {
	ID          uuid.UUID `mapstructure:"id"`
	OwnerID     uuid.UUID `mapstructure:"owner_id"`
	Name        string    `mapstructure:"name"`
	Description string    `mapstructure:"description"`
	IsIncome    bool      `mapstructure:"is_income"`
}

func (c *Category) ToMap() map[string]any {
	return map[string]any{
		"id":          c.ID.String(),
		"owner_id":    c.OwnerID.String(),
		"name":        c.Name,
		"description": c.Description,
		"is_income":   c.IsIncome,
	}
}

func FromMap(m map[string]any) (*Category, error) {
	var rec record
	if err := mapping.Decode(m, &rec); err != nil {
		return nil, fmt.Errorf("decoding category: %w", err)
	}

	c := &Category{
		ID:          rec.ID,
		OwnerID:     rec.OwnerID,
		Description: rec.Description,
		IsIncome:    rec.IsIncome,
	}

	if err := c.SetName(rec.Name); err != nil {
		return nil, fmt.Errorf("decoding category: %w", err)
	}

	return c, nil
}
