package model

// Category labels transactions of one type (income or expense).
type Category struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Type   TransactionType `json:"type"`
	Color  string          `json:"color"`
	Icon   string          `json:"icon"`
	Active bool            `json:"active"`
}

// CategoryPatch is a partial Category update.
type CategoryPatch struct {
	Name   *string
	Type   *TransactionType
	Color  *string
	Icon   *string
	Active *bool
}

// Apply merges the non-nil fields into c.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Type != nil {
		c.Type = *p.Type
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.Icon != nil {
		c.Icon = *p.Icon
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
	return c
}

// CostCenter groups transactions by organizational unit.
type CostCenter struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

// CostCenterPatch is a partial CostCenter update.
type CostCenterPatch struct {
	Name        *string
	Description *string
	Active      *bool
}

// Apply merges the non-nil fields into c.
func (p CostCenterPatch) Apply(c CostCenter) CostCenter {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
	if p.Active != nil {
		c.Active = *p.Active
	}
	return c
}
