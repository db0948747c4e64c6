package catalog

import "github.com/financehub-dev/financehub/internal/model"

// UnknownName labels transactions whose category or cost center no longer exists.
const UnknownName = "Others"

// UnknownColor is the chart color for unknown categories.
const UnknownColor = "#64748b"

// Service provides in-memory lookup over categories and cost centers.
type Service struct {
	categories  []model.Category
	costCenters []model.CostCenter
	catByID     map[string]model.Category
	ccByID      map[string]model.CostCenter
}

// NewService indexes the given categories and cost centers.
func NewService(categories []model.Category, costCenters []model.CostCenter) *Service {
	catByID := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		catByID[c.ID] = c
	}
	ccByID := make(map[string]model.CostCenter, len(costCenters))
	for _, c := range costCenters {
		ccByID[c.ID] = c
	}
	return &Service{
		categories:  categories,
		costCenters: costCenters,
		catByID:     catByID,
		ccByID:      ccByID,
	}
}

// Categories returns all categories.
func (s *Service) Categories() []model.Category {
	return s.categories
}

// CostCenters returns all cost centers.
func (s *Service) CostCenters() []model.CostCenter {
	return s.costCenters
}

// Category returns a category by ID.
func (s *Service) Category(id string) (model.Category, bool) {
	c, ok := s.catByID[id]
	return c, ok
}

// CostCenter returns a cost center by ID.
func (s *Service) CostCenter(id string) (model.CostCenter, bool) {
	c, ok := s.ccByID[id]
	return c, ok
}

// CategoryName returns the category's name, or "" when it does not exist.
func (s *Service) CategoryName(id string) string {
	return s.catByID[id].Name
}

// CategoryLabel is CategoryName with UnknownName as fallback.
func (s *Service) CategoryLabel(id string) string {
	if c, ok := s.catByID[id]; ok {
		return c.Name
	}
	return UnknownName
}

// CategoryColor returns the category's color, or UnknownColor.
func (s *Service) CategoryColor(id string) string {
	if c, ok := s.catByID[id]; ok {
		return c.Color
	}
	return UnknownColor
}

// CostCenterLabel returns the cost center's name, or UnknownName.
func (s *Service) CostCenterLabel(id string) string {
	if c, ok := s.ccByID[id]; ok {
		return c.Name
	}
	return UnknownName
}

// ByType returns all categories of the given type.
func (s *Service) ByType(t model.TransactionType) []model.Category {
	var result []model.Category
	for _, c := range s.categories {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}
