package catalog

import "github.com/financehub-dev/financehub/internal/model"

// DefaultCategories returns the built-in chart of categories.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: "cat-1", Name: "Vendas", Type: model.TypeIncome, Color: "#22c55e", Icon: "shopping-cart", Active: true},
		{ID: "cat-2", Name: "Serviços", Type: model.TypeIncome, Color: "#3b82f6", Icon: "briefcase", Active: true},
		{ID: "cat-3", Name: "Juros", Type: model.TypeIncome, Color: "#8b5cf6", Icon: "trending-up", Active: true},
		{ID: "cat-4", Name: "Outras Receitas", Type: model.TypeIncome, Color: "#06b6d4", Icon: "plus-circle", Active: true},
		{ID: "cat-5", Name: "Fornecedores", Type: model.TypeExpense, Color: "#ef4444", Icon: "truck", Active: true},
		{ID: "cat-6", Name: "Folha de Pagamento", Type: model.TypeExpense, Color: "#f97316", Icon: "users", Active: true},
		{ID: "cat-7", Name: "Ferramentas SaaS", Type: model.TypeExpense, Color: "#ec4899", Icon: "cloud", Active: true},
		{ID: "cat-8", Name: "Impostos", Type: model.TypeExpense, Color: "#dc2626", Icon: "file-text", Active: true},
		{ID: "cat-9", Name: "Aluguel", Type: model.TypeExpense, Color: "#9333ea", Icon: "home", Active: true},
		{ID: "cat-10", Name: "Marketing", Type: model.TypeExpense, Color: "#14b8a6", Icon: "megaphone", Active: true},
		{ID: "cat-11", Name: "Outras Despesas", Type: model.TypeExpense, Color: "#64748b", Icon: "minus-circle", Active: true},
	}
}

// DefaultCostCenters returns the built-in cost centers.
func DefaultCostCenters() []model.CostCenter {
	return []model.CostCenter{
		{ID: "cc-1", Name: "Operações", Description: "Custos operacionais da empresa", Active: true},
		{ID: "cc-2", Name: "Administrativo", Description: "Despesas administrativas", Active: true},
		{ID: "cc-3", Name: "Comercial", Description: "Vendas e marketing", Active: true},
		{ID: "cc-4", Name: "TI", Description: "Tecnologia e sistemas", Active: true},
		{ID: "cc-5", Name: "RH", Description: "Recursos humanos", Active: true},
	}
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() model.Settings {
	return model.Settings{
		Currency:     "BRL",
		WeekStartsOn: 1,
		Theme:        model.ThemeLight,
		CompanyName:  "Empresa Demo LTDA",
		CNPJ:         "12.345.678/0001-90",
		Email:        "contato@empresademo.com.br",
	}
}
