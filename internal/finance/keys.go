package finance

// Storage keys, shared with the browser build.
const (
	KeyTransactions = "finance-hub-transactions"
	KeyCategories   = "finance-hub-categories"
	KeyCostCenters  = "finance-hub-cost-centers"
	KeySettings     = "finance-hub-settings"
	KeyInitialized  = "finance-hub-initialized"
)

// Keys lists every key Reset removes.
var Keys = []string{KeyTransactions, KeyCategories, KeyCostCenters, KeySettings, KeyInitialized}

const initializedValue = "true"

// CopySuffix is appended to the description of a duplicated transaction.
const CopySuffix = " (copy)"
