// Package finance owns the ledger state: transactions, categories, cost
// centers and settings, each persisted wholesale under its own storage key.
package finance

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/financehub-dev/financehub/internal/catalog"
	"github.com/financehub-dev/financehub/internal/id"
	"github.com/financehub-dev/financehub/internal/logctx"
	"github.com/financehub-dev/financehub/internal/mockdata"
	"github.com/financehub-dev/financehub/internal/model"
	"github.com/financehub-dev/financehub/internal/storage"
)

// ErrNotFound is returned when an id matches no record.
var ErrNotFound = errors.New("not found")

// Generator produces the demo ledger.
type Generator interface {
	Transactions(today model.Date) []model.Transaction
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides how "today" is computed.
func WithClock(today func() model.Date) Option {
	return func(s *Service) { s.today = today }
}

// WithGenerator overrides the demo data generator.
func WithGenerator(g Generator) Option {
	return func(s *Service) { s.gen = g }
}

// WithIDs overrides id generation.
func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// Service provides the ledger operations. Mutations are serialized and each
// one rewrites the affected collection in full.
type Service struct {
	mu    sync.Mutex
	store storage.Store
	gen   Generator
	today func() model.Date
	newID func() string

	transactions []model.Transaction
	categories   []model.Category
	costCenters  []model.CostCenter
	settings     model.Settings
}

// Open loads the ledger from store, seeding demo data on first use.
func Open(ctx context.Context, store storage.Store, opts ...Option) (*Service, error) {
	s := &Service{
		store: store,
		today: model.Today,
		newID: id.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		s.gen = mockdata.NewGenerator(nil)
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Service) load(ctx context.Context) error {
	logger := logctx.FromContext(ctx)

	_, err := s.store.Get(ctx, KeyInitialized)
	if errors.Is(err, storage.ErrNotFound) {
		logger.DebugContext(ctx, "Ledger not initialized, seeding demo data")
		return s.seed(ctx)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", KeyInitialized, err)
	}

	s.transactions = []model.Transaction{}
	s.categories = catalog.DefaultCategories()
	s.costCenters = catalog.DefaultCostCenters()
	s.settings = catalog.DefaultSettings()

	if _, err := storage.GetJSON(ctx, s.store, KeyTransactions, &s.transactions); err != nil {
		return err
	}
	if _, err := storage.GetJSON(ctx, s.store, KeyCategories, &s.categories); err != nil {
		return err
	}
	if _, err := storage.GetJSON(ctx, s.store, KeyCostCenters, &s.costCenters); err != nil {
		return err
	}
	if _, err := storage.GetJSON(ctx, s.store, KeySettings, &s.settings); err != nil {
		return err
	}
	logger.DebugContext(ctx, "Loaded ledger",
		"transactions", len(s.transactions),
		"categories", len(s.categories),
		"costCenters", len(s.costCenters),
	)
	return nil
}

// seed replaces everything with fresh demo data and marks the store
// initialized. Memory is only updated once every write has succeeded.
func (s *Service) seed(ctx context.Context) error {
	txs := s.gen.Transactions(s.today())
	if txs == nil {
		txs = []model.Transaction{}
	}
	cats := catalog.DefaultCategories()
	ccs := catalog.DefaultCostCenters()
	settings := catalog.DefaultSettings()

	for _, entry := range []struct {
		key   string
		value any
	}{
		{KeyTransactions, txs},
		{KeyCategories, cats},
		{KeyCostCenters, ccs},
		{KeySettings, settings},
	} {
		if err := storage.SetJSON(ctx, s.store, entry.key, entry.value); err != nil {
			return err
		}
	}
	if err := s.store.Set(ctx, KeyInitialized, []byte(initializedValue)); err != nil {
		return fmt.Errorf("writing %s: %w", KeyInitialized, err)
	}

	s.transactions = txs
	s.categories = cats
	s.costCenters = ccs
	s.settings = settings
	return nil
}

// Today returns the service's notion of the current day.
func (s *Service) Today() model.Date { return s.today() }

// Transactions returns a copy of the ledger, newest additions first.
func (s *Service) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.transactions)
}

// Categories returns a copy of the category list.
func (s *Service) Categories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.categories)
}

// CostCenters returns a copy of the cost center list.
func (s *Service) CostCenters() []model.CostCenter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.costCenters)
}

// Settings returns the current settings.
func (s *Service) Settings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Catalog returns a lookup over the current categories and cost centers.
func (s *Service) Catalog() *catalog.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.NewService(s.categories, s.costCenters)
}

// Transaction returns the transaction with the given id.
func (s *Service) Transaction(txID string) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(txID)
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	return s.transactions[i], nil
}

// CategoryByID returns the category with the given id.
func (s *Service) CategoryByID(catID string) (model.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == catID {
			return c, true
		}
	}
	return model.Category{}, false
}

// CostCenterByID returns the cost center with the given id.
func (s *Service) CostCenterByID(ccID string) (model.CostCenter, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.costCenters {
		if c.ID == ccID {
			return c, true
		}
	}
	return model.CostCenter{}, false
}

func (s *Service) indexOf(txID string) int {
	return slices.IndexFunc(s.transactions, func(t model.Transaction) bool { return t.ID == txID })
}

// AddTransaction validates tx, assigns a new id and timestamps, and prepends it.
// Any id or timestamps already on tx are ignored.
func (s *Service) AddTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addLocked(ctx, tx)
}

func (s *Service) addLocked(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	if err := ValidateTransaction(tx).errOrNil(); err != nil {
		return model.Transaction{}, err
	}
	today := s.today()
	tx.ID = s.newID()
	tx.CreatedAt = today
	tx.UpdatedAt = today
	if tx.Attachments == nil {
		tx.Attachments = []string{}
	}

	updated := append([]model.Transaction{tx}, s.transactions...)
	if err := s.persistTransactions(ctx, updated); err != nil {
		return model.Transaction{}, err
	}
	logctx.FromContext(ctx).DebugContext(ctx, "Added transaction", "id", tx.ID, "type", tx.Type)
	return tx, nil
}

// AddTransactions adds a batch in one write, validating every entry first.
// The batch is prepended in the given order.
func (s *Service) AddTransactions(ctx context.Context, txs []model.Transaction) ([]model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	today := s.today()
	added := make([]model.Transaction, 0, len(txs))
	for i, tx := range txs {
		if err := ValidateTransaction(tx).errOrNil(); err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, tx.Description, err)
		}
		tx.ID = s.newID()
		tx.CreatedAt = today
		tx.UpdatedAt = today
		if tx.Attachments == nil {
			tx.Attachments = []string{}
		}
		added = append(added, tx)
	}
	if len(added) == 0 {
		return added, nil
	}

	updated := append(slices.Clone(added), s.transactions...)
	if err := s.persistTransactions(ctx, updated); err != nil {
		return nil, err
	}
	logctx.FromContext(ctx).InfoContext(ctx, "Added transactions", "count", len(added))
	return added, nil
}

// UpdateTransaction merges patch into the transaction with the given id and
// refreshes updatedAt. An unknown id leaves the data unchanged and returns ErrNotFound.
func (s *Service) UpdateTransaction(ctx context.Context, txID string, patch model.TransactionPatch) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateLocked(ctx, txID, patch)
}

func (s *Service) updateLocked(ctx context.Context, txID string, patch model.TransactionPatch) (model.Transaction, error) {
	i := s.indexOf(txID)
	if i < 0 {
		if err := s.persistTransactions(ctx, s.transactions); err != nil {
			return model.Transaction{}, err
		}
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}

	merged := patch.Apply(s.transactions[i])
	merged.UpdatedAt = s.today()
	if err := ValidateTransaction(merged).errOrNil(); err != nil {
		return model.Transaction{}, err
	}

	updated := slices.Clone(s.transactions)
	updated[i] = merged
	if err := s.persistTransactions(ctx, updated); err != nil {
		return model.Transaction{}, err
	}
	return merged, nil
}

// MarkAsPaid sets status to paid and paidAt to today.
func (s *Service) MarkAsPaid(ctx context.Context, txID string) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := model.StatusPaid
	today := s.today()
	return s.updateLocked(ctx, txID, model.TransactionPatch{Status: &status, PaidAt: &today})
}

// DuplicateTransaction adds a copy of the transaction with a new id and
// CopySuffix appended to the description.
func (s *Service) DuplicateTransaction(ctx context.Context, txID string) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(txID)
	if i < 0 {
		return model.Transaction{}, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	dup := s.transactions[i]
	dup.Description += CopySuffix
	dup.Attachments = slices.Clone(dup.Attachments)
	if dup.PaidAt != nil {
		paid := *dup.PaidAt
		dup.PaidAt = &paid
	}
	return s.addLocked(ctx, dup)
}

// DeleteTransaction removes one transaction.
func (s *Service) DeleteTransaction(ctx context.Context, txID string) error {
	n, err := s.DeleteTransactions(ctx, []string{txID})
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	return nil
}

// DeleteTransactions removes every transaction whose id is in ids, keeping
// the order of the rest. It returns how many were removed.
func (s *Service) DeleteTransactions(ctx context.Context, ids []string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := id.Set(ids)
	updated := make([]model.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if _, ok := drop[t.ID]; !ok {
			updated = append(updated, t)
		}
	}
	removed := len(s.transactions) - len(updated)
	if err := s.persistTransactions(ctx, updated); err != nil {
		return 0, err
	}
	logctx.FromContext(ctx).DebugContext(ctx, "Deleted transactions", "requested", len(ids), "removed", removed)
	return removed, nil
}

// AddCategory validates c, assigns an id and appends it.
func (s *Service) AddCategory(ctx context.Context, c model.Category) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ValidateCategory(c).errOrNil(); err != nil {
		return model.Category{}, err
	}
	c.ID = s.newID()
	updated := append(slices.Clone(s.categories), c)
	if err := s.persistCategories(ctx, updated); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

// UpdateCategory merges patch into the category with the given id.
func (s *Service) UpdateCategory(ctx context.Context, catID string, patch model.CategoryPatch) (model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.categories, func(c model.Category) bool { return c.ID == catID })
	if i < 0 {
		return model.Category{}, fmt.Errorf("category %s: %w", catID, ErrNotFound)
	}
	merged := patch.Apply(s.categories[i])
	if err := ValidateCategory(merged).errOrNil(); err != nil {
		return model.Category{}, err
	}
	updated := slices.Clone(s.categories)
	updated[i] = merged
	if err := s.persistCategories(ctx, updated); err != nil {
		return model.Category{}, err
	}
	return merged, nil
}

// DeleteCategory removes a category. Transactions that reference it are left as they are.
func (s *Service) DeleteCategory(ctx context.Context, catID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := slices.DeleteFunc(slices.Clone(s.categories), func(c model.Category) bool { return c.ID == catID })
	if len(updated) == len(s.categories) {
		return fmt.Errorf("category %s: %w", catID, ErrNotFound)
	}
	return s.persistCategories(ctx, updated)
}

// AddCostCenter validates c, assigns an id and appends it.
func (s *Service) AddCostCenter(ctx context.Context, c model.CostCenter) (model.CostCenter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ValidateCostCenter(c).errOrNil(); err != nil {
		return model.CostCenter{}, err
	}
	c.ID = s.newID()
	updated := append(slices.Clone(s.costCenters), c)
	if err := s.persistCostCenters(ctx, updated); err != nil {
		return model.CostCenter{}, err
	}
	return c, nil
}

// UpdateCostCenter merges patch into the cost center with the given id.
func (s *Service) UpdateCostCenter(ctx context.Context, ccID string, patch model.CostCenterPatch) (model.CostCenter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.costCenters, func(c model.CostCenter) bool { return c.ID == ccID })
	if i < 0 {
		return model.CostCenter{}, fmt.Errorf("cost center %s: %w", ccID, ErrNotFound)
	}
	merged := patch.Apply(s.costCenters[i])
	if err := ValidateCostCenter(merged).errOrNil(); err != nil {
		return model.CostCenter{}, err
	}
	updated := slices.Clone(s.costCenters)
	updated[i] = merged
	if err := s.persistCostCenters(ctx, updated); err != nil {
		return model.CostCenter{}, err
	}
	return merged, nil
}

// DeleteCostCenter removes a cost center. Transactions that reference it are left as they are.
func (s *Service) DeleteCostCenter(ctx context.Context, ccID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated := slices.DeleteFunc(slices.Clone(s.costCenters), func(c model.CostCenter) bool { return c.ID == ccID })
	if len(updated) == len(s.costCenters) {
		return fmt.Errorf("cost center %s: %w", ccID, ErrNotFound)
	}
	return s.persistCostCenters(ctx, updated)
}

// UpdateSettings merges patch into the settings and writes them wholesale.
func (s *Service) UpdateSettings(ctx context.Context, patch model.SettingsPatch) (model.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := patch.Apply(s.settings)
	if err := ValidateSettings(merged).errOrNil(); err != nil {
		return model.Settings{}, err
	}
	if err := storage.SetJSON(ctx, s.store, KeySettings, merged); err != nil {
		return model.Settings{}, err
	}
	s.settings = merged
	return merged, nil
}

// ReplaceTransactions swaps the whole ledger for txs, as a restore does.
func (s *Service) ReplaceTransactions(ctx context.Context, txs []model.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range txs {
		if err := ValidateTransaction(t).errOrNil(); err != nil {
			return fmt.Errorf("transaction %s: %w", t.ID, err)
		}
	}
	updated := make([]model.Transaction, len(txs))
	copy(updated, txs)
	return s.persistTransactions(ctx, updated)
}

// Reset removes every stored entry, including the initialized flag. The
// in-memory ledger becomes empty and the catalog and settings fall back to defaults.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range Keys {
		if err := s.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("removing %s: %w", key, err)
		}
	}
	s.transactions = []model.Transaction{}
	s.categories = catalog.DefaultCategories()
	s.costCenters = catalog.DefaultCostCenters()
	s.settings = catalog.DefaultSettings()
	logctx.FromContext(ctx).InfoContext(ctx, "Ledger reset")
	return nil
}

// ReloadDemo regenerates demo data and writes every entry.
func (s *Service) ReloadDemo(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.seed(ctx); err != nil {
		return err
	}
	logctx.FromContext(ctx).InfoContext(ctx, "Demo data reloaded", "transactions", len(s.transactions))
	return nil
}

func (s *Service) persistTransactions(ctx context.Context, txs []model.Transaction) error {
	if err := storage.SetJSON(ctx, s.store, KeyTransactions, txs); err != nil {
		return err
	}
	s.transactions = txs
	return nil
}

func (s *Service) persistCategories(ctx context.Context, cats []model.Category) error {
	if err := storage.SetJSON(ctx, s.store, KeyCategories, cats); err != nil {
		return err
	}
	s.categories = cats
	return nil
}

func (s *Service) persistCostCenters(ctx context.Context, ccs []model.CostCenter) error {
	if err := storage.SetJSON(ctx, s.store, KeyCostCenters, ccs); err != nil {
		return err
	}
	s.costCenters = ccs
	return nil
}
