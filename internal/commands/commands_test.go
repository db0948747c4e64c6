package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financehub-dev/financehub/internal/activity"
	"github.com/financehub-dev/financehub/internal/config"
	"github.com/financehub-dev/financehub/internal/gitops"
	"github.com/financehub-dev/financehub/internal/model"
)

var testToday = model.MustDate("2024-03-15")

// emptyLedger seeds workspaces without demo transactions.
type emptyLedger struct{}

func (emptyLedger) Transactions(model.Date) []model.Transaction { return nil }

type session struct {
	t     *testing.T
	dir   string
	stdin string
}

func newSession(t *testing.T) *session {
	t.Helper()
	return &session{t: t, dir: t.TempDir()}
}

// run executes financehub in-process against the session's workspace.
func (s *session) run(args ...string) (string, error) {
	s.t.Helper()
	a := newApp(deps{
		today: func() model.Date { return testToday },
		now:   func() time.Time { return testToday.Time().Add(9 * time.Hour) },
		gen:   emptyLedger{},
	})
	cmd := newRootCommand(a)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(s.stdin))
	cmd.SetArgs(append(args,
		"--config", filepath.Join(s.dir, config.FileName),
		"--env-file", filepath.Join(s.dir, ".env"),
		"--raw",
	))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (s *session) mustRun(args ...string) string {
	s.t.Helper()
	out, err := s.run(args...)
	require.NoError(s.t, err, "financehub %s: %s", strings.Join(args, " "), out)
	return out
}

func initialized(t *testing.T) *session {
	t.Helper()
	s := newSession(t)
	s.mustRun("init", s.dir)
	return s
}

// addTx records a transaction and returns its id.
func (s *session) addTx(args ...string) string {
	s.t.Helper()
	out := s.mustRun(append([]string{"tx", "add"}, args...)...)
	id := strings.TrimSpace(strings.TrimPrefix(out, "Added transaction "))
	require.NotEmpty(s.t, id)
	return id
}

func (s *session) addSale() string {
	return s.addTx("--type", "income", "--amount", "1500", "--category", "cat-1", "--cost-center", "cc-1",
		"--description", "Consulting", "--status", "paid")
}

func (s *session) addBill(desc, due string) string {
	return s.addTx("--type", "expense", "--amount", "320.40", "--category", "cat-9", "--cost-center", "cc-2",
		"--description", desc, "--due", due)
}

func TestInit_CreatesWorkspace(t *testing.T) {
	s := newSession(t)
	out, err := s.run("init", s.dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized Finance Hub workspace")
	assert.Contains(t, out, "(0 transactions)")

	data, err := os.ReadFile(filepath.Join(s.dir, config.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: file")

	for _, key := range []string{"finance-hub-initialized", "finance-hub-transactions", "finance-hub-categories",
		"finance-hub-cost-centers", "finance-hub-settings", "pwa-installed"} {
		_, err := os.Stat(filepath.Join(s.dir, ".financehub", key+".json"))
		assert.NoError(t, err, "%s should be stored", key)
	}

	_, err = s.run("init", s.dir)
	assert.ErrorContains(t, err, "already exists")
}

func TestInit_SQLite(t *testing.T) {
	s := newSession(t)
	s.mustRun("init", s.dir, "--backend", "sqlite")

	_, err := os.Stat(filepath.Join(s.dir, "financehub.db"))
	require.NoError(t, err)

	s.addSale()
	assert.Contains(t, s.mustRun("tx", "list"), "Consulting")
}

func TestTx_Lifecycle(t *testing.T) {
	s := initialized(t)
	saleID := s.addSale()
	billID := s.addBill("Office rent", "2024-03-20")

	out := s.mustRun("tx", "list")
	assert.Contains(t, out, "Consulting")
	assert.Contains(t, out, "+R$1.500,00")
	assert.Contains(t, out, "-R$320,40")
	assert.Contains(t, out, "Page 1 of 1, 2 transactions")

	out = s.mustRun("tx", "list", "--search", "rent")
	assert.Contains(t, out, "Office rent")
	assert.NotContains(t, out, "Consulting")

	out = s.mustRun("tx", "list", "--type", "income")
	assert.Contains(t, out, "Consulting")
	assert.NotContains(t, out, "Office rent")

	out = s.mustRun("tx", "show", saleID)
	assert.Contains(t, out, "| Category | Vendas |")
	assert.Contains(t, out, "| Paid at | Mar 15, 2024 |")

	assert.Contains(t, s.mustRun("tx", "update", billID, "--amount", "350"), "Updated transaction "+billID)
	assert.Contains(t, s.mustRun("tx", "show", billID), "-R$350,00")

	assert.Contains(t, s.mustRun("tx", "pay", billID), "Marked "+billID+" as paid on 2024-03-15")
	assert.Contains(t, s.mustRun("tx", "show", billID), "| Status | Paid |")

	out = s.mustRun("tx", "duplicate", saleID)
	copyID := strings.TrimSpace(strings.TrimPrefix(out, "Added transaction "))
	assert.Contains(t, s.mustRun("tx", "show", copyID), "Consulting (copy)")

	assert.Contains(t, s.mustRun("tx", "delete", saleID, copyID, saleID, "missing"), "Deleted 2 of 3 transactions")
	out = s.mustRun("tx", "list")
	assert.NotContains(t, out, "Consulting")
	assert.Contains(t, out, "Office rent")
}

func TestTx_Errors(t *testing.T) {
	s := initialized(t)

	_, err := s.run("tx", "add", "--amount", "10", "--category", "cat-9", "--cost-center", "cc-1")
	assert.ErrorContains(t, err, "description")

	_, err = s.run("tx", "add", "--amount", "ten")
	assert.ErrorContains(t, err, "invalid amount")

	_, err = s.run("tx", "add", "--amount", "10", "--date", "15/03/2024")
	assert.ErrorContains(t, err, "--date")

	_, err = s.run("tx", "show", "missing")
	assert.ErrorContains(t, err, "not found")

	_, err = s.run("tx", "update", "missing", "--amount", "1")
	assert.ErrorContains(t, err, "not found")

	id := s.addSale()
	_, err = s.run("tx", "update", id)
	assert.ErrorContains(t, err, "nothing to update")
}

func TestDashboard(t *testing.T) {
	s := initialized(t)
	s.addSale()
	s.addBill("Internet", "2024-03-18")

	out := s.mustRun("dashboard")
	assert.Contains(t, out, "# Empresa Demo LTDA")
	assert.Contains(t, out, "| Current balance | R$1.500,00 |")
	assert.Contains(t, out, "| Mar 18, 2024 | Internet | Aluguel | -R$320,40 |")
}

func TestBills(t *testing.T) {
	s := initialized(t)
	s.addSale()
	s.addBill("Supplier", "2024-03-20")

	out := s.mustRun("payables")
	assert.Contains(t, out, "# Accounts payable")
	assert.Contains(t, out, "Supplier")

	out = s.mustRun("receivables", "--tab", "received")
	assert.Contains(t, out, "# Accounts receivable")
	assert.Contains(t, out, "Consulting")

	_, err := s.run("payables", "--tab", "late")
	assert.ErrorContains(t, err, "unknown tab")
}

func TestExports(t *testing.T) {
	s := initialized(t)
	s.addSale()
	exportDir := t.TempDir()

	out := s.mustRun("tx", "list", "--export", exportDir)
	assert.Contains(t, out, "Exported 1 rows")
	data, err := os.ReadFile(filepath.Join(exportDir, "transactions.csv"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\ufeff"))
	assert.Contains(t, string(data), "Consulting")

	out = s.mustRun("payables", "--export", exportDir)
	assert.Contains(t, out, "Nothing to export for payables.")
	_, err = os.Stat(filepath.Join(exportDir, "payables.csv"))
	assert.True(t, os.IsNotExist(err))

	s.mustRun("report", "--month", "2024-03", "--export", exportDir)
	for _, name := range []string{"category-report.csv", "cost-center-report.csv"} {
		_, err := os.Stat(filepath.Join(exportDir, name))
		assert.NoError(t, err, name)
	}
}

func TestMonthViews(t *testing.T) {
	s := initialized(t)
	s.addSale()

	out := s.mustRun("cashflow")
	assert.Contains(t, out, "# Cash flow, March 2024")
	assert.Contains(t, out, "### Mar 15, 2024")

	out = s.mustRun("cashflow", "--month", "2024-02")
	assert.Contains(t, out, "No paid transactions this month.")

	out = s.mustRun("report", "-m", "2024-03")
	assert.Contains(t, out, "# Reports, March 2024")
	assert.Contains(t, out, "| Vendas | R$1.500,00 | R$0,00 | R$1.500,00 |")

	_, err := s.run("report", "--month", "March")
	assert.ErrorContains(t, err, "YYYY-MM")
}

func TestCategoryAndCostCenter(t *testing.T) {
	s := initialized(t)

	out := s.mustRun("category", "add", "--name", "Consultoria", "--type", "income", "--color", "#0ea5e9")
	catID := strings.TrimSpace(strings.TrimPrefix(out, "Added category "))
	assert.Contains(t, s.mustRun("category", "list"), "Consultoria")

	s.mustRun("category", "update", catID, "--name", "Consultoria PJ", "--active=false")
	out = s.mustRun("category", "list")
	assert.Contains(t, out, "| `"+catID+"` | Consultoria PJ | income | #0ea5e9 | no |")

	s.mustRun("category", "delete", catID)
	assert.NotContains(t, s.mustRun("category", "list"), "Consultoria")
	_, err := s.run("category", "delete", catID)
	assert.ErrorContains(t, err, "not found")

	_, err = s.run("category", "add", "--type", "income")
	assert.ErrorContains(t, err, "name")

	out = s.mustRun("costcenter", "add", "--name", "Filial Sul", "--description", "Porto Alegre")
	ccID := strings.TrimSpace(strings.TrimPrefix(out, "Added cost center "))
	s.mustRun("cc", "update", ccID, "--description", "Curitiba")
	assert.Contains(t, s.mustRun("costcenter", "list"), "| `"+ccID+"` | Filial Sul | Curitiba | yes |")
	s.mustRun("costcenter", "delete", ccID)
	assert.NotContains(t, s.mustRun("costcenter", "list"), "Filial Sul")
}

func TestSettings(t *testing.T) {
	s := initialized(t)

	out := s.mustRun("settings")
	assert.Contains(t, out, "| Currency | BRL |")
	assert.Contains(t, out, "| Week starts on | Monday |")

	s.mustRun("settings", "set", "--currency", "usd", "--week-start", "0", "--company", "Acme Inc")
	out = s.mustRun("settings")
	assert.Contains(t, out, "| Currency | USD |")
	assert.Contains(t, out, "| Week starts on | Sunday |")
	assert.Contains(t, out, "| Company | Acme Inc |")

	s.addSale()
	assert.Contains(t, s.mustRun("tx", "list"), "+$1,500.00")

	_, err := s.run("settings", "set")
	assert.ErrorContains(t, err, "nothing to change")
	_, err = s.run("settings", "set", "--theme", "blue")
	assert.ErrorContains(t, err, "theme")
	_, err = s.run("settings", "set", "--currency", "XYZ")
	assert.ErrorContains(t, err, "currency")
}

func TestData_BackupResetRestore(t *testing.T) {
	s := initialized(t)
	s.addSale()
	s.addBill("Electricity", "2024-03-25")
	backup := filepath.Join(t.TempDir(), "ledger.csv")

	assert.Contains(t, s.mustRun("data", "backup", backup), "Saved 2 transactions")

	// Declined: stdin is empty.
	s.mustRun("data", "reset")
	assert.Contains(t, s.mustRun("tx", "list"), "Electricity")

	s.mustRun("data", "reset", "--yes")
	assert.Contains(t, s.mustRun("tx", "list"), "No transactions found.")

	assert.Contains(t, s.mustRun("data", "restore", backup, "--yes"), "Restored 2 transactions")
	out := s.mustRun("tx", "list")
	assert.Contains(t, out, "Electricity")
	assert.Contains(t, out, "Consulting")

	_, err := s.run("data", "restore", filepath.Join(t.TempDir(), "missing.csv"), "--yes")
	assert.Error(t, err)
}

func TestData_Demo(t *testing.T) {
	s := initialized(t)
	s.stdin = "y\n"
	assert.Contains(t, s.mustRun("data", "demo"), "Generated 0 demo transactions")
}

func TestRemind(t *testing.T) {
	s := initialized(t)
	assert.Contains(t, s.mustRun("remind"), "Nothing due and nothing overdue.")

	s.addBill("Water", "2024-03-16")
	out := s.mustRun("remind")
	assert.Contains(t, out, "# Empresa Demo LTDA reminders")
	assert.Contains(t, out, "Water")
}

func TestTx_Import(t *testing.T) {
	s := initialized(t)
	statement := filepath.Join(s.dir, "statement.csv")
	require.NoError(t, os.WriteFile(statement, []byte(
		"date,description,amount\n2024-03-04,Cliente Norte,2000.00\n2024-03-05,Energia,-310.25\n"), 0o644))

	out := s.mustRun("tx", "import", statement, "--format", "simple", "--dry-run")
	assert.Contains(t, out, "Would import 2 transactions, 0 skipped")
	assert.NotContains(t, s.mustRun("tx", "list"), "Cliente Norte")

	out = s.mustRun("tx", "import", statement, "--format", "simple", "--expense-category", "cat-7")
	assert.Contains(t, out, "Imported 2 transactions, 0 skipped")

	list := s.mustRun("tx", "list", "--status", "paid")
	assert.Contains(t, list, "Cliente Norte")
	assert.Contains(t, list, "Energia")

	out = s.mustRun("tx", "import", statement, "--format", "simple")
	assert.Contains(t, out, "Imported 0 transactions, 2 skipped")

	_, err := s.run("tx", "import", statement, "--format", "ofx")
	assert.ErrorContains(t, err, "unknown format")
}

func TestLog(t *testing.T) {
	s := initialized(t)
	id := s.addSale()
	s.mustRun("settings", "set", "--currency", "usd")

	out := s.mustRun("log")
	assert.Contains(t, out, "| init |")
	assert.Contains(t, out, "| tx.add | `"+id+"` | Consulting |")
	assert.Contains(t, out, "currency")
	assert.Less(t, strings.Index(out, "settings.set"), strings.Index(out, "tx.add"), "newest first")

	out = s.mustRun("log", "--limit", "1")
	assert.Contains(t, out, "settings.set")
	assert.NotContains(t, out, "tx.add")

	entries, err := activity.Read(filepath.Join(s.dir, activity.DefaultPath))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-03-15T09:00:00Z", entries[1].Timestamp.Format(time.RFC3339))
}

func TestInit_Git(t *testing.T) {
	if !gitops.Available() {
		t.Skip("git not installed")
	}
	s := newSession(t)
	s.mustRun("init", s.dir, "--git")
	store := filepath.Join(s.dir, ".financehub")
	assert.True(t, gitops.IsRepo(store))

	id := s.addSale()
	out, err := exec.Command("git", "-C", store, "log", "--format=%s").Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "tx.add "+id+": Consulting")
	assert.Contains(t, string(out), "init: file backend")

	entries, err := activity.Read(filepath.Join(s.dir, activity.DefaultPath))
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.NotEmpty(t, entries[len(entries)-1].Commit)

	_, err = s.run("init", t.TempDir(), "--git", "--backend", "sqlite")
	assert.ErrorContains(t, err, "--git needs the file backend")
}

func TestTx_DeleteRepeatedIDs(t *testing.T) {
	s := initialized(t)
	saleID := s.addSale()

	assert.Contains(t, s.mustRun("tx", "delete", saleID, saleID), "Deleted 1 of 1 transactions")

	_, err := s.run("tx", "delete", " ")
	assert.ErrorContains(t, err, "no transaction ids given")
}
