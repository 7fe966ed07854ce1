package budget

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-dev/daybook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func amt(srcCur, src, destCur, dest string) model.Amount {
	a, err := model.NewAmount(srcCur, dec(src), destCur, dec(dest))
	if err != nil {
		panic(err)
	}
	return a
}

const marchBudget = `---
budget:
  income.myjob: -5000
  expense.grocery: 300
  liability.mortgage: 1000
---

## Notes
Decided to spend more on groceries this month.
`

func TestLoad_Basic(t *testing.T) {
	b, err := Load(strings.NewReader(marchBudget))
	require.NoError(t, err)

	require.Len(t, b, 3)
	assert.True(t, b["income.myjob"].Equal(dec("-5000")))
	assert.True(t, b["expense.grocery"].Equal(dec("300")))
	assert.True(t, b["liability.mortgage"].Equal(dec("1000")))
}

func TestLoad_BareMap(t *testing.T) {
	b, err := Load(strings.NewReader(`---
expense.grocery: 250.50
---
`))
	require.NoError(t, err)
	assert.True(t, b["expense.grocery"].Equal(dec("250.50")))
}

func TestLoad_NoFence(t *testing.T) {
	_, err := Load(strings.NewReader("budget:\n  expense.grocery: 300\n"))
	require.Error(t, err)
}

func TestLoad_BadValue(t *testing.T) {
	_, err := Load(strings.NewReader("---\nexpense.grocery: lots\n---\n"))
	require.Error(t, err)
}

func TestLoadFiles_SumsAndSeedsMisc(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "march.md")
	two := filepath.Join(dir, "extra.md")
	require.NoError(t, os.WriteFile(one, []byte(marchBudget), 0o644))
	require.NoError(t, os.WriteFile(two, []byte("---\nbudget:\n  expense.grocery: 150\n---\n"), 0o644))

	b, err := LoadFiles([]string{one, two})
	require.NoError(t, err)

	// Amounts from every file add up.
	assert.True(t, b["expense.grocery"].Equal(dec("450")))
	assert.True(t, b["income.myjob"].Equal(dec("-5000")))

	// A zero catch-all exists per account type.
	for _, typ := range model.AccountTypes {
		v, ok := b[string(typ)+MiscSuffix]
		require.True(t, ok, "missing %s%s", typ, MiscSuffix)
		assert.True(t, v.IsZero())
	}
}

func TestLoadFiles_Missing(t *testing.T) {
	_, err := LoadFiles([]string{"/nonexistent/budget.md"})
	require.Error(t, err)
}

func TestDeltas(t *testing.T) {
	b, err := Load(strings.NewReader(marchBudget))
	require.NoError(t, err)

	grocery := model.BlankAccount("expense.grocery", model.AccountExpense)
	checking := model.BlankAccount("asset.checking", model.AccountAsset)
	tx := model.NewTransaction(
		day(1), checking, grocery, amt("usd", "-120", "usd", "120"), nil, "")
	require.NoError(t, grocery.AddTransaction(tx))

	deltas := b.Deltas([]*model.Account{grocery, checking}, "usd")
	assert.True(t, deltas["expense.grocery"].Equal(dec("420")))
	assert.True(t, deltas["income.myjob"].Equal(dec("-5000")))
	assert.True(t, deltas["asset.checking"].IsZero())
}

func TestNames_MiscLast(t *testing.T) {
	b := Budget{
		"expense.misc":    dec("0"),
		"asset.misc":      dec("0"),
		"expense.grocery": dec("300"),
		"income.myjob":    dec("-5000"),
	}

	assert.Equal(t, []string{
		"expense.grocery",
		"income.myjob",
		"asset.misc",
		"expense.misc",
	}, b.Names())
}
