package dupes

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-dev/daybook/internal/model"
)

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

// rentTx builds a transaction whose key is always the same, so every one
// lands in the same bucket.
func rentTx(d int) *model.Transaction {
	src := model.BlankAccount("asset.checking", model.AccountAsset)
	dest := model.BlankAccount("expense.rent", model.AccountExpense)
	a, err := model.NewAmount("usd", decimal.NewFromInt(-100), "usd", decimal.NewFromInt(100))
	if err != nil {
		panic(err)
	}
	return model.NewTransaction(day(d), src, dest, a, nil, "rent")
}

func TestCheckDupe_SameBatchRestatementsCollapse(t *testing.T) {
	tr := New(5)

	// Five identical unattributed rows in one batch describe one event.
	first := rentTx(1)
	orig, stored := tr.CheckDupe(first, "", 1)
	assert.Nil(t, orig)
	assert.Same(t, first, stored)

	for i := 0; i < 4; i++ {
		orig, _ := tr.CheckDupe(rentTx(1), "", 1)
		assert.Same(t, first, orig)
	}
}

func TestCheckDupe_ReimportedBatchStartsNewGroup(t *testing.T) {
	tr := New(5)

	first := rentTx(1)
	orig, _ := tr.CheckDupe(first, "", 1)
	require.Nil(t, orig)

	// The same unattributed row in a later batch is a genuinely new
	// event, not a restatement: rent gets paid every month.
	second := rentTx(1)
	orig, stored := tr.CheckDupe(second, "", 2)
	assert.Nil(t, orig)
	assert.Same(t, second, stored)

	// And restatements within that second batch collapse onto it.
	orig, _ = tr.CheckDupe(rentTx(1), "", 2)
	assert.Same(t, second, orig)
}

func TestCheckDupe_NamedPerspectiveIdempotent(t *testing.T) {
	tr := New(5)

	first := rentTx(1)
	orig, _ := tr.CheckDupe(first, "asset.checking", 1)
	require.Nil(t, orig)

	// Loading the same file again restates every row at the same date.
	orig, stored := tr.CheckDupe(rentTx(1), "asset.checking", 2)
	assert.Same(t, first, orig)
	assert.Same(t, first, stored)
}

func TestCheckDupe_CrossPerspectiveMerge(t *testing.T) {
	tr := New(5)

	// The bank and the card processor report the same payment three days
	// apart.
	bank := rentTx(1)
	orig, _ := tr.CheckDupe(bank, "asset.checking", 1)
	require.Nil(t, orig)

	orig, stored := tr.CheckDupe(rentTx(4), "liability.visa", 2)
	assert.Same(t, bank, orig)
	assert.Same(t, bank, stored)
}

func TestCheckDupe_OutsideWindow(t *testing.T) {
	tr := New(5)

	orig, _ := tr.CheckDupe(rentTx(1), "asset.checking", 1)
	require.Nil(t, orig)

	// Six days apart with a five-day window: two separate events.
	orig, _ = tr.CheckDupe(rentTx(7), "liability.visa", 2)
	assert.Nil(t, orig)
}

func TestCheckDupe_ThirdDistinctDateNeverJoins(t *testing.T) {
	tr := New(5)

	first := rentTx(1)
	orig, _ := tr.CheckDupe(first, "asset.checking", 1)
	require.Nil(t, orig)

	orig, _ = tr.CheckDupe(rentTx(3), "liability.visa", 2)
	require.Same(t, first, orig)

	// A third source at yet another date starts a new group even though
	// it is within the window of both recorded dates.
	orig, _ = tr.CheckDupe(rentTx(2), "liability.amex", 3)
	assert.Nil(t, orig)
}

func TestCheckDupe_SecondSourceOnRecordedDate(t *testing.T) {
	tr := New(5)

	first := rentTx(1)
	_, _ = tr.CheckDupe(first, "asset.checking", 1)
	_, _ = tr.CheckDupe(rentTx(3), "liability.visa", 2)

	// A third perspective matching a recorded date still joins.
	orig, _ := tr.CheckDupe(rentTx(3), "liability.amex", 3)
	assert.Same(t, first, orig)
}

func TestCheckDupe_NegativeWindowDisables(t *testing.T) {
	tr := New(-1)

	orig, _ := tr.CheckDupe(rentTx(1), "asset.checking", 1)
	require.Nil(t, orig)

	// Even an identical same-date report stays separate.
	orig, _ = tr.CheckDupe(rentTx(1), "liability.visa", 2)
	assert.Nil(t, orig)
}

func TestCheckDupe_ZeroWindowSameDayOnly(t *testing.T) {
	tr := New(0)

	first := rentTx(1)
	orig, _ := tr.CheckDupe(first, "asset.checking", 1)
	require.Nil(t, orig)

	orig, _ = tr.CheckDupe(rentTx(1), "liability.visa", 2)
	assert.Same(t, first, orig)

	orig, _ = tr.CheckDupe(rentTx(2), "liability.amex", 3)
	assert.Nil(t, orig)
}

func TestCheckDupe_DifferentKeysNeverCollide(t *testing.T) {
	tr := New(5)

	rent := rentTx(1)
	_, _ = tr.CheckDupe(rent, "", 1)

	other := model.NewTransaction(day(1),
		model.BlankAccount("asset.checking", model.AccountAsset),
		model.BlankAccount("expense.groceries", model.AccountExpense),
		rent.Amount, nil, "groceries")

	orig, _ := tr.CheckDupe(other, "", 1)
	assert.Nil(t, orig)
}

func TestPerspectives(t *testing.T) {
	tr := New(5)

	bank := rentTx(1)
	_, _ = tr.CheckDupe(bank, "asset.checking", 1)
	visa := rentTx(4)
	_, visaStored := tr.CheckDupe(visa, "liability.visa", 2)

	ps := tr.Perspectives([]*model.Transaction{bank, visaStored})
	require.Len(t, ps, 2)

	assert.True(t, ps[0].Found)
	assert.Same(t, bank, ps[0].Original)
	assert.Equal(t, "asset.checking", ps[0].OriginalPerspective)
	assert.Equal(t, "asset.checking", ps[0].Actual)

	assert.True(t, ps[1].Found)
	assert.Same(t, bank, ps[1].Original)
	assert.Equal(t, "asset.checking", ps[1].OriginalPerspective)
	assert.Equal(t, "liability.visa", ps[1].Actual)
}

func TestPerspectives_SecondEmptySlot(t *testing.T) {
	tr := New(5)

	first := rentTx(1)
	_, _ = tr.CheckDupe(first, "", 1)
	_, restated := tr.CheckDupe(rentTx(1), "", 1)
	require.NotSame(t, first, restated)

	ps := tr.Perspectives([]*model.Transaction{restated})
	require.Len(t, ps, 1)
	assert.True(t, ps[0].Found)
	assert.Same(t, first, ps[0].Original)
	assert.Equal(t, "", ps[0].Actual)
}

func TestPerspectives_Unknown(t *testing.T) {
	tr := New(5)

	ps := tr.Perspectives([]*model.Transaction{rentTx(1)})
	require.Len(t, ps, 1)
	assert.False(t, ps[0].Found)
}
