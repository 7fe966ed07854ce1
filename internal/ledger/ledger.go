// Package ledger owns the account table and transaction list, drives
// row-by-row ingestion, and reconciles multi-source reports of the same
// event through the dupes tracker.
package ledger

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"github.com/daybook-dev/daybook/internal/dupes"
	"github.com/daybook-dev/daybook/internal/hints"
	"github.com/daybook-dev/daybook/internal/model"
)

// Header is the canonical dump/load CSV header.
const Header = "date,src,dest,amount,tags,notes"

// Ledger is the memory-resident transaction store. It is not safe for
// concurrent mutation; the transport layer serializes access.
type Ledger struct {
	primaryCurrency string
	duplicateWindow int

	accounts     map[string]*model.Account
	transactions []*model.Transaction
	dupes        *dupes.Tracker
	numAdds      int
}

// New creates an empty ledger. primaryCurrency is the fallback when no
// better currency suggestion exists. duplicateWindow is the maximum
// day-distance for two differently-sourced reports to merge; a negative
// window disables duplicate detection.
func New(primaryCurrency string, duplicateWindow int) *Ledger {
	return &Ledger{
		primaryCurrency: primaryCurrency,
		duplicateWindow: duplicateWindow,
		accounts:        make(map[string]*model.Account),
		dupes:           dupes.New(duplicateWindow),
	}
}

// Clear drops all accounts, transactions, and duplicate state.
func (l *Ledger) Clear() {
	l.accounts = make(map[string]*model.Account)
	l.transactions = nil
	l.dupes = dupes.New(l.duplicateWindow)
	l.numAdds = 0
}

// PrimaryCurrency returns the ledger-wide default currency.
func (l *Ledger) PrimaryCurrency() string {
	return l.primaryCurrency
}

// Account looks up an account by canonical name.
func (l *Ledger) Account(name string) (*model.Account, bool) {
	a, ok := l.accounts[name]
	return a, ok
}

// Accounts returns every account sorted by canonical name.
func (l *Ledger) Accounts() []*model.Account {
	out := make([]*model.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Transactions returns the transactions selected by filter, in commit
// order. A nil filter selects everything.
func (l *Ledger) Transactions(filter func(*model.Transaction) bool) []*model.Transaction {
	var out []*model.Transaction
	for _, t := range l.transactions {
		if filter == nil || filter(t) {
			out = append(out, t)
		}
	}
	return out
}

// Size returns the number of committed transactions.
func (l *Ledger) Size() int {
	return len(l.transactions)
}

// SortByDate orders the ledger's and every account's transaction list by
// date, keeping commit order within a day.
func (l *Ledger) SortByDate() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
	for _, a := range l.accounts {
		a.SortTransactions()
	}
}

// Dump renders the selected transactions as a CSV document that Load on
// a fresh ledger reproduces. A nil filter selects everything.
func (l *Ledger) Dump(filter func(*model.Transaction) bool) string {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write(strings.Split(Header, ","))
	for _, t := range l.Transactions(filter) {
		_ = cw.Write(t.CSVRecord())
	}
	cw.Flush()
	return buf.String()
}

// AddTransactions commits a batch under one block id. Accounts are
// re-interned by canonical name so the ledger never shares references
// with the caller. The returned references can be fed to ReportDupes.
func (l *Ledger) AddTransactions(ts []*model.Transaction, perspective string) []*model.Transaction {
	l.numAdds++
	out := make([]*model.Transaction, 0, len(ts))
	for _, t := range ts {
		out = append(out, l.addTransaction(t, perspective, l.numAdds))
	}
	return out
}

func (l *Ledger) addTransaction(t *model.Transaction, perspective string, block int) *model.Transaction {
	src := l.internAccount(t.Src)
	dest := l.internAccount(t.Dest)
	t = model.NewTransaction(t.Date, src, dest, t.Amount, t.Tags(), t.Notes)

	orig, stored := l.dupes.CheckDupe(t, perspective, block)
	if orig != nil {
		// Another vantage point on a recorded event: keep the tags, drop
		// the rest.
		orig.AddTags(t.Tags()...)
		return stored
	}

	l.transactions = append(l.transactions, stored)
	_ = src.AddTransaction(stored)
	if src != dest {
		_ = dest.AddTransaction(stored)
	}
	return stored
}

func (l *Ledger) internAccount(a *model.Account) *model.Account {
	if existing, ok := l.accounts[a.Name]; ok {
		return existing
	}
	fresh := model.BlankAccount(a.Name, a.Type)
	l.accounts[a.Name] = fresh
	return fresh
}

// DupeReport names one transaction reference that was reconciled into an
// already-recorded event.
type DupeReport struct {
	Transaction         *model.Transaction
	OriginalPerspective string
	ActualPerspective   string
}

// ReportDupes filters references previously returned by AddTransactions
// or Load down to the ones that were merged into an existing event.
func (l *Ledger) ReportDupes(ts []*model.Transaction) []DupeReport {
	var out []DupeReport
	for i, p := range l.dupes.Perspectives(ts) {
		if !p.Found || p.Original == ts[i] {
			continue
		}
		out = append(out, DupeReport{
			Transaction:         ts[i],
			OriginalPerspective: p.OriginalPerspective,
			ActualPerspective:   p.Actual,
		})
	}
	return out
}

// resolveAccount turns a raw account token into a fresh account. The
// placeholder "this" resolves to thisName and "void" to the void
// placeholder. Strings that fail to parse are retried through the hint
// table: an exact hit first, else the first registered pattern contained
// in the string.
func (l *Ledger) resolveAccount(raw, thisName string, table *hints.Table) (*model.Account, error) {
	s := strings.TrimSpace(raw)
	switch s {
	case "this":
		s = thisName
	case "void":
		s = model.VoidAccountName
	}

	acct, err := model.ParseAccount(s)
	if err == nil {
		return acct, nil
	}
	if table == nil {
		return nil, err
	}

	suggestion := table.Suggest(s)
	if suggestion == "" {
		return nil, fmt.Errorf("no hint suggestion for %q: %w", s, err)
	}
	acct, serr := model.ParseAccount(suggestion)
	if serr != nil {
		return nil, fmt.Errorf("%q suggested %q, which is invalid: %w", s, suggestion, err)
	}
	return acct, nil
}
