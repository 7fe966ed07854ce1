package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// AccountError reports an account string that could not be resolved into
// a canonical account.
type AccountError struct {
	Raw    string
	Reason string
}

func (e *AccountError) Error() string {
	return fmt.Sprintf("invalid account %q: %s", e.Raw, e.Reason)
}

// AccountType classifies how an account's balance reads against net worth.
type AccountType string

const (
	AccountAsset      AccountType = "asset"      // positive effect on net worth
	AccountExpense    AccountType = "expense"    // money spent on consumables
	AccountIncome     AccountType = "income"     // sources of income
	AccountInvestment AccountType = "investment" // brokerage accounts
	AccountLiability  AccountType = "liability"  // debts
	AccountReceivable AccountType = "receivable" // money owed to you
	AccountVoid       AccountType = "void"       // unclassified money movement
)

// AccountTypes lists every valid account type.
var AccountTypes = []AccountType{
	AccountAsset,
	AccountExpense,
	AccountIncome,
	AccountInvestment,
	AccountLiability,
	AccountReceivable,
	AccountVoid,
}

// VoidAccountName is the canonical name of the unclassified placeholder.
const VoidAccountName = "void.void"

// matchAccountType resolves a type keyword, accepting an exact match or a
// unique case-insensitive prefix ("inc" -> income, but "in" is ambiguous
// between income and investment).
func matchAccountType(s string) (AccountType, bool) {
	ls := strings.ToLower(s)
	var match AccountType
	n := 0
	for _, t := range AccountTypes {
		if string(t) == ls {
			return t, true
		}
		if strings.HasPrefix(string(t), ls) {
			match = t
			n++
		}
	}
	if n == 1 {
		return match, true
	}
	return "", false
}

// Account is one side of a money movement. Its canonical name embeds the
// type as the first dot-separated segment, e.g. "asset.checking".
type Account struct {
	Name string
	Type AccountType

	// Transactions holds every committed transaction this account took
	// part in, in commit order.
	Transactions []*Transaction

	balances     map[string]decimal.Decimal
	lastCurrency string
}

// ParseAccount resolves a raw string into a fresh account. The string
// must parse as "type.name" where type is a known keyword (or unique
// prefix of one); a bare type is invalid except for "void", which may
// stand alone.
func ParseAccount(raw string) (*Account, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, &AccountError{Raw: raw, Reason: "no account information"}
	}
	if strings.ContainsAny(s, " \t") {
		return nil, &AccountError{Raw: raw, Reason: "account names may not contain spaces"}
	}

	var segs []string
	for _, seg := range strings.Split(s, ".") {
		if seg != "" {
			segs = append(segs, seg)
		}
	}
	if len(segs) == 0 {
		return nil, &AccountError{Raw: raw, Reason: "no account information"}
	}

	typ, ok := matchAccountType(segs[0])
	if !ok {
		return nil, &AccountError{Raw: raw, Reason: fmt.Sprintf("unknown account type %q", segs[0])}
	}
	if len(segs) == 1 {
		if typ != AccountVoid {
			return nil, &AccountError{Raw: raw, Reason: "account type given without a name"}
		}
		return BlankAccount(VoidAccountName, AccountVoid), nil
	}

	name := string(typ) + "." + strings.Join(segs[1:], ".")
	return BlankAccount(name, typ), nil
}

// BlankAccount builds an account from already-validated parts.
func BlankAccount(name string, typ AccountType) *Account {
	return &Account{
		Name:     name,
		Type:     typ,
		balances: make(map[string]decimal.Decimal),
	}
}

// Balance returns the account's balance in the given currency. Untouched
// currencies read as zero.
func (a *Account) Balance(currency string) decimal.Decimal {
	return a.balances[currency]
}

// Balances returns a copy of the per-currency balance table.
func (a *Account) Balances() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(a.balances))
	for cur, v := range a.balances {
		out[cur] = v
	}
	return out
}

// Currencies returns the currencies this account has ever touched, sorted.
func (a *Account) Currencies() []string {
	out := make([]string, 0, len(a.balances))
	for cur := range a.balances {
		out = append(out, cur)
	}
	sort.Strings(out)
	return out
}

// LastCurrency returns the currency of the most recent transaction, or ""
// if the account has none.
func (a *Account) LastCurrency() string {
	return a.lastCurrency
}

// AddTransaction updates balances for every side of t this account
// appears on and records the transaction.
func (a *Account) AddTransaction(t *Transaction) error {
	if t.Src != a && t.Dest != a {
		return fmt.Errorf("account %s is not part of transaction %s -> %s",
			a.Name, t.Src.Name, t.Dest.Name)
	}
	if t.Src == a {
		cur := t.Amount.SrcCurrency
		a.balances[cur] = a.balances[cur].Add(t.Amount.SrcAmount)
		a.lastCurrency = cur
	}
	if t.Dest == a {
		cur := t.Amount.DestCurrency
		a.balances[cur] = a.balances[cur].Add(t.Amount.DestAmount)
		a.lastCurrency = cur
	}
	a.Transactions = append(a.Transactions, t)
	return nil
}

// SortTransactions orders the account's transactions by date, keeping
// commit order within a day.
func (a *Account) SortTransactions() {
	sort.SliceStable(a.Transactions, func(i, j int) bool {
		return a.Transactions[i].Date.Before(a.Transactions[j].Date)
	})
}
