// Package budget loads expected per-account balances from budget files.
package budget

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/daybook-dev/daybook/internal/model"
)

// Budget maps canonical account names to the balance expected for them,
// in the ledger's primary currency.
type Budget map[string]decimal.Decimal

// MiscSuffix marks the per-type catch-all entries seeded into every
// loaded budget.
const MiscSuffix = ".misc"

// Load reads one budget document. The document must open with a YAML
// block fenced by "---" markers; anything after the closing marker is
// free-form notes and ignored, so a budget file can double as a journal
// of why the numbers are what they are:
//
//	---
//	budget:
//	  income.myjob: -5000
//	  expense.grocery: 300
//	---
//
//	## Notes
//	Decided to spend more on groceries this month.
//
// The top-level "budget" key is optional; a bare account map works too.
func Load(r io.Reader) (Budget, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading budget: %w", err)
	}

	parts := strings.Split(string(data), "---")
	if len(parts) < 2 {
		return nil, fmt.Errorf("budget must open with a yaml block fenced by ---")
	}

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal([]byte(parts[1]), &raw); err != nil {
		return nil, fmt.Errorf("parsing budget yaml: %w", err)
	}
	if inner, ok := raw["budget"]; ok {
		var m map[string]yaml.Node
		if err := inner.Decode(&m); err != nil {
			return nil, fmt.Errorf("parsing budget map: %w", err)
		}
		raw = m
	}

	b := make(Budget, len(raw))
	for name, node := range raw {
		v, err := decimal.NewFromString(node.Value)
		if err != nil {
			return nil, fmt.Errorf("budget value for %s: %w", name, err)
		}
		b[name] = v
	}
	return b, nil
}

// LoadFiles loads several budget files and sums the amounts assigned to
// each account, then seeds a zero "{type}.misc" catch-all per account
// type for transactions the budgets leave uncategorized.
func LoadFiles(paths []string) (Budget, error) {
	total := make(Budget)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening budget: %w", err)
		}
		b, err := Load(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("budget %s: %w", path, err)
		}
		for name, v := range b {
			total[name] = total[name].Add(v)
		}
	}

	for _, typ := range model.AccountTypes {
		total[string(typ)+MiscSuffix] = decimal.Zero
	}
	return total, nil
}

// Deltas returns budget plus the actual primary-currency balance of
// every account in accounts. For expense-style accounts a negative
// delta means money left to spend; a positive one means the budget is
// blown.
func (b Budget) Deltas(accounts []*model.Account, primaryCurrency string) Budget {
	deltas := make(Budget, len(b))
	for name, v := range b {
		deltas[name] = v
	}
	for _, a := range accounts {
		deltas[a.Name] = deltas[a.Name].Add(a.Balance(primaryCurrency))
	}
	return deltas
}

// Names returns the budget's account names sorted, with the misc
// catch-alls grouped at the end.
func (b Budget) Names() []string {
	var named, misc []string
	for name := range b {
		if strings.HasSuffix(name, MiscSuffix) {
			misc = append(misc, name)
		} else {
			named = append(named, name)
		}
	}
	sort.Strings(named)
	sort.Strings(misc)
	return append(named, misc...)
}
