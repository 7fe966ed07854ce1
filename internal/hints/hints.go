// Package hints maps the free-form labels found in bank exports to
// canonical account names.
package hints

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Table suggests canonical account strings for raw labels. Patterns are
// consulted in registration order, so the first hint file entry wins
// ties.
type Table struct {
	order    []string          // patterns, registration order
	accounts map[string]string // pattern -> canonical account
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{accounts: make(map[string]string)}
}

// LoadFile loads additional hints from a colonconf file. Keys are
// canonical account strings; each non-empty value line is a pattern that
// suggests that account.
func (t *Table) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening hints: %w", err)
	}
	defer f.Close()

	if err := t.Load(f); err != nil {
		return fmt.Errorf("hints %s: %w", path, err)
	}
	return nil
}

// Load reads hints from a colonconf document.
func (t *Table) Load(r io.Reader) error {
	order, values, err := parseColonConf(r)
	if err != nil {
		return err
	}
	for _, account := range order {
		for _, pattern := range strings.Split(values[account], "\n") {
			if pattern == "" {
				continue
			}
			t.Add(pattern, account)
		}
	}
	return nil
}

// Add registers a single pattern. Re-registering a pattern replaces its
// account but keeps its original position.
func (t *Table) Add(pattern, account string) {
	if _, seen := t.accounts[pattern]; !seen {
		t.order = append(t.order, pattern)
	}
	t.accounts[pattern] = account
}

// Suggest returns the account for s: an exact pattern match first, else
// the first registered pattern that is a substring of s, else "".
func (t *Table) Suggest(s string) string {
	if account, ok := t.accounts[s]; ok {
		return account
	}
	for _, pattern := range t.order {
		if strings.Contains(s, pattern) {
			return t.accounts[pattern]
		}
	}
	return ""
}

// Len returns the number of registered patterns.
func (t *Table) Len() int {
	return len(t.order)
}
