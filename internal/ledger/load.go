package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/daybook-dev/daybook/internal/dates"
	"github.com/daybook-dev/daybook/internal/hints"
	"github.com/daybook-dev/daybook/internal/model"
)

// RowError annotates a row-level failure with its 1-based line number
// (the header is line 1) and, for file loads, the originating file.
type RowError struct {
	Line int
	File string
	Err  error
}

func (e *RowError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s line %d: %v", e.File, e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// Load ingests CSV rows from r and commits them as one batch. The first
// row must be a header containing at least "date"; "src", "dest",
// "amount", "tags", and "notes" columns are optional and order-free.
// thisName substitutes the "this" placeholder and doubles as the batch's
// perspective. No transaction commits unless every row parses, so a bad
// row leaves the ledger untouched; with skipInvalid set, bad rows are
// dropped and the rest commit.
func (l *Ledger) Load(r io.Reader, thisName string, table *hints.Table, skipInvalid bool) ([]*model.Transaction, error) {
	perspective := thisName
	if thisName == "" {
		thisName = model.VoidAccountName
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	if _, ok := col["date"]; !ok {
		return nil, errors.New(`no "date" column in header`)
	}

	// Currency suggestions seen within this batch, keyed by account name.
	lastSeen := make(map[string]string)

	var staged []*model.Transaction
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			if skipInvalid {
				continue
			}
			return nil, &RowError{Line: line, Err: err}
		}

		t, err := l.parseRow(record, col, thisName, table, lastSeen)
		if err != nil {
			if skipInvalid {
				continue
			}
			return nil, &RowError{Line: line, Err: err}
		}
		staged = append(staged, t)
	}

	// Every row parsed; committing cannot fail.
	return l.AddTransactions(staged, perspective), nil
}

// LoadCSV loads a single CSV file. The file's base name (sans extension)
// substitutes "this" and names the perspective.
func (l *Ledger) LoadCSV(path string, table *hints.Table, skipInvalid bool) ([]*model.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	thisName := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ts, err := l.Load(f, thisName, table, skipInvalid)
	if err != nil {
		var re *RowError
		if errors.As(err, &re) {
			re.File = path
			return nil, err
		}
		return nil, fmt.Errorf("csv %s: %w", path, err)
	}
	return ts, nil
}

// LoadCSVs loads several CSV files in order. Atomicity holds per file:
// a bad row aborts its own file without touching earlier ones.
func (l *Ledger) LoadCSVs(paths []string, table *hints.Table, skipInvalid bool) ([]*model.Transaction, error) {
	var out []*model.Transaction
	for _, path := range paths {
		ts, err := l.LoadCSV(path, table, skipInvalid)
		if err != nil {
			return nil, err
		}
		out = append(out, ts...)
	}
	return out, nil
}

func (l *Ledger) parseRow(record []string, col map[string]int, thisName string, table *hints.Table, lastSeen map[string]string) (*model.Transaction, error) {
	field := func(name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	date, err := dates.Parse(field("date"))
	if err != nil {
		return nil, err
	}

	srcLine := field("src")
	destLine := field("dest")

	var src, dest *model.Account
	if strings.TrimSpace(srcLine) != "" {
		if src, err = l.resolveAccount(srcLine, thisName, table); err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(destLine) != "" {
		if dest, err = l.resolveAccount(destLine, thisName, table); err != nil {
			return nil, err
		}
	}
	if src == nil {
		if src, err = l.resolveAccount("this", thisName, table); err != nil {
			return nil, err
		}
	}
	if dest == nil {
		if dest, err = l.resolveAccount("this", thisName, table); err != nil {
			return nil, err
		}
	}

	var amount model.Amount
	if raw := strings.TrimSpace(field("amount")); raw != "" {
		amount, err = model.ParseAmount(raw, l.suggestCurrency(src.Name, lastSeen))
		if err != nil {
			return nil, err
		}
	} else {
		amount = model.ZeroAmount(l.primaryCurrency)
	}

	// The stored src is always the losing side.
	if amount.SrcAmount.IsPositive() {
		src, dest = dest, src
		srcLine, destLine = destLine, srcLine
		amount = amount.Correct()
	}

	lastSeen[src.Name] = amount.SrcCurrency
	lastSeen[dest.Name] = amount.DestCurrency

	notes := field("notes")
	if notes == "" {
		notes = suggestNotes(srcLine, destLine, amount)
	}

	var tags []string
	if raw := field("tags"); raw != "" {
		tags = strings.Split(raw, ":")
	}

	return model.NewTransaction(date, src, dest, amount, tags, notes), nil
}

// suggestCurrency picks the best currency suggestion for an account:
// the last currency seen for it in this batch, else the currency of its
// most recent transaction in the ledger, else the primary currency.
func (l *Ledger) suggestCurrency(accountName string, lastSeen map[string]string) string {
	if cur, ok := lastSeen[accountName]; ok {
		return cur
	}
	if a, ok := l.accounts[accountName]; ok && a.LastCurrency() != "" {
		return a.LastCurrency()
	}
	return l.primaryCurrency
}

// suggestNotes derives a notes line from the first three words of the
// original src/dest labels. When the sides collapse to the same label
// (an internal conversion, likely a stock trade) the currencies stand in.
func suggestNotes(srcLine, destLine string, amount model.Amount) string {
	src := firstWords(srcLine, 3)
	dest := firstWords(destLine, 3)

	if src == dest {
		return amount.SrcCurrency + " -> " + amount.DestCurrency
	}

	var parts []string
	for _, s := range []string{src, dest} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " -> ")
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
