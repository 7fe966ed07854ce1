// Package convert turns third-party bank and brokerage exports into
// canonical ledger rows.
package convert

import (
	"bytes"
	"encoding/csv"
	"io"
	"sort"
	"strings"
)

// Row is one canonical ledger row ready for Ledger.Load.
type Row struct {
	Date   string
	Src    string
	Dest   string
	Amount string
	Tags   string
	Notes  string
}

// Converter turns one institution's export format into canonical rows.
type Converter interface {
	Convert(r io.Reader) ([]Row, error)
	Format() string
}

// Registry holds named converters.
type Registry struct {
	converters map[string]Converter
}

// NewRegistry creates an empty converter registry.
func NewRegistry() *Registry {
	return &Registry{converters: make(map[string]Converter)}
}

// Register adds a converter. Panics on duplicate format.
func (r *Registry) Register(c Converter) {
	key := strings.ToLower(c.Format())
	if _, ok := r.converters[key]; ok {
		panic("duplicate converter format: " + key)
	}
	r.converters[key] = c
}

// Get returns the converter for format, or nil.
func (r *Registry) Get(format string) Converter {
	return r.converters[strings.ToLower(format)]
}

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.converters))
	for key := range r.converters {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in converters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&SchwabChecking{})
	r.Register(&SchwabBrokerage{})
	r.Register(&USAAGeneral{})
	return r
}

// WriteRows renders rows as a canonical CSV document with header.
func WriteRows(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "src", "dest", "amount", "tags", "notes"}); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write([]string{row.Date, row.Src, row.Dest, row.Amount, row.Tags, row.Notes}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// RowsCSV renders rows as a canonical CSV string.
func RowsCSV(rows []Row) string {
	var buf bytes.Buffer
	_ = WriteRows(&buf, rows)
	return buf.String()
}

// cleanMoney strips the dollar signs and thousands separators bank
// exports decorate amounts with.
func cleanMoney(s string) string {
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	return strings.TrimSpace(s)
}
