package model

import (
	"sort"
	"strings"
	"time"
)

// DateFormat is the canonical rendering of transaction dates.
const DateFormat = "2006-01-02"

// Transaction is a committed double-entry record. Date, src, dest, and
// amount are fixed at construction; the tag set may grow when a
// later-arriving duplicate is merged in.
type Transaction struct {
	Date   time.Time
	Src    *Account
	Dest   *Account
	Amount Amount
	Notes  string

	tags map[string]struct{}
}

// NewTransaction builds a transaction, copying the tag set and dropping
// blank tags.
func NewTransaction(date time.Time, src, dest *Account, amount Amount, tags []string, notes string) *Transaction {
	t := &Transaction{
		Date:   date,
		Src:    src,
		Dest:   dest,
		Amount: amount,
		Notes:  notes,
		tags:   make(map[string]struct{}),
	}
	t.AddTags(tags...)
	return t
}

// AddTags inserts tags into the set, trimming whitespace and dropping
// blanks.
func (t *Transaction) AddTags(tags ...string) {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			t.tags[tag] = struct{}{}
		}
	}
}

// HasTag reports membership in the tag set.
func (t *Transaction) HasTag(tag string) bool {
	_, ok := t.tags[tag]
	return ok
}

// Tags returns the tag set sorted for deterministic rendering.
func (t *Transaction) Tags() []string {
	out := make([]string, 0, len(t.tags))
	for tag := range t.tags {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// Key is the identity used for duplicate bucketing. Date and tags are
// deliberately excluded: date is the dimension independent sources
// disagree on, and tags accumulate across reports of the same event.
func (t *Transaction) Key() string {
	return t.Src.Name + "|" + t.Dest.Name + "|" + t.Amount.String()
}

// CSVRecord renders the transaction as a canonical dump row:
// date, src, dest, amount, colon-joined tags, notes.
func (t *Transaction) CSVRecord() []string {
	return []string{
		t.Date.Format(DateFormat),
		t.Src.Name,
		t.Dest.Name,
		t.Amount.String(),
		strings.Join(t.Tags(), ":"),
		t.Notes,
	}
}
