package ledger

import (
	"time"

	"github.com/daybook-dev/daybook/internal/model"
)

// Filter selects transactions for dumps and reports. Zero fields are
// dont-cares.
type Filter struct {
	Start    time.Time // reject transactions dated earlier
	End      time.Time // reject transactions dated later
	Accounts []string  // src or dest canonical name must be listed
	Types    []string  // src or dest account type must be listed
	Tags     []string  // tag sets must intersect
}

// Match reports whether t passes every populated criterion.
func (f Filter) Match(t *model.Transaction) bool {
	if !f.Start.IsZero() && t.Date.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && t.Date.After(f.End) {
		return false
	}
	if len(f.Accounts) > 0 && !containsAny(f.Accounts, t.Src.Name, t.Dest.Name) {
		return false
	}
	if len(f.Types) > 0 && !containsAny(f.Types, string(t.Src.Type), string(t.Dest.Type)) {
		return false
	}
	if len(f.Tags) > 0 {
		hit := false
		for _, tag := range f.Tags {
			if t.HasTag(tag) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// Predicate adapts the filter to the function form Dump and
// Transactions expect.
func (f Filter) Predicate() func(*model.Transaction) bool {
	return f.Match
}

func containsAny(haystack []string, needles ...string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if h == n {
				return true
			}
		}
	}
	return false
}
