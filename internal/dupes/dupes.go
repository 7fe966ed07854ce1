// Package dupes recognizes when independent data sources report the same
// economic event. Transactions are bucketed by (src, dest, amount) —
// never by date, because date is exactly the dimension on which
// independent sources disagree.
package dupes

import (
	"time"

	"github.com/daybook-dev/daybook/internal/dates"
	"github.com/daybook-dev/daybook/internal/model"
)

// Tracker groups candidate duplicates for the lifetime of a ledger.
// A negative window disables duplicate detection entirely; a window of
// zero still merges same-day reports.
type Tracker struct {
	window  int
	buckets map[string][]*group
}

// New creates a tracker with the given duplicate window in days.
func New(window int) *Tracker {
	return &Tracker{
		window:  window,
		buckets: make(map[string][]*group),
	}
}

// entry is one perspective's stored transaction within a group.
type entry struct {
	perspective string
	t           *model.Transaction
}

// group is one bucket member: all observations of a single economic
// event. It records at most two distinct observed dates, one transaction
// per named perspective, and a slot for a second same-batch
// empty-perspective restatement.
type group struct {
	orig        *model.Transaction
	dates       []time.Time
	entries     []entry
	block       int
	secondEmpty *model.Transaction
}

func (g *group) find(perspective string) (*model.Transaction, bool) {
	for _, e := range g.entries {
		if e.perspective == perspective {
			return e.t, true
		}
	}
	return nil, false
}

func (g *group) hasDate(d time.Time) bool {
	for _, gd := range g.dates {
		if gd.Equal(d) {
			return true
		}
	}
	return false
}

func (g *group) addDate(d time.Time) {
	if !g.hasDate(d) {
		g.dates = append(g.dates, d)
	}
}

// shouldOwn decides whether t, as reported by perspective, is another
// observation of this group's event.
//
// Empty perspective (an unattributed raw import): only a same-date
// restatement can match, and only while the empty slot is unclaimed or
// claimed by the same load batch. A later batch restating the same row
// starts a new group instead, so re-importing an identical batch adds
// exactly one transaction rather than none or N.
//
// Named perspective: a restatement (same perspective, same date as its
// stored entry) collapses; otherwise one transaction per named
// perspective, and the date must either match one of the at most two
// dates on record or, while only one date is recorded, fall within the
// window of it. A third distinct date never joins.
func (g *group) shouldOwn(t *model.Transaction, perspective string, window, block int) bool {
	if window < 0 {
		return false
	}

	if perspective == "" {
		if !t.Date.Equal(g.orig.Date) {
			return false
		}
		if _, taken := g.find(""); !taken {
			return true
		}
		return block == g.block
	}

	if stored, seen := g.find(perspective); seen {
		return t.Date.Equal(stored.Date)
	}

	inRange := dates.DaysBetween(t.Date, g.orig.Date) <= window
	return g.hasDate(t.Date) || (len(g.dates) == 1 && inRange)
}

// add files t under perspective. Check shouldOwn first. Returns the
// group's previous original (nil when t founds the group) and the
// transaction actually retained for this observation.
func (g *group) add(t *model.Transaction, perspective string, block int) (orig, stored *model.Transaction) {
	oldOrig := g.orig

	if existing, seen := g.find(perspective); seen {
		stored = existing
		if perspective == "" && existing == g.orig {
			// The original itself occupies the empty slot; restatements
			// are filed under a dedicated second slot so reporting can
			// flag them as duplicates of the original.
			if g.secondEmpty == nil {
				g.secondEmpty = t
			}
			stored = g.secondEmpty
		}
		return oldOrig, stored
	}

	if perspective == "" {
		g.block = block
	}
	g.entries = append(g.entries, entry{perspective: perspective, t: t})
	g.addDate(t.Date)
	if g.orig == nil {
		g.orig = t
	}
	return oldOrig, t
}

// findPerspectives maps a stored transaction reference back to the
// group's original perspective and the perspective it was filed under.
func (g *group) findPerspectives(t *model.Transaction) (origPerspective, actual string, ok bool) {
	if len(g.entries) == 0 {
		return "", "", false
	}
	origPerspective = g.entries[0].perspective
	if t == g.secondEmpty {
		return origPerspective, "", true
	}
	for _, e := range g.entries {
		if e.t == t {
			return origPerspective, e.perspective, true
		}
	}
	return "", "", false
}

// CheckDupe files t under perspective and block, deciding whether it is
// a new economic event or a re-observation of a recorded one. When t is
// new, orig is nil and stored is t itself; otherwise orig is the group's
// designated original and stored is the transaction retained for this
// observation.
func (tr *Tracker) CheckDupe(t *model.Transaction, perspective string, block int) (orig, stored *model.Transaction) {
	key := t.Key()
	for _, g := range tr.buckets[key] {
		if g.shouldOwn(t, perspective, tr.window, block) {
			return g.add(t, perspective, block)
		}
	}

	g := &group{}
	tr.buckets[key] = append(tr.buckets[key], g)
	return g.add(t, perspective, block)
}

// Perspective describes where a transaction reference was filed.
type Perspective struct {
	Original            *model.Transaction
	OriginalPerspective string
	Actual              string
	Found               bool
}

// Perspectives resolves each reference to its group's original and the
// perspective it was stored under. References unknown to the tracker
// yield a zero Perspective with Found false.
func (tr *Tracker) Perspectives(ts []*model.Transaction) []Perspective {
	out := make([]Perspective, len(ts))
	for i, t := range ts {
		for _, g := range tr.buckets[t.Key()] {
			origPerspective, actual, ok := g.findPerspectives(t)
			if ok {
				out[i] = Perspective{
					Original:            g.orig,
					OriginalPerspective: origPerspective,
					Actual:              actual,
					Found:               true,
				}
				break
			}
		}
	}
	return out
}
