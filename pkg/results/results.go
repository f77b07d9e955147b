// Package results holds the tabular output of an extractor run.
package results

import (
	"strconv"

	"github.com/matzehuels/pydocs/pkg/errors"
)

// Set is an ordered table: a header followed by data rows of equal arity.
type Set struct {
	header []string
	rows   [][]string
}

// New creates an empty set with the given column names.
func New(header ...string) *Set {
	return &Set{header: append([]string(nil), header...)}
}

// Add appends a data row. A row whose length differs from the header's is
// rejected and not stored.
func (s *Set) Add(row ...string) error {
	if len(row) != len(s.header) {
		return errors.New(errors.ErrCodeInternal,
			"row has %d values, header has %d", len(row), len(s.header))
	}
	s.rows = append(s.rows, append([]string(nil), row...))
	return nil
}

// Header returns the column names.
func (s *Set) Header() []string { return s.header }

// Rows returns the data rows, without the header.
func (s *Set) Rows() [][]string { return s.rows }

// Len is the number of data rows.
func (s *Set) Len() int { return len(s.rows) }

// Empty reports whether the set has no header at all, as for modes that
// produce a side effect instead of rows.
func (s *Set) Empty() bool { return s == nil || len(s.header) == 0 }

// All returns the header followed by every data row.
func (s *Set) All() [][]string {
	out := make([][]string, 0, len(s.rows)+1)
	out = append(out, s.header)
	return append(out, s.rows...)
}

// Tally counts occurrences of labels, remembering first-seen order.
type Tally struct {
	order      []string
	counts     map[string]int
	increments int
}

// NewTally returns an empty tally.
func NewTally() *Tally {
	return &Tally{counts: make(map[string]int)}
}

// Inc adds one occurrence of label.
func (t *Tally) Inc(label string) {
	if _, ok := t.counts[label]; !ok {
		t.order = append(t.order, label)
	}
	t.counts[label]++
	t.increments++
}

// Count returns the occurrences of label.
func (t *Tally) Count(label string) int { return t.counts[label] }

// Labels returns the labels in first-seen order.
func (t *Tally) Labels() []string { return t.order }

// Total is the sum of all counts.
func (t *Tally) Total() int {
	sum := 0
	for _, c := range t.counts {
		sum += c
	}
	return sum
}

// Set renders the tally as one row per label in first-seen order followed
// by a totalLabel row. The total is checked against the number of increments.
func (t *Tally) Set(labelHeader, countHeader, totalLabel string) (*Set, error) {
	total := t.Total()
	if total != t.increments {
		return nil, errors.New(errors.ErrCodeInternal,
			"tally total %d does not match %d increments", total, t.increments)
	}
	s := New(labelHeader, countHeader)
	for _, label := range t.order {
		if err := s.Add(label, strconv.Itoa(t.counts[label])); err != nil {
			return nil, err
		}
	}
	if err := s.Add(totalLabel, strconv.Itoa(total)); err != nil {
		return nil, err
	}
	return s, nil
}
