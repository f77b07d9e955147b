package results

import (
	"reflect"
	"testing"

	"github.com/matzehuels/pydocs/pkg/errors"
)

func TestSetArity(t *testing.T) {
	s := New("Documentation link", "Version", "Status")

	if err := s.Add("https://docs.python.org/3.13/", "3.13", "stable"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	tests := []struct {
		name string
		row  []string
	}{
		{"short", []string{"a", "b"}},
		{"long", []string{"a", "b", "c", "d"}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Add(tt.row...)
			if !errors.Is(err, errors.ErrCodeInternal) {
				t.Errorf("Add(%v) error = %v, want INTERNAL_ERROR", tt.row, err)
			}
		})
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, rejected rows must not be stored", s.Len())
	}
}

func TestSetAll(t *testing.T) {
	s := New("A", "B")
	_ = s.Add("1", "2")
	want := [][]string{{"A", "B"}, {"1", "2"}}
	if got := s.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
	if s.Empty() {
		t.Error("set with header should not be Empty")
	}
	var none *Set
	if !none.Empty() {
		t.Error("nil set should be Empty")
	}
}

func TestTallyOrderAndTotal(t *testing.T) {
	tally := NewTally()
	for _, s := range []string{"Final", "Draft", "Final", "Rejected", "Final"} {
		tally.Inc(s)
	}

	set, err := tally.Set("Status", "Count", "Total")
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	want := [][]string{
		{"Status", "Count"},
		{"Final", "3"},
		{"Draft", "1"},
		{"Rejected", "1"},
		{"Total", "5"},
	}
	if got := set.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestTallyEmpty(t *testing.T) {
	set, err := NewTally().Set("Status", "Count", "Total")
	if err != nil {
		t.Fatal(err)
	}
	want := [][]string{{"Status", "Count"}, {"Total", "0"}}
	if got := set.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}

func TestTallyMismatch(t *testing.T) {
	tally := NewTally()
	tally.Inc("Final")
	tally.counts["Final"] = 7

	if _, err := tally.Set("Status", "Count", "Total"); !errors.Is(err, errors.ErrCodeInternal) {
		t.Errorf("Set() error = %v, want INTERNAL_ERROR", err)
	}
}
