package classify

import (
	"reflect"
	"testing"
)

func TestNameSet(t *testing.T) {
	var zero NameSet
	if zero.Contains("fs") || zero.Len() != 0 {
		t.Error("zero NameSet should be empty")
	}

	s := NewNameSet("react", "", "lodash", "react")
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Contains("react") || s.Contains("") {
		t.Error("unexpected membership")
	}
	if got := s.Names(); !reflect.DeepEqual(got, []string{"lodash", "react"}) {
		t.Errorf("Names() = %v", got)
	}

	extended := s.With("vue")
	if !extended.Contains("vue") || s.Contains("vue") {
		t.Error("With should return a new set and leave the receiver untouched")
	}
}

func TestDefaultBuiltins(t *testing.T) {
	b := DefaultBuiltins()
	for _, name := range []string{"fs", "path", "worker_threads", "express", "mongodb"} {
		if !b.Contains(name) {
			t.Errorf("DefaultBuiltins() missing %q", name)
		}
	}
	if b.Contains("react") {
		t.Error("react is not a builtin")
	}
}
