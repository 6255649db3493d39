package model

import (
	"strings"
	"testing"
)

func TestParameterSet_AddAndOrder(t *testing.T) {
	t.Parallel()

	s := NewParameterSet()
	for _, name := range []string{"b", "a", "c"} {
		if !s.Add(&Parameter{Name: name, Type: "string"}) {
			t.Fatalf("add %q failed", name)
		}
	}
	if s.Add(&Parameter{Name: "a", Type: "number"}) {
		t.Error("duplicate add must be rejected")
	}
	if s.Add(&Parameter{Name: "", Type: "string"}) {
		t.Error("empty name must be rejected")
	}
	if s.Add(nil) {
		t.Error("nil parameter must be rejected")
	}

	if s.Len() != 3 {
		t.Fatalf("len: got %d", s.Len())
	}
	got := s.All()
	for i, want := range []string{"b", "a", "c"} {
		if got[i].Name != want {
			t.Errorf("order[%d]: got %q, want %q", i, got[i].Name, want)
		}
	}

	p, ok := s.Get("a")
	if !ok || p.Type != "string" {
		t.Errorf("first occurrence must survive a duplicate add: %+v", p)
	}
}

func TestParameterSet_MarshalJSONOrder(t *testing.T) {
	t.Parallel()

	s := NewParameterSet()
	s.Add(&Parameter{Name: "zebra", Type: "string"})
	s.Add(&Parameter{Name: "alpha", Type: "number"})

	out, err := s.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	js := string(out)
	zi := strings.Index(js, `"zebra"`)
	ai := strings.Index(js, `"alpha"`)
	if zi < 0 || ai < 0 || zi > ai {
		t.Errorf("insertion order lost: %s", js)
	}
}

func TestParameterSet_NilSafety(t *testing.T) {
	t.Parallel()

	var s *ParameterSet
	if s.Len() != 0 {
		t.Error("nil set length must be zero")
	}
	if s.All() != nil {
		t.Error("nil set has no parameters")
	}
}

func TestErrorEntry_StatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code string
		want int
		ok   bool
	}{
		{"100", 100, true},
		{"404", 404, true},
		{"599", 599, true},
		{"99", 0, false},
		{"600", 0, false},
		{"abc", 0, false},
		{"", 0, false},
		{"404.5", 0, false},
	}
	for _, tc := range cases {
		got, ok := ErrorEntry{Code: tc.code}.StatusCode()
		if got != tc.want || ok != tc.ok {
			t.Errorf("StatusCode(%q) = %d, %v; want %d, %v", tc.code, got, ok, tc.want, tc.ok)
		}
	}
}
