package extract

import (
	"reflect"
	"testing"
)

func TestInterpretConstraints_Format(t *testing.T) {
	t.Parallel()

	c := InterpretConstraints("IANA zoneinfo формат")
	if c == nil {
		t.Fatal("expected a constraint")
	}
	if c.Format != "IANA zoneinfo формат" {
		t.Errorf("format: got %q", c.Format)
	}
	if c.Example != "Europe/Moscow" {
		t.Errorf("example: got %v", c.Example)
	}
	if c.Enum != nil || c.MaxLength != nil || c.Minimum != nil {
		t.Errorf("only the format branch should fire: %+v", c)
	}
}

func TestInterpretConstraints_FormatExamples(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
	}{
		{"Формат email", "user@example.com"},
		{"Телефон в формате E.164", "+79990000000"},
		{"URL format", "https://example.com"},
		{"Формат date", "2024-01-01"},
		{"Формат datetime", "2024-01-01T12:00:00Z"},
		{"Формат time", "12:00:00"},
		{"Какой-то неизвестный формат", "string"},
	}
	for _, tc := range cases {
		c := InterpretConstraints(tc.text)
		if c == nil {
			t.Fatalf("InterpretConstraints(%q) = nil", tc.text)
		}
		if c.Example != tc.want {
			t.Errorf("InterpretConstraints(%q).Example = %v, want %q", tc.text, c.Example, tc.want)
		}
	}
}

func TestInterpretConstraints_Maximum(t *testing.T) {
	t.Parallel()

	c := InterpretConstraints("Максимум 255 символов")
	if c == nil || c.MaxLength == nil || *c.MaxLength != 255 {
		t.Fatalf("max length: got %+v", c)
	}

	c = InterpretConstraints("Максимум 10 штук в количестве")
	if c == nil || c.MaxItems == nil || *c.MaxItems != 10 {
		t.Fatalf("max items: got %+v", c)
	}

	// Keyword without an integer: honored but no bound applied.
	if c := InterpretConstraints("Максимум символов"); c != nil {
		t.Errorf("no integer: expected nil, got %+v", c)
	}

	// Integer without a characters/count mention: nothing to infer.
	if c := InterpretConstraints("Максимум 42"); c != nil {
		t.Errorf("bare maximum: expected nil, got %+v", c)
	}
}

func TestInterpretConstraints_Minimum(t *testing.T) {
	t.Parallel()

	c := InterpretConstraints("Минимум 5")
	if c == nil || c.Minimum == nil || *c.Minimum != 5 {
		t.Fatalf("minimum: got %+v", c)
	}
	if c := InterpretConstraints("минимум три"); c != nil {
		t.Errorf("no integer: expected nil, got %+v", c)
	}
}

func TestInterpretConstraints_Enum(t *testing.T) {
	t.Parallel()

	c := InterpretConstraints("a, b, c")
	if c == nil {
		t.Fatal("expected a constraint")
	}
	if !reflect.DeepEqual(c.Enum, []string{"a", "b", "c"}) {
		t.Errorf("enum: got %v", c.Enum)
	}
	if c.Example != "a" {
		t.Errorf("example: got %v", c.Example)
	}

	c = InterpretConstraints("single")
	if c == nil || len(c.Enum) != 1 || c.Enum[0] != "single" {
		t.Errorf("single value: got %+v", c)
	}

	if c := InterpretConstraints(" , ,, "); c != nil {
		t.Errorf("only separators: expected nil, got %+v", c)
	}
}

func TestInterpretConstraints_Empty(t *testing.T) {
	t.Parallel()

	if c := InterpretConstraints(""); c != nil {
		t.Errorf("empty: expected nil, got %+v", c)
	}
	if c := InterpretConstraints("   "); c != nil {
		t.Errorf("blank: expected nil, got %+v", c)
	}
}

func TestInterpretConstraints_PriorityOrder(t *testing.T) {
	t.Parallel()

	// Format wins over everything else, including comma-separated content.
	c := InterpretConstraints("Формат: a, b, Максимум 10 символов")
	if c == nil || c.Format == "" {
		t.Fatalf("format should win: got %+v", c)
	}
	if c.Enum != nil || c.MaxLength != nil {
		t.Errorf("exactly one branch may fire: %+v", c)
	}

	// Maximum wins over minimum when both keywords appear.
	c = InterpretConstraints("Максимум 100 символов, минимум 2")
	if c == nil || c.MaxLength == nil || *c.MaxLength != 100 {
		t.Fatalf("maximum should win: got %+v", c)
	}
	if c.Minimum != nil {
		t.Errorf("minimum must not fire alongside maximum: %+v", c)
	}
}
