package validator

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{"test@example.com", "user.name+1@domain.co", "a@b.cd"}
	invalid := []string{"test@", "@example.com", "test@com", " ", ""}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false, want true", email)
		}
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true, want false", email)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	if _, ok := IsValidDate("2024-01-15"); !ok {
		t.Error("IsValidDate(\"2024-01-15\") = false, want true")
	}
	invalid := []string{"15-01-2024", "2024/01/15", "2024-13-01", "not-a-date", ""}
	for _, d := range invalid {
		if _, ok := IsValidDate(d); ok {
			t.Errorf("IsValidDate(%q) = true, want false", d)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	valid := []string{
		"2024-01-15T10:30:00Z",
		"2024-01-15T10:30:00+07:00",
		"2024-01-15T10:30:00.123Z",
	}
	invalid := []string{"2024-01-15", "2024-01-15 10:30:00", ""}
	for _, d := range valid {
		if _, ok := IsValidDateTime(d); !ok {
			t.Errorf("IsValidDateTime(%q) = false, want true", d)
		}
	}
	for _, d := range invalid {
		if _, ok := IsValidDateTime(d); ok {
			t.Errorf("IsValidDateTime(%q) = true, want false", d)
		}
	}
}

func TestIsNonNegative(t *testing.T) {
	if !IsNonNegative(decimal.Zero) {
		t.Error("IsNonNegative(0) = false, want true")
	}
	if !IsNonNegative(decimal.NewFromFloat(0.5)) {
		t.Error("IsNonNegative(0.5) = false, want true")
	}
	if IsNonNegative(decimal.NewFromFloat(-0.01)) {
		t.Error("IsNonNegative(-0.01) = true, want false")
	}
}

func TestValidationErrorsToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "title", Message: "title is required"},
		{Field: "start_date", Message: "start_date must be a valid date (YYYY-MM-DD)"},
	}
	m := errs.ToMap()
	if len(m) != 2 {
		t.Fatalf("ToMap() returned %d entries, want 2", len(m))
	}
	if m["title"] != "title is required" {
		t.Errorf("ToMap()[\"title\"] = %q", m["title"])
	}
}
