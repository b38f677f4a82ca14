package validator

import (
	"testing"
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

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B",
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidTime(t *testing.T) {
	valid := []string{"00:00", "08:00", "23:59"}
	invalid := []string{"24:00", "8:00", "08:60", "0800", "08:00:00", "", "--:--"}
	for _, s := range valid {
		if _, ok := IsValidTime(s); !ok {
			t.Errorf("IsValidTime(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidTime(s); ok {
			t.Errorf("IsValidTime(%q) = true, want false", s)
		}
	}
}

func TestIsValidPeriod(t *testing.T) {
	valid := []string{"2025-01", "1999-12"}
	invalid := []string{"2025-13", "2025-1", "25-01", "2025/01", "2025-01-01", ""}
	for _, s := range valid {
		if _, ok := IsValidPeriod(s); !ok {
			t.Errorf("IsValidPeriod(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidPeriod(s); ok {
			t.Errorf("IsValidPeriod(%q) = true, want false", s)
		}
	}
}

func TestIsValidShiftCode(t *testing.T) {
	valid := []string{"S1", "NIGHT", "P-2", "X_1"}
	invalid := []string{"s1", "", "-S1", "OFF DAY", "ABCDEFGHIJKLMNOPQ"}
	for _, s := range valid {
		if !IsValidShiftCode(s) {
			t.Errorf("IsValidShiftCode(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidShiftCode(s) {
			t.Errorf("IsValidShiftCode(%q) = true, want false", s)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-00-10", "2023-01-32", "abcd-ef-gh", ""}
	for _, s := range valid {
		if _, ok := IsValidDate(s); !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if _, ok := IsValidDate(s); ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsInSlice(t *testing.T) {
	slice := []string{"a", "b", "c"}
	if !IsInSlice("a", slice) {
		t.Errorf("IsInSlice(\"a\") = false, want true")
	}
	if IsInSlice("d", slice) {
		t.Errorf("IsInSlice(\"d\") = true, want false")
	}
}

func TestValidationErrorsOrNil(t *testing.T) {
	var errs ValidationErrors
	if errs.OrNil() != nil {
		t.Errorf("OrNil() on empty list = %v, want nil", errs.OrNil())
	}
	errs.Add("code", "code is required")
	if errs.OrNil() == nil {
		t.Errorf("OrNil() on non-empty list = nil")
	}
	if got := errs.ToMap()["code"]; got != "code is required" {
		t.Errorf("ToMap()[code] = %q", got)
	}
}

type structSample struct {
	Code    string `json:"code" validate:"required,shiftcode"`
	ClockIn string `json:"clock_in" validate:"required,clock"`
	Period  string `json:"period" validate:"omitempty,period"`
	Workers int    `json:"workers" validate:"gte=0,lte=64"`
}

func TestStruct(t *testing.T) {
	if errs := Struct(structSample{Code: "S1", ClockIn: "08:00", Period: "2025-01"}); errs != nil {
		t.Fatalf("Struct(valid) = %v, want nil", errs)
	}

	errs := Struct(structSample{Code: "s1", ClockIn: "8am", Period: "2025-13", Workers: 99})
	m := errs.ToMap()
	for _, field := range []string{"code", "clock_in", "period", "workers"} {
		if _, ok := m[field]; !ok {
			t.Errorf("Struct(invalid) missing error for %q; got %v", field, m)
		}
	}
	if m["clock_in"] != "clock_in must be in HH:MM format" {
		t.Errorf("clock_in message = %q", m["clock_in"])
	}
}
