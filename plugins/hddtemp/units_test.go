package hddtemp

import (
	"errors"
	"testing"
)

func TestParseUnit(t *testing.T) {
	cases := []struct {
		token string
		want  Unit
	}{
		{"C", Celsius},
		{"F", Fahrenheit},
		{"Celsius", Celsius},
		{"Fx", Fahrenheit},
	}
	for _, tc := range cases {
		got, err := ParseUnit(tc.token)
		if err != nil {
			t.Fatalf("ParseUnit(%q): %v", tc.token, err)
		}
		if got != tc.want {
			t.Fatalf("ParseUnit(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestParseUnitInvalid(t *testing.T) {
	for _, token := range []string{"", "c", "K", "*", " C"} {
		_, err := ParseUnit(token)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("ParseUnit(%q): expected ErrInvalidFormat, got %v", token, err)
		}
	}
}

func TestUnitRoundTrip(t *testing.T) {
	for _, unit := range []Unit{Celsius, Fahrenheit} {
		got, err := ParseUnit(unit.String())
		if err != nil {
			t.Fatalf("ParseUnit(%q): %v", unit.String(), err)
		}
		if got != unit {
			t.Fatalf("round trip %v -> %q -> %v", unit, unit.String(), got)
		}
	}
}

func TestUnitCelsius(t *testing.T) {
	if got := Celsius.Celsius(40); got != 40 {
		t.Fatalf("Celsius.Celsius(40) = %v", got)
	}
	if got := Fahrenheit.Celsius(212); got != 100 {
		t.Fatalf("Fahrenheit.Celsius(212) = %v", got)
	}
}
