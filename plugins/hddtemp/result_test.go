package hddtemp

import (
	"errors"
	"testing"
)

func TestParseResult(t *testing.T) {
	cases := map[string]Result{
		"ERR": ResultError,
		"NA":  ResultNotApplicable,
		"UNK": ResultUnknown,
		"NOS": ResultNoSensor,
		"SLP": ResultDriveSleep,
	}
	for token, want := range cases {
		got, err := ParseResult(token)
		if err != nil {
			t.Fatalf("ParseResult(%q): %v", token, err)
		}
		if got != want {
			t.Fatalf("ParseResult(%q) = %v, want %v", token, got, want)
		}
	}
}

func TestParseResultInvalid(t *testing.T) {
	for _, token := range []string{"", "ERRX", "err", "SLP ", "*"} {
		_, err := ParseResult(token)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Fatalf("ParseResult(%q): expected ErrInvalidFormat, got %v", token, err)
		}
		var tokenErr *TokenError
		if !errors.As(err, &tokenErr) || tokenErr.Token != token {
			t.Fatalf("ParseResult(%q): expected TokenError, got %v", token, err)
		}
	}
}

// ResultKnown formats as "" and is never parsed back; every other kind
// survives the round trip.
func TestResultRoundTrip(t *testing.T) {
	for _, result := range Results() {
		token := result.String()
		if result == ResultKnown {
			if token != "" {
				t.Fatalf("ResultKnown token = %q", token)
			}
			continue
		}
		got, err := ParseResult(token)
		if err != nil {
			t.Fatalf("ParseResult(%q): %v", token, err)
		}
		if got != result {
			t.Fatalf("round trip %v -> %q -> %v", result.Label(), token, got.Label())
		}
	}
}

func TestResultZeroValueIsKnown(t *testing.T) {
	var r Result
	if r != ResultKnown || r.Label() != "known" {
		t.Fatalf("zero Result = %q", r.Label())
	}
	if len(Results()) != 6 {
		t.Fatalf("expected 6 results, got %d", len(Results()))
	}
}
