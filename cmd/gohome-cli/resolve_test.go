package main

import (
	"strings"
	"testing"
)

func TestResolveDevice(t *testing.T) {
	ids := []string{"/dev/sdb", "/dev/sda"}

	for _, input := range []string{"sda", "SDA", " /dev/sda "} {
		got, err := resolveDevice(input, ids)
		if err != nil {
			t.Fatalf("resolve %q: %v", input, err)
		}
		if got != "/dev/sda" {
			t.Fatalf("resolve %q: got %q", input, got)
		}
	}

	_, err := resolveDevice("sdc", ids)
	if err == nil || !strings.Contains(err.Error(), "Available: /dev/sda, /dev/sdb") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestResolveDeviceAmbiguousShortName(t *testing.T) {
	ids := []string{"/dev/sda", "/dev/disk/sda"}

	for i := 0; i < 10; i++ {
		_, err := resolveDevice("sda", ids)
		if err == nil || !strings.Contains(err.Error(), "ambiguous: /dev/disk/sda, /dev/sda") {
			t.Fatalf("expected ambiguity error, got %v", err)
		}
	}

	got, err := resolveDevice("/dev/disk/sda", ids)
	if err != nil || got != "/dev/disk/sda" {
		t.Fatalf("full id should resolve: %q %v", got, err)
	}
}

func TestDeviceShortName(t *testing.T) {
	cases := map[string]string{
		"/dev/sda":               "sda",
		"/dev/disk/by-id/ata-X1": "ata-X1",
		"sda":                    "sda",
	}
	for in, want := range cases {
		if got := deviceShortName(in); got != want {
			t.Fatalf("deviceShortName(%q) = %q, want %q", in, got, want)
		}
	}
}
