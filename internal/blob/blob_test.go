package blob

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/joshp123/gohome-hddtemp/internal/config"
)

func TestParseEndpoint(t *testing.T) {
	cases := []struct {
		raw    string
		host   string
		secure bool
	}{
		{raw: "s3.example.com", host: "s3.example.com", secure: true},
		{raw: "https://s3.example.com", host: "s3.example.com", secure: true},
		{raw: "http://127.0.0.1:9000", host: "127.0.0.1:9000", secure: false},
	}
	for _, tc := range cases {
		host, secure, err := ParseEndpoint(tc.raw)
		if err != nil {
			t.Fatalf("ParseEndpoint(%q): %v", tc.raw, err)
		}
		if host != tc.host || secure != tc.secure {
			t.Fatalf("ParseEndpoint(%q) = %q, %v", tc.raw, host, secure)
		}
	}

	if _, _, err := ParseEndpoint("https://"); err == nil {
		t.Fatalf("expected error for empty host")
	}
}

func TestReadSecretFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte("  hunter2\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadSecretFile(path)
	if err != nil {
		t.Fatalf("ReadSecretFile: %v", err)
	}
	if got != "hunter2" {
		t.Fatalf("unexpected secret: %q", got)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, err := store.Load(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	data := []byte("payload")
	if err := store.Save(ctx, "a.txt", data, "text/plain"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data[0] = 'X'

	got, err := store.Load(ctx, "a.txt")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != "payload" {
		t.Fatalf("store should copy on save, got %q", got)
	}
	if store.Len() != 1 {
		t.Fatalf("unexpected len: %d", store.Len())
	}
}

func TestNewS3StoreValidation(t *testing.T) {
	if _, err := NewS3Store(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
	if _, err := NewS3Store(&config.BlobConfig{Endpoint: "s3.local", Bucket: "b"}); err == nil {
		t.Fatalf("expected error for missing key files")
	}

	dir := t.TempDir()
	access := filepath.Join(dir, "access")
	secret := filepath.Join(dir, "secret")
	for _, path := range []string{access, secret} {
		if err := os.WriteFile(path, []byte("value"), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	store, err := NewS3Store(&config.BlobConfig{
		Endpoint:      "http://127.0.0.1:9000",
		Bucket:        "drives",
		AccessKeyFile: access,
		SecretKeyFile: secret,
	})
	if err != nil {
		t.Fatalf("NewS3Store: %v", err)
	}
	if store.key("latest.txt") != config.DefaultBlobPrefix+"/latest.txt" {
		t.Fatalf("unexpected key: %q", store.key("latest.txt"))
	}
}
