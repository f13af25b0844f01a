package secrets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadInlineValue(t *testing.T) {
	got, err := Load(Source{Name: "gemini api key", Value: "  secret-value \n"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "secret-value" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("file-secret\n"), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	got, err := Load(Source{Name: "gemini api key", Value: "ignored", File: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "file-secret" {
		t.Fatalf("expected file value to win, got %q", got)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	if err := os.WriteFile(path, []byte("   \n"), 0o600); err != nil {
		t.Fatalf("writing key file: %v", err)
	}

	_, err := Load(Source{Name: "gemini api key", File: path})
	if err == nil || !strings.Contains(err.Error(), "is empty") {
		t.Fatalf("expected empty file error, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(Source{Name: "gemini api key", File: filepath.Join(t.TempDir(), "absent")})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadNothingConfigured(t *testing.T) {
	_, err := Load(Source{Name: "gemini api key"})
	if err == nil || !strings.Contains(err.Error(), "not configured") {
		t.Fatalf("expected not configured error, got %v", err)
	}
}
