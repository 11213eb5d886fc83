package schema

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDescribesTables(t *testing.T) {
	text := Default()
	for _, want := range []string{
		"CREATE TABLE sections",
		"CREATE TABLE faculty",
		"CREATE TABLE course_faculty",
		"crn text not null",
		"'Georgia Tech-Atlanta *'",
		"'Lecture*'",
		"raw json not null",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("default descriptor missing %q", want)
		}
	}
}

func TestLoadEmptyPathUsesDefault(t *testing.T) {
	got, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != Default() {
		t.Error("Load(\"\") should return the embedded descriptor")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.sql")
	const text = "CREATE TABLE sections (crn text not null);\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != text {
		t.Errorf("Load() = %q, want %q", got, text)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(filepath.Join(dir, "missing.sql")); err == nil {
		t.Error("expected error for missing file")
	}

	blank := filepath.Join(dir, "blank.sql")
	if err := os.WriteFile(blank, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(blank); err == nil {
		t.Error("expected error for blank descriptor")
	}
}
