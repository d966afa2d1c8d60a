package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetCatFlags() {
	catCompact = false
	catOrdered = false
}

func TestCatFile_Document(t *testing.T) {
	resetCatFlags()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("name = \"demo\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var buf bytes.Buffer
	if err := catFile(&buf, path); err != nil {
		t.Fatalf("catFile failed: %v", err)
	}

	want := "{\n  \"name\": \"demo\"\n}\n"
	if buf.String() != want {
		t.Errorf("catFile() = %q, want %q", buf.String(), want)
	}
}

func TestCatFile_Compact(t *testing.T) {
	resetCatFlags()
	catCompact = true
	defer resetCatFlags()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("name = \"demo\"\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var buf bytes.Buffer
	if err := catFile(&buf, path); err != nil {
		t.Fatalf("catFile failed: %v", err)
	}

	want := "{\"name\":\"demo\"}\n"
	if buf.String() != want {
		t.Errorf("catFile() = %q, want %q", buf.String(), want)
	}
}

func TestCatFile_LinesPrintOnePerLine(t *testing.T) {
	resetCatFlags()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	if err := os.WriteFile(path, []byte("{\"id\": 1}\n{\"id\": 2}\n"), 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	var buf bytes.Buffer
	if err := catFile(&buf, path); err != nil {
		t.Fatalf("catFile failed: %v", err)
	}

	want := "{\"id\":1}\n{\"id\":2}\n"
	if buf.String() != want {
		t.Errorf("catFile() = %q, want %q", buf.String(), want)
	}
}

func TestCatFile_MissingFile(t *testing.T) {
	resetCatFlags()
	var buf bytes.Buffer
	err := catFile(&buf, filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error = %v, want it to mention the read failure", err)
	}
}
