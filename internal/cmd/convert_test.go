package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/thirteen37/fil"
)

func TestPrintJSON(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		compact bool
		want    string
	}{
		{
			name:    "compact object",
			value:   map[string]any{"a": 1},
			compact: true,
			want:    "{\"a\":1}\n",
		},
		{
			name:    "indented object",
			value:   map[string]any{"a": 1},
			compact: false,
			want:    "{\n  \"a\": 1\n}\n",
		},
		{
			name:    "scalar",
			value:   "hello",
			compact: true,
			want:    "\"hello\"\n",
		},
		{
			name:    "null",
			value:   nil,
			compact: true,
			want:    "null\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := printJSON(&buf, tt.value, tt.compact); err != nil {
				t.Fatalf("printJSON() error = %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("printJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

func resetConvertFlags() {
	convertIndent = ""
	convertOrdered = false
	convertNoAtomic = false
}

func TestRunConvert_JSONToYAML(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	source := filepath.Join(dir, "config.json")
	destination := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(source, []byte(`{"name": "demo", "port": 8080}`), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	if err := runConvert(convertCmd, []string{source, destination}); err != nil {
		t.Fatalf("runConvert failed: %v", err)
	}

	raw, err := os.ReadFile(destination)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	want := "name: demo\nport: 8080\n"
	if string(raw) != want {
		t.Errorf("destination = %q, want %q", raw, want)
	}
}

func TestRunConvert_JSONLToJSON(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	source := filepath.Join(dir, "events.jsonl")
	destination := filepath.Join(dir, "events.json")

	if err := os.WriteFile(source, []byte("{\"id\": 1}\n{\"id\": 2}\n"), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	if err := runConvert(convertCmd, []string{source, destination}); err != nil {
		t.Fatalf("runConvert failed: %v", err)
	}

	// The records collect into one JSON array
	got, err := fil.Read(destination)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	want := []any{
		map[string]any{"id": float64(1)},
		map[string]any{"id": float64(2)},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("destination = %v, want %v", got, want)
	}
}

func TestRunConvert_JSONToJSONL(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()
	source := filepath.Join(dir, "events.json")
	destination := filepath.Join(dir, "events.jsonl")

	if err := os.WriteFile(source, []byte(`[{"id": 1}, {"id": 2}]`), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	if err := runConvert(convertCmd, []string{source, destination}); err != nil {
		t.Fatalf("runConvert failed: %v", err)
	}

	raw, err := os.ReadFile(destination)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	want := "{\"id\":1}\n{\"id\":2}\n"
	if string(raw) != want {
		t.Errorf("destination = %q, want %q", raw, want)
	}
}

func TestRunConvert_MissingSource(t *testing.T) {
	resetConvertFlags()
	dir := t.TempDir()

	err := runConvert(convertCmd, []string{filepath.Join(dir, "absent.json"), filepath.Join(dir, "out.yaml")})
	if err == nil {
		t.Fatal("Expected error for missing source")
	}
	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error = %v, want it to mention the read failure", err)
	}
}

func TestRunConvert_Ordered(t *testing.T) {
	resetConvertFlags()
	convertOrdered = true
	defer resetConvertFlags()

	dir := t.TempDir()
	source := filepath.Join(dir, "config.json")
	destination := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(source, []byte(`{"zebra": 1, "apple": 2}`), 0644); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}

	if err := runConvert(convertCmd, []string{source, destination}); err != nil {
		t.Fatalf("runConvert failed: %v", err)
	}

	raw, err := os.ReadFile(destination)
	if err != nil {
		t.Fatalf("Failed to read destination: %v", err)
	}
	want := "zebra: 1\napple: 2\n"
	if string(raw) != want {
		t.Errorf("destination = %q, want %q", raw, want)
	}
}
