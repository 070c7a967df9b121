package data_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aptoro/kodudo/pkg/data"
)

func writeData(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write data file: %v", err)
	}
	return path
}

func TestLoad_PlainArray(t *testing.T) {
	loaded, err := data.Load(writeData(t, `[{"name": "Item 1"}, {"name": "Item 2"}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if loaded.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", loaded.Len())
	}
	if loaded.HasMeta {
		t.Fatalf("plain arrays carry no metadata")
	}
	if loaded.Records[0]["name"] != "Item 1" {
		t.Fatalf("record not parsed: %#v", loaded.Records[0])
	}
}

func TestLoad_AptoroEnvelope(t *testing.T) {
	loaded, err := data.Load(writeData(t, `{"meta": {"schema": "fauna"}, "data": [{"name": "Gecko"}]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !loaded.HasMeta {
		t.Fatalf("envelope metadata not detected")
	}
	if diff := cmp.Diff(map[string]any{"schema": "fauna"}, loaded.Meta); diff != "" {
		t.Fatalf("meta mismatch (-want +got):\n%s", diff)
	}
	if loaded.Len() != 1 || loaded.Records[0]["name"] != "Gecko" {
		t.Fatalf("records not parsed: %#v", loaded.Records)
	}
}

func TestLoad_FallbackKeys(t *testing.T) {
	for _, key := range []string{"data", "records", "items", "results"} {
		loaded, err := data.Load(writeData(t, `{"`+key+`": [{"id": 1}]}`))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", key, err)
		}
		if loaded.Len() != 1 {
			t.Fatalf("%s: expected 1 record, got %d", key, loaded.Len())
		}
		if loaded.HasMeta {
			t.Fatalf("%s: fallback keys carry no metadata", key)
		}
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	_, err := data.Load(writeData(t, `{"data": [`))
	if !errors.Is(err, data.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestLoad_ScalarRoot(t *testing.T) {
	_, err := data.Load(writeData(t, `42`))
	if !errors.Is(err, data.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestLoad_ObjectWithoutRecognisedKeys(t *testing.T) {
	_, err := data.Load(writeData(t, `{"payload": [{"id": 1}]}`))
	if !errors.Is(err, data.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestLoad_NonObjectRecord(t *testing.T) {
	_, err := data.Load(writeData(t, `[{"id": 1}, "not a record"]`))
	if !errors.Is(err, data.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestLoad_BadMeta(t *testing.T) {
	_, err := data.Load(writeData(t, `{"meta": "nope", "data": []}`))
	if !errors.Is(err, data.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData, got %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := data.Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
