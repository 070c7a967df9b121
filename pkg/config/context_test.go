package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aptoro/kodudo/pkg/config"
)

func TestMergeContext_Precedence(t *testing.T) {
	fileLayer := map[string]any{"a": 1, "b": 2}
	inline := map[string]any{"b": 3}
	runtime := map[string]any{"c": 4}

	got := config.MergeContext(fileLayer, inline, runtime)

	want := map[string]any{"a": 1, "b": 3, "c": 4}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged context mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeContext_NoDeepMerge(t *testing.T) {
	lower := map[string]any{"site": map[string]any{"name": "old", "url": "http://old"}}
	upper := map[string]any{"site": map[string]any{"name": "new"}}

	got := config.MergeContext(lower, upper)

	want := map[string]any{"site": map[string]any{"name": "new"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("nested values must be replaced, not merged (-want +got):\n%s", diff)
	}
}

func TestMergeContext_NilLayersSkipped(t *testing.T) {
	got := config.MergeContext(nil, map[string]any{"a": 1}, nil)

	want := map[string]any{"a": 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("merged context mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeContext_DoesNotMutateInputs(t *testing.T) {
	lower := map[string]any{"a": 1}
	upper := map[string]any{"a": 2}

	config.MergeContext(lower, upper)

	if lower["a"] != 1 {
		t.Fatalf("lower layer was mutated: %#v", lower)
	}
}

func TestMergeContext_NoLayers(t *testing.T) {
	got := config.MergeContext()
	if len(got) != 0 {
		t.Fatalf("expected empty map, got %#v", got)
	}
}
