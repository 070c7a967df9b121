package config_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aptoro/kodudo/pkg/config"
)

func TestResolvedPaths_RelativeAgainstBasePath(t *testing.T) {
	cfg := config.Config{
		Input:        "data.json",
		Template:     "templates/list.html.j2",
		Output:       "out/index.html",
		ContextFile:  "context.yaml",
		TemplateDirs: []string{"shared", "/abs/partials"},
		BasePath:     "/project",
	}

	if got := cfg.ResolvedInput(); got != filepath.Join("/project", "data.json") {
		t.Fatalf("resolved input mismatch: %s", got)
	}
	if got := cfg.ResolvedTemplate(); got != filepath.Join("/project", "templates/list.html.j2") {
		t.Fatalf("resolved template mismatch: %s", got)
	}
	if got := cfg.ResolvedOutput(); got != filepath.Join("/project", "out/index.html") {
		t.Fatalf("resolved output mismatch: %s", got)
	}
	if got := cfg.ResolvedContextFile(); got != filepath.Join("/project", "context.yaml") {
		t.Fatalf("resolved context file mismatch: %s", got)
	}

	wantDirs := []string{filepath.Join("/project", "shared"), "/abs/partials"}
	if diff := cmp.Diff(wantDirs, cfg.ResolvedTemplateDirs()); diff != "" {
		t.Fatalf("resolved template dirs mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvedPaths_NoBasePath(t *testing.T) {
	cfg := config.Config{Input: "data.json", Output: "out.html"}

	if got := cfg.ResolvedInput(); got != "data.json" {
		t.Fatalf("resolved input mismatch: %s", got)
	}
	if got := cfg.ResolvedContextFile(); got != "" {
		t.Fatalf("expected empty context file path, got %s", got)
	}
}

func TestResolvedPaths_AbsoluteUntouched(t *testing.T) {
	cfg := config.Config{Input: "/data/records.json", BasePath: "/project"}

	if got := cfg.ResolvedInput(); got != "/data/records.json" {
		t.Fatalf("absolute path must pass through: %s", got)
	}
}

func TestEffectiveFormat_Explicit(t *testing.T) {
	cfg := config.Config{Template: "list.html.j2", Format: config.FormatText}
	if got := cfg.EffectiveFormat(); got != config.FormatText {
		t.Fatalf("explicit format must win, got %s", got)
	}
}

func TestEffectiveFormat_InferredFromTemplate(t *testing.T) {
	cases := []struct {
		template string
		want     config.Format
	}{
		{"fauna_list.html.j2", config.FormatHTML},
		{"notes.md.j2", config.FormatMarkdown},
		{"report.txt.j2", config.FormatText},
		{"plain.j2", config.FormatText},
	}

	for _, tc := range cases {
		cfg := config.Config{Template: tc.template}
		if got := cfg.EffectiveFormat(); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.template, tc.want, got)
		}
	}
}

func TestFormat_Valid(t *testing.T) {
	for _, f := range []config.Format{config.FormatHTML, config.FormatMarkdown, config.FormatText} {
		if !f.Valid() {
			t.Fatalf("%s should be valid", f)
		}
	}
	if config.Format("pdf").Valid() {
		t.Fatalf("pdf should not be valid")
	}
}
