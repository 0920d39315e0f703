package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, name, source string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return path
}

func TestRunKeepNamesJSON(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "app.js", "var foo = function() {}; var bar = 1;")

	var buf bytes.Buffer

	opts := keepNamesOptions{format: formatJSON}
	if err := runKeepNames([]string{path}, opts, &buf); err != nil {
		t.Fatalf("runKeepNames: %v", err)
	}

	var reports []fileReport
	if err := json.Unmarshal(buf.Bytes(), &reports); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	if len(reports) != 1 {
		t.Fatalf("reports = %d, want 1", len(reports))
	}

	if len(reports[0].KeepNames) != 1 || reports[0].KeepNames[0] != "foo" {
		t.Fatalf("keep names = %v, want [foo]", reports[0].KeepNames)
	}

	if reports[0].Language != "javascript" {
		t.Fatalf("language = %q, want javascript", reports[0].Language)
	}
}

func TestRunKeepNamesText(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "app.js", "class Widget {}")

	var buf bytes.Buffer

	opts := keepNamesOptions{format: formatText}
	if err := runKeepNames([]string{path}, opts, &buf); err != nil {
		t.Fatalf("runKeepNames: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Widget") {
		t.Fatalf("output missing preserved name: %q", out)
	}
}

func TestRunKeepNamesMultipleFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	files := make([]string, 0, 4)

	for idx, source := range []string{
		"var a = () => {}",
		"var b = 1",
		"function c() {}",
		"var d = class {}",
	} {
		path := filepath.Join(dir, string(rune('a'+idx))+".js")
		if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
			t.Fatalf("write: %v", err)
		}

		files = append(files, path)
	}

	var buf bytes.Buffer

	opts := keepNamesOptions{format: formatJSON, workers: 2}
	if err := runKeepNames(files, opts, &buf); err != nil {
		t.Fatalf("runKeepNames: %v", err)
	}

	var reports []fileReport
	if err := json.Unmarshal(buf.Bytes(), &reports); err != nil {
		t.Fatalf("decode output: %v", err)
	}

	if len(reports) != 4 {
		t.Fatalf("reports = %d, want 4", len(reports))
	}

	// Input order survives parallel analysis.
	for i, report := range reports {
		if report.Path != files[i] {
			t.Fatalf("report %d path = %s, want %s", i, report.Path, files[i])
		}
	}

	if len(reports[1].KeepNames) != 0 {
		t.Fatalf("b.js keep names = %v, want none", reports[1].KeepNames)
	}
}

func TestRunKeepNamesUnknownFormat(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "app.js", "var x = 1")

	opts := keepNamesOptions{format: "yaml"}

	err := runKeepNames([]string{path}, opts, &bytes.Buffer{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("err = %v, want ErrUnknownFormat", err)
	}
}

func TestRunKeepNamesMissingFile(t *testing.T) {
	t.Parallel()

	opts := keepNamesOptions{format: formatNone}

	err := runKeepNames([]string{filepath.Join(t.TempDir(), "missing.js")}, opts, &bytes.Buffer{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveUserFilePath(t *testing.T) {
	t.Parallel()

	if _, err := resolveUserFilePath(""); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("empty path: err = %v", err)
	}

	if _, err := resolveUserFilePath("a\x00b"); !errors.Is(err, ErrPathContainsNUL) {
		t.Fatalf("NUL path: err = %v", err)
	}

	if _, err := resolveUserFilePath(t.TempDir()); !errors.Is(err, ErrDirectoryPath) {
		t.Fatalf("directory path: err = %v", err)
	}
}
