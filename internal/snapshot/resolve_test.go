package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolve_FileRelative(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "latest.json", `{}`)

	src, err := Resolve("file://latest.json", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Path != filepath.Join(dir, "latest.json") {
		t.Errorf("path = %q, want %q", src.Path, filepath.Join(dir, "latest.json"))
	}
	if src.Scheme != SchemeFile {
		t.Errorf("scheme = %q, want %q", src.Scheme, SchemeFile)
	}
}

func TestResolve_FileAbsolute(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abs.json")
	writeFile(t, dir, "abs.json", `{}`)

	src, err := Resolve("file://"+path, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Path != path {
		t.Errorf("path = %q, want %q", src.Path, path)
	}
}

func TestResolve_FileMissing(t *testing.T) {
	_, err := Resolve("file://nonexistent.json", t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolve_FileIsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "subdir"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := Resolve("file://subdir", dir)
	if err == nil {
		t.Fatal("expected error for directory")
	}
}

func TestResolve_Exec(t *testing.T) {
	dir := t.TempDir()
	writeExecutable(t, dir, "fetch", "#!/bin/sh\necho '{}'")

	src, err := Resolve("exec://fetch", dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Scheme != SchemeExec {
		t.Errorf("scheme = %q, want %q", src.Scheme, SchemeExec)
	}
}

func TestResolve_ExecNotExecutable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "noexec", "#!/bin/sh\n")

	_, err := Resolve("exec://noexec", dir)
	if err == nil {
		t.Fatal("expected error for non-executable file")
	}
}

func TestResolve_Stdin(t *testing.T) {
	src, err := Resolve("-", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.Scheme != SchemeStdin {
		t.Errorf("scheme = %q, want %q", src.Scheme, SchemeStdin)
	}
}

func TestResolve_Empty(t *testing.T) {
	if _, err := Resolve("", ""); err == nil {
		t.Fatal("expected error for empty uri")
	}
}

func TestResolve_UnsupportedScheme(t *testing.T) {
	if _, err := Resolve("https://dev12345.service-now.com", ""); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func writeExecutable(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o755); err != nil {
		t.Fatal(err)
	}
}
