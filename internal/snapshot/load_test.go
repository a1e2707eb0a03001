package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func execSourceFor(t *testing.T, content string) *Source {
	t.Helper()
	dir := t.TempDir()
	writeExecutable(t, dir, "fetch.sh", content)
	return &Source{URI: "exec://fetch.sh", Path: filepath.Join(dir, "fetch.sh"), Scheme: SchemeExec}
}

func TestLoad_Exec(t *testing.T) {
	src := execSourceFor(t, "#!/bin/sh\necho '{\"state\": \"STATE_FINISHED\"}'\n")

	result, err := Load(context.Background(), src, LoadOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(result.Data), "STATE_FINISHED") {
		t.Errorf("data = %q, missing state", result.Data)
	}
}

func TestLoad_ExecNonZeroExit(t *testing.T) {
	src := execSourceFor(t, "#!/bin/sh\necho partial\necho 'token expired' >&2\nexit 2\n")

	result, err := Load(context.Background(), src, LoadOpts{})
	if err == nil {
		t.Fatal("non-zero exit should be an error")
	}
	if !strings.Contains(err.Error(), "code 2") {
		t.Errorf("error = %q, want exit code", err.Error())
	}
	if result == nil || !strings.Contains(result.Stderr, "token expired") {
		t.Errorf("stderr should be captured on failure, got %+v", result)
	}
}

func TestLoad_ExecTimeout(t *testing.T) {
	src := execSourceFor(t, "#!/bin/sh\nsleep 10\n")

	_, err := Load(context.Background(), src, LoadOpts{Timeout: 100 * time.Millisecond})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error = %q, want timeout message", err.Error())
	}
}

func TestLoad_ExecIsolatedEnv(t *testing.T) {
	src := execSourceFor(t, "#!/bin/sh\necho home=$HOME token=$SN_TOKEN\n")

	result, err := Load(context.Background(), src, LoadOpts{Env: []string{"SN_TOKEN=abc"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(result.Data), "home= token=abc") {
		t.Errorf("only the given env should be visible, stdout: %q", result.Data)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snap.json")
	if err := os.WriteFile(path, []byte(`{"id": "e1"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Load(context.Background(), &Source{Path: path, Scheme: SchemeFile}, LoadOpts{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result.Data) != `{"id": "e1"}` {
		t.Errorf("data = %q", result.Data)
	}
}

func TestLoad_Stdin(t *testing.T) {
	result, err := Load(context.Background(), &Source{URI: "-", Scheme: SchemeStdin}, LoadOpts{
		Stdin: strings.NewReader(`{"id": "e2"}`),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result.Data) != `{"id": "e2"}` {
		t.Errorf("data = %q", result.Data)
	}

	if _, err := Load(context.Background(), &Source{Scheme: SchemeStdin}, LoadOpts{}); err == nil {
		t.Error("expected error without stdin reader")
	}
}

func TestLoad_UnknownScheme(t *testing.T) {
	if _, err := Load(context.Background(), &Source{Scheme: "ftp"}, LoadOpts{}); err == nil {
		t.Fatal("expected error for unknown scheme")
	}
}
