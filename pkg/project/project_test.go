package project

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupRejectsBadNames(t *testing.T) {
	ctx := context.Background()

	if _, err := Setup(ctx, ""); err == nil {
		t.Error("empty name should fail")
	}
	if _, err := Setup(ctx, "a/b"); err == nil {
		t.Error("name with separator should fail")
	}
}

func TestSetupReusesExistingVenv(t *testing.T) {
	dir := t.TempDir()
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})

	// Pre-create the venv marker so Setup never shells out.
	if err := os.MkdirAll(filepath.Join(dir, "demo", ".venv"), 0o755); err != nil {
		t.Fatal(err)
	}

	ws, err := Setup(context.Background(), "demo")
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if ws.VenvDir != filepath.Join(ws.Dir, ".venv") {
		t.Errorf("VenvDir = %q", ws.VenvDir)
	}
}

func TestWriteRequirementsOnlySuccessful(t *testing.T) {
	ws := &Workspace{Dir: t.TempDir()}
	report := &Report{Results: []PackageResult{
		{Name: "numpy", OK: true},
		{Name: "broken-pkg", OK: false, Error: "error: no matching distribution"},
		{Name: "pandas", OK: true},
	}}

	if err := ws.WriteRequirements(report); err != nil {
		t.Fatalf("WriteRequirements: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(ws.Dir, "requirements.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), "numpy\npandas\n"; got != want {
		t.Errorf("requirements.txt = %q, want %q", got, want)
	}
}

func TestReportFailed(t *testing.T) {
	report := &Report{Results: []PackageResult{
		{Name: "a", OK: true},
		{Name: "b", OK: false},
		{Name: "c", OK: false},
	}}
	failed := report.Failed()
	if len(failed) != 2 || failed[0] != "b" || failed[1] != "c" {
		t.Errorf("Failed = %v", failed)
	}
}

func TestInstallError(t *testing.T) {
	out := "Resolving dependencies\nerror: no matching distribution found for nope"
	got := installError(out, os.ErrNotExist)
	if !strings.HasPrefix(got, "error:") {
		t.Errorf("installError = %q", got)
	}
}
