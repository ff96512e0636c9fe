// Package project provisions the project workspace: it creates the
// project folder, a virtual environment via uv, installs the resolved
// package list, and writes requirements.txt.
package project

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// uvBinary is the package manager driving environment creation and
// installs.
const uvBinary = "uv"

// commandTimeout bounds each external uv invocation.
const commandTimeout = 2 * time.Minute

// Workspace is a provisioned project directory with its virtual
// environment.
type Workspace struct {
	// Dir is the absolute project directory.
	Dir string
	// VenvDir is the virtual environment inside Dir.
	VenvDir string
}

// Setup creates the project directory and a uv-managed virtual
// environment inside it. The directory may already exist; an existing
// .venv is reused. This is the only step whose failure is fatal to the
// flow: without a workspace there is nothing to install into.
func Setup(ctx context.Context, name string) (*Workspace, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty project name")
	}
	if strings.ContainsAny(name, "/\\") {
		return nil, fmt.Errorf("project name must not contain path separators: %q", name)
	}

	dir, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("resolve project path: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create project directory: %w", err)
	}

	ws := &Workspace{Dir: dir, VenvDir: filepath.Join(dir, ".venv")}
	if _, err := os.Stat(ws.VenvDir); err == nil {
		return ws, nil
	}

	if out, err := runUV(ctx, dir, "venv"); err != nil {
		return nil, fmt.Errorf("create virtual environment: %w: %s", err, out)
	}
	return ws, nil
}

// runUV executes one uv command in dir with a bounded timeout, returning
// combined output for error reporting.
func runUV(ctx context.Context, dir string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, uvBinary, args...)
	cmd.Dir = dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf
	err := cmd.Run()
	return strings.TrimSpace(buf.String()), err
}
