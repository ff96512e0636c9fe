package project

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PackageResult records the outcome of installing one package.
type PackageResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report summarizes one install run.
type Report struct {
	RunID    string          `json:"run_id"`
	Started  time.Time       `json:"started"`
	Finished time.Time       `json:"finished"`
	Results  []PackageResult `json:"results"`
}

// Failed returns the names of packages that failed to install.
func (r *Report) Failed() []string {
	var failed []string
	for _, res := range r.Results {
		if !res.OK {
			failed = append(failed, res.Name)
		}
	}
	return failed
}

// Install installs each package into the workspace's virtual environment
// via uv, one at a time so a single failing package never aborts the
// rest. Per-package failures are recorded in the report, not returned as
// errors.
func (ws *Workspace) Install(ctx context.Context, packages []string) *Report {
	report := &Report{
		RunID:   uuid.NewString(),
		Started: time.Now(),
	}

	for _, pkg := range packages {
		out, err := runUV(ctx, ws.Dir, "pip", "install", pkg)
		result := PackageResult{Name: pkg, OK: err == nil}
		if err != nil {
			result.Error = installError(out, err)
		}
		report.Results = append(report.Results, result)

		if ctx.Err() != nil {
			break
		}
	}

	report.Finished = time.Now()
	return report
}

// installError condenses uv's output into a one-line failure reason.
func installError(out string, err error) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "error:") || strings.HasPrefix(line, "ERROR:") {
			return line
		}
	}
	if out != "" {
		lines := strings.Split(out, "\n")
		return strings.TrimSpace(lines[len(lines)-1])
	}
	return err.Error()
}

// WriteRequirements writes the installed package list to the workspace's
// requirements.txt, one name per line. Only successfully installed
// packages are recorded.
func (ws *Workspace) WriteRequirements(report *Report) error {
	var b strings.Builder
	for _, res := range report.Results {
		if res.OK {
			fmt.Fprintln(&b, res.Name)
		}
	}

	path := filepath.Join(ws.Dir, "requirements.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write requirements.txt: %w", err)
	}
	return nil
}
