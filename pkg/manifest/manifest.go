// Package manifest parses Python dependency manifests into plain package
// name lists. It handles requirements.txt and pyproject.toml, the two
// formats mined from public repositories.
package manifest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/pipwise/pipwise/pkg/integrations"
)

// depNameRE matches the leading package name of a requirement specifier,
// stopping before any version constraint, extras, or environment marker.
var depNameRE = regexp.MustCompile(`^([a-zA-Z0-9][-a-zA-Z0-9._]*)`)

// quotedDepRE pulls quoted requirement strings out of a TOML dependency
// array when strict parsing fails.
var quotedDepRE = regexp.MustCompile(`["']([a-zA-Z0-9][-a-zA-Z0-9._]*)[^"']*["']`)

// ParseRequirements extracts normalized package names from requirements.txt
// content. Comments, blank lines, pip options (-r, --index-url, ...), and
// direct URL requirements are skipped. Order is preserved and duplicates
// are dropped.
func ParseRequirements(content string) []string {
	var names []string
	seen := make(map[string]bool)

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
			continue
		}
		// Inline comments after the specifier.
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		// Direct references (pkg @ https://...) and bare URLs carry no
		// index name worth ranking.
		if strings.Contains(line, "://") {
			continue
		}

		m := depNameRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := integrations.NormalizePkgName(m[1])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// pyproject mirrors the subset of pyproject.toml we read: PEP 621 project
// dependencies and the poetry table used by older projects.
type pyproject struct {
	Project struct {
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Dependencies map[string]toml.Primitive `toml:"dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

// ParsePyproject extracts normalized package names from pyproject.toml
// content. It reads [project].dependencies (PEP 621) and
// [tool.poetry.dependencies]; when the document fails to parse as TOML it
// falls back to scanning for a dependencies array. The "python" entry
// poetry requires is excluded.
func ParsePyproject(content string) []string {
	var doc pyproject
	if _, err := toml.Decode(content, &doc); err != nil {
		return scanDependencies(content)
	}

	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		name = integrations.NormalizePkgName(name)
		if name != "" && name != "python" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	for _, spec := range doc.Project.Dependencies {
		if m := depNameRE.FindStringSubmatch(strings.TrimSpace(spec)); m != nil {
			add(m[1])
		}
	}
	// Poetry dependencies decode into a map; sort for deterministic output.
	poetry := make([]string, 0, len(doc.Tool.Poetry.Dependencies))
	for name := range doc.Tool.Poetry.Dependencies {
		poetry = append(poetry, name)
	}
	sort.Strings(poetry)
	for _, name := range poetry {
		add(name)
	}
	return names
}

// scanDependencies is the lenient fallback for malformed TOML: find a
// dependencies = [...] array and pull out the quoted specifiers.
func scanDependencies(content string) []string {
	start := strings.Index(content, "dependencies")
	if start < 0 {
		return nil
	}
	open := strings.Index(content[start:], "[")
	if open < 0 {
		return nil
	}
	open += start
	closing := strings.Index(content[open:], "]")
	if closing < 0 {
		return nil
	}

	var names []string
	seen := make(map[string]bool)
	for _, m := range quotedDepRE.FindAllStringSubmatch(content[open:open+closing], -1) {
		name := integrations.NormalizePkgName(m[1])
		if name != "" && !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}
