package recommend

import "strings"

// Alternative is a suggested replacement for a package the user requested.
type Alternative struct {
	Original    string `json:"original"`
	Suggested   string `json:"suggested"`
	Reason      string `json:"reason"`
	Description string `json:"description,omitempty"`
}

// Additional is a wholly new package suggested alongside the user's request.
type Additional struct {
	Name        string `json:"name"`
	Reason      string `json:"reason"`
	Description string `json:"description,omitempty"`
}

// Recommendation is the reconciled output of one recommendation cycle.
// Ordered slices rather than maps keep iteration deterministic: entries
// appear in the order they were recognized.
//
// A Recommendation is immutable once returned.
type Recommendation struct {
	// Requested preserves the user's original package list so resolution
	// can fall back to it when everything else is rejected.
	Requested []string `json:"requested"`

	// Approved packages need no change.
	Approved []string `json:"approved"`

	// Alternatives suggest replacements for requested packages.
	Alternatives []Alternative `json:"alternatives,omitempty"`

	// Additional packages are new suggestions beyond the request.
	Additional []Additional `json:"additional,omitempty"`

	// Degraded is set when the language model was unreachable and the
	// recommendation fell back to approving the request as-is. Callers
	// treat this the same as "no suggestions".
	Degraded bool `json:"degraded,omitempty"`
}

// Suggested returns every suggested package name a decision can be made
// about: alternative replacements followed by additional packages.
func (r *Recommendation) Suggested() []string {
	names := make([]string, 0, len(r.Alternatives)+len(r.Additional))
	for _, alt := range r.Alternatives {
		names = append(names, alt.Suggested)
	}
	for _, add := range r.Additional {
		names = append(names, add.Name)
	}
	return names
}

// Decisions maps a suggested package name to the user's accept/reject
// choice. Names absent from the map are treated as rejected.
type Decisions map[string]bool

// PackageCount is one entry of a popularity ranking.
type PackageCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Ranking is a popularity ranking: packages ordered by descending
// cross-repository occurrence count.
type Ranking []PackageCount

// Names returns the ranked package names in order.
func (r Ranking) Names() []string {
	names := make([]string, len(r))
	for i, pc := range r {
		names[i] = pc.Name
	}
	return names
}

// SplitPackages splits a comma- or space-separated package list into
// clean individual names. Used for CLI and API inputs.
func SplitPackages(raw string) []string {
	return strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
