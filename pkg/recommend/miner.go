package recommend

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/pipwise/pipwise/pkg/manifest"
)

// RepoRef identifies one related repository found by search.
type RepoRef struct {
	FullName    string
	Stars       int
	Description string
}

// RepoSearcher finds repositories related to a project description.
type RepoSearcher interface {
	SearchRepositories(ctx context.Context, query, language string, maxResults int) ([]RepoRef, error)
}

// FileFetcher retrieves a file from a repository, returning an error when
// the file does not exist.
type FileFetcher interface {
	FetchFile(ctx context.Context, fullName, path string) (string, error)
}

// requirementsPaths are tried in order per repository, first hit wins.
// pyproject.toml is always tried in addition since projects commonly
// carry both.
var requirementsPaths = []string{"requirements.txt", "requirements/base.txt", "requirements/requirements.txt"}

const pyprojectPath = "pyproject.toml"

// basePackages are ecosystem plumbing that appears in nearly every
// manifest and carries no signal. Always excluded from rankings.
var basePackages = map[string]bool{
	"pip":        true,
	"setuptools": true,
	"wheel":      true,
	"python":     true,
	"uv":         true,
	"distribute": true,
}

// minerWorkers bounds concurrent manifest fetches per mining run.
const minerWorkers = 4

// Miner ranks packages by how often they appear across related
// repositories' manifests.
type Miner struct {
	fetcher FileFetcher
}

// NewMiner creates a Miner that reads manifests through fetcher.
func NewMiner(fetcher FileFetcher) *Miner {
	return &Miner{fetcher: fetcher}
}

// Mine fetches each repository's manifests, unions the declared package
// names per repository, and ranks them by cross-repository occurrence.
// The ranking is sorted by descending count with first-seen order breaking
// ties, truncated to topN, and filtered against the base-package denylist.
//
// A repository with no resolvable manifest, or whose fetches fail,
// contributes nothing; mining never fails because one repository is
// unreachable.
func (m *Miner) Mine(ctx context.Context, repos []RepoRef, topN int) Ranking {
	if topN <= 0 {
		topN = 15
	}

	// Fetch concurrently but index results by input position so counts
	// accumulate in repository order regardless of completion order.
	perRepo := make([][]string, len(repos))
	var wg sync.WaitGroup
	sem := make(chan struct{}, minerWorkers)
	for i, repo := range repos {
		wg.Add(1)
		go func(i int, repo RepoRef) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			perRepo[i] = m.minePackages(ctx, repo.FullName)
		}(i, repo)
	}
	wg.Wait()

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0
	for _, names := range perRepo {
		for _, name := range names {
			if _, ok := firstSeen[name]; !ok {
				firstSeen[name] = order
				order++
			}
			counts[name]++
		}
	}

	ranking := make(Ranking, 0, len(counts))
	for name, count := range counts {
		ranking = append(ranking, PackageCount{Name: name, Count: count})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].Count != ranking[j].Count {
			return ranking[i].Count > ranking[j].Count
		}
		return firstSeen[ranking[i].Name] < firstSeen[ranking[j].Name]
	})

	if len(ranking) > topN {
		ranking = ranking[:topN]
	}

	filtered := ranking[:0]
	for _, pc := range ranking {
		if !basePackages[strings.ToLower(pc.Name)] {
			filtered = append(filtered, pc)
		}
	}
	return filtered
}

// minePackages returns the union of package names declared in one
// repository's manifests. Fetch and parse failures degrade to an empty
// contribution.
func (m *Miner) minePackages(ctx context.Context, fullName string) []string {
	var names []string
	seen := make(map[string]bool)
	add := func(found []string) {
		for _, name := range found {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	for _, path := range requirementsPaths {
		content, err := m.fetcher.FetchFile(ctx, fullName, path)
		if err != nil {
			continue
		}
		add(manifest.ParseRequirements(content))
		break
	}

	if content, err := m.fetcher.FetchFile(ctx, fullName, pyprojectPath); err == nil {
		add(manifest.ParsePyproject(content))
	}

	return names
}
