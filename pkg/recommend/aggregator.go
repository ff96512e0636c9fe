package recommend

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
)

// noDescription is attached to suggestions the package index has no
// summary for.
const noDescription = "No description available"

// Completer is the language-model collaborator: one prompt in, raw text
// out, no session state between calls.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Describer is the package-index collaborator used to decorate
// suggestions with short descriptions.
type Describer interface {
	Describe(ctx context.Context, name string) (string, error)
}

// Aggregator runs one full recommendation cycle: mine popularity from
// similar repositories, prompt the model, parse its response, and
// decorate the suggestions with package-index descriptions.
type Aggregator struct {
	searcher  RepoSearcher
	miner     *Miner
	completer Completer
	describer Describer
	logger    *log.Logger

	// MaxRepos bounds the similar-repository search (default 5).
	MaxRepos int
	// TopN bounds the popularity ranking (default 15).
	TopN int
}

// NewAggregator wires the collaborators together. searcher and describer
// may be nil, disabling mining and description decoration respectively;
// completer must not be nil.
func NewAggregator(searcher RepoSearcher, miner *Miner, completer Completer, describer Describer, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{
		searcher:  searcher,
		miner:     miner,
		completer: completer,
		describer: describer,
		logger:    logger,
		MaxRepos:  5,
		TopN:      15,
	}
}

// Recommend produces a Recommendation for the given request.
//
// When description is blank, mining is skipped entirely; no popularity
// context is fabricated. When the model call fails, the returned
// Recommendation approves the requested packages unchanged with Degraded
// set; the error is logged, not returned, so the flow never hard-fails
// on an unreachable model.
func (a *Aggregator) Recommend(ctx context.Context, packages []string, description string) *Recommendation {
	ranking := a.mineRanking(ctx, description)

	raw, err := a.completer.Complete(ctx, SystemPrompt, BuildUserPrompt(description, packages, ranking))
	if err != nil {
		a.logger.Warn("model call failed, approving requested packages unchanged", "error", err)
		return &Recommendation{
			Requested: append([]string(nil), packages...),
			Approved:  append([]string(nil), packages...),
			Degraded:  true,
		}
	}

	rec := Parse(raw, packages)
	a.decorate(ctx, rec)
	return rec
}

// MineRanking exposes the popularity-mining step on its own, for callers
// that want the ranking without a model call.
func (a *Aggregator) MineRanking(ctx context.Context, description string) Ranking {
	return a.mineRanking(ctx, description)
}

func (a *Aggregator) mineRanking(ctx context.Context, description string) Ranking {
	if a.searcher == nil || a.miner == nil || strings.TrimSpace(description) == "" {
		return nil
	}

	repos, err := a.searcher.SearchRepositories(ctx, description, "python", a.MaxRepos)
	if err != nil {
		a.logger.Warn("repository search failed, skipping popularity mining", "error", err)
		return nil
	}
	if len(repos) == 0 {
		return nil
	}

	a.logger.Debug("mining dependency popularity", "repos", len(repos))
	return a.miner.Mine(ctx, repos, a.TopN)
}

// decorate attaches package-index descriptions to every suggested name.
// Lookup failures degrade to the placeholder; they never fail the cycle.
func (a *Aggregator) decorate(ctx context.Context, rec *Recommendation) {
	for i := range rec.Alternatives {
		rec.Alternatives[i].Description = a.describe(ctx, rec.Alternatives[i].Suggested)
	}
	for i := range rec.Additional {
		rec.Additional[i].Description = a.describe(ctx, rec.Additional[i].Name)
	}
}

func (a *Aggregator) describe(ctx context.Context, name string) string {
	if a.describer == nil {
		return noDescription
	}
	desc, err := a.describer.Describe(ctx, name)
	if err != nil || strings.TrimSpace(desc) == "" {
		return noDescription
	}
	return desc
}
