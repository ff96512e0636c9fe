package recommend

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

type fakeSearcher struct {
	repos  []RepoRef
	err    error
	called bool
	query  string
}

func (s *fakeSearcher) SearchRepositories(_ context.Context, query, _ string, _ int) ([]RepoRef, error) {
	s.called = true
	s.query = query
	return s.repos, s.err
}

type fakeCompleter struct {
	response string
	err      error
	prompt   string
}

func (c *fakeCompleter) Complete(_ context.Context, _, userPrompt string) (string, error) {
	c.prompt = userPrompt
	return c.response, c.err
}

type fakeDescriber struct {
	descriptions map[string]string
}

func (d *fakeDescriber) Describe(_ context.Context, name string) (string, error) {
	desc, ok := d.descriptions[name]
	if !ok {
		return "", errors.New("not found")
	}
	return desc, nil
}

func TestRecommendDecoratesSuggestions(t *testing.T) {
	completer := &fakeCompleter{response: `APPROVE: numpy
SUGGEST_ALTERNATIVES:
- requests: Better alternative is httpx because async support
ADDITIONAL:
- rich: pretty output`}
	describer := &fakeDescriber{descriptions: map[string]string{
		"httpx": "The next generation HTTP client.",
	}}

	agg := NewAggregator(nil, nil, completer, describer, nil)
	rec := agg.Recommend(context.Background(), []string{"numpy", "requests"}, "")

	if rec.Degraded {
		t.Fatal("unexpected degraded recommendation")
	}
	if rec.Alternatives[0].Description != "The next generation HTTP client." {
		t.Errorf("alternative description = %q", rec.Alternatives[0].Description)
	}
	// rich is unknown to the index: placeholder applies.
	if rec.Additional[0].Description != "No description available" {
		t.Errorf("additional description = %q", rec.Additional[0].Description)
	}
}

func TestRecommendModelFailureDegrades(t *testing.T) {
	completer := &fakeCompleter{err: errors.New("api unreachable")}

	agg := NewAggregator(nil, nil, completer, nil, nil)
	rec := agg.Recommend(context.Background(), []string{"numpy", "pandas"}, "data analysis")

	if !rec.Degraded {
		t.Fatal("expected degraded recommendation")
	}
	if !reflect.DeepEqual(rec.Approved, []string{"numpy", "pandas"}) {
		t.Errorf("Approved = %v, want requested packages", rec.Approved)
	}
	if len(rec.Alternatives) != 0 || len(rec.Additional) != 0 {
		t.Error("degraded recommendation should carry no suggestions")
	}

	// The degraded recommendation still resolves normally.
	if got := Resolve(rec, nil); !reflect.DeepEqual(got, []string{"numpy", "pandas"}) {
		t.Errorf("Resolve = %v", got)
	}
}

func TestRecommendBlankDescriptionSkipsMining(t *testing.T) {
	searcher := &fakeSearcher{repos: []RepoRef{{FullName: "a/b"}}}
	completer := &fakeCompleter{response: "APPROVE: flask"}
	miner := NewMiner(&fakeFetcher{files: nil})

	agg := NewAggregator(searcher, miner, completer, nil, nil)
	agg.Recommend(context.Background(), []string{"flask"}, "   ")

	if searcher.called {
		t.Error("search must not run for a blank description")
	}
}

func TestRecommendMinedPackagesReachPrompt(t *testing.T) {
	searcher := &fakeSearcher{repos: []RepoRef{{FullName: "a/proj"}}}
	completer := &fakeCompleter{response: "APPROVE: flask"}
	miner := NewMiner(&fakeFetcher{files: map[string]string{
		"a/proj/requirements.txt": "gunicorn\nsqlalchemy\n",
	}})

	agg := NewAggregator(searcher, miner, completer, nil, nil)
	agg.Recommend(context.Background(), []string{"flask"}, "a web service")

	if searcher.query != "a web service" {
		t.Errorf("search query = %q", searcher.query)
	}
	want := BuildUserPrompt("a web service", []string{"flask"},
		Ranking{{Name: "gunicorn", Count: 1}, {Name: "sqlalchemy", Count: 1}})
	if completer.prompt != want {
		t.Errorf("prompt = %q\nwant %q", completer.prompt, want)
	}
}

func TestRecommendSearchFailureSkipsMining(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("rate limited")}
	completer := &fakeCompleter{response: "APPROVE: flask"}
	miner := NewMiner(&fakeFetcher{files: nil})

	agg := NewAggregator(searcher, miner, completer, nil, nil)
	rec := agg.Recommend(context.Background(), []string{"flask"}, "a web service")

	if rec.Degraded {
		t.Error("search failure must not degrade the recommendation")
	}
	if !reflect.DeepEqual(rec.Approved, []string{"flask"}) {
		t.Errorf("Approved = %v", rec.Approved)
	}
}

func TestBuildUserPromptMarkers(t *testing.T) {
	got := BuildUserPrompt("", nil, nil)
	for _, marker := range []string{"Not provided", "None specified", "None found"} {
		if !strings.Contains(got, marker) {
			t.Errorf("prompt missing %q:\n%s", marker, got)
		}
	}
}

func TestBuildUserPromptCapsRanking(t *testing.T) {
	ranking := make(Ranking, 20)
	for i := range ranking {
		ranking[i] = PackageCount{Name: fmt.Sprintf("pkg%02d", i), Count: 20 - i}
	}
	got := BuildUserPrompt("desc", []string{"x"}, ranking)
	if strings.Contains(got, "pkg10") {
		t.Error("prompt should embed at most 10 mined names")
	}
	if !strings.Contains(got, "pkg09") {
		t.Error("prompt should include the tenth mined name")
	}
}
