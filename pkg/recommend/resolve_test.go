package recommend

import (
	"reflect"
	"testing"
)

func TestResolveAcceptedAlternative(t *testing.T) {
	rec := &Recommendation{
		Requested:    []string{"numpy", "pandas"},
		Approved:     []string{"numpy"},
		Alternatives: []Alternative{{Original: "pandas", Suggested: "polars", Reason: "faster"}},
	}

	got := Resolve(rec, Decisions{"polars": true})
	if want := []string{"numpy", "polars"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveDefaultReject(t *testing.T) {
	rec := &Recommendation{
		Requested:    []string{"numpy", "pandas"},
		Approved:     []string{"numpy"},
		Alternatives: []Alternative{{Original: "pandas", Suggested: "polars", Reason: "faster"}},
	}

	got := Resolve(rec, Decisions{})
	if want := []string{"numpy", "pandas"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveAdditionalOnlyWhenAccepted(t *testing.T) {
	rec := &Recommendation{
		Requested: []string{"flask"},
		Approved:  []string{"flask"},
		Additional: []Additional{
			{Name: "pytest", Reason: "tests"},
			{Name: "rich", Reason: "output"},
		},
	}

	got := Resolve(rec, Decisions{"pytest": true, "rich": false})
	if want := []string{"flask", "pytest"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveNoDuplicates(t *testing.T) {
	rec := &Recommendation{
		Requested:    []string{"httpx", "requests"},
		Approved:     []string{"httpx"},
		Alternatives: []Alternative{{Original: "requests", Suggested: "httpx"}},
		Additional:   []Additional{{Name: "httpx", Reason: "already there"}},
	}

	got := Resolve(rec, Decisions{"httpx": true})
	if want := []string{"httpx"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveRejectedAlternativeKeepsOriginalOnce(t *testing.T) {
	rec := &Recommendation{
		Requested:    []string{"requests"},
		Approved:     []string{"requests"},
		Alternatives: []Alternative{{Original: "requests", Suggested: "httpx"}},
	}

	got := Resolve(rec, nil)
	if want := []string{"requests"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want %v", got, want)
	}
}

func TestResolveEmptyFallsBackToRequested(t *testing.T) {
	rec := &Recommendation{
		Requested:  []string{"numpy"},
		Additional: []Additional{{Name: "pytest"}},
	}

	got := Resolve(rec, Decisions{"pytest": false})
	if want := []string{"numpy"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Resolve = %v, want fallback to request", got)
	}
}

func TestResolveEmptyEverything(t *testing.T) {
	got := Resolve(&Recommendation{}, nil)
	if len(got) != 0 {
		t.Errorf("Resolve = %v, want empty", got)
	}
}

func TestResolveIdempotent(t *testing.T) {
	rec := &Recommendation{
		Requested:    []string{"a", "b", "c"},
		Approved:     []string{"a"},
		Alternatives: []Alternative{{Original: "b", Suggested: "b2"}, {Original: "c", Suggested: "c2"}},
		Additional:   []Additional{{Name: "d"}, {Name: "e"}},
	}
	decisions := Decisions{"b2": true, "d": true}

	first := Resolve(rec, decisions)
	second := Resolve(rec, decisions)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Resolve not idempotent: %v vs %v", first, second)
	}
	if want := []string{"a", "b2", "c", "d"}; !reflect.DeepEqual(first, want) {
		t.Errorf("Resolve = %v, want %v", first, want)
	}
}
