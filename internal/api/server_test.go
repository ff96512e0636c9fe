package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/pipwise/pipwise/pkg/recommend"
)

type staticCompleter struct {
	response string
}

func (c staticCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	return c.response, nil
}

func newTestServer(response string) *Server {
	agg := recommend.NewAggregator(nil, nil, staticCompleter{response}, nil, nil)
	return NewServer(agg, nil)
}

func TestHealthz(t *testing.T) {
	srv := newTestServer("")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("missing X-Request-Id header")
	}
}

func TestRecommendEndpoint(t *testing.T) {
	srv := newTestServer(`APPROVE: numpy
ADDITIONAL:
- pytest: tests`)

	body := `{"packages":["numpy"],"description":"data analysis"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/recommend", strings.NewReader(body))
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body)
	}

	var rec recommend.Recommendation
	if err := json.NewDecoder(rr.Body).Decode(&rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(rec.Approved, []string{"numpy"}) {
		t.Errorf("Approved = %v", rec.Approved)
	}
	if len(rec.Additional) != 1 || rec.Additional[0].Name != "pytest" {
		t.Errorf("Additional = %+v", rec.Additional)
	}
}

func TestRecommendEndpointRejectsEmptyRequest(t *testing.T) {
	srv := newTestServer("")
	req := httptest.NewRequest(http.MethodPost, "/v1/recommend", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestRecommendEndpointRejectsBadJSON(t *testing.T) {
	srv := newTestServer("")
	req := httptest.NewRequest(http.MethodPost, "/v1/recommend", strings.NewReader(`{`))
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestResolveEndpoint(t *testing.T) {
	srv := newTestServer("")

	body := `{
		"recommendation": {
			"requested": ["numpy", "pandas"],
			"approved": ["numpy"],
			"alternatives": [{"original": "pandas", "suggested": "polars", "reason": "faster"}]
		},
		"decisions": {"polars": true}
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/resolve", strings.NewReader(body))
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body)
	}

	var resp resolveResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := []string{"numpy", "polars"}; !reflect.DeepEqual(resp.Packages, want) {
		t.Errorf("Packages = %v, want %v", resp.Packages, want)
	}
}

func TestResolveEndpointRequiresRecommendation(t *testing.T) {
	srv := newTestServer("")
	req := httptest.NewRequest(http.MethodPost, "/v1/resolve", strings.NewReader(`{"decisions":{}}`))
	rr := httptest.NewRecorder()

	srv.Router().ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}
