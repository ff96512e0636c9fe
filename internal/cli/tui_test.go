package cli

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pipwise/pipwise/pkg/recommend"
)

func testRecommendation() *recommend.Recommendation {
	return &recommend.Recommendation{
		Requested:    []string{"numpy", "requests"},
		Approved:     []string{"numpy"},
		Alternatives: []recommend.Alternative{{Original: "requests", Suggested: "httpx", Reason: "async"}},
		Additional:   []recommend.Additional{{Name: "pytest", Reason: "tests"}},
	}
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDecisionModelOrder(t *testing.T) {
	m := NewDecisionModel(testRecommendation())

	if len(m.Items) != 2 {
		t.Fatalf("items = %d", len(m.Items))
	}
	// Alternatives come before additional, matching resolve order.
	if m.Items[0].Name != "httpx" || m.Items[1].Name != "pytest" {
		t.Errorf("items = %+v", m.Items)
	}
	if m.Items[0].Detail != "replaces requests" {
		t.Errorf("detail = %q", m.Items[0].Detail)
	}
}

func TestDecisionModelDefaultsToReject(t *testing.T) {
	m := NewDecisionModel(testRecommendation())
	decisions := m.Decisions()

	if decisions["httpx"] || decisions["pytest"] {
		t.Errorf("decisions = %v, all should start rejected", decisions)
	}
}

func TestDecisionModelToggle(t *testing.T) {
	var m tea.Model = NewDecisionModel(testRecommendation())

	m, _ = m.(DecisionModel).Update(key(" "))
	decisions := m.(DecisionModel).Decisions()
	if !decisions["httpx"] {
		t.Error("space should accept the current item")
	}

	m, _ = m.(DecisionModel).Update(key(" "))
	if m.(DecisionModel).Decisions()["httpx"] {
		t.Error("space should toggle back to reject")
	}
}

func TestDecisionModelAcceptAllAndConfirm(t *testing.T) {
	var m tea.Model = NewDecisionModel(testRecommendation())

	m, _ = m.(DecisionModel).Update(key("a"))
	m, _ = m.(DecisionModel).Update(key("enter"))

	final := m.(DecisionModel)
	if !final.Confirmed {
		t.Error("enter should confirm")
	}
	decisions := final.Decisions()
	if !decisions["httpx"] || !decisions["pytest"] {
		t.Errorf("decisions = %v, a should accept everything", decisions)
	}
}

func TestDecisionModelAbort(t *testing.T) {
	var m tea.Model = NewDecisionModel(testRecommendation())

	m, _ = m.(DecisionModel).Update(key("q"))
	if !m.(DecisionModel).Aborted {
		t.Error("q should abort")
	}
}

func TestDecisionModelNavigationBounds(t *testing.T) {
	var m tea.Model = NewDecisionModel(testRecommendation())

	m, _ = m.(DecisionModel).Update(key("k"))
	if m.(DecisionModel).Cursor != 0 {
		t.Error("cursor should not move above the first item")
	}
	m, _ = m.(DecisionModel).Update(key("j"))
	m, _ = m.(DecisionModel).Update(key("j"))
	if got := m.(DecisionModel).Cursor; got != 1 {
		t.Errorf("cursor = %d, should stop at the last item", got)
	}
}
