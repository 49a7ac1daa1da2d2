package search

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

type fakeRecord struct {
	Name    string
	Company string
}

func (r fakeRecord) SearchFields() map[string]string {
	return map[string]string{
		"name":    r.Name,
		"company": r.Company,
	}
}

var records = []fakeRecord{
	{Name: "Ana Torres", Company: "BioLab Norte"},
	{Name: "Carlos Mena", Company: "Quimica Sur"},
	{Name: "Lucia Anaya", Company: "Distribuidora Centro"},
}

func TestFilterEmptyQueryReturnsFullSetInOrder(t *testing.T) {
	got := Filter(records, "", ScopeAll)
	if diff := cmp.Diff(records, got); diff != "" {
		t.Fatalf("empty query should return input unchanged (-want +got):\n%s", diff)
	}

	got = Filter(records, "   ", "name")
	if diff := cmp.Diff(records, got); diff != "" {
		t.Fatalf("whitespace query should return input unchanged (-want +got):\n%s", diff)
	}
}

func TestFilterScopeAllMatchesAnyField(t *testing.T) {
	got := Filter(records, "sur", ScopeAll)
	if len(got) != 1 || got[0].Name != "Carlos Mena" {
		t.Fatalf("expected Carlos Mena, got %v", got)
	}
}

func TestFilterIsCaseInsensitiveSubstring(t *testing.T) {
	got := Filter(records, "ANA", "name")
	if len(got) != 2 {
		t.Fatalf("expected 2 matches for ANA in name, got %d: %v", len(got), got)
	}
	if got[0].Name != "Ana Torres" || got[1].Name != "Lucia Anaya" {
		t.Fatalf("matches out of original order: %v", got)
	}
}

func TestFilterScopedFieldDoesNotMatchOtherFields(t *testing.T) {
	got := Filter(records, "biolab", "name")
	if len(got) != 0 {
		t.Fatalf("company value should not match name scope, got %v", got)
	}
}

func TestFilterUnknownScopeMatchesNothing(t *testing.T) {
	got := Filter(records, "ana", "phone")
	if len(got) != 0 {
		t.Fatalf("unknown scope should match nothing, got %v", got)
	}
}

func TestFilterEmptyScopeDefaultsToAll(t *testing.T) {
	got := Filter(records, "centro", "")
	if len(got) != 1 || got[0].Company != "Distribuidora Centro" {
		t.Fatalf("expected Distribuidora Centro, got %v", got)
	}
}
