package terminology

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSearch_ExactEnglishMatchRanksFirst(t *testing.T) {
	results := Search("fever", ReferenceCatalog(), FilterAll, 0)
	if len(results) == 0 {
		t.Fatal("expected results for 'fever'")
	}
	if results[0].Code != "A01" {
		t.Errorf("expected A01 first, got %s", results[0].Code)
	}

	// english name 0.4 + exact fuzzy 0.2 + usage 2500/5000*0.1
	want := 0.4 + 0.2 + 0.05
	if !almostEqual(results[0].Score, want) {
		t.Errorf("expected score %.3f, got %.3f", want, results[0].Score)
	}
}

func TestSearch_SynonymAndLocalNameAccumulate(t *testing.T) {
	results := Search("jwara", ReferenceCatalog(), FilterAll, 0)
	if len(results) == 0 {
		t.Fatal("expected results for 'jwara'")
	}
	if results[0].Code != "A01" {
		t.Fatalf("expected A01 first, got %s", results[0].Code)
	}
	// local name and the Sanskrit synonym both contain the query, so both
	// signals contribute on top of fuzzy and usage.
	if results[0].Score < 0.4+0.3 {
		t.Errorf("expected local+synonym contributions, got score %.3f", results[0].Score)
	}
}

func TestSearch_EachSynonymTermContributes(t *testing.T) {
	catalog := []Record{{
		Code:           "X01",
		DisplayEnglish: "Unrelated",
		System:         SystemAyurveda,
		Synonyms: []SynonymGroup{
			{Language: "English", Terms: []string{"cough", "dry cough", "wet cough"}},
		},
	}}
	results := Search("cough", catalog, FilterAll, 0)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	// three matching terms, 0.3 each; no cap applies
	if results[0].Score < 0.9 {
		t.Errorf("expected at least 0.9 from synonyms, got %.3f", results[0].Score)
	}
}

func TestSearch_CodeMatch(t *testing.T) {
	results := Search("mg50", ReferenceCatalog(), FilterAll, 0)
	found := false
	for _, r := range results {
		if r.Code == "A01" {
			found = true
		}
	}
	if !found {
		t.Error("expected mapped-code query to surface A01")
	}
}

func TestSearch_FilterExcludesOtherSystems(t *testing.T) {
	results := Search("disorder", ReferenceCatalog(), "ayurveda", 0)
	for _, r := range results {
		if r.System != SystemAyurveda {
			t.Errorf("filter leaked record %s with system %s", r.Code, r.System)
		}
	}

	results = Search("disorder", ReferenceCatalog(), "unani", 0)
	if len(results) == 0 {
		t.Fatal("expected unani results for 'disorder'")
	}
	for _, r := range results {
		if r.System != SystemUnani {
			t.Errorf("filter leaked record %s with system %s", r.Code, r.System)
		}
	}
}

func TestSearch_ThresholdExcludesWeakMatches(t *testing.T) {
	catalog := []Record{{
		Code:           "X01",
		DisplayEnglish: "qqqq",
		System:         SystemAyurveda,
		UsageCount:     100,
	}}
	// no signal triggers; charset overlap is zero and usage alone is 0.002
	results := Search("zz", catalog, FilterAll, 0)
	if len(results) != 0 {
		t.Errorf("expected weak match excluded, got %d results", len(results))
	}
}

func TestSearch_UsageBoostIsUncapped(t *testing.T) {
	catalog := []Record{
		{Code: "LOW", DisplayEnglish: "fever", System: SystemAyurveda, UsageCount: 0},
		{Code: "HIGH", DisplayEnglish: "fever", System: SystemAyurveda, UsageCount: 20000},
	}
	results := Search("fever", catalog, FilterAll, 0)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Code != "HIGH" {
		t.Errorf("expected heavily used record first, got %s", results[0].Code)
	}
	diff := results[0].Score - results[1].Score
	// 20000/5000 * 0.1 = 0.4, well past the nominal weight
	if !almostEqual(diff, 0.4) {
		t.Errorf("expected usage delta 0.4, got %.3f", diff)
	}
}

func TestSearch_StableOrderOnTies(t *testing.T) {
	catalog := []Record{
		{Code: "T1", DisplayEnglish: "fever", System: SystemAyurveda},
		{Code: "T2", DisplayEnglish: "fever", System: SystemAyurveda},
	}
	results := Search("fever", catalog, FilterAll, 0)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Code != "T1" || results[1].Code != "T2" {
		t.Errorf("tie broke catalog order: %s, %s", results[0].Code, results[1].Code)
	}
}

func TestSearch_LimitTruncates(t *testing.T) {
	results := Search("a0", ReferenceCatalog(), FilterAll, 2)
	if len(results) > 2 {
		t.Errorf("expected at most 2 results, got %d", len(results))
	}
}

func TestFuzzyOverlap(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		target string
		want   float64
	}{
		{"equal", "fever", "fever", 1},
		{"target contains query", "fev", "fever", 0.8},
		{"query contains target", "fevers", "fever", 0.6},
		{"partial charset", "ab", "bc", 0.5},
		{"disjoint charset", "abc", "xyz", 0},
		{"duplicates collapse", "aab", "ba", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := fuzzyOverlap(tc.query, tc.target)
			if !almostEqual(got, tc.want) {
				t.Errorf("fuzzyOverlap(%q, %q) = %.3f, want %.3f", tc.query, tc.target, got, tc.want)
			}
		})
	}
}
