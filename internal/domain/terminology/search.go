package terminology

import (
	"sort"
	"strings"
)

// Scoring weights for the ranked search. Each signal contributes additively
// and only when triggered; there is no early exit and no cap beyond the
// natural sum.
const (
	weightEnglishName = 0.4
	weightLocalName   = 0.4
	weightSynonym     = 0.3
	weightCode        = 0.2
	weightFuzzy       = 0.2
	weightUsage       = 0.1

	// usageBaseline divides the raw usage count before weighting. Records
	// used more than usageBaseline times score above the nominal weight;
	// this carries over from the original heuristic and is intentional.
	usageBaseline = 5000

	// scoreThreshold excludes records whose total score is too weak to be
	// a meaningful match.
	scoreThreshold = 0.1
)

// Search ranks the catalog against a query. It is a pure function of
// (query, catalog, filter): records not matching a non-"all" filter are
// skipped entirely, every other record accumulates a score from independent
// weighted signals, and records scoring above the threshold are returned in
// descending score order with catalog-order ties. Results are truncated to
// limit when limit > 0.
//
// Callers are responsible for rejecting empty or single-character queries
// before calling Search.
func Search(query string, catalog []Record, filter string, limit int) []ScoredRecord {
	q := strings.ToLower(strings.TrimSpace(query))

	var results []ScoredRecord
	for _, rec := range catalog {
		if filter != FilterAll && !strings.EqualFold(string(rec.System), filter) {
			continue
		}

		var score float64
		if strings.Contains(strings.ToLower(rec.DisplayEnglish), q) {
			score += weightEnglishName
		}
		if strings.Contains(strings.ToLower(rec.DisplayLocal), q) {
			score += weightLocalName
		}
		for _, group := range rec.Synonyms {
			for _, term := range group.Terms {
				if strings.Contains(strings.ToLower(term), q) {
					score += weightSynonym
				}
			}
		}
		if strings.Contains(strings.ToLower(rec.Code), q) ||
			strings.Contains(strings.ToLower(rec.MappedCode), q) {
			score += weightCode
		}
		score += fuzzyOverlap(q, strings.ToLower(rec.DisplayEnglish)) * weightFuzzy
		score += float64(rec.UsageCount) / usageBaseline * weightUsage

		if score > scoreThreshold {
			results = append(results, ScoredRecord{Record: rec, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// fuzzyOverlap computes the secondary fuzzy score between a normalized query
// and target: 1 for equality, 0.8 when the target contains the query, 0.6
// for the reverse containment, and otherwise the ratio of the character-set
// intersection to the larger character set. Duplicate characters collapse.
func fuzzyOverlap(query, target string) float64 {
	if query == target {
		return 1
	}
	if strings.Contains(target, query) {
		return 0.8
	}
	if strings.Contains(query, target) {
		return 0.6
	}

	qset := make(map[rune]struct{})
	for _, r := range query {
		qset[r] = struct{}{}
	}
	tset := make(map[rune]struct{})
	for _, r := range target {
		tset[r] = struct{}{}
	}

	var shared int
	for r := range qset {
		if _, ok := tset[r]; ok {
			shared++
		}
	}

	larger := len(qset)
	if len(tset) > larger {
		larger = len(tset)
	}
	if larger == 0 {
		return 0
	}
	return float64(shared) / float64(larger)
}
