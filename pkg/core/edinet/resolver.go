package edinet

import (
	"strings"
)

// Context recency ranks. Lower ranks first; unrecognized contexts sort last.
var contextRecency = []struct {
	marker string
	rank   int
}{
	{"CurrentYear", 0},
	{"Prior1Year", 1},
	{"Prior2Year", 2},
	{"Prior3Year", 3},
	{"Prior4Year", 4},
}

const unknownContextRank = 999

func contextPriority(contextRef string) int {
	for _, c := range contextRecency {
		if strings.Contains(contextRef, c.marker) {
			return c.rank
		}
	}
	return unknownContextRank
}

// SelectBest picks the single most trustworthy candidate among several
// tagged values for the same field.
//
// Candidates are partitioned by context reference: consolidated/overall
// (no segment or entity qualifier) beats segment-qualified beats
// non-consolidated. Within the winning bucket the most recent reporting
// period wins; ties keep extraction order, so the result is deterministic.
func SelectBest(candidates []ExtractedValue) (ExtractedValue, bool) {
	if len(candidates) == 0 {
		return ExtractedValue{}, false
	}
	if len(candidates) == 1 {
		return candidates[0], true
	}

	var overall, segment, nonConsolidated []ExtractedValue
	for _, c := range candidates {
		ctx := c.ContextRef
		if strings.Contains(ctx, "ReportableSegment") || strings.Contains(ctx, "Member") {
			if strings.Contains(ctx, "NonConsolidated") {
				nonConsolidated = append(nonConsolidated, c)
			} else {
				segment = append(segment, c)
			}
		} else {
			overall = append(overall, c)
		}
	}

	bucket := overall
	if len(bucket) == 0 {
		bucket = segment
	}
	if len(bucket) == 0 {
		bucket = nonConsolidated
	}
	if len(bucket) == 0 {
		bucket = candidates
	}

	best := bucket[0]
	bestRank := contextPriority(best.ContextRef)
	for _, c := range bucket[1:] {
		if r := contextPriority(c.ContextRef); r < bestRank {
			best, bestRank = c, r
		}
	}
	return best, true
}
