package report

import (
	"sort"
	"strings"
)

// CriterionAll is the sentinel that disables the status or priority
// criterion. An empty criterion value means the same thing, which keeps
// unset CLI flags and MCP arguments well-behaved.
const CriterionAll = "all"

// Criteria narrows a report collection. The three criteria are conjunctive.
type Criteria struct {
	Status   string `json:"status,omitempty"`
	Priority string `json:"priority,omitempty"`
	Search   string `json:"search,omitempty"`
}

// Filter returns the reports matching the criteria, ordered newest first.
// Reports with identical timestamps keep their original relative order, so
// re-filtering never reshuffles them. The input slice is not mutated.
func Filter(reports []Report, c Criteria) []Report {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]Report, 0, len(reports))
	for _, r := range reports {
		if !criterionMatches(c.Status, string(r.Status)) {
			continue
		}
		if !criterionMatches(c.Priority, string(r.Priority)) {
			continue
		}
		if search != "" && !textMatches(r, search) {
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// criterionMatches applies one enum criterion; "all" and "" match anything.
func criterionMatches(criterion, value string) bool {
	return criterion == "" || criterion == CriterionAll || criterion == value
}

// textMatches performs case-insensitive substring search over title and
// description. A report without a description matches on title only.
func textMatches(r Report, search string) bool {
	if strings.Contains(strings.ToLower(r.Title), search) {
		return true
	}
	return r.Description != "" && strings.Contains(strings.ToLower(r.Description), search)
}
