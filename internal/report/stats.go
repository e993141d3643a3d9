package report

// Stats holds count-based summaries over a report collection. Every report
// contributes exactly once to Total, one status bucket, and one priority
// bucket; the store's defaulting rule guarantees the buckets are exhaustive.
type Stats struct {
	Total int `json:"total" yaml:"total"`

	Pending       int `json:"pending" yaml:"pending"`
	Investigating int `json:"investigating" yaml:"investigating"`
	Resolved      int `json:"resolved" yaml:"resolved"`

	High   int `json:"high" yaml:"high"`
	Medium int `json:"medium" yaml:"medium"`
	Low    int `json:"low" yaml:"low"`
}

// Aggregate derives Stats from a report collection in a single pass.
func Aggregate(reports []Report) Stats {
	var s Stats
	for _, r := range reports {
		s.Total++
		switch r.Status {
		case StatusInvestigating:
			s.Investigating++
		case StatusResolved:
			s.Resolved++
		default:
			s.Pending++
		}
		switch r.Priority {
		case PriorityHigh:
			s.High++
		case PriorityLow:
			s.Low++
		default:
			s.Medium++
		}
	}
	return s
}

// StatusShare returns the given bucket's share of Total as a percentage.
// An empty collection yields 0, never NaN.
func (s Stats) StatusShare(status Status) float64 {
	switch status {
	case StatusPending:
		return s.share(s.Pending)
	case StatusInvestigating:
		return s.share(s.Investigating)
	case StatusResolved:
		return s.share(s.Resolved)
	default:
		return 0
	}
}

// PriorityShare returns the given bucket's share of Total as a percentage.
// An empty collection yields 0, never NaN.
func (s Stats) PriorityShare(priority Priority) float64 {
	switch priority {
	case PriorityHigh:
		return s.share(s.High)
	case PriorityMedium:
		return s.share(s.Medium)
	case PriorityLow:
		return s.share(s.Low)
	default:
		return 0
	}
}

func (s Stats) share(n int) float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(n) / float64(s.Total) * 100
}
