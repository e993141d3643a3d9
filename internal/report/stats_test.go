package report

import "testing"

func TestAggregateEmpty(t *testing.T) {
	s := Aggregate(nil)

	if s.Total != 0 {
		t.Errorf("expected zero total, got %d", s.Total)
	}
	if got := s.StatusShare(StatusPending); got != 0 {
		t.Errorf("empty collection share = %f, want 0", got)
	}
	if got := s.PriorityShare(PriorityHigh); got != 0 {
		t.Errorf("empty collection share = %f, want 0", got)
	}
}

func TestAggregateCounts(t *testing.T) {
	reports := []Report{
		{ID: "r1", Status: StatusPending, Priority: PriorityHigh},
		{ID: "r2", Status: StatusPending, Priority: PriorityLow},
	}

	s := Aggregate(reports)
	if s.Total != 2 {
		t.Errorf("total = %d, want 2", s.Total)
	}
	if s.Pending != 2 || s.Investigating != 0 || s.Resolved != 0 {
		t.Errorf("status buckets = %d/%d/%d, want 2/0/0", s.Pending, s.Investigating, s.Resolved)
	}
	if s.High != 1 || s.Medium != 0 || s.Low != 1 {
		t.Errorf("priority buckets = %d/%d/%d, want 1/0/1", s.High, s.Medium, s.Low)
	}
}

func TestAggregateBucketsAreExhaustive(t *testing.T) {
	reports := []Report{
		{Status: StatusPending, Priority: PriorityHigh},
		{Status: StatusInvestigating, Priority: PriorityMedium},
		{Status: StatusResolved, Priority: PriorityLow},
		{Status: StatusResolved, Priority: PriorityHigh},
		{Status: StatusPending, Priority: PriorityMedium},
	}

	s := Aggregate(reports)
	if sum := s.Pending + s.Investigating + s.Resolved; sum != s.Total {
		t.Errorf("status buckets sum to %d, total is %d", sum, s.Total)
	}
	if sum := s.High + s.Medium + s.Low; sum != s.Total {
		t.Errorf("priority buckets sum to %d, total is %d", sum, s.Total)
	}
}

func TestAggregateUnknownValuesCountAsDefaults(t *testing.T) {
	// Records that somehow bypassed the store's repair still land in a bucket
	reports := []Report{
		{Status: Status("weird"), Priority: Priority("odd")},
	}

	s := Aggregate(reports)
	if s.Pending != 1 {
		t.Errorf("unknown status not counted as pending: %+v", s)
	}
	if s.Medium != 1 {
		t.Errorf("unknown priority not counted as medium: %+v", s)
	}
}

func TestShares(t *testing.T) {
	reports := []Report{
		{Status: StatusPending, Priority: PriorityHigh},
		{Status: StatusPending, Priority: PriorityHigh},
		{Status: StatusResolved, Priority: PriorityLow},
		{Status: StatusInvestigating, Priority: PriorityMedium},
	}

	s := Aggregate(reports)
	if got := s.StatusShare(StatusPending); got != 50 {
		t.Errorf("pending share = %f, want 50", got)
	}
	if got := s.PriorityShare(PriorityHigh); got != 50 {
		t.Errorf("high share = %f, want 50", got)
	}
	if got := s.StatusShare(StatusResolved); got != 25 {
		t.Errorf("resolved share = %f, want 25", got)
	}
	if got := s.StatusShare(Status("weird")); got != 0 {
		t.Errorf("unknown bucket share = %f, want 0", got)
	}
}
