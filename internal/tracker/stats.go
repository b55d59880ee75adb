package tracker

// Stats is the five-count rollup served at /api/applications/stats.
//
// The counters overlap on purpose: every interview is also active, and
// WITHDRAWN or non-interview active records land only in Total/Active.
// Consumers depend on these exact fields; a partition lives in Breakdown.
type Stats struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	InInterview int `json:"inInterview"`
	Rejected    int `json:"rejected"`
	Accepted    int `json:"accepted"`
}

// Aggregate reduces apps to a Stats snapshot in a single pass. Records are
// counted as given; duplicates are not removed. The only failure is a record
// whose status is outside the enumeration.
func Aggregate(apps []Application) (Stats, error) {
	var st Stats
	for i := range apps {
		s := apps[i].Status
		if !s.Valid() {
			return Stats{}, &InvalidStatusError{Value: string(s)}
		}

		st.Total++
		if s.IsActive() {
			st.Active++
		}
		if s.IsInInterviewProcess() {
			st.InInterview++
		}
		switch s {
		case StatusRejected:
			st.Rejected++
		case StatusAccepted:
			st.Accepted++
		}
	}
	return st, nil
}

// StatusCount is one row of a Breakdown.
type StatusCount struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
}

// Breakdown partitions a collection by status. Its counts always sum to
// Total.
type Breakdown struct {
	Total    int           `json:"total"`
	ByStatus []StatusCount `json:"byStatus"`
}

// CountByStatus returns one row per status in pipeline order, including
// statuses with a zero count.
func CountByStatus(apps []Application) (Breakdown, error) {
	counts := make(map[Status]int, len(statusOrder))
	for i := range apps {
		s := apps[i].Status
		if !s.Valid() {
			return Breakdown{}, &InvalidStatusError{Value: string(s)}
		}
		counts[s]++
	}

	b := Breakdown{Total: len(apps), ByStatus: make([]StatusCount, 0, len(statusOrder))}
	for _, s := range statusOrder {
		b.ByStatus = append(b.ByStatus, StatusCount{Status: s, Label: s.Label(), Count: counts[s]})
	}
	return b, nil
}
