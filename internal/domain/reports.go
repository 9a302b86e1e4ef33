package domain

// DomainScore is one KPI dimension on a store scorecard. Stored is the
// score persisted at submission time; Recomputed is re-derived from the raw
// inputs on read. The two must agree, and Consistent flags when they do.
type DomainScore struct {
	Domain     string  `json:"domain"`
	Stored     float64 `json:"stored"`
	Recomputed float64 `json:"recomputed"`
	Consistent bool    `json:"consistent"`
}

// StoreScorecard is the per-store monthly KPI report.
type StoreScorecard struct {
	StoreID           int64         `json:"store_id"`
	StoreName         string        `json:"store_name"`
	Period            Period        `json:"period"`
	Checklists        []DomainScore `json:"checklists"`
	Complaints        *DomainScore  `json:"complaints,omitempty"`
	Sanctions         *DomainScore  `json:"sanctions,omitempty"`
	Financial         []DomainScore `json:"financial"`
	OverallScore      float64       `json:"overall_score"`
	ScoredDimensions  int           `json:"scored_dimensions"`
	ActiveSanctions   int           `json:"active_sanctions"`
	WeightedComplaint float64       `json:"weighted_complaints"`
}

// KPIDashboard aggregates every store's scorecard for one period.
type KPIDashboard struct {
	Period     Period           `json:"period"`
	Scorecards []StoreScorecard `json:"scorecards"`
}

// ReportFilter constrains scorecard and dashboard queries.
type ReportFilter struct {
	StoreIDs []int64 `json:"store_ids"`
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}
