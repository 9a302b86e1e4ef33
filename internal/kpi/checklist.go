package kpi

// ItemStatus is the audit mark applied to a single checklist item.
type ItemStatus string

const (
	// StatusNone means the item passed and keeps its full points.
	StatusNone ItemStatus = "none"
	// StatusCross means the item failed; its points are lost.
	StatusCross ItemStatus = "cross"
	// StatusExclude means the item did not apply; its points leave the
	// denominator entirely.
	StatusExclude ItemStatus = "exclude"
)

// ChecklistItem is one audit question with its assigned point value and the
// status recorded during the evaluation.
type ChecklistItem struct {
	PointValue float64
	Status     ItemStatus
}

// ItemScore is the per-item earned score persisted alongside the submission.
// It is the single source of truth: the aggregate EarnedPoints equals the
// sum of item scores.
func ItemScore(item ChecklistItem) float64 {
	if item.Status == StatusCross || item.Status == StatusExclude {
		return 0
	}
	return item.PointValue
}

// ChecklistResult holds the adjusted totals derived from a scored item list.
type ChecklistResult struct {
	InitialTotal   float64
	ExcludedPoints float64
	AdjustedTotal  float64
	CrossedPoints  float64
	EarnedPoints   float64
	Percentage     float64
	Score          float64
}

// AdjustChecklist computes totals, earned points, and the derived 0-4 score
// for a scored checklist. Excluded items leave both numerator and
// denominator; crossed items stay in the denominator but earn nothing.
// When every item is excluded the percentage is 0 by policy. Negative point
// values are rejected.
func AdjustChecklist(items []ChecklistItem) (ChecklistResult, error) {
	var r ChecklistResult
	for _, item := range items {
		if item.PointValue < 0 {
			return ChecklistResult{}, errNegative("pointValue", item.PointValue)
		}
		r.InitialTotal += item.PointValue
		switch item.Status {
		case StatusExclude:
			r.ExcludedPoints += item.PointValue
		case StatusCross:
			r.CrossedPoints += item.PointValue
		}
	}

	r.AdjustedTotal = r.InitialTotal - r.ExcludedPoints
	r.EarnedPoints = r.AdjustedTotal - r.CrossedPoints

	denominator := r.AdjustedTotal
	if denominator == 0 {
		denominator = 1
	}
	r.Percentage = r.EarnedPoints / denominator * 100
	r.Score = r.Percentage / 100 * MaxScore

	return r, nil
}
