package kpi

// Band maps a ratio percentage at or below UpperBound to a discrete score.
type Band struct {
	UpperBound float64
	Score      float64
}

// ComplaintBands is the fixed complaint-rate band table. Bounds are
// inclusive and evaluated in ascending order, first match wins.
var ComplaintBands = []Band{
	{UpperBound: 0.1, Score: 4},
	{UpperBound: 0.3, Score: 3},
	{UpperBound: 0.5, Score: 2},
	{UpperBound: 0.7, Score: 1},
}

// BandScore maps a percentage onto the band table. Percentages beyond the
// last band score 0.
func BandScore(bands []Band, percentage float64) float64 {
	for _, b := range bands {
		if percentage <= b.UpperBound {
			return b.Score
		}
	}
	return 0
}

// ComplaintScore turns a weighted complaint total into a banded 0-4 score
// against the store's monthly customer volume (avg daily customers x 30).
// Zero volume means the complaint rate is undefined and is scored 0, the
// worst case, rather than NaN.
func ComplaintScore(weightedTotal float64, avgCustomersPerDay float64) float64 {
	monthlyVolume := avgCustomersPerDay * DaysPerMonth
	if monthlyVolume <= 0 {
		return 0
	}
	percentage := weightedTotal / monthlyVolume * 100
	return BandScore(ComplaintBands, percentage)
}
