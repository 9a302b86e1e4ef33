package kpi

// Scores across every KPI domain share a single 0-4 scale.
const MaxScore = 4.0

// Business policy constants. The month length and per-crew sales target are
// fixed company-wide numbers, not derived from calendar data, so they live
// here as named constants rather than configuration.
const (
	// DaysPerMonth converts average daily customer volume into the monthly
	// volume used as the complaint-rate denominator.
	DaysPerMonth = 30

	// CrewMonthlySalesTarget is the expected monthly sales per crew member,
	// in rupiah, used by the productivity score.
	CrewMonthlySalesTarget = 30_000_000
)

func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// RatioScore maps an achieved/target ratio onto the 0-4 scale, clamped.
// A zero or negative target yields 0: an absent target is scored worst-case
// rather than propagating NaN.
func RatioScore(actual, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return clampScore(actual / target * MaxScore)
}

// InvertedRatioScore scores metrics where a lower actual is better, such as
// COGS. The ratio is target over actual, so beating the target pushes the
// score above 4 before clamping. A zero or negative actual yields 0.
func InvertedRatioScore(target, actual float64) float64 {
	if actual <= 0 {
		return 0
	}
	return clampScore(target / actual * MaxScore)
}

// ProductivityScore rates monthly sales per crew member against the fixed
// CrewMonthlySalesTarget. Zero crew yields 0.
func ProductivityScore(totalSales float64, totalCrew int) float64 {
	if totalCrew <= 0 {
		return 0
	}
	perCrew := totalSales / float64(totalCrew)
	return RatioScore(perCrew, CrewMonthlySalesTarget)
}

// OpexScore compares the actual OPEX percentage of sales against the target
// percentage. Lower spend is better, so the ratio is inverted. Zero sales
// (actual percentage undefined) yields 0.
func OpexScore(totalOpex, totalSales, targetPct float64) float64 {
	if totalSales <= 0 {
		return 0
	}
	actualPct := totalOpex / totalSales * 100
	return InvertedRatioScore(targetPct, actualPct)
}
