package kpi

// Sanction type labels as written on the HR forms.
const (
	SanctionWrittenWarning = "Peringatan Tertulis"
	SanctionSP1            = "SP1"
	SanctionSP2            = "SP2"
)

// MaxViolationRatio is the crew fraction at which the sanction score
// bottoms out: a violation weight covering half the crew scores 0.
const MaxViolationRatio = 0.5

var sanctionWeights = map[string]float64{
	SanctionWrittenWarning: 1,
	SanctionSP1:            2,
	SanctionSP2:            3,
}

// SanctionWeight returns the severity weight for a sanction type label.
// Unknown labels weigh 0.
func SanctionWeight(sanctionType string) float64 {
	return sanctionWeights[sanctionType]
}

// SanctionScore rates a single sanction against the store's crew size.
// Zero or unknown crew yields violation ratio 0, so the score stays at a
// defined value instead of NaN.
func SanctionScore(sanctionType string, totalCrew int) float64 {
	var violationRatio float64
	if totalCrew > 0 {
		violationRatio = SanctionWeight(sanctionType) / float64(totalCrew)
	}
	score := (1 - violationRatio/MaxViolationRatio) * MaxScore
	if score < 0 {
		return 0
	}
	return score
}

// AggregateSanctionScore rates a store's full set of active sanctions.
// The total severity weight is compared directly against crew size. When
// crew size is unknown or zero the store scores a perfect 4 by policy.
func AggregateSanctionScore(activeTypes []string, totalCrew int) float64 {
	if totalCrew <= 0 {
		return MaxScore
	}
	var totalWeight float64
	for _, t := range activeTypes {
		totalWeight += SanctionWeight(t)
	}
	score := (1 - totalWeight/float64(totalCrew)) * MaxScore
	if score < 0 {
		return 0
	}
	return score
}
