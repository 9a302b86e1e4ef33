package kpi

// FinancialInput carries one store month of financial figures.
type FinancialInput struct {
	TotalSales    float64
	TargetSales   float64
	COGSAchieved  float64
	COGSTarget    float64
	TotalOpex     float64
	OpexTargetPct float64
	TotalCrew     int
}

// FinancialScores holds the four financial-efficiency KPI scores.
type FinancialScores struct {
	Sales        float64 `json:"sales"`
	COGS         float64 `json:"cogs"`
	Opex         float64 `json:"opex"`
	Productivity float64 `json:"productivity"`
}

// ScoreFinancial derives all financial KPI scores from one snapshot. Sales
// and productivity reward higher actuals; COGS and OPEX are inverted since
// lower spend is better.
func ScoreFinancial(in FinancialInput) FinancialScores {
	return FinancialScores{
		Sales:        RatioScore(in.TotalSales, in.TargetSales),
		COGS:         InvertedRatioScore(in.COGSTarget, in.COGSAchieved),
		Opex:         OpexScore(in.TotalOpex, in.TotalSales, in.OpexTargetPct),
		Productivity: ProductivityScore(in.TotalSales, in.TotalCrew),
	}
}
