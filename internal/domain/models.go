package domain

import "time"

// Store is the reference record every scored entity belongs to. Crew size
// and customer volume act as denominators in several KPI formulas.
type Store struct {
	ID                 int64     `json:"id" db:"id"`
	Name               string    `json:"name" db:"name"`
	City               string    `json:"city" db:"city"`
	TotalCrew          int       `json:"total_crew" db:"total_crew"`
	AvgCustomersPerDay float64   `json:"avg_customers_per_day" db:"avg_customers_per_day"`
	TargetSales        float64   `json:"target_sales" db:"target_sales"`
	COGSTarget         float64   `json:"cogs_target" db:"cogs_target"`
	OpexTargetPct      float64   `json:"opex_target_pct" db:"opex_target_pct"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// ChecklistTemplate is a named, versioned set of audit questions. The four
// standard templates are CHAMPS, Cleanliness, Service, and Product Quality.
type ChecklistTemplate struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ChecklistTemplateItem is one audit question within a template. Point
// values are assigned at setup time and must be >= 0.
type ChecklistTemplateItem struct {
	ID         int64   `json:"id" db:"id"`
	TemplateID int64   `json:"template_id" db:"template_id"`
	Text       string  `json:"text" db:"text"`
	PointValue float64 `json:"point_value" db:"point_value"`
	SortOrder  int     `json:"sort_order" db:"sort_order"`
}

// EvaluationSubmission is one completed checklist for a store and period.
// The computed totals and score are persisted verbatim at submission time.
type EvaluationSubmission struct {
	ID            string    `json:"id" db:"id"`
	StoreID       int64     `json:"store_id" db:"store_id"`
	StoreName     string    `json:"store_name" db:"store_name"`
	TemplateID    int64     `json:"template_id" db:"template_id"`
	TemplateName  string    `json:"template_name" db:"template_name"`
	EvaluatedBy   string    `json:"evaluated_by" db:"evaluated_by"`
	Period        Period    `json:"period" db:"-"`
	InitialTotal  float64   `json:"initial_total" db:"initial_total"`
	AdjustedTotal float64   `json:"adjusted_total" db:"adjusted_total"`
	EarnedPoints  float64   `json:"earned_points" db:"earned_points"`
	Percentage    float64   `json:"percentage" db:"percentage"`
	KPIScore      float64   `json:"kpi_score" db:"kpi_score"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// EvaluationItemResult is the persisted per-item outcome of a submission.
// Score is 0 for crossed and excluded items, the full point value otherwise.
type EvaluationItemResult struct {
	ID           int64   `json:"id" db:"id"`
	SubmissionID string  `json:"submission_id" db:"submission_id"`
	ItemID       int64   `json:"item_id" db:"item_id"`
	Text         string  `json:"text" db:"text"`
	PointValue   float64 `json:"point_value" db:"point_value"`
	Status       string  `json:"status" db:"status"`
	Score        float64 `json:"score" db:"score"`
}

// ComplaintRecord is one store month of per-channel complaint counts, plus
// the weighted total and banded score computed at submission time.
type ComplaintRecord struct {
	ID             string    `json:"id" db:"id"`
	StoreID        int64     `json:"store_id" db:"store_id"`
	StoreName      string    `json:"store_name" db:"store_name"`
	Period         Period    `json:"period" db:"-"`
	WhatsApp       int       `json:"whatsapp" db:"whatsapp"`
	SocialMedia    int       `json:"social_media" db:"social_media"`
	GMaps          int       `json:"gmaps" db:"gmaps"`
	OnlineOrder    int       `json:"online_order" db:"online_order"`
	LateHandling   int       `json:"late_handling" db:"late_handling"`
	WeightedTotal  float64   `json:"weighted_total" db:"weighted_total"`
	KPIScore       float64   `json:"kpi_score" db:"kpi_score"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// ComplaintWeight is one configurable per-channel severity weight.
type ComplaintWeight struct {
	Channel   string    `json:"channel" db:"channel"`
	Weight    float64   `json:"weight" db:"weight"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FinancialSnapshot is one store month of financial figures with the four
// derived efficiency scores persisted alongside the raw inputs.
type FinancialSnapshot struct {
	ID                string    `json:"id" db:"id"`
	StoreID           int64     `json:"store_id" db:"store_id"`
	StoreName         string    `json:"store_name" db:"store_name"`
	Period            Period    `json:"period" db:"-"`
	TotalSales        float64   `json:"total_sales" db:"total_sales"`
	TargetSales       float64   `json:"target_sales" db:"target_sales"`
	COGSAchieved      float64   `json:"cogs_achieved" db:"cogs_achieved"`
	COGSTarget        float64   `json:"cogs_target" db:"cogs_target"`
	TotalOpex         float64   `json:"total_opex" db:"total_opex"`
	OpexTargetPct     float64   `json:"opex_target_pct" db:"opex_target_pct"`
	TotalCrew         int       `json:"total_crew" db:"total_crew"`
	SalesScore        float64   `json:"sales_score" db:"sales_score"`
	COGSScore         float64   `json:"cogs_score" db:"cogs_score"`
	OpexScore         float64   `json:"opex_score" db:"opex_score"`
	ProductivityScore float64   `json:"productivity_score" db:"productivity_score"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// SanctionRecord is one employee sanction. IsActive is derived by the
// repository from sanction_date + duration_months against the current date;
// the scoring core only consumes the flag.
type SanctionRecord struct {
	ID             string    `json:"id" db:"id"`
	StoreID        int64     `json:"store_id" db:"store_id"`
	StoreName      string    `json:"store_name" db:"store_name"`
	EmployeeName   string    `json:"employee_name" db:"employee_name"`
	SanctionType   string    `json:"sanction_type" db:"sanction_type"`
	SanctionDate   time.Time `json:"sanction_date" db:"sanction_date"`
	DurationMonths int       `json:"duration_months" db:"duration_months"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	KPIScore       float64   `json:"kpi_score" db:"kpi_score"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// Period identifies the month a record belongs to.
type Period struct {
	Year  int `json:"year" db:"period_year"`
	Month int `json:"month" db:"period_month"`
}
