package domain

// QuoteInput carries the three numbers the quote engine works from. The rate
// is a monthly percentage (1.5 means 1.5% per month).
type QuoteInput struct {
	Principal          float64 `json:"principal"`
	TermMonths         int     `json:"termMonths"`
	MonthlyRatePercent float64 `json:"monthlyRatePercent"`
}

// Quote is ephemeral: recomputed from its inputs on every request, never
// persisted. Installment, TotalInterest and TotalPayment are rounded to the
// nearest whole currency unit, with TotalPayment = Installment * TermMonths
// holding exactly after rounding.
type Quote struct {
	Principal          float64 `json:"principal"`
	TermMonths         int     `json:"termMonths"`
	MonthlyRatePercent float64 `json:"monthlyRatePercent"`
	Installment        float64 `json:"installment"`
	TotalInterest      float64 `json:"totalInterest"`
	TotalPayment       float64 `json:"totalPayment"`
}

// TermRecommendation is the advisor's verdict for one candidate tenure.
type TermRecommendation struct {
	TermMonths         int     `json:"termMonths"`
	MonthlyRatePercent float64 `json:"monthlyRatePercent"`
	Installment        float64 `json:"installment"`
	TotalInterest      float64 `json:"totalInterest"`
	Affordable         bool    `json:"affordable"`
}

type TermRecommendationResult struct {
	RecommendedTerm int                  `json:"recommendedTerm"`
	Options         []TermRecommendation `json:"options"`
}
