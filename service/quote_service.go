package service

import (
	"fmt"
	"math"
	"time"

	"microloan/domain"
)

// RateForTerm maps a tenure to its monthly interest rate percentage. The
// tiers are a lending-desk rule, not a tunable.
func RateForTerm(termMonths int) float64 {
	switch {
	case termMonths <= 6:
		return 1.5
	case termMonths <= 12:
		return 2.0
	case termMonths <= 18:
		return 2.25
	default:
		return 2.5
	}
}

// QuoteService computes EMI quotes and repayment schedules. It is pure
// arithmetic: no state, safe to call per keystroke.
type QuoteService struct{}

func NewQuoteService() *QuoteService {
	return &QuoteService{}
}

// Quote computes the fixed monthly installment for an amortizing loan plus
// totals. The installment is rounded to the nearest whole currency unit
// first, so that TotalPayment == Installment * TermMonths holds exactly on
// the displayed values.
func (s *QuoteService) Quote(input domain.QuoteInput) (domain.Quote, error) {
	if input.Principal <= 0 {
		return domain.Quote{}, fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}
	if input.TermMonths < 1 {
		return domain.Quote{}, fmt.Errorf("%w: term must be at least one month", ErrInvalidInput)
	}
	if input.MonthlyRatePercent < 0 {
		return domain.Quote{}, fmt.Errorf("%w: rate must not be negative", ErrInvalidInput)
	}

	installment := math.Round(installmentFor(input.Principal, input.MonthlyRatePercent, input.TermMonths))
	total := installment * float64(input.TermMonths)

	return domain.Quote{
		Principal:          input.Principal,
		TermMonths:         input.TermMonths,
		MonthlyRatePercent: input.MonthlyRatePercent,
		Installment:        installment,
		TotalPayment:       total,
		TotalInterest:      total - input.Principal,
	}, nil
}

// QuoteForTerm derives the rate from the tenure tiers before quoting.
func (s *QuoteService) QuoteForTerm(principal float64, termMonths int) (domain.Quote, error) {
	return s.Quote(domain.QuoteInput{
		Principal:          principal,
		TermMonths:         termMonths,
		MonthlyRatePercent: RateForTerm(termMonths),
	})
}

// installmentFor evaluates the annuity formula. The zero-rate branch avoids
// a zero denominator: (1+r)^n - 1 == 0 when r == 0.
func installmentFor(principal, monthlyRatePercent float64, termMonths int) float64 {
	r := monthlyRatePercent / 100
	n := float64(termMonths)
	if r == 0 {
		return principal / n
	}
	growth := math.Pow(1+r, n)
	return principal * r * growth / (growth - 1)
}

// Schedule expands a quote into dated installments. The first is due one
// month after start, the rest follow monthly.
func (s *QuoteService) Schedule(loanID int64, input domain.QuoteInput, start time.Time) ([]domain.Installment, error) {
	quote, err := s.Quote(input)
	if err != nil {
		return nil, err
	}

	installments := make([]domain.Installment, 0, input.TermMonths)
	for i := 1; i <= input.TermMonths; i++ {
		installments = append(installments, domain.Installment{
			LoanID:  loanID,
			Number:  i,
			DueDate: start.AddDate(0, i, 0),
			Amount:  quote.Installment,
		})
	}
	return installments, nil
}

// RecommendTerm evaluates every offered tenure for the given principal and
// picks the cheapest one whose installment fits the applicant's monthly
// budget. Shorter tenures cost less interest, so candidates are scanned in
// ascending order; if nothing fits, the longest tenure (lowest installment)
// is recommended as the nearest miss.
func (s *QuoteService) RecommendTerm(principal, maxMonthlyPayment float64) (domain.TermRecommendationResult, error) {
	if maxMonthlyPayment <= 0 {
		return domain.TermRecommendationResult{}, fmt.Errorf("%w: monthly budget must be positive", ErrInvalidInput)
	}

	result := domain.TermRecommendationResult{}
	for _, term := range AllowedTenures {
		quote, err := s.QuoteForTerm(principal, term)
		if err != nil {
			return domain.TermRecommendationResult{}, err
		}
		option := domain.TermRecommendation{
			TermMonths:         term,
			MonthlyRatePercent: quote.MonthlyRatePercent,
			Installment:        quote.Installment,
			TotalInterest:      quote.TotalInterest,
			Affordable:         quote.Installment <= maxMonthlyPayment,
		}
		if option.Affordable && result.RecommendedTerm == 0 {
			result.RecommendedTerm = term
		}
		result.Options = append(result.Options, option)
	}
	if result.RecommendedTerm == 0 {
		result.RecommendedTerm = AllowedTenures[len(AllowedTenures)-1]
	}
	return result, nil
}
