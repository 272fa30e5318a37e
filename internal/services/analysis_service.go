package services

import (
	"context"
	"math"

	"github.com/pverdier/rentiva-api/internal/models"
)

// French loan cost conventions. The life insurance premium is a flat annual
// rate on the original principal and is never recalculated against the
// declining balance. Arrangement and registration fees are one-time closing
// costs proportional to the loan; the survey fee is flat.
const (
	lifeInsuranceAnnualRate = 0.004
	arrangementFeeRate      = 0.01
	registrationFeeRate     = 0.015
	surveyFee               = 750.0
)

// AnalysisService computes multi-year projections for a leveraged rental
// purchase. It holds no state: every call is an independent computation.
type AnalysisService struct{}

// NewAnalysisService creates a new analysis service
func NewAnalysisService() *AnalysisService {
	return &AnalysisService{}
}

// Analyze validates the scenario and builds the full projection. It returns
// *ValidationError for constraint violations and *ComputationError if the
// arithmetic ever produces a non-finite figure.
func (s *AnalysisService) Analyze(ctx context.Context, input models.PropertyInvestmentInput) (*models.AnalysisResult, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	loanAmount := input.PropertyPrice - input.DownPayment
	monthlyRate := input.InterestRate / 100.0 / 12.0
	numPayments := input.LoanTermYears * 12

	basePayment := monthlyPayment(loanAmount, monthlyRate, numPayments)
	monthlyLifeInsurance := loanAmount * lifeInsuranceAnnualRate / 12.0
	totalMonthlyMortgage := basePayment + monthlyLifeInsurance

	totalMortgagePayments := totalMonthlyMortgage * float64(numPayments)

	mortgage := models.MortgageDetails{
		MonthlyPayment: totalMonthlyMortgage,
		// Finance cost minus principal; bundles interest and insurance.
		TotalInterest: totalMortgagePayments - loanAmount,
		TotalPayments: totalMortgagePayments,
	}

	initialInvestment := input.DownPayment +
		loanAmount*arrangementFeeRate +
		loanAmount*registrationFeeRate +
		surveyFee

	projections := make([]models.YearlyProjection, 0, input.HoldingPeriodYears)
	cumulativeCashFlow := -initialInvestment
	remainingBalance := loanAmount
	var breakEvenYear *int

	annualInsurance := loanAmount * lifeInsuranceAnnualRate

	for year := 1; year <= input.HoldingPeriodYears; year++ {
		rentMultiplier := math.Pow(1+input.RentIncreaseAnnual/100.0, float64(year-1))
		baseMonthlyRent := input.MonthlyRent * rentMultiplier
		effectiveMonthlyRent := baseMonthlyRent * (1 - input.VacancyRate/100.0)
		rentalIncome := effectiveMonthlyRent * 12

		// The mortgage expense stays flat for every holding year, even past
		// the loan term; only the amortization below floors out. See the
		// schedule tests for the ambiguity note.
		annualMortgage := totalMonthlyMortgage * 12
		annualHoa := input.HoaMonthly * 12
		annualMaintenance := input.PropertyPrice * input.MaintenancePercent / 100.0
		// Management is charged on gross scheduled rent, before vacancy.
		annualManagement := baseMonthlyRent * 12 * input.ManagementFeePercent / 100.0

		// Insurance is already inside annualMortgage; adding it here would
		// double count.
		totalExpenses := annualMortgage + input.PropertyTaxAnnual + annualHoa +
			annualMaintenance + annualManagement

		paydown := yearlyPrincipalPaydown(remainingBalance, monthlyRate,
			totalMonthlyMortgage, year, input.LoanTermYears)
		remainingBalance -= paydown

		netCashFlow := rentalIncome - totalExpenses
		cumulativeCashFlow += netCashFlow

		if breakEvenYear == nil && cumulativeCashFlow >= 0 {
			y := year
			breakEvenYear = &y
		}

		projections = append(projections, models.YearlyProjection{
			Year:         year,
			RentalIncome: rentalIncome,
			Expenses: models.YearlyExpenses{
				Mortgage:    annualMortgage,
				PropertyTax: input.PropertyTaxAnnual,
				Hoa:         annualHoa,
				Maintenance: annualMaintenance,
				Management:  annualManagement,
				Insurance:   annualInsurance,
				Total:       totalExpenses,
			},
			NetCashFlow:        netCashFlow,
			CumulativeCashFlow: cumulativeCashFlow,
			PrincipalPaydown:   paydown,
			TotalEquity:        input.DownPayment + (loanAmount - remainingBalance),
			RemainingBalance:   remainingBalance,
		})
	}

	var totalRentalIncome, totalExpensesSum float64
	for _, p := range projections {
		totalRentalIncome += p.RentalIncome
		totalExpensesSum += p.Expenses.Total
	}

	totalCashFlow := totalRentalIncome - totalExpensesSum
	totalPrincipalPaydown := loanAmount - remainingBalance
	finalEquity := input.DownPayment + totalPrincipalPaydown
	netProfit := totalCashFlow + finalEquity - initialInvestment

	summary := models.InvestmentSummary{
		InitialInvestment:     initialInvestment,
		LoanAmount:            loanAmount,
		TotalRentalIncome:     totalRentalIncome,
		TotalExpenses:         totalExpensesSum,
		TotalCashFlow:         totalCashFlow,
		TotalPrincipalPaydown: totalPrincipalPaydown,
		FinalEquity:           finalEquity,
		NetProfit:             netProfit,
		ROI:                   netProfit / initialInvestment * 100.0,
		AvgCashOnCashReturn:   totalCashFlow / float64(input.HoldingPeriodYears) / initialInvestment * 100.0,
		BreakEvenYear:         breakEvenYear,
	}

	if err := checkFinite(mortgage, summary); err != nil {
		return nil, err
	}

	return &models.AnalysisResult{
		Input:             input,
		Mortgage:          mortgage,
		YearlyProjections: projections,
		Summary:           summary,
	}, nil
}

// monthlyPayment is the unique fixed payment that fully amortizes principal
// over numPayments periods at monthlyRate. A zero rate degenerates to an even
// split.
func monthlyPayment(principal, monthlyRate float64, numPayments int) float64 {
	if monthlyRate == 0 {
		return principal / float64(numPayments)
	}
	factor := math.Pow(1+monthlyRate, float64(numPayments))
	return principal * monthlyRate * factor / (factor - 1)
}

// yearlyPrincipalPaydown simulates 12 monthly amortization steps against the
// running balance. The payment includes the flat insurance premium, matching
// how the monthly payment was derived, so the schedule retires the balance
// slightly ahead of the interest-only formula.
func yearlyPrincipalPaydown(startingBalance, monthlyRate, payment float64, currentYear, loanTermYears int) float64 {
	if currentYear > loanTermYears {
		return 0
	}

	balance := startingBalance
	yearlyPrincipal := 0.0

	for month := 0; month < 12; month++ {
		if balance <= 0 {
			break
		}
		interestPayment := balance * monthlyRate
		principalPayment := payment - interestPayment
		yearlyPrincipal += principalPayment
		balance -= principalPayment
	}

	return yearlyPrincipal
}

// validateInput applies the documented constraints in order; the first
// violation wins.
func validateInput(in models.PropertyInvestmentInput) error {
	switch {
	case in.PropertyPrice <= 0:
		return validationErr("propertyPrice", "property price must be positive")
	case in.DownPayment < 0:
		return validationErr("downPayment", "down payment cannot be negative")
	case in.DownPayment >= in.PropertyPrice:
		return validationErr("downPayment", "down payment must be less than property price")
	case in.InterestRate <= 0:
		return validationErr("interestRate", "interest rate must be positive")
	case in.LoanTermYears <= 0:
		return validationErr("loanTermYears", "loan term must be positive")
	case in.MonthlyRent < 0:
		return validationErr("monthlyRent", "monthly rent cannot be negative")
	case in.HoldingPeriodYears <= 0:
		return validationErr("holdingPeriodYears", "holding period must be positive")
	case in.PropertyTaxAnnual < 0:
		return validationErr("propertyTaxAnnual", "property tax cannot be negative")
	case in.HoaMonthly < 0:
		return validationErr("hoaMonthly", "HOA fees cannot be negative")
	case in.MaintenancePercent < 0:
		return validationErr("maintenancePercent", "maintenance percentage cannot be negative")
	case in.ManagementFeePercent < 0:
		return validationErr("managementFeePercent", "management fee percentage cannot be negative")
	case in.VacancyRate < 0 || in.VacancyRate > 100:
		return validationErr("vacancyRate", "vacancy rate must be between 0 and 100")
	case in.RentIncreaseAnnual <= -100:
		return validationErr("rentIncreaseAnnual", "rent increase must be greater than -100%%")
	}
	return nil
}

func checkFinite(m models.MortgageDetails, s models.InvestmentSummary) error {
	checks := map[string]float64{
		"monthlyPayment":      m.MonthlyPayment,
		"totalInterest":       m.TotalInterest,
		"totalPayments":       m.TotalPayments,
		"netProfit":           s.NetProfit,
		"roi":                 s.ROI,
		"avgCashOnCashReturn": s.AvgCashOnCashReturn,
	}
	for name, v := range checks {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ComputationError{Detail: name}
		}
	}
	return nil
}
