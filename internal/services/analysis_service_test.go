package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pverdier/rentiva-api/internal/models"
)

// baseInput is the documented reference scenario: 300k purchase, 60k down,
// 3.5% over 20 years, 1500/month rent, 10 year hold, optional fields default.
func baseInput() models.PropertyInvestmentInput {
	input := models.NewPropertyInvestmentInput()
	input.PropertyPrice = 300000
	input.DownPayment = 60000
	input.InterestRate = 3.5
	input.LoanTermYears = 20
	input.MonthlyRent = 1500
	input.HoldingPeriodYears = 10
	return input
}

func TestAnalyze_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.PropertyInvestmentInput)
		field  string
	}{
		{"zero property price", func(in *models.PropertyInvestmentInput) { in.PropertyPrice = 0 }, "propertyPrice"},
		{"negative down payment", func(in *models.PropertyInvestmentInput) { in.DownPayment = -1 }, "downPayment"},
		{"down payment equals price", func(in *models.PropertyInvestmentInput) { in.DownPayment = in.PropertyPrice }, "downPayment"},
		{"down payment above price", func(in *models.PropertyInvestmentInput) { in.DownPayment = in.PropertyPrice + 1 }, "downPayment"},
		{"zero interest rate", func(in *models.PropertyInvestmentInput) { in.InterestRate = 0 }, "interestRate"},
		{"zero loan term", func(in *models.PropertyInvestmentInput) { in.LoanTermYears = 0 }, "loanTermYears"},
		{"negative rent", func(in *models.PropertyInvestmentInput) { in.MonthlyRent = -100 }, "monthlyRent"},
		{"zero holding period", func(in *models.PropertyInvestmentInput) { in.HoldingPeriodYears = 0 }, "holdingPeriodYears"},
		{"negative property tax", func(in *models.PropertyInvestmentInput) { in.PropertyTaxAnnual = -1 }, "propertyTaxAnnual"},
		{"negative hoa", func(in *models.PropertyInvestmentInput) { in.HoaMonthly = -1 }, "hoaMonthly"},
		{"negative maintenance", func(in *models.PropertyInvestmentInput) { in.MaintenancePercent = -0.5 }, "maintenancePercent"},
		{"negative management fee", func(in *models.PropertyInvestmentInput) { in.ManagementFeePercent = -1 }, "managementFeePercent"},
		{"vacancy above 100", func(in *models.PropertyInvestmentInput) { in.VacancyRate = 150 }, "vacancyRate"},
		{"negative vacancy", func(in *models.PropertyInvestmentInput) { in.VacancyRate = -5 }, "vacancyRate"},
		{"rent decrease beyond -100", func(in *models.PropertyInvestmentInput) { in.RentIncreaseAnnual = -150 }, "rentIncreaseAnnual"},
	}

	svc := NewAnalysisService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := baseInput()
			tt.mutate(&input)

			_, err := svc.Analyze(context.Background(), input)
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestAnalyze_FirstViolationWins(t *testing.T) {
	input := baseInput()
	input.PropertyPrice = 0
	input.VacancyRate = 150

	_, err := NewAnalysisService().Analyze(context.Background(), input)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "propertyPrice", validationErr.Field)
}

func TestMonthlyPayment_ZeroRateIsEvenSplit(t *testing.T) {
	// A zero rate never reaches Analyze (validation requires a positive
	// rate), but the amortization helper must still degrade cleanly.
	assert.Equal(t, 1000.0, monthlyPayment(120000, 0, 120))
}

func TestMonthlyPayment_ReferenceLoan(t *testing.T) {
	// 240k at 3.5% over 20 years; reference value from the standard
	// amortization formula.
	payment := monthlyPayment(240000, 3.5/100/12, 240)
	assert.InDelta(t, 1391.6, payment, 1.0)
}

func TestAnalyze_MortgageDetails(t *testing.T) {
	result, err := NewAnalysisService().Analyze(context.Background(), baseInput())
	require.NoError(t, err)

	// Base payment plus the flat insurance premium 240000*0.004/12 = 80.
	assert.InDelta(t, 1471.6, result.Mortgage.MonthlyPayment, 1.0)
	assert.InDelta(t, result.Mortgage.MonthlyPayment*240, result.Mortgage.TotalPayments, 1e-6)
	// "Interest" here is total finance cost minus principal, so it
	// includes the insurance premium.
	assert.InDelta(t, result.Mortgage.TotalPayments-240000, result.Mortgage.TotalInterest, 1e-6)
}

func TestAnalyze_EndToEndReferenceScenario(t *testing.T) {
	result, err := NewAnalysisService().Analyze(context.Background(), baseInput())
	require.NoError(t, err)

	summary := result.Summary
	assert.Equal(t, 240000.0, summary.LoanAmount)
	// 60000 down + 2400 arrangement + 3600 registration + 750 survey.
	assert.Equal(t, 66750.0, summary.InitialInvestment)
	require.Len(t, result.YearlyProjections, 10)

	// Cumulative cash flow recurrence, seeded at -initialInvestment.
	first := result.YearlyProjections[0]
	assert.InDelta(t, -summary.InitialInvestment+first.NetCashFlow, first.CumulativeCashFlow, 1e-6)
	for i := 1; i < len(result.YearlyProjections); i++ {
		prev := result.YearlyProjections[i-1]
		cur := result.YearlyProjections[i]
		assert.InDelta(t, prev.CumulativeCashFlow+cur.NetCashFlow, cur.CumulativeCashFlow, 1e-6)
	}

	// Balance declines while the loan is active, equity mirrors it.
	prevBalance := summary.LoanAmount
	prevEquity := 0.0
	for _, p := range result.YearlyProjections {
		assert.Less(t, p.RemainingBalance, prevBalance)
		assert.Greater(t, p.TotalEquity, prevEquity)
		prevBalance = p.RemainingBalance
		prevEquity = p.TotalEquity
	}

	// Summary identities hold exactly.
	last := result.YearlyProjections[len(result.YearlyProjections)-1]
	assert.InDelta(t, summary.LoanAmount-last.RemainingBalance, summary.TotalPrincipalPaydown, 1e-6)
	assert.InDelta(t, baseInput().DownPayment+summary.TotalPrincipalPaydown, summary.FinalEquity, 1e-6)
	assert.InDelta(t, summary.TotalCashFlow+summary.FinalEquity-summary.InitialInvestment, summary.NetProfit, 1e-6)
	assert.InDelta(t, summary.NetProfit/summary.InitialInvestment*100, summary.ROI, 1e-6)
	assert.InDelta(t, summary.TotalCashFlow/10/summary.InitialInvestment*100, summary.AvgCashOnCashReturn, 1e-6)

	// Break-even, if reached, is the first non-negative cumulative year.
	if summary.BreakEvenYear != nil {
		year := *summary.BreakEvenYear
		require.GreaterOrEqual(t, year, 1)
		require.LessOrEqual(t, year, 10)
		assert.GreaterOrEqual(t, result.YearlyProjections[year-1].CumulativeCashFlow, 0.0)
		if year > 1 {
			assert.Less(t, result.YearlyProjections[year-2].CumulativeCashFlow, 0.0)
		}
	} else {
		for _, p := range result.YearlyProjections {
			assert.Less(t, p.CumulativeCashFlow, 0.0)
		}
	}
}

func TestAnalyze_VacancyReducesIncomeProportionally(t *testing.T) {
	svc := NewAnalysisService()

	occupied, err := svc.Analyze(context.Background(), baseInput())
	require.NoError(t, err)

	input := baseInput()
	input.VacancyRate = 10
	vacant, err := svc.Analyze(context.Background(), input)
	require.NoError(t, err)

	assert.InDelta(t, occupied.YearlyProjections[0].RentalIncome*0.9,
		vacant.YearlyProjections[0].RentalIncome, 1e-6)
}

func TestAnalyze_RentIncreaseCompoundsFromYearTwo(t *testing.T) {
	input := baseInput()
	input.RentIncreaseAnnual = 2

	result, err := NewAnalysisService().Analyze(context.Background(), input)
	require.NoError(t, err)

	// Year 1 uses the base rent unmultiplied.
	assert.InDelta(t, 1500.0*12, result.YearlyProjections[0].RentalIncome, 1e-6)
	for i := 1; i < len(result.YearlyProjections); i++ {
		assert.Greater(t, result.YearlyProjections[i].RentalIncome,
			result.YearlyProjections[i-1].RentalIncome)
		assert.InDelta(t, result.YearlyProjections[i-1].RentalIncome*1.02,
			result.YearlyProjections[i].RentalIncome, 1e-6)
	}
}

func TestAnalyze_ManagementFeeChargedOnGrossRent(t *testing.T) {
	input := baseInput()
	input.VacancyRate = 50
	input.ManagementFeePercent = 10

	result, err := NewAnalysisService().Analyze(context.Background(), input)
	require.NoError(t, err)

	// The fee applies to scheduled rent, not the vacancy-adjusted half.
	assert.InDelta(t, 1500.0*12*0.10, result.YearlyProjections[0].Expenses.Management, 1e-6)
}

func TestAnalyze_InsuranceReportedButNotDoubleCounted(t *testing.T) {
	input := baseInput()
	input.PropertyTaxAnnual = 1200
	input.HoaMonthly = 50
	input.ManagementFeePercent = 5

	result, err := NewAnalysisService().Analyze(context.Background(), input)
	require.NoError(t, err)

	for _, p := range result.YearlyProjections {
		e := p.Expenses
		assert.InDelta(t, 240000*0.004, e.Insurance, 1e-6)
		// Insurance already sits inside the mortgage figure; the total must
		// not add it again.
		assert.InDelta(t, e.Mortgage+e.PropertyTax+e.Hoa+e.Maintenance+e.Management, e.Total, 1e-6)
	}
}

func TestAnalyze_HoldingBeyondLoanTerm(t *testing.T) {
	input := baseInput()
	input.LoanTermYears = 5
	input.HoldingPeriodYears = 8

	result, err := NewAnalysisService().Analyze(context.Background(), input)
	require.NoError(t, err)
	require.Len(t, result.YearlyProjections, 8)

	annualMortgage := result.Mortgage.MonthlyPayment * 12
	for i, p := range result.YearlyProjections {
		// The flat mortgage expense keeps being charged after the loan term
		// while amortization stops. Whether payments should cease once the
		// loan retires is an open modeling question; the current behavior is
		// deliberate, so do not "fix" it here without changing the model.
		assert.InDelta(t, annualMortgage, p.Expenses.Mortgage, 1e-6)
		if i >= input.LoanTermYears {
			assert.Zero(t, p.PrincipalPaydown)
		}
	}

	// The simulation overshoots zero by at most one month's principal
	// payment in the final active year, then stays put.
	final := result.YearlyProjections[7]
	assert.LessOrEqual(t, final.RemainingBalance, 0.0)
	assert.InDelta(t, 0.0, final.RemainingBalance, result.Mortgage.MonthlyPayment)
	assert.InDelta(t, input.DownPayment+result.Summary.LoanAmount, final.TotalEquity, result.Mortgage.MonthlyPayment)
}

func TestAnalyze_BreakEvenYearReached(t *testing.T) {
	// Rent far above carrying costs: cash flow turns positive quickly.
	input := baseInput()
	input.MonthlyRent = 6000

	result, err := NewAnalysisService().Analyze(context.Background(), input)
	require.NoError(t, err)
	require.NotNil(t, result.Summary.BreakEvenYear)
	assert.GreaterOrEqual(t, result.YearlyProjections[*result.Summary.BreakEvenYear-1].CumulativeCashFlow, 0.0)
}

func TestAnalyze_BreakEvenYearNeverReached(t *testing.T) {
	input := baseInput()
	input.MonthlyRent = 0

	result, err := NewAnalysisService().Analyze(context.Background(), input)
	require.NoError(t, err)
	assert.Nil(t, result.Summary.BreakEvenYear)
}

func TestAnalyze_NonFiniteResultIsComputationError(t *testing.T) {
	// An extreme rate passes validation but overflows the amortization
	// factor; the engine must refuse to emit NaN or infinity.
	input := baseInput()
	input.InterestRate = 1e300

	_, err := NewAnalysisService().Analyze(context.Background(), input)
	require.Error(t, err)

	var computationErr *ComputationError
	require.True(t, errors.As(err, &computationErr))

	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestAnalyze_InputEchoKeepsDefaults(t *testing.T) {
	result, err := NewAnalysisService().Analyze(context.Background(), baseInput())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultMaintenancePercent, result.Input.MaintenancePercent)
}
