package models

// DefaultMaintenancePercent is the assumed annual maintenance budget as a
// percentage of the purchase price when the caller does not provide one.
const DefaultMaintenancePercent = 1.0

// PropertyInvestmentInput describes one purchase scenario. JSON keys match the
// public input contract; optional fields keep their defaults when absent.
type PropertyInvestmentInput struct {
	PropertyPrice        float64 `json:"propertyPrice"`
	DownPayment          float64 `json:"downPayment"`
	InterestRate         float64 `json:"interestRate"`
	LoanTermYears        int     `json:"loanTermYears"`
	MonthlyRent          float64 `json:"monthlyRent"`
	HoldingPeriodYears   int     `json:"holdingPeriodYears"`
	PropertyTaxAnnual    float64 `json:"propertyTaxAnnual"`
	HoaMonthly           float64 `json:"hoaMonthly"`
	MaintenancePercent   float64 `json:"maintenancePercent"`
	ManagementFeePercent float64 `json:"managementFeePercent"`
	VacancyRate          float64 `json:"vacancyRate"`
	RentIncreaseAnnual   float64 `json:"rentIncreaseAnnual"`
}

// NewPropertyInvestmentInput returns an input with the documented defaults
// pre-applied. Decoding JSON into it keeps defaults for absent keys while an
// explicit zero still wins.
func NewPropertyInvestmentInput() PropertyInvestmentInput {
	return PropertyInvestmentInput{
		MaintenancePercent: DefaultMaintenancePercent,
	}
}

// MortgageDetails holds the derived loan terms.
//
// TotalInterest is total finance cost minus principal: because the monthly
// payment bundles the flat life-insurance premium, the figure includes
// insurance as well as interest. Naming kept for compatibility.
type MortgageDetails struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalPayments  float64 `json:"totalPayments"`
}

// YearlyExpenses breaks down one projection year's outgoings. Insurance is
// informational only: it is already inside Mortgage and excluded from Total.
type YearlyExpenses struct {
	Mortgage    float64 `json:"mortgage"`
	PropertyTax float64 `json:"propertyTax"`
	Hoa         float64 `json:"hoa"`
	Maintenance float64 `json:"maintenance"`
	Management  float64 `json:"management"`
	Insurance   float64 `json:"insurance"`
	Total       float64 `json:"total"`
}

// YearlyProjection is one holding-period year of the schedule.
type YearlyProjection struct {
	Year               int            `json:"year"`
	RentalIncome       float64        `json:"rentalIncome"`
	Expenses           YearlyExpenses `json:"expenses"`
	NetCashFlow        float64        `json:"netCashFlow"`
	CumulativeCashFlow float64        `json:"cumulativeCashFlow"`
	PrincipalPaydown   float64        `json:"principalPaydown"`
	TotalEquity        float64        `json:"totalEquity"`
	RemainingBalance   float64        `json:"remainingBalance"`
}

// InvestmentSummary aggregates the full holding period. BreakEvenYear is nil
// when cumulative cash flow never turns non-negative.
type InvestmentSummary struct {
	InitialInvestment     float64 `json:"initialInvestment"`
	LoanAmount            float64 `json:"loanAmount"`
	TotalRentalIncome     float64 `json:"totalRentalIncome"`
	TotalExpenses         float64 `json:"totalExpenses"`
	TotalCashFlow         float64 `json:"totalCashFlow"`
	TotalPrincipalPaydown float64 `json:"totalPrincipalPaydown"`
	FinalEquity           float64 `json:"finalEquity"`
	NetProfit             float64 `json:"netProfit"`
	ROI                   float64 `json:"roi"`
	AvgCashOnCashReturn   float64 `json:"avgCashOnCashReturn"`
	BreakEvenYear         *int    `json:"breakEvenYear"`
}

// AnalysisResult is the full structured output for one scenario.
type AnalysisResult struct {
	Input             PropertyInvestmentInput `json:"input"`
	Mortgage          MortgageDetails         `json:"mortgage"`
	YearlyProjections []YearlyProjection      `json:"yearlyProjections"`
	Summary           InvestmentSummary       `json:"summary"`
}
