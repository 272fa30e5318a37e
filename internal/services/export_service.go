package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pverdier/rentiva-api/internal/models"
)

var reportPrinter = message.NewPrinter(language.English)

// amount formats a value with thousands separators for the console report,
// e.g. 300000 becomes "300,000.00". The CSV and XLSX exports stay machine
// friendly and do not group digits.
func amount(v float64) string {
	return reportPrinter.Sprintf("%.2f", v)
}

// ExportService renders one analysis result to downloadable formats and to
// the fixed-width console table used by the CLI.
type ExportService struct{}

// NewExportService creates a new export service
func NewExportService() *ExportService {
	return &ExportService{}
}

// ExportCSV renders the result as a CSV report with overview, yearly
// projection and summary sections.
func (s *ExportService) ExportCSV(ctx context.Context, result *models.AnalysisResult) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"French Property Investment Analysis", time.Now().Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Investment Overview"})
	_ = writer.Write([]string{"Metric", "Value"})
	_ = writer.Write([]string{"Property Price", fmt.Sprintf("%.2f", result.Input.PropertyPrice)})
	_ = writer.Write([]string{"Down Payment", fmt.Sprintf("%.2f", result.Input.DownPayment)})
	_ = writer.Write([]string{"Loan Amount", fmt.Sprintf("%.2f", result.Summary.LoanAmount)})
	_ = writer.Write([]string{"Initial Investment", fmt.Sprintf("%.2f", result.Summary.InitialInvestment)})
	_ = writer.Write([]string{"Monthly Payment", fmt.Sprintf("%.2f", result.Mortgage.MonthlyPayment)})
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Yearly Projections"})
	_ = writer.Write([]string{"Year", "Rental Income", "Expenses", "Net Cash Flow", "Cumulative Cash Flow", "Principal Paydown", "Total Equity", "Remaining Balance"})
	for _, p := range result.YearlyProjections {
		_ = writer.Write([]string{
			fmt.Sprintf("%d", p.Year),
			fmt.Sprintf("%.2f", p.RentalIncome),
			fmt.Sprintf("%.2f", p.Expenses.Total),
			fmt.Sprintf("%.2f", p.NetCashFlow),
			fmt.Sprintf("%.2f", p.CumulativeCashFlow),
			fmt.Sprintf("%.2f", p.PrincipalPaydown),
			fmt.Sprintf("%.2f", p.TotalEquity),
			fmt.Sprintf("%.2f", p.RemainingBalance),
		})
	}
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Summary"})
	_ = writer.Write([]string{"Total Rental Income", fmt.Sprintf("%.2f", result.Summary.TotalRentalIncome)})
	_ = writer.Write([]string{"Total Expenses", fmt.Sprintf("%.2f", result.Summary.TotalExpenses)})
	_ = writer.Write([]string{"Total Cash Flow", fmt.Sprintf("%.2f", result.Summary.TotalCashFlow)})
	_ = writer.Write([]string{"Net Profit", fmt.Sprintf("%.2f", result.Summary.NetProfit)})
	_ = writer.Write([]string{"ROI", fmt.Sprintf("%.2f%%", result.Summary.ROI)})
	_ = writer.Write([]string{"Break-even Year", breakEvenLabel(result)})

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("investment_analysis_%s.csv", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportXLSX renders the result as a spreadsheet with one sheet of yearly
// projections plus an overview block.
func (s *ExportService) ExportXLSX(ctx context.Context, result *models.AnalysisResult) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Projections"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", "French Property Investment Analysis")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	_ = f.SetCellValue(sheet, "A3", "Property Price")
	_ = f.SetCellValue(sheet, "B3", result.Input.PropertyPrice)
	_ = f.SetCellValue(sheet, "A4", "Down Payment")
	_ = f.SetCellValue(sheet, "B4", result.Input.DownPayment)
	_ = f.SetCellValue(sheet, "A5", "Loan Amount")
	_ = f.SetCellValue(sheet, "B5", result.Summary.LoanAmount)
	_ = f.SetCellValue(sheet, "A6", "Initial Investment")
	_ = f.SetCellValue(sheet, "B6", result.Summary.InitialInvestment)
	_ = f.SetCellValue(sheet, "A7", "Monthly Payment")
	_ = f.SetCellValue(sheet, "B7", result.Mortgage.MonthlyPayment)
	_ = f.SetCellValue(sheet, "A8", "ROI")
	_ = f.SetCellValue(sheet, "B8", fmt.Sprintf("%.2f%%", result.Summary.ROI))

	headers := []string{"Year", "Rental Income", "Expenses", "Net Cash Flow", "Cumulative", "Principal Paydown", "Equity", "Remaining Balance"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 10)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for row, p := range result.YearlyProjections {
		values := []any{p.Year, p.RentalIncome, p.Expenses.Total, p.NetCashFlow,
			p.CumulativeCashFlow, p.PrincipalPaydown, p.TotalEquity, p.RemainingBalance}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+11)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("investment_analysis_%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// ExportPDF renders the result as a one-page PDF report.
func (s *ExportService) ExportPDF(ctx context.Context, result *models.AnalysisResult) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "French Property Investment Analysis")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Overview")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	overview := [][2]string{
		{"Property Price", fmt.Sprintf("EUR %.2f", result.Input.PropertyPrice)},
		{"Down Payment", fmt.Sprintf("EUR %.2f", result.Input.DownPayment)},
		{"Loan Amount", fmt.Sprintf("EUR %.2f", result.Summary.LoanAmount)},
		{"Initial Investment", fmt.Sprintf("EUR %.2f", result.Summary.InitialInvestment)},
		{"Monthly Payment", fmt.Sprintf("EUR %.2f", result.Mortgage.MonthlyPayment)},
		{"Net Profit", fmt.Sprintf("EUR %.2f", result.Summary.NetProfit)},
		{"ROI", fmt.Sprintf("%.2f%%", result.Summary.ROI)},
		{"Break-even Year", breakEvenLabel(result)},
	}
	for _, row := range overview {
		pdf.Cell(60, 6, row[0])
		pdf.Cell(60, 6, row[1])
		pdf.Ln(6)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Yearly Projections")
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	cols := []struct {
		label string
		width float64
	}{
		{"Year", 15}, {"Rent", 30}, {"Expenses", 30}, {"Net Cash", 30}, {"Cumulative", 35}, {"Equity", 30},
	}
	for _, c := range cols {
		pdf.Cell(c.width, 6, c.label)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 9)
	for _, p := range result.YearlyProjections {
		pdf.Cell(15, 6, fmt.Sprintf("%d", p.Year))
		pdf.Cell(30, 6, fmt.Sprintf("%.2f", p.RentalIncome))
		pdf.Cell(30, 6, fmt.Sprintf("%.2f", p.Expenses.Total))
		pdf.Cell(30, 6, fmt.Sprintf("%.2f", p.NetCashFlow))
		pdf.Cell(35, 6, fmt.Sprintf("%.2f", p.CumulativeCashFlow))
		pdf.Cell(30, 6, fmt.Sprintf("%.2f", p.TotalEquity))
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("investment_analysis_%s.pdf", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

// RenderTable formats the result as the fixed-width console report.
func (s *ExportService) RenderTable(result *models.AnalysisResult) string {
	var b strings.Builder
	bar := strings.Repeat("=", 80)
	rule := strings.Repeat("-", 80)

	fmt.Fprintf(&b, "\n%s\n", bar)
	b.WriteString("FRENCH PROPERTY INVESTMENT ANALYSIS\n")
	b.WriteString(bar + "\n")

	b.WriteString("\nINVESTMENT OVERVIEW\n" + rule + "\n")
	fmt.Fprintf(&b, "Property Price:        €%s\n", amount(result.Input.PropertyPrice))
	fmt.Fprintf(&b, "Down Payment:          €%s\n", amount(result.Input.DownPayment))
	fmt.Fprintf(&b, "Loan Amount:           €%s\n", amount(result.Summary.LoanAmount))
	fmt.Fprintf(&b, "Initial Investment:    €%s\n", amount(result.Summary.InitialInvestment))
	fmt.Fprintf(&b, "Interest Rate:         %.2f%%\n", result.Input.InterestRate)
	fmt.Fprintf(&b, "Loan Term:             %d years\n", result.Input.LoanTermYears)
	fmt.Fprintf(&b, "Holding Period:        %d years\n", result.Input.HoldingPeriodYears)

	b.WriteString("\nMORTGAGE DETAILS\n" + rule + "\n")
	fmt.Fprintf(&b, "Monthly Payment:       €%s\n", amount(result.Mortgage.MonthlyPayment))
	fmt.Fprintf(&b, "Total Interest:        €%s\n", amount(result.Mortgage.TotalInterest))
	fmt.Fprintf(&b, "Total Payments:        €%s\n", amount(result.Mortgage.TotalPayments))

	b.WriteString("\nRENTAL PARAMETERS\n" + rule + "\n")
	fmt.Fprintf(&b, "Monthly Rent:          €%s\n", amount(result.Input.MonthlyRent))
	fmt.Fprintf(&b, "Vacancy Rate:          %.2f%%\n", result.Input.VacancyRate)
	fmt.Fprintf(&b, "Rent Increase:         %.2f%% annually\n", result.Input.RentIncreaseAnnual)
	fmt.Fprintf(&b, "Management Fee:        %.2f%%\n", result.Input.ManagementFeePercent)

	b.WriteString("\nYEARLY PROJECTIONS\n" + rule + "\n")
	fmt.Fprintf(&b, "%-6s %-13s %-13s %-13s %-15s %-13s\n",
		"Year", "Rent", "Expenses", "Net Cash", "Cumulative", "Equity")
	b.WriteString(rule + "\n")
	for _, p := range result.YearlyProjections {
		fmt.Fprintf(&b, "%-6d €%-12s €%-12s €%-12s €%-14s €%-12s\n",
			p.Year, amount(p.RentalIncome), amount(p.Expenses.Total),
			amount(p.NetCashFlow), amount(p.CumulativeCashFlow), amount(p.TotalEquity))
	}

	b.WriteString("\nSUMMARY\n" + rule + "\n")
	fmt.Fprintf(&b, "Total Rental Income:   €%s\n", amount(result.Summary.TotalRentalIncome))
	fmt.Fprintf(&b, "Total Expenses:        €%s\n", amount(result.Summary.TotalExpenses))
	fmt.Fprintf(&b, "Total Cash Flow:       €%s\n", amount(result.Summary.TotalCashFlow))
	fmt.Fprintf(&b, "Principal Paid:        €%s\n", amount(result.Summary.TotalPrincipalPaydown))
	fmt.Fprintf(&b, "Final Equity:          €%s\n", amount(result.Summary.FinalEquity))
	fmt.Fprintf(&b, "Net Profit:            €%s\n", amount(result.Summary.NetProfit))
	fmt.Fprintf(&b, "ROI:                   %.2f%%\n", result.Summary.ROI)
	fmt.Fprintf(&b, "Avg Cash-on-Cash:      %.2f%%\n", result.Summary.AvgCashOnCashReturn)

	if result.Summary.BreakEvenYear != nil {
		fmt.Fprintf(&b, "Break-even Year:       %d\n", *result.Summary.BreakEvenYear)
	} else {
		fmt.Fprintf(&b, "Break-even Year:       Not reached in %d years\n", result.Input.HoldingPeriodYears)
	}

	b.WriteString(bar + "\n")
	return b.String()
}

func breakEvenLabel(result *models.AnalysisResult) string {
	if result.Summary.BreakEvenYear != nil {
		return fmt.Sprintf("%d", *result.Summary.BreakEvenYear)
	}
	return fmt.Sprintf("not reached in %d years", result.Input.HoldingPeriodYears)
}
