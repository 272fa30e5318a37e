// Package cli is the command-line boundary around the projection engine: it
// parses flags or a JSON document on stdin into a validated input record,
// runs one analysis and renders the result as JSON or a fixed-width table.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/pverdier/rentiva-api/internal/models"
	"github.com/pverdier/rentiva-api/internal/services"
)

// InputFormatError reports malformed input at the boundary (bad JSON, missing
// required flags or keys). The engine never sees such input.
type InputFormatError struct {
	Message string
}

func (e *InputFormatError) Error() string {
	return e.Message
}

// requiredKeys are the six mandatory inputs; everything else has a default.
var requiredKeys = []string{
	"propertyPrice", "downPayment", "interestRate",
	"loanTermYears", "monthlyRent", "holdingPeriodYears",
}

type options struct {
	input     models.PropertyInvestmentInput
	jsonInput bool
	format    string
	set       map[string]bool
}

// Run executes one analysis and returns the process exit code: 0 on success,
// 1 on parse, validation or computation failure (message on stderr).
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// flag.Parse already reported its own errors to stderr.
		var formatErr *InputFormatError
		if errors.As(err, &formatErr) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}

	input := opts.input
	if opts.jsonInput {
		input, err = decodeJSONInput(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	result, err := services.NewAnalysisService().Analyze(context.Background(), input)
	if err != nil {
		var computationErr *services.ComputationError
		if errors.As(err, &computationErr) {
			fmt.Fprintf(stderr, "Unexpected error: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}

	switch opts.format {
	case "json":
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "Unexpected error: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, string(out))
	case "table":
		fmt.Fprint(stdout, services.NewExportService().RenderTable(result))
	}

	return 0
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	opts := &options{
		input:  models.NewPropertyInvestmentInput(),
		format: "json",
		set:    map[string]bool{},
	}

	fs := flag.NewFlagSet("rentiva", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Long and short spellings share one destination; set-ness is tracked
	// under the long name.
	fs.Float64Var(&opts.input.PropertyPrice, "property-price", 0, "Property purchase price in EUR")
	fs.Float64Var(&opts.input.PropertyPrice, "p", 0, "Shorthand for -property-price")
	fs.Float64Var(&opts.input.DownPayment, "down-payment", 0, "Down payment in EUR")
	fs.Float64Var(&opts.input.DownPayment, "d", 0, "Shorthand for -down-payment")
	fs.Float64Var(&opts.input.InterestRate, "interest-rate", 0, "Annual interest rate (%)")
	fs.Float64Var(&opts.input.InterestRate, "i", 0, "Shorthand for -interest-rate")
	fs.IntVar(&opts.input.LoanTermYears, "loan-term", 0, "Loan term in years")
	fs.IntVar(&opts.input.LoanTermYears, "l", 0, "Shorthand for -loan-term")
	fs.Float64Var(&opts.input.MonthlyRent, "monthly-rent", 0, "Monthly rental income in EUR")
	fs.Float64Var(&opts.input.MonthlyRent, "r", 0, "Shorthand for -monthly-rent")
	fs.IntVar(&opts.input.HoldingPeriodYears, "holding-period", 0, "Investment holding period in years")

	fs.Float64Var(&opts.input.PropertyTaxAnnual, "property-tax-annual", 0, "Annual property tax (EUR, default: 0)")
	fs.Float64Var(&opts.input.HoaMonthly, "hoa-monthly", 0, "Monthly HOA fees (EUR, default: 0)")
	fs.Float64Var(&opts.input.MaintenancePercent, "maintenance-percent", models.DefaultMaintenancePercent, "Annual maintenance as % of property value (default: 1.0)")
	fs.Float64Var(&opts.input.ManagementFeePercent, "management-fee-percent", 0, "Property management fee as % of rent (default: 0)")
	fs.Float64Var(&opts.input.VacancyRate, "vacancy-rate", 0, "Expected vacancy rate % (default: 0)")
	fs.Float64Var(&opts.input.RentIncreaseAnnual, "rent-increase-annual", 0, "Annual rent increase % (default: 0)")

	fs.BoolVar(&opts.jsonInput, "json-input", false, "Read JSON input from stdin")
	fs.StringVar(&opts.format, "format", "json", "Output format: json or table")
	fs.StringVar(&opts.format, "f", "json", "Shorthand for -format")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	shortToLong := map[string]string{
		"p": "property-price", "d": "down-payment", "i": "interest-rate",
		"l": "loan-term", "r": "monthly-rent", "f": "format",
	}
	fs.Visit(func(f *flag.Flag) {
		name := f.Name
		if long, ok := shortToLong[name]; ok {
			name = long
		}
		opts.set[name] = true
	})

	if opts.format != "json" && opts.format != "table" {
		return nil, &InputFormatError{Message: fmt.Sprintf("invalid format %q (expected json or table)", opts.format)}
	}

	if !opts.jsonInput {
		required := []string{"property-price", "down-payment", "interest-rate", "loan-term", "monthly-rent", "holding-period"}
		for _, name := range required {
			if !opts.set[name] {
				return nil, &InputFormatError{Message: fmt.Sprintf("missing required flag -%s (all required arguments must be provided when not using -json-input)", name)}
			}
		}
	}

	return opts, nil
}

// decodeJSONInput reads one JSON object from stdin. The six mandatory keys
// must be present; optional keys keep their documented defaults.
func decodeJSONInput(stdin io.Reader) (models.PropertyInvestmentInput, error) {
	input := models.NewPropertyInvestmentInput()

	data, err := io.ReadAll(stdin)
	if err != nil {
		return input, &InputFormatError{Message: fmt.Sprintf("reading stdin: %v", err)}
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return input, &InputFormatError{Message: fmt.Sprintf("invalid JSON input: %v", err)}
	}
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			return input, &InputFormatError{Message: fmt.Sprintf("missing required key %q", key)}
		}
	}

	if err := json.Unmarshal(data, &input); err != nil {
		return input, &InputFormatError{Message: fmt.Sprintf("invalid JSON input: %v", err)}
	}

	return input, nil
}
