package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pverdier/rentiva-api/internal/models"
)

var requiredFlags = []string{
	"-property-price", "300000",
	"-down-payment", "60000",
	"-interest-rate", "3.5",
	"-loan-term", "20",
	"-monthly-rent", "1500",
	"-holding-period", "10",
}

func run(t *testing.T, args []string, stdin string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_JSONOutput(t *testing.T) {
	code, stdout, stderr := run(t, requiredFlags, "")
	require.Equal(t, 0, code, stderr)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, 240000.0, result.Summary.LoanAmount)
	assert.Equal(t, 66750.0, result.Summary.InitialInvestment)
	assert.Len(t, result.YearlyProjections, 10)
	assert.Equal(t, models.DefaultMaintenancePercent, result.Input.MaintenancePercent)
}

func TestRun_ShortFlags(t *testing.T) {
	args := []string{
		"-p", "300000", "-d", "60000", "-i", "3.5",
		"-l", "20", "-r", "1500", "-holding-period", "10",
	}
	code, stdout, stderr := run(t, args, "")
	require.Equal(t, 0, code, stderr)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, 240000.0, result.Summary.LoanAmount)
}

func TestRun_TableOutput(t *testing.T) {
	args := append([]string{}, requiredFlags...)
	args = append(args, "-format", "table")

	code, stdout, _ := run(t, args, "")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "FRENCH PROPERTY INVESTMENT ANALYSIS")
	assert.Contains(t, stdout, "Break-even Year:")
}

func TestRun_MissingRequiredFlag(t *testing.T) {
	args := []string{"-property-price", "300000"}
	code, _, stderr := run(t, args, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "missing required flag")
}

func TestRun_ZeroDownPaymentIsProvided(t *testing.T) {
	// An explicit zero must count as provided, not missing.
	args := append([]string{}, requiredFlags...)
	args[3] = "0" // down-payment value
	code, stdout, stderr := run(t, args, "")
	require.Equal(t, 0, code, stderr)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, 300000.0, result.Summary.LoanAmount)
}

func TestRun_InvalidFormat(t *testing.T) {
	args := append([]string{}, requiredFlags...)
	args = append(args, "-format", "xml")
	code, _, stderr := run(t, args, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid format")
}

func TestRun_ValidationErrorExitCode(t *testing.T) {
	args := append([]string{}, requiredFlags...)
	args = append(args, "-vacancy-rate", "150")
	code, _, stderr := run(t, args, "")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "vacancy rate")
}

func TestRun_JSONInput(t *testing.T) {
	stdin := `{
		"propertyPrice": 300000,
		"downPayment": 60000,
		"interestRate": 3.5,
		"loanTermYears": 20,
		"monthlyRent": 1500,
		"holdingPeriodYears": 10,
		"vacancyRate": 10
	}`
	code, stdout, stderr := run(t, []string{"-json-input"}, stdin)
	require.Equal(t, 0, code, stderr)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &result))
	assert.Equal(t, 10.0, result.Input.VacancyRate)
	// Optional keys absent from the document keep their defaults.
	assert.Equal(t, models.DefaultMaintenancePercent, result.Input.MaintenancePercent)
}

func TestRun_JSONInputMissingRequiredKey(t *testing.T) {
	stdin := `{"propertyPrice": 300000}`
	code, _, stderr := run(t, []string{"-json-input"}, stdin)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "missing required key")
}

func TestRun_JSONInputMalformed(t *testing.T) {
	code, _, stderr := run(t, []string{"-json-input"}, `{"propertyPrice": `)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid JSON input")
}
