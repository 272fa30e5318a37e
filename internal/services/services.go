package services

import "github.com/pverdier/rentiva-api/internal/jobs"

// Services holds all service instances
type Services struct {
	Analysis   *AnalysisService
	Comparison *ComparisonService
	Export     *ExportService
}

// NewServices creates all service instances
func NewServices(worker *jobs.Worker) *Services {
	analysisSvc := NewAnalysisService()
	return &Services{
		Analysis:   analysisSvc,
		Comparison: NewComparisonService(analysisSvc, worker),
		Export:     NewExportService(),
	}
}
