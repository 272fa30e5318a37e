package services

import (
	"context"
	"fmt"

	"github.com/pverdier/rentiva-api/internal/jobs"
	"github.com/pverdier/rentiva-api/internal/models"
)

// ComparisonService analyzes several scenarios side by side. Analyses are
// independent pure computations, so they fan out across the worker pool; the
// engine itself stays single-threaded per call.
type ComparisonService struct {
	analysisSvc *AnalysisService
	worker      *jobs.Worker
}

// NewComparisonService creates a new comparison service
func NewComparisonService(analysisSvc *AnalysisService, worker *jobs.Worker) *ComparisonService {
	return &ComparisonService{analysisSvc: analysisSvc, worker: worker}
}

// Compare runs every scenario and returns results in input order, plus the
// indexes of the best ROI and best total cash flow. Any invalid scenario
// fails the whole comparison with its index attached.
func (s *ComparisonService) Compare(ctx context.Context, inputs []models.PropertyInvestmentInput) (*models.ComparisonResult, error) {
	if len(inputs) == 0 {
		return nil, validationErr("scenarios", "at least one scenario is required")
	}

	results := make([]models.AnalysisResult, len(inputs))
	tasks := make([]jobs.Job, len(inputs))
	for i, input := range inputs {
		i, input := i, input
		tasks[i] = func(ctx context.Context) error {
			res, err := s.analysisSvc.Analyze(ctx, input)
			if err != nil {
				return err
			}
			results[i] = *res
			return nil
		}
	}

	for i, err := range s.worker.RunAll(ctx, tasks) {
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i+1, err)
		}
	}

	bestROI, bestCashFlow := 0, 0
	for i, r := range results {
		if r.Summary.ROI > results[bestROI].Summary.ROI {
			bestROI = i
		}
		if r.Summary.TotalCashFlow > results[bestCashFlow].Summary.TotalCashFlow {
			bestCashFlow = i
		}
	}

	return &models.ComparisonResult{
		Results:           results,
		BestROIIndex:      bestROI,
		BestCashFlowIndex: bestCashFlow,
	}, nil
}
