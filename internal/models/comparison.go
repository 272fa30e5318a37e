package models

// ComparisonResult holds the outcome of analyzing several scenarios side by
// side. Results keep the input order; the index fields point into it.
type ComparisonResult struct {
	Results           []AnalysisResult `json:"results"`
	BestROIIndex      int              `json:"bestRoiIndex"`
	BestCashFlowIndex int              `json:"bestCashFlowIndex"`
}
