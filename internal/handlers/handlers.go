package handlers

import "github.com/pverdier/rentiva-api/internal/services"

// Handlers holds all handler instances
type Handlers struct {
	Health   *HealthHandler
	Analysis *AnalysisHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(),
		Analysis: NewAnalysisHandler(svcs.Analysis, svcs.Comparison, svcs.Export),
	}
}
