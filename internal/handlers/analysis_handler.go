package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pverdier/rentiva-api/internal/models"
	"github.com/pverdier/rentiva-api/internal/services"
)

type AnalysisHandler struct {
	analysisSvc   *services.AnalysisService
	comparisonSvc *services.ComparisonService
	exportSvc     *services.ExportService
}

func NewAnalysisHandler(analysisSvc *services.AnalysisService, comparisonSvc *services.ComparisonService, exportSvc *services.ExportService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisSvc:   analysisSvc,
		comparisonSvc: comparisonSvc,
		exportSvc:     exportSvc,
	}
}

// @Summary Analyze a property investment scenario
// @Description Computes mortgage terms, yearly projections and summary metrics for one scenario
// @Tags Analysis
// @Accept json
// @Produce json
// @Param input body models.PropertyInvestmentInput true "Investment scenario"
// @Success 200 {object} models.AnalysisResult
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /analysis [post]
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	input := models.NewPropertyInvestmentInput()
	if err := BindNestedOrFlat(c, "input", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	result, err := h.analysisSvc.Analyze(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Compare investment scenarios
// @Description Analyzes multiple scenarios and identifies the best ROI and cash flow
// @Tags Analysis
// @Accept json
// @Produce json
// @Param scenarios body object true "Object with a scenarios array"
// @Success 200 {object} models.ComparisonResult
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /analysis/compare [post]
func (h *AnalysisHandler) Compare(c *gin.Context) {
	var req struct {
		Scenarios []json.RawMessage `json:"scenarios"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	inputs := make([]models.PropertyInvestmentInput, len(req.Scenarios))
	for i, raw := range req.Scenarios {
		input := models.NewPropertyInvestmentInput()
		if err := json.Unmarshal(raw, &input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("scenario %d: invalid JSON", i+1)})
			return
		}
		inputs[i] = input
	}

	result, err := h.comparisonSvc.Compare(c.Request.Context(), inputs)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// @Summary Export an analysis
// @Description Analyzes one scenario and returns it rendered as csv, xlsx, pdf or table
// @Tags Analysis
// @Accept json
// @Produce application/octet-stream
// @Param format query string true "Export format (csv, xlsx, pdf, table)"
// @Param input body models.PropertyInvestmentInput true "Investment scenario"
// @Success 200 {file} binary
// @Failure 400 {object} map[string]interface{}
// @Failure 422 {object} map[string]interface{}
// @Router /analysis/export [post]
func (h *AnalysisHandler) Export(c *gin.Context) {
	format := c.Query("format")

	input := models.NewPropertyInvestmentInput()
	if err := BindNestedOrFlat(c, "input", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	result, err := h.analysisSvc.Analyze(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	var data []byte
	var filename string

	switch format {
	case "csv":
		data, filename, err = h.exportSvc.ExportCSV(c.Request.Context(), result)
	case "xlsx":
		data, filename, err = h.exportSvc.ExportXLSX(c.Request.Context(), result)
	case "pdf":
		data, filename, err = h.exportSvc.ExportPDF(c.Request.Context(), result)
	case "table":
		c.String(http.StatusOK, h.exportSvc.RenderTable(result))
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format (csv, xlsx, pdf, table)"})
		return
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to generate %s: %v", format, err)})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

// renderError maps engine errors to HTTP responses: constraint violations are
// client errors, non-finite arithmetic is a server defect.
func (h *AnalysisHandler) renderError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
			"field": validationErr.Field,
		})
		return
	}

	var computationErr *services.ComputationError
	if errors.As(err, &computationErr) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
