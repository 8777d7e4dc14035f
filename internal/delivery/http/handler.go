package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nutriscope/backend/internal/domain"
	"github.com/nutriscope/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	aggregator *usecase.Aggregator
	engine     *usecase.EnergyEngine
}

// NewHandler creates a new HTTP handler
func NewHandler(aggregator *usecase.Aggregator, engine *usecase.EnergyEngine) *Handler {
	return &Handler{
		aggregator: aggregator,
		engine:     engine,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "nutriscope-backend",
		"version": "1.0.0",
	})
}

// SearchIngredients handles GET /search/ingredients?q=
func (h *Handler) SearchIngredients(c *gin.Context) {
	result := h.aggregator.SearchIngredients(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, result)
}

// SearchFoodsAndDrinks handles GET /search/foods?q=
func (h *Handler) SearchFoodsAndDrinks(c *gin.Context) {
	result := h.aggregator.SearchFoodsAndDrinks(c.Request.Context(), c.Query("q"))
	c.JSON(http.StatusOK, result)
}

// advancedSearchRequest is the POST body for advanced search
type advancedSearchRequest struct {
	Query   string               `json:"query" binding:"required"`
	Filters domain.SearchFilters `json:"filters"`
}

// AdvancedSearch handles POST /search/advanced
func (h *Handler) AdvancedSearch(c *gin.Context) {
	var req advancedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	result := h.aggregator.AdvancedSearch(c.Request.Context(), req.Query, req.Filters)
	c.JSON(http.StatusOK, result)
}

// LookupBarcode handles GET /barcode/:code
func (h *Handler) LookupBarcode(c *gin.Context) {
	result := h.aggregator.LookupBarcode(c.Request.Context(), c.Param("code"))
	c.JSON(http.StatusOK, result)
}

// GetItemByID handles GET /items/:id
func (h *Handler) GetItemByID(c *gin.Context) {
	item, err := h.aggregator.GetItemByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "provider lookup failed"})
		}
		return
	}
	c.JSON(http.StatusOK, item)
}

// UploadProduct handles POST /products
func (h *Handler) UploadProduct(c *gin.Context) {
	var upload domain.ProductUpload
	if err := c.ShouldBindJSON(&upload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed product payload"})
		return
	}

	result := h.aggregator.UploadProduct(c.Request.Context(), upload)
	c.JSON(http.StatusOK, result)
}

// nutritionSummaryRequest is the POST body for summary computation
type nutritionSummaryRequest struct {
	Items []domain.CanonicalFoodItem `json:"items" binding:"required"`
}

// NutritionSummary handles POST /nutrition/summary
func (h *Handler) NutritionSummary(c *gin.Context) {
	var req nutritionSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items are required"})
		return
	}

	c.JSON(http.StatusOK, h.aggregator.GetNutritionSummary(req.Items))
}

// validateProfile rejects physically implausible engine inputs at the
// API boundary; the engine itself does not validate
func validateProfile(profile *domain.UserEnergyProfile) error {
	if profile.WeightKG <= 0 {
		return errors.New("weight must be positive")
	}
	if profile.BodyFatPercent < 0 || profile.BodyFatPercent >= 100 {
		return errors.New("body fat percent must be in [0, 100)")
	}
	if profile.BaseMetabolicRate <= 0 {
		return errors.New("base metabolic rate must be positive")
	}
	if profile.ActivityMultiplier <= 0 {
		return errors.New("activity multiplier must be positive")
	}
	return nil
}

// EnergyTargets handles POST /energy/targets
func (h *Handler) EnergyTargets(c *gin.Context) {
	var profile domain.UserEnergyProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed profile payload"})
		return
	}
	if err := validateProfile(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, h.engine.CalculateTargets(profile))
}

// adjustMacroRequest is the POST body for a manual macro adjustment
type adjustMacroRequest struct {
	Targets domain.MacroTargets `json:"targets" binding:"required"`
	Macro   domain.Macro        `json:"macro" binding:"required"`
	Percent int                 `json:"percent"`
}

// AdjustMacro handles POST /energy/adjust
func (h *Handler) AdjustMacro(c *gin.Context) {
	var req adjustMacroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed adjustment payload"})
		return
	}
	if req.Macro != domain.MacroProtein && req.Macro != domain.MacroFat && req.Macro != domain.MacroCarbs {
		c.JSON(http.StatusBadRequest, gin.H{"error": "macro must be protein, fat or carbs"})
		return
	}

	c.JSON(http.StatusOK, h.engine.AdjustMacro(req.Targets, req.Macro, req.Percent))
}

// ClearCaches handles POST /cache/clear
func (h *Handler) ClearCaches(c *gin.Context) {
	h.aggregator.ClearAllCaches()
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// ServiceStatus handles GET /status
func (h *Handler) ServiceStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.aggregator.GetServiceStatus())
}
