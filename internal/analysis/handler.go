package analysis

import (
	"errors"
	"net/http"

	v1 "github.com/freightpulse/freightpulse/internal/api/v1"
	httperr "github.com/freightpulse/freightpulse/internal/core/errors"
	"github.com/freightpulse/freightpulse/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// UserHeader carries the caller's user id.
const UserHeader = "X-User-ID"

type analyzeBody struct {
	TimePeriodID string     `json:"time_period_id" binding:"required"`
	Filters      v1.Filters `json:"filters"`
	OutputFormat string     `json:"output_format"`
	// UseCache defaults to true when omitted.
	UseCache *bool `json:"use_cache"`
}

type compareBody struct {
	BasePeriodID       string     `json:"base_period_id" binding:"required"`
	ComparisonPeriodID string     `json:"comparison_period_id" binding:"required"`
	Filters            v1.Filters `json:"filters"`
}

// AnalyzeResponse wraps a result with whether it was served from cache.
type AnalyzeResponse struct {
	Analysis *v1.AnalysisResult `json:"analysis"`
	CacheHit bool               `json:"cache_hit"`
}

// RegisterRoutes registers all analysis API routes on the given router.
func (e *Engine) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/analyses", e.HandleAnalyze)
	r.GET("/v1/analyses", e.HandleListResults)
	r.GET("/v1/analyses/:id", e.HandleGetResult)
	r.DELETE("/v1/analyses/:id", e.HandleDeleteResult)
	r.POST("/v1/analyses/:id/rerun", e.HandleRerun)
	r.POST("/v1/analyses/:id/cancel", e.HandleCancel)
	r.POST("/v1/comparisons", e.HandleCompare)
	r.DELETE("/v1/cache", e.HandleInvalidateCache)
}

// HandleAnalyze handles POST /v1/analyses
func (e *Engine) HandleAnalyze(c *gin.Context) {
	var body analyzeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid request body",
			Details:   err.Error(),
		})
		return
	}

	useCache := true
	if body.UseCache != nil {
		useCache = *body.UseCache
	}

	result, hit, err := e.Analyze(c.Request.Context(), AnalyzeRequest{
		TimePeriodID: body.TimePeriodID,
		Filters:      body.Filters,
		UserID:       c.GetHeader(UserHeader),
		OutputFormat: v1.OutputFormat(body.OutputFormat),
		UseCache:     useCache,
	})
	if err != nil {
		respondError(c, err, "Failed to run analysis")
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{Analysis: result, CacheHit: hit})
}

// HandleListResults handles GET /v1/analyses
// Query parameters: limit, offset
func (e *Engine) HandleListResults(c *gin.Context) {
	var query struct {
		Limit  int `form:"limit"`
		Offset int `form:"offset"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	results, err := e.ListResults(c.Request.Context(), storage.ListOptions{
		UserID: c.GetHeader(UserHeader),
		Limit:  query.Limit,
		Offset: query.Offset,
	})
	if err != nil {
		respondError(c, err, "Failed to list analyses")
		return
	}
	if results == nil {
		results = []*v1.AnalysisResult{}
	}

	c.JSON(http.StatusOK, gin.H{"analyses": results})
}

// HandleGetResult handles GET /v1/analyses/:id
func (e *Engine) HandleGetResult(c *gin.Context) {
	result, err := e.GetResult(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load analysis")
		return
	}
	if result == nil {
		respondNotFound(c)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleDeleteResult handles DELETE /v1/analyses/:id
func (e *Engine) HandleDeleteResult(c *gin.Context) {
	deleted, err := e.DeleteResult(c.Request.Context(), c.Param("id"), c.GetHeader(UserHeader))
	if err != nil {
		respondError(c, err, "Failed to delete analysis")
		return
	}
	if !deleted {
		respondNotFound(c)
		return
	}

	c.Status(http.StatusNoContent)
}

// HandleRerun handles POST /v1/analyses/:id/rerun
// Query parameters: use_cache (default false)
func (e *Engine) HandleRerun(c *gin.Context) {
	var query struct {
		UseCache bool `form:"use_cache"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	result, hit, err := e.Rerun(c.Request.Context(), c.Param("id"), query.UseCache)
	if err != nil {
		respondError(c, err, "Failed to rerun analysis")
		return
	}
	if result == nil {
		respondNotFound(c)
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{Analysis: result, CacheHit: hit})
}

// HandleCancel handles POST /v1/analyses/:id/cancel
func (e *Engine) HandleCancel(c *gin.Context) {
	cancelled, err := e.CancelAnalysis(c.Request.Context(), c.Param("id"), c.GetHeader(UserHeader))
	if err != nil {
		respondError(c, err, "Failed to cancel analysis")
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": cancelled})
}

// HandleCompare handles POST /v1/comparisons
func (e *Engine) HandleCompare(c *gin.Context) {
	var body compareBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidJsonError,
			Message:   "Invalid request body",
			Details:   err.Error(),
		})
		return
	}

	cmp, err := e.Compare(c.Request.Context(), CompareRequest{
		BasePeriodID:       body.BasePeriodID,
		ComparisonPeriodID: body.ComparisonPeriodID,
		Filters:            body.Filters,
		UserID:             c.GetHeader(UserHeader),
	})
	if err != nil {
		respondError(c, err, "Failed to compare periods")
		return
	}

	c.JSON(http.StatusOK, cmp)
}

// HandleInvalidateCache handles DELETE /v1/cache
// Query parameters: analysis_id (optional, all entries when empty)
func (e *Engine) HandleInvalidateCache(c *gin.Context) {
	n, err := e.InvalidateCache(c.Request.Context(), c.Query("analysis_id"))
	if err != nil {
		respondError(c, err, "Failed to invalidate cache")
		return
	}

	c.JSON(http.StatusOK, gin.H{"invalidated": n})
}

func respondNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, httperr.ErrorResponse{
		ErrorType: httperr.HttpNotFoundError,
		Message:   "Analysis not found",
	})
}

func respondError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidRequestError,
			Message:   "Invalid analysis request",
			Details:   err.Error(),
		})
	case errors.Is(err, ErrAnalysis):
		c.JSON(http.StatusUnprocessableEntity, httperr.ErrorResponse{
			ErrorType: httperr.HttpAnalysisFailedError,
			Message:   message,
			Details:   failureMessage(err),
		})
	default:
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   message,
			Details:   err.Error(),
		})
	}
}
