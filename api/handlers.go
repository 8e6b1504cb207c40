package api

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "github.com/gcbaptista/patent-semantic-search/internal/errors"
	"github.com/gcbaptista/patent-semantic-search/services"
)

const (
	serviceName    = "patent-search-api"
	serviceVersion = "1.0.0"

	// searchTopK is the number of documents retrieved and summarized per query.
	searchTopK = 3

	maxRequestBodySize = 1 << 20 // 1 MB
)

// ReindexFunc reloads the corpus and rebuilds or updates the index, returning
// the number of documents indexed. The composition root supplies it so the
// handler does not need to know about corpus loading or normalization.
type ReindexFunc func(ctx context.Context, mode services.IndexMode) (int, error)

// API holds dependencies for API handlers: the retrieval service, the
// summarization service, and the reindex operation.
type API struct {
	searcher   services.Searcher
	summarizer services.Summarizer
	reindex    ReindexFunc
}

// NewAPI creates a new API handler structure.
func NewAPI(searcher services.Searcher, summarizer services.Summarizer, reindex ReindexFunc) *API {
	return &API{
		searcher:   searcher,
		summarizer: summarizer,
		reindex:    reindex,
	}
}

// SetupRoutes defines all the API routes for the patent search service.
func SetupRoutes(router *gin.Engine, searcher services.Searcher, summarizer services.Summarizer, reindex ReindexFunc) {
	apiHandler := NewAPI(searcher, summarizer, reindex)

	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	router.Use(RequestSizeLimitMiddleware(maxRequestBodySize))

	router.GET("/", apiHandler.RootHandler)
	router.GET("/health", apiHandler.HealthCheckHandler)
	router.GET("/search", apiHandler.SearchHandler)
	router.GET("/stats", apiHandler.GetStatsHandler)
	router.POST("/reindex", apiHandler.ReindexHandler)
}

// RootHandler returns basic service information and the endpoint map.
func (api *API) RootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Patent Semantic Search API",
		"version": serviceVersion,
		"endpoints": gin.H{
			"search":  "/search?query=your_search_query",
			"health":  "/health",
			"stats":   "/stats",
			"reindex": "/reindex?mode=upsert|rebuild",
		},
	})
}

// HealthCheckHandler provides a simple health check endpoint
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
	})
}

// DocumentInfo is the per-document slice of a search response.
type DocumentInfo struct {
	PatentNumber   string  `json:"patent_number"`
	Title          string  `json:"title"`
	RelevanceScore float64 `json:"relevance_score"`
}

// SearchResponse is the response body of GET /search.
type SearchResponse struct {
	Query          string         `json:"query"`
	TopDocuments   []DocumentInfo `json:"top_documents"`
	Summary        string         `json:"summary"`
	ProcessingTime float64        `json:"processing_time"`
}

// SearchHandler retrieves the most relevant patents for a query and returns
// them together with a generated summary of their descriptions.
func (api *API) SearchHandler(c *gin.Context) {
	startTime := time.Now()

	query := c.Query("query")
	if result := ValidateSearchQuery(query); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	query = strings.TrimSpace(query)

	results, err := api.searcher.Search(c.Request.Context(), query, searchTopK)
	if err != nil {
		SendSearchError(c, err)
		return
	}

	if len(results) == 0 {
		SendNoResultsError(c)
		return
	}

	topDocuments := make([]DocumentInfo, 0, len(results))
	descriptions := make([]string, 0, len(results))
	for _, result := range results {
		topDocuments = append(topDocuments, DocumentInfo{
			PatentNumber:   result.PatentNumber,
			Title:          result.Title,
			RelevanceScore: result.Score,
		})
		descriptions = append(descriptions, result.Description)
	}

	summary := api.summarizer.Summarize(c.Request.Context(), descriptions)

	processingTime := time.Since(startTime).Seconds()

	c.JSON(http.StatusOK, SearchResponse{
		Query:          query,
		TopDocuments:   topDocuments,
		Summary:        summary,
		ProcessingTime: math.Round(processingTime*1000) / 1000,
	})
}

// GetStatsHandler returns statistics about the indexed collection. An absent
// collection is not a failure: the response carries the condition as an error
// payload with a 200 status, matching the stats contract.
func (api *API) GetStatsHandler(c *gin.Context) {
	stats, err := api.searcher.Stats()
	if err != nil {
		if errors.Is(err, apperrors.ErrCollectionNotFound) {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		SendInternalError(c, "stats retrieval", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ReindexHandler reloads the corpus and re-indexes it. The mode query
// parameter selects between updating the existing collection ("upsert",
// the default) and dropping it first ("rebuild").
func (api *API) ReindexHandler(c *gin.Context) {
	mode := c.DefaultQuery("mode", string(services.IndexModeUpsert))
	if result := ValidateIndexMode(mode); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	count, err := api.reindex(c.Request.Context(), services.IndexMode(mode))
	if err != nil {
		SendIndexingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Reindexing completed",
		"mode":           mode,
		"document_count": count,
	})
}
