package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"briefly/internal/model"
	"briefly/pkg/article"
	"briefly/pkg/llm"
	"briefly/pkg/summary"

	"github.com/gin-gonic/gin"
)

type Analyzer interface {
	SummarizeText(ctx context.Context, text, model string, maxWords int) (string, error)
	SummarizeArticle(ctx context.Context, url string) (string, error)
	AnalyzeSentiment(ctx context.Context, text, model string) (string, error)
	DefaultModel() string
	ArticleModel() string
}

type AnalysisStore interface {
	SaveAnalysis(a *model.Analysis) error
	GetAnalyses(kind string, limit, offset int) ([]model.Analysis, error)
	GetAnalysisTotal(kind string) (int, error)
	GetAnalysisByID(id int64) (*model.Analysis, error)
}

type AnalysisHandler struct {
	analyzer   Analyzer
	repository AnalysisStore
}

func NewAnalysisHandler(analyzer Analyzer, repository AnalysisStore) *AnalysisHandler {
	return &AnalysisHandler{analyzer: analyzer, repository: repository}
}

func (h *AnalysisHandler) SummarizeText(c *gin.Context) {
	var req SummarizeTextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	modelName := req.Model
	if modelName == "" {
		modelName = h.analyzer.DefaultModel()
	}

	text, err := h.analyzer.SummarizeText(c.Request.Context(), req.Text, modelName, req.MaxWords)
	record := h.record(model.Analysis{
		Kind:  model.KindTextSummary,
		Model: modelName,
		Input: req.Text,
	}, text, err)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{ID: record.ID, Summary: text, Model: modelName})
}

func (h *AnalysisHandler) SummarizeArticle(c *gin.Context) {
	var req SummarizeArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text, err := h.analyzer.SummarizeArticle(c.Request.Context(), req.URL)
	record := h.record(model.Analysis{
		Kind:      model.KindArticleSummary,
		SourceURL: req.URL,
		Model:     h.analyzer.ArticleModel(),
	}, text, err)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{ID: record.ID, Summary: text, Model: record.Model, URL: req.URL})
}

func (h *AnalysisHandler) AnalyzeSentiment(c *gin.Context) {
	var req SentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	modelName := req.Model
	if modelName == "" {
		modelName = h.analyzer.DefaultModel()
	}

	text, err := h.analyzer.AnalyzeSentiment(c.Request.Context(), req.Text, modelName)
	record := h.record(model.Analysis{
		Kind:  model.KindSentiment,
		Model: modelName,
		Input: req.Text,
	}, text, err)

	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SentimentResponse{ID: record.ID, Sentiment: text, Model: modelName})
}

func (h *AnalysisHandler) GetAnalyses(c *gin.Context) {
	kind := c.Query("kind")
	limit := getQueryLimit(c)
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		offset = 0
	}

	analyses, err := h.repository.GetAnalyses(kind, limit, offset)
	if err != nil {
		slog.Error("error fetching analyses", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetAnalysisTotal(kind)
	if err != nil {
		slog.Error("error fetching analysis total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := AnalysesResponse{
		Analyses: make([]AnalysisResponse, 0, len(analyses)),
		Total:    total,
		Limit:    limit,
		Offset:   offset,
	}
	for _, a := range analyses {
		res.Analyses = append(res.Analyses, toAnalysisResponse(a))
	}

	c.JSON(http.StatusOK, res)
}

func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ID"})
		return
	}

	a, err := h.repository.GetAnalysisByID(id)
	if err != nil {
		slog.Error("error fetching analysis", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Analysis not found"})
		return
	}

	c.JSON(http.StatusOK, toAnalysisResponse(*a))
}

func (h *AnalysisHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetAnalysisTotal("")
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// record stores the outcome of one call. Storage failures are logged and do
// not change the response.
func (h *AnalysisHandler) record(a model.Analysis, output string, callErr error) model.Analysis {
	a.Status = model.StatusCompleted
	a.Output = output
	if callErr != nil {
		a.Status = model.StatusFailed
		a.Error = callErr.Error()
	}

	if err := h.repository.SaveAnalysis(&a); err != nil {
		slog.Error("error saving analysis", "kind", a.Kind, "error", err)
	}
	return a
}

func respondError(c *gin.Context, err error) {
	c.JSON(errorStatus(err), gin.H{"error": summary.FailureMessage(err)})
}

func errorStatus(err error) int {
	var fetchErr *article.FetchError
	var invErr *llm.InvocationError

	switch {
	case errors.As(err, &fetchErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &invErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toAnalysisResponse(a model.Analysis) AnalysisResponse {
	res := AnalysisResponse{
		ID:        a.ID,
		JobID:     a.JobID,
		Kind:      a.Kind,
		SourceURL: a.SourceURL,
		Publisher: a.Publisher,
		Model:     a.Model,
		Input:     a.Input,
		Output:    a.Output,
		Status:    a.Status,
		Error:     a.Error,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
	if a.PublishedAt != nil {
		res.PublishedAt = a.PublishedAt.Format(time.RFC3339)
	}
	return res
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	paramValue := c.Query(name)

	if paramValue == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(paramValue)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", paramValue, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
