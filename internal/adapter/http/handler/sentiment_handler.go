package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/syedahamedali2521/sentiment-analysis-app/internal/domain/entity"
	"github.com/syedahamedali2521/sentiment-analysis-app/internal/usecase"
)

// PredictRequest is the body of POST /api/v1/sentiment
type PredictRequest struct {
	Text *string `json:"text" binding:"required"`
}

// PredictBatchRequest is the body of POST /api/v1/sentiment/batch
type PredictBatchRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

// BatchItem is one batch prediction. Text is always echoed, even when empty.
type BatchItem struct {
	Text  string       `json:"text"`
	Label entity.Label `json:"label"`
	Score float64      `json:"score"`
}

// BatchOutput wraps batch predictions
type BatchOutput struct {
	Results []BatchItem `json:"results"`
	Count   int         `json:"count"`
}

// SentimentHandler handles sentiment prediction requests
type SentimentHandler struct {
	sentimentUC usecase.SentimentUsecase
}

// NewSentimentHandler creates a new sentiment handler
func NewSentimentHandler(sentimentUC usecase.SentimentUsecase) *SentimentHandler {
	return &SentimentHandler{sentimentUC: sentimentUC}
}

// Predict handles POST /api/v1/sentiment
func (h *SentimentHandler) Predict(c *gin.Context) {
	var input PredictRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}
	if IsBlank(*input.Text) {
		HandleInvalidRequest(c, "text must not be empty")
		return
	}

	output, err := h.sentimentUC.PredictText(c.Request.Context(), *input.Text)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// PredictBatch handles POST /api/v1/sentiment/batch
func (h *SentimentHandler) PredictBatch(c *gin.Context) {
	var input PredictBatchRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	h.predictBatch(c, input.Texts)
}

// PredictCSV handles POST /api/v1/sentiment/csv
func (h *SentimentHandler) PredictCSV(c *gin.Context) {
	texts, err := ExtractCSVTexts(c, UploadField)
	if err != nil {
		HandleUsecaseError(c, asInvalidRequest(err))
		return
	}

	h.predictBatch(c, texts)
}

func (h *SentimentHandler) predictBatch(c *gin.Context, texts []string) {
	results, err := h.sentimentUC.PredictBatch(c.Request.Context(), texts)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	items := make([]BatchItem, 0, len(results))
	for _, p := range results {
		items = append(items, BatchItem{Text: p.Text, Label: p.Label, Score: p.Score})
	}

	respondSuccess(c, http.StatusOK, &BatchOutput{
		Results: items,
		Count:   len(items),
	})
}
