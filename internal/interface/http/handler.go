package http

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/aqi-analyst/internal/domain/insights"
	"github.com/yanqian/aqi-analyst/internal/domain/liveaqi"
	apperrors "github.com/yanqian/aqi-analyst/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	insightsSvc insights.Service
	liveSvc     liveaqi.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(insightsSvc insights.Service, liveSvc liveaqi.Service, logger *slog.Logger) *Handler {
	return &Handler{
		insightsSvc: insightsSvc,
		liveSvc:     liveSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

// UploadDataset accepts a multipart CSV and opens an analysis session.
func (h *Handler) UploadDataset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "file is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "failed to read upload", err))
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "upload_failed", "failed to read file", err))
		return
	}

	resp, err := h.insightsSvc.CreateSession(c.Request.Context(), insights.UploadRequest{
		Filename: fileHeader.Filename,
		Content:  data,
	})
	if err != nil {
		abortWithError(c, datasetError(err, "upload_failed"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetDataset returns the overview of an existing session.
func (h *Handler) GetDataset(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	resp, err := h.insightsSvc.GetSession(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, datasetError(err, "fetch_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteDataset tears down a session.
func (h *Handler) DeleteDataset(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	if err := h.insightsSvc.DeleteSession(c.Request.Context(), id); err != nil {
		abortWithError(c, datasetError(err, "delete_failed"))
		return
	}
	c.Status(http.StatusNoContent)
}

type datasetInsightRequest struct {
	Intent string `json:"intent"`
}

// AnalyzeDataset runs one LLM analysis over the session's digest.
func (h *Handler) AnalyzeDataset(c *gin.Context) {
	id, ok := parseSessionID(c)
	if !ok {
		return
	}
	var req datasetInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.insightsSvc.AnalyzeDataset(c.Request.Context(), id, req.Intent)
	if err != nil {
		abortWithError(c, datasetError(err, "analysis_failed"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LiveAQI performs a live lookup and attaches the health advisory.
func (h *Handler) LiveAQI(c *gin.Context) {
	record, err := h.liveSvc.Lookup(c.Request.Context(), c.Query("city"))
	if err != nil {
		abortWithError(c, liveError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record":   record,
		"advisory": liveaqi.Advise(record.AQI),
	})
}

type liveInsightRequest struct {
	City   string `json:"city"`
	Intent string `json:"intent"`
}

// AnalyzeLive asks the LLM to explain a live lookup or advise on it.
func (h *Handler) AnalyzeLive(c *gin.Context) {
	var req liveInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.insightsSvc.AnalyzeLive(c.Request.Context(), req.City, req.Intent)
	if err != nil {
		abortWithError(c, liveError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

type compareRequest struct {
	CityA string `json:"cityA"`
	CityB string `json:"cityB"`
}

// CompareLive asks the LLM to compare current air quality in two cities.
func (h *Handler) CompareLive(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.insightsSvc.CompareLive(c.Request.Context(), req.CityA, req.CityB)
	if err != nil {
		abortWithError(c, liveError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func parseSessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid session id", err))
		return uuid.UUID{}, false
	}
	return id, true
}

func datasetError(err error, fallbackCode string) *HTTPError {
	status := http.StatusInternalServerError
	code := fallbackCode
	switch {
	case apperrors.IsCode(err, apperrors.CodeSchemaError):
		status = http.StatusBadRequest
		code = apperrors.CodeSchemaError
	case apperrors.IsCode(err, apperrors.CodeEmptyDataset):
		status = http.StatusBadRequest
		code = apperrors.CodeEmptyDataset
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, apperrors.CodeNotFound):
		status = http.StatusNotFound
		code = apperrors.CodeNotFound
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func liveError(err error) *HTTPError {
	status := http.StatusInternalServerError
	code := "lookup_failed"
	switch {
	case apperrors.IsCode(err, apperrors.CodeInvalidInput):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, apperrors.CodeCredentialMissing):
		status = http.StatusServiceUnavailable
		code = apperrors.CodeCredentialMissing
	case apperrors.IsCode(err, apperrors.CodeResolutionFailed):
		status = http.StatusNotFound
		code = apperrors.CodeResolutionFailed
	case apperrors.IsCode(err, apperrors.CodeTransportFailure):
		status = http.StatusBadGateway
		code = apperrors.CodeTransportFailure
	case apperrors.IsCode(err, apperrors.CodePollutionUnavailable):
		status = http.StatusBadGateway
		code = apperrors.CodePollutionUnavailable
	case apperrors.IsCode(err, apperrors.CodeNotFound):
		status = http.StatusNotFound
		code = apperrors.CodeNotFound
	}
	// The stable top-level message is the user-facing text; the chained
	// cause stays in the logs via the error middleware.
	return NewHTTPError(status, code, apperrors.Message(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
