package handler

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"mime/multipart"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"truthlens/internal/chatbot"
	"truthlens/internal/models"
	"truthlens/internal/predict_client"
	"truthlens/internal/report"
	"truthlens/internal/service"
	"truthlens/internal/session"
)

// SessionHeader selects the session a request belongs to
const SessionHeader = "X-Session-ID"

const (
	msgNoResult   = "No hay un análisis disponible. Analiza un contenido primero."
	msgNoExamples = "No hay ejemplos disponibles."
	sessionKey    = "session"
)

// ExampleSource provides the demo examples
type ExampleSource interface {
	Examples(ctx context.Context) models.Examples
}

// Handler handles HTTP requests
type Handler struct {
	analyzer *service.Analyzer
	sessions *session.Store
	reports  *report.Builder
	examples ExampleSource
	sinks    []report.Sink
	logger   *zap.Logger

	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewHandler creates a new API handler
func NewHandler(analyzer *service.Analyzer, sessions *session.Store, reports *report.Builder, examples ExampleSource, sinks []report.Sink, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		analyzer: analyzer,
		sessions: sessions,
		reports:  reports,
		examples: examples,
		sinks:    sinks,
		logger:   logger,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api", h.withSession)
	{
		// Analysis endpoints
		api.POST("/analyze/text", h.AnalyzeText)
		api.POST("/analyze/file", h.AnalyzeFile)
		api.POST("/analyze/image", h.AnalyzeImage)
		api.POST("/analyze/url", h.AnalyzeURL)

		// Current result
		api.GET("/result", h.GetResult)
		api.GET("/debug", h.GetDebug)
		api.GET("/history", h.GetHistory)

		// Sharing and export
		api.GET("/share", h.GetShareText)
		api.POST("/share", h.Share)
		api.GET("/report", h.DownloadReport)

		api.GET("/examples/random", h.RandomExample)
		api.POST("/chat", h.Chat)
	}

	// Health check
	r.GET("/health", h.HealthCheck)
}

// CORS allows browser clients on other origins and exposes the session header.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+SessionHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", SessionHeader+", Content-Disposition")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) withSession(c *gin.Context) {
	s := h.sessions.Get(c.GetHeader(SessionHeader))
	c.Header(SessionHeader, s.ID)
	c.Set(sessionKey, s)
	c.Next()
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

type textRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type urlRequest struct {
	URL string `json:"url"`
}

// AnalyzeText handles pasted title and body text
func (h *Handler) AnalyzeText(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgEmptyText})
		return
	}
	h.analyze(c, service.Input{Mode: models.ModeText, Title: req.Title, Text: req.Text})
}

// AnalyzeURL handles article links
func (h *Handler) AnalyzeURL(c *gin.Context) {
	var req urlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgEmptyURL})
		return
	}
	h.analyze(c, service.Input{Mode: models.ModeURL, URL: req.URL})
}

// AnalyzeFile handles document uploads in the "file" field
func (h *Handler) AnalyzeFile(c *gin.Context) {
	h.analyzeUpload(c, models.ModeFile, "file")
}

// AnalyzeImage handles screenshots in the "image" field
func (h *Handler) AnalyzeImage(c *gin.Context) {
	h.analyzeUpload(c, models.ModeImage, "image")
}

func (h *Handler) analyzeUpload(c *gin.Context, mode models.InputMode, field string) {
	in := service.Input{Mode: mode}

	fh, err := c.FormFile(field)
	if err == nil {
		var f multipart.File
		f, err = fh.Open()
		if err != nil {
			h.logger.Error("Failed to open upload", zap.String("field", field), zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": service.MsgAnalysisFailed})
			return
		}
		defer f.Close()
		in.Filename = fh.Filename
		in.Content = f
	}

	h.analyze(c, in)
}

func (h *Handler) analyze(c *gin.Context, in service.Input) {
	snap, err := h.analyzer.Analyze(c.Request.Context(), currentSession(c), in)
	if err != nil {
		c.JSON(analysisStatus(err), gin.H{"error": service.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func analysisStatus(err error) int {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAnalysisInProgress):
		return http.StatusConflict
	}
	return http.StatusBadGateway
}

// current writes 404 and returns false when the session has no result.
func current(c *gin.Context) (session.Snapshot, bool) {
	snap, ok := currentSession(c).Current()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNoResult})
	}
	return snap, ok
}

// GetResult returns the current snapshot
func (h *Handler) GetResult(c *gin.Context) {
	snap, ok := current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, snap)
}

// GetDebug returns the debug panel and technical summary
func (h *Handler) GetDebug(c *gin.Context) {
	snap, ok := current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"panel":     report.DebugPanel(snap),
		"technical": report.TechnicalSummary(snap),
	})
}

// GetHistory returns the session history, newest first
func (h *Handler) GetHistory(c *gin.Context) {
	entries := currentSession(c).History().Entries()
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"total":   len(entries),
	})
}

// GetShareText returns the share text for the current result
func (h *Handler) GetShareText(c *gin.Context) {
	snap, ok := current(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"title": report.ShareTitle, "text": report.ShareText(snap)})
}

// Share pushes the share text to the configured sinks
func (h *Handler) Share(c *gin.Context) {
	snap, ok := current(c)
	if !ok {
		return
	}
	text := report.ShareText(snap)
	delivered := report.Share(c.Request.Context(), h.logger, text, h.sinks...)
	c.JSON(http.StatusOK, gin.H{"text": text, "delivered": delivered})
}

// DownloadReport renders the current result as a PDF attachment
func (h *Handler) DownloadReport(c *gin.Context) {
	snap, ok := current(c)
	if !ok {
		return
	}

	art, err := h.reports.Build(c.Request.Context(), snap)
	if err != nil {
		h.logger.Error("Failed to build report", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": report.MsgGenerationFailed})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", art.Filename))
	c.Header("X-Report-ID", art.ReportID)
	c.Data(http.StatusOK, "application/pdf", art.Data)
}

// RandomExample returns one demo article
func (h *Handler) RandomExample(c *gin.Context) {
	examples := h.examples.Examples(c.Request.Context())

	h.rngMu.Lock()
	ex, ok := predict_client.RandomExample(examples, h.rng)
	h.rngMu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": msgNoExamples})
		return
	}
	c.JSON(http.StatusOK, ex)
}

// Chat advances the session's FAQ conversation
func (h *Handler) Chat(c *gin.Context) {
	var ev chatbot.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conv := currentSession(c).Chat()
	msgs := conv.Send(ev)
	c.JSON(http.StatusOK, gin.H{
		"messages": msgs,
		"state":    conv.State(),
	})
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": h.sessions.Len(),
		"busy":     h.analyzer.Busy(),
	})
}
