package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"truthlens/internal/models"
	"truthlens/internal/predict_client"
	"truthlens/internal/presenter"
	"truthlens/internal/session"
)

// Validation messages shown before any request is sent
const (
	MsgEmptyText  = "Ingresa al menos un título o contenido para analizar."
	MsgEmptyFile  = "Selecciona un archivo primero."
	MsgEmptyImage = "Selecciona una imagen primero."
	MsgEmptyURL   = "Ingresa una URL válida."

	MsgAnalysisFailed = "No se pudo completar el análisis."
	MsgInProgress     = "Ya hay un análisis en curso. Espera a que termine."
)

// ErrAnalysisInProgress is returned while another analysis is running on the same session
var ErrAnalysisInProgress = errors.New("analysis already in progress")

// ValidationError reports missing input
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// PredictClient is the subset of the analysis service used by the Analyzer
type PredictClient interface {
	PredictText(ctx context.Context, title, text string) (*models.AnalysisPayload, error)
	PredictFile(ctx context.Context, filename string, r io.Reader) (*models.AnalysisPayload, error)
	PredictImage(ctx context.Context, filename string, r io.Reader) (*models.AnalysisPayload, error)
	AnalyzeURL(ctx context.Context, url string) (*models.AnalysisPayload, error)
}

// Indicator is the loading state shown while a request is in flight
type Indicator interface {
	Show()
	Hide()
}

type noopIndicator struct{}

func (noopIndicator) Show() {}
func (noopIndicator) Hide() {}

// Input is one analysis request as entered by the user
type Input struct {
	Mode     models.InputMode
	Title    string
	Text     string
	URL      string
	Filename string
	Content  io.Reader
}

// Analyzer runs analyses against the remote service and commits results to a session
type Analyzer struct {
	client    PredictClient
	indicator Indicator
	logger    *zap.Logger
	now       func() time.Time
	inflight  atomic.Int32
}

// NewAnalyzer creates a new Analyzer. indicator may be nil.
func NewAnalyzer(client PredictClient, indicator Indicator, logger *zap.Logger) *Analyzer {
	if indicator == nil {
		indicator = noopIndicator{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		client:    client,
		indicator: indicator,
		logger:    logger,
		now:       time.Now,
	}
}

// Busy reports whether any analysis is in flight.
func (a *Analyzer) Busy() bool {
	return a.inflight.Load() > 0
}

// Analyze validates in, calls the service and commits the snapshot to sess.
// Only one analysis runs per session at a time. The session's current result
// is cleared first and only set again on success.
func (a *Analyzer) Analyze(ctx context.Context, sess *session.Session, in Input) (*session.Snapshot, error) {
	if err := validate(&in); err != nil {
		return nil, err
	}
	if !sess.Begin() {
		return nil, ErrAnalysisInProgress
	}
	defer sess.End()

	a.inflight.Add(1)
	defer a.inflight.Add(-1)

	sess.Clear()
	a.indicator.Show()
	defer a.indicator.Hide()

	a.logger.Info("Starting analysis", zap.String("session", sess.ID), zap.String("mode", string(in.Mode)))

	payload, err := a.request(ctx, in)
	if err != nil {
		a.logger.Error("Analysis failed", zap.String("mode", string(in.Mode)), zap.Error(err))
		return nil, err
	}

	result := payload.Result()
	snap := session.Snapshot{
		Mode:         in.Mode,
		Result:       result,
		Presentation: presenter.Classify(result),
		Metrics:      presenter.ComputeMetrics(result),
		Debug:        payload.DebugInfo.Clone(),
		Preview:      previewFor(payload, in),
		AnalyzedAt:   a.now(),
	}
	sess.Commit(snap)
	sess.History().Record(historyText(payload, in), snap.Presentation.FakePercent, result.Prediction, result.Label)

	a.logger.Info("Analysis completed",
		zap.String("session", sess.ID),
		zap.String("badge", snap.Presentation.Badge),
		zap.Int("fake_percent", snap.Presentation.FakePercent),
		zap.Int("confidence", snap.Presentation.GaugePercent))

	return &snap, nil
}

func validate(in *Input) error {
	switch in.Mode {
	case models.ModeFile:
		if in.Content == nil {
			return &ValidationError{Message: MsgEmptyFile}
		}
	case models.ModeImage:
		if in.Content == nil {
			return &ValidationError{Message: MsgEmptyImage}
		}
	case models.ModeURL:
		in.URL = strings.TrimSpace(in.URL)
		if in.URL == "" {
			return &ValidationError{Message: MsgEmptyURL}
		}
	default:
		in.Mode = models.ModeText
		in.Title = strings.TrimSpace(in.Title)
		in.Text = strings.TrimSpace(in.Text)
		if in.Title == "" && in.Text == "" {
			return &ValidationError{Message: MsgEmptyText}
		}
	}
	return nil
}

func (a *Analyzer) request(ctx context.Context, in Input) (*models.AnalysisPayload, error) {
	switch in.Mode {
	case models.ModeFile:
		return a.client.PredictFile(ctx, in.Filename, in.Content)
	case models.ModeImage:
		return a.client.PredictImage(ctx, in.Filename, in.Content)
	case models.ModeURL:
		return a.client.AnalyzeURL(ctx, in.URL)
	default:
		return a.client.PredictText(ctx, in.Title, in.Text)
	}
}

func previewFor(p *models.AnalysisPayload, in Input) string {
	switch {
	case p.ExtractedPreview != "":
		return p.ExtractedPreview
	case p.Text != "":
		return p.Text
	case in.Mode == models.ModeText:
		if in.Title != "" {
			return in.Title + "\n\n" + in.Text
		}
		return in.Text
	}
	return "Contenido analizado"
}

func historyText(p *models.AnalysisPayload, in Input) string {
	switch in.Mode {
	case models.ModeFile:
		return firstNonEmpty(p.ExtractedPreview, in.Filename, "Archivo analizado")
	case models.ModeImage:
		return firstNonEmpty(p.ExtractedPreview, p.Text, in.Filename, "Imagen analizada")
	case models.ModeURL:
		title := ""
		if p.ArticleData != nil {
			title = p.ArticleData.Title
		}
		return firstNonEmpty(title, in.URL, "URL analizada")
	}
	if in.Title != "" {
		return strings.TrimSpace(fmt.Sprintf("%s: %s", in.Title, in.Text))
	}
	return in.Text
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// UserMessage returns the text to show in an error dialog for err.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var se *predict_client.ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	if errors.Is(err, ErrAnalysisInProgress) {
		return MsgInProgress
	}
	return MsgAnalysisFailed
}
