package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truthlens/internal/models"
	"truthlens/internal/predict_client"
	"truthlens/internal/session"
)

type fakeClient struct {
	mu      sync.Mutex
	calls   []string
	payload *models.AnalysisPayload
	err     error
	block   chan struct{}
}

func (f *fakeClient) record(call string) (*models.AnalysisPayload, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
	if f.block != nil {
		<-f.block
	}
	return f.payload, f.err
}

func (f *fakeClient) PredictText(_ context.Context, title, text string) (*models.AnalysisPayload, error) {
	return f.record("text:" + title + "|" + text)
}

func (f *fakeClient) PredictFile(_ context.Context, name string, _ io.Reader) (*models.AnalysisPayload, error) {
	return f.record("file:" + name)
}

func (f *fakeClient) PredictImage(_ context.Context, name string, _ io.Reader) (*models.AnalysisPayload, error) {
	return f.record("image:" + name)
}

func (f *fakeClient) AnalyzeURL(_ context.Context, url string) (*models.AnalysisPayload, error) {
	return f.record("url:" + url)
}

type countingIndicator struct {
	shown, hidden int
}

func (c *countingIndicator) Show() { c.shown++ }
func (c *countingIndicator) Hide() { c.hidden++ }

const (
	timeoutWait = 2 * time.Second
	tick        = 5 * time.Millisecond
)

func label(v int) *int { return &v }

func TestAnalyzeValidationHappensBeforeRequest(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		msg  string
	}{
		{"empty text", Input{Mode: models.ModeText, Title: "  ", Text: "\n"}, MsgEmptyText},
		{"default mode is text", Input{}, MsgEmptyText},
		{"no file", Input{Mode: models.ModeFile}, MsgEmptyFile},
		{"no image", Input{Mode: models.ModeImage}, MsgEmptyImage},
		{"blank url", Input{Mode: models.ModeURL, URL: "   "}, MsgEmptyURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{}
			ind := &countingIndicator{}
			a := NewAnalyzer(client, ind, nil)

			_, err := a.Analyze(context.Background(), session.New(), tt.in)

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.msg, ve.Message)
			assert.Equal(t, tt.msg, UserMessage(err))
			assert.Empty(t, client.calls)
			assert.Zero(t, ind.shown)
		})
	}
}

func TestAnalyzeTextCommitsSnapshotAndHistory(t *testing.T) {
	client := &fakeClient{payload: &models.AnalysisPayload{
		Probability: 0.95, Label: label(1), Prediction: "Fake", Confidence: 0.88,
		DebugInfo: models.DebugMetadata{"title_length": float64(7)},
	}}
	ind := &countingIndicator{}
	a := NewAnalyzer(client, ind, nil)
	sess := session.New()

	snap, err := a.Analyze(context.Background(), sess, Input{Title: " Titular ", Text: "Cuerpo"})
	require.NoError(t, err)

	assert.Equal(t, []string{"text:Titular|Cuerpo"}, client.calls)
	assert.Equal(t, "FALSO", snap.Presentation.Badge)
	assert.Equal(t, 88, snap.Presentation.GaugePercent)
	assert.Equal(t, "Titular\n\nCuerpo", snap.Preview)
	assert.Equal(t, 1, ind.shown)
	assert.Equal(t, 1, ind.hidden)

	current, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, snap.Presentation, current.Presentation)

	entries := sess.History().Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "Titular: Cuerpo", entries[0].Snippet)
	assert.Equal(t, 95, entries[0].Probability)
}

func TestAnalyzeFailureLeavesNoCurrentResult(t *testing.T) {
	client := &fakeClient{payload: &models.AnalysisPayload{Probability: 0.1, Prediction: "Real"}}
	ind := &countingIndicator{}
	a := NewAnalyzer(client, ind, nil)
	sess := session.New()

	_, err := a.Analyze(context.Background(), sess, Input{Text: "primero"})
	require.NoError(t, err)

	client.err = &predict_client.ServerError{StatusCode: 500, Message: "model unavailable"}
	_, err = a.Analyze(context.Background(), sess, Input{Text: "segundo"})
	require.Error(t, err)
	assert.Equal(t, "model unavailable", UserMessage(err))

	_, ok := sess.Current()
	assert.False(t, ok)
	assert.Equal(t, 1, sess.History().Len())
	assert.Equal(t, 2, ind.shown)
	assert.Equal(t, 2, ind.hidden)
	assert.False(t, a.Busy())
}

func TestAnalyzeRejectsConcurrentRunOnSameSession(t *testing.T) {
	client := &fakeClient{
		payload: &models.AnalysisPayload{Probability: 0.1, Prediction: "Real"},
		block:   make(chan struct{}),
	}
	a := NewAnalyzer(client, nil, nil)
	sess := session.New()

	done := make(chan error, 1)
	go func() {
		_, err := a.Analyze(context.Background(), sess, Input{Text: "lento"})
		done <- err
	}()

	require.Eventually(t, a.Busy, timeoutWait, tick)
	assert.True(t, sess.Busy())

	_, err := a.Analyze(context.Background(), sess, Input{Text: "otro"})
	assert.ErrorIs(t, err, ErrAnalysisInProgress)
	assert.Equal(t, MsgInProgress, UserMessage(err))

	close(client.block)
	require.NoError(t, <-done)
	assert.False(t, a.Busy())
	assert.False(t, sess.Busy())
}

func TestAnalyzeAllowsParallelSessions(t *testing.T) {
	client := &fakeClient{
		payload: &models.AnalysisPayload{Probability: 0.1, Prediction: "Real"},
		block:   make(chan struct{}),
	}
	a := NewAnalyzer(client, nil, nil)
	first, second := session.New(), session.New()

	done := make(chan error, 2)
	go func() {
		_, err := a.Analyze(context.Background(), first, Input{Text: "uno"})
		done <- err
	}()
	require.Eventually(t, first.Busy, timeoutWait, tick)

	go func() {
		_, err := a.Analyze(context.Background(), second, Input{Text: "dos"})
		done <- err
	}()
	require.Eventually(t, second.Busy, timeoutWait, tick)

	close(client.block)
	require.NoError(t, <-done)
	require.NoError(t, <-done)

	_, ok := first.Current()
	assert.True(t, ok)
	_, ok = second.Current()
	assert.True(t, ok)
	assert.False(t, a.Busy())
}

func TestPreviewAndHistoryPerMode(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		payload  models.AnalysisPayload
		preview  string
		snippet  string
		wantCall string
	}{
		{
			name:     "url uses article title",
			in:       Input{Mode: models.ModeURL, URL: " https://x.test/a "},
			payload:  models.AnalysisPayload{ExtractedPreview: "resumen", ArticleData: &models.ArticleData{Title: "Artículo"}},
			preview:  "resumen",
			snippet:  "Artículo",
			wantCall: "url:https://x.test/a",
		},
		{
			name:     "url without title falls back to url",
			in:       Input{Mode: models.ModeURL, URL: "https://x.test/b"},
			payload:  models.AnalysisPayload{},
			preview:  "Contenido analizado",
			snippet:  "https://x.test/b",
			wantCall: "url:https://x.test/b",
		},
		{
			name:     "image prefers ocr text",
			in:       Input{Mode: models.ModeImage, Filename: "foto.jpg", Content: strings.NewReader("x")},
			payload:  models.AnalysisPayload{Text: "texto ocr"},
			preview:  "texto ocr",
			snippet:  "texto ocr",
			wantCall: "image:foto.jpg",
		},
		{
			name:     "file falls back to name",
			in:       Input{Mode: models.ModeFile, Filename: "doc.pdf", Content: strings.NewReader("x")},
			payload:  models.AnalysisPayload{},
			preview:  "Contenido analizado",
			snippet:  "doc.pdf",
			wantCall: "file:doc.pdf",
		},
		{
			name:     "text without title",
			in:       Input{Text: "solo cuerpo"},
			payload:  models.AnalysisPayload{},
			preview:  "solo cuerpo",
			snippet:  "solo cuerpo",
			wantCall: "text:|solo cuerpo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := tt.payload
			client := &fakeClient{payload: &payload}
			a := NewAnalyzer(client, nil, nil)
			sess := session.New()

			snap, err := a.Analyze(context.Background(), sess, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.preview, snap.Preview)
			assert.Equal(t, tt.snippet, sess.History().Entries()[0].Snippet)
			assert.Equal(t, []string{tt.wantCall}, client.calls)
		})
	}
}

func TestAnalyzeAgainstServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"model unavailable"}`)
	}))
	defer srv.Close()

	a := NewAnalyzer(predict_client.NewClient(srv.URL, 0, nil), nil, nil)
	_, err := a.Analyze(context.Background(), session.New(), Input{Text: "algo"})

	require.Error(t, err)
	assert.Equal(t, "model unavailable", UserMessage(err))
}

func TestUserMessageFallback(t *testing.T) {
	assert.Equal(t, MsgAnalysisFailed, UserMessage(errors.New("dial tcp: refused")))
}
