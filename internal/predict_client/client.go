package predict_client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"truthlens/internal/models"
)

// GenericServerMessage is shown when the service gives no error text
const GenericServerMessage = "Error en el servidor"

// ServerError is returned for non-2xx responses and undecodable bodies
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("analysis service returned status %d: %s", e.StatusCode, e.Message)
}

// Client is a client for the analysis service API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// TextRequest is the JSON body for manual text analysis
type TextRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// URLRequest is the JSON body for URL analysis
type URLRequest struct {
	URL string `json:"url"`
}

type errorBody struct {
	Error string `json:"error"`
}

// NewClient creates a new analysis service client. A zero timeout leaves
// requests bounded only by ctx.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// PredictText classifies a manually entered title and body
func (c *Client) PredictText(ctx context.Context, title, text string) (*models.AnalysisPayload, error) {
	jsonData, err := json.Marshal(TextRequest{Title: title, Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.postJSON(ctx, "/predict", jsonData)
}

// PredictFile uploads a document to /predict
func (c *Client) PredictFile(ctx context.Context, filename string, r io.Reader) (*models.AnalysisPayload, error) {
	return c.postFile(ctx, "/predict", "file", filename, r)
}

// PredictImage uploads an image to /ocr_predict
func (c *Client) PredictImage(ctx context.Context, filename string, r io.Reader) (*models.AnalysisPayload, error) {
	return c.postFile(ctx, "/ocr_predict", "image", filename, r)
}

// AnalyzeURL asks the service to scrape and classify an article
func (c *Client) AnalyzeURL(ctx context.Context, url string) (*models.AnalysisPayload, error) {
	jsonData, err := json.Marshal(URLRequest{URL: url})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.postJSON(ctx, "/analyze_url", jsonData)
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte) (*models.AnalysisPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) postFile(ctx context.Context, path, field, filename string, r io.Reader) (*models.AnalysisPayload, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", field, err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	header.Set("Content-Type", mimetype.Detect(data).String())

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write multipart part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*models.AnalysisPayload, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Analysis service responded",
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := GenericServerMessage
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && strings.TrimSpace(eb.Error) != "" {
			msg = eb.Error
		}
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: msg}
	}

	var result models.AnalysisPayload
	if err := json.Unmarshal(raw, &result); err != nil {
		c.logger.Warn("Malformed analysis response", zap.String("path", req.URL.Path), zap.Error(err))
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: GenericServerMessage}
	}

	return &result, nil
}

// Examples loads the example catalogue, falling back to the embedded pair on
// any failure.
func (c *Client) Examples(ctx context.Context) models.Examples {
	examples, err := c.fetchExamples(ctx)
	if err != nil {
		c.logger.Warn("Failed to load examples, using embedded fallback", zap.Error(err))
		return models.FallbackExamples
	}
	return *examples
}

func (c *Client) fetchExamples(ctx context.Context) (*models.Examples, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/static/examples.json", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("examples returned status %d", resp.StatusCode)
	}

	var result models.Examples
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode examples: %w", err)
	}
	if len(result.All()) == 0 {
		return nil, errors.New("examples document is empty")
	}
	return &result, nil
}

// RandomExample picks one example uniformly from both lists.
func RandomExample(examples models.Examples, rng *rand.Rand) (models.Example, bool) {
	all := examples.All()
	if len(all) == 0 {
		return models.Example{}, false
	}
	if rng == nil {
		return all[rand.Intn(len(all))], true
	}
	return all[rng.Intn(len(all))], true
}
