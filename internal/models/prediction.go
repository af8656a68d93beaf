package models

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Prediction tags returned by the analysis service
const (
	PredictionFake    = "Fake"
	PredictionReal    = "Real"
	PredictionUnknown = "Unknown"
)

// Extraction methods reported in debug_info.extraction_method
const (
	ExtractionURL    = "URL Scraping"
	ExtractionOCR    = "OCR"
	ExtractionFile   = "Archivo subido"
	ExtractionManual = "Texto Manual"
)

// InputMode is the way the analysed content was supplied
type InputMode string

const (
	ModeText  InputMode = "text"
	ModeFile  InputMode = "file"
	ModeImage InputMode = "image"
	ModeURL   InputMode = "url"
)

// PredictionResult is the classification returned for one analysis request.
// Probability is P(fake); Label 1 means fake.
type PredictionResult struct {
	Probability float64 `json:"probability"`
	Label       int     `json:"label"`
	Prediction  string  `json:"prediction"`
	Confidence  float64 `json:"confidence"`
}

// Normalized returns a copy with out-of-range values replaced by defaults.
func (p PredictionResult) Normalized() PredictionResult {
	p.Probability = clampUnit(p.Probability)
	p.Confidence = clampUnit(p.Confidence)
	if strings.TrimSpace(p.Prediction) == "" {
		p.Prediction = PredictionUnknown
	}
	return p
}

// IsFake reports whether the result falls into the fake branch.
func (p PredictionResult) IsFake() bool {
	return p.Prediction == PredictionFake || p.Label == 1
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ArticleData carries the scraped article fields returned by /analyze_url
type ArticleData struct {
	Title string `json:"title"`
}

// AnalysisPayload is the JSON body returned by /predict, /ocr_predict and /analyze_url
type AnalysisPayload struct {
	Probability      float64       `json:"probability"`
	Label            *int          `json:"label"`
	Prediction       string        `json:"prediction"`
	Confidence       float64       `json:"confidence"`
	DebugInfo        DebugMetadata `json:"debug_info,omitempty"`
	ExtractedPreview string        `json:"extracted_preview,omitempty"`
	Text             string        `json:"text,omitempty"`
	ArticleData      *ArticleData  `json:"article_data,omitempty"`
}

// Result extracts the prediction part of the payload.
func (p AnalysisPayload) Result() PredictionResult {
	label := 0
	if p.Label != nil {
		label = *p.Label
	}
	return PredictionResult{
		Probability: p.Probability,
		Label:       label,
		Prediction:  p.Prediction,
		Confidence:  p.Confidence,
	}.Normalized()
}

// DebugMetadata is the server supplied debug_info object. Every field is optional.
type DebugMetadata map[string]any

// Has reports whether key is present and not null.
func (d DebugMetadata) Has(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}

// String returns the value for key formatted as text, or "" when absent.
func (d DebugMetadata) String(key string) string {
	v, ok := d[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// Int returns the numeric value for key, or 0 when absent or not numeric.
func (d DebugMetadata) Int(key string) int {
	v, ok := d[key]
	if !ok || v == nil {
		return 0
	}
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0
		}
		return int(t)
	case int:
		return t
	case int64:
		return int(t)
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0
		}
		return int(n)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

// Bool returns the truthiness of key using the loose rules of the web client.
func (d DebugMetadata) Bool(key string) bool {
	v, ok := d[key]
	if !ok || v == nil {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case string:
		return t != ""
	}
	return true
}

// ExtractionMethod returns extraction_method, defaulting to manual text.
func (d DebugMetadata) ExtractionMethod() string {
	if m := d.String("extraction_method"); m != "" {
		return m
	}
	return ExtractionManual
}

// Clone returns a shallow copy so callers cannot mutate a committed snapshot.
func (d DebugMetadata) Clone() DebugMetadata {
	if d == nil {
		return DebugMetadata{}
	}
	out := make(DebugMetadata, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
