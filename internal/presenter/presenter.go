// Package presenter maps a prediction onto one of five display tiers.
package presenter

import (
	"math"

	"truthlens/internal/models"
)

// Tier identifies a severity/credibility bucket
type Tier int

const (
	TierDisinformation Tier = iota + 1 // Posible Desinformación
	TierLikelyFalse                    // Probablemente Falso
	TierNeedsCheck                     // Requiere Verificación
	TierReliable                       // Contenido Confiable
	TierPartlyReliable                 // Parcialmente Confiable
)

// Severity is the colour family of a tier
type Severity string

const (
	SeverityRed    Severity = "red"
	SeverityOrange Severity = "orange"
	SeverityYellow Severity = "yellow"
	SeverityGreen  Severity = "green"
	SeverityBlue   Severity = "blue"
)

// Style is the fixed presentation of a tier.
type Style struct {
	Tier        Tier
	Title       string
	Badge       string
	Severity    Severity
	Description string
	// Color is the on-screen text colour, Gradient the gauge fill.
	Color    string
	Gradient [2]string
	// Accent is the muted colour used for report headings and the badge.
	Accent string
	// HistoryTitle and HistoryStatus label the tier in the history list.
	HistoryTitle  string
	HistoryStatus string
}

var styles = map[Tier]Style{
	TierDisinformation: {
		Tier:          TierDisinformation,
		Title:         "Posible Desinformación",
		Badge:         "FALSO",
		Severity:      SeverityRed,
		Description:   "El análisis detectó múltiples indicadores de desinformación. Se recomienda extrema precaución.",
		Color:         "#f87171",
		Gradient:      [2]string{"#ef4444", "#dc2626"},
		Accent:        "#c0392b",
		HistoryTitle:  "Posible desinformación",
		HistoryStatus: "fake",
	},
	TierLikelyFalse: {
		Tier:          TierLikelyFalse,
		Title:         "Probablemente Falso",
		Badge:         "SOSPECHOSO",
		Severity:      SeverityOrange,
		Description:   "El contenido presenta características típicas de desinformación. Verificar con fuentes confiables.",
		Color:         "#fb923c",
		Gradient:      [2]string{"#f97316", "#ea580c"},
		Accent:        "#e67e22",
		HistoryTitle:  "Probablemente falso",
		HistoryStatus: "sospechoso",
	},
	TierNeedsCheck: {
		Tier:          TierNeedsCheck,
		Title:         "Requiere Verificación",
		Badge:         "DUDOSO",
		Severity:      SeverityYellow,
		Description:   "El modelo detectó señales mixtas. Se recomienda verificar con fuentes adicionales.",
		Color:         "#facc15",
		Gradient:      [2]string{"#f59e0b", "#d97706"},
		Accent:        "#d35400",
		HistoryTitle:  "Requiere verificación",
		HistoryStatus: "dudoso",
	},
	TierReliable: {
		Tier:          TierReliable,
		Title:         "Contenido Confiable",
		Badge:         "VERIFICADO",
		Severity:      SeverityGreen,
		Description:   "El análisis indica que este contenido presenta características de información confiable y verificable.",
		Color:         "#4ade80",
		Gradient:      [2]string{"#10b981", "#059669"},
		Accent:        "#27ae60",
		HistoryTitle:  "Noticia verificada",
		HistoryStatus: "verificado",
	},
	TierPartlyReliable: {
		Tier:          TierPartlyReliable,
		Title:         "Parcialmente Confiable",
		Badge:         "REVISAR",
		Severity:      SeverityBlue,
		Description:   "El contenido parece legítimo pero presenta algunas inconsistencias menores.",
		Color:         "#60a5fa",
		Gradient:      [2]string{"#3b82f6", "#2563eb"},
		Accent:        "#2980b9",
		HistoryTitle:  "Parcialmente confiable",
		HistoryStatus: "revisar",
	},
}

// StyleFor returns the presentation of t. Unknown tiers fall back to TierReliable.
func StyleFor(t Tier) Style {
	if s, ok := styles[t]; ok {
		return s
	}
	return styles[TierReliable]
}

// PresentationState is what the UI shows for the current result.
type PresentationState struct {
	Tier         Tier     `json:"tier"`
	Title        string   `json:"title"`
	Badge        string   `json:"badge"`
	Severity     Severity `json:"severity"`
	Color        string   `json:"color"`
	Accent       string   `json:"accent"`
	Description  string   `json:"description"`
	GaugePercent int      `json:"gauge_percent"`
	FakePercent  int      `json:"fake_percent"`
	TruePercent  int      `json:"true_percent"`
}

// Percent converts a unit probability into a rounded percentage in [0,100].
// Halves round up.
func Percent(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 100
	}
	return int(math.Floor(v*100 + 0.5))
}

// TierFor selects the tier from the fake percentage and the prediction branch.
func TierFor(fakePercent int, fake bool) Tier {
	if fake {
		switch {
		case fakePercent >= 90:
			return TierDisinformation
		case fakePercent >= 60:
			return TierLikelyFalse
		default:
			return TierNeedsCheck
		}
	}
	if 100-fakePercent >= 80 {
		return TierReliable
	}
	return TierPartlyReliable
}

// Classify maps a prediction onto its presentation. The tier is chosen from
// the fake probability while the gauge is filled from the confidence.
func Classify(p models.PredictionResult) PresentationState {
	p = p.Normalized()
	fakePercent := Percent(p.Probability)
	style := StyleFor(TierFor(fakePercent, p.IsFake()))

	return PresentationState{
		Tier:         style.Tier,
		Title:        style.Title,
		Badge:        style.Badge,
		Severity:     style.Severity,
		Color:        style.Color,
		Accent:       style.Accent,
		Description:  style.Description,
		GaugePercent: Percent(p.Confidence),
		FakePercent:  fakePercent,
		TruePercent:  100 - fakePercent,
	}
}

// Metrics are the secondary numbers shown next to the result card.
type Metrics struct {
	FakePercent       int     `json:"fake_percent"`
	TruePercent       int     `json:"true_percent"`
	ConfidencePercent int     `json:"confidence_percent"`
	MLScore           float64 `json:"ml_score"`
	Sentiment         string  `json:"sentiment"`
	RiskLevel         string  `json:"risk_level"`
}

// ComputeMetrics derives the metric panel values for p.
func ComputeMetrics(p models.PredictionResult) Metrics {
	p = p.Normalized()
	fakePercent := Percent(p.Probability)
	m := Metrics{
		FakePercent:       fakePercent,
		TruePercent:       100 - fakePercent,
		ConfidencePercent: Percent(p.Confidence),
		MLScore:           p.Probability,
		Sentiment:         "Positivo",
		RiskLevel:         "Bajo",
	}
	if p.Label == 1 {
		m.Sentiment = "Negativo"
		m.RiskLevel = "Alto"
	}
	return m
}
