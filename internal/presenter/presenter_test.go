package presenter

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"truthlens/internal/models"
)

func TestClassifyFakeTiers(t *testing.T) {
	for fake := 0; fake <= 100; fake++ {
		p := models.PredictionResult{Probability: float64(fake) / 100, Label: 1, Prediction: models.PredictionFake}
		got := Classify(p)

		switch {
		case fake >= 90:
			assert.Equal(t, "Posible Desinformación", got.Title, "fake=%d", fake)
			assert.Equal(t, "FALSO", got.Badge, "fake=%d", fake)
			assert.Equal(t, SeverityRed, got.Severity)
		case fake >= 60:
			assert.Equal(t, "Probablemente Falso", got.Title, "fake=%d", fake)
			assert.Equal(t, "SOSPECHOSO", got.Badge, "fake=%d", fake)
			assert.Equal(t, SeverityOrange, got.Severity)
		default:
			assert.Equal(t, "Requiere Verificación", got.Title, "fake=%d", fake)
			assert.Equal(t, "DUDOSO", got.Badge, "fake=%d", fake)
			assert.Equal(t, SeverityYellow, got.Severity)
		}
	}
}

func TestClassifyRealTiers(t *testing.T) {
	for truePct := 0; truePct <= 100; truePct++ {
		p := models.PredictionResult{Probability: float64(100-truePct) / 100, Label: 0, Prediction: models.PredictionReal}
		got := Classify(p)

		if truePct >= 80 {
			assert.Equal(t, "Contenido Confiable", got.Title, "true=%d", truePct)
			assert.Equal(t, "VERIFICADO", got.Badge, "true=%d", truePct)
		} else {
			assert.Equal(t, "Parcialmente Confiable", got.Title, "true=%d", truePct)
			assert.Equal(t, "REVISAR", got.Badge, "true=%d", truePct)
		}
	}
}

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		name  string
		in    models.PredictionResult
		title string
		badge string
	}{
		{
			name:  "strong fake",
			in:    models.PredictionResult{Probability: 0.95, Label: 1, Prediction: "Fake"},
			title: "Posible Desinformación",
			badge: "FALSO",
		},
		{
			name:  "clearly real",
			in:    models.PredictionResult{Probability: 0.10, Label: 0, Prediction: "Real"},
			title: "Contenido Confiable",
			badge: "VERIFICADO",
		},
		{
			name:  "weak real",
			in:    models.PredictionResult{Probability: 0.55, Label: 0, Prediction: "Real"},
			title: "Parcialmente Confiable",
			badge: "REVISAR",
		},
		{
			name:  "label wins over unknown tag",
			in:    models.PredictionResult{Probability: 0.70, Label: 1, Prediction: "Unknown"},
			title: "Probablemente Falso",
			badge: "SOSPECHOSO",
		},
		{
			name:  "tag wins over real label",
			in:    models.PredictionResult{Probability: 0.20, Label: 0, Prediction: "Fake"},
			title: "Requiere Verificación",
			badge: "DUDOSO",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.in)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.badge, got.Badge)
		})
	}
}

func TestClassifyGaugeUsesConfidence(t *testing.T) {
	got := Classify(models.PredictionResult{Probability: 0.95, Label: 1, Prediction: "Fake", Confidence: 0.42})

	assert.Equal(t, 42, got.GaugePercent)
	assert.Equal(t, 95, got.FakePercent)
	assert.Equal(t, 5, got.TruePercent)
}

func TestClassifyIsIdempotent(t *testing.T) {
	in := models.PredictionResult{Probability: 0.634, Label: 1, Prediction: "Fake", Confidence: 0.81}

	first := Classify(in)
	second := Classify(in)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("Classify is not deterministic (-first +second):\n%s", diff)
	}
}

func TestClassifyDegradesOnMissingInput(t *testing.T) {
	got := Classify(models.PredictionResult{Probability: math.NaN(), Confidence: -3})

	assert.Equal(t, TierReliable, got.Tier)
	assert.Equal(t, 0, got.FakePercent)
	assert.Equal(t, 0, got.GaugePercent)

	got = Classify(models.PredictionResult{Probability: 7, Label: 1})
	assert.Equal(t, 100, got.FakePercent)
	assert.Equal(t, "FALSO", got.Badge)
}

func TestPercentRoundsHalfUp(t *testing.T) {
	assert.Equal(t, 63, Percent(0.625))
	assert.Equal(t, 88, Percent(0.875))
	assert.Equal(t, 57, Percent(0.57))
	assert.Equal(t, 0, Percent(0))
	assert.Equal(t, 100, Percent(1))
}

func TestComputeMetrics(t *testing.T) {
	m := ComputeMetrics(models.PredictionResult{Probability: 0.25, Label: 1, Confidence: 0.9})

	assert.Equal(t, Metrics{
		FakePercent:       25,
		TruePercent:       75,
		ConfidencePercent: 90,
		MLScore:           0.25,
		Sentiment:         "Negativo",
		RiskLevel:         "Alto",
	}, m)
}
