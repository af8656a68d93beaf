package report

import (
	"fmt"
	"strconv"
	"strings"

	"truthlens/internal/models"
	"truthlens/internal/session"
)

const (
	sectionRule     = "═══════════════════════════════════════════════════"
	noTechnicalInfo = "No hay información técnica disponible en este momento."
)

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func siNo(b bool) string {
	if b {
		return "SÍ"
	}
	return "NO"
}

func section(b *strings.Builder, title string) {
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(sectionRule)
	b.WriteString("\n\n")
}

// TechnicalSummary renders the prediction and debug metadata as the plain
// text block used in the report's technical section.
func TechnicalSummary(snap session.Snapshot) string {
	var b strings.Builder

	if !snap.AnalyzedAt.IsZero() {
		m := snap.Metrics
		section(&b, "ANÁLISIS PREDICTIVO")
		fmt.Fprintf(&b, "• Resultado de la predicción: %s\n", orNA(snap.Result.Prediction))
		fmt.Fprintf(&b, "• Nivel de confianza: %d%%\n", m.ConfidencePercent)
		fmt.Fprintf(&b, "• Probabilidad de fake news: %d%%\n", m.FakePercent)
		fmt.Fprintf(&b, "• Probabilidad de noticia real: %d%%\n", m.TruePercent)
		fmt.Fprintf(&b, "• Etiqueta clasificatoria: %d\n\n", snap.Result.Label)
	}

	d := snap.Debug
	if len(d) > 0 {
		section(&b, "METADATOS TÉCNICOS")
		fmt.Fprintf(&b, "• Método de extracción: %s\n", d.ExtractionMethod())
		fmt.Fprintf(&b, "• Análisis BERT: %s\n", orNA(d.String("bert_says")))
		fmt.Fprintf(&b, "• Decisión final: %s\n", orNA(d.String("final_decision")))
		fmt.Fprintf(&b, "• Umbral aplicado: %s\n", orNA(d.String("threshold_used")))
		fmt.Fprintf(&b, "• Confianza de decisión: %s\n", orNA(d.String("decision_confidence")))
		fmt.Fprintf(&b, "• Calibración aplicada: %s\n", siNo(d.Bool("calibration_applied")))
		if rec := d.String("recommendation"); rec != "" {
			fmt.Fprintf(&b, "• Recomendación: %s\n", rec)
		}

		b.WriteString("\n")
		section(&b, "ESTADÍSTICAS DEL CONTENIDO")
		fmt.Fprintf(&b, "• Longitud del título: %d caracteres\n", d.Int("title_length"))
		fmt.Fprintf(&b, "• Longitud del contenido: %d caracteres\n", d.Int("text_length"))
		fmt.Fprintf(&b, "• Longitud total combinada: %d caracteres\n", d.Int("combined_length"))

		if _, ok := d["truncation_applied"]; ok {
			b.WriteString("\n")
			section(&b, "PROCESAMIENTO APLICADO")
			fmt.Fprintf(&b, "• Truncado aplicado: %s\n", siNo(d.Bool("truncation_applied")))
			fmt.Fprintf(&b, "• Longitud original: %s\n", orNA(d.String("original_content_length")))
			fmt.Fprintf(&b, "• Longitud truncada: %s\n", orNA(d.String("truncated_content_length")))
			if opt := d.String("optimization_applied"); opt != "" {
				fmt.Fprintf(&b, "• Optimización: %s\n", opt)
			}
		}

		if preview := d.String("text_preview"); preview != "" {
			b.WriteString("\n")
			section(&b, "EXTRACCIÓN OCR")
			b.WriteString(preview)
			b.WriteString("\n")
		}
	}

	if b.Len() == 0 {
		return noTechnicalInfo
	}
	return b.String()
}

// PanelItem is one label/value row of the debug panel
type PanelItem struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// PanelSection groups debug panel rows under a heading
type PanelSection struct {
	Title string      `json:"title"`
	Items []PanelItem `json:"items"`
}

// DebugPanel builds the on-screen debug sections for snap.
func DebugPanel(snap session.Snapshot) []PanelSection {
	d := snap.Debug
	m := snap.Metrics
	method := d.ExtractionMethod()

	titleLen := d.Int("title_length")
	textLen := d.Int("text_length")

	sections := []PanelSection{
		{
			Title: "Resultados del Modelo",
			Items: []PanelItem{
				{"Predicción", orNA(snap.Result.Prediction)},
				{"Confianza", fmt.Sprintf("%d%%", m.ConfidencePercent)},
				{"Probabilidad Fake", fmt.Sprintf("%d%%", m.FakePercent)},
			},
		},
		{
			Title: "Análisis Técnico",
			Items: []PanelItem{
				{"BERT dice", orNA(d.String("bert_says"))},
				{"Decisión final", orNA(d.String("final_decision"))},
				{"Umbral usado", orNA(d.String("threshold_used"))},
			},
		},
		{
			Title: "Métricas del Contenido",
			Items: []PanelItem{
				{"Título", groupThousands(titleLen)},
				{"Contenido", groupThousands(textLen)},
				{"Total", groupThousands(titleLen + textLen)},
			},
		},
		methodSection(d, method),
	}

	if rec := d.String("recommendation"); rec != "" {
		sections = append(sections, PanelSection{
			Title: "Recomendación",
			Items: []PanelItem{{"", rec}},
		})
	}
	return sections
}

func methodSection(d models.DebugMetadata, method string) PanelSection {
	switch method {
	case models.ExtractionURL:
		truncated := "No"
		if d.Bool("truncation_applied") {
			truncated = "Sí"
		}
		return PanelSection{
			Title: "Análisis por URL",
			Items: []PanelItem{
				{"Contenido original", groupThousands(d.Int("original_content_length")) + " caracteres"},
				{"Optimizado a", groupThousands(d.Int("truncated_content_length")) + " caracteres"},
				{"Truncado", truncated},
			},
		}
	case models.ExtractionOCR:
		return PanelSection{
			Title: "Análisis por OCR",
			Items: []PanelItem{
				{"Método", "OCR.space API"},
				{"Texto extraído", groupThousands(d.Int("text_length")) + " caracteres"},
			},
		}
	case models.ExtractionFile:
		return PanelSection{
			Title: "Análisis por Archivo",
			Items: []PanelItem{
				{"Procesamiento", "Separación automática de título y contenido"},
			},
		}
	}
	return PanelSection{
		Title: "Análisis Manual",
		Items: []PanelItem{
			{"Tipo", "Texto ingresado directamente"},
			{"Separación", "Título y contenido procesados por separado"},
		},
	}
}

// groupThousands formats n with '.' as thousands separator (es-ES).
func groupThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var b strings.Builder
	pre := len(s) % 3
	if pre > 0 {
		b.WriteString(s[:pre])
	}
	for i := pre; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
