package ui

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"truthlens/internal/history"
	"truthlens/internal/presenter"
	"truthlens/internal/report"
	"truthlens/internal/session"
)

const gaugeWidth = 40

// RenderResult draws the result card for snap.
func RenderResult(s Styles, snap session.Snapshot) string {
	p := snap.Presentation
	color := TierColor(p.Tier)

	gauge := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithoutPercentage(),
		progress.WithWidth(gaugeWidth),
	)

	var b strings.Builder
	b.WriteString(s.Badge.Background(color).Render(p.Badge))
	b.WriteString("  ")
	b.WriteString(s.Title.Foreground(color).Render(p.Title))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %d%%\n", gauge.ViewAs(float64(p.GaugePercent)/100), p.GaugePercent)
	b.WriteString(s.Body.Width(gaugeWidth + 10).Render(p.Description))
	b.WriteString("\n\n")
	b.WriteString(metricsLine(s, snap.Metrics))

	return s.Card.BorderForeground(color).Render(b.String())
}

func metricsLine(s Styles, m presenter.Metrics) string {
	return s.Muted.Render(fmt.Sprintf("Fake %d%% · Real %d%% · Riesgo %s · Sentimiento %s",
		m.FakePercent, m.TruePercent, m.RiskLevel, m.Sentiment))
}

// RenderHistory lists the analysis history, newest first.
func RenderHistory(s Styles, entries []history.Entry) string {
	if len(entries) == 0 {
		return s.Muted.Render("Sin análisis recientes.")
	}

	var b strings.Builder
	b.WriteString(s.Section.Render("Historial"))
	b.WriteString("\n")
	for _, e := range entries {
		color := TierColor(e.Tier)
		fmt.Fprintf(&b, "%s %s %s\n",
			lipgloss.NewStyle().Foreground(color).Render("●"),
			s.Muted.Render(e.RecordedAt.Format("15:04")),
			html.UnescapeString(e.Snippet))
		fmt.Fprintf(&b, "    %s\n", s.Muted.Render(fmt.Sprintf("%s · %d%%", e.Status, e.Probability)))
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderDebug draws the debug panel sections.
func RenderDebug(s Styles, panel []report.PanelSection) string {
	var b strings.Builder
	for _, sec := range panel {
		b.WriteString(s.Section.Render(sec.Title))
		b.WriteString("\n")
		for _, it := range sec.Items {
			if it.Label == "" {
				fmt.Fprintf(&b, "  %s\n", it.Value)
				continue
			}
			fmt.Fprintf(&b, "  %s%s\n", s.Label.Render(it.Label+":"), it.Value)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
