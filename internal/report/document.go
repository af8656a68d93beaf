package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/google/uuid"

	"truthlens/internal/session"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// LogicalWidth is the CSS width the report document is laid out at.
const LogicalWidth = 700

// Document is the data rendered into the report HTML
type Document struct {
	ReportID      string
	Title         string
	Date          string
	Badge         string
	Confidence    int
	ResultTitle   string
	Description   string
	Preview       string
	Technical     string
	Accent        string
	Signatory     string
	SignatoryRole string
	Host          string
	Client        string
	Width         int
}

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate formats t as a long Spanish date, e.g. "18 de octubre de 2026, 14:05".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d, %02d:%02d", t.Day(), monthsES[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}

// NewReportID returns an ID of the form TL-YYYYMMDD-XXXXXX.
func NewReportID(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("TL-%s-%s", t.Format("20060102"), suffix)
}

// NewDocument builds the document for snap.
func NewDocument(snap session.Snapshot, opts Options, id string, now time.Time) Document {
	p := snap.Presentation
	preview := snap.Preview
	if strings.TrimSpace(preview) == "" {
		preview = "Contenido analizado"
	}
	return Document{
		ReportID:      id,
		Title:         "Reporte de Verificación " + id,
		Date:          FormatDate(now),
		Badge:         p.Badge,
		Confidence:    p.GaugePercent,
		ResultTitle:   p.Title,
		Description:   p.Description,
		Preview:       preview,
		Technical:     TechnicalSummary(snap),
		Accent:        p.Accent,
		Signatory:     opts.Signatory,
		SignatoryRole: opts.SignatoryRole,
		Host:          opts.Host,
		Client:        opts.Client,
		Width:         opts.LogicalWidth,
	}
}

// RenderHTML executes the report template for doc.
func RenderHTML(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("render report template: %w", err)
	}
	return buf.String(), nil
}
