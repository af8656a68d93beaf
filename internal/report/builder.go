package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"truthlens/internal/session"
)

// MsgGenerationFailed is shown when a report cannot be produced
const MsgGenerationFailed = "No se pudo generar el documento PDF. Por favor, intente nuevamente."

// ErrPDFUnavailable means no rendering surface is configured.
var ErrPDFUnavailable = errors.New("pdf generation is not available")

// GenerationError wraps any failure while building a report
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("report generation failed at %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Surface is an off-screen renderer that rasterises HTML.
type Surface interface {
	Render(ctx context.Context, html string, width int) (image.Image, error)
	Close() error
}

// SurfaceFactory opens a fresh Surface per report.
type SurfaceFactory interface {
	Open(ctx context.Context) (Surface, error)
}

// Variant selects the report decoration
type Variant string

const (
	VariantStandard     Variant = "standard"
	VariantProfessional Variant = "professional"
)

// Options configure a Builder
type Options struct {
	Layout        Layout
	LogicalWidth  int
	Variant       Variant
	Watermark     string
	Signatory     string
	SignatoryRole string
	Host          string
	Client        string
}

// DefaultOptions returns the professional A4 layout.
func DefaultOptions() Options {
	return Options{
		Layout:        A4,
		LogicalWidth:  LogicalWidth,
		Variant:       VariantProfessional,
		Watermark:     "TRUTHLENS",
		Signatory:     "Equipo de Verificación TruthLens",
		SignatoryRole: "Director de Análisis de Credibilidad",
		Host:          "truthlens",
		Client:        "truthlens-cli",
	}
}

const (
	watermarkOpacity = 0.15
	watermarkAngle   = -45.0
	watermarkSize    = 90.0
	footerSize       = 7.0
	footerInset      = 40.0
	footerOffset     = 15.0
)

// Artifact is a finished PDF
type Artifact struct {
	Filename string
	ReportID string
	Pages    int
	Data     []byte
}

// Builder renders snapshots into paginated PDF reports
type Builder struct {
	surfaces SurfaceFactory
	opts     Options
	logger   *zap.Logger
	now      func() time.Time
	compress bool
}

// NewBuilder creates a Builder. A nil factory yields ErrPDFUnavailable on Build.
func NewBuilder(surfaces SurfaceFactory, opts Options, logger *zap.Logger) *Builder {
	def := DefaultOptions()
	if opts.Layout == (Layout{}) {
		opts.Layout = def.Layout
	}
	if opts.LogicalWidth <= 0 {
		opts.LogicalWidth = def.LogicalWidth
	}
	if opts.Variant == "" {
		opts.Variant = def.Variant
	}
	if opts.Watermark == "" {
		opts.Watermark = def.Watermark
	}
	if opts.Signatory == "" {
		opts.Signatory = def.Signatory
	}
	if opts.SignatoryRole == "" {
		opts.SignatoryRole = def.SignatoryRole
	}
	if opts.Host == "" {
		opts.Host = def.Host
	}
	if opts.Client == "" {
		opts.Client = def.Client
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{surfaces: surfaces, opts: opts, logger: logger, now: time.Now, compress: true}
}

// Filename returns the report file name for t.
func Filename(t time.Time) string {
	return "TruthLens_Report_" + t.Format("20060102_1504") + ".pdf"
}

// Build renders snap to a PDF. The surface is always closed, and on failure
// no artifact is returned.
func (b *Builder) Build(ctx context.Context, snap session.Snapshot) (*Artifact, error) {
	if b == nil || b.surfaces == nil {
		return nil, &GenerationError{Stage: "setup", Err: ErrPDFUnavailable}
	}

	now := b.now()
	id := NewReportID(now)
	doc := NewDocument(snap, b.opts, id, now)

	html, err := RenderHTML(doc)
	if err != nil {
		return nil, &GenerationError{Stage: "template", Err: err}
	}

	surface, err := b.surfaces.Open(ctx)
	if err != nil {
		return nil, &GenerationError{Stage: "open surface", Err: err}
	}
	defer func() {
		if cerr := surface.Close(); cerr != nil {
			b.logger.Warn("Failed to close render surface", zap.Error(cerr))
		}
	}()

	bitmap, err := surface.Render(ctx, html, b.opts.LogicalWidth)
	if err != nil {
		return nil, &GenerationError{Stage: "render", Err: err}
	}

	width := bitmap.Bounds().Dx()
	bands, err := Paginate(bitmap, b.opts.Layout.BandHeight(width))
	if err != nil {
		return nil, &GenerationError{Stage: "paginate", Err: err}
	}

	data, err := b.assemble(bands, width, snap, now)
	if err != nil {
		return nil, &GenerationError{Stage: "assemble", Err: err}
	}

	b.logger.Info("Report generated",
		zap.String("report_id", id),
		zap.Int("pages", len(bands)),
		zap.Int("bytes", len(data)))

	return &Artifact{Filename: Filename(now), ReportID: id, Pages: len(bands), Data: data}, nil
}

func (b *Builder) assemble(bands []Band, bitmapWidth int, snap session.Snapshot, now time.Time) ([]byte, error) {
	l := b.opts.Layout
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: l.PageWidth, Ht: l.PageHeight},
	})
	pdf.SetCompression(b.compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	b.metadata(pdf, snap, now)

	scale := l.ImageWidth / float64(bitmapWidth)
	imgOpts := fpdf.ImageOptions{ImageType: "PNG"}
	for _, band := range bands {
		pdf.AddPage()

		var buf bytes.Buffer
		if err := png.Encode(&buf, band.Image); err != nil {
			return nil, fmt.Errorf("encode band %d: %w", band.Index, err)
		}
		name := fmt.Sprintf("band-%d", band.Index)
		pdf.RegisterImageOptionsReader(name, imgOpts, &buf)
		pdf.ImageOptions(name, l.Margin, l.Margin, l.ImageWidth, float64(band.Rect.Dy())*scale, false, imgOpts, 0, "")

		if b.opts.Variant == VariantProfessional {
			b.watermark(pdf, tr)
		}
		b.footer(pdf, tr, band.Index+1, now)

		if err := pdf.Error(); err != nil {
			return nil, err
		}
	}

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return out.Bytes(), nil
}

func (b *Builder) metadata(pdf *fpdf.Fpdf, snap session.Snapshot, now time.Time) {
	title := []rune(snap.Presentation.Title)
	if len(title) > 40 {
		title = title[:40]
	}
	pdf.SetTitle("TruthLens AI - Reporte de Verificación - "+string(title), true)
	pdf.SetSubject("Análisis de credibilidad de contenido digital", true)
	pdf.SetAuthor("TruthLens AI System", true)
	pdf.SetCreator("TruthLens AI Platform", true)
	pdf.SetKeywords("verificación, fake news, análisis, credibilidad, TruthLens", true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
}

func (b *Builder) watermark(pdf *fpdf.Fpdf, tr func(string) string) {
	l := b.opts.Layout
	text := tr(b.opts.Watermark)

	pdf.SetAlpha(watermarkOpacity, "Normal")
	pdf.SetFont("Helvetica", "B", watermarkSize)
	pdf.SetTextColor(44, 62, 80)

	cx, cy := l.PageWidth/2, l.PageHeight/2
	w := pdf.GetStringWidth(text)
	pdf.TransformBegin()
	pdf.TransformRotate(watermarkAngle, cx, cy)
	pdf.Text(cx-w/2, cy+watermarkSize/3, text)
	pdf.TransformEnd()

	pdf.SetAlpha(1, "Normal")
}

func (b *Builder) footer(pdf *fpdf.Fpdf, tr func(string) string, page int, now time.Time) {
	l := b.opts.Layout
	y := l.PageHeight - footerOffset

	pdf.SetFont("Helvetica", "", footerSize)
	pdf.SetTextColor(100, 100, 100)

	center := tr(fmt.Sprintf("TruthLens AI - Reporte de Verificación - Página %d", page))
	pdf.Text((l.PageWidth-pdf.GetStringWidth(center))/2, y, center)

	pdf.Text(footerInset, y, tr("Confidencial - Uso Interno"))

	date := now.Format("02/01/2006")
	pdf.Text(l.PageWidth-footerInset-pdf.GetStringWidth(date), y, date)
}

// Save writes a into dir via a temp file and rename, returning the final path.
func Save(dir string, a *Artifact) (string, error) {
	if a == nil || len(a.Data) == 0 {
		return "", &GenerationError{Stage: "save", Err: errors.New("empty artifact")}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".truthlens-*.pdf.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(a.Data); err != nil {
		tmp.Close()
		cleanup()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return "", fmt.Errorf("close report: %w", err)
	}

	final := filepath.Join(dir, a.Filename)
	if err := os.Rename(tmpName, final); err != nil {
		cleanup()
		return "", fmt.Errorf("rename report: %w", err)
	}
	return final, nil
}
