package report

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTMLSections(t *testing.T) {
	now := time.Date(2026, 10, 18, 14, 5, 0, 0, time.UTC)
	doc := NewDocument(fakeSnapshot(), DefaultOptions(), "TL-20261018-ABC123", now)

	html, err := RenderHTML(doc)
	require.NoError(t, err)

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "TL-20261018-ABC123", dom.Find("#report-id").Text())
	assert.Equal(t, "18 de octubre de 2026, 14:05", dom.Find("#report-date").Text())
	assert.Equal(t, "FALSO", dom.Find(".badge").Text())
	assert.Equal(t, "88%", dom.Find("#confidence").Text())

	var headings []string
	dom.Find("h2").Each(func(_ int, s *goquery.Selection) {
		headings = append(headings, s.Text())
	})
	assert.Equal(t, []string{
		"Resumen Ejecutivo",
		"Contenido Verificado",
		"Especificaciones Técnicas",
		"Autorización y Responsabilidad",
		"Aviso Legal y Limitaciones",
	}, headings)

	assert.Contains(t, dom.Find("#technical pre").Text(), "ANÁLISIS PREDICTIVO")
	assert.Contains(t, dom.Find(".doc-footer").Text(), "Confidencialidad: Uso Interno")
	assert.Equal(t, "Director de Análisis de Credibilidad", dom.Find(".signature .role").First().Text())
}

func TestRenderHTMLEscapesContent(t *testing.T) {
	snap := fakeSnapshot()
	snap.Preview = `<script>alert("x")</script><img src=x onerror=1>`
	doc := NewDocument(snap, DefaultOptions(), "TL-1", time.Now())

	html, err := RenderHTML(doc)
	require.NoError(t, err)

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	assert.Zero(t, dom.Find("script").Length())
	assert.Zero(t, dom.Find("img").Length())
	assert.Equal(t, snap.Preview, dom.Find("#content pre").Text())
}

func TestNewDocumentBlankPreview(t *testing.T) {
	snap := fakeSnapshot()
	snap.Preview = "  "
	doc := NewDocument(snap, DefaultOptions(), "TL-1", time.Now())
	assert.Equal(t, "Contenido analizado", doc.Preview)
}

func TestNewReportID(t *testing.T) {
	now := time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC)
	a, b := NewReportID(now), NewReportID(now)
	assert.Regexp(t, `^TL-20261018-[0-9A-F]{6}$`, a)
	assert.NotEqual(t, a, b)
}
