package render

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chromePath(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"headless-shell", "chromium", "chromium-browser", "google-chrome"} {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	t.Skip("chrome not installed")
	return ""
}

func TestRenderFullPageAtDeviceScale(t *testing.T) {
	b := NewBrowser(true, chromePath(t), nil)
	defer b.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	surface, err := b.Open(ctx)
	require.NoError(t, err)
	defer surface.Close()

	html := `<html><body style="margin:0;width:300px"><div style="height:2000px;background:#c0392b"></div>
<img src="http://127.0.0.1:1/missing.png"></body></html>`
	img, err := surface.Render(ctx, html, 300)
	require.NoError(t, err)

	assert.Equal(t, 600, img.Bounds().Dx())
	assert.GreaterOrEqual(t, img.Bounds().Dy(), 4000)
}

func TestOpenAfterCancel(t *testing.T) {
	b := NewBrowser(true, chromePath(t), nil)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := b.Open(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
