package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"truthlens/internal/report"
)

const (
	deviceScale    = 2.0
	viewportHeight = 800
)

// awaitImages resolves once every <img> has either loaded or failed.
const awaitImages = `Promise.all(
  Array.from(document.images)
    .filter(img => !img.complete)
    .map(img => new Promise(resolve => { img.onload = img.onerror = resolve; }))
).then(() => document.fonts ? document.fonts.ready : null).then(() => true)`

var _ report.SurfaceFactory = (*Browser)(nil)

// Browser is a shared headless Chrome. Every report gets its own tab.
type Browser struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger

	startOnce sync.Once
	startErr  error
}

// NewBrowser prepares a Chrome allocator. The process starts on first Open.
func NewBrowser(headless bool, chromePath string, logger *zap.Logger) *Browser {
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("hide-scrollbars", true),
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(logger.Sugar().Debugf))

	return &Browser{
		ctx: ctx,
		cancel: func() {
			cancelCtx()
			cancelAlloc()
		},
		logger: logger,
	}
}

// Close shuts the browser down.
func (b *Browser) Close() {
	b.cancel()
}

// Open starts a new tab.
func (b *Browser) Open(ctx context.Context) (report.Surface, error) {
	b.startOnce.Do(func() {
		b.startErr = chromedp.Run(b.ctx)
		if b.startErr == nil {
			b.logger.Info("Chrome started")
		}
	})
	if b.startErr != nil {
		return nil, fmt.Errorf("start chrome: %w", b.startErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(b.ctx)
	stop := context.AfterFunc(ctx, cancel)
	return &tab{ctx: tabCtx, cancel: cancel, stop: stop}, nil
}

type tab struct {
	ctx    context.Context
	cancel context.CancelFunc
	stop   func() bool
}

// Render lays html out at width CSS pixels and returns a full-page bitmap at
// device scale 2.
func (t *tab) Render(ctx context.Context, html string, width int) (image.Image, error) {
	stop := context.AfterFunc(ctx, t.cancel)
	defer stop()

	var (
		shot   []byte
		loaded bool
	)
	err := chromedp.Run(t.ctx,
		chromedp.EmulateViewport(int64(width), viewportHeight, chromedp.EmulateScale(deviceScale)),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.Evaluate(awaitImages, &loaded, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
		chromedp.FullScreenshot(&shot, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}

func (t *tab) Close() error {
	t.stop()
	t.cancel()
	return nil
}
