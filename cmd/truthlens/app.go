package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"truthlens/internal/clipboard"
	"truthlens/internal/config"
	"truthlens/internal/predict_client"
	"truthlens/internal/render"
	"truthlens/internal/report"
	"truthlens/internal/service"
	"truthlens/internal/session"
	"truthlens/internal/telegram_bot"
	"truthlens/internal/ui"
)

// app wires the components shared by every command
type app struct {
	client   *predict_client.Client
	analyzer *service.Analyzer
	session  *session.Session
	builder  *report.Builder
	browser  *render.Browser
	bot      *telegram_bot.Bot
	sinks    []report.Sink
	warnings []string
}

func newApp(cfg *config.Config, logger *zap.Logger, indicator service.Indicator) (*app, error) {
	a := &app{
		client:  predict_client.NewClient(cfg.API.BaseURL, cfg.APITimeout(), logger),
		session: session.New(),
	}
	a.analyzer = service.NewAnalyzer(a.client, indicator, logger)

	var surfaces report.SurfaceFactory
	if cfg.Report.Enabled {
		a.browser = render.NewBrowser(cfg.Report.Headless, cfg.Report.ChromePath, logger)
		surfaces = a.browser
	}
	a.builder = report.NewBuilder(surfaces, report.Options{
		Variant:       report.Variant(cfg.Report.Variant),
		Signatory:     cfg.Report.Signatory,
		SignatoryRole: cfg.Report.SignatoryRole,
		Host:          cfg.Report.Host,
		Client:        "truthlens/" + version,
	}, logger)

	if cfg.Share.Clipboard {
		if clipboard.Available() {
			a.sinks = append(a.sinks, clipboard.New())
		} else {
			a.warnings = append(a.warnings, "El portapapeles no está disponible en este sistema.")
		}
	}

	bot, err := telegram_bot.NewBot(cfg, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	if bot != nil {
		a.bot = bot
		a.sinks = append(a.sinks, bot)
	}

	return a, nil
}

// warn prints the capability warnings collected while wiring.
func (a *app) warn(w io.Writer, styles ui.Styles) {
	for _, msg := range a.warnings {
		fmt.Fprintln(w, styles.Muted.Render("⚠ "+msg))
	}
}

func (a *app) Close() {
	if a.browser != nil {
		a.browser.Close()
	}
}
