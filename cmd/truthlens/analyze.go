package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"truthlens/internal/models"
	"truthlens/internal/report"
	"truthlens/internal/service"
	"truthlens/internal/session"
	"truthlens/internal/ui"
)

var (
	analyzeTitle  string
	analyzeReport bool
	analyzeShare  bool
	analyzeDebug  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze content for credibility",
}

var analyzeTextCmd = &cobra.Command{
	Use:   "text [content]",
	Short: "Analyze a headline and body typed on the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, service.Input{
			Mode:  models.ModeText,
			Title: analyzeTitle,
			Text:  strings.Join(args, " "),
		})
	},
}

var analyzeFileCmd = &cobra.Command{
	Use:   "file [path]",
	Short: "Analyze a .txt, .pdf or .docx document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(cmd, models.ModeFile, args[0])
	},
}

var analyzeImageCmd = &cobra.Command{
	Use:   "image [path]",
	Short: "Analyze a screenshot through OCR",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUpload(cmd, models.ModeImage, args[0])
	},
}

var analyzeURLCmd = &cobra.Command{
	Use:   "url [address]",
	Short: "Analyze the article at a URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, service.Input{Mode: models.ModeURL, URL: args[0]})
	},
}

func init() {
	analyzeTextCmd.Flags().StringVarP(&analyzeTitle, "title", "t", "", "Headline of the article")

	analyzeCmd.PersistentFlags().BoolVar(&analyzeReport, "report", false, "Save a PDF report into the configured output directory")
	analyzeCmd.PersistentFlags().BoolVar(&analyzeShare, "share", false, "Send the share summary to the configured sinks")
	analyzeCmd.PersistentFlags().BoolVar(&analyzeDebug, "debug", false, "Print the technical debug panel")
}

func runUpload(cmd *cobra.Command, mode models.InputMode, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return runAnalyze(cmd, service.Input{
		Mode:     mode,
		Filename: filepath.Base(path),
		Content:  f,
	})
}

func runAnalyze(cmd *cobra.Command, in service.Input) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	styles := ui.NewStyles()

	a, err := newApp(cfg, logger, ui.NewIndicator(cmd.ErrOrStderr(), styles))
	if err != nil {
		return err
	}
	defer a.Close()

	snap, err := a.analyzer.Analyze(ctx, a.session, in)
	if err != nil {
		return errors.New(service.UserMessage(err))
	}

	fmt.Fprintln(out, ui.RenderResult(styles, *snap))
	if analyzeDebug {
		fmt.Fprintln(out, ui.RenderDebug(styles, report.DebugPanel(*snap)))
	}
	fmt.Fprintln(out, ui.RenderHistory(styles, a.session.History().Entries()))

	if analyzeShare {
		a.warn(cmd.ErrOrStderr(), styles)
		text := report.ShareText(*snap)
		delivered := report.Share(ctx, logger, text, a.sinks...)
		if delivered == 0 {
			fmt.Fprintln(out, styles.Section.Render(report.ShareTitle))
			fmt.Fprintln(out, text)
		} else {
			fmt.Fprintln(out, styles.Muted.Render(fmt.Sprintf("Compartido en %d destino(s).", delivered)))
		}
	}

	if analyzeReport {
		if err := saveReport(cmd, a, *snap, out, styles); err != nil {
			return err
		}
	}
	return nil
}

func saveReport(cmd *cobra.Command, a *app, snap session.Snapshot, out io.Writer, styles ui.Styles) error {
	if !cfg.Report.Enabled {
		fmt.Fprintln(cmd.ErrOrStderr(), styles.Muted.Render("⚠ La generación de PDF está desactivada en la configuración."))
		return nil
	}

	artifact, err := a.builder.Build(cmd.Context(), snap)
	if err != nil {
		logger.Error("Failed to build report", zap.Error(err))
		return errors.New(report.MsgGenerationFailed)
	}

	path, err := report.Save(cfg.Report.OutputDir, artifact)
	if err != nil {
		logger.Error("Failed to save report", zap.Error(err))
		return errors.New(report.MsgGenerationFailed)
	}

	fmt.Fprintln(out, styles.Highlight.Render(fmt.Sprintf("Reporte %s guardado en %s (%d páginas)", artifact.ReportID, path, artifact.Pages)))
	return nil
}
