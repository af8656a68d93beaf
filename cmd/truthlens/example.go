package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"truthlens/internal/models"
	"truthlens/internal/predict_client"
	"truthlens/internal/service"
	"truthlens/internal/ui"
)

var exampleAnalyze bool

var exampleCmd = &cobra.Command{
	Use:   "example",
	Short: "Show a random example article",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := predict_client.NewClient(cfg.API.BaseURL, cfg.APITimeout(), logger)
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))

		ex, ok := predict_client.RandomExample(client.Examples(cmd.Context()), rng)
		if !ok {
			return errors.New("no hay ejemplos disponibles")
		}

		styles := ui.NewStyles()
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, styles.Title.Render(ex.Title))
		fmt.Fprintln(out, ex.Content)

		if !exampleAnalyze {
			return nil
		}
		fmt.Fprintln(out)
		return runAnalyze(cmd, service.Input{Mode: models.ModeText, Title: ex.Title, Text: ex.Content})
	},
}

func init() {
	exampleCmd.Flags().BoolVar(&exampleAnalyze, "analyze", false, "Analyze the example right away")
}
