package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"truthlens/internal/chatbot"
	"truthlens/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Browse the help assistant's frequently asked questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		conv := chatbot.NewConversation()
		defer conv.Close()

		p := tea.NewProgram(ui.NewChatModel(conv, ui.NewStyles()),
			tea.WithContext(cmd.Context()),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()))
		_, err := p.Run()
		return err
	},
}
