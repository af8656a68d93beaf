package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"truthlens/internal/chatbot"
)

// visibleMessages bounds how much transcript the chat view draws
const visibleMessages = 12

// ChatModel is the terminal FAQ assistant.
type ChatModel struct {
	conv     *chatbot.Conversation
	input    textinput.Model
	options  []chatbot.Option
	styles   Styles
	width    int
	quitting bool
}

// NewChatModel opens conv and returns a model ready to run.
func NewChatModel(conv *chatbot.Conversation, styles Styles) ChatModel {
	ti := textinput.New()
	ti.Placeholder = "Escribe tu pregunta o el número de una opción"
	ti.Prompt = "› "
	ti.CharLimit = 280
	ti.Focus()

	m := ChatModel{conv: conv, input: ti, styles: styles, width: 80}
	if conv.State().Kind == chatbot.Root {
		m.apply(conv.Send(chatbot.Event{Kind: chatbot.EventOpen}))
	}
	return m
}

func (m ChatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.conv.Close()
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			m.submit(value)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit treats a number as an option choice and anything else as free text.
func (m *ChatModel) submit(value string) {
	if value == "" {
		return
	}
	if n, err := strconv.Atoi(value); err == nil && n >= 1 && n <= len(m.options) {
		m.apply(m.conv.Send(m.options[n-1].Event))
		return
	}
	m.apply(m.conv.Send(chatbot.Event{Kind: chatbot.EventFreeText, Text: value}))
}

func (m *ChatModel) apply(msgs []chatbot.Message) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if len(msgs[i].Options) > 0 {
			m.options = msgs[i].Options
			return
		}
	}
}

// Options returns the choices currently offered.
func (m ChatModel) Options() []chatbot.Option {
	return m.options
}

func (m ChatModel) View() string {
	if m.quitting {
		return m.styles.Muted.Render("¡Hasta pronto!") + "\n"
	}

	transcript := m.conv.Transcript()
	if len(transcript) > visibleMessages {
		transcript = transcript[len(transcript)-visibleMessages:]
	}

	var b strings.Builder
	b.WriteString(m.styles.Section.Render("TruthLens AI · Preguntas frecuentes"))
	b.WriteString("\n\n")
	for _, msg := range transcript {
		if msg.Text == "" {
			continue
		}
		if msg.Role == chatbot.RoleUser {
			b.WriteString(m.styles.UserLine.Render("tú › " + msg.Text))
		} else {
			b.WriteString(m.styles.BotLine.Width(m.width - 4).Render(msg.Text))
		}
		b.WriteString("\n")
	}

	if len(m.options) > 0 {
		b.WriteString("\n")
		for i, o := range m.options {
			b.WriteString(m.styles.Option.Render(fmt.Sprintf("%d. %s", i+1, o.Label)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("esc para salir"))
	return b.String()
}
