package telegram_bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"truthlens/internal/chatbot"
	"truthlens/internal/config"
)

// maxMessageRunes is Telegram's text message limit
const maxMessageRunes = 4096

// ErrDisabled is returned when sharing through a disabled bot
var ErrDisabled = errors.New("telegram bot is disabled")

// api is the part of tgbotapi.BotAPI the bot uses
type api interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot shares reports to a Telegram chat and can answer FAQ questions
type Bot struct {
	api      api
	updates  *tgbotapi.BotAPI
	chatID   int64
	serveFAQ bool
	logger   *zap.Logger

	mu    sync.Mutex
	convs map[int64]*chatbot.Conversation
}

// NewBot creates a new Telegram bot instance. It returns nil when the bot is
// disabled in config.
func NewBot(cfg *config.Config, logger *zap.Logger) (*Bot, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.TelegramEnabled() {
		logger.Info("Telegram bot is disabled (share.telegram.enabled=false or token is empty)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Share.Telegram.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram bot authorized", zap.String("username", botAPI.Self.UserName))

	b := newBot(botAPI, cfg.Share.Telegram.ChatID, cfg.Share.Telegram.ServeFAQ, logger)
	b.updates = botAPI
	return b, nil
}

func newBot(a api, chatID int64, serveFAQ bool, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		api:      a,
		chatID:   chatID,
		serveFAQ: serveFAQ,
		logger:   logger,
		convs:    make(map[int64]*chatbot.Conversation),
	}
}

// Name implements report.Sink.
func (b *Bot) Name() string {
	return "telegram"
}

// Share sends the report text to the configured chat.
func (b *Bot) Share(ctx context.Context, title, text string) error {
	if b == nil {
		return ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if b.chatID == 0 {
		return errors.New("telegram chat_id is not configured")
	}

	msg := tgbotapi.NewMessage(b.chatID, truncate(title+"\n\n"+text))
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send report: %w", err)
	}

	b.logger.Info("Report shared to Telegram", zap.Int64("chat_id", b.chatID))
	return nil
}

// Start answers FAQ questions until ctx is done. It returns immediately when
// the bot is disabled or FAQ serving is off.
func (b *Bot) Start(ctx context.Context) error {
	if b == nil || b.updates == nil || !b.serveFAQ {
		return nil
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.updates.GetUpdatesChan(u)

	b.logger.Info("Telegram bot started, waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Telegram bot shutting down...")
			b.updates.StopReceivingUpdates()
			return nil
		case update := <-updates:
			b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(update.Message)
	}
}

func (b *Bot) conversation(chatID int64) *chatbot.Conversation {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, ok := b.convs[chatID]
	if !ok {
		c = chatbot.NewConversation()
		b.convs[chatID] = c
	}
	return c
}

// handleCallbackQuery processes presses on FAQ option buttons
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := b.api.Request(callback); err != nil {
		b.logger.Error("Failed to send callback response", zap.Error(err))
	}
	if query.Message == nil {
		return
	}

	ev, ok := DecodeEvent(query.Data)
	if !ok {
		b.logger.Warn("Failed to parse callback data", zap.String("data", query.Data))
		return
	}

	chatID := query.Message.Chat.ID
	conv := b.conversation(chatID)
	if conv.State().Kind == chatbot.Root {
		conv.Send(chatbot.Event{Kind: chatbot.EventOpen})
	}
	b.deliver(chatID, conv.Send(ev))
}

// handleMessage processes incoming messages
func (b *Bot) handleMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID
	conv := b.conversation(chatID)

	if message.IsCommand() {
		switch message.Command() {
		case "start":
			b.deliver(chatID, conv.Send(chatbot.Event{Kind: chatbot.EventOpen}))
		case "help":
			b.sendMessage(chatID, "📚 Ayuda:\n\n/start - Abrir el menú de preguntas frecuentes\n/help - Esta ayuda\n\n"+
				"También puedes escribir tu pregunta directamente.")
		default:
			b.sendMessage(chatID, "Comando desconocido. Usa /help para ver la ayuda.")
		}
		return
	}

	if conv.State().Kind == chatbot.Root {
		conv.Send(chatbot.Event{Kind: chatbot.EventOpen})
	}
	b.deliver(chatID, conv.Send(chatbot.Event{Kind: chatbot.EventFreeText, Text: message.Text}))
}

// deliver sends the bot side of msgs, turning options into inline buttons.
func (b *Bot) deliver(chatID int64, msgs []chatbot.Message) {
	for _, m := range msgs {
		if m.Role != chatbot.RoleBot {
			continue
		}
		text := m.Text
		if text == "" {
			text = "Opciones:"
		}
		msg := tgbotapi.NewMessage(chatID, truncate(text))
		if len(m.Options) > 0 {
			rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(m.Options))
			for _, o := range m.Options {
				rows = append(rows, tgbotapi.NewInlineKeyboardRow(
					tgbotapi.NewInlineKeyboardButtonData(o.Label, EncodeEvent(o.Event)),
				))
			}
			msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(rows...)
		}
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

// sendMessage is a helper to send a simple text message
func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// EncodeEvent packs a button event into callback data.
func EncodeEvent(ev chatbot.Event) string {
	switch ev.Kind {
	case chatbot.EventSelectCategory:
		return "cat:" + ev.Category
	case chatbot.EventSelectQuestion:
		return "q:" + strconv.Itoa(ev.Question)
	}
	return string(ev.Kind)
}

// DecodeEvent is the inverse of EncodeEvent. Free text cannot be encoded.
func DecodeEvent(data string) (chatbot.Event, bool) {
	if id, ok := strings.CutPrefix(data, "cat:"); ok {
		return chatbot.Event{Kind: chatbot.EventSelectCategory, Category: id}, id != ""
	}
	if n, ok := strings.CutPrefix(data, "q:"); ok {
		idx, err := strconv.Atoi(n)
		if err != nil {
			return chatbot.Event{}, false
		}
		return chatbot.Event{Kind: chatbot.EventSelectQuestion, Question: idx}, true
	}
	switch kind := chatbot.EventKind(data); kind {
	case chatbot.EventOpen, chatbot.EventBackToCategory, chatbot.EventBackToMain, chatbot.EventShowCategories:
		return chatbot.Event{Kind: kind}, true
	}
	return chatbot.Event{}, false
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxMessageRunes {
		return s
	}
	return string(r[:maxMessageRunes-1]) + "…"
}
