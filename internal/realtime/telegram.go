package realtime

import (
	"fmt"
	"html"
	"log"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"doabli/internal/models"
)

// TelegramSink mirrors task events into a team chat.
type TelegramSink struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramSink connects to the Bot API. endpoint may be empty for the public API.
func NewTelegramSink(token string, chatID int64, endpoint string) (*TelegramSink, error) {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(token, endpoint)
	if err != nil {
		return nil, fmt.Errorf("telegram bot: %w", err)
	}
	return &TelegramSink{bot: bot, chatID: chatID}, nil
}

// Publish sends in the background so a slow Bot API never blocks a request.
func (s *TelegramSink) Publish(ev Event) {
	go func() {
		if err := s.Send(ev); err != nil {
			log.Printf("[tg][send][err] %v", err)
		}
	}()
}

func (s *TelegramSink) Send(ev Event) error {
	text := formatEvent(ev)
	if text == "" {
		return nil
	}
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true
	_, err := s.bot.Send(msg)
	return err
}

func formatEvent(ev Event) string {
	var prefix string
	switch ev.Type {
	case EventTaskCreated:
		prefix = "🆕 Task created"
	case EventTaskUpdated:
		prefix = "✏️ Task updated"
	case EventTaskMoved:
		prefix = "🔀 Task moved"
	case EventTaskDeleted:
		prefix = "🗑️ Task deleted"
	default:
		return ""
	}
	if ev.Task == nil {
		return prefix
	}
	return formatTask(prefix, ev.Task)
}

func formatTask(prefix string, t *models.Task) string {
	due := "-"
	if t.DueDate != nil && !t.DueDate.IsZero() {
		due = t.DueDate.String()
	}
	project := "-"
	if t.ProjectID != nil {
		project = "#" + strconv.FormatInt(*t.ProjectID, 10)
	}
	return prefix + "\n" +
		"• <b>" + html.EscapeString(t.Title) + "</b>\n" +
		"• Status: <code>" + string(t.Status) + "</code>\n" +
		"• Priority: <code>" + string(t.Priority) + "</code>\n" +
		"• Due: <code>" + due + "</code>\n" +
		"• Project: <code>" + project + "</code>"
}
