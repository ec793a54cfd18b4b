package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type commandSpec struct {
	name        string
	args        string
	description string
}

// commands is the menu registered with Telegram and listed by /help.
var commands = []commandSpec{
	{"projection", "[team]", "Project this week's matchup"},
	{"monitor", "", "Players left out of the projection"},
	{"disable", "<player> [YYYY-MM-DD|today|tomorrow]", "Exclude a player for the week or one day"},
	{"enable", "<player>", "Always count a player, even on IL"},
	{"reset", "<player>", "Remove a manual override"},
}

func (c commandSpec) usage() string {
	if c.args == "" {
		return "/" + c.name
	}
	return "/" + c.name + " " + c.args
}

func usage(name string) string {
	for _, c := range commands {
		if c.name == name {
			return c.usage()
		}
	}
	return "/" + name
}

func helpMessage() string {
	var sb strings.Builder
	sb.WriteString("Available commands:")
	for _, c := range commands {
		sb.WriteString("\n" + c.usage() + " - " + c.description)
	}
	return sb.String()
}

func botCommands() []tgbotapi.BotCommand {
	out := make([]tgbotapi.BotCommand, 0, len(commands))
	for _, c := range commands {
		out = append(out, tgbotapi.BotCommand{Command: c.name, Description: c.description})
	}
	return out
}

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	handler *Handler
	chatID  int64
}

func NewTelegramBot(token string, chatID int64, matchupService MatchupService) (*TelegramBot, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &TelegramBot{
		bot:     bot,
		handler: NewHandler(matchupService),
		chatID:  chatID,
	}, nil
}

// Start registers the command menu and serves commands until ctx is done.
func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.bot.Self.UserName)
	if _, err := t.bot.Request(tgbotapi.NewSetMyCommands(botCommands()...)); err != nil {
		slog.Warn("Could not register command menu", "error", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	for {
		select {
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			t.dispatch(ctx, update)
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) dispatch(ctx context.Context, update tgbotapi.Update) {
	start := time.Now()
	msg := t.handler.HandleCommand(ctx, update)
	err := t.send(msg)
	slog.Info("Handled command",
		"command", update.Message.Command(),
		"args", update.Message.CommandArguments(),
		"chat", update.Message.Chat.ID,
		"duration", time.Since(start),
		"sent", err == nil)
}

// send delivers msg, retrying once as plain text when Telegram rejects the
// markdown; player names with underscores or asterisks break the parser.
func (t *TelegramBot) send(msg tgbotapi.MessageConfig) error {
	_, err := t.bot.Send(msg)
	if err == nil || msg.ParseMode == "" {
		return err
	}
	slog.Warn("Markdown rejected, resending as plain text", "chat", msg.ChatID, "error", err)
	msg.ParseMode = ""
	if _, err = t.bot.Send(msg); err != nil {
		slog.Error("Error sending message", "chat", msg.ChatID, "error", err)
	}
	return err
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return fmt.Errorf("chat ID not set")
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	return t.send(msg)
}
