package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/hoopsbot/internal/models"
	"github.com/omarshaarawi/hoopsbot/internal/projection"
	"github.com/omarshaarawi/hoopsbot/internal/service"
)

type MatchupService interface {
	GetProjectionReport(ctx context.Context, teamName string) (string, error)
	GetPlayersToMonitor() (string, error)
	FindPlayer(name string) (models.RosterPlayer, bool)
	SetPlayerStatus(ctx context.Context, playerID int, status projection.PlayerStatus, date string) (models.MatchupProjection, error)
	ClearPlayerStatus(ctx context.Context, playerID int) (models.MatchupProjection, error)
}

type Handler struct {
	matchupService MatchupService
	now            func() time.Time
}

func NewHandler(matchupService MatchupService) *Handler {
	return &Handler{matchupService: matchupService, now: time.Now}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = tgbotapi.ModeMarkdown

	switch command {
	case "start":
		msg.Text = "Welcome to HoopsBot! Use /help to see available commands."
	case "help":
		msg.Text = helpMessage()
	case "projection":
		h.handleProjection(ctx, &msg, args)
	case "monitor":
		h.handlePlayersToMonitor(&msg)
	case "disable":
		h.handleDisable(ctx, &msg, args)
	case "enable":
		h.handleEnable(ctx, &msg, args)
	case "reset":
		h.handleReset(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleProjection(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	report, err := h.matchupService.GetProjectionReport(ctx, args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error building projection: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handlePlayersToMonitor(msg *tgbotapi.MessageConfig) {
	report, err := h.matchupService.GetPlayersToMonitor()
	if errors.Is(err, service.ErrNoProjection) {
		msg.Text = "No matchup loaded yet. Run /projection first."
		return
	}
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching players to monitor: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleDisable(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	name, date := h.splitDate(args)
	player, ok := h.findPlayer(msg, name, usage("disable"))
	if !ok {
		return
	}

	p, err := h.matchupService.SetPlayerStatus(ctx, player.ID(), projection.StatusDisabled, date)
	label := fmt.Sprintf("🚫 *%s* disabled for the week", player.Name)
	if date != "" {
		label = fmt.Sprintf("🚫 *%s* disabled on %s", player.Name, date)
	}
	h.overrideReply(msg, label, p, err)
}

func (h *Handler) handleEnable(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	player, ok := h.findPlayer(msg, args, usage("enable"))
	if !ok {
		return
	}

	p, err := h.matchupService.SetPlayerStatus(ctx, player.ID(), projection.StatusEnabled, "")
	h.overrideReply(msg, fmt.Sprintf("✅ *%s* enabled", player.Name), p, err)
}

func (h *Handler) handleReset(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	player, ok := h.findPlayer(msg, args, usage("reset"))
	if !ok {
		return
	}

	p, err := h.matchupService.ClearPlayerStatus(ctx, player.ID())
	h.overrideReply(msg, fmt.Sprintf("↩️ *%s* reset", player.Name), p, err)
}

func (h *Handler) findPlayer(msg *tgbotapi.MessageConfig, name, hint string) (models.RosterPlayer, bool) {
	if name == "" {
		msg.Text = "Please provide a player name. Usage: " + hint
		return models.RosterPlayer{}, false
	}
	player, ok := h.matchupService.FindPlayer(name)
	if !ok {
		msg.Text = fmt.Sprintf("🔍 No player found matching '%s'. Run /projection to load the rosters.", name)
		return models.RosterPlayer{}, false
	}
	return player, true
}

func (h *Handler) overrideReply(msg *tgbotapi.MessageConfig, label string, p models.MatchupProjection, err error) {
	switch {
	case err == nil:
		msg.Text = label + "\n\n" + service.FormatProjection(p)
	case errors.Is(err, service.ErrNoProjection):
		msg.Text = label + "\n\nNo matchup loaded yet. Run /projection to see the effect."
	default:
		msg.Text = fmt.Sprintf("Error updating player: %v", err)
	}
}

// splitDate peels a trailing date off the arguments. Anything that does not
// look like a date stays part of the player name.
func (h *Handler) splitDate(args string) (string, string) {
	i := strings.LastIndex(args, " ")
	if i < 0 {
		return args, ""
	}
	name, last := strings.TrimSpace(args[:i]), strings.ToLower(args[i+1:])

	today, err := time.ParseInLocation(projection.DateLayout, projection.EasternToday(h.now()), projection.Eastern())
	if err != nil {
		return args, ""
	}

	switch last {
	case "today":
		return name, today.Format(projection.DateLayout)
	case "tomorrow":
		return name, today.AddDate(0, 0, 1).Format(projection.DateLayout)
	}
	if _, err := time.Parse(projection.DateLayout, last); err == nil {
		return name, last
	}
	return args, ""
}
