package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/omarshaarawi/hoopsbot/internal/models"
	"github.com/omarshaarawi/hoopsbot/internal/projection"
)

var categoryLabels = map[string]string{
	models.CategoryPoints:              "PTS",
	models.CategoryRebounds:            "REB",
	models.CategoryAssists:             "AST",
	models.CategorySteals:              "STL",
	models.CategoryBlocks:              "BLK",
	models.CategoryThreePointers:       "3PM",
	models.CategoryTurnovers:           "TO",
	models.CategoryFieldGoalPercentage: "FG%",
	models.CategoryFreeThrowPercentage: "FT%",
}

// GetProjectionReport loads the projection for teamName (the configured team
// when empty) and renders it. A failed fetch falls back to the last projection
// published for the same request.
func (s *MatchupService) GetProjectionReport(ctx context.Context, teamName string) (string, error) {
	req := s.DefaultRequest()
	if teamName != "" {
		team, err := s.api.FindTeam(ctx, teamName)
		if err != nil {
			return "", fmt.Errorf("error finding team: %w", err)
		}
		req.TeamID = team.ID
	}

	p, err := s.Load(ctx, req)
	return s.report(req, p, err)
}

// GetScheduledReport refreshes the matchup on display and renders it, leaving
// the current selection untouched.
func (s *MatchupService) GetScheduledReport(ctx context.Context) (string, error) {
	req := s.displayedRequest()
	p, err := s.load(ctx, req, false)
	return s.report(req, p, err)
}

func (s *MatchupService) report(req models.MatchupRequest, p models.MatchupProjection, err error) (string, error) {
	if err == nil {
		return FormatProjection(p), nil
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		if last, ok := s.Last(req); ok {
			slog.Warn("Serving last projection", "source", fetchErr.Source, "error", fetchErr.Err)
			return fmt.Sprintf("⚠️ _Could not refresh %s, showing last projection_\n\n%s", fetchErr.Source, FormatProjection(last)), nil
		}
	}
	return "", fmt.Errorf("error loading projection: %w", err)
}

// GetPlayersToMonitor lists players on the loaded rosters that are excluded
// from the projection, either automatically or by override.
func (s *MatchupService) GetPlayersToMonitor() (string, error) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return "", ErrNoProjection
	}
	snap := s.session.Inputs().Snapshot
	state := s.state.Clone()
	s.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🚑 *Week %d Players to Monitor*\n\n", snap.Week))

	found := false
	for _, roster := range []models.TeamRoster{snap.Team1, snap.Team2} {
		var lines []string
		for _, p := range roster.Players {
			if line := monitorLine(p, state[p.ID()]); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) == 0 {
			continue
		}
		found = true
		sb.WriteString(fmt.Sprintf("*%s:*\n", roster.Name))
		for _, line := range lines {
			sb.WriteString(line)
		}
		sb.WriteString("\n")
	}

	if !found {
		sb.WriteString("No players to monitor at this time.")
	}
	return sb.String(), nil
}

func monitorLine(p models.RosterPlayer, o models.Override) string {
	var note string
	switch o.Kind {
	case models.OverrideEnabled:
		if !projection.IsAutoDisabled(p) {
			return ""
		}
		note = "enabled manually"
	case models.OverrideDisabled:
		note = "disabled for the week"
	case models.OverrideDisabledDays:
		days := make([]string, 0, len(o.Days))
		for d := range o.Days {
			days = append(days, shortDate(d))
		}
		sort.Strings(days)
		note = "disabled " + strings.Join(days, ", ")
		if o.Period {
			note = "disabled for the week"
		}
	default:
		if !projection.IsAutoDisabled(p) {
			return ""
		}
		note = "auto-disabled"
	}

	tag := p.Status
	if tag == "" {
		tag = p.Position
	}
	if tag != "" {
		return fmt.Sprintf("  • %s (%s) - %s\n", p.Name, tag, note)
	}
	return fmt.Sprintf("  • %s - %s\n", p.Name, note)
}

// FormatProjection renders a projection as Telegram markdown.
func FormatProjection(p models.MatchupProjection) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("📊 *Week %d Projection* (%s - %s)\n", p.Week, shortDate(p.WeekStart), shortDate(p.WeekEnd)))
	sb.WriteString(fmt.Sprintf("*%s* %d - %d *%s*\n\n", p.Team1.Name, p.Team1Score, p.Team2Score, p.Team2.Name))

	for _, category := range models.Categories {
		result, ok := p.CategoryResults[category]
		if !ok {
			continue
		}
		format := "%s: %.0f - %.0f"
		if category == models.CategoryFieldGoalPercentage || category == models.CategoryFreeThrowPercentage {
			format = "%s: %.1f - %.1f"
		}
		sb.WriteString(fmt.Sprintf(format, categoryLabels[category], result.Team1Total, result.Team2Total))
		sb.WriteString(fmt.Sprintf(" (%s)\n", result.Winner))
	}

	sb.WriteString("\n*Games:*\n")
	days1 := p.Team1.Projection.DailyProjections
	days2 := p.Team2.Projection.DailyProjections
	for i, day := range days1 {
		if day.IsPast {
			continue
		}
		other := 0
		if i < len(days2) {
			other = activeCount(days2[i])
		}
		marker := ""
		if day.IsToday {
			marker = " (today)"
		}
		sb.WriteString(fmt.Sprintf("%s %s: %d - %d%s\n", day.Weekday, day.MonthDay, activeCount(day), other, marker))
	}

	if p.SnapshotUsed {
		sb.WriteString("\n_Includes live league totals_")
	}

	return sb.String()
}

func activeCount(day models.DayProjection) int {
	n := 0
	for _, e := range day.Players {
		if !e.Disabled {
			n++
		}
	}
	return n
}

func shortDate(date string) string {
	t, err := time.Parse(projection.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2")
}
