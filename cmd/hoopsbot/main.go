package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/hoopsbot/internal/api/espn"
	"github.com/omarshaarawi/hoopsbot/internal/api/fantasy"
	"github.com/omarshaarawi/hoopsbot/internal/bot"
	"github.com/omarshaarawi/hoopsbot/internal/config"
	"github.com/omarshaarawi/hoopsbot/internal/metrics"
	"github.com/omarshaarawi/hoopsbot/internal/repository/memory"
	"github.com/omarshaarawi/hoopsbot/internal/repository/postgres"
	"github.com/omarshaarawi/hoopsbot/internal/repository/redis"
	"github.com/omarshaarawi/hoopsbot/internal/schedule"
	"github.com/omarshaarawi/hoopsbot/internal/scheduler"
	"github.com/omarshaarawi/hoopsbot/internal/server"
	"github.com/omarshaarawi/hoopsbot/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	period, err := cfg.Stats.StatsPeriod()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	espnClient := espn.NewClient(cfg.ESPNAPI)
	espnAPI := espn.NewAPI(espnClient)
	fantasyAPI := fantasy.NewAPI(espnAPI)

	db, err := postgres.NewDatabase(cfg.Stats.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()
	stats := postgres.NewStatsRepository(db)

	disableStore, closeStore, err := newDisableStore(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	nbaSchedule, err := schedule.Load(cfg.Schedule.File)
	if err != nil {
		return err
	}
	slog.Info("Loaded NBA schedule", "file", cfg.Schedule.File, "days", len(nbaSchedule))

	recorder := metrics.NewRecorder()
	repo := memory.NewRepository()
	matchupService := service.NewMatchupService(fantasyAPI, stats, disableStore, repo, nbaSchedule, service.Options{
		DefaultTeamID: cfg.ESPNAPI.TeamID,
		SeasonStart:   cfg.ESPNAPI.SeasonStart,
		Period:        period,
		Metrics:       recorder,
	})

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, matchupService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(matchupService, telegramBot.SendMessage, scheduler.Options{
		ReportHour:      cfg.Schedule.ReportHour,
		RefreshInterval: cfg.Schedule.RefreshInterval,
		Metrics:         recorder,
	})
	if err != nil {
		return err
	}

	if err := sched.Start(ctx); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	httpServer := server.NewServer(cfg.Server.Addr, matchupService, recorder.Handler())

	go func() {
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	go func() {
		if _, err := matchupService.Refresh(ctx); err != nil {
			slog.Error("Initial projection failed", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
	}

	return nil
}

// newDisableStore picks Redis when REDIS_URL is set and falls back to memory,
// in which case overrides last only as long as the process.
func newDisableStore(cfg config.Storage) (service.DisableStore, func(), error) {
	if cfg.RedisURL == "" {
		slog.Warn("REDIS_URL not set, player overrides will not survive restarts")
		return memory.NewDisableStore(), func() {}, nil
	}

	store, err := redis.NewDisableStore(cfg.RedisURL, cfg.DisableKey)
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			slog.Error("Error closing redis", "error", err)
		}
	}, nil
}
