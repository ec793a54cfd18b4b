package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/omarshaarawi/hoopsbot/internal/models"
)

type Config struct {
	TelegramBot TelegramBot
	ESPNAPI     ESPNAPI
	Stats       Stats
	Storage     Storage
	Schedule    Schedule
	Server      Server
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type ESPNAPI struct {
	Year     string `envconfig:"YEAR" required:"true"`
	LeagueID string `envconfig:"LEAGUE_ID" required:"true"`
	TeamID   int    `envconfig:"TEAM_ID" required:"true"`
	SWID     string `envconfig:"SWID" required:"true"`
	ESPNS2   string `envconfig:"ESPN_S2" required:"true"`
	// SeasonStart is the calendar date of scoring period 1 (YYYY-MM-DD).
	SeasonStart string `envconfig:"SEASON_START" required:"true"`
}

type Stats struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Period      string `envconfig:"STATS_PERIOD" default:"season"`
}

type Storage struct {
	RedisURL   string `envconfig:"REDIS_URL"`
	DisableKey string `envconfig:"DISABLE_STATE_KEY" default:"hoopsbot:disabled"`
}

type Schedule struct {
	File string `envconfig:"SCHEDULE_FILE" default:"data/schedule.json"`
	// ReportHour is the Eastern hour the daily projection report is sent.
	ReportHour      uint          `envconfig:"REPORT_HOUR" default:"10"`
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"30m"`
}

type Server struct {
	Addr string `envconfig:"HTTP_ADDR" default:":80"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if _, err := c.Stats.StatsPeriod(); err != nil {
		return nil, err
	}
	if c.Schedule.ReportHour > 23 {
		return nil, fmt.Errorf("invalid REPORT_HOUR %d", c.Schedule.ReportHour)
	}
	return &c, nil
}

func (s Stats) StatsPeriod() (models.StatsPeriod, error) {
	p := models.StatsPeriod(s.Period)
	if !p.Valid() {
		return "", fmt.Errorf("invalid STATS_PERIOD %q", s.Period)
	}
	return p, nil
}
