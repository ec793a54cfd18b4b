package fantasy

import (
	"context"

	"github.com/omarshaarawi/hoopsbot/internal/api/espn"
	"github.com/omarshaarawi/hoopsbot/internal/models"
)

type API struct {
	espnAPI *espn.API
}

func NewAPI(espnAPI *espn.API) *API {
	return &API{espnAPI: espnAPI}
}

func (a *API) GetLeagueMetadata(ctx context.Context) (*models.LeagueMetadata, error) {
	return a.espnAPI.GetLeagueMetadata(ctx)
}

func (a *API) GetTeams(ctx context.Context) ([]models.FantasyTeam, error) {
	return a.espnAPI.GetTeams(ctx)
}

func (a *API) FindTeam(ctx context.Context, name string) (models.FantasyTeam, error) {
	return a.espnAPI.FindTeam(ctx, name)
}

func (a *API) GetMatchupSnapshot(ctx context.Context, teamID, week int, meta *models.LeagueMetadata) (models.MatchupSnapshot, error) {
	return a.espnAPI.GetMatchupSnapshot(ctx, teamID, week, meta)
}
