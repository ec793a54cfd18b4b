package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"github.com/omarshaarawi/hoopsbot/internal/models"
)

// StatsRepository reads player identities, per-game averages and game-log
// totals from the stats store.
type StatsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *Database) *StatsRepository {
	return &StatsRepository{db: db.DB()}
}

// ResolvePlayers maps fantasy-platform ids to stats ids and the NBA team each
// player most recently appeared for. Ids with no match are absent from the
// result.
func (r *StatsRepository) ResolvePlayers(ctx context.Context, fantasyIDs []int) (map[int]models.PlayerRef, error) {
	refs := make(map[int]models.PlayerRef, len(fantasyIDs))
	if len(fantasyIDs) == 0 {
		return refs, nil
	}

	external := make([]string, len(fantasyIDs))
	for i, id := range fantasyIDs {
		external[i] = strconv.Itoa(id)
	}

	query := `
		SELECT DISTINCT ON (p.player_id) p.external_id, p.player_id, COALESCE(t.abbreviation, '')
		FROM players p
		LEFT JOIN player_game_stats pgs ON pgs.player_id = p.player_id
		LEFT JOIN games g ON g.game_id = pgs.game_id
		LEFT JOIN teams t ON t.team_id = pgs.team_id
		WHERE p.sport = 'basketball_nba' AND p.external_id = ANY($1)
		ORDER BY p.player_id, g.game_date DESC NULLS LAST
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(external))
	if err != nil {
		return nil, fmt.Errorf("querying player ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var externalID string
		var ref models.PlayerRef
		if err := rows.Scan(&externalID, &ref.StatsID, &ref.NBATeam); err != nil {
			return nil, fmt.Errorf("scanning player id: %w", err)
		}
		fantasyID, err := strconv.Atoi(externalID)
		if err != nil {
			continue
		}
		refs[fantasyID] = ref
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating player ids: %w", err)
	}

	return refs, nil
}

// Averages returns per-game averages for final games on or after from.
func (r *StatsRepository) Averages(ctx context.Context, playerIDs []int, from string) (map[int]models.StatLine, error) {
	query := fmt.Sprintf(`
		SELECT pgs.player_id, %s
		FROM player_game_stats pgs
		JOIN games g ON g.game_id = pgs.game_id
		WHERE pgs.player_id = ANY($1) AND g.status = 'final' AND g.game_date >= $2
		GROUP BY pgs.player_id
	`, aggregate("AVG"))

	return r.queryStatLines(ctx, query, pq.Array(playerIDs), from)
}

// GameLogTotals sums stats for final games with from <= game_date < to.
func (r *StatsRepository) GameLogTotals(ctx context.Context, playerIDs []int, from, to string) (map[int]models.StatLine, error) {
	query := fmt.Sprintf(`
		SELECT pgs.player_id, %s
		FROM player_game_stats pgs
		JOIN games g ON g.game_id = pgs.game_id
		WHERE pgs.player_id = ANY($1) AND g.status = 'final' AND g.game_date >= $2 AND g.game_date < $3
		GROUP BY pgs.player_id
	`, aggregate("SUM"))

	return r.queryStatLines(ctx, query, pq.Array(playerIDs), from, to)
}

// aggregate renders the stat columns, in StatLine order, wrapped in fn.
func aggregate(fn string) string {
	cols := []string{
		"points", "rebounds", "assists", "steals", "blocks",
		"three_pointers_made", "turnovers",
		"field_goals_made", "field_goals_attempted",
		"free_throws_made", "free_throws_attempted",
	}
	exprs := make([]string, len(cols))
	for i, c := range cols {
		exprs[i] = fmt.Sprintf("COALESCE(%s(pgs.%s), 0)::float8", fn, c)
	}
	return strings.Join(exprs, ", ")
}

func (r *StatsRepository) queryStatLines(ctx context.Context, query string, args ...interface{}) (map[int]models.StatLine, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}
	defer rows.Close()

	lines := make(map[int]models.StatLine)
	for rows.Next() {
		var id int
		var s models.StatLine
		if err := rows.Scan(&id,
			&s.Points, &s.Rebounds, &s.Assists, &s.Steals, &s.Blocks,
			&s.ThreePointers, &s.Turnovers,
			&s.FieldGoalsMade, &s.FieldGoalsAttempted,
			&s.FreeThrowsMade, &s.FreeThrowsAttempted,
		); err != nil {
			return nil, fmt.Errorf("scanning stats: %w", err)
		}
		lines[id] = s
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stats: %w", err)
	}

	return lines, nil
}
