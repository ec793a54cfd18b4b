// Package schedule loads the NBA game calendar used to decide which players
// have a game on a given day.
package schedule

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/omarshaarawi/hoopsbot/internal/models"
)

// Load reads a JSON object of {"YYYY-MM-DD": ["BOS", "NYK", ...]} from path.
// Abbreviations are upper-cased so lookups match roster data.
func Load(path string) (models.Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schedule: %w", err)
	}
	defer f.Close()

	var raw map[string][]string
	if err := json.NewDecoder(f).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding schedule: %w", err)
	}

	s := make(models.Schedule, len(raw))
	for date, teams := range raw {
		normalized := make([]string, 0, len(teams))
		for _, t := range teams {
			if t = strings.ToUpper(strings.TrimSpace(t)); t != "" {
				normalized = append(normalized, t)
			}
		}
		s[date] = normalized
	}
	return s, nil
}
