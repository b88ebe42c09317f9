package standings

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Adjustment is one manual rating correction, kept in rank_adjustments.json
// next to the pipeline config. Only mu moves; sigma is left alone.
type Adjustment struct {
	SteamID      string  `json:"steam_id"`
	SteamName    string  `json:"steam_name"`
	MuAdjustment float64 `json:"mu_adjustment"`
	Reason       string  `json:"reason_for_adjustment"`
}

// LoadAdjustments reads the adjustments file. A missing file means no
// adjustments and is not an error.
func LoadAdjustments(path string) ([]Adjustment, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "could not read adjustments")
	}

	var adjustments []Adjustment
	if err := json.Unmarshal(data, &adjustments); err != nil {
		return nil, errors.Wrap(err, "could not json decode adjustments")
	}

	return adjustments, nil
}

// ApplyAdjustments applies manual corrections and returns the adjustments
// whose player was not found.
func (db *Database) ApplyAdjustments(adjustments []Adjustment) []Adjustment {
	var missing []Adjustment
	for _, adj := range adjustments {
		p, ok := db.Players[adj.SteamID]
		if !ok {
			missing = append(missing, adj)
			continue
		}
		p.Rating.Mu += adj.MuAdjustment
	}
	return missing
}
