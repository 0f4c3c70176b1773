package store

import (
	"context"
	"database/sql"
	"fmt"
)

// FilterPrefs are a carrier's saved defaults for the opportunities listing.
type FilterPrefs struct {
	JobType          string
	DestinationState string
	Sort             string
}

// SaveFilterPrefs upserts the carrier's saved listing filters.
func SaveFilterPrefs(ctx context.Context, db *sql.DB, carrierID string, prefs FilterPrefs) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO filter_prefs (carrier_id, job_type, destination_state, sort, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(carrier_id) DO UPDATE SET
		     job_type = excluded.job_type,
		     destination_state = excluded.destination_state,
		     sort = excluded.sort,
		     updated_at = CURRENT_TIMESTAMP`,
		carrierID, prefs.JobType, prefs.DestinationState, prefs.Sort,
	)
	if err != nil {
		return fmt.Errorf("saving filter prefs: %w", err)
	}
	return nil
}

// GetFilterPrefs returns the carrier's saved filters, or zero values if none
// have been saved yet.
func GetFilterPrefs(ctx context.Context, db *sql.DB, carrierID string) (FilterPrefs, error) {
	var prefs FilterPrefs
	err := db.QueryRowContext(ctx,
		`SELECT job_type, destination_state, sort FROM filter_prefs WHERE carrier_id = ?`, carrierID,
	).Scan(&prefs.JobType, &prefs.DestinationState, &prefs.Sort)
	if err == sql.ErrNoRows {
		return FilterPrefs{}, nil
	}
	if err != nil {
		return FilterPrefs{}, fmt.Errorf("getting filter prefs: %w", err)
	}
	return prefs, nil
}
