package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"isuride/backend/services/owner-service/internal/models"
)

// LocationRepository reads chair location pings.
type LocationRepository struct {
	db *sqlx.DB
}

// NewLocationRepository returns repository.
func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db: db}
}

// ListByChairIDs returns every ping of the given chairs ordered by chair, time and id.
// Callers bound the size of chairIDs; the IN list is expanded in a single statement.
func (r *LocationRepository) ListByChairIDs(ctx context.Context, chairIDs []string) ([]models.ChairLocation, error) {
	if len(chairIDs) == 0 {
		return []models.ChairLocation{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, chair_id, latitude, longitude, created_at
		FROM chair_locations
		WHERE chair_id IN (?)
		ORDER BY chair_id, created_at, id
	`, chairIDs)
	if err != nil {
		return nil, err
	}

	pings := []models.ChairLocation{}
	if err := r.db.SelectContext(ctx, &pings, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return pings, nil
}
