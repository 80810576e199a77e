package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"isuride/backend/services/owner-service/internal/models"
)

// DistanceScope selects how the windowed distance query restricts location pings.
type DistanceScope int

const (
	// ScopeOwnerChairs narrows chair_locations to the owner's chairs before windowing.
	ScopeOwnerChairs DistanceScope = iota
	// ScopeAllChairs windows over every chair and filters by owner afterwards.
	ScopeAllChairs
)

func (s DistanceScope) String() string {
	switch s {
	case ScopeOwnerChairs:
		return "scoped"
	case ScopeAllChairs:
		return "global"
	default:
		return fmt.Sprintf("DistanceScope(%d)", int(s))
	}
}

// Both distance queries are written with ? placeholders and rebound for the active driver.
// They only use window functions and COALESCE so they run on Postgres and MySQL 8.
const (
	scopedDistanceQuery = `
		WITH relevant_chairs AS (
			SELECT id
			FROM chairs
			WHERE owner_id = ?
		),
		location_differences AS (
			SELECT
				cl.chair_id,
				cl.created_at,
				ABS(cl.latitude - LAG(cl.latitude) OVER w) AS latitude_diff,
				ABS(cl.longitude - LAG(cl.longitude) OVER w) AS longitude_diff
			FROM chair_locations cl
			JOIN relevant_chairs rc ON rc.id = cl.chair_id
			WINDOW w AS (PARTITION BY cl.chair_id ORDER BY cl.created_at, cl.id)
		),` + aggregateAndSelect

	globalDistanceQuery = `
		WITH location_differences AS (
			SELECT
				cl.chair_id,
				cl.created_at,
				ABS(cl.latitude - LAG(cl.latitude) OVER w) AS latitude_diff,
				ABS(cl.longitude - LAG(cl.longitude) OVER w) AS longitude_diff
			FROM chair_locations cl
			WINDOW w AS (PARTITION BY cl.chair_id ORDER BY cl.created_at, cl.id)
		),` + aggregateAndSelect

	// The first ping of each chair has NULL diffs, so it never sets total_distance_updated_at.
	aggregateAndSelect = `
		aggregated_distances AS (
			SELECT
				chair_id,
				SUM(COALESCE(latitude_diff, 0) + COALESCE(longitude_diff, 0)) AS total_distance,
				MAX(CASE WHEN latitude_diff IS NOT NULL THEN created_at END) AS total_distance_updated_at
			FROM location_differences
			GROUP BY chair_id
		)
		SELECT
			c.id,
			c.owner_id,
			c.name,
			c.access_token,
			c.model,
			c.is_active,
			c.created_at,
			c.updated_at,
			COALESCE(ad.total_distance, 0) AS total_distance,
			ad.total_distance_updated_at
		FROM chairs c
		LEFT JOIN aggregated_distances ad ON ad.chair_id = c.id
		WHERE c.owner_id = ?
		ORDER BY c.id
	`
)

// ChairRepository reads chairs and their aggregated distance.
type ChairRepository struct {
	db *sqlx.DB
}

// NewChairRepository returns repository.
func NewChairRepository(db *sqlx.DB) *ChairRepository {
	return &ChairRepository{db: db}
}

// ListByOwner returns the owner's chairs ordered by id.
func (r *ChairRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Chair, error) {
	const query = `
		SELECT id, owner_id, name, access_token, model, is_active, created_at, updated_at
		FROM chairs
		WHERE owner_id = ?
		ORDER BY id
	`
	chairs := []models.Chair{}
	if err := r.db.SelectContext(ctx, &chairs, r.db.Rebind(query), ownerID); err != nil {
		return nil, err
	}
	return chairs, nil
}

// ListWithTotalDistance returns the owner's chairs ordered by id, each annotated with the
// distance aggregated in the database.
func (r *ChairRepository) ListWithTotalDistance(ctx context.Context, ownerID string, scope DistanceScope) ([]models.ChairWithDistance, error) {
	var query string
	var args []interface{}
	switch scope {
	case ScopeOwnerChairs:
		query, args = scopedDistanceQuery, []interface{}{ownerID, ownerID}
	case ScopeAllChairs:
		query, args = globalDistanceQuery, []interface{}{ownerID}
	default:
		return nil, fmt.Errorf("repository: unknown distance scope %s", scope)
	}

	chairs := []models.ChairWithDistance{}
	if err := r.db.SelectContext(ctx, &chairs, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	return chairs, nil
}
