package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"isuride/backend/services/owner-service/internal/models"
)

// ErrOwnerNotFound represents missing owner rows.
var ErrOwnerNotFound = errors.New("owner not found")

// OwnerRepository reads the owners table.
type OwnerRepository struct {
	db *sqlx.DB
}

// NewOwnerRepository returns repository instance.
func NewOwnerRepository(db *sqlx.DB) *OwnerRepository {
	return &OwnerRepository{db: db}
}

// GetByAccessToken fetches an owner by session access token.
func (r *OwnerRepository) GetByAccessToken(ctx context.Context, token string) (*models.Owner, error) {
	const query = `
		SELECT id, name, access_token, chair_register_token, created_at, updated_at
		FROM owners
		WHERE access_token = ?
		LIMIT 1
	`
	return r.get(ctx, query, token)
}

// GetByID fetches an owner by id.
func (r *OwnerRepository) GetByID(ctx context.Context, id string) (*models.Owner, error) {
	const query = `
		SELECT id, name, access_token, chair_register_token, created_at, updated_at
		FROM owners
		WHERE id = ?
		LIMIT 1
	`
	return r.get(ctx, query, id)
}

func (r *OwnerRepository) get(ctx context.Context, query string, arg string) (*models.Owner, error) {
	var owner models.Owner
	if err := r.db.GetContext(ctx, &owner, r.db.Rebind(query), arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	return &owner, nil
}

// Ping checks that the database is reachable.
func (r *OwnerRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
