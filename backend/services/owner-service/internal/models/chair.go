package models

import (
	"database/sql"
	"time"
)

// Chair is a vehicle registered by an owner.
type Chair struct {
	ID          string    `db:"id" json:"id"`
	OwnerID     string    `db:"owner_id" json:"owner_id"`
	Name        string    `db:"name" json:"name"`
	AccessToken string    `db:"access_token" json:"-"`
	Model       string    `db:"model" json:"model"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ChairLocation is a single location ping reported by a chair.
type ChairLocation struct {
	ID        string    `db:"id" json:"id"`
	ChairID   string    `db:"chair_id" json:"chair_id"`
	Latitude  int64     `db:"latitude" json:"latitude"`
	Longitude int64     `db:"longitude" json:"longitude"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ChairWithDistance pairs a chair with its accumulated travel distance.
type ChairWithDistance struct {
	Chair
	TotalDistance          int64        `db:"total_distance"`
	TotalDistanceUpdatedAt sql.NullTime `db:"total_distance_updated_at"`
}

// RegisteredAtMillis returns the chair creation time as epoch milliseconds.
func (c ChairWithDistance) RegisteredAtMillis() int64 {
	return c.CreatedAt.UnixMilli()
}

// TotalDistanceUpdatedAtMillis returns the last distance update as epoch milliseconds, if any.
func (c ChairWithDistance) TotalDistanceUpdatedAtMillis() (int64, bool) {
	if !c.TotalDistanceUpdatedAt.Valid {
		return 0, false
	}
	return c.TotalDistanceUpdatedAt.Time.UnixMilli(), true
}
