package models

import "time"

// Owner is a fleet account that owns chairs. Credentials never leave the process as JSON.
type Owner struct {
	ID                 string    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	AccessToken        string    `db:"access_token" json:"-"`
	ChairRegisterToken string    `db:"chair_register_token" json:"-"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}
