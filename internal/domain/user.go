// Package domain contains the core data types for the Nomad's Compass API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, planner, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered traveller account.
// InstagramHandle is empty when the user has not linked a social profile;
// sponsorship eligibility keys off it.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	HashedPassword  string    `json:"-"` // never serialized
	FullName        string    `json:"full_name,omitempty"`
	InstagramHandle string    `json:"instagram_handle,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
