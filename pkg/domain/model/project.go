package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// Project is a named folder for tasks, optionally tied to a focus area
// ("business", "personal", ...). Project names are unique per user,
// case-insensitively.
type Project struct {
	ID        types.ProjectID
	UserID    types.UserID
	Name      string
	Area      string
	Notes     string
	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the minimal required fields of a project
func (p *Project) Validate() error {
	if p.Name == "" {
		return goerr.New("project name is required")
	}
	return nil
}

// InfoItem is a free-form fact remembered for a user, keyed by label.
// Labels are unique per user; remembering an existing label overwrites the
// value.
type InfoItem struct {
	ID        types.InfoID
	UserID    types.UserID
	Label     string
	Value     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Contact is an address-book entry, synced from recent inbox senders or
// saved explicitly. Used to resolve bare names in outgoing email.
type Contact struct {
	ID        types.ContactID
	UserID    types.UserID
	Name      string
	Email     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
