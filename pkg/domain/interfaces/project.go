package interfaces

import (
	"context"

	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// Create inserts a new project with a generated ID
	Create(ctx context.Context, userID types.UserID, project *model.Project) (*model.Project, error)

	// GetByName retrieves a project by case-insensitive exact name match.
	// Returns nil (no error) when no project matches.
	GetByName(ctx context.Context, userID types.UserID, name string) (*model.Project, error)

	// List retrieves all projects of the user
	List(ctx context.Context, userID types.UserID) ([]*model.Project, error)

	// Archive marks a project as archived
	Archive(ctx context.Context, userID types.UserID, id types.ProjectID) error
}

// InfoRepository defines the interface for remembered key-value facts
type InfoRepository interface {
	// Upsert stores the value under the label, overwriting any existing
	// value for the same (user, label) pair
	Upsert(ctx context.Context, userID types.UserID, label, value string) (*model.InfoItem, error)

	// Lookup retrieves the fact stored under the label, matched
	// case-insensitively. Returns nil (no error) when nothing is saved.
	Lookup(ctx context.Context, userID types.UserID, label string) (*model.InfoItem, error)

	// List retrieves all facts of the user
	List(ctx context.Context, userID types.UserID) ([]*model.InfoItem, error)
}

// ContactRepository defines the interface for the per-user contact book
type ContactRepository interface {
	// ReplaceAll swaps the user's whole contact book for the given entries.
	// The sync worker uses this to avoid per-row writes in a loop.
	ReplaceAll(ctx context.Context, userID types.UserID, contacts []*model.Contact) error

	// FindByName retrieves a contact by case-insensitive exact name match.
	// Returns nil (no error) when no contact matches.
	FindByName(ctx context.Context, userID types.UserID, name string) (*model.Contact, error)

	// List retrieves all contacts of the user
	List(ctx context.Context, userID types.UserID) ([]*model.Contact, error)
}
