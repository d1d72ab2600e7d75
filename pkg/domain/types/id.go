package types

import (
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// UserID identifies the owner of tasks, projects and saved facts. It is an
// opaque string supplied by the caller (or the configured fallback identity),
// never generated by this system.
type UserID string

// Validate checks if the UserID is present
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// TaskID is a UUID-based identifier for a task
type TaskID string

// NewTaskID generates a new UUID v4 TaskID
func NewTaskID() TaskID {
	return TaskID(uuid.New().String())
}

// String returns the string representation of TaskID
func (t TaskID) String() string {
	return string(t)
}

// ProjectID is a UUID-based identifier for a project
type ProjectID string

// NewProjectID generates a new UUID v4 ProjectID
func NewProjectID() ProjectID {
	return ProjectID(uuid.New().String())
}

// String returns the string representation of ProjectID
func (p ProjectID) String() string {
	return string(p)
}

// InfoID is a UUID-based identifier for a remembered fact
type InfoID string

// NewInfoID generates a new UUID v4 InfoID
func NewInfoID() InfoID {
	return InfoID(uuid.New().String())
}

// String returns the string representation of InfoID
func (i InfoID) String() string {
	return string(i)
}

// ContactID is a UUID-based identifier for a contact
type ContactID string

// NewContactID generates a new UUID v4 ContactID
func NewContactID() ContactID {
	return ContactID(uuid.New().String())
}

// String returns the string representation of ContactID
func (c ContactID) String() string {
	return string(c)
}

// EventID is the opaque identifier assigned by the calendar provider. It is
// never generated locally.
type EventID string

// String returns the string representation of EventID
func (e EventID) String() string {
	return string(e)
}
