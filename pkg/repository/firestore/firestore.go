package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/interfaces"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// Firestore is the production Repository implementation. All user data is
// stored under users/{userID} subcollections so that every query is
// naturally scoped to one user.
type Firestore struct {
	client  *firestore.Client
	task    *taskRepository
	project *projectRepository
	info    *infoRepository
	contact *contactRepository
}

var _ interfaces.Repository = &Firestore{}

func New(ctx context.Context, projectID, databaseID string) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	return &Firestore{
		client:  client,
		task:    newTaskRepository(client),
		project: newProjectRepository(client),
		info:    newInfoRepository(client),
		contact: newContactRepository(client),
	}, nil
}

func (f *Firestore) Task() interfaces.TaskRepository {
	return f.task
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) Info() interfaces.InfoRepository {
	return f.info
}

func (f *Firestore) Contact() interfaces.ContactRepository {
	return f.contact
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
