package firestore

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// projectDoc is the Firestore document representation of model.Project.
// NameLower supports case-insensitive name lookups without a scan.
type projectDoc struct {
	ID        string    `firestore:"ID"`
	UserID    string    `firestore:"UserID"`
	Name      string    `firestore:"Name"`
	NameLower string    `firestore:"NameLower"`
	Area      string    `firestore:"Area"`
	Notes     string    `firestore:"Notes"`
	Archived  bool      `firestore:"Archived"`
	CreatedAt time.Time `firestore:"CreatedAt"`
	UpdatedAt time.Time `firestore:"UpdatedAt"`
}

func toProjectDoc(p *model.Project) *projectDoc {
	return &projectDoc{
		ID:        p.ID.String(),
		UserID:    p.UserID.String(),
		Name:      p.Name,
		NameLower: strings.ToLower(p.Name),
		Area:      p.Area,
		Notes:     p.Notes,
		Archived:  p.Archived,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func fromProjectDoc(d *projectDoc) *model.Project {
	return &model.Project{
		ID:        types.ProjectID(d.ID),
		UserID:    types.UserID(d.UserID),
		Name:      d.Name,
		Area:      d.Area,
		Notes:     d.Notes,
		Archived:  d.Archived,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type projectRepository struct {
	client *firestore.Client
}

func newProjectRepository(client *firestore.Client) *projectRepository {
	return &projectRepository{client: client}
}

func (r *projectRepository) projectsCollection(userID types.UserID) *firestore.CollectionRef {
	return r.client.Collection("users").Doc(userID.String()).Collection("projects")
}

func (r *projectRepository) Create(ctx context.Context, userID types.UserID, project *model.Project) (*model.Project, error) {
	if err := project.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := *project
	created.ID = types.NewProjectID()
	created.UserID = userID
	created.CreatedAt = now
	created.UpdatedAt = now

	docRef := r.projectsCollection(userID).Doc(created.ID.String())
	if _, err := docRef.Set(ctx, toProjectDoc(&created)); err != nil {
		return nil, goerr.Wrap(err, "failed to create project", goerr.V("name", created.Name))
	}

	return &created, nil
}

func (r *projectRepository) GetByName(ctx context.Context, userID types.UserID, name string) (*model.Project, error) {
	iter := r.projectsCollection(userID).
		Where("NameLower", "==", strings.ToLower(name)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query project by name", goerr.V("name", name))
	}

	var d projectDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode project", goerr.V("doc_id", docSnap.Ref.ID))
	}

	return fromProjectDoc(&d), nil
}

func (r *projectRepository) List(ctx context.Context, userID types.UserID) ([]*model.Project, error) {
	iter := r.projectsCollection(userID).OrderBy("CreatedAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	projects := make([]*model.Project, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate projects")
		}

		var d projectDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode project", goerr.V("doc_id", docSnap.Ref.ID))
		}
		projects = append(projects, fromProjectDoc(&d))
	}

	return projects, nil
}

func (r *projectRepository) Archive(ctx context.Context, userID types.UserID, id types.ProjectID) error {
	docRef := r.projectsCollection(userID).Doc(id.String())

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to check project existence", goerr.V("id", id))
	}

	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "Archived", Value: true},
		{Path: "UpdatedAt", Value: time.Now().UTC()},
	})
	if err != nil {
		return goerr.Wrap(err, "failed to archive project", goerr.V("id", id))
	}

	return nil
}
