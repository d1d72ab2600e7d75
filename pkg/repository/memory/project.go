package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/vesper-lab/adjutant/pkg/domain/model"
	"github.com/vesper-lab/adjutant/pkg/domain/types"
)

type projectRepository struct {
	mu       sync.RWMutex
	projects map[types.UserID]map[types.ProjectID]*model.Project
}

func newProjectRepository() *projectRepository {
	return &projectRepository{
		projects: make(map[types.UserID]map[types.ProjectID]*model.Project),
	}
}

func copyProject(p *model.Project) *model.Project {
	copied := *p
	return &copied
}

func (r *projectRepository) Create(ctx context.Context, userID types.UserID, project *model.Project) (*model.Project, error) {
	if err := project.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.projects[userID]; !exists {
		r.projects[userID] = make(map[types.ProjectID]*model.Project)
	}

	now := time.Now().UTC()
	created := copyProject(project)
	created.ID = types.NewProjectID()
	created.UserID = userID
	created.CreatedAt = now
	created.UpdatedAt = now

	r.projects[userID][created.ID] = created
	return copyProject(created), nil
}

func (r *projectRepository) GetByName(ctx context.Context, userID types.UserID, name string) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.projects[userID] {
		if strings.EqualFold(p.Name, name) {
			return copyProject(p), nil
		}
	}
	return nil, nil
}

func (r *projectRepository) List(ctx context.Context, userID types.UserID) ([]*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.projects[userID]
	projects := make([]*model.Project, 0, len(rows))
	for _, p := range rows {
		projects = append(projects, copyProject(p))
	}

	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})

	return projects, nil
}

func (r *projectRepository) Archive(ctx context.Context, userID types.UserID, id types.ProjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, exists := r.projects[userID]
	if !exists {
		return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}
	p, exists := rows[id]
	if !exists {
		return goerr.Wrap(ErrNotFound, "project not found", goerr.V("id", id))
	}

	p.Archived = true
	p.UpdatedAt = time.Now().UTC()
	return nil
}
