package memory

import (
	"errors"

	"github.com/vesper-lab/adjutant/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// Memory is an in-memory Repository implementation for development and
// tests. All data is lost on process exit.
type Memory struct {
	task    *taskRepository
	project *projectRepository
	info    *infoRepository
	contact *contactRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		task:    newTaskRepository(),
		project: newProjectRepository(),
		info:    newInfoRepository(),
		contact: newContactRepository(),
	}
}

func (m *Memory) Task() interfaces.TaskRepository {
	return m.task
}

func (m *Memory) Project() interfaces.ProjectRepository {
	return m.project
}

func (m *Memory) Info() interfaces.InfoRepository {
	return m.info
}

func (m *Memory) Contact() interfaces.ContactRepository {
	return m.contact
}

func (m *Memory) Close() error {
	return nil
}
