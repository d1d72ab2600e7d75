package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Task() TaskRepository
	Project() ProjectRepository
	Info() InfoRepository
	Contact() ContactRepository

	Close() error
}
