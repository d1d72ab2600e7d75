package usecase

// Exposed for tests
var (
	FindEventByTitle  = findEventByTitle
	FindEventsByTitle = findEventsByTitle
	FindTaskByTitle   = findTaskByTitle
)
