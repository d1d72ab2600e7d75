package config

// NewLoggerForTest creates a Logger config for testing purposes
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{
		level:  level,
		format: format,
		output: output,
	}
}

// NewGeminiForTest creates a Gemini config for testing purposes
func NewGeminiForTest(projectID, location string) *Gemini {
	return &Gemini{
		projectID: projectID,
		location:  location,
	}
}

// NewRepositoryForTest creates a Repository config for testing purposes
func NewRepositoryForTest(backend, projectID, databaseID string) *Repository {
	return &Repository{
		backend:    backend,
		projectID:  projectID,
		databaseID: databaseID,
	}
}

// NewAssistantForTest creates an Assistant config for testing purposes
func NewAssistantForTest(fallbackUser, timezone string, workdayStart, workdayEnd int) *Assistant {
	return &Assistant{
		fallbackUser: fallbackUser,
		timezone:     timezone,
		workdayStart: workdayStart,
		workdayEnd:   workdayEnd,
	}
}

// SetProfilePathForTest points the assistant config at a profile file
func (a *Assistant) SetProfilePathForTest(path string) {
	a.profilePath = path
}
