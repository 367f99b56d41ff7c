package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Assessment() AssessmentRepository

	// Close releases resources held by the backend
	Close() error
}
