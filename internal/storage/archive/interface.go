// internal/storage/archive/interface.go
package archive

import "context"

// Storage defines the interface for report archive backends
type Storage interface {
	// Write stores a rendered report at the given path
	Write(ctx context.Context, path string, data []byte) error

	// Read retrieves an archived report from the given path
	Read(ctx context.Context, path string) ([]byte, error)

	// List returns all report paths matching the prefix
	List(ctx context.Context, prefix string) ([]string, error)

	// Delete removes the report at the given path
	Delete(ctx context.Context, path string) error

	// Exists checks if a report exists at the given path
	Exists(ctx context.Context, path string) (bool, error)
}
