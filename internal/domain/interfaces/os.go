package interfaces

import (
	"context"
	"os"
	"time"
)

// CommandExecutor runs external system commands.
type CommandExecutor interface {
	// Execute runs a command and returns its stdout.
	Execute(ctx context.Context, command string, args ...string) ([]byte, error)

	// ExecuteWithTimeout runs a command under an explicit deadline. Every
	// mutating shell-out in this agent goes through this method so a hung
	// subsystem cannot stall the whole run.
	ExecuteWithTimeout(ctx context.Context, timeout time.Duration, command string, args ...string) ([]byte, error)

	// LookPath reports the full path of a command, or an error if it is
	// not resolvable. Used by the detection predicates.
	LookPath(command string) (string, error)
}

// FileSystem abstracts file system operations.
type FileSystem interface {
	// ReadFile reads a file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating parent directories.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// Exists checks whether a file or directory exists.
	Exists(path string) bool

	// MkdirAll creates a directory recursively.
	MkdirAll(path string, perm os.FileMode) error

	// Remove deletes a file or directory.
	Remove(path string) error

	// ListFiles returns the names of regular files in a directory.
	ListFiles(path string) ([]string, error)
}

// Clock abstracts time for backup timestamps.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
