// Package state provides the bython build cache using SQLite.
// It records build runs and the content hash of every transpiled file so
// unchanged sources can be skipped.
package state

import "time"

// RunStatus is the lifecycle state of a build run.
type RunStatus string

// Run statuses.
const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// Run is one invocation of build or watch.
type Run struct {
	ID          string     `json:"id"`
	Status      RunStatus  `json:"status"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Files       int        `json:"files"`
	Errors      int        `json:"errors"`
}

// FileHash is the cached record of one transpiled source file.
type FileHash struct {
	FilePath    string
	ContentHash string
	OutputPath  string
	UpdatedAt   time.Time
}

// Store is the build cache used by the engine.
type Store interface {
	CreateRun() (*Run, error)
	CompleteRun(id string, status RunStatus, files, errors int) error
	GetRun(id string) (*Run, error)
	GetLatestRun() (*Run, error)

	GetContentHash(filePath string) (*FileHash, error)
	SetContentHash(filePath, hash, outputPath string) error
	DeleteContentHash(filePath string) error
	ListContentHashes() ([]*FileHash, error)

	Close() error
}

var _ Store = (*SQLiteStore)(nil)
