package services

import (
	"context"
	"time"

	"tasklist/internal/domain"
)

// TaskMatch is a task together with its zero-based index in the full list
type TaskMatch struct {
	Index int         `json:"index"`
	Task  domain.Task `json:"task"`
}

// Position returns the one-based position shown to users
func (m TaskMatch) Position() int {
	return m.Index + 1
}

// StatusFilter restricts a search by completion state
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

// SearchCriteria represents criteria for narrowing the task list
type SearchCriteria struct {
	TextFilter string       `json:"text_filter,omitempty"`
	Status     StatusFilter `json:"status,omitempty"`
}

// ListStatistics summarizes the task list
type ListStatistics struct {
	Total       int `json:"total"`
	Completed   int `json:"completed"`
	Pending     int `json:"pending"`
	PercentDone int `json:"percent_done"`
}

// Outcome reports what a dispatched command did
type Outcome struct {
	Task    *domain.Task // the created task, for AddCommand
	Changed bool
}

// TimeService stamps new tasks with IDs and dates
type TimeService interface {
	Now() time.Time
	// NextID returns a task ID derived from at, strictly greater than every
	// ID in list and than last.
	NextID(at time.Time, list domain.TaskList, last int64) int64
	DateStamp(at time.Time) string
}

// TaskService owns the task list and mirrors it to storage
type TaskService interface {
	// Persistence
	Load(ctx context.Context) error
	Save(ctx context.Context) error

	// Mutations
	Add(ctx context.Context, name string) (*domain.Task, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ToggleCompleted(ctx context.Context, id int64) (bool, error)
	Complete(ctx context.Context, id int64) (bool, error)
	Reorder(ctx context.Context, source, destination int) error
	Drop(ctx context.Context, result domain.DropResult) (bool, error)
	Replace(ctx context.Context, list domain.TaskList) error
	Clear(ctx context.Context) (int, error)

	// Storage keys
	StoredKeys(ctx context.Context) ([]string, error)
	Key() string

	// Dispatch
	Apply(ctx context.Context, cmd Command) (Outcome, error)

	Tasks() domain.TaskList
}

// SearchService narrows the task list for display
type SearchService interface {
	Search(list domain.TaskList, criteria SearchCriteria) []TaskMatch
	ParseStatus(s string) (StatusFilter, error)
}

// ReportingService computes list statistics
type ReportingService interface {
	Statistics(list domain.TaskList) *ListStatistics
}

// TransferService converts the task list to and from exchange formats
type TransferService interface {
	Export(list domain.TaskList, format Format) ([]byte, error)
	Import(data []byte, format Format) (domain.TaskList, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TimeService      TimeService
	TaskService      TaskService
	SearchService    SearchService
	ReportingService ReportingService
	TransferService  TransferService
}
