package services

import (
	"strings"

	"tasklist/internal/domain"
	"tasklist/internal/errors"
)

// searchServiceImpl implements the SearchService interface
type searchServiceImpl struct{}

// NewSearchService creates a new SearchService instance
func NewSearchService() SearchService {
	return &searchServiceImpl{}
}

// matchesTextFilter checks if a task name matches the text filter
func (s *searchServiceImpl) matchesTextFilter(taskName, textFilter string) bool {
	if textFilter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(taskName), strings.ToLower(textFilter))
}

func (s *searchServiceImpl) matchesStatus(task domain.Task, status StatusFilter) bool {
	switch status {
	case StatusPending:
		return !task.Completed
	case StatusCompleted:
		return task.Completed
	default:
		return true
	}
}

// Search returns the tasks matching criteria in list order, each with its
// index in the full list so positions stay addressable.
func (s *searchServiceImpl) Search(list domain.TaskList, criteria SearchCriteria) []TaskMatch {
	textFilter := strings.TrimSpace(criteria.TextFilter)

	matches := make([]TaskMatch, 0, len(list))
	for i, task := range list {
		if !s.matchesStatus(task, criteria.Status) {
			continue
		}
		if !s.matchesTextFilter(task.Name, textFilter) {
			continue
		}
		matches = append(matches, TaskMatch{Index: i, Task: task})
	}
	return matches
}

// ParseStatus parses a status flag value. The empty string means all.
func (s *searchServiceImpl) ParseStatus(value string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(value))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPending, "open", "todo":
		return StatusPending, nil
	case StatusCompleted, "done":
		return StatusCompleted, nil
	default:
		return "", errors.NewInvalidInputError("status", value, "must be all, pending or completed")
	}
}
