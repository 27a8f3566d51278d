package services

import (
	"tasklist/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct{}

// NewReportingService creates a new ReportingService instance
func NewReportingService() ReportingService {
	return &reportingServiceImpl{}
}

// Statistics counts completed and pending tasks
func (r *reportingServiceImpl) Statistics(list domain.TaskList) *ListStatistics {
	stats := &ListStatistics{Total: len(list)}
	for _, task := range list {
		if task.Completed {
			stats.Completed++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.PercentDone = stats.Completed * 100 / stats.Total
	}
	return stats
}
