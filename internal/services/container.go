package services

import (
	"tasklist/internal/config"
	"tasklist/internal/repository/sqlite"
)

// NewServiceContainer wires all services around a repository
func NewServiceContainer(repo sqlite.Repository, cfg *config.Config) *ServiceContainer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return NewServiceContainerWithTime(repo, cfg, NewTimeService(cfg.Display.DateFormat))
}

// NewServiceContainerWithTime wires all services with a given TimeService
func NewServiceContainerWithTime(repo sqlite.Repository, cfg *config.Config, timeService TimeService) *ServiceContainer {
	return &ServiceContainer{
		TimeService:      timeService,
		TaskService:      NewTaskService(repo, timeService, cfg),
		SearchService:    NewSearchService(),
		ReportingService: NewReportingService(),
		TransferService:  NewTransferService(),
	}
}
