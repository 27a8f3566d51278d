package config

import (
	"fmt"
	"os"

	"tasklist/internal/repository/sqlite"
)

// Environment selects where the key-value store lives
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// GetEnvironment reads TL_ENV, defaulting to production
func GetEnvironment() Environment {
	switch Environment(os.Getenv("TL_ENV")) {
	case Development:
		return Development
	case Testing:
		return Testing
	default:
		return Production
	}
}

// CreateRepository opens the repository for the given environment
func CreateRepository(cfg *Config, env Environment) (sqlite.Repository, error) {
	switch env {
	case Testing:
		return CreateTestRepository()
	case Development:
		// Local database in the working directory.
		repo, err := sqlite.NewWithOptions(cfg.Storage.Filename, repositoryOptions(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize development database: %w", err)
		}
		return repo, nil
	default:
		if err := os.MkdirAll(cfg.Storage.Dir, os.FileMode(cfg.Storage.DirPermissions)); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		repo, err := sqlite.NewWithOptions(cfg.GetDatabasePath(), repositoryOptions(cfg))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		return repo, nil
	}
}

// CreateTestRepository creates an in-memory repository for testing
func CreateTestRepository() (sqlite.Repository, error) {
	repo, err := sqlite.New(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize test database: %w", err)
	}
	return repo, nil
}

func repositoryOptions(cfg *Config) sqlite.Options {
	return sqlite.Options{
		QueryTimeout: cfg.Storage.QueryTimeout,
		WriteTimeout: cfg.Storage.WriteTimeout,
	}
}
