package factories

import (
	"log/slog"

	"github.com/AnotherFullstackDev/stepkit/internal/config"
	"github.com/AnotherFullstackDev/stepkit/internal/placeholders"
)

type SharedServicesLocator struct {
	Config              *config.Config
	Logger              *slog.Logger
	PlaceholdersService *placeholders.Service
}

func NewSharedServicesLocator(config *config.Config, logger *slog.Logger, placeholders *placeholders.Service) *SharedServicesLocator {
	if logger == nil {
		logger = slog.Default()
	}
	return &SharedServicesLocator{
		config,
		logger,
		placeholders,
	}
}

func (l *SharedServicesLocator) WithConfig(config *config.Config) *SharedServicesLocator {
	return &SharedServicesLocator{
		config,
		l.Logger,
		l.PlaceholdersService,
	}
}
