package handlers

import (
	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"ctcsite/sitebuilder/internal/jobs"
	"ctcsite/sitebuilder/internal/worker"
)

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Logger     *logrus.Logger
	DB         *supa.Client
	Generator  jobs.Generator
	Dispatcher *worker.Dispatcher
}

// NewApplicationHandler creates a new ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(logger *logrus.Logger, dbClient *supa.Client, generator jobs.Generator, dispatcher *worker.Dispatcher) *ApplicationHandler {
	return &ApplicationHandler{
		Logger:     logger,
		DB:         dbClient,
		Generator:  generator,
		Dispatcher: dispatcher,
	}
}
