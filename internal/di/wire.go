//go:build wireinject
// +build wireinject

package di

import (
	"copydesk/pkg/config"
	"copydesk/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure
		ProvideCache,
		ProvideAuditPublisher,
		ProvideLogger,
		ProvideMetrics,
		ProvideHub,
		ProvideNotifier,

		// Repositories and clients
		ProvideArtifactStore,
		ProvideExecClient,
		ProvideSubmitter,
		ProvideSizer,
		ProvideResubmitJob,
		ProvideRequeue,

		// Domain configuration
		ProvidePolicy,
		ProvideAccounts,

		// Use cases
		ProvideSignalsUseCase,
		ProvideCOTUseCase,
		ProvideCopyUseCase,

		// HTTP surface and application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
