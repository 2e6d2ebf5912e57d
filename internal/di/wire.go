//go:build wireinject
// +build wireinject

package di

import (
	"FinVoice/pkg/config"
	"FinVoice/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideHTTPClient,
		ProvideAuditPublisher,
		ProvideSymbolCache,

		// Agent clients
		ProvideSymbolSearcher,
		ProvideMarketData,
		ProvideNews,
		ProvideRetrieval,
		ProvideAnalysis,
		ProvideGeneration,
		ProvideSpeech,

		// Orchestration core
		ProvideExtractor,
		ProvideDispatcher,
		ProvidePipeline,

		// HTTP boundary
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
