package di

import (
	"time"

	domrepo "FinVoice/internal/domain/repository"
	domservice "FinVoice/internal/domain/service"
	"FinVoice/internal/handler/api"
	internalrepo "FinVoice/internal/repository"
	"FinVoice/internal/service/agents"
	icache "FinVoice/internal/service/cache"
	"FinVoice/internal/service/extractor"
	"FinVoice/internal/service/ratelimit"
	"FinVoice/internal/usecase"
	"FinVoice/pkg/config"
	xhttp "FinVoice/pkg/http"
	pkgkafka "FinVoice/pkg/kafka"
	applogger "FinVoice/pkg/logger"
	"FinVoice/pkg/metrics"
	"FinVoice/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	return applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() domrepo.Metrics {
	return metrics.New()
}

// ProvideHTTPClient creates the pooled HTTP client shared by all agent
// clients. Per-call deadlines come from contexts, so the client-level
// timeout is only a safety net.
func ProvideHTTPClient() *xhttp.Client {
	return xhttp.NewClient(xhttp.WithTimeout(120 * time.Second))
}

// ProvideAuditPublisher creates the Kafka audit publisher, or a noop when
// no brokers are configured. When Kafka is available, the logger's
// aggregated error collector shares the same producer.
func ProvideAuditPublisher(cfg *config.Config, logger *applogger.Logger) (domrepo.AuditPublisher, error) {
	if len(cfg.Kafka.Brokers) == 0 {
		return internalrepo.NoopAuditPublisher{}, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithWriteTimeout(cfg.Kafka.WriteTimeout),
		pkgkafka.WithAsync(cfg.Kafka.Async),
	)
	if err != nil {
		return nil, err
	}
	pub := internalrepo.NewKafkaAuditPublisher(producer, cfg.Kafka.Topic)
	logger.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 100,
		Topic:          cfg.Kafka.Topic + ".logs",
		Publisher:      pub,
	})
	return pub, nil
}

// ProvideSymbolCache picks the symbol-resolution cache backend.
func ProvideSymbolCache(cfg *config.Config) icache.BytesCache {
	if cfg.Cache.Redis.Enabled {
		return icache.NewRedisCache(icache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		})
	}
	return icache.NewTTLCache()
}

// ProvideSymbolSearcher creates the external symbol search client.
func ProvideSymbolSearcher(cfg *config.Config, client *xhttp.Client, m domrepo.Metrics) domservice.SymbolSearcher {
	return agents.NewSymbolSearchClient(cfg, client, m)
}

// ProvideExtractor creates the ticker/URL extractor.
func ProvideExtractor(cfg *config.Config, search domservice.SymbolSearcher, c icache.BytesCache, logger *applogger.Logger) *extractor.Extractor {
	return extractor.New(search, logger,
		extractor.WithCache(c, cfg.SymbolSearch.CacheTTL),
		extractor.WithRateLimit(ratelimit.New(), cfg.SymbolSearch.RateCapacity, cfg.SymbolSearch.RatePerSecond),
		extractor.WithSearchTimeout(cfg.SymbolSearch.Timeout),
		extractor.WithMaxPhrases(cfg.SymbolSearch.MaxPhrases),
	)
}

// ProvideMarketData creates the market data agent client.
func ProvideMarketData(cfg *config.Config, client *xhttp.Client, m domrepo.Metrics) domservice.MarketDataService {
	return agents.NewMarketClient(cfg, client, m)
}

// ProvideNews creates the news agent client.
func ProvideNews(cfg *config.Config, client *xhttp.Client, m domrepo.Metrics) domservice.NewsService {
	return agents.NewNewsClient(cfg, client, m)
}

// ProvideRetrieval creates the retrieval agent client.
func ProvideRetrieval(cfg *config.Config, client *xhttp.Client, m domrepo.Metrics) domservice.RetrievalService {
	return agents.NewRetrievalClient(cfg, client, m)
}

// ProvideAnalysis creates the analysis agent client.
func ProvideAnalysis(cfg *config.Config, client *xhttp.Client, m domrepo.Metrics) domservice.AnalysisService {
	return agents.NewAnalysisClient(cfg, client, m)
}

// ProvideGeneration creates the generation agent client.
func ProvideGeneration(cfg *config.Config, client *xhttp.Client, m domrepo.Metrics) domservice.GenerationService {
	return agents.NewGenerationClient(cfg, client, m)
}

// ProvideSpeech creates the speech agent client.
func ProvideSpeech(cfg *config.Config, client *xhttp.Client, m domrepo.Metrics) domservice.SpeechService {
	return agents.NewSpeechClient(cfg, client, m)
}

// ProvideDispatcher creates the fan-out dispatcher.
func ProvideDispatcher(market domservice.MarketDataService, news domservice.NewsService, retrieval domservice.RetrievalService, logger *applogger.Logger) *usecase.Dispatcher {
	return usecase.NewDispatcher(market, news, retrieval, logger)
}

// ProvidePipeline creates the orchestration pipeline.
func ProvidePipeline(
	ext *extractor.Extractor,
	dispatcher *usecase.Dispatcher,
	analysis domservice.AnalysisService,
	generation domservice.GenerationService,
	speech domservice.SpeechService,
	audit domrepo.AuditPublisher,
	m domrepo.Metrics,
	logger *applogger.Logger,
) *usecase.Pipeline {
	return usecase.NewPipeline(ext, dispatcher, analysis, generation, speech, audit, m, logger)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(logger *applogger.Logger, pipeline *usecase.Pipeline, retrieval domservice.RetrievalService) xhttp.Handler {
	return api.NewAssistantHandler(logger, pipeline, retrieval)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, handler xhttp.Handler, logger *applogger.Logger, audit domrepo.AuditPublisher) *server.App {
	return server.New(cfg, handler, logger, audit)
}
