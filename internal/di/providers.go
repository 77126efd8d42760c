package di

import (
	"fmt"
	"time"

	"copydesk/internal/domain/models"
	"copydesk/internal/domain/repository"
	"copydesk/internal/handler/api"
	internalrepo "copydesk/internal/repository"
	"copydesk/internal/service/exec"
	"copydesk/internal/service/live"
	"copydesk/internal/symbols"
	"copydesk/internal/usecase"
	"copydesk/pkg/cache"
	"copydesk/pkg/config"
	pkghttp "copydesk/pkg/http"
	pkgkafka "copydesk/pkg/kafka"
	"copydesk/pkg/logger"
	"copydesk/pkg/metrics"
	"copydesk/pkg/queue"
	"copydesk/pkg/server"
)

// ProvideLogger creates the application logger from config. When the audit
// stream is enabled, error logs are additionally aggregated onto it.
func ProvideLogger(cfg *config.Config, audit repository.AuditPublisher) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	if cfg.Audit.Enabled && cfg.Audit.ErrorTopic != "" {
		if pub, ok := audit.(logger.Publisher); ok {
			l.AddCollector(&logger.CollectionConfig{
				TimeInterval:   30 * time.Second,
				CountThreshold: 100,
				Topic:          cfg.Audit.ErrorTopic,
				Publisher:      pub,
			})
		}
	}

	return l, nil
}

// ProvideCache creates the cache backend selected by config.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	switch cfg.Cache.Type {
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis", "layered":
		rc, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Cache.Redis.Host),
			cache.WithRedisPort(cfg.Cache.Redis.Port),
			cache.WithRedisPassword(cfg.Cache.Redis.Password),
			cache.WithRedisDB(cfg.Cache.Redis.DB),
			cache.WithRedisPool(cfg.Cache.Redis.PoolSize, 2, 5*time.Second),
			cache.WithRedisPrefix(cfg.Cache.Prefix),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		if cfg.Cache.Type == "layered" {
			return cache.NewLayeredCache(rc), nil
		}
		return rc, nil
	default:
		return nil, fmt.Errorf("unsupported cache type %q", cfg.Cache.Type)
	}
}

// ProvideMetrics creates the Prometheus recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideAuditPublisher creates the Kafka audit publisher, or a no-op one
// when auditing is disabled.
func ProvideAuditPublisher(cfg *config.Config) (repository.AuditPublisher, error) {
	if !cfg.Audit.Enabled {
		return internalrepo.NopAuditPublisher{}, nil
	}

	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Audit.Brokers),
		pkgkafka.WithCompression(cfg.Audit.Compression),
		pkgkafka.WithRequiredAcks(cfg.Audit.RequiredAcks),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("audit producer: %w", err)
	}

	return internalrepo.NewKafkaAuditPublisher(producer, cfg.Audit.Topic), nil
}

// ProvideArtifactStore creates the cache-backed session artifact store.
func ProvideArtifactStore(c cache.Service, cfg *config.Config) repository.ArtifactStore {
	return internalrepo.NewCacheArtifactStore(c, cfg.Cache.ArtifactTTL)
}

// ProvideExecClient creates the execution bridge client.
func ProvideExecClient(cfg *config.Config, l *logger.Logger) *exec.Client {
	opts := []exec.Option{exec.WithLogger(l)}
	if cfg.Exec.Timeout > 0 {
		opts = append(opts, exec.WithHTTPClient(pkghttp.NewClient(pkghttp.WithTimeout(cfg.Exec.Timeout))))
	}
	return exec.NewClient(cfg.Exec.BaseURL, cfg.Exec.APIKey, opts...)
}

// ProvideSubmitter exposes the bridge client's queue surface.
func ProvideSubmitter(c *exec.Client) repository.Submitter { return c }

// ProvideSizer exposes the bridge client's sizing surface.
func ProvideSizer(c *exec.Client) repository.Sizer { return c }

// ProvideHub creates the live activity hub.
func ProvideHub(l *logger.Logger) *live.Hub {
	return live.NewHub(l)
}

// ProvideNotifier exposes the hub to the use cases.
func ProvideNotifier(hub *live.Hub) usecase.Notifier {
	return hub
}

// ProvidePolicy builds the category precedence table used to resolve
// divergent report stances.
func ProvidePolicy(cfg *config.Config) symbols.Policy {
	if len(cfg.COT.Precedence) == 0 {
		return symbols.DefaultPolicy()
	}
	return symbols.PolicyFromConfig(cfg.COT.Precedence)
}

// ProvideAccounts converts configured follower accounts to domain accounts.
func ProvideAccounts(cfg *config.Config) []models.Account {
	out := make([]models.Account, 0, len(cfg.Copy.Accounts))
	for _, a := range cfg.Copy.Accounts {
		out = append(out, models.Account{ID: a.ID, Label: a.Label, Equity: a.Equity})
	}
	return out
}

// ProvideSignalsUseCase creates the signal extraction use case.
func ProvideSignalsUseCase(
	artifacts repository.ArtifactStore,
	audit repository.AuditPublisher,
	m repository.Metrics,
	notify usecase.Notifier,
	l *logger.Logger,
) *usecase.SignalsUseCase {
	return usecase.NewSignalsUseCase(artifacts, audit, m, notify, l)
}

// ProvideCOTUseCase creates the report extraction and merge use case.
func ProvideCOTUseCase(
	policy symbols.Policy,
	artifacts repository.ArtifactStore,
	audit repository.AuditPublisher,
	m repository.Metrics,
	notify usecase.Notifier,
	l *logger.Logger,
) *usecase.COTUseCase {
	return usecase.NewCOTUseCase(policy, artifacts, audit, m, notify, l)
}

// ProvideResubmitJob creates the retry handler for failed plan submissions.
func ProvideResubmitJob(
	submitter repository.Submitter,
	c cache.Service,
	audit repository.AuditPublisher,
	m repository.Metrics,
	l *logger.Logger,
) *usecase.ResubmitJob {
	return usecase.NewResubmitJob(submitter, c, audit, m, l)
}

// ProvideRequeue creates the Redis-backed resubmission queue. Without a Redis
// cache backend there is nowhere to stage retries, so it returns nil and
// failed submissions surface to the caller only.
func ProvideRequeue(c cache.Service, l *logger.Logger, job *usecase.ResubmitJob) *queue.RedisQueue {
	rc, ok := c.(*cache.RedisCache)
	if !ok {
		return nil
	}
	return queue.NewRedisConsumer(l, &queue.QueueConfig{
		Workers:    1,
		RetryLimit: 3,
		RetryDelay: 30 * time.Second,
	}, rc.Client(), []queue.Job{job}, queue.WithKeyPrefix("copydesk:plans"))
}

// ProvideCopyUseCase creates the fan-out and submission use case.
func ProvideCopyUseCase(
	cfg *config.Config,
	accounts []models.Account,
	submitter repository.Submitter,
	sizer repository.Sizer,
	audit repository.AuditPublisher,
	m repository.Metrics,
	notify usecase.Notifier,
	rq *queue.RedisQueue,
	l *logger.Logger,
) *usecase.CopyUseCase {
	var requeue usecase.Requeuer
	if rq != nil {
		requeue = rq
	}
	return usecase.NewCopyUseCase(accounts, cfg.Copy.BaselineEquity, submitter, sizer, audit, m, notify, requeue, l)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	handler *api.Handler,
	c cache.Service,
	audit repository.AuditPublisher,
	hub *live.Hub,
	rq *queue.RedisQueue,
) *server.App {
	return server.New(cfg, l, handler, c, audit, hub, rq)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(
	l *logger.Logger,
	signals *usecase.SignalsUseCase,
	cot *usecase.COTUseCase,
	copyUC *usecase.CopyUseCase,
	hub *live.Hub,
) *api.Handler {
	return api.NewHandler(l, signals, cot, copyUC, hub)
}
