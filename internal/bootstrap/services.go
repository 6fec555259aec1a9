package bootstrap

import (
	"database/sql"
	"log/slog"

	"github.com/gurmatacademy/portal/config"
	"github.com/gurmatacademy/portal/internal/adapters/gurbani"
	redisadapter "github.com/gurmatacademy/portal/internal/adapters/redis"
	"github.com/gurmatacademy/portal/internal/core"
	"github.com/gurmatacademy/portal/internal/data"
	"github.com/gurmatacademy/portal/internal/observability/statsd"
	"github.com/gurmatacademy/portal/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Gurbani       *service.GurbaniService
	Roster        *service.RosterService
	Assistant     *service.AssistantService
	Users         core.UserRepository
	Observability ObservabilityContainer
}

// ObservabilityContainer groups shared observability dependencies.
type ObservabilityContainer struct {
	MetricsSink   *statsd.Client
	MetricsConfig config.ObservabilityMetricsConfig
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB             *sql.DB
	Redis          redis.UniversalClient
	UserRepo       *data.UserRepo
	StudentRepo    *data.StudentRepo
	AttendanceRepo *data.AttendanceRepo
	CourseRepo     *data.CourseRepo
	AssistantRepo  *data.AssistantMessageRepo
	RaagCache      *redisadapter.RaagCache
}

// buildObservability configures the metrics sink.
func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	obsLogger := logger
	if obsLogger == nil {
		obsLogger = slog.Default()
	}

	var metricsSink *statsd.Client
	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  "portal",
			Logger:  obsLogger,
		})
		if err != nil {
			obsLogger.Error("failed to initialise statsd client", "error", err)
		} else {
			metricsSink = client
		}
	}

	return ObservabilityContainer{
		MetricsSink:   metricsSink,
		MetricsConfig: cfg.Metrics,
	}
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redis redis.UniversalClient) *serviceRepositories {
	repos := &serviceRepositories{
		DB:             db,
		Redis:          redis,
		UserRepo:       data.NewUserRepo(db),
		StudentRepo:    data.NewStudentRepo(db),
		AttendanceRepo: data.NewAttendanceRepo(db),
		CourseRepo:     data.NewCourseRepo(db),
		AssistantRepo:  data.NewAssistantMessageRepo(db),
	}
	if redis != nil {
		repos.RaagCache = redisadapter.NewRaagCache(redis)
	}
	return repos
}

func newGurbaniService(
	cfg *config.AppConfig,
	repos *serviceRepositories,
	stats *statsd.Client,
	logger *slog.Logger,
) *service.GurbaniService {
	client, err := gurbani.NewClient(gurbani.Config{
		SearchBaseURL:     cfg.Gurbani.SearchBaseURL,
		SearchResultsPath: cfg.Gurbani.SearchResultsPath,
		RaagIndexURL:      cfg.Gurbani.RaagIndexURL,
		Timeout:           cfg.Gurbani.Timeout,
		UserAgent:         cfg.Gurbani.UserAgent,
		Stats:             stats,
	}, nil)
	if err != nil {
		if logger != nil {
			logger.Warn("gurbani upstream misconfigured; service disabled", "error", err)
		}
		return nil
	}

	opts := service.GurbaniServiceOptions{
		Upstream: client,
		CacheTTL: cfg.Cache.RaagIndexTTL,
		Logger:   logger,
	}
	if repos.RaagCache != nil {
		opts.Cache = repos.RaagCache
	}

	svc, err := service.NewGurbaniService(opts)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to create gurbani service", "error", err)
		}
		return nil
	}
	return svc
}

func newRosterService(repos *serviceRepositories) *service.RosterService {
	return service.NewRosterService(service.RosterServiceOptions{
		Students:   repos.StudentRepo,
		Attendance: repos.AttendanceRepo,
		Courses:    repos.CourseRepo,
	})
}

func newAuthService(cfg config.AuthConfig, repos *serviceRepositories, logger *slog.Logger) *service.AuthService {
	return BuildAuthService(AuthConfig{
		Auth:        cfg,
		Users:       repos.UserRepo,
		RedisClient: repos.Redis,
		Logger:      logger,
	})
}

// DomainServicesOptions groups inputs for buildDomainServices.
type DomainServicesOptions struct {
	Repos         *serviceRepositories
	Observability ObservabilityContainer
	Config        *config.AppConfig
	Logger        *slog.Logger
}

// buildDomainServices wires business services using repositories and observability adapters.
func buildDomainServices(opts *DomainServicesOptions) ServiceContainer {
	if opts == nil {
		return ServiceContainer{}
	}
	svcLogger := opts.Logger
	if svcLogger == nil {
		svcLogger = slog.Default()
	}

	appCfg := opts.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	return ServiceContainer{
		Auth:          newAuthService(appCfg.Auth, opts.Repos, svcLogger),
		Gurbani:       newGurbaniService(appCfg, opts.Repos, opts.Observability.MetricsSink, svcLogger),
		Roster:        newRosterService(opts.Repos),
		Assistant:     service.NewAssistantService(opts.Repos.AssistantRepo),
		Users:         opts.Repos.UserRepo,
		Observability: opts.Observability,
	}
}

func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var obsCfg config.ObservabilityConfig
	if deps.Config != nil {
		obsCfg = deps.Config.Observability
	}
	observability := buildObservability(logger, obsCfg)
	repos := buildRepositories(deps.DB, deps.RedisClient)
	return buildDomainServices(&DomainServicesOptions{
		Repos:         repos,
		Observability: observability,
		Config:        deps.Config,
		Logger:        logger,
	})
}
