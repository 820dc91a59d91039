package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/acamacho/jobtrail/pkg/auth"
	"github.com/acamacho/jobtrail/pkg/logx"
	"github.com/acamacho/jobtrail/pkg/txm"
	"github.com/acamacho/jobtrail/tracking/application/applicationapi"
	"github.com/acamacho/jobtrail/tracking/application/applicationinfra"
	"github.com/acamacho/jobtrail/tracking/application/applicationsrv"
	"github.com/acamacho/jobtrail/tracking/company/companyapi"
	"github.com/acamacho/jobtrail/tracking/company/companyinfra"
	"github.com/acamacho/jobtrail/tracking/company/companysrv"
	"github.com/acamacho/jobtrail/tracking/diagnostics/diagnosticsapi"
	"github.com/acamacho/jobtrail/tracking/diagnostics/diagnosticssrv"
	"github.com/acamacho/jobtrail/tracking/report/reportapi"
	"github.com/acamacho/jobtrail/tracking/report/reportinfra"
	"github.com/acamacho/jobtrail/tracking/report/reportsrv"
	"github.com/acamacho/jobtrail/tracking/status/statusapi"
	"github.com/acamacho/jobtrail/tracking/status/statusinfra"
	"github.com/acamacho/jobtrail/tracking/status/statussrv"
	"github.com/acamacho/jobtrail/tracking/user/userapi"
	"github.com/acamacho/jobtrail/tracking/user/userinfra"
	"github.com/acamacho/jobtrail/tracking/user/usersrv"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Container holds all application dependencies
type Container struct {
	// Infrastructure
	DB    *sqlx.DB
	Redis *redis.Client
	Txm   *txm.Manager

	// Auth
	TokenService   *auth.TokenService
	AuthMiddleware *auth.Middleware

	// Domain Services
	UserService        *usersrv.UserService
	CompanyService     *companysrv.CompanyService
	StatusService      *statussrv.StatusService
	ApplicationService *applicationsrv.ApplicationService
	ReportService      *reportsrv.ReportService
	AnalyzerService    *diagnosticssrv.AnalyzerService

	// API Handlers
	UserHandlers        *userapi.Handlers
	CompanyHandlers     *companyapi.Handlers
	StatusHandlers      *statusapi.Handlers
	ApplicationHandlers *applicationapi.Handlers
	ReportHandlers      *reportapi.Handlers
	DiagnosticsHandlers *diagnosticsapi.Handlers
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis, report caching disabled: %v", err)
	}

	// 3. Transaction Manager
	c.Txm = txm.NewManager(c.DB)

	// 4. Auth
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		jwtSecret = "super-secret-key-please-change-me-in-production"
	}
	authEnabled := os.Getenv("AUTH_ENABLED") != "false"
	c.TokenService = auth.NewTokenService(jwtSecret, 24*time.Hour, "jobtrail")
	c.AuthMiddleware = auth.NewMiddleware(c.TokenService, authEnabled)
}

func (c *Container) initServices() {
	// --- Repositories ---
	userRepo := userinfra.NewPostgresUserRepository(c.DB, c.Txm)
	companyRepo := companyinfra.NewPostgresCompanyRepository(c.DB, c.Txm)
	statusRepo := statusinfra.NewPostgresStatusRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)

	joinStrategy := reportinfra.ParseJoinStrategy(os.Getenv("REPORT_JOIN_STRATEGY"))
	reportRepo := reportinfra.NewPostgresReportRepository(c.DB, joinStrategy)
	reportCache := reportinfra.NewRedisReportCache(c.Redis)

	// --- Domain Services ---
	c.UserService = usersrv.NewUserService(userRepo)
	c.CompanyService = companysrv.NewCompanyService(companyRepo)
	c.StatusService = statussrv.NewStatusService(statusRepo)
	c.ApplicationService = applicationsrv.NewApplicationService(
		applicationRepo,
		userRepo,
		companyRepo,
		statusRepo,
		c.Txm,
	)
	c.ReportService = reportsrv.NewReportService(reportRepo, reportCache, reportCacheTTL())
	c.AnalyzerService = diagnosticssrv.NewAnalyzerService(c.DB)

	// --- Handlers ---
	c.UserHandlers = userapi.NewHandlers(c.UserService, c.TokenService)
	c.CompanyHandlers = companyapi.NewHandlers(c.CompanyService)
	c.StatusHandlers = statusapi.NewHandlers(c.StatusService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.ReportHandlers = reportapi.NewHandlers(c.ReportService)
	c.DiagnosticsHandlers = diagnosticsapi.NewHandlers(c.AnalyzerService)
}

func reportCacheTTL() time.Duration {
	raw := os.Getenv("REPORT_CACHE_TTL_SECONDS")
	if raw == "" {
		return 60 * time.Second
	}
	seconds, err := strconv.Atoi(raw)
	if err != nil || seconds <= 0 {
		logx.Warnf("Invalid REPORT_CACHE_TTL_SECONDS %q, using 60", raw)
		return 60 * time.Second
	}
	return time.Duration(seconds) * time.Second
}
