package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/controllers"
	appMigrations "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/migrations"
	appRepos "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories"
	memoryRepos "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories/memory"
	mongoRepos "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories/mongo"
	pgRepos "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/repositories/postgres"
	appRoutes "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/routes"
	appServices "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/services"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/config"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/db"
	appMiddleware "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/middleware"
	pkgAuth "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/auth"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/email"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/filestorage"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/helpers"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/metrics"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/throttle"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/validation"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/seed"
)

// Store is the selected persistence backend and how to release it.
type Store struct {
	Repos  *appRepos.Repositories
	closer func()
}

// Close releases the backend's connections.
func (s *Store) Close() {
	if s != nil && s.closer != nil {
		s.closer()
	}
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store          *Store
	JWTService     *pkgAuth.JWTService
	Limiter        throttle.LoginLimiter
	FileStorage    filestorage.Storage
	LocalStorage   *filestorage.LocalStorage // nil unless storage.driver is local
	Metrics        *metrics.Metrics
	AuthService    appServices.AuthService
	BatchService   appServices.BatchService
	StudentService appServices.StudentService
	CourseService  appServices.CourseService
	FileService    appServices.FileService
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
	closers        []func()
}

// Close releases every resource opened while building the dependencies.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects the configured backend, prepares its schema and seeds it when asked.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	var store *Store
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		lgr.Info().Msg("Establishing PostgreSQL connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool).MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		store = &Store{Repos: pgRepos.NewRepositories(database), closer: database.Close}

	case config.DriverMongo:
		lgr.Info().Msg("Establishing MongoDB connection...")
		database, err := db.NewMongoDB(cfg.Database.MongoURI, cfg.Database.DBName)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to MongoDB")
			return nil, err
		}
		if err := mongoRepos.EnsureIndexes(ctx, database.Database); err != nil {
			database.Close()
			return nil, err
		}
		if !database.Transactions {
			lgr.Warn().Msg("MongoDB deployment has no transaction support, enrollments use compensation")
		}
		store = &Store{Repos: mongoRepos.NewRepositories(database), closer: database.Close}

	case config.DriverMemory:
		lgr.Warn().Msg("Using in-memory store, data is lost on restart")
		store = &Store{Repos: memoryRepos.New()}

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Database.Seed {
		if err := seed.CreateDefaultData(ctx, store.Repos.Courses, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Database ready")
	return store, nil
}

// setupLimiter returns a Redis-backed login limiter, or a no-op one when Redis is not configured.
func setupLimiter(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (throttle.LoginLimiter, func(), error) {
	if cfg.Redis.Addr == "" {
		lgr.Info().Msg("Redis not configured, login throttling disabled")
		return throttle.Noop{}, nil, nil
	}
	client, err := throttle.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		lgr.Error().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		return nil, nil, err
	}
	window := helpers.ParseDuration(cfg.Redis.LoginWindow, 15*time.Minute)
	limiter := throttle.NewRedisLimiter(client, cfg.Redis.LoginMaxAttempts, window, logger.Component("throttle"))
	closer := func() {
		if err := client.Close(); err != nil {
			lgr.Warn().Err(err).Msg("Error closing Redis client")
		}
	}
	return limiter, closer, nil
}

// setupStorage builds the configured file backend, wrapped with photo conversion.
func setupStorage(cfg *config.Config) (filestorage.Storage, *filestorage.LocalStorage, error) {
	var (
		base  filestorage.Storage
		local *filestorage.LocalStorage
		err   error
	)
	switch cfg.Storage.Driver {
	case config.StorageLocal:
		local, err = filestorage.NewLocalStorage(cfg.Storage.Path, cfg.PublicBaseURL()+"/uploads")
		base = local
	case config.StorageOSS:
		o := cfg.Storage.OSS
		base, err = filestorage.NewOSSStorage(filestorage.OSSConfig{
			Endpoint:        o.Endpoint,
			AccessKeyID:     o.AccessKeyID,
			AccessKeySecret: o.AccessKeySecret,
			Bucket:          o.Bucket,
			PublicBaseURL:   o.PublicBaseURL,
			Prefix:          o.Prefix,
		})
	default:
		err = fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	photos := filestorage.NewPhotoStorage(base, filestorage.WebPOptions{
		MaxW:    cfg.Storage.Photo.MaxWidth,
		MaxH:    cfg.Storage.Photo.MaxHeight,
		Quality: float32(cfg.Storage.Photo.Quality),
	})
	return photos, local, nil
}

func setupMailer(cfg *config.Config) email.EmailService {
	smtpCfg := email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.Port == 465,
	}
	if !smtpCfg.Enabled() {
		return nil
	}
	return email.NewEmailService(smtpCfg, logger.Component("email"))
}

// BuildDependencies initializes application services and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, store *Store, lgr zerolog.Logger) (*Dependencies, error) {
	validation.Register()
	deps := &Dependencies{Store: store, Logger: lgr, Metrics: metrics.New()}

	var err error
	deps.FileStorage, deps.LocalStorage, err = setupStorage(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, err
	}

	limiter, closeLimiter, err := setupLimiter(ctx, cfg, lgr)
	if err != nil {
		return nil, err
	}
	deps.Limiter = limiter
	if closeLimiter != nil {
		deps.closers = append(deps.closers, closeLimiter)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    helpers.ParseDuration(cfg.JWT.Expiration, 12*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})
	verifier := pkgAuth.NewCredentialVerifier(cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.PasswordHash)

	repos := store.Repos
	deps.AuthService = appServices.NewAuthService(verifier, deps.JWTService, deps.Limiter, deps.Metrics, logger.Component("auth"))
	deps.FileService = appServices.NewFileService(deps.FileStorage, cfg.MaxUploadBytes(), deps.Metrics, logger.Component("files"))
	deps.BatchService = appServices.NewBatchService(repos.Batches, repos.Students)
	deps.CourseService = appServices.NewCourseService(repos.Courses)
	deps.StudentService = appServices.NewStudentService(
		repos.Students,
		repos.Batches,
		deps.FileService,
		setupMailer(cfg),
		deps.Metrics,
		logger.Component("students"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.Auth.RequireToken)
	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(deps.AuthService, lgr),
		Batch:   appControllers.NewBatchController(deps.BatchService),
		Student: appControllers.NewStudentController(deps.StudentService, cfg.Pagination.MaxLimit),
		Course:  appControllers.NewCourseController(deps.CourseService),
		File:    appControllers.NewFileController(deps.FileService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.CORS(cfg.AllowedOrigins()),
		appMiddleware.Metrics(deps.Metrics),
	)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	router.GET("/metrics", deps.AuthMiddleware.AdminAuth(), gin.WrapH(deps.Metrics.Handler()))

	if deps.LocalStorage != nil {
		router.Static("/uploads", deps.LocalStorage.BasePath())
		lgr.Info().Str("path", deps.LocalStorage.BasePath()).Msg("Static file serving configured for uploads directory")
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": true, "message": "Route not found", "code": "RES_001"})
	})

	return router
}
