package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"

	"github.com/portfolio/portfolio-api/internal/config"
	"github.com/portfolio/portfolio-api/internal/domain/herophoto"
	"github.com/portfolio/portfolio-api/internal/domain/message"
	"github.com/portfolio/portfolio-api/internal/domain/project"
	"github.com/portfolio/portfolio-api/internal/domain/resume"
	"github.com/portfolio/portfolio-api/internal/domain/video"
	"github.com/portfolio/portfolio-api/internal/middleware"
	"github.com/portfolio/portfolio-api/internal/pkg/database"
	"github.com/portfolio/portfolio-api/internal/pkg/ratelimit"
	"github.com/portfolio/portfolio-api/internal/pkg/response"
	"github.com/portfolio/portfolio-api/internal/pkg/storage"
	"github.com/portfolio/portfolio-api/internal/pkg/upload"
	"github.com/portfolio/portfolio-api/internal/web"
)

// backend holds the repositories and blob store chosen at startup
type backend struct {
	mode string

	messages   message.Repository
	projects   project.Repository
	videos     video.Repository
	heroPhotos herophoto.Repository
	resumes    resume.Repository

	blobs storage.Storage
	// files serves /uploads in local mode; nil in remote mode
	files *storage.LocalStorage

	db *sqlx.DB
}

func (b *backend) Close() {
	if b.db != nil {
		database.ClosePostgres(b.db)
	}
}

// openLocalBackend keeps records in JSON files under cfg.DataDir and blobs
// under cfg.UploadsDir.
func openLocalBackend(cfg *config.Config) (*backend, error) {
	files, err := storage.NewLocalStorage(cfg.UploadsDir, cfg.UploadsURL)
	if err != nil {
		return nil, err
	}

	return &backend{
		mode:       config.BackendLocal,
		messages:   message.NewLocalRepository(cfg.DataDir),
		projects:   project.NewLocalRepository(cfg.DataDir),
		videos:     video.NewLocalRepository(cfg.DataDir),
		heroPhotos: herophoto.NewLocalRepository(cfg.DataDir),
		resumes:    resume.NewLocalRepository(cfg.DataDir),
		blobs:      files,
		files:      files,
	}, nil
}

// openBackend resolves the storage backend once. In remote mode the
// read-mostly collections fall back to the local JSON copy on list.
func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	if !cfg.IsRemote() {
		return openLocalBackend(cfg)
	}

	db, err := database.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		database.ClosePostgres(db)
		return nil, err
	}

	blobs, err := openBlobStore(ctx, cfg)
	if err != nil {
		database.ClosePostgres(db)
		return nil, err
	}

	return &backend{
		mode:       config.BackendRemote,
		messages:   message.NewRepository(db),
		projects:   project.NewFallbackRepository(project.NewRepository(db), project.NewLocalRepository(cfg.DataDir)),
		videos:     video.NewFallbackRepository(video.NewRepository(db), video.NewLocalRepository(cfg.DataDir)),
		heroPhotos: herophoto.NewFallbackRepository(herophoto.NewRepository(db), herophoto.NewLocalRepository(cfg.DataDir)),
		resumes:    resume.NewRepository(db),
		blobs:      blobs,
		db:         db,
	}, nil
}

func openBlobStore(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.BlobStore {
	case config.BlobR2:
		return storage.NewR2Storage(ctx, storage.R2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.S3AccessKey,
			AccessKeySecret: cfg.S3SecretKey,
			BucketName:      cfg.S3Bucket,
			PublicURL:       cfg.R2PublicURL,
		})
	default:
		return storage.NewS3Storage(ctx, storage.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	}
}

// newRouter wires every resource under /api. limiter may be nil.
func newRouter(cfg *config.Config, b *backend, uploads *upload.Service, limiter *ratelimit.Limiter) http.Handler {
	adminMiddleware := middleware.AdminPassword(cfg.AdminPassword)
	rateLimit := middleware.RateLimit(limiter)

	messageHandler := message.NewHandler(message.NewService(b.messages))
	projectHandler := project.NewHandler(project.NewService(b.projects, uploads), uploads.MaxSize())
	videoHandler := video.NewHandler(video.NewService(b.videos))
	heroHandler := herophoto.NewHandler(herophoto.NewService(b.heroPhotos, uploads), uploads.MaxSize())
	resumeHandler := resume.NewHandler(resume.NewService(b.resumes, uploads), uploads.MaxSize())

	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	r.Use(chimw.Compress(5))

	// Registered before the mounts so sub-routers inherit it
	r.NotFound(web.NewSPA(cfg.PublicDir).ServeHTTP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, map[string]string{
			"status":  "ok",
			"backend": b.mode,
		})
	})

	if b.files != nil && strings.HasPrefix(cfg.UploadsURL, "/") {
		r.Handle(cfg.UploadsURL+"/*", b.files.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Mount("/messages", messageHandler.Routes(adminMiddleware, rateLimit))
		r.Mount("/projects", projectHandler.Routes(adminMiddleware))
		r.Mount("/videos", videoHandler.Routes(adminMiddleware))
		r.Mount("/hero-photos", heroHandler.Routes(adminMiddleware))
		r.Mount("/resume", resumeHandler.Routes(adminMiddleware))
	})

	return r
}
