package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"CourseForge/internal/app/server"
	"CourseForge/internal/config"
	"CourseForge/internal/delivery/http"
	"CourseForge/internal/service"
	"CourseForge/internal/service/auth"
	"CourseForge/internal/service/category"
	"CourseForge/internal/service/course"
	"CourseForge/internal/service/lesson"
	"CourseForge/internal/service/role"
	"CourseForge/internal/service/section"
	"CourseForge/internal/storage/elastic"
	"CourseForge/internal/storage/minio_storage"
	"CourseForge/internal/storage/postgres"
	"CourseForge/pkg/logger"
)

const thumbnailBucket = "thumbnails"

func Run(cfg *config.Config) {
	log := logger.New(cfg.Env)
	log.Info("Starting with Env: " + cfg.Env)

	pg, err := postgres.NewPostgresPool(cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)
	if err != nil {
		log.FatalErr("error connecting to database", err)
	}
	defer pg.Close()

	esClient, err := elastic.NewElasticClient(cfg.ES.Password, cfg.ES.Hosts)
	if err != nil {
		log.FatalErr("error connecting to elasticsearch", err)
	}
	searchRepo := elastic.NewCourseSearchRepository(esClient, cfg.ES.Index)
	if err := searchRepo.CreateIndexIfNotExist(context.Background()); err != nil {
		log.FatalErr("error preparing course search index", err)
	}

	minioStorage, err := minio_storage.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL, cfg.Minio.Buckets)
	if err != nil {
		log.FatalErr("error connecting to minio", err)
	}
	bucketCfg := cfg.Minio.Buckets[thumbnailBucket]
	thumbnailRepo, err := minio_storage.NewThumbnailStorage(minioStorage, bucketCfg.Name, bucketCfg.PresignTTL)
	if err != nil {
		log.FatalErr("error preparing thumbnail bucket", err)
	}

	courseRepo := postgres.NewCoursePostgres(pg.Pool)
	categoryRepo := postgres.NewCategoryPostgres(pg.Pool)
	sectionRepo := postgres.NewSectionPostgres(pg.Pool)
	lessonRepo := postgres.NewLessonPostgres(pg.Pool)
	contentRepo := postgres.NewContentPostgres(pg.Pool)
	userRepo := postgres.NewUserPostgres(pg.Pool)
	tokenRepo := postgres.NewTokensPostgres(pg.Pool)
	roleRepo := postgres.NewRolePostgres(pg.Pool)
	algorithmRepo := postgres.NewHashingPostgres(pg.Pool)

	jwtManager := auth.NewJWTManager(
		cfg.JWT.AccessSecretKey,
		cfg.JWT.RefreshSecretKey,
		cfg.JWT.Issuer,
		cfg.JWT.AccessTTL,
		cfg.JWT.RefreshTTL,
	)

	u := service.Collection{
		Auth:     auth.NewAuthService(log, jwtManager, userRepo, tokenRepo, roleRepo, algorithmRepo, cfg.Auth.DefaultHashAlgorithm),
		Course:   course.NewService(log, courseRepo, searchRepo, thumbnailRepo),
		Category: category.NewService(log, categoryRepo),
		Section:  section.NewService(log, courseRepo, sectionRepo),
		Lesson:   lesson.NewService(log, courseRepo, sectionRepo, lessonRepo, contentRepo, thumbnailRepo),
		Role:     role.NewService(log, roleRepo, algorithmRepo),
	}

	r := http.InitRoutes(log, u)

	srv := server.New(cfg.HTTPServer.Address, cfg.HTTPServer.Timeout, cfg.HTTPServer.IdleTimeout, r)
	srv.Start()
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		log.Info("app signal: " + s.String())
	case err := <-srv.Notify():
		log.ErrorErr("server error", err)
	}
	if err = srv.Shutdown(); err != nil {
		log.ErrorErr("server shutdown error", err)
	}
}
