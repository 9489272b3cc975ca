package service

import (
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/redis/go-redis/v9"

	"plataforma-formacao/internal/cache"
	"plataforma-formacao/internal/config"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service/audit"
	"plataforma-formacao/internal/service/auth"
	"plataforma-formacao/internal/service/comment"
	"plataforma-formacao/internal/service/email"
	"plataforma-formacao/internal/service/enrollment"
	"plataforma-formacao/internal/service/notification"
	"plataforma-formacao/internal/service/publication"
	"plataforma-formacao/internal/service/report"
	"plataforma-formacao/internal/service/visibility"
	"plataforma-formacao/internal/service/vote"
)

type Services struct {
	Auth         auth.Service
	Visibility   visibility.Service
	Comment      comment.Service
	Report       report.Service
	Vote         vote.Service
	Publication  publication.Service
	Enrollment   enrollment.Service
	Email        email.Service
	Audit        audit.Service
	Notification notification.Service
}

func NewServices(repos *repository.Repositories, redis *redis.Client, minioClient *minio.Client, cfg *config.Config, logger *slog.Logger) *Services {
	ranking := cache.NewRankingCache(redis, cfg.RankingCacheTTL)

	emailService := email.NewService(cfg)
	authService := auth.NewService(repos.User, auth.Config{
		Secret:       cfg.JWTSecret,
		AccessExpiry: cfg.JWTAccessExpiry,
	})
	visibilityService := visibility.NewService(repos.Visibility, visibility.WithLogger(logger))
	auditService := audit.NewService(repos.AuditLog)
	notificationService := notification.NewService(repos.Notification, repos.User, repos.Publication, emailService)

	commentService := comment.NewService(repos.Comment, repos.Transactor, visibilityService, cfg.CommentMaxDepth, logger)
	commentService.SetNotificationService(notificationService)

	reportService := report.NewService(repos.Report, repos.Comment, repos.Transactor, visibilityService, ranking, report.Config{
		MaxDepth: cfg.CommentMaxDepth,
		Logger:   logger,
	})
	reportService.SetNotificationService(notificationService)

	voteService := vote.NewService(repos.Vote, repos.Publication, repos.Transactor, visibilityService, ranking, logger)

	var storage publication.ObjectStorage
	if minioClient != nil {
		storage = minioClient
	}
	publicationService := publication.NewService(repos.Publication, repos.Attachment, visibilityService, ranking, storage, publication.Config{
		Bucket:            cfg.MinIOBucket,
		URLExpiry:         cfg.AttachmentURLExpiry,
		MaxAttachmentSize: cfg.MaxAttachmentSize,
	})

	enrollmentService := enrollment.NewService(repos.Transactor, visibilityService)

	return &Services{
		Auth:         authService,
		Visibility:   visibilityService,
		Comment:      commentService,
		Report:       reportService,
		Vote:         voteService,
		Publication:  publicationService,
		Enrollment:   enrollmentService,
		Email:        emailService,
		Audit:        auditService,
		Notification: notificationService,
	}
}
