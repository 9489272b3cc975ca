package publication

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"plataforma-formacao/internal/cache"
	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/pkg/validate"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service/visibility"
)

// ObjectStorage is the part of *minio.Client used for attachments.
type ObjectStorage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

var errStorageUnavailable = errors.New("attachment storage unavailable")

type Config struct {
	Bucket            string
	URLExpiry         time.Duration
	MaxAttachmentSize int64
}

type Upload struct {
	FileName string
	MimeType string
	Size     int64
	Reader   io.Reader
}

type Service interface {
	Create(ctx context.Context, actor *domain.User, input domain.CreatePublicationInput) (*domain.Publication, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error)
	ListRanked(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams) (domain.OffsetPage[domain.Publication], error)
	UploadAttachment(ctx context.Context, actor *domain.User, publicationID uuid.UUID, upload Upload) (*domain.Attachment, error)
}

type service struct {
	publicationRepo repository.PublicationRepository
	attachmentRepo  repository.AttachmentRepository
	visibility      visibility.Service
	ranking         cache.RankingCache
	storage         ObjectStorage
	cfg             Config
}

func NewService(
	publicationRepo repository.PublicationRepository,
	attachmentRepo repository.AttachmentRepository,
	visibilitySvc visibility.Service,
	ranking cache.RankingCache,
	storage ObjectStorage,
	cfg Config,
) Service {
	return &service{
		publicationRepo: publicationRepo,
		attachmentRepo:  attachmentRepo,
		visibility:      visibilitySvc,
		ranking:         ranking,
		storage:         storage,
		cfg:             cfg,
	}
}

func (s *service) requireForumTopic(ctx context.Context, forumTopicID uuid.UUID) error {
	ok, err := s.visibility.ForumTopicVisible(ctx, forumTopicID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForumTopicNotFound
	}
	return nil
}

func (s *service) Create(ctx context.Context, actor *domain.User, input domain.CreatePublicationInput) (*domain.Publication, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := s.requireForumTopic(ctx, input.ForumTopicID); err != nil {
		return nil, err
	}

	pub := &domain.Publication{
		ID:           uuid.New(),
		ForumTopicID: input.ForumTopicID,
		AuthorID:     actor.ID,
		Title:        input.Title,
		Body:         input.Body,
		IsActive:     true,
	}
	if err := s.publicationRepo.Create(ctx, pub); err != nil {
		return nil, err
	}

	s.ranking.Invalidate(ctx, pub.ForumTopicID)
	return pub, nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*domain.Publication, error) {
	pub, err := s.publicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pub == nil {
		return nil, domain.ErrPublicationNotFound
	}

	ok, err := s.visibility.PublicationVisible(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrPublicationNotFound
	}

	attachments, err := s.attachmentRepo.ListByPublication(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range attachments {
		attachments[i].URL, err = s.presign(ctx, &attachments[i])
		if err != nil {
			return nil, err
		}
	}
	pub.Attachments = attachments

	return pub, nil
}

// ListRanked serves the forum topic's ranking from redis when present. Votes,
// new publications and hides invalidate the topic's entries.
func (s *service) ListRanked(ctx context.Context, forumTopicID uuid.UUID, params domain.OffsetParams) (domain.OffsetPage[domain.Publication], error) {
	params.Validate()

	if err := s.requireForumTopic(ctx, forumTopicID); err != nil {
		return domain.OffsetPage[domain.Publication]{}, err
	}

	if page, ok := s.ranking.Get(ctx, forumTopicID, params); ok {
		return *page, nil
	}

	pubs, total, err := s.publicationRepo.ListRankedByForumTopic(ctx, forumTopicID, params)
	if err != nil {
		return domain.OffsetPage[domain.Publication]{}, err
	}

	page := domain.NewOffsetPage(pubs, params, total)
	s.ranking.Set(ctx, forumTopicID, params, page)
	return page, nil
}

func (s *service) UploadAttachment(ctx context.Context, actor *domain.User, publicationID uuid.UUID, upload Upload) (*domain.Attachment, error) {
	if upload.Size <= 0 {
		return nil, domain.ErrEmptyAttachment
	}
	if s.cfg.MaxAttachmentSize > 0 && upload.Size > s.cfg.MaxAttachmentSize {
		return nil, domain.ErrAttachmentTooLarge
	}

	if s.storage == nil {
		return nil, errStorageUnavailable
	}

	pub, err := s.GetByID(ctx, publicationID)
	if err != nil {
		return nil, err
	}

	isAuthor := pub.AuthorID == actor.ID && actor.IsActive
	if !isAuthor &&
		!visibility.ActorHasRole(actor, domain.RoleInstructor) &&
		!visibility.ActorHasRole(actor, domain.RoleManager) {
		return nil, domain.ErrForbidden
	}

	attachmentID := uuid.New()
	storagePath := fmt.Sprintf("anexos/%s/%s/%s%s",
		time.Now().Format("2006/01"), publicationID, attachmentID, path.Ext(upload.FileName))

	_, err = s.storage.PutObject(ctx, s.cfg.Bucket, storagePath, upload.Reader, upload.Size, minio.PutObjectOptions{
		ContentType: upload.MimeType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	attachment := &domain.Attachment{
		ID:            attachmentID,
		PublicationID: publicationID,
		UploadedBy:    actor.ID,
		FileName:      upload.FileName,
		FileSize:      upload.Size,
		MimeType:      upload.MimeType,
		StoragePath:   storagePath,
		IsActive:      true,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		_ = s.storage.RemoveObject(ctx, s.cfg.Bucket, storagePath, minio.RemoveObjectOptions{})
		return nil, err
	}

	attachment.URL, err = s.presign(ctx, attachment)
	if err != nil {
		return nil, err
	}
	return attachment, nil
}

// presign returns a time-limited download link. The bucket is private, so a hidden
// publication's files are unreachable once its rows stop listing them.
func (s *service) presign(ctx context.Context, a *domain.Attachment) (string, error) {
	if s.storage == nil {
		return "", nil
	}
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", a.FileName))

	u, err := s.storage.PresignedGetObject(ctx, s.cfg.Bucket, a.StoragePath, s.cfg.URLExpiry, params)
	if err != nil {
		return "", fmt.Errorf("presign attachment: %w", err)
	}
	return u.String(), nil
}
