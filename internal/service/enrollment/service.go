package enrollment

import (
	"context"

	"github.com/google/uuid"

	"plataforma-formacao/internal/domain"
	"plataforma-formacao/internal/repository"
	"plataforma-formacao/internal/service/visibility"
)

type Service interface {
	Enroll(ctx context.Context, actor *domain.User, courseID uuid.UUID) (*domain.Enrollment, error)
}

type service struct {
	tx         repository.Transactor
	visibility visibility.Service
}

func NewService(tx repository.Transactor, visibilitySvc visibility.Service) Service {
	return &service{
		tx:         tx,
		visibility: visibilitySvc,
	}
}

// Enroll registers the actor as a trainee of the course. The course row is locked so
// the vacancy check and the decrement cannot interleave with another enrollment.
func (s *service) Enroll(ctx context.Context, actor *domain.User, courseID uuid.UUID) (*domain.Enrollment, error) {
	if !visibility.ActorHasRole(actor, domain.RoleTrainee) {
		return nil, domain.ErrForbidden
	}

	ok, err := s.visibility.CourseVisible(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrCourseNotFound
	}

	enrollment := &domain.Enrollment{
		ID:        uuid.New(),
		CourseID:  courseID,
		TraineeID: actor.ID,
	}

	err = s.tx.WithinTx(ctx, func(uow *repository.UnitOfWork) error {
		course, err := uow.Courses.LockByID(ctx, courseID)
		if err != nil {
			return err
		}
		if course == nil {
			return domain.ErrCourseNotFound
		}

		exists, err := uow.Enrollments.Exists(ctx, courseID, actor.ID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrAlreadyEnrolled
		}

		if err := uow.Courses.DecrementVacancies(ctx, courseID); err != nil {
			return err
		}

		if err := uow.Enrollments.Create(ctx, enrollment); err != nil {
			if repository.IsUniqueViolation(err) {
				return domain.ErrAlreadyEnrolled
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return enrollment, nil
}
