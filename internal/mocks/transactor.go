package mocks

import (
	"context"

	"plataforma-formacao/internal/repository"
)

// Transactor runs fn directly against UOW and counts how each call ended.
type Transactor struct {
	UOW       *repository.UnitOfWork
	Commits   int
	Rollbacks int
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(uow *repository.UnitOfWork) error) error {
	if err := fn(t.UOW); err != nil {
		t.Rollbacks++
		return err
	}
	t.Commits++
	return nil
}
