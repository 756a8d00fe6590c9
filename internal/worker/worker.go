package worker

import (
	"context"

	"github.com/stroy1click/confirmation-service/internal/repository"
)

type Workers struct {
	CodePurger CodePurger
}

type Deps struct {
	Repos *repository.Repositories
}

type CodePurger interface {
	PurgeExpired(ctx context.Context) error
}

func NewWorkers(deps Deps) *Workers {
	return &Workers{
		CodePurger: newCodePurger(deps.Repos.ConfirmationCodes),
	}
}
