package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
)

type TemplateUsecase interface {
	List(ctx context.Context, category entity.TemplateCategory) ([]*entity.Template, error)
	Get(ctx context.Context, id string) (*entity.Template, error)
}

type templateUsecase struct {
	repo   repository.TemplateRepository
	logger *zap.Logger
}

func NewTemplateUsecase(repo repository.TemplateRepository, logger *zap.Logger) TemplateUsecase {
	return &templateUsecase{
		repo:   repo,
		logger: logger,
	}
}

func (u *templateUsecase) List(ctx context.Context, category entity.TemplateCategory) ([]*entity.Template, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", entity.ErrInvalidInput, category)
	}

	templates, err := u.repo.List(ctx, category)
	if err != nil {
		u.logger.Error("Failed to list templates", zap.String("category", string(category)), zap.Error(err))
		return nil, err
	}
	return templates, nil
}

func (u *templateUsecase) Get(ctx context.Context, id string) (*entity.Template, error) {
	return u.repo.FindByID(ctx, id)
}
