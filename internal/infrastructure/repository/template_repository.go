package repository

import (
	"context"
	"fmt"

	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
	"plume/internal/infrastructure/fixture"
	"plume/internal/infrastructure/latency"
)

type templateRepository struct {
	fixtures *fixture.Set
	latency  *latency.Simulator
}

func NewTemplateRepository(fixtures *fixture.Set, latency *latency.Simulator) repository.TemplateRepository {
	return &templateRepository{
		fixtures: fixtures,
		latency:  latency,
	}
}

func (r *templateRepository) List(ctx context.Context, category entity.TemplateCategory) ([]*entity.Template, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}

	templates := r.fixtures.Templates()
	if category == "" || category == entity.TemplateCategoryAll {
		return templates, nil
	}

	result := make([]*entity.Template, 0, len(templates))
	for _, t := range templates {
		if t.Category == category {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *templateRepository) FindByID(ctx context.Context, id string) (*entity.Template, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}

	t, ok := r.fixtures.Template(id)
	if !ok {
		return nil, fmt.Errorf("template %s: %w", id, entity.ErrNotFound)
	}
	return t, nil
}
