package repository

import (
	"context"

	"plume/internal/domain/entity"
)

type ContractRepository interface {
	// List returns the contracts matching filters, most recently updated first
	List(ctx context.Context, filters entity.ContractFilters) ([]*entity.Contract, error)

	FindByID(ctx context.Context, id string) (*entity.Contract, error)

	// Timeline returns the contract's events; unknown contracts yield an empty list
	Timeline(ctx context.Context, contractID string) ([]entity.TimelineEvent, error)

	Stats(ctx context.Context) (*entity.ContractStats, error)

	// Evidence is only available once the contract is completed
	Evidence(ctx context.Context, contractID string) (*entity.EvidenceBundle, error)
}

type TemplateRepository interface {
	// List filters by category; empty or "all" returns every template
	List(ctx context.Context, category entity.TemplateCategory) ([]*entity.Template, error)
	FindByID(ctx context.Context, id string) (*entity.Template, error)
}
