package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
	"plume/internal/infrastructure/fixture"
	"plume/internal/infrastructure/latency"
)

type contractRepository struct {
	fixtures *fixture.Set
	latency  *latency.Simulator
}

func NewContractRepository(fixtures *fixture.Set, latency *latency.Simulator) repository.ContractRepository {
	return &contractRepository{
		fixtures: fixtures,
		latency:  latency,
	}
}

func (r *contractRepository) List(ctx context.Context, filters entity.ContractFilters) ([]*entity.Contract, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}

	contracts := r.fixtures.Contracts()
	result := make([]*entity.Contract, 0, len(contracts))
	for _, c := range contracts {
		if matchesFilters(c, filters) {
			result = append(result, c)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].UpdatedAt.After(result[j].UpdatedAt)
	})

	return result, nil
}

func matchesFilters(c *entity.Contract, filters entity.ContractFilters) bool {
	if len(filters.Status) > 0 && !containsStatus(filters.Status, c.Status) {
		return false
	}
	if filters.TemplateID != "" && c.TemplateID != filters.TemplateID {
		return false
	}
	if filters.BatchID != "" && c.BatchID != filters.BatchID {
		return false
	}

	// whitespace is part of the needle; only an empty search matches everything
	search := strings.ToLower(filters.Search)
	if search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Title), search) ||
		strings.Contains(strings.ToLower(c.TemplateName), search) {
		return true
	}
	for _, s := range c.Signers {
		if strings.Contains(strings.ToLower(s.Name), search) ||
			strings.Contains(strings.ToLower(s.Email), search) {
			return true
		}
	}
	return false
}

func containsStatus(statuses []entity.ContractStatus, status entity.ContractStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func (r *contractRepository) FindByID(ctx context.Context, id string) (*entity.Contract, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}

	c, ok := r.fixtures.Contract(id)
	if !ok {
		return nil, fmt.Errorf("contract %s: %w", id, entity.ErrNotFound)
	}
	return c, nil
}

func (r *contractRepository) Timeline(ctx context.Context, contractID string) ([]entity.TimelineEvent, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}
	return r.fixtures.Timeline(contractID), nil
}

func (r *contractRepository) Stats(ctx context.Context) (*entity.ContractStats, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}

	stats := &entity.ContractStats{}
	for _, c := range r.fixtures.Contracts() {
		stats.Total++
		switch c.Status {
		case entity.ContractStatusDraft:
			stats.Draft++
		case entity.ContractStatusPending:
			stats.Pending++
		case entity.ContractStatusCompleted:
			stats.Completed++
		case entity.ContractStatusVoided:
			stats.Voided++
		}
	}
	return stats, nil
}

func (r *contractRepository) Evidence(ctx context.Context, contractID string) (*entity.EvidenceBundle, error) {
	if err := r.latency.Wait(ctx); err != nil {
		return nil, err
	}

	c, ok := r.fixtures.Contract(contractID)
	if !ok {
		return nil, fmt.Errorf("contract %s: %w", contractID, entity.ErrNotFound)
	}
	if c.Status != entity.ContractStatusCompleted {
		return nil, fmt.Errorf("evidence for %s contract %s: %w", c.Status, contractID, entity.ErrNotFound)
	}

	return entity.NewEvidenceBundle(c, len(r.fixtures.Timeline(contractID))), nil
}
