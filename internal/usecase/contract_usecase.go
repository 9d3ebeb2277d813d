package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"plume/internal/config"
	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
)

// ContractOverview is everything the contract detail page renders
type ContractOverview struct {
	Contract    entity.ContractWithProgress `json:"contract"`
	Timeline    []entity.TimelineEvent      `json:"timeline"`
	SigningLink string                      `json:"signingLink,omitempty"`
	Activity    []*entity.Activity          `json:"activity"`
}

type Dashboard struct {
	Stats     *entity.ContractStats         `json:"stats"`
	Contracts []entity.ContractWithProgress `json:"contracts"`
}

type ContractUsecase interface {
	List(ctx context.Context, filters entity.ContractFilters) ([]entity.ContractWithProgress, error)
	Get(ctx context.Context, id string) (*entity.ContractWithProgress, error)
	Overview(ctx context.Context, id string) (*ContractOverview, error)
	Timeline(ctx context.Context, id string) ([]entity.TimelineEvent, error)
	Stats(ctx context.Context) (*entity.ContractStats, error)
	Evidence(ctx context.Context, id string) (*entity.EvidenceBundle, error)
	Dashboard(ctx context.Context, filters entity.ContractFilters) (*Dashboard, error)

	// Creator actions. They are recorded but leave the fixture data untouched.
	Send(ctx context.Context, id string) (*entity.ActionResult, error)
	Void(ctx context.Context, id, reason string) (*entity.ActionResult, error)
	ResendToSigner(ctx context.Context, id, signerID string) (*entity.ActionResult, error)
}

type contractUsecase struct {
	config      *config.Config
	repo        repository.ContractRepository
	sessionRepo repository.SessionRepository
	activity    ActivityUsecase
	logger      *zap.Logger
	now         func() time.Time
}

func NewContractUsecase(cfg *config.Config, repo repository.ContractRepository, sessionRepo repository.SessionRepository, activity ActivityUsecase, logger *zap.Logger) ContractUsecase {
	return &contractUsecase{
		config:      cfg,
		repo:        repo,
		sessionRepo: sessionRepo,
		activity:    activity,
		logger:      logger,
		now:         time.Now,
	}
}

func (u *contractUsecase) withProgress(c *entity.Contract) entity.ContractWithProgress {
	result := entity.NewContractWithProgress(c)
	result.Labels = contractLabels(c, u.now())
	return result
}

func (u *contractUsecase) List(ctx context.Context, filters entity.ContractFilters) ([]entity.ContractWithProgress, error) {
	contracts, err := u.repo.List(ctx, filters)
	if err != nil {
		u.logger.Error("Failed to list contracts", zap.Error(err))
		return nil, err
	}

	result := make([]entity.ContractWithProgress, len(contracts))
	for i, c := range contracts {
		result[i] = u.withProgress(c)
	}

	u.logger.Debug("Listed contracts",
		zap.Int("count", len(result)),
		zap.Int("status_filters", len(filters.Status)),
		zap.String("search", filters.Search),
	)

	return result, nil
}

func (u *contractUsecase) Get(ctx context.Context, id string) (*entity.ContractWithProgress, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := u.withProgress(c)
	return &result, nil
}

func (u *contractUsecase) Overview(ctx context.Context, id string) (*ContractOverview, error) {
	overview := &ContractOverview{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		c, err := u.repo.FindByID(gctx, id)
		if err != nil {
			return err
		}
		overview.Contract = u.withProgress(c)
		return nil
	})

	g.Go(func() error {
		events, err := u.repo.Timeline(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load timeline: %w", err)
		}
		labelTimeline(events, u.now())
		overview.Timeline = events
		return nil
	})

	g.Go(func() error {
		sess, err := u.sessionRepo.FindByContract(gctx, id)
		if errors.Is(err, entity.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load signing session: %w", err)
		}
		overview.SigningLink = u.SigningLink(sess.Token)
		return nil
	})

	g.Go(func() error {
		activities, err := u.activity.ListByContract(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to load activity: %w", err)
		}
		overview.Activity = activities
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overview, nil
}

// SigningLink builds the signer URL for a session token
func (u *contractUsecase) SigningLink(token string) string {
	return strings.TrimRight(u.config.App.BaseURL, "/") + "/sign/" + token
}

func (u *contractUsecase) Timeline(ctx context.Context, id string) ([]entity.TimelineEvent, error) {
	events, err := u.repo.Timeline(ctx, id)
	if err != nil {
		return nil, err
	}
	labelTimeline(events, u.now())
	return events, nil
}

func (u *contractUsecase) Stats(ctx context.Context) (*entity.ContractStats, error) {
	return u.repo.Stats(ctx)
}

func (u *contractUsecase) Evidence(ctx context.Context, id string) (*entity.EvidenceBundle, error) {
	bundle, err := u.repo.Evidence(ctx, id)
	if err != nil {
		return nil, err
	}
	labelEvidence(bundle)
	return bundle, nil
}

func (u *contractUsecase) Dashboard(ctx context.Context, filters entity.ContractFilters) (*Dashboard, error) {
	dashboard := &Dashboard{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := u.repo.Stats(gctx)
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}
		dashboard.Stats = stats
		return nil
	})

	g.Go(func() error {
		contracts, err := u.List(gctx, filters)
		if err != nil {
			return err
		}
		dashboard.Contracts = contracts
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dashboard, nil
}

func (u *contractUsecase) Send(ctx context.Context, id string) (*entity.ActionResult, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status != entity.ContractStatusDraft {
		return nil, fmt.Errorf("%w: only draft contracts can be sent, contract is %s", entity.ErrInvalidState, c.Status)
	}
	if len(c.Signers) == 0 {
		return nil, fmt.Errorf("%w: contract has no signers", entity.ErrInvalidState)
	}

	if _, err := u.activity.Record(ctx, entity.ActivitySend, id, "", ""); err != nil {
		return nil, err
	}

	u.logger.Info("Contract sent", zap.String("contract_id", id), zap.Int("signers", len(c.Signers)))
	return &entity.ActionResult{Success: true}, nil
}

func (u *contractUsecase) Void(ctx context.Context, id, reason string) (*entity.ActionResult, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.Status == entity.ContractStatusVoided || c.Status == entity.ContractStatusCompleted {
		return nil, fmt.Errorf("%w: %s contracts cannot be voided", entity.ErrInvalidState, c.Status)
	}

	if _, err := u.activity.Record(ctx, entity.ActivityVoid, id, "", strings.TrimSpace(reason)); err != nil {
		return nil, err
	}

	u.logger.Info("Contract voided", zap.String("contract_id", id))
	return &entity.ActionResult{Success: true}, nil
}

func (u *contractUsecase) ResendToSigner(ctx context.Context, id, signerID string) (*entity.ActionResult, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	signer := c.FindSigner(signerID)
	if signer == nil {
		return nil, fmt.Errorf("signer %s: %w", signerID, entity.ErrNotFound)
	}
	if c.Status != entity.ContractStatusPending {
		return nil, fmt.Errorf("%w: reminders are only sent for pending contracts", entity.ErrInvalidState)
	}
	if signer.Status == entity.SignerStatusSigned || signer.Status == entity.SignerStatusDeclined {
		return nil, fmt.Errorf("%w: signer has already %s", entity.ErrInvalidState, signer.Status)
	}

	if _, err := u.activity.Record(ctx, entity.ActivityResend, id, signerID, ""); err != nil {
		return nil, err
	}

	u.logger.Info("Reminder sent",
		zap.String("contract_id", id),
		zap.String("signer_id", signerID),
	)
	return &entity.ActionResult{Success: true}, nil
}
