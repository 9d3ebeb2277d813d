package usecase

import (
	"context"
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"plume/internal/domain/entity"
	"plume/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// DraftUsecase is the new-contract wizard: prepare variables and signers,
// review the message and reminders, then send
type DraftUsecase interface {
	Create(ctx context.Context, req *entity.CreateDraftRequest) (*entity.Draft, error)
	Get(ctx context.Context, id string) (*entity.Draft, error)
	UpdateVariables(ctx context.Context, id string, variables map[string]string) (*entity.Draft, error)
	AddSigner(ctx context.Context, id string, req *entity.AddSignerRequest) (*entity.Draft, error)
	RemoveSigner(ctx context.Context, id, signerID string) (*entity.Draft, error)
	SetSequential(ctx context.Context, id string, sequential bool) (*entity.Draft, error)
	Review(ctx context.Context, id string, req *entity.ReviewDraftRequest) (*entity.Draft, error)
	Send(ctx context.Context, id string) (*entity.Draft, error)
}

type draftUsecase struct {
	repo      repository.DraftRepository
	templates repository.TemplateRepository
	activity  ActivityUsecase
	logger    *zap.Logger
	now       func() time.Time

	// serialises edits per draft id
	locks keyLocks
}

func NewDraftUsecase(repo repository.DraftRepository, templates repository.TemplateRepository, activity ActivityUsecase, logger *zap.Logger) DraftUsecase {
	return &draftUsecase{
		repo:      repo,
		templates: templates,
		activity:  activity,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *draftUsecase) Create(ctx context.Context, req *entity.CreateDraftRequest) (*entity.Draft, error) {
	if strings.TrimSpace(req.TemplateID) == "" {
		return nil, fmt.Errorf("%w: templateId is required", entity.ErrInvalidInput)
	}

	tpl, err := u.templates.FindByID(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	variables := make(map[string]string, len(tpl.Variables))
	for _, v := range tpl.Variables {
		if v.DefaultValue != "" {
			variables[v.Key] = v.DefaultValue
		}
	}
	if err := mergeVariables(tpl, variables, req.Variables); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = tpl.Name
	}

	now := u.now().UTC()
	draft := &entity.Draft{
		ID:           uuid.NewString(),
		TemplateID:   tpl.ID,
		TemplateName: tpl.Name,
		Title:        title,
		Variables:    variables,
		Completion:   Completion(tpl, variables),
		Signers:      []entity.DraftSigner{},
		Stage:        entity.DraftStagePrepare,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.repo.Save(ctx, draft); err != nil {
		u.logger.Error("Failed to save draft", zap.Error(err))
		return nil, err
	}

	u.logger.Info("Draft created",
		zap.String("draft_id", draft.ID),
		zap.String("template_id", tpl.ID),
		zap.Float64("completion", draft.Completion),
	)
	return draft, nil
}

func (u *draftUsecase) Get(ctx context.Context, id string) (*entity.Draft, error) {
	draft, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, fmt.Errorf("draft %s: %w", id, entity.ErrNotFound)
	}
	return draft, nil
}

// edit loads a draft that has not been sent, applies fn and saves it.
// Edits to the same draft never interleave.
func (u *draftUsecase) edit(ctx context.Context, id string, fn func(draft *entity.Draft) error) (*entity.Draft, error) {
	// lookup before locking so unknown ids never allocate a lock
	if _, err := u.Get(ctx, id); err != nil {
		return nil, err
	}

	unlock := u.locks.lock(id)
	defer unlock()

	draft, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Stage == entity.DraftStageSent {
		return nil, fmt.Errorf("%w: draft has already been sent", entity.ErrInvalidState)
	}

	if err := fn(draft); err != nil {
		return nil, err
	}

	draft.UpdatedAt = u.now().UTC()
	if err := u.repo.Save(ctx, draft); err != nil {
		u.logger.Error("Failed to save draft", zap.String("draft_id", id), zap.Error(err))
		return nil, err
	}
	return draft, nil
}

func (u *draftUsecase) UpdateVariables(ctx context.Context, id string, variables map[string]string) (*entity.Draft, error) {
	return u.edit(ctx, id, func(draft *entity.Draft) error {
		tpl, err := u.templates.FindByID(ctx, draft.TemplateID)
		if err != nil {
			return err
		}
		if draft.Variables == nil {
			draft.Variables = make(map[string]string)
		}
		if err := mergeVariables(tpl, draft.Variables, variables); err != nil {
			return err
		}
		draft.Completion = Completion(tpl, draft.Variables)
		draft.Stage = entity.DraftStagePrepare
		return nil
	})
}

func (u *draftUsecase) AddSigner(ctx context.Context, id string, req *entity.AddSignerRequest) (*entity.Draft, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" {
		return nil, fmt.Errorf("%w: signer name is required", entity.ErrInvalidInput)
	}
	if !isEmail(email) {
		return nil, fmt.Errorf("%w: signer email %q is not a valid address", entity.ErrInvalidInput, req.Email)
	}

	return u.edit(ctx, id, func(draft *entity.Draft) error {
		for _, s := range draft.Signers {
			if strings.EqualFold(s.Email, email) {
				return fmt.Errorf("%w: %s is already a signer", entity.ErrInvalidInput, email)
			}
		}

		draft.Signers = append(draft.Signers, entity.DraftSigner{
			ID:    uuid.NewString(),
			Name:  name,
			Email: email,
			Role:  strings.TrimSpace(req.Role),
			Order: len(draft.Signers) + 1,
		})
		draft.Stage = entity.DraftStagePrepare
		return nil
	})
}

func (u *draftUsecase) RemoveSigner(ctx context.Context, id, signerID string) (*entity.Draft, error) {
	return u.edit(ctx, id, func(draft *entity.Draft) error {
		kept := draft.Signers[:0]
		for _, s := range draft.Signers {
			if s.ID != signerID {
				kept = append(kept, s)
			}
		}
		if len(kept) == len(draft.Signers) {
			return fmt.Errorf("signer %s: %w", signerID, entity.ErrNotFound)
		}
		for i := range kept {
			kept[i].Order = i + 1
		}
		draft.Signers = kept
		draft.Stage = entity.DraftStagePrepare
		return nil
	})
}

func (u *draftUsecase) SetSequential(ctx context.Context, id string, sequential bool) (*entity.Draft, error) {
	return u.edit(ctx, id, func(draft *entity.Draft) error {
		if draft.Sequential != sequential {
			draft.Sequential = sequential
			draft.Stage = entity.DraftStagePrepare
		}
		return nil
	})
}

func (u *draftUsecase) Review(ctx context.Context, id string, req *entity.ReviewDraftRequest) (*entity.Draft, error) {
	reminder := req.Reminder
	if reminder == "" {
		reminder = entity.ReminderEvery3Days
	}
	if !reminder.Valid() {
		return nil, fmt.Errorf("%w: unknown reminder frequency %q", entity.ErrInvalidInput, req.Reminder)
	}

	return u.edit(ctx, id, func(draft *entity.Draft) error {
		if len(draft.Signers) == 0 {
			return fmt.Errorf("%w: add at least one signer before review", entity.ErrInvalidState)
		}
		if draft.Completion < 100 {
			return fmt.Errorf("%w: required fields are incomplete (%.0f%%)", entity.ErrInvalidState, draft.Completion)
		}
		draft.Message = strings.TrimSpace(req.Message)
		draft.Reminder = reminder
		draft.Stage = entity.DraftStageReview
		return nil
	})
}

func (u *draftUsecase) Send(ctx context.Context, id string) (*entity.Draft, error) {
	draft, err := u.edit(ctx, id, func(draft *entity.Draft) error {
		if draft.Stage != entity.DraftStageReview {
			return fmt.Errorf("%w: draft must be reviewed before sending", entity.ErrStepOutOfOrder)
		}
		draft.Stage = entity.DraftStageSent
		draft.ContractID = "ctr-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		return nil
	})
	if err != nil {
		return nil, err
	}

	if _, err := u.activity.Record(ctx, entity.ActivityDraftSent, draft.ContractID, "", ""); err != nil {
		return nil, err
	}

	u.logger.Info("Draft sent",
		zap.String("draft_id", draft.ID),
		zap.String("contract_id", draft.ContractID),
		zap.Int("signers", len(draft.Signers)),
		zap.Bool("sequential", draft.Sequential),
	)
	return draft, nil
}

// mergeVariables validates updates against the template and applies them to
// dst. An empty value clears the variable.
func mergeVariables(tpl *entity.Template, dst, updates map[string]string) error {
	for key, value := range updates {
		v := tpl.Variable(key)
		if v == nil {
			return fmt.Errorf("%w: template %s has no variable %q", entity.ErrInvalidInput, tpl.ID, key)
		}

		value = strings.TrimSpace(value)
		if value == "" {
			delete(dst, key)
			continue
		}
		if err := validateVariable(v, value); err != nil {
			return err
		}
		dst[key] = value
	}
	return nil
}

func validateVariable(v *entity.TemplateVariable, value string) error {
	switch v.Type {
	case entity.VariableTypeEmail:
		if !isEmail(value) {
			return fmt.Errorf("%w: %s must be an email address", entity.ErrInvalidInput, v.Label)
		}
	case entity.VariableTypeDate:
		if _, err := time.Parse(dateLayout, value); err != nil {
			return fmt.Errorf("%w: %s must be a date (YYYY-MM-DD)", entity.ErrInvalidInput, v.Label)
		}
	case entity.VariableTypeCurrency:
		amount, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimPrefix(value, "$"), ",", ""), 64)
		if err != nil || amount < 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
			return fmt.Errorf("%w: %s must be a non-negative amount", entity.ErrInvalidInput, v.Label)
		}
	case entity.VariableTypeSelect:
		if !v.HasOption(value) {
			return fmt.Errorf("%w: %q is not an option for %s", entity.ErrInvalidInput, value, v.Label)
		}
	}
	return nil
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value
}

// Completion is the share of required variables that are filled, as a whole
// percentage. Templates without required variables are always complete.
func Completion(tpl *entity.Template, variables map[string]string) float64 {
	required, filled := 0, 0
	for _, v := range tpl.Variables {
		if !v.Required {
			continue
		}
		required++
		if strings.TrimSpace(variables[v.Key]) != "" {
			filled++
		}
	}
	if required == 0 {
		return 100
	}
	return math.Round(float64(filled) / float64(required) * 100)
}
