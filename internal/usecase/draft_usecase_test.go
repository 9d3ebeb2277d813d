package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plume/internal/domain/entity"
	"plume/internal/infrastructure/latency"
	infrarepo "plume/internal/infrastructure/repository"
)

func TestCreateDraft(t *testing.T) {
	uc := newTestDeps(t).draftUsecase()
	ctx := context.Background()

	draft, err := uc.Create(ctx, &entity.CreateDraftRequest{
		TemplateID: "tpl-nda-mutual",
		Variables:  map[string]string{"party_name": "Acme Corp"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, draft.ID)
	assert.Equal(t, "Mutual NDA", draft.Title)
	assert.Equal(t, entity.DraftStagePrepare, draft.Stage)
	// party_name plus the term_years default fill 2 of 4 required fields
	assert.Equal(t, "2", draft.Variables["term_years"])
	assert.Equal(t, 50.0, draft.Completion)
	assert.NotNil(t, draft.Signers)

	stored, err := uc.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, draft.Variables, stored.Variables)
}

func TestCreateDraftValidation(t *testing.T) {
	uc := newTestDeps(t).draftUsecase()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     entity.CreateDraftRequest
		wantErr error
	}{
		{name: "missing template id", req: entity.CreateDraftRequest{}, wantErr: entity.ErrInvalidInput},
		{name: "unknown template", req: entity.CreateDraftRequest{TemplateID: "tpl-nope"}, wantErr: entity.ErrNotFound},
		{
			name:    "unknown variable",
			req:     entity.CreateDraftRequest{TemplateID: "tpl-msa", Variables: map[string]string{"colour": "blue"}},
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "bad email",
			req:     entity.CreateDraftRequest{TemplateID: "tpl-msa", Variables: map[string]string{"client_email": "not-an-email"}},
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "email with display name",
			req:     entity.CreateDraftRequest{TemplateID: "tpl-msa", Variables: map[string]string{"client_email": "Bob <bob@globex.com>"}},
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "bad date",
			req:     entity.CreateDraftRequest{TemplateID: "tpl-msa", Variables: map[string]string{"start_date": "03/01/2024"}},
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "select outside options",
			req:     entity.CreateDraftRequest{TemplateID: "tpl-msa", Variables: map[string]string{"payment_terms": "net90"}},
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "negative currency",
			req:     entity.CreateDraftRequest{TemplateID: "tpl-sow", Variables: map[string]string{"budget": "-5"}},
			wantErr: entity.ErrInvalidInput,
		},
		{
			name:    "non-numeric currency",
			req:     entity.CreateDraftRequest{TemplateID: "tpl-sow", Variables: map[string]string{"budget": "lots"}},
			wantErr: entity.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := uc.Create(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	draft, err := uc.Create(ctx, &entity.CreateDraftRequest{
		TemplateID: "tpl-sow",
		Title:      "  SOW - Portal  ",
		Variables:  map[string]string{"budget": "$12,500.00", "start_date": "2024-04-01"},
	})
	require.NoError(t, err)
	assert.Equal(t, "SOW - Portal", draft.Title)
	assert.Equal(t, 50.0, draft.Completion)
}

func TestCompletion(t *testing.T) {
	deps := newTestDeps(t)
	ctx := context.Background()

	consulting, err := deps.templates.FindByID(ctx, "tpl-consulting")
	require.NoError(t, err)
	assert.Equal(t, 100.0, Completion(consulting, nil))

	nda, err := deps.templates.FindByID(ctx, "tpl-nda-mutual")
	require.NoError(t, err)
	assert.Equal(t, 0.0, Completion(nda, map[string]string{}))
	assert.Equal(t, 25.0, Completion(nda, map[string]string{"party_name": "Acme", "governing_law": "Delaware"}))
	assert.Equal(t, 75.0, Completion(nda, map[string]string{"party_name": "Acme", "party_email": "legal@acme.com", "term_years": "1"}))
}

func TestDraftSigners(t *testing.T) {
	uc := newTestDeps(t).draftUsecase()
	ctx := context.Background()

	draft, err := uc.Create(ctx, &entity.CreateDraftRequest{TemplateID: "tpl-consulting"})
	require.NoError(t, err)

	for _, s := range []entity.AddSignerRequest{
		{Name: "Lucius Fox", Email: "lucius@wayne.com", Role: "Consultant"},
		{Name: "Bruce Wayne", Email: "bruce@wayne.com", Role: "Client"},
		{Name: "Alfred", Email: "alfred@wayne.com"},
	} {
		req := s
		draft, err = uc.AddSigner(ctx, draft.ID, &req)
		require.NoError(t, err)
	}
	require.Len(t, draft.Signers, 3)
	assert.Equal(t, 3, draft.Signers[2].Order)

	_, err = uc.AddSigner(ctx, draft.ID, &entity.AddSignerRequest{Name: "Dup", Email: "LUCIUS@wayne.com"})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = uc.AddSigner(ctx, draft.ID, &entity.AddSignerRequest{Name: "", Email: "x@wayne.com"})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = uc.AddSigner(ctx, draft.ID, &entity.AddSignerRequest{Name: "X", Email: "wayne.com"})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	draft, err = uc.RemoveSigner(ctx, draft.ID, draft.Signers[0].ID)
	require.NoError(t, err)
	require.Len(t, draft.Signers, 2)
	assert.Equal(t, "Bruce Wayne", draft.Signers[0].Name)
	assert.Equal(t, 1, draft.Signers[0].Order)
	assert.Equal(t, 2, draft.Signers[1].Order)

	_, err = uc.RemoveSigner(ctx, draft.ID, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	draft, err = uc.SetSequential(ctx, draft.ID, true)
	require.NoError(t, err)
	assert.True(t, draft.Sequential)
}

func TestDraftReviewAndSend(t *testing.T) {
	deps := newTestDeps(t)
	uc := deps.draftUsecase()
	ctx := context.Background()

	draft, err := uc.Create(ctx, &entity.CreateDraftRequest{
		TemplateID: "tpl-msa",
		Variables:  map[string]string{"client_name": "Globex", "client_email": "legal@globex.com"},
	})
	require.NoError(t, err)

	_, err = uc.Send(ctx, draft.ID)
	assert.ErrorIs(t, err, entity.ErrStepOutOfOrder)

	_, err = uc.Review(ctx, draft.ID, &entity.ReviewDraftRequest{})
	assert.ErrorIs(t, err, entity.ErrInvalidState, "no signers")

	_, err = uc.AddSigner(ctx, draft.ID, &entity.AddSignerRequest{Name: "Hank Scorpio", Email: "hank@globex.com"})
	require.NoError(t, err)

	_, err = uc.Review(ctx, draft.ID, &entity.ReviewDraftRequest{})
	assert.ErrorIs(t, err, entity.ErrInvalidState, "start_date missing")

	draft, err = uc.UpdateVariables(ctx, draft.ID, map[string]string{"start_date": "2024-04-01"})
	require.NoError(t, err)
	assert.Equal(t, 100.0, draft.Completion)

	_, err = uc.Review(ctx, draft.ID, &entity.ReviewDraftRequest{Reminder: "hourly"})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	draft, err = uc.Review(ctx, draft.ID, &entity.ReviewDraftRequest{Message: " Please sign ", Reminder: entity.ReminderWeekly})
	require.NoError(t, err)
	assert.Equal(t, entity.DraftStageReview, draft.Stage)
	assert.Equal(t, "Please sign", draft.Message)
	assert.Equal(t, entity.ReminderWeekly, draft.Reminder)

	draft, err = uc.Send(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.DraftStageSent, draft.Stage)
	assert.NotEmpty(t, draft.ContractID)

	recorded, err := deps.activity.ListByContract(ctx, draft.ContractID)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, entity.ActivityDraftSent, recorded[0].Action)

	_, err = uc.UpdateVariables(ctx, draft.ID, map[string]string{"notes": "late"})
	assert.ErrorIs(t, err, entity.ErrInvalidState)
	_, err = uc.Send(ctx, draft.ID)
	assert.ErrorIs(t, err, entity.ErrInvalidState)
}

func TestEditingReviewedDraftReturnsToPrepare(t *testing.T) {
	uc := newTestDeps(t).draftUsecase()
	ctx := context.Background()

	draft, err := uc.Create(ctx, &entity.CreateDraftRequest{TemplateID: "tpl-consulting"})
	require.NoError(t, err)
	_, err = uc.AddSigner(ctx, draft.ID, &entity.AddSignerRequest{Name: "Lucius Fox", Email: "lucius@wayne.com"})
	require.NoError(t, err)

	draft, err = uc.Review(ctx, draft.ID, &entity.ReviewDraftRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.ReminderEvery3Days, draft.Reminder)

	draft, err = uc.AddSigner(ctx, draft.ID, &entity.AddSignerRequest{Name: "Bruce Wayne", Email: "bruce@wayne.com"})
	require.NoError(t, err)
	assert.Equal(t, entity.DraftStagePrepare, draft.Stage)

	_, err = uc.Send(ctx, draft.ID)
	assert.ErrorIs(t, err, entity.ErrStepOutOfOrder)
}

func TestUpdateVariablesClearsEmptyValues(t *testing.T) {
	uc := newTestDeps(t).draftUsecase()
	ctx := context.Background()

	draft, err := uc.Create(ctx, &entity.CreateDraftRequest{
		TemplateID: "tpl-sales-order",
		Variables:  map[string]string{"customer_name": "Initech", "order_total": "1200"},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, draft.Completion)

	draft, err = uc.UpdateVariables(ctx, draft.ID, map[string]string{"order_total": "  "})
	require.NoError(t, err)
	_, ok := draft.Variables["order_total"]
	assert.False(t, ok)
	assert.Equal(t, 50.0, draft.Completion)

	_, err = uc.Get(ctx, "missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSetSequentialReturnsReviewedDraftToPrepare(t *testing.T) {
	uc := newTestDeps(t).draftUsecase()
	ctx := context.Background()

	draft, err := uc.Create(ctx, &entity.CreateDraftRequest{TemplateID: "tpl-consulting"})
	require.NoError(t, err)
	_, err = uc.AddSigner(ctx, draft.ID, &entity.AddSignerRequest{Name: "Lucius Fox", Email: "lucius@wayne.com"})
	require.NoError(t, err)
	_, err = uc.Review(ctx, draft.ID, &entity.ReviewDraftRequest{})
	require.NoError(t, err)

	draft, err = uc.SetSequential(ctx, draft.ID, false)
	require.NoError(t, err)
	assert.Equal(t, entity.DraftStageReview, draft.Stage, "unchanged order keeps the review")

	draft, err = uc.SetSequential(ctx, draft.ID, true)
	require.NoError(t, err)
	assert.True(t, draft.Sequential)
	assert.Equal(t, entity.DraftStagePrepare, draft.Stage)
}

// slowTemplates makes every template lookup wait so concurrent edits overlap
func slowTemplates(t *testing.T, deps *testDeps) {
	t.Helper()
	deps.templates = infrarepo.NewTemplateRepository(deps.fixtures, latency.New(20*time.Millisecond, 40*time.Millisecond))
}

func TestConcurrentDraftEditsAreNotLost(t *testing.T) {
	deps := newTestDeps(t)
	slowTemplates(t, deps)
	uc := deps.draftUsecase()
	ctx := context.Background()

	draft, err := uc.Create(ctx, &entity.CreateDraftRequest{TemplateID: "tpl-msa"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = uc.UpdateVariables(ctx, draft.ID, map[string]string{"client_name": "Globex"})
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = uc.AddSigner(ctx, draft.ID, &entity.AddSignerRequest{Name: "Hank Scorpio", Email: "hank@globex.com"})
	}()
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	stored, err := uc.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "Globex", stored.Variables["client_name"])
	require.Len(t, stored.Signers, 1)
	assert.Equal(t, "hank@globex.com", stored.Signers[0].Email)
}

func TestConcurrentSendsProduceOneContract(t *testing.T) {
	deps := newTestDeps(t)
	uc := deps.draftUsecase()
	ctx := context.Background()

	draft, err := uc.Create(ctx, &entity.CreateDraftRequest{TemplateID: "tpl-consulting"})
	require.NoError(t, err)
	_, err = uc.AddSigner(ctx, draft.ID, &entity.AddSignerRequest{Name: "Lucius Fox", Email: "lucius@wayne.com"})
	require.NoError(t, err)
	_, err = uc.Review(ctx, draft.ID, &entity.ReviewDraftRequest{})
	require.NoError(t, err)

	const senders = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < senders; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Send(ctx, draft.ID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, entity.ErrInvalidState)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	recorded, err := deps.activity.List(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, recorded, 1)
}
