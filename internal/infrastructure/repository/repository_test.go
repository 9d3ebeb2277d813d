package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plume/internal/config"
	"plume/internal/domain/entity"
	"plume/internal/infrastructure/fixture"
	"plume/internal/infrastructure/kvstore"
	"plume/internal/infrastructure/latency"
)

func testFixtures(t *testing.T) *fixture.Set {
	t.Helper()
	set, err := fixture.Load(fixture.Embedded())
	require.NoError(t, err)
	return set
}

func testConfig() *config.Config {
	return &config.Config{
		Session: config.SessionConfig{
			TTLMinutes:               60,
			OTPLength:                6,
			OTPResendCooldownSeconds: 30,
		},
	}
}

func ids(contracts []*entity.Contract) []string {
	out := make([]string, len(contracts))
	for i, c := range contracts {
		out[i] = c.ID
	}
	return out
}

func TestContractRepositoryList(t *testing.T) {
	repo := NewContractRepository(testFixtures(t), latency.None())

	tests := []struct {
		name    string
		filters entity.ContractFilters
		want    []string
	}{
		{
			name: "no filters sorts by updatedAt descending",
			want: []string{"ctr-010", "ctr-004", "ctr-002", "ctr-005", "ctr-003", "ctr-007", "ctr-001", "ctr-009", "ctr-008", "ctr-006"},
		},
		{
			name:    "single status",
			filters: entity.ContractFilters{Status: []entity.ContractStatus{entity.ContractStatusPending}},
			want:    []string{"ctr-004", "ctr-002", "ctr-005", "ctr-007"},
		},
		{
			name:    "status set",
			filters: entity.ContractFilters{Status: []entity.ContractStatus{entity.ContractStatusDraft, entity.ContractStatusVoided}},
			want:    []string{"ctr-003", "ctr-009", "ctr-006"},
		},
		{
			name:    "search is case-insensitive on title",
			filters: entity.ContractFilters{Search: "ACME"},
			want:    []string{"ctr-001"},
		},
		{
			name:    "search matches template name",
			filters: entity.ContractFilters{Search: "employment offer"},
			want:    []string{"ctr-004", "ctr-005", "ctr-009"},
		},
		{
			name:    "search matches signer name",
			filters: entity.ContractFilters{Search: "priya"},
			want:    []string{"ctr-004", "ctr-002"},
		},
		{
			name:    "search matches signer email",
			filters: entity.ContractFilters{Search: "@plume.dev"},
			want:    []string{"ctr-010", "ctr-004", "ctr-002", "ctr-001"},
		},
		{
			name: "search combined with status",
			filters: entity.ContractFilters{
				Status: []entity.ContractStatus{entity.ContractStatusPending},
				Search: "mutual nda",
			},
			want: []string{"ctr-007"},
		},
		{
			name:    "template id",
			filters: entity.ContractFilters{TemplateID: "tpl-sow"},
			want:    []string{"ctr-010", "ctr-003"},
		},
		{
			name:    "batch id",
			filters: entity.ContractFilters{BatchID: "batch-q1-hires"},
			want:    []string{"ctr-004", "ctr-005", "ctr-009"},
		},
		{
			name:    "empty search is ignored",
			filters: entity.ContractFilters{Search: "", Status: []entity.ContractStatus{entity.ContractStatusCompleted}},
			want:    []string{"ctr-010", "ctr-001", "ctr-008"},
		},
		{
			name:    "whitespace search is matched as typed",
			filters: entity.ContractFilters{Search: "   ", Status: []entity.ContractStatus{entity.ContractStatusCompleted}},
			want:    []string{},
		},

		{
			name:    "no match",
			filters: entity.ContractFilters{Search: "nothing matches this"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.List(context.Background(), tt.filters)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestContractRepositoryFindByID(t *testing.T) {
	repo := NewContractRepository(testFixtures(t), latency.None())

	c, err := repo.FindByID(context.Background(), "ctr-002")
	require.NoError(t, err)
	assert.Equal(t, "Master Services Agreement - Globex", c.Title)

	_, err = repo.FindByID(context.Background(), "ctr-404")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestContractRepositoryStats(t *testing.T) {
	repo := NewContractRepository(testFixtures(t), latency.None())

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &entity.ContractStats{Total: 10, Draft: 2, Pending: 4, Completed: 3, Voided: 1}, stats)
}

func TestContractRepositoryTimeline(t *testing.T) {
	repo := NewContractRepository(testFixtures(t), latency.None())

	events, err := repo.Timeline(context.Background(), "ctr-001")
	require.NoError(t, err)
	assert.Len(t, events, 8)

	events, err = repo.Timeline(context.Background(), "ctr-404")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestContractRepositoryEvidence(t *testing.T) {
	repo := NewContractRepository(testFixtures(t), latency.None())
	ctx := context.Background()

	bundle, err := repo.Evidence(ctx, "ctr-001")
	require.NoError(t, err)
	assert.Equal(t, "bundle-ctr-001", bundle.ID)
	assert.Equal(t, 8, bundle.Contents.AuditTrail.Events)
	assert.Equal(t, 2, bundle.Contents.ConsentRecords.Signers)

	// Every contract that is not completed falls back to not found
	for _, id := range []string{"ctr-002", "ctr-003", "ctr-006", "ctr-404"} {
		_, err := repo.Evidence(ctx, id)
		assert.ErrorIs(t, err, entity.ErrNotFound, id)
	}
}

func TestRepositoryHonoursCancellation(t *testing.T) {
	repo := NewContractRepository(testFixtures(t), latency.New(time.Second, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.List(ctx, entity.ContractFilters{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTemplateRepository(t *testing.T) {
	repo := NewTemplateRepository(testFixtures(t), latency.None())
	ctx := context.Background()

	all, err := repo.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	all, err = repo.List(ctx, entity.TemplateCategoryAll)
	require.NoError(t, err)
	assert.Len(t, all, 6)

	msa, err := repo.List(ctx, entity.TemplateCategoryMSA)
	require.NoError(t, err)
	require.Len(t, msa, 2)
	assert.Equal(t, "tpl-msa", msa[0].ID)
	assert.Equal(t, "tpl-consulting", msa[1].ID)

	tpl, err := repo.FindByID(ctx, "tpl-sow")
	require.NoError(t, err)
	assert.Len(t, tpl.Variables, 4)

	_, err = repo.FindByID(ctx, "tpl-missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSessionRepository(t *testing.T) {
	repo := NewSessionRepository(testConfig(), testFixtures(t), latency.None())
	ctx := context.Background()

	sess, err := repo.FindByToken(ctx, "tok-globex-john")
	require.NoError(t, err)
	assert.Equal(t, "ctr-002", sess.ContractID)
	assert.Equal(t, entity.SessionStatusValid, sess.Status)

	_, err = repo.FindByToken(ctx, "tok-missing")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	sess, err = repo.FindByContract(ctx, "ctr-004")
	require.NoError(t, err)
	assert.Equal(t, "tok-cooper-jane", sess.Token)

	_, err = repo.FindByContract(ctx, "ctr-003")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestSessionRepositoryVerifyOTP(t *testing.T) {
	repo := NewSessionRepository(testConfig(), testFixtures(t), latency.None())
	ctx := context.Background()

	tests := []struct {
		name    string
		token   string
		code    string
		success bool
		errMsg  string
	}{
		{name: "six digits", token: "tok-globex-john", code: "123456", success: true},
		{name: "all zeros", token: "tok-globex-john", code: "000000", success: true},
		{name: "five digits", token: "tok-globex-john", code: "12345", errMsg: "Invalid code"},
		{name: "seven digits", token: "tok-globex-john", code: "1234567", errMsg: "Invalid code"},
		{name: "letters", token: "tok-globex-john", code: "12a456", errMsg: "Invalid code"},
		{name: "non-ascii digits", token: "tok-globex-john", code: "١٢٣٤٥٦", errMsg: "Invalid code"},
		{name: "empty", token: "tok-globex-john", code: "", errMsg: "Invalid code"},
		{name: "unknown token", token: "tok-missing", code: "123456", errMsg: "Invalid session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := repo.VerifyOTP(ctx, tt.token, tt.code)
			require.NoError(t, err)
			assert.Equal(t, tt.success, result.Success)
			assert.Equal(t, tt.errMsg, result.Error)
			if tt.success {
				require.NotNil(t, result.Session)
				assert.True(t, result.Session.OTPVerified)
			} else {
				assert.Nil(t, result.Session)
			}
		})
	}
}

func TestFlowStateRepository(t *testing.T) {
	repo := NewFlowStateRepository(testConfig(), kvstore.NewMemoryStore())
	ctx := context.Background()

	state, err := repo.Get(ctx, "tok-globex-john")
	require.NoError(t, err)
	assert.Nil(t, state)

	require.NoError(t, repo.Save(ctx, "tok-globex-john", &entity.FlowState{
		CurrentStep:  entity.StepVerify,
		ConsentGiven: true,
	}))

	state, err = repo.Get(ctx, "tok-globex-john")
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, entity.StepVerify, state.CurrentStep)
	assert.True(t, state.ConsentGiven)
}

func TestDraftRepository(t *testing.T) {
	repo := NewDraftRepository(testConfig(), kvstore.NewMemoryStore())
	ctx := context.Background()

	draft, err := repo.FindByID(ctx, "d-1")
	require.NoError(t, err)
	assert.Nil(t, draft)

	require.NoError(t, repo.Save(ctx, &entity.Draft{
		ID:         "d-1",
		TemplateID: "tpl-msa",
		Variables:  map[string]string{"client_name": "Globex"},
		Stage:      entity.DraftStagePrepare,
	}))

	draft, err = repo.FindByID(ctx, "d-1")
	require.NoError(t, err)
	require.NotNil(t, draft)
	assert.Equal(t, "Globex", draft.Variables["client_name"])
	assert.Equal(t, entity.DraftStagePrepare, draft.Stage)
}

func TestMemoryPreferenceRepository(t *testing.T) {
	repo := NewPreferenceRepository(nil, nil)
	ctx := context.Background()

	stored, err := repo.Find(ctx, "client-a")
	require.NoError(t, err)
	assert.Nil(t, stored)

	prefs := entity.DefaultPreferences()
	prefs.Contrast = entity.ContrastHigh
	require.NoError(t, repo.Save(ctx, &entity.StoredPreferences{ClientKey: "client-a", Preferences: prefs}))

	stored, err = repo.Find(ctx, "client-a")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.ContrastHigh, stored.Preferences.Contrast)

	other, err := repo.Find(ctx, "client-b")
	require.NoError(t, err)
	assert.Nil(t, other)
}

func TestMemoryActivityRepository(t *testing.T) {
	repo := NewActivityRepository(nil, nil)
	ctx := context.Background()
	base := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	for i, a := range []entity.Activity{
		{ID: "a1", Action: entity.ActivitySend, ContractID: "ctr-002"},
		{ID: "a2", Action: entity.ActivityVoid, ContractID: "ctr-007", Reason: "superseded"},
		{ID: "a3", Action: entity.ActivityResend, ContractID: "ctr-002", SignerID: "sig-002-2"},
	} {
		a.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Save(ctx, &a))
	}

	all, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a3", all[0].ID)
	assert.Equal(t, "a1", all[2].ID)

	limited, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	byContract, err := repo.ListByContract(ctx, "ctr-002")
	require.NoError(t, err)
	require.Len(t, byContract, 2)
	assert.Equal(t, "sig-002-2", byContract[0].SignerID)

	none, err := repo.ListByContract(ctx, "ctr-404")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
