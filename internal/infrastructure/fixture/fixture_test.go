package fixture

import (
	"io/fs"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plume/internal/config"
	"plume/internal/domain/entity"
)

func TestLoadEmbedded(t *testing.T) {
	set, err := Load(Embedded())
	require.NoError(t, err)

	counts := set.Counts()
	assert.Equal(t, 10, counts.Contracts)
	assert.Equal(t, 6, counts.Templates)
	assert.Equal(t, 6, counts.Sessions)
	assert.Equal(t, 39, counts.TimelineEvents)

	c, ok := set.Contract("ctr-002")
	require.True(t, ok)
	assert.Equal(t, "tpl-msa", c.TemplateID)
	assert.Len(t, c.Signers, 3)

	_, ok = set.Contract("missing")
	assert.False(t, ok)

	sess, ok := set.SessionForContract("ctr-001")
	require.True(t, ok)
	assert.Equal(t, "tok-acme-wile", sess.Token)
}

func TestAccessorsReturnCopies(t *testing.T) {
	set, err := Load(Embedded())
	require.NoError(t, err)

	c, _ := set.Contract("ctr-001")
	c.Title = "changed"
	c.Signers[0].Status = entity.SignerStatusDeclined
	c.Variables["party_name"] = "changed"

	again, _ := set.Contract("ctr-001")
	assert.Equal(t, "Mutual NDA - Acme Corp", again.Title)
	assert.Equal(t, entity.SignerStatusSigned, again.Signers[0].Status)
	assert.Equal(t, "Acme Corp", again.Variables["party_name"])

	tpl, _ := set.Template("tpl-nda-mutual")
	tpl.Variables[3].Options[0].Label = "changed"
	tplAgain, _ := set.Template("tpl-nda-mutual")
	assert.Equal(t, "1 year", tplAgain.Variables[3].Options[0].Label)

	events := set.Timeline("ctr-001")
	events[0].Type = entity.TimelineVoided
	assert.Equal(t, entity.TimelineCreated, set.Timeline("ctr-001")[0].Type)
}

func TestAccessorsCopyNestedValues(t *testing.T) {
	set, err := Load(Embedded())
	require.NoError(t, err)

	c, _ := set.Contract("ctr-001")
	*c.SentAt = c.SentAt.Add(time.Hour)
	*c.CompletedAt = c.CompletedAt.Add(time.Hour)
	*c.Signers[0].SignedAt = c.Signers[0].SignedAt.Add(time.Hour)
	*c.Signers[0].ViewedAt = c.Signers[0].ViewedAt.Add(time.Hour)

	again, _ := set.Contract("ctr-001")
	assert.Equal(t, time.Date(2024, 3, 1, 9, 20, 0, 0, time.UTC), again.SentAt.UTC())
	assert.Equal(t, time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC), again.CompletedAt.UTC())
	assert.Equal(t, time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC), again.Signers[0].SignedAt.UTC())
	assert.Equal(t, time.Date(2024, 3, 8, 10, 0, 0, 0, time.UTC), again.Signers[0].ViewedAt.UTC())

	events := set.Timeline("ctr-001")
	require.NotNil(t, events[0].Actor)
	events[0].Actor.Name = "changed"

	withMetadata := -1
	for i, e := range events {
		if e.Metadata != nil {
			withMetadata = i
			break
		}
	}
	require.GreaterOrEqual(t, withMetadata, 0)
	events[withMetadata].Metadata["recipient"] = "changed"

	fresh := set.Timeline("ctr-001")
	assert.Equal(t, "Alex Morgan", fresh[0].Actor.Name)
	assert.Equal(t, "wile@acme.com", fresh[withMetadata].Metadata["recipient"])
}

func TestTimelineForUnknownContractIsEmpty(t *testing.T) {
	set, err := Load(Embedded())
	require.NoError(t, err)

	events := set.Timeline("nope")
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func mapFS(t *testing.T, overrides map[string]string) fstest.MapFS {
	t.Helper()
	m := fstest.MapFS{}
	for _, name := range []string{ContractsFile, TemplatesFile, TimelineFile, SessionsFile} {
		data, err := fs.ReadFile(Embedded(), name)
		require.NoError(t, err)
		m[name] = &fstest.MapFile{Data: data}
	}
	for name, body := range overrides {
		m[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return m
}

func TestLoadRejectsBrokenFixtures(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		errSubstr string
	}{
		{
			name:      "dangling template reference",
			overrides: map[string]string{ContractsFile: `[{"id":"c1","status":"draft","templateId":"nope","signers":[]}]`, SessionsFile: `[]`, TimelineFile: `{}`},
			errSubstr: "unknown template",
		},
		{
			name:      "unknown contract status",
			overrides: map[string]string{ContractsFile: `[{"id":"c1","status":"archived","templateId":"tpl-msa","signers":[]}]`, SessionsFile: `[]`, TimelineFile: `{}`},
			errSubstr: "unknown status",
		},
		{
			name:      "timeline for unknown contract",
			overrides: map[string]string{TimelineFile: `{"ghost":[]}`},
			errSubstr: "unknown contract",
		},
		{
			name:      "session for unknown signer",
			overrides: map[string]string{SessionsFile: `[{"token":"t","contractId":"ctr-001","signerId":"ghost","status":"valid","currentStep":"landing"}]`},
			errSubstr: "unknown signer",
		},
		{
			name:      "malformed json",
			overrides: map[string]string{TemplatesFile: `[{`},
			errSubstr: "failed to parse templates.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(mapFS(t, tt.overrides))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	m := mapFS(t, nil)
	delete(m, SessionsFile)

	_, err := Load(m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read signing-sessions.json")
}

func TestNewSetFromDirectory(t *testing.T) {
	cfg := &config.Config{Mock: config.MockConfig{FixturesDir: t.TempDir()}}

	_, err := NewSet(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), cfg.Mock.FixturesDir)
}
