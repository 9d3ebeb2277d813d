package fixture

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"plume/internal/config"
	"plume/internal/domain/entity"
)

const (
	ContractsFile = "contracts.json"
	TemplatesFile = "templates.json"
	TimelineFile  = "timeline-events.json"
	SessionsFile  = "signing-sessions.json"
)

//go:embed data/*.json
var embedded embed.FS

var Module = fx.Module("fixture",
	fx.Provide(NewSet),
)

// Set is the loaded fixture data. It is never mutated after Load returns;
// accessors hand out copies.
type Set struct {
	contracts []*entity.Contract
	templates []*entity.Template
	timeline  map[string][]entity.TimelineEvent
	sessions  []*entity.SigningSession

	contractByID      map[string]*entity.Contract
	templateByID      map[string]*entity.Template
	sessionByTok      map[string]*entity.SigningSession
	sessionByContract map[string]*entity.SigningSession
}

func NewSet(cfg *config.Config, logger *zap.Logger) (*Set, error) {
	source := "embedded"
	fsys := Embedded()
	if cfg.Mock.FixturesDir != "" {
		source = cfg.Mock.FixturesDir
		fsys = os.DirFS(cfg.Mock.FixturesDir)
	}

	set, err := Load(fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixtures from %s: %w", source, err)
	}

	logger.Info("Fixtures loaded",
		zap.String("source", source),
		zap.Int("contracts", len(set.contracts)),
		zap.Int("templates", len(set.templates)),
		zap.Int("sessions", len(set.sessions)),
	)

	return set, nil
}

// Embedded returns the fixtures compiled into the binary
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// data/ is part of the embed pattern, Sub cannot fail
		panic(err)
	}
	return sub
}

// Load reads and cross-checks the four fixture files from fsys
func Load(fsys fs.FS) (*Set, error) {
	set := &Set{}

	if err := readJSON(fsys, ContractsFile, &set.contracts); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, TemplatesFile, &set.templates); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, TimelineFile, &set.timeline); err != nil {
		return nil, err
	}
	if err := readJSON(fsys, SessionsFile, &set.sessions); err != nil {
		return nil, err
	}

	if err := set.index(); err != nil {
		return nil, err
	}
	return set, nil
}

func readJSON(fsys fs.FS, name string, dst interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *Set) index() error {
	s.templateByID = make(map[string]*entity.Template, len(s.templates))
	for _, t := range s.templates {
		if t.ID == "" {
			return fmt.Errorf("%s: template without id", TemplatesFile)
		}
		if _, dup := s.templateByID[t.ID]; dup {
			return fmt.Errorf("%s: duplicate template %q", TemplatesFile, t.ID)
		}
		if !t.Category.Valid() || t.Category == entity.TemplateCategoryAll {
			return fmt.Errorf("%s: template %q has unknown category %q", TemplatesFile, t.ID, t.Category)
		}
		for _, v := range t.Variables {
			if !v.Type.Valid() {
				return fmt.Errorf("%s: template %q variable %q has unknown type %q", TemplatesFile, t.ID, v.Key, v.Type)
			}
		}
		s.templateByID[t.ID] = t
	}

	s.contractByID = make(map[string]*entity.Contract, len(s.contracts))
	for _, c := range s.contracts {
		if c.ID == "" {
			return fmt.Errorf("%s: contract without id", ContractsFile)
		}
		if _, dup := s.contractByID[c.ID]; dup {
			return fmt.Errorf("%s: duplicate contract %q", ContractsFile, c.ID)
		}
		if !c.Status.Valid() {
			return fmt.Errorf("%s: contract %q has unknown status %q", ContractsFile, c.ID, c.Status)
		}
		if _, ok := s.templateByID[c.TemplateID]; !ok {
			return fmt.Errorf("%s: contract %q references unknown template %q", ContractsFile, c.ID, c.TemplateID)
		}
		for _, signer := range c.Signers {
			if !signer.Status.Valid() {
				return fmt.Errorf("%s: signer %q has unknown status %q", ContractsFile, signer.ID, signer.Status)
			}
		}
		s.contractByID[c.ID] = c
	}

	for contractID, events := range s.timeline {
		if _, ok := s.contractByID[contractID]; !ok {
			return fmt.Errorf("%s: events for unknown contract %q", TimelineFile, contractID)
		}
		for _, e := range events {
			if !e.Type.Valid() {
				return fmt.Errorf("%s: event %q has unknown type %q", TimelineFile, e.ID, e.Type)
			}
		}
	}

	s.sessionByTok = make(map[string]*entity.SigningSession, len(s.sessions))
	s.sessionByContract = make(map[string]*entity.SigningSession, len(s.sessions))
	for _, sess := range s.sessions {
		if _, dup := s.sessionByTok[sess.Token]; dup {
			return fmt.Errorf("%s: duplicate token %q", SessionsFile, sess.Token)
		}
		if !sess.Status.Valid() || !sess.CurrentStep.Valid() {
			return fmt.Errorf("%s: session %q has unknown status or step", SessionsFile, sess.Token)
		}
		c, ok := s.contractByID[sess.ContractID]
		if !ok {
			return fmt.Errorf("%s: session %q references unknown contract %q", SessionsFile, sess.Token, sess.ContractID)
		}
		if c.FindSigner(sess.SignerID) == nil {
			return fmt.Errorf("%s: session %q references unknown signer %q", SessionsFile, sess.Token, sess.SignerID)
		}
		s.sessionByTok[sess.Token] = sess
		if _, seen := s.sessionByContract[sess.ContractID]; !seen {
			s.sessionByContract[sess.ContractID] = sess
		}
	}

	return nil
}

// Contracts returns copies of every contract in fixture order
func (s *Set) Contracts() []*entity.Contract {
	out := make([]*entity.Contract, len(s.contracts))
	for i, c := range s.contracts {
		out[i] = c.Clone()
	}
	return out
}

func (s *Set) Contract(id string) (*entity.Contract, bool) {
	c, ok := s.contractByID[id]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

func (s *Set) Templates() []*entity.Template {
	out := make([]*entity.Template, len(s.templates))
	for i, t := range s.templates {
		out[i] = t.Clone()
	}
	return out
}

func (s *Set) Template(id string) (*entity.Template, bool) {
	t, ok := s.templateByID[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Timeline returns the events for a contract, empty when there are none
func (s *Set) Timeline(contractID string) []entity.TimelineEvent {
	events := s.timeline[contractID]
	out := make([]entity.TimelineEvent, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}

func (s *Set) Session(token string) (*entity.SigningSession, bool) {
	sess, ok := s.sessionByTok[token]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// SessionForContract returns the first session issued for a contract
func (s *Set) SessionForContract(contractID string) (*entity.SigningSession, bool) {
	sess, ok := s.sessionByContract[contractID]
	if !ok {
		return nil, false
	}
	return sess.Clone(), true
}

// Counts summarises the set for tooling output
type Counts struct {
	Contracts      int `json:"contracts"`
	Templates      int `json:"templates"`
	TimelineEvents int `json:"timelineEvents"`
	Sessions       int `json:"sessions"`
}

func (s *Set) Counts() Counts {
	c := Counts{
		Contracts: len(s.contracts),
		Templates: len(s.templates),
		Sessions:  len(s.sessions),
	}
	for _, events := range s.timeline {
		c.TimelineEvents += len(events)
	}
	return c
}
