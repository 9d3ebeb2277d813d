package entity

import (
	"math"
	"time"
)

type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "draft"
	ContractStatusPending   ContractStatus = "pending"
	ContractStatusCompleted ContractStatus = "completed"
	ContractStatusVoided    ContractStatus = "voided"
)

// ContractStatuses lists every contract status in display order
var ContractStatuses = []ContractStatus{
	ContractStatusDraft,
	ContractStatusPending,
	ContractStatusCompleted,
	ContractStatusVoided,
}

var contractStatusLabels = map[ContractStatus]StatusLabel{
	ContractStatusDraft:     {Label: "Draft", Color: "gray", Icon: "FileText"},
	ContractStatusPending:   {Label: "Pending", Color: "amber", Icon: "Clock"},
	ContractStatusCompleted: {Label: "Completed", Color: "green", Icon: "CheckCircle2"},
	ContractStatusVoided:    {Label: "Voided", Color: "red", Icon: "XCircle"},
}

func (s ContractStatus) Valid() bool {
	_, ok := contractStatusLabels[s]
	return ok
}

func (s ContractStatus) Label() StatusLabel {
	return contractStatusLabels[s]
}

type SignerStatus string

const (
	SignerStatusPending  SignerStatus = "pending"
	SignerStatusSent     SignerStatus = "sent"
	SignerStatusViewed   SignerStatus = "viewed"
	SignerStatusSigned   SignerStatus = "signed"
	SignerStatusDeclined SignerStatus = "declined"
)

var SignerStatuses = []SignerStatus{
	SignerStatusPending,
	SignerStatusSent,
	SignerStatusViewed,
	SignerStatusSigned,
	SignerStatusDeclined,
}

var signerStatusLabels = map[SignerStatus]StatusLabel{
	SignerStatusPending:  {Label: "Pending", Color: "gray", Icon: "Clock"},
	SignerStatusSent:     {Label: "Sent", Color: "blue", Icon: "Send"},
	SignerStatusViewed:   {Label: "Viewed", Color: "blue", Icon: "Eye"},
	SignerStatusSigned:   {Label: "Signed", Color: "green", Icon: "Check"},
	SignerStatusDeclined: {Label: "Declined", Color: "red", Icon: "X"},
}

func (s SignerStatus) Valid() bool {
	_, ok := signerStatusLabels[s]
	return ok
}

func (s SignerStatus) Label() StatusLabel {
	return signerStatusLabels[s]
}

// StatusLabel is the display configuration attached to a status value
type StatusLabel struct {
	Label string `json:"label"`
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

type Signer struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Role     string       `json:"role"`
	Order    int          `json:"order"`
	Status   SignerStatus `json:"status"`
	SignedAt *time.Time   `json:"signedAt,omitempty"`
	ViewedAt *time.Time   `json:"viewedAt,omitempty"`
}

type ContractCreator struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Contract struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Status       ContractStatus    `json:"status"`
	TemplateID   string            `json:"templateId"`
	TemplateName string            `json:"templateName"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
	SentAt       *time.Time        `json:"sentAt,omitempty"`
	CompletedAt  *time.Time        `json:"completedAt,omitempty"`
	CreatedBy    ContractCreator   `json:"createdBy"`
	Signers      []Signer          `json:"signers"`
	Variables    map[string]string `json:"variables,omitempty"`
	BatchID      string            `json:"batchId,omitempty"`
	BatchName    string            `json:"batchName,omitempty"`
}

// Clone returns a deep copy so callers can mutate it without touching the fixture
func (c *Contract) Clone() *Contract {
	out := *c
	out.SentAt = cloneTime(c.SentAt)
	out.CompletedAt = cloneTime(c.CompletedAt)
	out.Signers = make([]Signer, len(c.Signers))
	for i, signer := range c.Signers {
		signer.SignedAt = cloneTime(signer.SignedAt)
		signer.ViewedAt = cloneTime(signer.ViewedAt)
		out.Signers[i] = signer
	}
	if c.Variables != nil {
		out.Variables = make(map[string]string, len(c.Variables))
		for k, v := range c.Variables {
			out.Variables[k] = v
		}
	}
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

// FindSigner returns the signer with the given id, or nil
func (c *Contract) FindSigner(signerID string) *Signer {
	for i := range c.Signers {
		if c.Signers[i].ID == signerID {
			return &c.Signers[i]
		}
	}
	return nil
}

// SignerProgress summarises how many signers have signed
type SignerProgress struct {
	Signed  int     `json:"signed"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

// Progress computes signed/total over the contract's signers. A contract
// without signers reports 0 percent.
func (c *Contract) Progress() SignerProgress {
	p := SignerProgress{Total: len(c.Signers)}
	for _, s := range c.Signers {
		if s.Status == SignerStatusSigned {
			p.Signed++
		}
	}
	if p.Total > 0 {
		p.Percent = math.Round(float64(p.Signed)/float64(p.Total)*10000) / 100
	}
	return p
}

// ContractWithProgress is the contract payload returned to the dashboard
type ContractWithProgress struct {
	*Contract
	Progress SignerProgress `json:"progress"`
	Labels   ContractLabels `json:"labels"`
}

// ContractLabels are the rendered timestamps shown next to a contract.
// Signers maps signer id to "Signed 2 hours ago" or "Viewed 1 day ago".
type ContractLabels struct {
	Created   string            `json:"created"`
	Updated   string            `json:"updated"`
	Sent      string            `json:"sent,omitempty"`
	Completed string            `json:"completed,omitempty"`
	Signers   map[string]string `json:"signers,omitempty"`
}

func NewContractWithProgress(c *Contract) ContractWithProgress {
	return ContractWithProgress{Contract: c, Progress: c.Progress()}
}

// ContractFilters narrows the contract list
type ContractFilters struct {
	Status     []ContractStatus `json:"status,omitempty"`
	TemplateID string           `json:"templateId,omitempty"`
	Search     string           `json:"search,omitempty"`
	BatchID    string           `json:"batchId,omitempty"`
}

type ContractStats struct {
	Total     int `json:"total"`
	Draft     int `json:"draft"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Voided    int `json:"voided"`
}

// ActionResult is returned by the creator actions (send, void, resend)
type ActionResult struct {
	Success bool `json:"success"`
}
