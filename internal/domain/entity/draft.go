package entity

import "time"

type ReminderFrequency string

const (
	ReminderNone       ReminderFrequency = "none"
	ReminderDaily      ReminderFrequency = "daily"
	ReminderEvery3Days ReminderFrequency = "every3days"
	ReminderWeekly     ReminderFrequency = "weekly"
)

type ReminderOption struct {
	Value ReminderFrequency `json:"value"`
	Label string            `json:"label"`
}

var ReminderOptions = []ReminderOption{
	{Value: ReminderNone, Label: "No reminders"},
	{Value: ReminderDaily, Label: "Daily"},
	{Value: ReminderEvery3Days, Label: "Every 3 days"},
	{Value: ReminderWeekly, Label: "Weekly"},
}

func (r ReminderFrequency) Valid() bool {
	for _, opt := range ReminderOptions {
		if opt.Value == r {
			return true
		}
	}
	return false
}

type DraftStage string

const (
	DraftStagePrepare DraftStage = "prepare"
	DraftStageReview  DraftStage = "review"
	DraftStageSent    DraftStage = "sent"
)

// DraftSigner is a signer added in the prepare step
type DraftSigner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Order int    `json:"order"`
}

// Draft is the prepare/review/send wizard state for a new contract
type Draft struct {
	ID           string            `json:"id"`
	TemplateID   string            `json:"templateId"`
	TemplateName string            `json:"templateName"`
	Title        string            `json:"title"`
	Variables    map[string]string `json:"variables"`
	Completion   float64           `json:"completion"`
	Signers      []DraftSigner     `json:"signers"`
	Sequential   bool              `json:"sequential"`
	Message      string            `json:"message,omitempty"`
	Reminder     ReminderFrequency `json:"reminder,omitempty"`
	Stage        DraftStage        `json:"stage"`
	ContractID   string            `json:"contractId,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// CreateDraftRequest starts the wizard from a template
type CreateDraftRequest struct {
	TemplateID string            `json:"templateId"`
	Title      string            `json:"title"`
	Variables  map[string]string `json:"variables"`
}

type UpdateVariablesRequest struct {
	Variables map[string]string `json:"variables"`
}

type AddSignerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SequentialRequest struct {
	Sequential bool `json:"sequential"`
}

type ReviewDraftRequest struct {
	Message  string            `json:"message"`
	Reminder ReminderFrequency `json:"reminder"`
}
