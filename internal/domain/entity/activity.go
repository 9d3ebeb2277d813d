package entity

import "time"

type ActivityAction string

const (
	ActivitySend      ActivityAction = "send"
	ActivityVoid      ActivityAction = "void"
	ActivityResend    ActivityAction = "resend"
	ActivityDraftSent ActivityAction = "draft_sent"
)

// Activity records a creator action taken against a contract
type Activity struct {
	ID         string         `json:"id" db:"id"`
	Action     ActivityAction `json:"action" db:"action"`
	ContractID string         `json:"contract_id" db:"contract_id"`
	SignerID   string         `json:"signer_id,omitempty" db:"signer_id"`
	Reason     string         `json:"reason,omitempty" db:"reason"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

type VoidContractRequest struct {
	Reason string `json:"reason"`
}
