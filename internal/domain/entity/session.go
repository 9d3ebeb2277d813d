package entity

import "time"

type SessionStatus string

const (
	SessionStatusValid     SessionStatus = "valid"
	SessionStatusExpired   SessionStatus = "expired"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusInvalid   SessionStatus = "invalid"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionStatusValid, SessionStatusExpired, SessionStatusCompleted, SessionStatusInvalid:
		return true
	}
	return false
}

type SignerFlowStep string

const (
	StepLanding  SignerFlowStep = "landing"
	StepConsent  SignerFlowStep = "consent"
	StepVerify   SignerFlowStep = "verify"
	StepReview   SignerFlowStep = "review"
	StepSign     SignerFlowStep = "sign"
	StepComplete SignerFlowStep = "complete"
)

var signerFlowOrder = map[SignerFlowStep]int{
	StepLanding:  0,
	StepConsent:  1,
	StepVerify:   2,
	StepReview:   3,
	StepSign:     4,
	StepComplete: 5,
}

func (s SignerFlowStep) Valid() bool {
	_, ok := signerFlowOrder[s]
	return ok
}

// Before reports whether s comes earlier in the signer flow than other
func (s SignerFlowStep) Before(other SignerFlowStep) bool {
	return signerFlowOrder[s] < signerFlowOrder[other]
}

type SignatureType string

const (
	SignatureTypeDraw SignatureType = "draw"
	SignatureTypeType SignatureType = "type"
)

func (t SignatureType) Valid() bool {
	return t == SignatureTypeDraw || t == SignatureTypeType
}

type SigningSession struct {
	Token         string         `json:"token"`
	ContractID    string         `json:"contractId"`
	ContractTitle string         `json:"contractTitle"`
	SignerID      string         `json:"signerId"`
	SignerName    string         `json:"signerName"`
	SignerEmail   string         `json:"signerEmail"`
	SenderName    string         `json:"senderName"`
	SenderCompany string         `json:"senderCompany"`
	Status        SessionStatus  `json:"status"`
	DocumentPages int            `json:"documentPages"`
	CurrentStep   SignerFlowStep `json:"currentStep"`
	ConsentGiven  bool           `json:"consentGiven"`
	OTPVerified   bool           `json:"otpVerified"`
	Signature     string         `json:"signature,omitempty"`
	SignatureType SignatureType  `json:"signatureType,omitempty"`
}

func (s *SigningSession) Clone() *SigningSession {
	out := *s
	return &out
}

// Open reports whether the session still accepts flow steps
func (s *SigningSession) Open() bool {
	return s.Status == SessionStatusValid
}

// FlowState is the per-visit progress layered over a fixture session
type FlowState struct {
	CurrentStep    SignerFlowStep `json:"current_step"`
	ConsentGiven   bool           `json:"consent_given"`
	OTPVerified    bool           `json:"otp_verified"`
	Reviewed       bool           `json:"reviewed"`
	Signature      string         `json:"signature,omitempty"`
	SignatureType  SignatureType  `json:"signature_type,omitempty"`
	Completed      bool           `json:"completed"`
	CodeSentAt     *time.Time     `json:"code_sent_at,omitempty"`
	SignedAt       *time.Time     `json:"signed_at,omitempty"`
	ConsentGivenAt *time.Time     `json:"consent_given_at,omitempty"`
}

// Apply merges the flow state into a copy of the fixture session
func (f *FlowState) Apply(s *SigningSession) *SigningSession {
	out := s.Clone()
	if f == nil {
		return out
	}
	if f.CurrentStep != "" {
		out.CurrentStep = f.CurrentStep
	}
	out.ConsentGiven = out.ConsentGiven || f.ConsentGiven
	out.OTPVerified = out.OTPVerified || f.OTPVerified
	if f.Signature != "" {
		out.Signature = f.Signature
		out.SignatureType = f.SignatureType
	}
	if f.Completed {
		out.Status = SessionStatusCompleted
	}
	return out
}

// OTPResendResult is returned when a new verification code is requested
type OTPResendResult struct {
	MaskedEmail      string `json:"maskedEmail"`
	CooldownSeconds  int    `json:"cooldownSeconds"`
	CodeLength       int    `json:"codeLength"`
	NextResendAtUnix int64  `json:"nextResendAt"`
}

// OTPVerifyResult reports a code check; Error is set when Success is false
type OTPVerifyResult struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Session *SigningSession `json:"session,omitempty"`
}

type ConsentRequest struct {
	ScrolledToBottom bool `json:"scrolledToBottom"`
	Agreed           bool `json:"agreed"`
}

type VerifyOTPRequest struct {
	Code string `json:"code"`
}

// ConsentDisclosure is shown to the signer before electronic signing
const ConsentDisclosure = `Electronic Signature Consent

By clicking "I Agree" below, you are agreeing to use electronic signatures to sign this document. You confirm that:

1. You consent to conduct this transaction electronically and to use electronic signatures.

2. You have the ability to access and retain electronic records related to this transaction.

3. You understand that you may request a paper copy of any document you sign electronically.

4. You can withdraw your consent at any time by contacting the sender before signing.

5. Your electronic signature will have the same legal effect as a handwritten signature.

This consent applies only to this specific transaction. You may still receive paper documents for other transactions.

If you do not agree to these terms, please close this window and contact the sender to arrange an alternative signing method.`
