package entity

import "time"

// Placeholder digests shown in the evidence viewer. Nothing is hashed.
const (
	PlaceholderDocumentHash = "sha256:a1b2c3d4e5f6789012345678901234567890abcdef1234567890abcdef123456"
	PlaceholderBundleHash   = "sha256:fedcba0987654321fedcba0987654321fedcba0987654321fedcba09876543"
	PlaceholderSignedPDF    = "245 KB"
)

type SignedPDF struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

type AuditTrail struct {
	Events int `json:"events"`
}

type ConsentRecords struct {
	Signers int `json:"signers"`
}

type EvidenceContents struct {
	SignedPDF      SignedPDF      `json:"signedPdf"`
	AuditTrail     AuditTrail     `json:"auditTrail"`
	ConsentRecords ConsentRecords `json:"consentRecords"`
}

type EvidenceBundle struct {
	ID           string           `json:"id"`
	ContractID   string           `json:"contractId"`
	CreatedAt    time.Time        `json:"createdAt"`
	DocumentHash string           `json:"documentHash"`
	BundleHash   string           `json:"bundleHash"`
	Contents     EvidenceContents `json:"contents"`
	Display      EvidenceDisplay  `json:"display"`
}

// EvidenceDisplay carries the shortened digests and generation date the
// evidence viewer shows
type EvidenceDisplay struct {
	Generated    string `json:"generated"`
	DocumentHash string `json:"documentHash"`
	BundleHash   string `json:"bundleHash"`
}

// NewEvidenceBundle builds the display bundle for a completed contract
func NewEvidenceBundle(c *Contract, timelineEvents int) *EvidenceBundle {
	createdAt := c.UpdatedAt
	if c.CompletedAt != nil {
		createdAt = *c.CompletedAt
	}

	return &EvidenceBundle{
		ID:           "bundle-" + c.ID,
		ContractID:   c.ID,
		CreatedAt:    createdAt,
		DocumentHash: PlaceholderDocumentHash,
		BundleHash:   PlaceholderBundleHash,
		Contents: EvidenceContents{
			SignedPDF:      SignedPDF{Name: c.Title + ".pdf", Size: PlaceholderSignedPDF},
			AuditTrail:     AuditTrail{Events: timelineEvents},
			ConsentRecords: ConsentRecords{Signers: len(c.Signers)},
		},
	}
}
