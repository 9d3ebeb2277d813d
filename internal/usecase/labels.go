package usecase

import (
	"time"

	"plume/internal/display"
	"plume/internal/domain/entity"
)

func contractLabels(c *entity.Contract, now time.Time) entity.ContractLabels {
	labels := entity.ContractLabels{
		Created: display.Date(c.CreatedAt),
		Updated: display.RelativeTime(c.UpdatedAt, now),
	}
	if c.SentAt != nil {
		labels.Sent = display.Date(*c.SentAt)
	}
	if c.CompletedAt != nil {
		labels.Completed = display.Date(*c.CompletedAt)
	}

	for _, s := range c.Signers {
		var label string
		switch {
		case s.SignedAt != nil:
			label = "Signed " + display.RelativeTime(*s.SignedAt, now)
		case s.ViewedAt != nil:
			label = "Viewed " + display.RelativeTime(*s.ViewedAt, now)
		default:
			continue
		}
		if labels.Signers == nil {
			labels.Signers = make(map[string]string, len(c.Signers))
		}
		labels.Signers[s.ID] = label
	}
	return labels
}

func labelTimeline(events []entity.TimelineEvent, now time.Time) {
	for i := range events {
		events[i].When = display.RelativeTime(events[i].Timestamp, now)
	}
}

func labelEvidence(b *entity.EvidenceBundle) {
	b.Display = entity.EvidenceDisplay{
		Generated:    display.Date(b.CreatedAt),
		DocumentHash: display.ShortHash(b.DocumentHash),
		BundleHash:   display.ShortHash(b.BundleHash),
	}
}
