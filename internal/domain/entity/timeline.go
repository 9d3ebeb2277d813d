package entity

import "time"

type TimelineEventType string

const (
	TimelineCreated         TimelineEventType = "created"
	TimelineSent            TimelineEventType = "sent"
	TimelineDelivered       TimelineEventType = "delivered"
	TimelineViewed          TimelineEventType = "viewed"
	TimelineSigned          TimelineEventType = "signed"
	TimelineCompleted       TimelineEventType = "completed"
	TimelineVoided          TimelineEventType = "voided"
	TimelineReminder        TimelineEventType = "reminder"
	TimelineBundleGenerated TimelineEventType = "bundle_generated"
)

// TimelineLabel is the display text and icon for an event type
type TimelineLabel struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var timelineLabels = map[TimelineEventType]TimelineLabel{
	TimelineCreated:         {Label: "Contract created", Icon: "Plus"},
	TimelineSent:            {Label: "Contract sent", Icon: "Send"},
	TimelineDelivered:       {Label: "Email delivered", Icon: "Mail"},
	TimelineViewed:          {Label: "Document viewed", Icon: "Eye"},
	TimelineSigned:          {Label: "Signature completed", Icon: "PenTool"},
	TimelineCompleted:       {Label: "Contract completed", Icon: "CheckCircle2"},
	TimelineVoided:          {Label: "Contract voided", Icon: "XCircle"},
	TimelineReminder:        {Label: "Reminder sent", Icon: "Bell"},
	TimelineBundleGenerated: {Label: "Evidence bundle generated", Icon: "Package"},
}

func (t TimelineEventType) Valid() bool {
	_, ok := timelineLabels[t]
	return ok
}

func (t TimelineEventType) Label() TimelineLabel {
	return timelineLabels[t]
}

// TimelineLabels returns a copy of the event type lookup table
func TimelineLabels() map[TimelineEventType]TimelineLabel {
	out := make(map[TimelineEventType]TimelineLabel, len(timelineLabels))
	for k, v := range timelineLabels {
		out[k] = v
	}
	return out
}

type ActorType string

const (
	ActorUser   ActorType = "user"
	ActorSigner ActorType = "signer"
	ActorSystem ActorType = "system"
)

type TimelineActor struct {
	Type  ActorType `json:"type"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
}

type TimelineEvent struct {
	ID        string                 `json:"id"`
	Type      TimelineEventType      `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Actor     *TimelineActor         `json:"actor,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	When      string                 `json:"when,omitempty"`
}

// Clone copies the event including its actor and metadata
func (e TimelineEvent) Clone() TimelineEvent {
	if e.Actor != nil {
		actor := *e.Actor
		e.Actor = &actor
	}
	if e.Metadata != nil {
		e.Metadata = cloneValue(e.Metadata).(map[string]interface{})
	}
	return e
}

// cloneValue deep-copies decoded JSON values
func cloneValue(v interface{}) interface{} {
	switch v := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, item := range v {
			out[k] = cloneValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
